// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a simulated hardware behaviour and the expected
// self-test outcome.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Faults      Faults      `yaml:"faults"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines the expected self-test outcome.
type Expectation struct {
	ExitCode int  `yaml:"exit_code"`
	Handled  bool `yaml:"handled"`
	// Log lists the diagnostic lines in emission order.
	Log []string `yaml:"log"`
}

// LoadScenarios reads a list of scenarios from a YAML file.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios, %v", err)
	}

	var scenarios []Scenario

	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios, %v", err)
	}

	for i, s := range scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
	}

	return scenarios, nil
}
