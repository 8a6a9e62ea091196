// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago
// +build tamago

package cmd

import (
	"fmt"
	"log"
	"regexp"

	"golang.org/x/term"

	"github.com/usbarmory/buserror-example/buserror_sifive_u/internal"
	"github.com/usbarmory/buserror-example/mem"
	"github.com/usbarmory/buserror-example/selftest"
	"github.com/usbarmory/buserror-example/util"
)

func init() {
	Add(Cmd{
		Name: "buserror",
		Help: "run the bus error self-test",
		Fn:   buserrorCmd,
	})

	Add(Cmd{
		Name:    "beu",
		Args:    1,
		Pattern: regexp.MustCompile(`^beu (\d+)$`),
		Syntax:  "<hart>",
		Help:    "show Bus Error Unit registers",
		Fn:      beuCmd,
	})
}

func buserrorCmd(term *term.Terminal, _ []string) (string, error) {
	l := log.New(&util.Output{Term: term}, "", log.Ltime)
	err := platform.Run(l)

	if err != nil {
		return fmt.Sprintf("exit status %d (%v)", selftest.ExitCode(err), err), nil
	}

	return "exit status 0", nil
}

func beuCmd(_ *term.Terminal, arg []string) (string, error) {
	hart, err := parseHart(arg[0], mem.Harts)

	if err != nil {
		return "", err
	}

	return platform.Dump(hart), nil
}
