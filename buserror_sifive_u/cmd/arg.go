// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"
)

// parseHart converts a decimal hart argument, valid harts are lower than n.
func parseHart(arg string, n int) (int, error) {
	hart, err := strconv.ParseUint(arg, 10, 8)

	if err != nil {
		return 0, fmt.Errorf("invalid hart, %v", err)
	}

	if int(hart) >= n {
		return 0, fmt.Errorf("hart must be < %d", n)
	}

	return int(hart), nil
}

// parseRange converts hex address and decimal size arguments of a 32-bit
// aligned memory range, sizes are limited to max.
func parseRange(addrArg string, sizeArg string, max int) (addr uint64, size int, err error) {
	if addr, err = strconv.ParseUint(addrArg, 16, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid address, %v", err)
	}

	n, err := strconv.ParseUint(sizeArg, 10, 32)

	if err != nil {
		return 0, 0, fmt.Errorf("invalid size, %v", err)
	}

	if (addr%4) != 0 || (n%4) != 0 {
		return 0, 0, fmt.Errorf("only 32-bit aligned accesses are supported")
	}

	if n > uint64(max) {
		return 0, 0, fmt.Errorf("size argument must be <= %d", max)
	}

	return addr, int(n), nil
}
