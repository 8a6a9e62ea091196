// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago
// +build tamago

package cmd

import (
	"encoding/hex"
	"regexp"

	"golang.org/x/term"

	"github.com/usbarmory/tamago/dma"
)

const maxBufferSize = 4096

func init() {
	Add(Cmd{
		Name:    "peek",
		Args:    2,
		Pattern: regexp.MustCompile(`^peek ([[:xdigit:]]+) (\d+)$`),
		Syntax:  "<hex addr> <size>",
		Help:    "memory display (use with caution)",
		Fn:      memReadCmd,
	})
}

func memCopy(start uint, size int) (b []byte) {
	mem, err := dma.NewRegion(start, size, true)

	if err != nil {
		panic("could not allocate memory copy DMA")
	}

	start, buf := mem.Reserve(size, 0)
	defer mem.Release(start)

	b = make([]byte, size)
	copy(b, buf)

	return
}

func memReadCmd(_ *term.Terminal, arg []string) (res string, err error) {
	addr, size, err := parseRange(arg[0], arg[1], maxBufferSize)

	if err != nil {
		return
	}

	return hex.Dump(memCopy(uint(addr), size)), nil
}
