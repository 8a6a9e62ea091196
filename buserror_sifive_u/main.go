// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago
// +build tamago

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	_ "unsafe"

	"github.com/usbarmory/tamago/board/qemu/sifive_u"
	"github.com/usbarmory/tamago/dma"

	"github.com/usbarmory/buserror-example/buserror_sifive_u/cmd"
	"github.com/usbarmory/buserror-example/buserror_sifive_u/internal"
	"github.com/usbarmory/buserror-example/internal/semihosting"
	"github.com/usbarmory/buserror-example/mem"
	"github.com/usbarmory/buserror-example/selftest"
	"github.com/usbarmory/buserror-example/util"
)

//go:linkname ramStart runtime/goos.RamStart
var ramStart uint64 = mem.RamStart

//go:linkname ramSize runtime/goos.RamSize
var ramSize uint64 = mem.RamSize

// console, when set at link time (-X main.console=1), starts the serial
// console once the self-test completes.
var console string

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(&util.Output{W: os.Stdout})

	dma.Init(mem.DMAStart, mem.DMASize)

	cmd.Banner = fmt.Sprintf("%s/%s (%s) • bus error self-test (M-mode)", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func main() {
	log.Println(cmd.Banner)

	err := platform.Run(log.Default())
	code := selftest.ExitCode(err)

	if err != nil {
		log.Printf("bus error self-test failed, %v (exit status %d)", err, code)
	} else {
		log.Printf("bus error self-test passed")
	}

	if len(console) > 0 {
		cmd.SerialConsole(sifive_u.UART0)
	}

	semihosting.Exit(code)
}
