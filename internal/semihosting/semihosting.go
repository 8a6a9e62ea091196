// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build riscv64
// +build riscv64

// Package semihosting reports the program exit status to a debugger or
// emulator (e.g. QEMU -semihosting) through RISC-V semihosting calls.
package semihosting

import (
	"unsafe"
)

// ADP_Stopped_ApplicationExit
const applicationExit = 0x20026

// SYS_EXIT parameter block
var block [2]uint64

// defined in semihosting_riscv64.s
func exit(block uint64)

// Exit terminates the emulated target with the given status code.
func Exit(code int) {
	block[0] = applicationExit
	block[1] = uint64(code)

	exit(uint64(uintptr(unsafe.Pointer(&block))))
}
