// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build sifive_u
// +build sifive_u

package mem

// SiFive FU540 board description, only boards providing an error device
// (sifive,error0) define ErrorDeviceBase, builds for other boards fail.
const (
	// Self-test executable
	RamStart = 0x80000000
	RamSize  = 0x07f00000 // 127MB

	// DMA region
	DMAStart = 0x87f00000
	DMASize  = 0x00100000 // 1MB

	// Error device (sifive,error0), all accesses return a TileLink error
	ErrorDeviceBase = 0x00003000
	ErrorDeviceSize = 0x00001000

	// E51 monitor core and 4 U54 application cores
	Harts = 5

	// Bus Error Unit (sifive,buserror0), one instance per hart
	BusErrorBase   = 0x01700000
	BusErrorStride = 0x00001000

	// BEU hart-local interrupt (mcause exception code)
	BusErrorInterrupt = 128
)
