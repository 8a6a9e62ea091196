// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package reg provides access to memory mapped registers.
package reg

import (
	"sync/atomic"
	"unsafe"
)

// MMIO implements register access through 64-bit loads and stores, register
// addresses must be 8-byte aligned.
type MMIO struct{}

func (MMIO) Read(addr uint64) uint64 {
	r := (*uint64)(unsafe.Pointer(uintptr(addr)))
	return atomic.LoadUint64(r)
}

func (MMIO) Write(addr uint64, val uint64) {
	r := (*uint64)(unsafe.Pointer(uintptr(addr)))
	atomic.StoreUint64(r, val)
}
