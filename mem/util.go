// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mem

import (
	"unsafe"
)

//go:noinline
func load8(p *uint8) uint8 {
	return *p
}

// Load8 performs a single byte read at addr, the access is never elided or
// merged by the compiler.
func Load8(addr uint64) uint8 {
	return load8((*uint8)(unsafe.Pointer(uintptr(addr))))
}
