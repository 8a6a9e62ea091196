// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !riscv64
// +build !riscv64

package mem

import (
	"sync/atomic"
)

var barrier uint32

// Fence orders all prior memory accesses before all subsequent ones.
func Fence() {
	atomic.AddUint32(&barrier, 1)
}

// FenceI is equivalent to Fence on architectures with coherent instruction
// fetch.
func FenceI() {
	Fence()
}
