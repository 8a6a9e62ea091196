// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mem

// defined in fence_riscv64.s

// Fence orders all prior memory and I/O accesses before all subsequent ones
// (fence iorw, iorw).
func Fence()

// FenceI synchronizes the instruction stream with prior stores (fence.i).
func FenceI()
