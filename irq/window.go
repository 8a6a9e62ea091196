// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package irq

import (
	"fmt"
	"math/bits"
)

// Window represents the physical address range of synchronous faults which
// the trap vector records and skips, any other synchronous fault is handed
// back to the previous vector.
type Window struct {
	Base uint64
	Size uint64
}

// encode returns the window representation used by the trap vector: an
// address is within the window when (addr + offset) >> shift is zero.
func (w Window) encode() (offset uint64, shift uint64, err error) {
	if w.Size == 0 || w.Size&(w.Size-1) != 0 {
		return 0, 0, fmt.Errorf("window size %#x is not a power of two", w.Size)
	}

	if w.Base&(w.Size-1) != 0 {
		return 0, 0, fmt.Errorf("window base %#x is not aligned to its size", w.Base)
	}

	return -w.Base, uint64(bits.TrailingZeros64(w.Size)), nil
}

// Contains returns whether a faulting address is skipped by the trap vector.
func (w Window) Contains(addr uint64) bool {
	offset, shift, err := w.encode()

	if err != nil {
		return false
	}

	return (addr+offset)>>shift == 0
}
