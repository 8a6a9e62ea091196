// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package reg

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// backing memory must not move with the goroutine stack
var regs [4]uint64

func TestMMIO(t *testing.T) {
	base := uint64(uintptr(unsafe.Pointer(&regs[0])))

	var io MMIO

	io.Write(base+8, 0xdeadbeefcafe)
	require.Equal(t, uint64(0xdeadbeefcafe), regs[1])

	regs[3] = 0x20
	require.Equal(t, uint64(0x20), io.Read(base+24))
	require.Zero(t, io.Read(base))
}
