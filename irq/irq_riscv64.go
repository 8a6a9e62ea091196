// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago
// +build tamago

package irq

import (
	"log"
	"sync/atomic"
	"unsafe"
)

// trap taken by the vector, count is incremented on each occurrence
type trapRecord struct {
	cause uint64
	epc   uint64
	tval  uint64
	count uint64
}

// trap vector scratch area, layout shared with irq_riscv64.s
type trapFrame struct {
	t1 uint64
	t2 uint64

	// skip window, see Window.encode
	offset uint64
	shift  uint64

	// vector installed before Init
	prev uint64

	exception trapRecord
	interrupt trapRecord
}

var frame trapFrame

// defined in irq_riscv64.s
func trap()
func setVector(frame uint64)
func restoreVector(addr uint64)
func set_mie(mask uint64)

// EnableInterrupts sets mstatus.MIE.
func EnableInterrupts()

// DisableInterrupts clears mstatus.MIE.
func DisableInterrupts()

// Init installs the machine mode trap vector, the returned function restores
// the previous one.
//
// The vector only records traps: synchronous exceptions whose faulting
// address is within the skip window are skipped, any other synchronous
// exception is re-executed with the previous vector installed. Interrupts
// are left disabled on return until Service runs the registered handler.
func Init(skip Window) (restore func(), err error) {
	if frame.offset, frame.shift, err = skip.encode(); err != nil {
		return
	}

	frame.exception = trapRecord{}
	frame.interrupt = trapRecord{}

	setVector(uint64(uintptr(unsafe.Pointer(&frame))))

	restore = func() {
		DisableInterrupts()
		restoreVector(frame.prev)
	}

	return
}

// EnableLocal enables a hart-local interrupt in the mie CSR, interrupt codes
// which do not map to a mie bit are enabled at their source only.
func EnableLocal(n int) {
	if n < 64 {
		set_mie(1 << n)
	}
}

func service(d *Dispatcher, r *trapRecord) {
	n := atomic.SwapUint64(&r.count, 0)

	if n == 0 {
		return
	}

	cause := atomic.LoadUint64(&r.cause)

	if !d.Dispatch(cause) {
		log.Printf("unhandled trap %s mepc:%#x mtval:%#x (%d)", Describe(cause), atomic.LoadUint64(&r.epc), atomic.LoadUint64(&r.tval), n)
	}

	if cause&INTERRUPT != 0 {
		EnableInterrupts()
	}
}

// Service dispatches the traps recorded by the vector, if any, to their
// handlers and re-enables interrupts after an asynchronous one. Exceptions
// and interrupts are recorded separately, so that neither overwrites the
// other before being serviced.
func Service(d *Dispatcher) {
	service(d, &frame.exception)
	service(d, &frame.interrupt)
}
