// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package irq implements machine mode trap handling and dispatch of
// hart-local interrupts to registered handlers.
package irq

import (
	"fmt"
)

// INTERRUPT is the mcause bit set for asynchronous traps.
const INTERRUPT = 1 << 63

// Synchronous exception codes of interest
const (
	INSTRUCTION_ACCESS_FAULT = 1
	LOAD_ACCESS_FAULT        = 5
	STORE_ACCESS_FAULT       = 7
)

// Handler represents a trap handler, it is invoked in thread context after
// the trap has been taken and acknowledged by the vector.
type Handler func()

// Dispatcher routes trap causes to handlers.
type Dispatcher struct {
	handlers map[uint64]Handler
}

// Interrupt returns the mcause value of interrupt code n.
func Interrupt(n int) uint64 {
	return INTERRUPT | uint64(n)
}

// Register sets the handler for an mcause value, a nil handler removes the
// current one.
func (d *Dispatcher) Register(cause uint64, fn Handler) {
	if d.handlers == nil {
		d.handlers = make(map[uint64]Handler)
	}

	if fn == nil {
		delete(d.handlers, cause)
		return
	}

	d.handlers[cause] = fn
}

// Dispatch invokes the handler registered for cause, it returns false when
// none is.
func (d *Dispatcher) Dispatch(cause uint64) bool {
	fn, ok := d.handlers[cause]

	if !ok {
		return false
	}

	fn()

	return true
}

// Describe returns a printable representation of an mcause value.
func Describe(cause uint64) string {
	if cause&INTERRUPT != 0 {
		return fmt.Sprintf("interrupt:%d", cause&^INTERRUPT)
	}

	switch cause {
	case INSTRUCTION_ACCESS_FAULT:
		return "instruction access fault"
	case LOAD_ACCESS_FAULT:
		return "load access fault"
	case STORE_ACCESS_FAULT:
		return "store access fault"
	}

	return fmt.Sprintf("exception:%d", cause)
}
