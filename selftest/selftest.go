// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package selftest verifies a Bus Error Unit by injecting TileLink bus
// errors, first checking that the event accrues and can be cleared, then
// that it raises a hart-local interrupt serviced by Test.Handle.
package selftest

import (
	"errors"
	"log"
	"sync/atomic"

	"github.com/usbarmory/buserror-example/buserror"
	"github.com/usbarmory/buserror-example/mem"
)

// Self-test failures
var (
	ErrClear     = errors.New("failed to clear accrued bus error event")
	ErrAccrual   = errors.New("accrued bus error never detected")
	ErrInterrupt = errors.New("bus error interrupt never handled")
)

// Exit status codes
const (
	ExitPass      = 0
	ExitError     = 1
	ExitClear     = 4
	ExitAccrual   = 5
	ExitInterrupt = 6
)

// Peripheral represents the Bus Error Unit operations used by the test.
type Peripheral interface {
	ClearAccrued(mask buserror.Event)
	ClearCause()
	EnableEvents(mask buserror.Event)
	IsAccrued(mask buserror.Event) bool
	EnableLocalInterrupt(mask buserror.Event)
	Cause() buserror.Event
}

// Hart represents the hart running the test.
type Hart interface {
	ID() int
	// EnableInterrupts enables the BEU hart-local interrupt and interrupts
	// globally.
	EnableInterrupts()
}

// State holds the test outcome flags.
type State struct {
	// accrued is written and read only by Run.
	accrued bool
	// handled is written only by Handle, from false to true, and read by
	// Run once the fault has been fenced and pending traps serviced.
	handled uint32
}

// Accrued returns whether the polled event was observed.
func (s *State) Accrued() bool {
	return s.accrued
}

// Handled returns whether the interrupt handler recognized a bus error.
func (s *State) Handled() bool {
	return atomic.LoadUint32(&s.handled) == 1
}

// Test represents a single self-test run, it must not be reused.
type Test struct {
	// BEU is the Bus Error Unit of the current hart
	BEU Peripheral
	// Hart is the current hart
	Hart Hart
	// Inject performs a single byte read from the error device
	Inject func()

	// Fence orders memory and I/O accesses (default mem.Fence)
	Fence func()
	// FenceI orders the instruction stream (default mem.FenceI)
	FenceI func()
	// Service runs handlers for traps taken by the vector (optional)
	Service func()

	// Log receives the diagnostics (default log.Default())
	Log *log.Logger

	State State
}

func (t *Test) init() {
	if t.Fence == nil {
		t.Fence = mem.Fence
	}

	if t.FenceI == nil {
		t.FenceI = mem.FenceI
	}

	if t.Service == nil {
		t.Service = func() {}
	}

	if t.Log == nil {
		t.Log = log.Default()
	}
}

// Handle services the BEU hart-local interrupt, it must be registered with
// the interrupt dispatcher before Run. Spurious invocations only clear the
// cause register.
func (t *Test) Handle() {
	if t.BEU.Cause()&buserror.EventAny != 0 {
		t.log().Printf("Handled TileLink bus error")
		atomic.StoreUint32(&t.State.handled, 1)
		t.BEU.ClearAccrued(buserror.EventAll)
	}

	t.BEU.ClearCause()
}

func (t *Test) log() *log.Logger {
	if t.Log == nil {
		return log.Default()
	}

	return t.Log
}

// Run executes the self-test, failures are reported as ErrClear,
// ErrAccrual or ErrInterrupt.
//
// The interrupt raised by the second fault is expected to be taken, and
// serviced, before the fences following the access complete. This holds
// for platforms delivering the BEU interrupt synchronously with the
// faulting load; Run does not wait any longer than that.
func (t *Test) Run() error {
	t.init()
	beu := t.BEU

	// reset any accrued event and the cause register
	beu.ClearAccrued(buserror.EventAll)
	beu.ClearCause()

	beu.EnableEvents(buserror.EventAll)

	t.Inject()
	t.Fence()

	if beu.IsAccrued(buserror.EventAny) {
		t.Log.Printf("Detected accrued bus error")
		t.State.accrued = true
		beu.ClearAccrued(buserror.EventAll)
		beu.ClearCause()
	}

	if beu.IsAccrued(buserror.EventAny) {
		t.Log.Printf("Failed to clear accrued bus error event")
		return ErrClear
	}

	t.Log.Printf("Cleared accrued bus error")

	beu.EnableLocalInterrupt(buserror.EventAll)
	t.Hart.EnableInterrupts()

	// interrupt enable must be visible before the access
	t.Fence()

	t.Inject()
	t.Fence()
	t.FenceI()
	t.Service()

	if !t.State.Accrued() {
		return ErrAccrual
	}

	if !t.State.Handled() {
		return ErrInterrupt
	}

	return nil
}

// ExitCode returns the exit status for a Run result.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitPass
	case errors.Is(err, ErrClear):
		return ExitClear
	case errors.Is(err, ErrAccrual):
		return ExitAccrual
	case errors.Is(err, ErrInterrupt):
		return ExitInterrupt
	default:
		return ExitError
	}
}
