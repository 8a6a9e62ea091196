// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package selftest

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usbarmory/buserror-example/buserror"
	"github.com/usbarmory/buserror-example/internal/sim"
	"github.com/usbarmory/buserror-example/irq"
)

func newTest(p *sim.Platform, out *bytes.Buffer) *Test {
	t := &Test{
		BEU:     p.BEU(),
		Hart:    p,
		Inject:  p.Inject,
		Service: p.Service,
		Log:     log.New(out, "", 0),
	}

	p.Dispatcher.Register(irq.Interrupt(sim.BusErrorIRQ), t.Handle)

	return t
}

func lines(out *bytes.Buffer) []string {
	s := strings.TrimSpace(out.String())

	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}

func TestScenarios(t *testing.T) {
	scenarios, err := sim.LoadScenarios("testdata/scenarios.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		s := s

		t.Run(s.Name, func(t *testing.T) {
			var out bytes.Buffer

			p := &sim.Platform{Faults: s.Faults}
			test := newTest(p, &out)

			err := test.Run()

			require.Equal(t, s.Expect.ExitCode, ExitCode(err), "error: %v", err)
			require.Equal(t, s.Expect.Handled, test.State.Handled())
			require.Equal(t, s.Expect.Log, lines(&out))
		})
	}
}

func TestNominal(t *testing.T) {
	var out bytes.Buffer

	p := &sim.Platform{}
	test := newTest(p, &out)

	require.NoError(t, test.Run())
	require.True(t, test.State.Accrued())
	require.True(t, test.State.Handled())

	require.Equal(t, 2, p.Accesses)
	require.Equal(t, 1, p.Delivered)
	require.Zero(t, p.Unhandled)

	// the handler leaves the unit clear
	beu := p.BEU()
	require.False(t, beu.IsAccrued(buserror.EventAny))
	require.Equal(t, buserror.EventNone, beu.Cause())
}

func TestStuckAccruedStopsBeforeInterrupts(t *testing.T) {
	var out bytes.Buffer

	p := &sim.Platform{Faults: sim.Faults{StuckAccrued: true}}
	test := newTest(p, &out)

	err := test.Run()
	require.ErrorIs(t, err, ErrClear)
	require.Equal(t, ExitClear, ExitCode(err))

	// phase 2 never ran
	require.Equal(t, 1, p.Accesses)
	require.Zero(t, p.Delivered)
	require.False(t, test.State.Handled())
}

func TestNoAccrualNeverHandled(t *testing.T) {
	var out bytes.Buffer

	p := &sim.Platform{Faults: sim.Faults{NoAccrual: true}}
	test := newTest(p, &out)

	require.ErrorIs(t, test.Run(), ErrAccrual)
	require.False(t, test.State.Accrued())
	require.False(t, test.State.Handled())
	require.Zero(t, p.Delivered)
}

func TestHandleSpurious(t *testing.T) {
	var out bytes.Buffer

	p := &sim.Platform{Faults: sim.Faults{Cause: 1}}
	test := newTest(p, &out)
	beu := p.BEU()

	beu.EnableEvents(buserror.EventAll)
	p.Inject()
	require.Equal(t, buserror.EventInvalid, beu.Cause())

	test.Handle()

	require.False(t, test.State.Handled())
	require.Equal(t, buserror.EventNone, beu.Cause())
	// accrued events are left to the main flow
	require.True(t, beu.IsAccrued(buserror.EventAny))
	require.Empty(t, lines(&out))

	// nothing latched
	test.Handle()
	require.False(t, test.State.Handled())
}

func TestHandleSetsFlagOnce(t *testing.T) {
	var out bytes.Buffer

	p := &sim.Platform{}
	test := newTest(p, &out)
	beu := p.BEU()

	beu.EnableEvents(buserror.EventAll)
	p.Inject()

	test.Handle()
	require.True(t, test.State.Handled())
	require.False(t, beu.IsAccrued(buserror.EventAny))

	// a later spurious call does not reset the flag
	test.Handle()
	require.True(t, test.State.Handled())
	require.Equal(t, []string{"Handled TileLink bus error"}, lines(&out))
}

func TestClearIdempotent(t *testing.T) {
	p := &sim.Platform{}
	beu := p.BEU()

	for i := 0; i < 2; i++ {
		beu.ClearAccrued(buserror.EventAll)
		beu.ClearCause()
	}

	require.False(t, beu.IsAccrued(buserror.EventAny))
	require.Equal(t, buserror.EventNone, beu.Cause())

	var out bytes.Buffer
	require.NoError(t, newTest(p, &out).Run())
}

type tracedBEU struct {
	Peripheral
	trace *[]string
}

func (b tracedBEU) EnableLocalInterrupt(mask buserror.Event) {
	*b.trace = append(*b.trace, "enable-local")
	b.Peripheral.EnableLocalInterrupt(mask)
}

type tracedHart struct {
	Hart
	trace *[]string
}

func (h tracedHart) EnableInterrupts() {
	*h.trace = append(*h.trace, "enable-interrupts")
	h.Hart.EnableInterrupts()
}

func TestFenceOrdering(t *testing.T) {
	var out bytes.Buffer
	var trace []string

	p := &sim.Platform{Faults: sim.Faults{Deferred: true}}
	test := newTest(p, &out)

	test.BEU = tracedBEU{Peripheral: test.BEU, trace: &trace}
	test.Hart = tracedHart{Hart: test.Hart, trace: &trace}
	test.Inject = func() {
		trace = append(trace, "inject")
		p.Inject()
	}
	test.Fence = func() { trace = append(trace, "fence") }
	test.FenceI = func() { trace = append(trace, "fence.i") }
	test.Service = func() {
		trace = append(trace, "service")
		p.Service()
	}

	require.NoError(t, test.Run())
	require.Equal(t, []string{
		"inject", "fence",
		"enable-local", "enable-interrupts", "fence",
		"inject", "fence", "fence.i", "service",
	}, trace)
	require.True(t, test.State.Handled())
}

func TestExitCode(t *testing.T) {
	require.Equal(t, ExitPass, ExitCode(nil))
	require.Equal(t, ExitClear, ExitCode(ErrClear))
	require.Equal(t, ExitAccrual, ExitCode(ErrAccrual))
	require.Equal(t, ExitInterrupt, ExitCode(ErrInterrupt))
	require.Equal(t, ExitError, ExitCode(errors.New("unexpected")))
}
