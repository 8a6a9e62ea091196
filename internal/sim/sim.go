// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sim models a single hart with its Bus Error Unit and an error
// device, to exercise the bus error self-test without hardware.
package sim

import (
	"github.com/usbarmory/buserror-example/buserror"
	"github.com/usbarmory/buserror-example/irq"
)

// Default simulated memory map
const (
	ErrorDeviceBase = 0x3000
	BusErrorBase    = 0x1700000
	BusErrorIRQ     = 128
)

// Faults selects broken behaviours of the simulated hardware.
type Faults struct {
	// NoAccrual prevents events from accruing (and therefore from raising
	// the local interrupt).
	NoAccrual bool `yaml:"no_accrual"`
	// StuckAccrued prevents accrued events from being cleared.
	StuckAccrued bool `yaml:"stuck_accrued"`
	// NoInterrupt disconnects the hart-local interrupt line.
	NoInterrupt bool `yaml:"no_interrupt"`
	// Cause, when not zero, replaces the cause code latched on error.
	Cause uint64 `yaml:"cause"`
	// Deferred delays interrupt delivery until Service is invoked, rather
	// than taking it synchronously with the faulting access.
	Deferred bool `yaml:"deferred"`
}

// Platform represents the simulated hart, BEU and error device.
type Platform struct {
	// Hart identifier
	Hart int
	// Faults to apply
	Faults Faults
	// Dispatcher for hart-local interrupts
	Dispatcher irq.Dispatcher

	// Accesses counts the error device reads
	Accesses int
	// Delivered counts the interrupts taken
	Delivered int
	// Unhandled counts the interrupts taken without a registered handler
	Unhandled int

	// mstatus.MIE
	interrupts bool
	pending    bool

	// BEU registers
	cause   uint64
	value   uint64
	enable  uint64
	plic    uint64
	accrued uint64
	local   uint64
}

// BEU returns the driver for the simulated Bus Error Unit.
func (p *Platform) BEU() *buserror.BEU {
	return buserror.New(BusErrorBase, 0x1000, p.Hart, p)
}

// Read implements buserror.IO.
func (p *Platform) Read(addr uint64) uint64 {
	switch addr - BusErrorBase - uint64(p.Hart)*0x1000 {
	case buserror.BEU_CAUSE:
		return p.cause
	case buserror.BEU_VALUE:
		return p.value
	case buserror.BEU_ENABLE:
		return p.enable
	case buserror.BEU_PLIC_INTERRUPT:
		return p.plic
	case buserror.BEU_ACCRUED:
		return p.accrued
	case buserror.BEU_LOCAL_INTERRUPT:
		return p.local
	}

	return 0
}

// Write implements buserror.IO.
func (p *Platform) Write(addr uint64, val uint64) {
	switch addr - BusErrorBase - uint64(p.Hart)*0x1000 {
	case buserror.BEU_CAUSE:
		p.cause = val
	case buserror.BEU_VALUE:
		p.value = val
	case buserror.BEU_ENABLE:
		p.enable = val
	case buserror.BEU_PLIC_INTERRUPT:
		p.plic = val
	case buserror.BEU_ACCRUED:
		if p.Faults.StuckAccrued {
			val |= p.accrued
		}
		p.accrued = val
	case buserror.BEU_LOCAL_INTERRUPT:
		p.local = val
	}
}

// ID returns the simulated hart identifier.
func (p *Platform) ID() int {
	return p.Hart
}

// EnableInterrupts sets the simulated mstatus.MIE.
func (p *Platform) EnableInterrupts() {
	p.interrupts = true
}

// Load8 performs a simulated single byte read, reads from the error device
// raise a TileLink load/store error.
func (p *Platform) Load8(addr uint64) uint8 {
	if addr >= ErrorDeviceBase && addr < ErrorDeviceBase+0x1000 {
		p.Accesses++
		p.raise(buserror.CAUSE_LOAD_STORE, addr)
	}

	return 0
}

// Inject reads one byte from the error device.
func (p *Platform) Inject() {
	p.Load8(ErrorDeviceBase)
}

// Service delivers a deferred interrupt, if any.
func (p *Platform) Service() {
	if p.pending {
		p.take()
	}
}

func (p *Platform) raise(cause uint64, addr uint64) {
	ev := uint64(1) << cause

	if p.enable&ev == 0 {
		return
	}

	// cause and value latch only when cause is clear
	if p.cause == 0 {
		if p.Faults.Cause != 0 {
			cause = p.Faults.Cause
		}

		p.cause = cause
		p.value = addr
	}

	if !p.Faults.NoAccrual {
		p.accrued |= ev
	}

	if p.Faults.NoInterrupt || p.accrued&p.local == 0 {
		return
	}

	p.pending = true

	if !p.Faults.Deferred {
		p.take()
	}
}

func (p *Platform) take() {
	if !p.interrupts {
		return
	}

	p.pending = false
	p.Delivered++

	// interrupts are masked while the handler runs
	p.interrupts = false
	defer func() { p.interrupts = true }()

	if !p.Dispatcher.Dispatch(irq.Interrupt(BusErrorIRQ)) {
		p.Unhandled++
	}
}
