// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package buserror implements a driver for the SiFive Bus Error Unit (BEU),
// devicetree compatible "sifive,buserror0".
//
// Each hart has its own BEU instance which latches TileLink bus errors and
// ECC events, accrues them in a pollable bitmask and optionally raises a
// hart-local interrupt.
package buserror

// BEU registers
const (
	BEU_CAUSE           = 0x00
	BEU_VALUE           = 0x08
	BEU_ENABLE          = 0x10
	BEU_PLIC_INTERRUPT  = 0x18
	BEU_ACCRUED         = 0x20
	BEU_LOCAL_INTERRUPT = 0x28
)

// IO represents the register access method for a BEU instance.
type IO interface {
	Read(addr uint64) uint64
	Write(addr uint64, val uint64)
}

// BEU represents a per-hart Bus Error Unit instance.
type BEU struct {
	// Base register
	Base uint64
	// Hart is the hart served by this instance
	Hart int
	// IO is the register access method
	IO IO
}

// New returns the BEU instance for a hart, given the base address of hart 0
// instance and the per-hart register stride.
func New(base uint64, stride uint64, hart int, io IO) *BEU {
	return &BEU{
		Base: base + uint64(hart)*stride,
		Hart: hart,
		IO:   io,
	}
}

func (hw *BEU) read(off uint64) uint64 {
	return hw.IO.Read(hw.Base + off)
}

func (hw *BEU) write(off uint64, val uint64) {
	hw.IO.Write(hw.Base+off, val)
}

// ClearAccrued clears the accrued events selected by mask.
func (hw *BEU) ClearAccrued(mask Event) {
	accrued := hw.read(BEU_ACCRUED)
	hw.write(BEU_ACCRUED, accrued&^uint64(mask))
}

// ClearCause resets the cause register, re-arming event latching.
func (hw *BEU) ClearCause() {
	hw.write(BEU_CAUSE, 0)
}

// EnableEvents sets the events reported by the unit.
func (hw *BEU) EnableEvents(mask Event) {
	hw.write(BEU_ENABLE, uint64(mask))
}

// IsAccrued returns whether any of the events selected by mask accrued.
func (hw *BEU) IsAccrued(mask Event) bool {
	return hw.read(BEU_ACCRUED)&uint64(mask) != 0
}

// EnableLocalInterrupt sets the events raising the hart-local interrupt.
func (hw *BEU) EnableLocalInterrupt(mask Event) {
	hw.write(BEU_LOCAL_INTERRUPT, uint64(mask))
}

// Cause returns the classification of the most recent event.
func (hw *BEU) Cause() Event {
	return Classify(hw.read(BEU_CAUSE))
}

// Value returns the physical address of the access which caused the most
// recent event.
func (hw *BEU) Value() uint64 {
	return hw.read(BEU_VALUE)
}
