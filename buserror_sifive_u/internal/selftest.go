// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago
// +build tamago

package platform

import (
	"fmt"
	"log"

	"github.com/usbarmory/tamago/riscv64"
	"github.com/usbarmory/tamago/soc/sifive/fu540"

	"github.com/usbarmory/buserror-example/buserror"
	"github.com/usbarmory/buserror-example/internal/reg"
	"github.com/usbarmory/buserror-example/irq"
	"github.com/usbarmory/buserror-example/mem"
	"github.com/usbarmory/buserror-example/selftest"
)

// Hart represents the hart running the self-test.
type Hart struct {
	cpu *riscv64.CPU
}

// CurrentHart returns the hart executing the caller.
func CurrentHart() *Hart {
	return &Hart{cpu: fu540.RV64}
}

// ID returns the hart identifier.
func (h *Hart) ID() int {
	return int(h.cpu.ID())
}

// EnableInterrupts enables the BEU hart-local interrupt and machine mode
// interrupts.
func (h *Hart) EnableInterrupts() {
	irq.EnableLocal(mem.BusErrorInterrupt)
	irq.EnableInterrupts()
}

// BEU returns the Bus Error Unit of the hart.
func (h *Hart) BEU() *buserror.BEU {
	return unit(h.ID())
}

func unit(hart int) *buserror.BEU {
	return buserror.New(mem.BusErrorBase, mem.BusErrorStride, hart, reg.MMIO{})
}

// Run executes the bus error self-test on the current hart.
func Run(l *log.Logger) error {
	var d irq.Dispatcher

	hart := CurrentHart()
	beu := hart.BEU()

	test := &selftest.Test{
		BEU:  beu,
		Hart: hart,
		Inject: func() {
			mem.Load8(mem.ErrorDeviceBase)
		},
		Service: func() {
			irq.Service(&d)
		},
		Log: l,
	}

	d.Register(irq.Interrupt(mem.BusErrorInterrupt), test.Handle)

	d.Register(irq.LOAD_ACCESS_FAULT, func() {
		l.Printf("error device access trapped by the CPU, not absorbed by the BEU")
	})

	restore, err := irq.Init(irq.Window{Base: mem.ErrorDeviceBase, Size: mem.ErrorDeviceSize})

	if err != nil {
		return fmt.Errorf("could not install trap vector, %v", err)
	}

	defer restore()

	l.Printf("bus error self-test hart:%d beu:%#x error device:%#x", hart.ID(), beu.Base, mem.ErrorDeviceBase)

	err = test.Run()

	if err == nil {
		l.Printf("bus error reported at %#x", beu.Value())
	}

	return err
}

// Dump returns the Bus Error Unit registers of a hart, which must be lower
// than mem.Harts.
func Dump(hart int) string {
	beu := unit(hart)
	r := func(off uint64) uint64 { return beu.IO.Read(beu.Base + off) }

	return fmt.Sprintf("BEU:%d base:%#x cause:%d (%s) value:%#x enable:%#x plic:%#x accrued:%#x local:%#x",
		hart, beu.Base,
		r(buserror.BEU_CAUSE), beu.Cause(),
		r(buserror.BEU_VALUE),
		r(buserror.BEU_ENABLE),
		r(buserror.BEU_PLIC_INTERRUPT),
		r(buserror.BEU_ACCRUED),
		r(buserror.BEU_LOCAL_INTERRUPT))
}
