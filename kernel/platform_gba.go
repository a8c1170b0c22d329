// SPDX-License-Identifier: Unlicense OR MIT

//go:build gba

package kernel

import (
	"device/arm"
	"unsafe"

	"eliasnaur.com/gba/irq"
	"eliasnaur.com/gba/volatile"
)

// The BIOS IRQ vector saves r0-r3, r12 and lr, then calls the address
// stored at irq.AddrVector in ARM state with IRQs masked. irqEntry
// follows the AAPCS, so it can be called directly.

//export gba_irq_entry
func irqEntry() {
	dispatch()
}

//go:extern gba_irq_entry
var irqEntryAddr [0]byte

var vector = volatile.NewWO[uintptr](irq.AddrVector)

func init() {
	vector.Write(uintptr(unsafe.Pointer(&irqEntryAddr)))
}

// Halt stops the CPU until an enabled interrupt is requested (BIOS
// Halt). In ARM state the BIOS function number is in bits 16-23.
func Halt() {
	arm.Asm("swi 0x020000")
}

func debugMapped() bool {
	return true
}

func halt() {
	irq.IME.Write(false)
	irq.IE.Write(0)
	for {
		arm.Asm("swi 0x020000")
	}
}
