// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package kernel

// ErrHalted is the panic value of a halted system.
const ErrHalted = kernError("system halted")

// Platform is the console the kernel runs on when not built for the
// hardware.
type Platform interface {
	// SetVector installs the interrupt entry point. The platform calls it
	// with interrupts masked whenever IME is set and IE&IF is non-zero.
	SetVector(entry func())
	// Halt stops the CPU until IE&IF is non-zero, servicing the
	// interrupt first if IME is set.
	Halt()
}

var platform Platform

// Attach makes p the platform and installs the interrupt entry point.
func Attach(p Platform) {
	platform = p
	p.SetVector(irqEntry)
}

func irqEntry() {
	dispatch()
}

// Halt stops the CPU until an enabled interrupt is requested.
func Halt() {
	if platform == nil {
		fatal("halt: no platform attached")
	}
	platform.Halt()
}

// debugMapped reports whether the debug port can be accessed. Without a
// platform nothing serves its addresses.
func debugMapped() bool {
	return platform != nil
}

func halt() {
	panic(ErrHalted)
}
