// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "eliasnaur.com/gba/irq"

// IntrWait suspends the program until one of the target sources has been
// acknowledged by the interrupt runtime, then removes the matched sources
// from the record and returns. IME is left enabled.
//
// If clearOldFlags is set, target occurrences recorded before the call are
// discarded first, so only a new interrupt ends the wait. Otherwise an
// occurrence already recorded returns immediately.
//
// There is no timeout. Waiting for a source that is not enabled in IE, or
// that never fires, never returns.
func IntrWait(clearOldFlags bool, target irq.IrqBits) {
	// The record is only read and rewritten with IME off, so dispatch
	// cannot add a source between the two.
	irq.IME.Write(false)
	if clearOldFlags {
		intrWaitFlags.Write(intrWaitFlags.Read() &^ target)
	}
	for {
		flags := intrWaitFlags.Read()
		if matched := flags & target; matched != 0 {
			intrWaitFlags.Write(flags &^ matched)
			irq.IME.Write(true)
			return
		}
		// Halting with IME off still wakes on IE&IF, without losing an
		// interrupt that arrives before the halt. Enabling IME then lets
		// it be dispatched.
		Halt()
		irq.IME.Write(true)
		irq.IME.Write(false)
	}
}

// VBlankIntrWait waits for the next vertical blank interrupt. It is
// IntrWait(true, irq.VBlank).
func VBlankIntrWait() {
	IntrWait(true, irq.VBlank)
}
