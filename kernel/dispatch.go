// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"eliasnaur.com/gba/irq"
	"eliasnaur.com/gba/volatile"
)

// Process-wide interrupt state. Both values start empty, are written by
// the main program only through SetHandler and IntrWait, and are updated
// by dispatch on every interrupt.
var (
	// irqHandler is the handler dispatch calls after acknowledging.
	irqHandler HandlerCell

	// intrWaitFlags accumulates every source dispatch has acknowledged
	// until IntrWait consumes it. It is the word the BIOS wait routines
	// poll, so it lives at the BIOS's address rather than in a Go
	// variable.
	intrWaitFlags = volatile.NewRW[irq.IrqBits](irq.AddrIntrWaitFlags)

	dispatches = NewUint32Cell(0)
	handled    = NewUint32Cell(0)
)

// SetHandler sets the function called on every interrupt. A nil h
// removes it; interrupts are then still acknowledged and recorded for
// IntrWait, but nothing else happens.
//
// The handler runs with interrupts disabled, on the interrupt stack, and
// must not block. A panic in the handler halts the system.
func SetHandler(h Handler) {
	irqHandler.Write(h)
}

// RegisteredHandler returns the handler set by SetHandler.
func RegisteredHandler() Handler {
	return irqHandler.Read()
}

// DispatchStats counts interrupt entries.
type DispatchStats struct {
	// Dispatches is the number of times the interrupt entry ran.
	Dispatches uint32
	// Handled is the number of those that called a handler.
	Handled uint32
}

// Stats returns the interrupt entry counters.
func Stats() DispatchStats {
	return DispatchStats{
		Dispatches: dispatches.Read(),
		Handled:    handled.Read(),
	}
}

// dispatch is the body of the interrupt entry point. The CPU has masked
// interrupts before calling it and restores the interrupted context
// after it returns.
func dispatch() {
	fired := irq.IF.Read() & irq.IE.Read()
	// Acknowledge before calling the handler, so that a source firing
	// again while the handler runs is pending again rather than lost.
	irq.IF.Write(fired)
	intrWaitFlags.Write(intrWaitFlags.Read() | fired)
	dispatches.Write(dispatches.Read() + 1)

	h := irqHandler.Read()
	if h == nil {
		return
	}
	handled.Write(handled.Read() + 1)
	callHandler(h, fired)
}

func callHandler(h Handler, fired irq.IrqBits) {
	defer func() {
		if err := recover(); err != nil {
			fatal("fault in interrupt handler")
		}
	}()
	h(fired)
}
