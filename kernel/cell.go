// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"sync/atomic"

	"eliasnaur.com/gba/irq"
	"eliasnaur.com/gba/volatile"
)

// Cell holds a value shared between the main program and the interrupt
// handler. Read, Write and Swap are each one instruction, so an interrupt
// never observes a half-written value.
//
// The value lives in the low bytes of a 32-bit word and every access
// moves the whole word. A Cell must not be copied after first use.
type Cell[T any] struct {
	word uint32
}

// UnsafeNewCell returns a cell holding v. T must be 1, 2 or 4 bytes wide
// and a single field (an integer, a bool or a named type over one). A
// wider T is a programming error and halts the system.
func UnsafeNewCell[T any](v T) Cell[T] {
	switch volatile.Width[T]() {
	case 1, 2, 4:
	default:
		fatal("cell: value type is not 1, 2 or 4 bytes")
	}
	return Cell[T]{word: volatile.ToWord(v)}
}

// NewUint32Cell returns a cell holding v.
func NewUint32Cell(v uint32) Cell[uint32] { return Cell[uint32]{word: v} }

// NewInt32Cell returns a cell holding v.
func NewInt32Cell(v int32) Cell[int32] { return Cell[int32]{word: uint32(v)} }

// NewUint16Cell returns a cell holding v.
func NewUint16Cell(v uint16) Cell[uint16] { return Cell[uint16]{word: uint32(v)} }

// NewUint8Cell returns a cell holding v.
func NewUint8Cell(v uint8) Cell[uint8] { return Cell[uint8]{word: uint32(v)} }

// NewBoolCell returns a cell holding v.
func NewBoolCell(v bool) Cell[bool] { return Cell[bool]{word: volatile.ToWord(v)} }

// Read loads the value.
func (c *Cell[T]) Read() T {
	return volatile.FromWord[T](loadWord(&c.word))
}

// Write stores v.
func (c *Cell[T]) Write(v T) {
	storeWord(&c.word, volatile.ToWord(v))
}

// Swap stores v and returns the previous value as one indivisible
// exchange. Use it whenever the main program needs to both read and
// replace a value the handler may change.
func (c *Cell[T]) Swap(v T) T {
	return volatile.FromWord[T](swapWord(&c.word, volatile.ToWord(v)))
}

// Handler is an interrupt handler. It is called with the sources that
// were just acknowledged.
type Handler func(irq.IrqBits)

// HandlerCell holds an optional Handler. The cell stores a single
// pointer, which is one load or store on every target.
type HandlerCell struct {
	p atomic.Pointer[Handler]
}

// Read returns the handler, or nil if none is set.
func (c *HandlerCell) Read() Handler {
	if p := c.p.Load(); p != nil {
		return *p
	}
	return nil
}

// Write sets the handler. A nil h clears it.
func (c *HandlerCell) Write(h Handler) {
	c.p.Store(handlerRef(h))
}

// Swap sets the handler and returns the previous one.
func (c *HandlerCell) Swap(h Handler) Handler {
	if p := c.p.Swap(handlerRef(h)); p != nil {
		return *p
	}
	return nil
}

func handlerRef(h Handler) *Handler {
	if h == nil {
		return nil
	}
	return &h
}
