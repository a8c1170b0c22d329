// SPDX-License-Identifier: Unlicense OR MIT

// Package volatile provides typed handles to memory-mapped hardware
// registers.
//
// A handle is bound to one fixed address and one value type. Every Read is
// exactly one load and every Write exactly one store of the value type's
// width; nothing is cached, combined or skipped. Whether a register can be
// read, written or both is part of the handle's type: RO has no Write
// method and WO has no Read method.
//
// The value type must be 1, 2 or 4 bytes wide and consist of a single
// field, such as uint16, bool or a named integer type.
package volatile

// RO is a read-only register.
type RO[T any] struct {
	addr uintptr
}

// WO is a write-only register.
type WO[T any] struct {
	addr uintptr
}

// RW is a read-write register.
type RW[T any] struct {
	addr uintptr
}

// NewRO returns a read-only handle to the register at addr. The caller
// attests that addr is a readable register holding a T.
func NewRO[T any](addr uintptr) RO[T] {
	return RO[T]{addr: addr}
}

// NewWO returns a write-only handle to the register at addr. The caller
// attests that addr is a writable register holding a T.
func NewWO[T any](addr uintptr) WO[T] {
	return WO[T]{addr: addr}
}

// NewRW returns a read-write handle to the register at addr. The caller
// attests that addr is a readable and writable register holding a T.
func NewRW[T any](addr uintptr) RW[T] {
	return RW[T]{addr: addr}
}

// Addr returns the register's address.
func (r RO[T]) Addr() uintptr { return r.addr }

// Addr returns the register's address.
func (r WO[T]) Addr() uintptr { return r.addr }

// Addr returns the register's address.
func (r RW[T]) Addr() uintptr { return r.addr }

// Read loads the register.
func (r RO[T]) Read() T {
	return load[T](r.addr)
}

// Write stores v to the register.
func (r WO[T]) Write(v T) {
	store(r.addr, v)
}

// Read loads the register.
func (r RW[T]) Read() T {
	return load[T](r.addr)
}

// Write stores v to the register.
func (r RW[T]) Write(v T) {
	store(r.addr, v)
}

// ReadOnly returns a handle that can only read r.
func (r RW[T]) ReadOnly() RO[T] {
	return RO[T]{addr: r.addr}
}

// WriteOnly returns a handle that can only write r.
func (r RW[T]) WriteOnly() WO[T] {
	return WO[T]{addr: r.addr}
}
