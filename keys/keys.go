// SPDX-License-Identifier: Unlicense OR MIT

// Package keys reads the keypad.
package keys

import (
	"eliasnaur.com/gba/bits"
	"eliasnaur.com/gba/volatile"
)

// Register addresses.
const (
	AddrKEYINPUT = 0x0400_0130
	AddrKEYCNT   = 0x0400_0132
)

var (
	// KEYINPUT is the current key state.
	KEYINPUT = volatile.NewRO[KeyInput](AddrKEYINPUT)
	// KEYCNT selects the key presses that raise the keypad interrupt.
	KEYCNT = volatile.NewRW[KeyControl](AddrKEYCNT)
)

// Key is a keypad button, numbered by its KEYINPUT bit.
type Key uint

const (
	A Key = iota
	B
	Select
	Start
	Right
	Left
	Up
	Down
	R
	L

	NumKeys = iota
)

// Released is the KEYINPUT value with no key held.
const Released KeyInput = 1<<NumKeys - 1

// KeyInput is the value of KEYINPUT. The hardware reports a held key as
// a 0 bit; Pressed hides that.
type KeyInput uint16

// Pressed reports whether k is held.
func (in KeyInput) Pressed(k Key) bool {
	return !bits.Get(uint16(in), uint(k))
}

// WithPressed returns in with k held (or released).
func (in KeyInput) WithPressed(k Key, pressed bool) KeyInput {
	return KeyInput(bits.With(uint16(in), uint(k), !pressed))
}

// ChangesSince returns the keys whose state differs from prev.
func (in KeyInput) ChangesSince(prev KeyInput) KeyChanges {
	return KeyChanges(in ^ prev)
}

// KeyChanges is a set of keys that changed between two readings.
type KeyChanges uint16

// Changed reports whether k is in c.
func (c KeyChanges) Changed(k Key) bool {
	return bits.Get(uint16(c), uint(k))
}

// Read returns the current key state.
func Read() KeyInput {
	return KEYINPUT.Read()
}

// KeyControl is the value of KEYCNT. The low bits select keys; the
// interrupt fires when any selected key is held, or all of them if
// AllRequired is set. It is meant for waking from a halt, not for
// reading input.
type KeyControl uint16

const (
	keycntIRQ         = 14
	keycntAllRequired = 15
)

// Has reports whether k is selected.
func (c KeyControl) Has(k Key) bool {
	return bits.Get(uint16(c), uint(k))
}

// With returns c with k selected (or not).
func (c KeyControl) With(k Key, on bool) KeyControl {
	return KeyControl(bits.With(uint16(c), uint(k), on))
}

// IRQ reports whether the keypad interrupt is enabled.
func (c KeyControl) IRQ() bool {
	return bits.Get(uint16(c), keycntIRQ)
}

// WithIRQ returns c with the keypad interrupt enabled (or disabled).
func (c KeyControl) WithIRQ(on bool) KeyControl {
	return KeyControl(bits.With(uint16(c), keycntIRQ, on))
}

// AllRequired reports whether every selected key must be held.
func (c KeyControl) AllRequired() bool {
	return bits.Get(uint16(c), keycntAllRequired)
}

// WithAllRequired returns c requiring all selected keys (on) or any.
func (c KeyControl) WithAllRequired(on bool) KeyControl {
	return KeyControl(bits.With(uint16(c), keycntAllRequired, on))
}

// Triggers reports whether the key state in raises the keypad interrupt
// under c.
func (c KeyControl) Triggers(in KeyInput) bool {
	if !c.IRQ() {
		return false
	}
	sel := uint16(c) & uint16(Released)
	pressed := ^uint16(in) & uint16(Released)
	if c.AllRequired() {
		return sel != 0 && pressed&sel == sel
	}
	return pressed&sel != 0
}
