// SPDX-License-Identifier: Unlicense OR MIT

// Package bits implements the field accessors shared by the register
// value types. A field is either a single bit or an inclusive region of
// bits [low, high].
package bits

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Get reports whether bit is set in v.
func Get[T constraints.Unsigned](v T, bit uint) bool {
	return v&(1<<bit) != 0
}

// With returns v with bit set to on.
func With[T constraints.Unsigned](v T, bit uint, on bool) T {
	if on {
		return v | 1<<bit
	}
	return v &^ (1 << bit)
}

// mask returns the mask covering bits low through high.
func mask[T constraints.Unsigned](low, high uint) T {
	width := high - low + 1
	all := ^T(0)
	return all >> (8*uint(unsafe.Sizeof(all)) - width) << low
}

// Region returns the value of bits low through high of v, shifted down.
func Region[T constraints.Unsigned](v T, low, high uint) T {
	return (v & mask[T](low, high)) >> low
}

// WithRegion returns v with bits low through high replaced by val. Bits
// of val that don't fit the region are dropped.
func WithRegion[T constraints.Unsigned](v T, low, high uint, val T) T {
	m := mask[T](low, high)
	return v&^m | (val<<low)&m
}
