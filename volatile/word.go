// SPDX-License-Identifier: Unlicense OR MIT

package volatile

import "unsafe"

// Width returns the size in bytes of a T.
func Width[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

// ToWord returns the bits of v in the low bytes of a 32-bit word. T must
// be at most 4 bytes wide.
//
// The layout matches the console's little-endian memory: a 1 or 2 byte
// value stored at address a is found in the low bytes of the word at a.
func ToWord[T any](v T) uint32 {
	var w uint32
	*(*T)(unsafe.Pointer(&w)) = v
	return w
}

// FromWord is the inverse of ToWord.
func FromWord[T any](w uint32) T {
	return *(*T)(unsafe.Pointer(&w))
}
