// SPDX-License-Identifier: Unlicense OR MIT

//go:build gba

package volatile

import (
	"unsafe"

	rv "runtime/volatile"
)

//go:inline
func load[T any](addr uintptr) T {
	var w uint32
	switch Width[T]() {
	case 1:
		w = uint32(rv.LoadUint8((*uint8)(unsafe.Pointer(addr))))
	case 2:
		w = uint32(rv.LoadUint16((*uint16)(unsafe.Pointer(addr))))
	default:
		w = rv.LoadUint32((*uint32)(unsafe.Pointer(addr)))
	}
	return FromWord[T](w)
}

//go:inline
func store[T any](addr uintptr, v T) {
	w := ToWord(v)
	switch Width[T]() {
	case 1:
		rv.StoreUint8((*uint8)(unsafe.Pointer(addr)), uint8(w))
	case 2:
		rv.StoreUint16((*uint16)(unsafe.Pointer(addr)), uint16(w))
	default:
		rv.StoreUint32((*uint32)(unsafe.Pointer(addr)), w)
	}
}
