// SPDX-License-Identifier: Unlicense OR MIT

//go:build gba

package kernel

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

//go:inline
func loadWord(p *uint32) uint32 {
	return volatile.LoadUint32(p)
}

//go:inline
func storeWord(p *uint32, v uint32) {
	volatile.StoreUint32(p, v)
}

// swapWord exchanges *p and v with swp. The ARM7TDMI has no other atomic
// read-modify-write; swp locks the bus for the read and write, and an
// interrupt is only taken between instructions.
func swapWord(p *uint32, v uint32) uint32 {
	return uint32(arm.AsmFull("swp {}, {v}, [{p}]", map[string]interface{}{
		"v": v,
		"p": unsafe.Pointer(p),
	}))
}
