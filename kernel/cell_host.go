// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package kernel

import "sync/atomic"

func loadWord(p *uint32) uint32 {
	return atomic.LoadUint32(p)
}

func storeWord(p *uint32, v uint32) {
	atomic.StoreUint32(p, v)
}

func swapWord(p *uint32, v uint32) uint32 {
	return atomic.SwapUint32(p, v)
}
