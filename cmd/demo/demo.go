// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"eliasnaur.com/gba/irq"
	"eliasnaur.com/gba/kernel"
	"eliasnaur.com/gba/keys"
	"eliasnaur.com/gba/video"
)

var (
	// theColor is the key state seen by the last interrupt, shown as a
	// colour.
	theColor = kernel.UnsafeNewCell(video.White)
	// vblanks counts vertical blanks until the main loop drains it.
	vblanks = kernel.NewUint32Cell(0)
)

func irqHandler(b irq.IrqBits) {
	// The handler is never preempted, so it may read then write.
	if b.Has(irq.SourceVBlank) {
		vblanks.Write(vblanks.Read() + 1)
	}
	theColor.Write(video.Color(keys.Read()))
}

func setup() {
	kernel.SetHandler(irqHandler)
	video.DISPSTAT.Write(video.DisplayStatus(0).WithVBlankIRQ(true))
	irq.IE.Write(irq.VBlank)
	irq.IME.Write(true)
	video.DISPCNT.Write(video.DisplayControl(0).WithBG(0, true))
}

// frame waits for the next vblank and paints the backdrop: blue while
// Start is held, the handler's colour otherwise. It returns the vblanks
// counted since the previous call, more than one if the caller fell
// behind.
func frame() uint32 {
	kernel.VBlankIntrWait()
	n := vblanks.Swap(0)
	if keys.Read().Pressed(keys.Start) {
		video.BACKDROP.Write(video.Blue)
	} else {
		video.BACKDROP.Write(theColor.Read())
	}
	return n
}
