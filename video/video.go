// SPDX-License-Identifier: Unlicense OR MIT

// Package video exposes the display registers used to configure the
// screen and its interrupts.
package video

import (
	"eliasnaur.com/gba/bits"
	"eliasnaur.com/gba/volatile"
)

const (
	AddrDISPCNT  = 0x0400_0000
	AddrDISPSTAT = 0x0400_0004
	AddrVCOUNT   = 0x0400_0006

	AddrBGPalette = 0x0500_0000
)

var (
	DISPCNT  = volatile.NewRW[DisplayControl](AddrDISPCNT)
	DISPSTAT = volatile.NewRW[DisplayStatus](AddrDISPSTAT)
	// VCOUNT is the scanline being drawn, 0 to 227.
	VCOUNT = volatile.NewRO[uint8](AddrVCOUNT)
	// BACKDROP is the colour shown where no layer is drawn.
	BACKDROP = volatile.NewRW[Color](AddrBGPalette)
)

// DisplayControl is the value of DISPCNT.
type DisplayControl uint16

const (
	dispcntForcedBlank = 7
	dispcntBG0         = 8
	dispcntOBJ         = 12
)

// Mode returns the video mode, 0 to 5.
func (c DisplayControl) Mode() uint16 {
	return bits.Region(uint16(c), 0, 2)
}

// WithMode returns c with the video mode set. Bits beyond the 3-bit
// field are dropped.
func (c DisplayControl) WithMode(mode uint16) DisplayControl {
	return DisplayControl(bits.WithRegion(uint16(c), 0, 2, mode))
}

// ForcedBlank reports whether the display is blanked to white.
func (c DisplayControl) ForcedBlank() bool {
	return bits.Get(uint16(c), dispcntForcedBlank)
}

// WithForcedBlank returns c with forced blank on or off.
func (c DisplayControl) WithForcedBlank(on bool) DisplayControl {
	return DisplayControl(bits.With(uint16(c), dispcntForcedBlank, on))
}

// BG reports whether background layer n (0 to 3) is displayed.
func (c DisplayControl) BG(n int) bool {
	return bits.Get(uint16(c), dispcntBG0+uint(n))
}

// WithBG returns c with background layer n shown or hidden.
func (c DisplayControl) WithBG(n int, on bool) DisplayControl {
	return DisplayControl(bits.With(uint16(c), dispcntBG0+uint(n), on))
}

// OBJ reports whether sprites are displayed.
func (c DisplayControl) OBJ() bool {
	return bits.Get(uint16(c), dispcntOBJ)
}

// WithOBJ returns c with sprites shown or hidden.
func (c DisplayControl) WithOBJ(on bool) DisplayControl {
	return DisplayControl(bits.With(uint16(c), dispcntOBJ, on))
}

// DisplayStatus is the value of DISPSTAT. The three status bits are set
// by the hardware and ignored on write; the IRQ bits must be set for the
// display to raise the matching interrupt.
type DisplayStatus uint16

const (
	dispstatInVBlank    = 0
	dispstatInHBlank    = 1
	dispstatInVCount    = 2
	dispstatVBlankIRQ   = 3
	dispstatHBlankIRQ   = 4
	dispstatVCounterIRQ = 5
)

func (s DisplayStatus) InVBlank() bool   { return bits.Get(uint16(s), dispstatInVBlank) }
func (s DisplayStatus) InHBlank() bool   { return bits.Get(uint16(s), dispstatInHBlank) }
func (s DisplayStatus) InVCounter() bool { return bits.Get(uint16(s), dispstatInVCount) }
func (s DisplayStatus) VBlankIRQ() bool  { return bits.Get(uint16(s), dispstatVBlankIRQ) }
func (s DisplayStatus) HBlankIRQ() bool  { return bits.Get(uint16(s), dispstatHBlankIRQ) }
func (s DisplayStatus) VCounterIRQ() bool {
	return bits.Get(uint16(s), dispstatVCounterIRQ)
}

// WithVBlankIRQ returns s with the vblank interrupt request on or off.
func (s DisplayStatus) WithVBlankIRQ(on bool) DisplayStatus {
	return DisplayStatus(bits.With(uint16(s), dispstatVBlankIRQ, on))
}

// WithHBlankIRQ returns s with the hblank interrupt request on or off.
func (s DisplayStatus) WithHBlankIRQ(on bool) DisplayStatus {
	return DisplayStatus(bits.With(uint16(s), dispstatHBlankIRQ, on))
}

// WithVCounterIRQ returns s with the vcounter interrupt request on or
// off.
func (s DisplayStatus) WithVCounterIRQ(on bool) DisplayStatus {
	return DisplayStatus(bits.With(uint16(s), dispstatVCounterIRQ, on))
}

// VCounter is the scanline compared against VCOUNT for the vcounter
// status bit and interrupt.
func (s DisplayStatus) VCounter() uint8 {
	return uint8(bits.Region(uint16(s), 8, 15))
}

// WithVCounter returns s comparing VCOUNT against line.
func (s DisplayStatus) WithVCounter(line uint8) DisplayStatus {
	return DisplayStatus(bits.WithRegion(uint16(s), 8, 15, uint16(line)))
}

// Color is a 15-bit BGR colour.
type Color uint16

const (
	Black Color = 0
	White Color = 0x7fff
	Red   Color = 0x001f
	Green Color = 0x03e0
	Blue  Color = 0x7c00
)

// RGB returns the colour with the given 5-bit channels.
func RGB(r, g, b uint16) Color {
	return Color(0).WithRed(r).WithGreen(g).WithBlue(b)
}

func (c Color) Red() uint16   { return bits.Region(uint16(c), 0, 4) }
func (c Color) Green() uint16 { return bits.Region(uint16(c), 5, 9) }
func (c Color) Blue() uint16  { return bits.Region(uint16(c), 10, 14) }

func (c Color) WithRed(v uint16) Color   { return Color(bits.WithRegion(uint16(c), 0, 4, v)) }
func (c Color) WithGreen(v uint16) Color { return Color(bits.WithRegion(uint16(c), 5, 9, v)) }
func (c Color) WithBlue(v uint16) Color  { return Color(bits.WithRegion(uint16(c), 10, 14, v)) }

// Mode 3 is a single 240x160 bitmap of colours at the start of VRAM.
const (
	AddrVRAM = 0x0600_0000

	Mode3Width  = 240
	Mode3Height = 160
)

// Mode3 addresses the mode 3 bitmap.
type Mode3 struct{}

// Pixel returns the register of pixel (x, y). It panics if the pixel is
// off screen.
func (Mode3) Pixel(x, y int) volatile.RW[Color] {
	if x < 0 || x >= Mode3Width || y < 0 || y >= Mode3Height {
		panic("video: mode 3 pixel out of range")
	}
	return volatile.NewRW[Color](AddrVRAM + uintptr(y*Mode3Width+x)*2)
}

// Scanline returns line y of the bitmap. It panics if y is off screen.
func (Mode3) Scanline(y int) Scanline {
	if y < 0 || y >= Mode3Height {
		panic("video: mode 3 scanline out of range")
	}
	return Scanline{addr: AddrVRAM + uintptr(y*Mode3Width)*2}
}

// Scanline is one row of Mode3Width pixels.
type Scanline struct {
	addr uintptr
}

// Pixel returns the register of pixel x.
func (l Scanline) Pixel(x int) volatile.RW[Color] {
	if x < 0 || x >= Mode3Width {
		panic("video: mode 3 pixel out of range")
	}
	return volatile.NewRW[Color](l.addr + uintptr(x)*2)
}

// Fill writes c to every pixel of l.
func (l Scanline) Fill(c Color) {
	for x := 0; x < Mode3Width; x++ {
		l.Pixel(x).Write(c)
	}
}
