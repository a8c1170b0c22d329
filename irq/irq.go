// SPDX-License-Identifier: Unlicense OR MIT

// Package irq describes the console's interrupt controller: the set of
// interrupt sources and the three registers that gate them.
//
// IrqBits values are plain integers; combining them has no effect on the
// hardware until the result is written to a register.
package irq

import (
	"strings"

	"eliasnaur.com/gba/bits"
	"eliasnaur.com/gba/volatile"
)

// Source is an interrupt source, numbered by its bit in IrqBits.
type Source uint

const (
	SourceVBlank Source = iota
	SourceHBlank
	SourceVCounter
	SourceTimer0
	SourceTimer1
	SourceTimer2
	SourceTimer3
	SourceSerial
	SourceDMA0
	SourceDMA1
	SourceDMA2
	SourceDMA3
	SourceKeypad
	SourceGamepak

	NumSources = iota
)

var sourceNames = [NumSources]string{
	"vblank", "hblank", "vcounter",
	"timer0", "timer1", "timer2", "timer3",
	"serial",
	"dma0", "dma1", "dma2", "dma3",
	"keypad", "gamepak",
}

func (s Source) String() string {
	if s < NumSources {
		return sourceNames[s]
	}
	return "reserved"
}

// Bits returns the set containing only s.
func (s Source) Bits() IrqBits {
	return IrqBits(0).With(s, true)
}

// IrqBits is a set of interrupt sources. Bits 14 and 15 are reserved.
type IrqBits uint16

const (
	VBlank   IrqBits = 1 << SourceVBlank
	HBlank   IrqBits = 1 << SourceHBlank
	VCounter IrqBits = 1 << SourceVCounter
	Timer0   IrqBits = 1 << SourceTimer0
	Timer1   IrqBits = 1 << SourceTimer1
	Timer2   IrqBits = 1 << SourceTimer2
	Timer3   IrqBits = 1 << SourceTimer3
	Serial   IrqBits = 1 << SourceSerial
	DMA0     IrqBits = 1 << SourceDMA0
	DMA1     IrqBits = 1 << SourceDMA1
	DMA2     IrqBits = 1 << SourceDMA2
	DMA3     IrqBits = 1 << SourceDMA3
	Keypad   IrqBits = 1 << SourceKeypad
	Gamepak  IrqBits = 1 << SourceGamepak

	// All is every defined source.
	All IrqBits = 1<<NumSources - 1
)

// Has reports whether s is in b.
func (b IrqBits) Has(s Source) bool {
	return bits.Get(uint16(b), uint(s))
}

// With returns b with s added (on) or removed.
func (b IrqBits) With(s Source, on bool) IrqBits {
	return IrqBits(bits.With(uint16(b), uint(s), on))
}

// Sources returns the defined sources in b in bit order.
func (b IrqBits) Sources() []Source {
	var srcs []Source
	for s := Source(0); s < NumSources; s++ {
		if b.Has(s) {
			srcs = append(srcs, s)
		}
	}
	return srcs
}

func (b IrqBits) String() string {
	if b == 0 {
		return "{}"
	}
	var names []string
	for _, s := range b.Sources() {
		names = append(names, s.String())
	}
	if b&^All != 0 {
		names = append(names, "reserved")
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Register addresses.
const (
	AddrIE  = 0x0400_0200
	AddrIF  = 0x0400_0202
	AddrIME = 0x0400_0208

	// AddrIntrWaitFlags is the IWRAM word the BIOS wait routines test. The
	// interrupt runtime records every acknowledged source there.
	AddrIntrWaitFlags = 0x0300_7FF8
	// AddrVector holds the address of the interrupt entry point called by
	// the BIOS.
	AddrVector = 0x0300_7FFC
)

var (
	// IE selects the sources allowed to request an interrupt.
	IE = volatile.NewRW[IrqBits](AddrIE)

	// IF holds the pending sources. Writing a 1 bit clears it; writing 0
	// leaves it unchanged. The interrupt runtime acknowledges sources for
	// you, so programs rarely touch IF.
	IF = volatile.NewRW[IrqBits](AddrIF)

	// IME is the master enable. While it is false no source interrupts
	// the CPU, though pending sources still end a halt.
	IME = volatile.NewRW[bool](AddrIME)
)
