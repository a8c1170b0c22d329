// SPDX-License-Identifier: Unlicense OR MIT

package irq

import "testing"

func TestSourceBits(t *testing.T) {
	for s := Source(0); s < NumSources; s++ {
		b := IrqBits(0).With(s, true)
		if uint16(b) != 1<<s {
			t.Errorf("%v: set bit = %#x, want %#x", s, uint16(b), 1<<s)
		}
		if b != s.Bits() {
			t.Errorf("%v: Bits() = %#x, want %#x", s, s.Bits(), b)
		}
		if !b.Has(s) {
			t.Errorf("%v: Has = false", s)
		}
		if b.With(s, false) != 0 {
			t.Errorf("%v: clearing left %v", s, b.With(s, false))
		}
	}
}

func TestNamedBits(t *testing.T) {
	named := []IrqBits{VBlank, HBlank, VCounter, Timer0, Timer1, Timer2, Timer3,
		Serial, DMA0, DMA1, DMA2, DMA3, Keypad, Gamepak}
	if len(named) != NumSources {
		t.Fatalf("%d named sets, want %d", len(named), NumSources)
	}
	var union IrqBits
	for i, b := range named {
		if b != Source(i).Bits() {
			t.Errorf("named set %d = %#x, want %#x", i, b, Source(i).Bits())
		}
		union |= b
	}
	if union != All || All != 0x3fff {
		t.Errorf("union = %#x, All = %#x, want 0x3fff", union, All)
	}
}

func TestCombine(t *testing.T) {
	a := VBlank | Timer2
	b := Timer2 | Keypad
	if got := a | b; got != VBlank|Timer2|Keypad {
		t.Errorf("a|b = %v", got)
	}
	if got := a & b; got != Timer2 {
		t.Errorf("a&b = %v", got)
	}
	if got := a ^ b; got != VBlank|Keypad {
		t.Errorf("a^b = %v", got)
	}
	if got := ^a & All; got.Has(SourceVBlank) || got.Has(SourceTimer2) || !got.Has(SourceSerial) {
		t.Errorf("^a = %v", got)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	for _, u := range []uint16{0, 1, 0x2001, 0x3fff, 0xc000, 0xffff} {
		if got := uint16(IrqBits(u)); got != u {
			t.Errorf("round trip %#x = %#x", u, got)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		b    IrqBits
		want string
	}{
		{0, "{}"},
		{VBlank, "{vblank}"},
		{HBlank | DMA3 | Gamepak, "{hblank,dma3,gamepak}"},
		{Keypad | 0x8000, "{keypad,reserved}"},
	}
	for _, test := range tests {
		if got := test.b.String(); got != test.want {
			t.Errorf("%#x: String() = %q, want %q", uint16(test.b), got, test.want)
		}
	}
	if Source(20).String() != "reserved" {
		t.Errorf("Source(20) = %q", Source(20).String())
	}
}

func TestRegisterAddresses(t *testing.T) {
	if IE.Addr() != 0x0400_0200 || IF.Addr() != 0x0400_0202 || IME.Addr() != 0x0400_0208 {
		t.Errorf("IE %#x IF %#x IME %#x", IE.Addr(), IF.Addr(), IME.Addr())
	}
}
