// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package kernel

import (
	"testing"

	"eliasnaur.com/gba/irq"
	"eliasnaur.com/gba/keys"
	"eliasnaur.com/gba/sim"
	"eliasnaur.com/gba/video"
	"eliasnaur.com/gba/volatile"
)

const addrTM0CNT = 0x0400_0100

func startTimer(addr uintptr, reload, control uint16) {
	volatile.NewWO[uint16](addr).Write(reload)
	volatile.NewWO[uint16](addr + 2).Write(control)
}

func enableVBlank() {
	video.DISPSTAT.Write(video.DisplayStatus(0).WithVBlankIRQ(true))
	irq.IE.Write(irq.VBlank)
}

func TestIntrWaitIgnoresOldFlag(t *testing.T) {
	m := newMachine(t, sim.Config{})
	enableVBlank()
	intrWaitFlags.Write(irq.VBlank)
	m.Step(100)
	start := m.Cycles()
	want := start + m.CyclesToVBlank()
	IntrWait(true, irq.VBlank)
	if m.Halts() == 0 {
		t.Fatal("returned without halting on an old occurrence")
	}
	if got := m.Cycles(); got != want {
		t.Errorf("woke at cycle %d, want %d (next vblank)", got, want)
	}
	if m.Line() != sim.VisibleLines {
		t.Errorf("woke on line %d, want %d", m.Line(), sim.VisibleLines)
	}
	if f := intrWaitFlags.Read(); f.Has(irq.SourceVBlank) {
		t.Errorf("record still holds %v", f)
	}
}

func TestIntrWaitReturnsOnRecordedFlag(t *testing.T) {
	m := newMachine(t, sim.Config{})
	enableVBlank()
	intrWaitFlags.Write(irq.VBlank | irq.Timer0)
	start := m.Cycles()
	IntrWait(false, irq.VBlank)
	if m.Halts() != 0 || m.Cycles() != start {
		t.Errorf("halted %d times over %d cycles, want immediate return", m.Halts(), m.Cycles()-start)
	}
	if f := intrWaitFlags.Read(); f != irq.Timer0 {
		t.Errorf("record = %v, want only the unmatched %v", f, irq.Timer0)
	}
}

func TestIntrWaitClearsOnlyMatched(t *testing.T) {
	m := newMachine(t, sim.Config{})
	irq.IE.Write(irq.Serial | irq.DMA0)
	intrWaitFlags.Write(irq.Keypad)
	m.Raise(irq.DMA0)
	IntrWait(true, irq.Serial|irq.DMA0)
	if f := intrWaitFlags.Read(); f != irq.Keypad {
		t.Errorf("record = %v, want %v", f, irq.Keypad)
	}
}

func TestIntrWaitEnablesIME(t *testing.T) {
	m := newMachine(t, sim.Config{})
	enableVBlank()
	irq.IME.Write(false)
	var calls int
	SetHandler(func(irq.IrqBits) { calls++ })
	VBlankIntrWait()
	if !irq.IME.Read() {
		t.Error("IME off after IntrWait")
	}
	if calls != 1 || m.Entries() != 1 {
		t.Errorf("handler calls %d, entries %d, want 1", calls, m.Entries())
	}
}

func TestVBlankIntrWaitFrames(t *testing.T) {
	m := newMachine(t, sim.Config{})
	enableVBlank()
	frames := NewUint32Cell(0)
	SetHandler(func(b irq.IrqBits) {
		if b.Has(irq.SourceVBlank) {
			frames.Write(frames.Read() + 1)
		}
	})
	for i := 0; i < 3; i++ {
		VBlankIntrWait()
		if m.Line() != sim.VisibleLines {
			t.Fatalf("frame %d: woke on line %d", i, m.Line())
		}
	}
	if n := frames.Read(); n != 3 {
		t.Errorf("handler saw %d vblanks, want 3", n)
	}
	if got, want := m.Cycles(), uint64(sim.VisibleLines*sim.CyclesPerLine+2*sim.CyclesPerFrame); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

func TestIntrWaitSkipsOtherSources(t *testing.T) {
	m := newMachine(t, sim.Config{})
	// HBlank fires every line and wakes the CPU, but only a vblank may end
	// the wait.
	video.DISPSTAT.Write(video.DisplayStatus(0).WithVBlankIRQ(true).WithHBlankIRQ(true))
	irq.IE.Write(irq.VBlank | irq.HBlank)
	IntrWait(true, irq.VBlank)
	if m.Line() != sim.VisibleLines {
		t.Errorf("woke on line %d, want %d", m.Line(), sim.VisibleLines)
	}
	if m.Halts() <= sim.VisibleLines {
		t.Errorf("%d halts, want one per hblank", m.Halts())
	}
	if f := intrWaitFlags.Read(); f != irq.HBlank {
		t.Errorf("record = %v, want %v left", f, irq.HBlank)
	}
}

func TestIntrWaitTimer(t *testing.T) {
	m := newMachine(t, sim.Config{})
	const period = 0x100
	irq.IE.Write(irq.Timer0)
	// Reload 0xff00, prescaler 1, IRQ and enable.
	startTimer(addrTM0CNT, 0x10000-period, 0x80|0x40)
	start := m.Cycles()
	IntrWait(true, irq.Timer0)
	if got := m.Cycles() - start; got != period {
		t.Errorf("woke after %d cycles, want %d", got, period)
	}
	IntrWait(true, irq.Timer0)
	if got := m.Cycles() - start; got != 2*period {
		t.Errorf("second wake after %d cycles, want %d", got, 2*period)
	}
}

func TestIntrWaitNeverEnabledHangs(t *testing.T) {
	m := newMachine(t, sim.Config{HaltBudget: 4 * sim.CyclesPerFrame})
	irq.IME.Write(true)
	defer func() {
		if r := recover(); r != sim.ErrHung {
			t.Fatalf("got %v, want %v", r, sim.ErrHung)
		}
		if m.Entries() != 0 {
			t.Errorf("%d interrupt entries, want none", m.Entries())
		}
	}()
	IntrWait(true, irq.Timer2)
	t.Fatal("IntrWait returned for a source that is never enabled")
}

func TestIntrWaitKeypad(t *testing.T) {
	m := newMachine(t, sim.Config{})
	keys.KEYCNT.Write(keys.KeyControl(0).With(keys.A, true).WithIRQ(true))
	irq.IE.Write(irq.Keypad | irq.Timer0)
	// The timer stands in for the player: first B is pressed, which KEYCNT
	// ignores, then A.
	var ticks int
	SetHandler(func(b irq.IrqBits) {
		if !b.Has(irq.SourceTimer0) {
			return
		}
		ticks++
		switch ticks {
		case 1:
			m.SetKeys(keys.Released.WithPressed(keys.B, true))
		case 2:
			m.SetKeys(keys.Released.WithPressed(keys.A, true))
		}
	})
	startTimer(addrTM0CNT, 0xff00, 0x80|0x40)
	IntrWait(true, irq.Keypad)
	if ticks != 2 {
		t.Errorf("woke after %d timer ticks, want 2", ticks)
	}
	if !keys.Read().Pressed(keys.A) {
		t.Error("woke without A held")
	}
	if f := intrWaitFlags.Read(); f.Has(irq.SourceKeypad) {
		t.Errorf("record still holds %v", f)
	}
}
