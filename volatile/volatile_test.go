// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package volatile

import (
	"errors"
	"testing"
)

const ramBase = 0x0200_0000

type color uint16

func withRAM(t *testing.T) *RAM {
	t.Helper()
	ram := NewRAM(ramBase, 0x100)
	if err := Map(ram.Base(), ram.End(), ram); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Unmap(ram.Base()) })
	return ram
}

func record(t *testing.T) *[]Access {
	t.Helper()
	var log []Access
	t.Cleanup(Trace(func(a Access) { log = append(log, a) }))
	return &log
}

func TestReadWriteRoundTrip(t *testing.T) {
	withRAM(t)
	r8 := NewRW[uint8](ramBase)
	r16 := NewRW[uint16](ramBase + 0x10)
	r32 := NewRW[int32](ramBase + 0x20)
	rb := NewRW[bool](ramBase + 0x30)
	rc := NewRW[color](ramBase + 0x40)
	for _, v := range []uint32{0, 1, 0x7f, 0x80, 0xff, 0x1234, 0xffff, 0xdeadbeef} {
		r8.Write(uint8(v))
		if got := r8.Read(); got != uint8(v) {
			t.Errorf("uint8: wrote %#x, read %#x", uint8(v), got)
		}
		r16.Write(uint16(v))
		if got := r16.Read(); got != uint16(v) {
			t.Errorf("uint16: wrote %#x, read %#x", uint16(v), got)
		}
		r32.Write(int32(v))
		if got := r32.Read(); got != int32(v) {
			t.Errorf("int32: wrote %#x, read %#x", int32(v), got)
		}
		rc.Write(color(v))
		if got := rc.Read(); got != color(v) {
			t.Errorf("color: wrote %#x, read %#x", color(v), got)
		}
	}
	for _, v := range []bool{true, false, true} {
		rb.Write(v)
		if got := rb.Read(); got != v {
			t.Errorf("bool: wrote %v, read %v", v, got)
		}
	}
}

func TestOneTransactionPerAccess(t *testing.T) {
	withRAM(t)
	log := record(t)
	r := NewRW[uint16](ramBase + 2)
	r.Write(0xabcd)
	r.Write(0xabcd)
	_ = r.Read()
	_ = r.Read()
	want := []Access{
		{Addr: ramBase + 2, Size: 2, Write: true, Value: 0xabcd},
		{Addr: ramBase + 2, Size: 2, Write: true, Value: 0xabcd},
		{Addr: ramBase + 2, Size: 2, Value: 0xabcd},
		{Addr: ramBase + 2, Size: 2, Value: 0xabcd},
	}
	if len(*log) != len(want) {
		t.Fatalf("got %d transactions %v, want %d", len(*log), *log, len(want))
	}
	for i, a := range *log {
		if a != want[i] {
			t.Errorf("transaction %d: got %v, want %v", i, a, want[i])
		}
	}
}

func TestNarrowStoreLeavesNeighbours(t *testing.T) {
	ram := withRAM(t)
	NewRW[uint32](ramBase).Write(0x11223344)
	NewWO[uint8](ramBase + 1).Write(0xaa)
	if got := NewRO[uint32](ramBase).Read(); got != 0x1122aa44 {
		t.Errorf("word after byte store = %#x, want 0x1122aa44", got)
	}
	if b := ram.Bytes()[:4]; b[0] != 0x44 || b[1] != 0xaa || b[2] != 0x22 || b[3] != 0x11 {
		t.Errorf("memory = % x, want little-endian 44 aa 22 11", b)
	}
}

func TestCapabilityViews(t *testing.T) {
	withRAM(t)
	rw := NewRW[uint16](ramBase + 8)
	rw.WriteOnly().Write(0x55)
	if got := rw.ReadOnly().Read(); got != 0x55 {
		t.Errorf("read through RO view = %#x, want 0x55", got)
	}
	if rw.ReadOnly().Addr() != rw.Addr() || rw.WriteOnly().Addr() != rw.Addr() {
		t.Error("views changed the register address")
	}
}

func expectFault(t *testing.T, reason string, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		var fault *Fault
		err, _ := recover().(error)
		if !errors.As(err, &fault) {
			t.Fatalf("got panic %v, want *Fault", err)
		}
		if fault.Reason != reason {
			t.Errorf("fault reason %q, want %q", fault.Reason, reason)
		}
	}()
	f()
}

func TestFaults(t *testing.T) {
	withRAM(t)
	expectFault(t, "unmapped", func() { NewRO[uint32](0x0800_0000).Read() })
	expectFault(t, "unmapped", func() { NewRO[uint32](ramBase + 0x100).Read() })
	expectFault(t, "misaligned", func() { NewWO[uint16](ramBase + 1).Write(1) })
	expectFault(t, "unsupported width", func() { NewRO[uint64](ramBase).Read() })
}

func TestMapOverlap(t *testing.T) {
	withRAM(t)
	if err := Map(ramBase+0x80, ramBase+0x180, NewRAM(ramBase+0x80, 0x100)); err == nil {
		t.Error("overlapping Map succeeded")
	}
	if err := Map(ramBase, ramBase, NewRAM(ramBase, 0)); err == nil {
		t.Error("empty Map succeeded")
	}
}

func TestWord(t *testing.T) {
	if w := ToWord(uint16(0xbeef)); w != 0xbeef {
		t.Errorf("ToWord(uint16) = %#x", w)
	}
	if w := ToWord(true); w != 1 {
		t.Errorf("ToWord(true) = %#x", w)
	}
	if v := FromWord[int8](0xff); v != -1 {
		t.Errorf("FromWord[int8](0xff) = %d", v)
	}
	if Width[color]() != 2 || Width[bool]() != 1 || Width[uint32]() != 4 {
		t.Error("unexpected Width")
	}
}
