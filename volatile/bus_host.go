// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package volatile

// The host bus stands in for the console's memory map. Address ranges are
// served by Devices; an access outside every mapped range, or not aligned
// to its width, faults the way a data abort would on hardware.

import (
	"encoding/binary"
	"fmt"
	"sort"

	"golang.org/x/sys/cpu"
)

// A Device serves loads and stores to a mapped address range. size is 1,
// 2 or 4 and addr is aligned to it. Values occupy the low size bytes.
type Device interface {
	Load(addr uintptr, size int) uint32
	Store(addr uintptr, size int, val uint32)
}

// Access describes one bus transaction.
type Access struct {
	Addr  uintptr
	Size  int
	Write bool
	Value uint32
}

func (a Access) String() string {
	op := "load"
	if a.Write {
		op = "store"
	}
	return fmt.Sprintf("%s%d %#08x = %#x", op, a.Size*8, a.Addr, a.Value)
}

// Fault is the panic value of a failed bus transaction.
type Fault struct {
	Access
	Reason string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("bus fault: %v: %s", f.Access, f.Reason)
}

type mapping struct {
	start, end uintptr // [start, end)
	dev        Device
}

var bus struct {
	mappings []mapping
	trace    func(Access)
}

func init() {
	if cpu.IsBigEndian {
		panic("volatile: host bus requires a little-endian machine")
	}
}

// Map installs dev for the address range [start, end). Mappings must be
// set up before the registers in the range are accessed and must not
// overlap.
func Map(start, end uintptr, dev Device) error {
	if end <= start {
		return fmt.Errorf("volatile: empty range [%#x, %#x)", start, end)
	}
	for _, m := range bus.mappings {
		if start < m.end && m.start < end {
			return fmt.Errorf("volatile: range [%#x, %#x) overlaps [%#x, %#x)", start, end, m.start, m.end)
		}
	}
	bus.mappings = append(bus.mappings, mapping{start: start, end: end, dev: dev})
	sort.Slice(bus.mappings, func(i, j int) bool {
		return bus.mappings[i].start < bus.mappings[j].start
	})
	return nil
}

// Unmap removes the mapping starting at start, if any.
func Unmap(start uintptr) {
	for i, m := range bus.mappings {
		if m.start == start {
			bus.mappings = append(bus.mappings[:i], bus.mappings[i+1:]...)
			return
		}
	}
}

// Trace calls fn for every subsequent bus transaction and returns a
// function that restores the previous tracer.
func Trace(fn func(Access)) (restore func()) {
	prev := bus.trace
	bus.trace = fn
	return func() { bus.trace = prev }
}

func lookup(addr uintptr) (mapping, bool) {
	i := sort.Search(len(bus.mappings), func(i int) bool {
		return bus.mappings[i].end > addr
	})
	if i < len(bus.mappings) && bus.mappings[i].start <= addr {
		return bus.mappings[i], true
	}
	return mapping{}, false
}

func transfer(a Access) uint32 {
	switch a.Size {
	case 1, 2, 4:
	default:
		panic(&Fault{Access: a, Reason: "unsupported width"})
	}
	if a.Addr%uintptr(a.Size) != 0 {
		panic(&Fault{Access: a, Reason: "misaligned"})
	}
	m, ok := lookup(a.Addr)
	if !ok || a.Addr+uintptr(a.Size) > m.end {
		panic(&Fault{Access: a, Reason: "unmapped"})
	}
	// A store is traced before the device sees it, since the device may
	// take an interrupt whose accesses belong after it.
	if a.Write {
		if bus.trace != nil {
			bus.trace(a)
		}
		m.dev.Store(a.Addr, a.Size, a.Value)
		return a.Value
	}
	a.Value = m.dev.Load(a.Addr, a.Size)
	if bus.trace != nil {
		bus.trace(a)
	}
	return a.Value
}

func load[T any](addr uintptr) T {
	w := transfer(Access{Addr: addr, Size: int(Width[T]())})
	return FromWord[T](w)
}

func store[T any](addr uintptr, v T) {
	size := int(Width[T]())
	w := ToWord(v)
	if size < 4 {
		w &= 1<<(8*size) - 1
	}
	transfer(Access{Addr: addr, Size: size, Write: true, Value: w})
}

// RAM is a Device backed by plain memory.
type RAM struct {
	base uintptr
	mem  []byte
}

// NewRAM returns size bytes of zeroed memory starting at base.
func NewRAM(base uintptr, size int) *RAM {
	return &RAM{base: base, mem: make([]byte, size)}
}

// Base returns the first address of r.
func (r *RAM) Base() uintptr { return r.base }

// End returns the address following the last byte of r.
func (r *RAM) End() uintptr { return r.base + uintptr(len(r.mem)) }

// Bytes returns the memory backing r.
func (r *RAM) Bytes() []byte { return r.mem }

func (r *RAM) Load(addr uintptr, size int) uint32 {
	b := r.mem[addr-r.base:]
	switch size {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

func (r *RAM) Store(addr uintptr, size int, val uint32) {
	b := r.mem[addr-r.base:]
	switch size {
	case 1:
		b[0] = byte(val)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(val))
	default:
		binary.LittleEndian.PutUint32(b, val)
	}
}
