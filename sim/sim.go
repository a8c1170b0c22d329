// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

// Package sim simulates the parts of the console the kernel depends on:
// the memory map, the interrupt controller, the LCD timing, the timers,
// the keypad and the emulator debug port.
//
// A Machine maps itself onto the volatile host bus, so registers declared
// with package volatile read and write the simulated hardware. Simulated
// time only moves when the program says so: Step for time spent running,
// Halt for a low-power halt. Interrupts are taken at those points and
// after any IO store that raises the interrupt line, which is where the
// hardware would take them: between two instructions.
package sim

import (
	"errors"
	"fmt"
	"io"

	"eliasnaur.com/gba/irq"
	"eliasnaur.com/gba/keys"
	"eliasnaur.com/gba/volatile"
)

// Memory map.
const (
	EWRAMBase   = 0x0200_0000
	EWRAMSize   = 0x4_0000
	IWRAMBase   = 0x0300_0000
	IWRAMSize   = 0x8000
	IOBase      = 0x0400_0000
	IOSize      = 0x400
	PaletteBase = 0x0500_0000
	PaletteSize = 0x400
	VRAMBase    = 0x0600_0000
	VRAMSize    = 0x1_8000
	DebugBase   = 0x04FF_F600
	DebugSize   = 0x200
)

// DefaultHaltBudget is the longest a single halt may last, in cycles,
// unless Config says otherwise.
const DefaultHaltBudget = 60 * CyclesPerFrame

// maxReentries bounds how often the interrupt entry may be called back to
// back without the interrupt line dropping.
const maxReentries = 64

var (
	// ErrHung is the panic value of a halt that exceeded its cycle budget:
	// on hardware the program would never wake up.
	ErrHung = errors.New("sim: halt exceeded its cycle budget")
	// ErrIRQStorm is the panic value when the interrupt entry keeps
	// returning without acknowledging the pending interrupts.
	ErrIRQStorm = errors.New("sim: interrupt entry did not acknowledge")
)

// Config configures a Machine.
type Config struct {
	// HaltBudget bounds a single Halt in cycles. Zero means
	// DefaultHaltBudget.
	HaltBudget uint64
	// Debug receives the messages written to the debug port, one per
	// line. Nil discards them.
	Debug io.Writer
}

// Machine is a simulated console. Only one Machine can be open at a time
// because the host bus is process-wide.
type Machine struct {
	cfg Config

	io      ioPort
	ewram   *volatile.RAM
	iwram   *volatile.RAM
	palette *volatile.RAM
	vram    *volatile.RAM
	debug   debugPort
	mapped  []uintptr

	regs   [IOSize]byte
	lcd    lcd
	timers [4]timer

	vector func()
	inIRQ  bool

	cycles  uint64
	halts   int
	entries int
}

// New creates a machine and maps it onto the host bus.
func New(cfg Config) (*Machine, error) {
	if cfg.HaltBudget == 0 {
		cfg.HaltBudget = DefaultHaltBudget
	}
	m := &Machine{
		cfg:     cfg,
		ewram:   volatile.NewRAM(EWRAMBase, EWRAMSize),
		iwram:   volatile.NewRAM(IWRAMBase, IWRAMSize),
		palette: volatile.NewRAM(PaletteBase, PaletteSize),
		vram:    volatile.NewRAM(VRAMBase, VRAMSize),
	}
	m.io.m = m
	m.debug.out = cfg.Debug
	m.reset()
	regions := []struct {
		base, size uintptr
		dev        volatile.Device
	}{
		{EWRAMBase, EWRAMSize, m.ewram},
		{IWRAMBase, IWRAMSize, m.iwram},
		{IOBase, IOSize, &m.io},
		{PaletteBase, PaletteSize, m.palette},
		{VRAMBase, VRAMSize, m.vram},
		{DebugBase, DebugSize, &m.debug},
	}
	for _, r := range regions {
		if err := volatile.Map(r.base, r.base+r.size, r.dev); err != nil {
			m.Close()
			return nil, fmt.Errorf("sim: %w", err)
		}
		m.mapped = append(m.mapped, r.base)
	}
	return m, nil
}

// Close removes the machine from the host bus.
func (m *Machine) Close() {
	for _, base := range m.mapped {
		volatile.Unmap(base)
	}
	m.mapped = nil
}

func (m *Machine) reset() {
	m.putReg16(regKEYINPUT, uint16(keys.Released))
}

// SetVector installs the interrupt entry point.
func (m *Machine) SetVector(entry func()) {
	m.vector = entry
}

// Cycles returns the simulated time since New.
func (m *Machine) Cycles() uint64 { return m.cycles }

// Halts returns the number of Halt calls.
func (m *Machine) Halts() int { return m.halts }

// Entries returns the number of times the interrupt entry was called.
func (m *Machine) Entries() int { return m.entries }

// InInterrupt reports whether the interrupt entry is running.
func (m *Machine) InInterrupt() bool { return m.inIRQ }

// Messages returns the debug port messages so far.
func (m *Machine) Messages() []string { return m.debug.msgs }

// VRAM returns the video memory, little-endian as on the console.
func (m *Machine) VRAM() []byte { return m.vram.Bytes() }

// Pending returns IF, the requested interrupt sources.
func (m *Machine) Pending() irq.IrqBits {
	return irq.IrqBits(m.reg16(regIF))
}

// Raise requests the given interrupt sources, as a peripheral would.
// Sources not enabled in IE stay pending until they are.
func (m *Machine) Raise(b irq.IrqBits) {
	m.putReg16(regIF, m.reg16(regIF)|uint16(b&irq.All))
	m.checkLine()
}

// SetKeys sets the keypad state and raises the keypad interrupt if KEYCNT
// asks for it.
func (m *Machine) SetKeys(in keys.KeyInput) {
	m.putReg16(regKEYINPUT, uint16(in))
	if keys.KeyControl(m.reg16(regKEYCNT)).Triggers(in) {
		m.Raise(irq.Keypad)
	}
}

// Step advances time by cycles of program execution, taking interrupts as
// they are requested.
func (m *Machine) Step(cycles uint64) {
	for cycles > 0 {
		cycles -= m.advance(cycles)
		m.checkLine()
	}
}

// Halt stops the CPU until IE&IF is non-zero, then takes the interrupt if
// IME is set. It panics with ErrHung if that doesn't happen within the
// halt budget.
func (m *Machine) Halt() {
	m.halts++
	start := m.cycles
	for m.line() == 0 {
		spent := m.cycles - start
		if spent >= m.cfg.HaltBudget {
			panic(ErrHung)
		}
		m.advance(m.cfg.HaltBudget - spent)
	}
	m.checkLine()
}

// line returns the sources that request an interrupt, IE&IF.
func (m *Machine) line() uint16 {
	return m.reg16(regIE) & m.reg16(regIF)
}

func (m *Machine) ime() bool {
	return m.regs[regIME]&1 != 0
}

// checkLine calls the interrupt entry while an interrupt is requested and
// enabled. The entry runs masked, so it is never re-entered.
func (m *Machine) checkLine() {
	if m.inIRQ || m.vector == nil {
		return
	}
	for n := 0; m.ime() && m.line() != 0; n++ {
		if n == maxReentries {
			panic(ErrIRQStorm)
		}
		m.inIRQ = true
		m.entries++
		func() {
			defer func() { m.inIRQ = false }()
			m.vector()
		}()
	}
}

// advance moves time forward by at most limit cycles, stopping early at
// the next event. It returns the cycles passed.
func (m *Machine) advance(limit uint64) uint64 {
	step := limit
	if n := m.lcd.next(); n < step {
		step = n
	}
	if n, ok := m.nextTimerOverflow(); ok && n < step {
		step = n
	}
	m.cycles += step
	m.advanceLCD(step)
	m.advanceTimers(step)
	return step
}

func (m *Machine) reg16(off uintptr) uint16 {
	return uint16(m.regs[off]) | uint16(m.regs[off+1])<<8
}

func (m *Machine) putReg16(off uintptr, v uint16) {
	m.regs[off] = byte(v)
	m.regs[off+1] = byte(v >> 8)
}

func (m *Machine) raise(b irq.IrqBits) {
	m.putReg16(regIF, m.reg16(regIF)|uint16(b))
}
