// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package sim

import "eliasnaur.com/gba/irq"

// LCD timing, in CPU cycles.
const (
	CyclesPerLine  = 1232
	HBlankStart    = 960
	LinesPerFrame  = 228
	VisibleLines   = 160
	CyclesPerFrame = CyclesPerLine * LinesPerFrame
)

// lcd tracks the position of the display beam.
type lcd struct {
	line   uint16
	dot    uint64
	frames uint64
}

// next returns the cycles until the next hblank or line start.
func (l *lcd) next() uint64 {
	if l.dot < HBlankStart {
		return HBlankStart - l.dot
	}
	return CyclesPerLine - l.dot
}

// advanceLCD moves the beam by n cycles, n <= m.lcd.next().
func (m *Machine) advanceLCD(n uint64) {
	l := &m.lcd
	l.dot += n
	stat := m.reg16(regDISPSTAT)
	switch l.dot {
	case HBlankStart:
		stat |= dispstatHBlank
		if stat&dispstatHBlankIRQ != 0 {
			m.raise(irq.HBlank)
		}
	case CyclesPerLine:
		l.dot = 0
		l.line++
		if l.line == LinesPerFrame {
			l.line = 0
			l.frames++
		}
		stat &^= dispstatHBlank
		switch l.line {
		case VisibleLines:
			stat |= dispstatVBlank
			if stat&dispstatVBlankIRQ != 0 {
				m.raise(irq.VBlank)
			}
		case LinesPerFrame - 1:
			stat &^= dispstatVBlank
		}
		if l.line == stat>>8 {
			stat |= dispstatVCount
			if stat&dispstatVCountIRQ != 0 {
				m.raise(irq.VCounter)
			}
		} else {
			stat &^= dispstatVCount
		}
		m.putReg16(regVCOUNT, l.line)
	}
	m.putReg16(regDISPSTAT, stat)
}

// Line returns the scanline being drawn.
func (m *Machine) Line() int { return int(m.lcd.line) }

// Frames returns the number of completed frames.
func (m *Machine) Frames() uint64 { return m.lcd.frames }

// CyclesToVBlank returns the cycles until the next vblank starts.
func (m *Machine) CyclesToVBlank() uint64 {
	lines := (VisibleLines + LinesPerFrame - uint64(m.lcd.line)) % LinesPerFrame
	if lines == 0 {
		lines = LinesPerFrame
	}
	return lines*CyclesPerLine - m.lcd.dot
}
