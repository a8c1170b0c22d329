// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package sim

// IO register offsets from IOBase.
const (
	regDISPCNT  = 0x000
	regDISPSTAT = 0x004
	regVCOUNT   = 0x006
	regTM0CNT   = 0x100
	regKEYINPUT = 0x130
	regKEYCNT   = 0x132
	regIE       = 0x200
	regIF       = 0x202
	regIME      = 0x208
)

const (
	dispstatVBlank    = 1 << 0
	dispstatHBlank    = 1 << 1
	dispstatVCount    = 1 << 2
	dispstatVBlankIRQ = 1 << 3
	dispstatHBlankIRQ = 1 << 4
	dispstatVCountIRQ = 1 << 5
	// dispstatStatus are the bits owned by the hardware.
	dispstatStatus = dispstatVBlank | dispstatHBlank | dispstatVCount
)

// ioPort serves the IO register block. Most registers are plain storage;
// the ones below have hardware behaviour:
//
//   - DISPSTAT status bits, VCOUNT and KEYINPUT ignore writes.
//   - IF is write-1-to-clear.
//   - A timer's counter half reads the running counter and writes the
//     reload value; starting a timer loads the counter from the reload.
//   - Stores to IE, IF or IME can raise the interrupt line, in which case
//     the interrupt is taken right after the store.
type ioPort struct {
	m *Machine
}

func (p *ioPort) Load(addr uintptr, size int) uint32 {
	m := p.m
	off := addr - IOBase
	var v uint32
	for i := size - 1; i >= 0; i-- {
		v = v<<8 | uint32(m.loadByte(off+uintptr(i)))
	}
	return v
}

func (p *ioPort) Store(addr uintptr, size int, val uint32) {
	m := p.m
	off := addr - IOBase
	for i := 0; i < size; i++ {
		m.storeByte(off+uintptr(i), byte(val>>(8*i)))
	}
	m.checkLine()
}

func (m *Machine) loadByte(off uintptr) byte {
	if t, reg, ok := timerReg(off); ok && reg < 2 {
		return byte(m.timers[t].counter >> (8 * reg))
	}
	return m.regs[off]
}

func (m *Machine) storeByte(off uintptr, v byte) {
	if t, reg, ok := timerReg(off); ok {
		m.timers[t].store(reg, v)
		m.regs[off] = v
		return
	}
	switch off {
	case regDISPSTAT:
		m.regs[off] = m.regs[off]&dispstatStatus | v&^dispstatStatus
	case regVCOUNT, regVCOUNT + 1, regKEYINPUT, regKEYINPUT + 1:
	case regIF, regIF + 1:
		m.regs[off] &^= v
	default:
		m.regs[off] = v
	}
}

// timerReg maps off to a timer and the byte within its 4 byte register
// pair.
func timerReg(off uintptr) (timer int, reg uintptr, ok bool) {
	if off < regTM0CNT || off >= regTM0CNT+4*4 {
		return 0, 0, false
	}
	off -= regTM0CNT
	return int(off / 4), off % 4, true
}
