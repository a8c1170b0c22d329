// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package sim

import "eliasnaur.com/gba/irq"

const (
	tmcntPrescaler = 0b11
	tmcntCascade   = 1 << 2
	tmcntIRQ       = 1 << 6
	tmcntEnable    = 1 << 7
)

// prescalerShift converts the prescaler selection to a cycle shift:
// 1, 64, 256 or 1024 cycles per tick.
var prescalerShift = [4]uint{0, 6, 8, 10}

// timer is one of the four 16-bit timers. The counter counts up from the
// reload value and raises its interrupt when it wraps.
type timer struct {
	reload  uint16
	counter uint16
	control byte
	// sub counts the cycles not yet turned into a tick.
	sub uint64
}

func (t *timer) enabled() bool { return t.control&tmcntEnable != 0 }
func (t *timer) cascade() bool { return t.control&tmcntCascade != 0 }

func (t *timer) shift() uint {
	return prescalerShift[t.control&tmcntPrescaler]
}

// store writes byte reg of the timer's register pair.
func (t *timer) store(reg uintptr, v byte) {
	switch reg {
	case 0:
		t.reload = t.reload&0xff00 | uint16(v)
	case 1:
		t.reload = t.reload&0x00ff | uint16(v)<<8
	case 2:
		if !t.enabled() && v&tmcntEnable != 0 {
			t.counter = t.reload
			t.sub = 0
		}
		t.control = v
	}
}

// tick adds n ticks and returns the number of overflows.
func (t *timer) tick(n uint64) uint64 {
	room := 0x10000 - uint64(t.counter)
	if n < room {
		t.counter += uint16(n)
		return 0
	}
	n -= room
	period := 0x10000 - uint64(t.reload)
	t.counter = t.reload + uint16(n%period)
	return 1 + n/period
}

// cyclesToOverflow returns the cycles until a free-running timer wraps.
func (t *timer) cyclesToOverflow() uint64 {
	room := 0x10000 - uint64(t.counter)
	return room<<t.shift() - t.sub
}

// nextTimerOverflow returns the cycles until the first free-running timer
// overflows.
func (m *Machine) nextTimerOverflow() (uint64, bool) {
	var next uint64
	found := false
	for i := range m.timers {
		t := &m.timers[i]
		if !t.enabled() || t.cascade() {
			continue
		}
		if n := t.cyclesToOverflow(); !found || n < next {
			next, found = n, true
		}
	}
	return next, found
}

func (m *Machine) advanceTimers(n uint64) {
	var carry uint64
	for i := range m.timers {
		t := &m.timers[i]
		var ticks uint64
		switch {
		case !t.enabled():
			carry = 0
			continue
		case t.cascade():
			ticks = carry
		default:
			t.sub += n
			ticks = t.sub >> t.shift()
			t.sub &= 1<<t.shift() - 1
		}
		carry = t.tick(ticks)
		if carry > 0 && t.control&tmcntIRQ != 0 {
			m.raise(irq.Timer0 << uint(i))
		}
	}
}
