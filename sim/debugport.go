// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package sim

import (
	"bytes"
	"fmt"
	"io"
)

// Debug port layout, relative to DebugBase.
const (
	debugString = 0x000
	debugFlags  = 0x100
	debugEnable = 0x180

	debugEnableRequest = 0xC0DE
	debugEnableAck     = 0x1DEA
	debugFlagSend      = 0x100
)

var debugLevels = [...]string{"FATAL", "ERROR", "WARN", "INFO", "DEBUG"}

// debugPort is the emulator logging port: a string buffer, a flags
// register whose send bit emits the buffer, and an enable handshake.
type debugPort struct {
	buf     [0x100]byte
	enabled bool
	out     io.Writer
	msgs    []string
}

func (d *debugPort) Load(addr uintptr, size int) uint32 {
	off := addr - DebugBase
	switch {
	case off == debugEnable && d.enabled:
		return debugEnableAck
	case off < debugFlags:
		var v uint32
		for i := size - 1; i >= 0; i-- {
			v = v<<8 | uint32(d.buf[off+uintptr(i)])
		}
		return v
	}
	return 0
}

func (d *debugPort) Store(addr uintptr, size int, val uint32) {
	off := addr - DebugBase
	switch {
	case off < debugFlags:
		for i := 0; i < size; i++ {
			d.buf[off+uintptr(i)] = byte(val >> (8 * i))
		}
	case off == debugEnable:
		d.enabled = val == debugEnableRequest
	case off == debugFlags && d.enabled && val&debugFlagSend != 0:
		d.send(int(val & 0x7))
	}
}

func (d *debugPort) send(level int) {
	msg := d.buf[:]
	if i := bytes.IndexByte(msg, 0); i >= 0 {
		msg = msg[:i]
	}
	s := string(msg)
	d.msgs = append(d.msgs, s)
	if d.out == nil {
		return
	}
	name := "LEVEL?"
	if level < len(debugLevels) {
		name = debugLevels[level]
	}
	fmt.Fprintf(d.out, "[%s] %s\n", name, s)
}
