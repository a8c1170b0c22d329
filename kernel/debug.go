// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "eliasnaur.com/gba/volatile"

// Debug output goes to the logging port emulators such as mGBA expose in
// otherwise unused IO space. On hardware without the port the writes are
// ignored.

const (
	addrDebugString = 0x04FF_F600
	addrDebugFlags  = 0x04FF_F700
	addrDebugEnable = 0x04FF_F780

	debugStringSize = 0x100

	debugEnableRequest = 0xC0DE
	debugEnableAck     = 0x1DEA
	debugFlagSend      = 0x100
)

// Level is the severity of a debug message.
type Level uint16

const (
	LevelFatal Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	debugEnable = volatile.NewRW[uint16](addrDebugEnable)
	debugFlags  = volatile.NewWO[uint16](addrDebugFlags)

	// debugState is 0 before the port has been checked, then 1 if present
	// and 2 if absent.
	debugState = NewUint8Cell(0)
)

func debugPresent() bool {
	switch debugState.Read() {
	case 1:
		return true
	case 2:
		return false
	}
	debugEnable.Write(debugEnableRequest)
	ok := debugEnable.Read() == debugEnableAck
	if ok {
		debugState.Write(1)
	} else {
		debugState.Write(2)
	}
	return ok
}

// Print writes msg to the debug port at the given level. Messages longer
// than the port buffer are split.
func Print(level Level, msg string) {
	if !debugMapped() || !debugPresent() {
		return
	}
	for {
		n := len(msg)
		if n > debugStringSize-1 {
			n = debugStringSize - 1
		}
		outputString(msg[:n])
		debugFlags.Write(uint16(level) | debugFlagSend)
		msg = msg[n:]
		if len(msg) == 0 {
			return
		}
	}
}

// outputString copies s into the port buffer, NUL terminated.
func outputString(s string) {
	for i := 0; i < len(s); i++ {
		volatile.NewWO[uint8](addrDebugString + uintptr(i)).Write(s[i])
	}
	volatile.NewWO[uint8](addrDebugString + uintptr(len(s))).Write(0)
}
