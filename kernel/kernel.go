// SPDX-License-Identifier: Unlicense OR MIT

// Package kernel is the boundary between the main program and the
// interrupt handler.
//
// There is one CPU. An interrupt preempts the main program, runs the
// dispatch code in this package to completion, then resumes the program
// exactly where it stopped. Nothing ever runs in parallel, so there are
// no locks: every value shared by the two sides lives in a Cell, whose
// accesses are each a single load, store or swap instruction.
package kernel

// kernError is an error type usable in kernel code.
type kernError string

func (k kernError) Error() string {
	return string(k)
}

// fatal reports msg on the debug port and stops the system. There is
// nothing above the kernel to recover into.
func fatal(msg string) {
	Print(LevelFatal, "fatal error: "+msg)
	halt()
}
