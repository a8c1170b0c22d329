// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package kernel

import (
	"bytes"
	"strings"
	"testing"

	"eliasnaur.com/gba/sim"
)

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	m := newMachine(t, sim.Config{Debug: &out})
	Print(LevelInfo, "hello")
	Print(LevelWarn, "")
	msgs := m.Messages()
	if len(msgs) != 2 || msgs[0] != "hello" || msgs[1] != "" {
		t.Errorf("messages %q", msgs)
	}
	if want := "[INFO] hello\n[WARN] \n"; out.String() != want {
		t.Errorf("output %q, want %q", out.String(), want)
	}
}

func TestPrintSplitsLongMessages(t *testing.T) {
	m := newMachine(t, sim.Config{})
	msg := strings.Repeat("0123456789", 30)
	Print(LevelDebug, msg)
	msgs := m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("%d messages, want 2", len(msgs))
	}
	if len(msgs[0]) != debugStringSize-1 {
		t.Errorf("first chunk is %d bytes, want %d", len(msgs[0]), debugStringSize-1)
	}
	if msgs[0]+msgs[1] != msg {
		t.Error("chunks don't reassemble the message")
	}
}
