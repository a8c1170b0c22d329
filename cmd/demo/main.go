// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

// Command demo runs the interrupt demo on the simulated console and shows
// the backdrop in a window, or logs it with -headless.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"eliasnaur.com/gba/kernel"
	"eliasnaur.com/gba/keys"
	"eliasnaur.com/gba/sim"
	"eliasnaur.com/gba/video"
	"gioui.org/app"
)

var (
	frames   = flag.Int("frames", 120, "frames per run; the window repeats the key script with this period")
	hold     = flag.String("start", "30-60", "frames `from-to` during which Start is held")
	work     = flag.Uint64("work", 20000, "cycles of work per frame")
	verbose  = flag.Bool("v", false, "print debug port messages")
	headless = flag.Bool("headless", false, "run -frames frames without a window and log the result")
)

func main() {
	flag.Parse()
	if *headless {
		if err := run(); err != nil {
			log.Fatal(err)
		}
		return
	}
	go func() {
		if err := runWindow(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run() error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	defer c.close()
	for i := 0; i < *frames; i++ {
		c.step()
	}
	return nil
}

// console drives the demo on a simulated machine with scripted keys.
type console struct {
	m        *sim.Machine
	from, to int
	n        int
	vblanks  uint32
	prev     video.Color
}

func newConsole() (*console, error) {
	if *frames <= 0 {
		return nil, errors.New("-frames must be positive")
	}
	c := new(console)
	if _, err := fmt.Sscanf(*hold, "%d-%d", &c.from, &c.to); err != nil {
		return nil, fmt.Errorf("-start %q: %w", *hold, err)
	}
	cfg := sim.Config{}
	if *verbose {
		cfg.Debug = os.Stderr
	}
	m, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	c.m = m
	kernel.Attach(m)
	setup()
	return c, nil
}

// step runs one frame of the demo and returns the backdrop colour.
func (c *console) step() video.Color {
	i := c.n % *frames
	in := keys.Released
	if i >= c.from && i < c.to {
		in = in.WithPressed(keys.Start, true)
	}
	c.m.SetKeys(in)
	c.vblanks += frame()
	col := video.BACKDROP.Read()
	if col != c.prev {
		kernel.Print(kernel.LevelInfo, fmt.Sprintf("frame %d: backdrop %#04x", c.n, uint16(col)))
		c.prev = col
	}
	c.m.Step(*work)
	c.n++
	return col
}

func (c *console) close() {
	s := kernel.Stats()
	log.Printf("%d frames, %d vblanks in %d cycles, %d dispatches, %d handled, %d halts",
		c.n, c.vblanks, c.m.Cycles(), s.Dispatches, s.Handled, c.m.Halts())
	c.m.Close()
}
