// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gba

package main

import (
	"image/color"

	"eliasnaur.com/gba/video"
	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

// runWindow runs one console frame per window frame and fills the window
// with the backdrop.
func runWindow() error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	defer c.close()
	w := new(app.Window)
	w.Option(
		app.Title("demo"),
		app.Size(unit.Dp(video.Mode3Width*2), unit.Dp(video.Mode3Height*2)),
	)
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			col := nrgba(c.step())
			cl := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
			paint.ColorOp{Color: col}.Add(gtx.Ops)
			paint.PaintOp{}.Add(gtx.Ops)
			cl.Pop()
			gtx.Execute(op.InvalidateCmd{})
			e.Frame(gtx.Ops)
		}
	}
}

// nrgba converts a 15-bit console colour to 8 bits per channel.
func nrgba(c video.Color) color.NRGBA {
	return color.NRGBA{
		R: expand5(c.Red()),
		G: expand5(c.Green()),
		B: expand5(c.Blue()),
		A: 0xff,
	}
}

// expand5 scales a 5-bit channel to 8 bits, mapping 31 to 255.
func expand5(v uint16) uint8 {
	return uint8(v<<3 | v>>2)
}
