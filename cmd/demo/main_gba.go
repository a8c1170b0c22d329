// SPDX-License-Identifier: Unlicense OR MIT

//go:build gba

package main

func main() {
	setup()
	for {
		frame()
	}
}
