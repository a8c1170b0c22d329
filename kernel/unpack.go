// SPDX-License-Identifier: Unlicense OR MIT

package kernel

// UnpackInfo describes a BitUnPack conversion.
type UnpackInfo struct {
	// SrcLen is the number of source bytes to read.
	SrcLen uint16
	// SrcBits is the source element width: 1, 2, 4 or 8.
	SrcBits uint8
	// DstBits is the destination element width: 1, 2, 4, 8, 16 or 32.
	DstBits uint8
	// Offset is added to every non-zero element. If bit 31 is set, it is
	// added to zero elements too.
	Offset uint32
}

const unpackZeroOffset = 1 << 31

// BitUnPack widens the packed elements of src into dst, as the BIOS
// function of the same name does. Elements are taken from each byte
// starting at the low bits and packed into dst words the same way.
// Only whole words are written; it returns the number written.
//
// Widths other than the documented ones, or a dst too short for the
// output, halt the system.
func BitUnPack(src []byte, dst []uint32, info UnpackInfo) int {
	if !validWidth(info.SrcBits, 8) || !validWidth(info.DstBits, 32) {
		fatal("bitunpack: unsupported element width")
	}
	if int(info.SrcLen) > len(src) {
		fatal("bitunpack: source shorter than SrcLen")
	}
	srcBits, dstBits := uint(info.SrcBits), uint(info.DstBits)
	outBits := uint(info.SrcLen) * 8 / srcBits * dstBits
	if need := int(outBits / 32); need > len(dst) {
		fatal("bitunpack: destination too short")
	}
	offset := info.Offset &^ unpackZeroOffset
	zeroOffset := info.Offset&unpackZeroOffset != 0
	srcMask := uint32(1)<<srcBits - 1
	dstMask := uint32(1<<dstBits - 1)

	var word uint32
	var shift uint
	n := 0
	for _, b := range src[:info.SrcLen] {
		for pos := uint(0); pos < 8; pos += srcBits {
			v := uint32(b) >> pos & srcMask
			if v != 0 || zeroOffset {
				v += offset
			}
			word |= (v & dstMask) << shift
			shift += dstBits
			if shift == 32 {
				dst[n] = word
				n++
				word, shift = 0, 0
			}
		}
	}
	return n
}

func validWidth(bits, limit uint8) bool {
	return bits != 0 && bits <= limit && bits&(bits-1) == 0
}
