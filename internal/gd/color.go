package gd

import (
	"fmt"
	"image/color"
)

// Alpha channel limits on GD's 7-bit scale.
const (
	AlphaOpaque      = 0
	AlphaTransparent = 127
	AlphaMax         = AlphaTransparent
)

// TrueColorAlpha packs components into a 0xAARRGGBB value. It does not
// validate its arguments; see ColorAllocateAlpha.
func TrueColorAlpha(r, g, b, a int) int32 {
	return int32(a<<24 | r<<16 | g<<8 | b)
}

// ColorAllocateAlpha resolves a color against the buffer. For true-color
// buffers this is packing, and it fails only when a component is out of
// range: 0-255 for r, g, b and 0-127 for a.
func (b *Buffer) ColorAllocateAlpha(r, g, bl, a int) (int32, error) {
	if !inRange(r, 0xff) || !inRange(g, 0xff) || !inRange(bl, 0xff) || !inRange(a, AlphaMax) {
		return 0, fmt.Errorf("%w: rgba(%d,%d,%d,%d)", ErrColorAllocation, r, g, bl, a)
	}
	return TrueColorAlpha(r, g, bl, a), nil
}

func inRange(v, max int) bool {
	return v >= 0 && v <= max
}

// toNRGBA expands a packed color to straight 8-bit alpha.
func toNRGBA(c int32) color.NRGBA {
	a := int((c >> 24) & 0x7f)
	return color.NRGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(0xff - ((a << 1) + (a >> 6))),
	}
}

// fromNRGBA packs a straight-alpha pixel.
func fromNRGBA(c color.NRGBA) int32 {
	return TrueColorAlpha(int(c.R), int(c.G), int(c.B), AlphaMax-int(c.A>>1))
}
