package imaging

import (
	"fmt"

	"github.com/ironsheep/gdimage/internal/geom"
)

// GridOptions controls DrawGrid.
type GridOptions struct {
	// Spacing is the distance in pixels between grid lines. Lines are drawn
	// at every multiple of Spacing, excluding 0.
	Spacing int32

	// Color is the line color. Translucent colors are composited when alpha
	// blending is on.
	Color Color

	// Labels draws "x,y" at each intersection in a 3x5 pixel font.
	Labels bool
}

// Default label colors.
var (
	labelForeground = White
	labelBackground = Color{Alpha: 0.7}
)

// DrawGrid paints a coordinate grid onto img. Every line and glyph pixel is a
// filled rectangle, so it follows the same clipping and blending rules as
// FillRect.
func (img *Image) DrawGrid(opts GridOptions) error {
	if err := img.live(); err != nil {
		return err
	}
	if opts.Spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %d", opts.Spacing)
	}

	size := img.Size()
	for x := opts.Spacing; x < size.Width; x += opts.Spacing {
		if err := img.FillRect(geom.XYWH(x, 0, 0, size.Height-1), opts.Color); err != nil {
			return err
		}
	}
	for y := opts.Spacing; y < size.Height; y += opts.Spacing {
		if err := img.FillRect(geom.XYWH(0, y, size.Width-1, 0), opts.Color); err != nil {
			return err
		}
	}

	if !opts.Labels {
		return nil
	}
	for y := opts.Spacing; y < size.Height; y += opts.Spacing {
		for x := opts.Spacing; x < size.Width; x += opts.Spacing {
			if err := img.drawLabel(geom.Pt(x+2, y+2), fmt.Sprintf("%d,%d", x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

var glyphs = map[rune][5]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

const (
	glyphAdvance = 4
	labelHeight  = 7
)

func (img *Image) drawLabel(at geom.Point, text string) error {
	width := int32(len(text) * glyphAdvance)
	// Background box with a one pixel margin above and to the left.
	if err := img.FillRect(geom.XYWH(at.X-1, at.Y-1, width, labelHeight), labelBackground); err != nil {
		return err
	}

	cx := at.X
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				p := geom.Pt(cx+int32(col), at.Y+int32(row))
				if err := img.FillRect(geom.Rect{Origin: p}, labelForeground); err != nil {
					return err
				}
			}
		}
		cx += glyphAdvance
	}
	return nil
}
