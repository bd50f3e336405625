package imaging

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/gdimage/internal/gd"
	"github.com/ironsheep/gdimage/internal/geom"
)

// Color is a color with normalized components.
//
// Each component ranges from 0 to 1. Alpha is opacity:
//   - 0 = fully transparent
//   - 1 = fully opaque
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// Opaque primaries.
var (
	Red   = Color{Red: 1, Green: 0, Blue: 0, Alpha: 1}
	Green = Color{Red: 0, Green: 1, Blue: 0, Alpha: 1}
	Blue  = Color{Red: 0, Green: 0, Blue: 1, Alpha: 1}
	Black = Color{Red: 0, Green: 0, Blue: 0, Alpha: 1}
	White = Color{Red: 1, Green: 1, Blue: 1, Alpha: 1}
)

// ColorFromPacked decodes a 0xAARRGGBB value whose alpha byte is on GD's
// 7-bit inverted scale.
//
// RGB divide by 255 but alpha divides by 127, matching the buffer. A stored
// alpha byte above 127 cannot come from a buffer; it decodes as alpha 0.
func ColorFromPacked(c int32) Color {
	alpha := 1 - float64((c>>24)&0xff)/gd.AlphaMax
	if alpha < 0 {
		alpha = 0
	}
	return Color{
		Red:   float64((c>>16)&0xff) / 255,
		Green: float64((c>>8)&0xff) / 255,
		Blue:  float64(c&0xff) / 255,
		Alpha: alpha,
	}
}

// components quantizes c the way the buffer expects. Values are truncated,
// not rounded.
func (c Color) components() (r, g, b, a int) {
	return int(c.Red * 255), int(c.Green * 255), int(c.Blue * 255), gd.AlphaMax - int(c.Alpha*gd.AlphaMax)
}

// Packed encodes c as 0xAARRGGBB without consulting a buffer. Components
// outside [0,1] are not validated.
func (c Color) Packed() int32 {
	return gd.TrueColorAlpha(c.components())
}

// allocate resolves c against buf. Components outside [0,1] fail with
// gd.ErrColorAllocation.
func (c Color) allocate(buf *gd.Buffer) (int32, error) {
	return buf.ColorAllocateAlpha(c.components())
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: c.Red, G: c.Green, B: c.Blue}.Clamped()
}

// Hex returns "#rrggbb"; alpha is not included.
func (c Color) Hex() string {
	return c.toColorful().Hex()
}

// HSL returns hue in degrees [0,360) and saturation and lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	return c.toColorful().Hsl()
}

func (c Color) String() string {
	return fmt.Sprintf("%s@%.3f", c.Hex(), c.Alpha)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
// Without an alpha suffix the color is opaque.
func ParseHexColor(hex string) (Color, error) {
	if len(hex) == 0 {
		return Color{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	alpha := 1.0
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("invalid hex color length %d", len(hex))
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, err
	}
	return Color{Red: c.R, Green: c.G, Blue: c.B, Alpha: alpha}, nil
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor adds 8-bit straight alpha (0 = transparent, 255 = opaque).
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor is hue in degrees with saturation and lightness as percentages.
type HSLColor struct {
	H int `json:"h"` // 0-360
	S int `json:"s"` // 0-100
	L int `json:"l"` // 0-100
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	Hex        string    `json:"hex"`  // "#rrggbb" (no alpha)
	RGB        RGBColor  `json:"rgb"`  // 8-bit components
	RGBA       RGBAColor `json:"rgba"` // 8-bit components with alpha
	HSL        HSLColor  `json:"hsl"`  // hue/saturation/lightness
	Normalized Color     `json:"normalized"`
	Packed     string    `json:"packed"` // 0xAARRGGBB, 7-bit alpha
}

// SampleColor reads the pixel at p and reports it in every representation.
//
// Returns an error wrapping gd.ErrOutOfBounds if p is outside the image.
func SampleColor(img *Image, p geom.Point) (*ColorResult, error) {
	packed, err := img.packedPixel(p)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %v: %w", p, err)
	}
	c := ColorFromPacked(packed)

	r8, g8, b8 := to8(c.Red), to8(c.Green), to8(c.Blue)
	h, s, l := c.HSL()

	return &ColorResult{
		Hex:        c.Hex(),
		RGB:        RGBColor{R: r8, G: g8, B: b8},
		RGBA:       RGBAColor{R: r8, G: g8, B: b8, A: to8(c.Alpha)},
		HSL:        HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Normalized: c,
		Packed:     fmt.Sprintf("0x%08X", uint32(packed)),
	}, nil
}

// LabeledPoint is a pixel coordinate with an optional name for the caller.
type LabeledPoint struct {
	X     int32  `json:"x"`
	Y     int32  `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult is the color sampled at one LabeledPoint.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int32       `json:"x"`
	Y     int32       `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult holds samples in the order the points were given.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point in one call. If any point is outside
// the image the whole call fails and no partial result is returned.
func SampleColorsMulti(img *Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, geom.Pt(p.X, p.Y))
		if err != nil {
			return nil, err
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// ColorFrequency is one quantized color and the share of pixels that have it.
type ColorFrequency struct {
	Hex        string   `json:"hex"`
	Percentage float64  `json:"percentage"`
	RGB        RGBColor `json:"rgb"`
}

// DominantColorsResult lists colors from most to least common.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns up to count of the most common colors in region, or
// in the whole image when region is nil. The region is clipped to the image.
//
// Components are quantized to multiples of 16 before counting, so #F0F0F0 and
// #FAFAFA are counted as the same color. Alpha is ignored. Colors with the
// same count are ordered by hex value.
func DominantColors(img *Image, count int, region *geom.Rect) (*DominantColorsResult, error) {
	if err := img.live(); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be positive, got %d", count)
	}

	bounds := img.Bounds().Rectangle()
	area := bounds
	if region != nil {
		area = region.Rectangle().Intersect(bounds)
		if area.Empty() {
			return nil, fmt.Errorf("region %v: %w", *region, gd.ErrOutOfBounds)
		}
	}

	counts := make(map[int32]int)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			packed, err := img.buf.TrueColorPixel(x, y)
			if err != nil {
				return nil, err
			}
			counts[packed&0xf0f0f0]++
		}
	}

	total := float64(area.Dx() * area.Dy())
	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		r, g, b := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02X%02X%02X", r, g, b),
			Percentage: float64(n) / total * 100,
			RGB:        RGBColor{R: r, G: g, B: b},
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}
