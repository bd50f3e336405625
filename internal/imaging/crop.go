package imaging

import (
	"fmt"

	"github.com/ironsheep/gdimage/internal/geom"
)

// Crop returns a new image holding the box [r.Origin, r.Origin+r.Size).
//
// The box must have a positive area and its origin must lie inside the
// image; otherwise the error wraps gd.ErrCrop. A box running past the right
// or bottom edge is clipped.
func (img *Image) Crop(r geom.Rect) (*Image, error) {
	if err := img.live(); err != nil {
		return nil, err
	}
	buf, err := img.buf.Crop(r.Rectangle())
	if err != nil {
		return nil, fmt.Errorf("failed to crop %v: %w", r, err)
	}
	return newImage(buf, ""), nil
}

// CropBox is Crop with the box given as coordinates.
func (img *Image) CropBox(x, y, width, height int32) (*Image, error) {
	return img.Crop(geom.XYWH(x, y, width, height))
}

// Gravity anchors a square crop within a rectangular image. The zero value
// is Middle.
type Gravity int

const (
	Middle Gravity = iota
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var gravityNames = map[Gravity]string{
	Middle:    "middle",
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "north_east",
	NorthWest: "north_west",
	SouthEast: "south_east",
	SouthWest: "south_west",
}

func (g Gravity) String() string {
	if name, ok := gravityNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gravity(%d)", int(g))
}

// ParseGravity accepts the names printed by Gravity.String. An empty string
// means Middle.
func ParseGravity(name string) (Gravity, error) {
	if name == "" {
		return Middle, nil
	}
	for g, n := range gravityNames {
		if n == name {
			return g, nil
		}
	}
	return Middle, fmt.Errorf("unknown gravity: %s", name)
}

// squareOrigin places a square of the shorter side inside size. The anchored
// edges are pinned to 0 or to the far edge; the free axis is centered with
// integer division.
func squareOrigin(size geom.Size, g Gravity) (geom.Point, error) {
	side := size.Min()
	dx := size.Width - side
	dy := size.Height - side

	switch g {
	case North:
		return geom.Pt(dx/2, 0), nil
	case South:
		return geom.Pt(dx/2, dy), nil
	case East:
		return geom.Pt(dx, dy/2), nil
	case West:
		return geom.Pt(0, dy/2), nil
	case NorthEast:
		return geom.Pt(dx, 0), nil
	case NorthWest:
		return geom.Pt(0, 0), nil
	case SouthEast:
		return geom.Pt(dx, dy), nil
	case SouthWest:
		return geom.Pt(0, dy), nil
	case Middle:
		return geom.Pt(dx/2, dy/2), nil
	default:
		return geom.Point{}, fmt.Errorf("unknown gravity: %v", g)
	}
}

// SquareCrop crops the largest square anchored at gravity.
//
// An image that is already square is returned as is. An image whose shorter
// side is not positive fails with ErrDegenerate.
func (img *Image) SquareCrop(g Gravity) (*Image, error) {
	if err := img.live(); err != nil {
		return nil, err
	}

	size := img.Size()
	if size.IsSquare() {
		return img, nil
	}
	side := size.Min()
	if side <= 0 {
		return nil, fmt.Errorf("%w: cannot square %v", ErrDegenerate, size)
	}

	at, err := squareOrigin(size, g)
	if err != nil {
		return nil, err
	}
	return img.CropBox(at.X, at.Y, side, side)
}
