// Package geom provides the integer geometry value types used to address
// pixels in an image: Point, Size and Rect.
//
// Coordinates are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y increasing downward.
package geom

import (
	"fmt"
	"image"
)

// Point is a pixel coordinate.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int32) Point {
	return Point{X: x, Y: y}
}

// Add offsets p by the extent of s.
func (p Point) Add(s Size) Point {
	return Point{X: p.X + s.Width, Y: p.Y + s.Height}
}

// ImagePoint converts p to an image.Point.
func (p Point) ImagePoint() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width and height in pixels. Valid image sizes are non-negative;
// this is not enforced.
type Size struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h int32) Size {
	return Size{Width: w, Height: h}
}

// IsSquare reports whether width equals height.
func (s Size) IsSquare() bool {
	return s.Width == s.Height
}

// Min returns the shorter side.
func (s Size) Min() int32 {
	if s.Width < s.Height {
		return s.Width
	}
	return s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an origin and a size.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// XYWH builds a Rect from its origin coordinates and extent.
func XYWH(x, y, w, h int32) Rect {
	return Rect{Origin: Pt(x, y), Size: Sz(w, h)}
}

// Corner1 is the origin.
func (r Rect) Corner1() Point {
	return r.Origin
}

// Corner2 is the origin offset by the size. It is always derived, never stored.
func (r Rect) Corner2() Point {
	return r.Origin.Add(r.Size)
}

// Rectangle returns the half-open image.Rectangle [Corner1, Corner2).
// The bounds are computed in int, so they do not wrap when the corner would
// pass MaxInt32.
func (r Rect) Rectangle() image.Rectangle {
	x, y := int(r.Origin.X), int(r.Origin.Y)
	return image.Rectangle{
		Min: image.Pt(x, y),
		Max: image.Pt(x+int(r.Size.Width), y+int(r.Size.Height)),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Origin, r.Size)
}
