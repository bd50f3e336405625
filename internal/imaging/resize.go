package imaging

import (
	"fmt"

	"github.com/ironsheep/gdimage/internal/gd"
	"github.com/ironsheep/gdimage/internal/geom"
)

// ResizePolicy decides the target size of Resize. The implementations are
// Exact, ByWidth, ByHeight and ClampWidth.
type ResizePolicy interface {
	// target returns the size to scale to, or false when the current size
	// already satisfies the policy.
	target(current geom.Size) (geom.Size, bool)
}

// Exact scales to exactly Width x Height.
type Exact struct {
	Width, Height int32
}

func (p Exact) target(current geom.Size) (geom.Size, bool) {
	want := geom.Sz(p.Width, p.Height)
	return want, want != current
}

// ByWidth scales to Width, keeping the aspect ratio. The new height is
// truncated.
type ByWidth struct {
	Width int32
}

func (p ByWidth) target(current geom.Size) (geom.Size, bool) {
	if current.Width == p.Width {
		return current, false
	}
	ratio := float64(p.Width) / float64(current.Width)
	return geom.Sz(p.Width, int32(float64(current.Height)*ratio)), true
}

// ByHeight scales to Height, keeping the aspect ratio. The new width is
// truncated.
type ByHeight struct {
	Height int32
}

func (p ByHeight) target(current geom.Size) (geom.Size, bool) {
	if current.Height == p.Height {
		return current, false
	}
	ratio := float64(p.Height) / float64(current.Height)
	return geom.Sz(int32(float64(current.Width)*ratio), p.Height), true
}

// ClampWidth shrinks images wider than Max to Max, keeping the aspect ratio.
// Narrower images are left alone.
type ClampWidth struct {
	Max int32
}

func (p ClampWidth) target(current geom.Size) (geom.Size, bool) {
	if current.Width > p.Max {
		return ByWidth{Width: p.Max}.target(current)
	}
	return current, false
}

// Resize returns the image scaled according to policy. smooth selects
// bilinear interpolation; otherwise nearest-neighbor is used.
//
// When the policy is already satisfied the receiver itself is returned and
// no scaling happens. Otherwise the result is a new Image. A non-positive
// target dimension fails with gd.ErrScale.
func (img *Image) Resize(policy ResizePolicy, smooth bool) (*Image, error) {
	if err := img.live(); err != nil {
		return nil, err
	}

	current := img.Size()
	size, changed := policy.target(current)
	if !changed {
		return img, nil
	}

	if smooth {
		img.buf.SetInterpolationMethod(gd.BilinearFixed)
	} else {
		img.buf.SetInterpolationMethod(gd.NearestNeighbour)
	}

	buf, err := img.buf.Scale(int(size.Width), int(size.Height))
	if err != nil {
		return nil, fmt.Errorf("failed to resize %v to %v: %w", current, size, err)
	}
	return newImage(buf, ""), nil
}
