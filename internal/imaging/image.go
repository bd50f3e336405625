package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/gdimage/internal/gd"
	"github.com/ironsheep/gdimage/internal/geom"
)

var (
	ErrOpen              = errors.New("cannot open image file")
	ErrDecode            = errors.New("cannot decode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrFileExists        = errors.New("file already exists")
	ErrDegenerate        = errors.New("degenerate image geometry")
	ErrClosed            = errors.New("image is closed")
)

// Format names the codec an image was decoded with or is encoded to.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Image is a true-color image that owns its pixel buffer.
type Image struct {
	buf    *gd.Buffer
	format Format
}

func newImage(buf *gd.Buffer, format Format) *Image {
	return &Image{buf: buf, format: format}
}

// New creates an opaque black canvas of the given size.
//
// Returns an error wrapping gd.ErrAllocation if either dimension is not
// positive or the canvas would be too large.
func New(size geom.Size) (*Image, error) {
	buf, err := gd.Create(int(size.Width), int(size.Height))
	if err != nil {
		return nil, fmt.Errorf("failed to create %v image: %w", size, err)
	}
	return newImage(buf, ""), nil
}

// Close releases the pixel buffer. It is safe to call more than once.
func (img *Image) Close() error {
	if img.buf != nil {
		img.buf.Destroy()
		img.buf = nil
	}
	return nil
}

func (img *Image) live() error {
	if img == nil || img.buf == nil {
		return ErrClosed
	}
	return nil
}

// Size is read from the buffer on every call. A closed image has zero size.
func (img *Image) Size() geom.Size {
	if img.live() != nil {
		return geom.Size{}
	}
	return geom.Sz(int32(img.buf.Width()), int32(img.buf.Height()))
}

// Bounds is the full canvas as a Rect at the origin.
func (img *Image) Bounds() geom.Rect {
	return geom.Rect{Size: img.Size()}
}

// Format reports the codec that decoded the image. It is empty for canvases
// made by New and for the results of transforms.
func (img *Image) Format() Format {
	return img.format
}

// Pixels exposes the pixels for read-only use, or nil once closed.
func (img *Image) Pixels() image.Image {
	if img.live() != nil {
		return nil
	}
	return img.buf.Image()
}

// SetAlphaBlending chooses whether fills and copies composite over existing
// pixels (the default) or replace them.
func (img *Image) SetAlphaBlending(on bool) error {
	if err := img.live(); err != nil {
		return err
	}
	img.buf.AlphaBlending(on)
	return nil
}

// CopyFrom blits the whole of src onto img at (0,0). Pixels of src that fall
// outside img are dropped; img keeps its size.
func (img *Image) CopyFrom(src *Image) error {
	if err := img.live(); err != nil {
		return err
	}
	if err := src.live(); err != nil {
		return fmt.Errorf("copy source: %w", err)
	}
	size := src.Size()
	img.buf.Copy(src.buf, 0, 0, 0, 0, int(size.Width), int(size.Height))
	return nil
}

// Pixel returns the color at p. Coordinates outside the image fail with
// gd.ErrOutOfBounds.
func (img *Image) Pixel(p geom.Point) (Color, error) {
	c, err := img.packedPixel(p)
	if err != nil {
		return Color{}, err
	}
	return ColorFromPacked(c), nil
}

func (img *Image) packedPixel(p geom.Point) (int32, error) {
	if err := img.live(); err != nil {
		return 0, err
	}
	return img.buf.TrueColorPixel(int(p.X), int(p.Y))
}

// Fill paints the whole canvas with c.
func (img *Image) Fill(c Color) error {
	return img.FillRect(img.Bounds(), c)
}

// FillRect paints the closed rectangle from r.Corner1() to r.Corner2()
// inclusive, clipped to the canvas.
func (img *Image) FillRect(r geom.Rect, c Color) error {
	if err := img.live(); err != nil {
		return err
	}
	packed, err := c.allocate(img.buf)
	if err != nil {
		return fmt.Errorf("failed to fill %v: %w", r, err)
	}
	// The far corner is computed in int; origin plus size can pass MaxInt32.
	x1, y1 := int(r.Origin.X), int(r.Origin.Y)
	img.buf.FilledRectangle(x1, y1, x1+int(r.Size.Width), y1+int(r.Size.Height), packed)
	return nil
}
