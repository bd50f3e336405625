package gd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var (
	ErrAllocation      = errors.New("gd: image allocation failed")
	ErrColorAllocation = errors.New("gd: color allocation failed")
	ErrScale           = errors.New("gd: scale failed")
	ErrCrop            = errors.New("gd: crop failed")
	ErrOutOfBounds     = errors.New("gd: pixel out of bounds")
)

// maxPixelBytes caps a single allocation the way GD's overflow2 checks do.
const maxPixelBytes = math.MaxInt32

// Interpolation selects the resampling filter used by Scale.
type Interpolation int

const (
	BilinearFixed Interpolation = iota
	NearestNeighbour
)

func (m Interpolation) String() string {
	switch m {
	case BilinearFixed:
		return "bilinear"
	case NearestNeighbour:
		return "nearest"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(m))
	}
}

func (m Interpolation) filter() imaging.ResampleFilter {
	if m == NearestNeighbour {
		return imaging.NearestNeighbor
	}
	return imaging.Linear
}

// Buffer is a true-color image.
type Buffer struct {
	img           *image.NRGBA
	interpolation Interpolation
	alphaBlending bool
	saveAlpha     bool
}

// Create allocates an opaque black width x height buffer.
func Create(width, height int) (*Buffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return wrap(imaging.New(width, height, color.NRGBA{A: 0xff})), nil
}

// FromImage copies any image into a new buffer. The copy is re-based so
// that its top-left pixel is (0,0).
func FromImage(img image.Image) *Buffer {
	return wrap(imaging.Clone(img))
}

func wrap(img *image.NRGBA) *Buffer {
	return &Buffer{img: img, alphaBlending: true}
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrAllocation, width, height)
	}
	if int64(width)*int64(height) > maxPixelBytes/4 {
		return fmt.Errorf("%w: %dx%d overflows pixel buffer", ErrAllocation, width, height)
	}
	return nil
}

// Destroy releases the pixel memory. Calling it more than once is harmless.
func (b *Buffer) Destroy() {
	b.img = nil
}

// Destroyed reports whether Destroy has been called.
func (b *Buffer) Destroyed() bool {
	return b.img == nil
}

// Width is the horizontal extent in pixels (GD's sx).
func (b *Buffer) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

// Height is the vertical extent in pixels (GD's sy).
func (b *Buffer) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// Image exposes the pixels for read-only use.
func (b *Buffer) Image() image.Image {
	return b.img
}

// SetInterpolationMethod selects the filter used by subsequent Scale calls.
func (b *Buffer) SetInterpolationMethod(m Interpolation) {
	b.interpolation = m
}

// InterpolationMethod returns the filter used by Scale.
func (b *Buffer) InterpolationMethod() Interpolation {
	return b.interpolation
}

// AlphaBlending turns compositing of fills and copies on or off. When off,
// pixels are replaced including their alpha.
func (b *Buffer) AlphaBlending(on bool) {
	b.alphaBlending = on
}

// SaveAlpha controls whether EncodePNG keeps the alpha channel.
func (b *Buffer) SaveAlpha(on bool) {
	b.saveAlpha = on
}

// TrueColorPixel returns the packed color at (x, y).
func (b *Buffer) TrueColorPixel(x, y int) (int32, error) {
	if !image.Pt(x, y).In(b.img.Bounds()) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, b.Width(), b.Height())
	}
	return fromNRGBA(b.img.NRGBAAt(x, y)), nil
}

// FilledRectangle paints the rectangle with inclusive corners (x1,y1) and
// (x2,y2), clipped to the buffer. The buffer is modified in place.
func (b *Buffer) FilledRectangle(x1, y1, x2, y2 int, c int32) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	r := image.Rect(x1, y1, x2+1, y2+1).Intersect(b.img.Bounds())
	if r.Empty() {
		return
	}
	fill := toNRGBA(c)
	if b.alphaBlending {
		draw.Draw(b.img, r, image.NewUniform(fill), image.Point{}, draw.Over)
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.img.Pix[b.img.PixOffset(r.Min.X, y):b.img.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = fill.R, fill.G, fill.B, fill.A
		}
	}
}

// Copy blits the w x h block at (srcX, srcY) of src onto b at (dstX, dstY).
// Parts falling outside either buffer are skipped.
func (b *Buffer) Copy(src *Buffer, dstX, dstY, srcX, srcY, w, h int) {
	r, sp := clip(b.img.Bounds(), src.img.Bounds(), image.Rect(dstX, dstY, dstX+w, dstY+h), image.Pt(srcX, srcY))
	if r.Empty() {
		return
	}
	if b.alphaBlending {
		draw.Draw(b.img, r, src.img, sp, draw.Over)
		return
	}
	// Straight copy of the NRGBA bytes. draw.Src would round-trip through
	// premultiplied alpha and zero the color of fully transparent pixels.
	n := 4 * r.Dx()
	for y := 0; y < r.Dy(); y++ {
		d := b.img.PixOffset(r.Min.X, r.Min.Y+y)
		s := src.img.PixOffset(sp.X, sp.Y+y)
		copy(b.img.Pix[d:d+n], src.img.Pix[s:s+n])
	}
}

// clip narrows r to the part that lies inside dst and whose source, starting
// at sp, lies inside src. It returns the narrowed r and the matching sp.
func clip(dst, src, r image.Rectangle, sp image.Point) (image.Rectangle, image.Point) {
	orig := r.Min
	r = r.Intersect(dst).Intersect(src.Add(orig.Sub(sp)))
	return r, sp.Add(r.Min.Sub(orig))
}

// Scale returns a new buffer resampled to exactly width x height using the
// current interpolation method.
func (b *Buffer) Scale(width, height int) (*Buffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScale, err)
	}
	out := wrap(imaging.Resize(b.img, width, height, b.interpolation.filter()))
	out.interpolation = b.interpolation
	return out, nil
}

// Crop returns a new buffer holding the pixels of r. The origin of r must
// lie inside b and r must have a positive area; the extent is clipped to b.
func (b *Buffer) Crop(r image.Rectangle) (*Buffer, error) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty box %v", ErrCrop, r)
	}
	if !r.Min.In(b.img.Bounds()) {
		return nil, fmt.Errorf("%w: box %v outside %v", ErrCrop, r, b.img.Bounds())
	}
	return wrap(imaging.Crop(b.img, r)), nil
}
