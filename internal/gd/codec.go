package gd

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when EncodeJPEG is given a negative quality.
const DefaultJPEGQuality = 75

// DecodePNG reads a PNG stream into a new buffer.
func DecodePNG(r io.Reader) (*Buffer, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return FromImage(img), nil
}

// DecodeJPEG reads a JPEG stream into a new buffer.
func DecodeJPEG(r io.Reader) (*Buffer, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("jpeg: %w", err)
	}
	return FromImage(img), nil
}

// EncodePNG writes the buffer as PNG. Unless SaveAlpha(true) was called the
// alpha channel is flattened to opaque.
func (b *Buffer) EncodePNG(w io.Writer) error {
	var img image.Image = b.img
	if !b.saveAlpha {
		img = opaque(b.img)
	}
	return imgio.PNGEncoder()(w, img)
}

// EncodeJPEG writes the buffer as JPEG at the given quality (0-100). JPEG has
// no alpha channel; color components are written as stored.
func (b *Buffer) EncodeJPEG(w io.Writer, quality int) error {
	if quality < 0 {
		quality = DefaultJPEGQuality
	}
	return imgio.JPEGEncoder(quality)(w, opaque(b.img))
}

func opaque(src *image.NRGBA) *image.NRGBA {
	dst := imaging.Clone(src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
