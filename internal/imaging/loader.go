package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/gdimage/internal/gd"
)

// DefaultQuality is the JPEG quality used by Save unless WithQuality is given.
const DefaultQuality = 100

var decoders = map[Format]func(io.Reader) (*gd.Buffer, error){
	FormatJPEG: gd.DecodeJPEG,
	FormatPNG:  gd.DecodePNG,
}

// decodeOrder lists the codecs to try for a file name. The extension picks
// the first attempt; the other codec is the fallback. Unknown extensions try
// JPEG first.
func decodeOrder(name string) []Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return []Format{FormatPNG, FormatJPEG}
	case ".jpg", ".jpeg":
		return []Format{FormatJPEG, FormatPNG}
	default:
		return []Format{FormatJPEG, FormatPNG}
	}
}

// Load opens and decodes a PNG or JPEG file.
//
// The file extension decides which codec is tried first. If that attempt
// fails the stream is rewound and the other codec is tried, so a JPEG saved
// as photo.png still loads. The file is always closed before Load returns.
//
// # Errors
//
//   - ErrOpen if the file cannot be opened
//   - ErrDecode if neither codec can decode it
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode reads an image from r using the same ordered codec attempts as
// Load, with name supplying the extension hint. Between attempts r is
// rewound to the position it had when Decode was called.
func Decode(r io.ReadSeeker, name string) (*Image, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to locate stream start of %s: %w", name, err)
	}

	var errs []error
	for i, format := range decodeOrder(name) {
		if i > 0 {
			if _, err := r.Seek(start, io.SeekStart); err != nil {
				return nil, fmt.Errorf("failed to rewind %s: %w", name, err)
			}
		}
		buf, err := decoders[format](r)
		if err == nil {
			return newImage(buf, format), nil
		}
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("%w %s: %w", ErrDecode, name, errors.Join(errs...))
}

// FormatFromFilename maps a file extension to an output format. Only .png,
// .jpg and .jpeg are accepted; case is ignored.
func FormatFromFilename(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	switch f {
	case imaging.JPEG:
		return FormatJPEG, nil
	case imaging.PNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %s is %s", ErrUnsupportedFormat, path, f)
	}
}

type saveOptions struct {
	quality   int
	overwrite bool
}

// SaveOption adjusts Save.
type SaveOption func(*saveOptions)

// WithQuality sets the JPEG quality, 0-100. PNG output ignores it.
func WithQuality(quality int) SaveOption {
	return func(o *saveOptions) {
		o.quality = quality
	}
}

// WithOverwrite allows Save to replace an existing file.
func WithOverwrite(overwrite bool) SaveOption {
	return func(o *saveOptions) {
		o.overwrite = overwrite
	}
}

// Save writes the image to path, choosing PNG or JPEG by extension.
//
// PNG output keeps the alpha channel. JPEG output uses the quality from
// WithQuality (default 100). Unless WithOverwrite(true) is given an existing
// file is left untouched.
//
// # Errors
//
//   - ErrUnsupportedFormat if the extension is not png, jpg or jpeg; nothing
//     on disk is examined
//   - ErrFileExists if path exists and overwriting is off
//   - ErrOpen if the output cannot be opened
func (img *Image) Save(path string, opts ...SaveOption) (err error) {
	o := saveOptions{quality: DefaultQuality}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}
	if err := img.live(); err != nil {
		return err
	}

	if !o.overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return img.Encode(f, format, o.quality)
}

// Encode writes the image to w. For PNG the alpha channel is preserved;
// quality applies to JPEG only.
func (img *Image) Encode(w io.Writer, format Format, quality int) error {
	if err := img.live(); err != nil {
		return err
	}

	var err error
	switch format {
	case FormatPNG:
		img.buf.SaveAlpha(true)
		err = img.buf.EncodePNG(w)
	case FormatJPEG:
		err = img.buf.EncodeJPEG(w, quality)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// EncodedImage is an image rendered inline as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeBase64PNG renders the image as a base64 PNG with alpha.
func EncodeBase64PNG(img *Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := img.Encode(&buf, FormatPNG, DefaultQuality); err != nil {
		return nil, err
	}

	size := img.Size()
	return &EncodedImage{
		Width:       int(size.Width),
		Height:      int(size.Height),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the codec that decoded the file, "png" or "jpeg". It can
	// differ from the extension when the fallback codec was needed.
	Format Format `json:"format"`

	// HasAlpha is true if any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and describes it. The decoded pixels are
// released before returning.
func LoadImageInfo(path string) (*ImageInfo, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := img.Size()
	return &ImageInfo{
		Width:         int(size.Width),
		Height:        int(size.Height),
		Format:        img.Format(),
		HasAlpha:      hasAlpha(img.Pixels()),
		FileSizeBytes: stat.Size(),
	}, nil
}

func hasAlpha(pix image.Image) bool {
	if o, ok := pix.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads an image and returns only its size.
func GetDimensions(path string) (*DimensionsResult, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	size := img.Size()
	return &DimensionsResult{
		Width:  int(size.Width),
		Height: int(size.Height),
	}, nil
}
