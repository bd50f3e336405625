package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/gdimage/internal/geom"
)

// encodeFile writes a solid w x h image to dir/name using the given encoder,
// regardless of what the name's extension says.
func encodeFile(t *testing.T, dir, name string, w, h int, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func pngBytes(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func jpegBytes(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func TestDecodeOrder(t *testing.T) {
	tests := []struct {
		name string
		want []Format
	}{
		{"photo.png", []Format{FormatPNG, FormatJPEG}},
		{"photo.PNG", []Format{FormatPNG, FormatJPEG}},
		{"photo.jpg", []Format{FormatJPEG, FormatPNG}},
		{"photo.jpeg", []Format{FormatJPEG, FormatPNG}},
		{"photo.bin", []Format{FormatJPEG, FormatPNG}},
		{"photo", []Format{FormatJPEG, FormatPNG}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeOrder(tt.name))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		file   string
		encode func(*bytes.Buffer, image.Image) error
		format Format
	}{
		{"png", "a.png", pngBytes, FormatPNG},
		{"jpeg", "a.jpg", jpegBytes, FormatJPEG},
		{"jpeg long extension", "a.jpeg", jpegBytes, FormatJPEG},
		{"jpeg named png falls back", "photo.png", jpegBytes, FormatJPEG},
		{"png named jpg falls back", "photo.jpg", pngBytes, FormatPNG},
		{"png with unknown extension", "photo.bin", pngBytes, FormatPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := encodeFile(t, dir, tt.file, 30, 20, tt.encode)

			img, err := Load(path)
			require.NoError(t, err)
			defer img.Close()

			assert.Equal(t, tt.format, img.Format())
			assert.Equal(t, geom.Sz(30, 20), img.Size())

			c := mustPixel(t, img, 15, 10)
			assert.InDelta(t, 1.0, c.Red, 0.02)
			assert.InDelta(t, 0.0, c.Green, 0.02)
		})
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrOpen)
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecode_RewindsToStartPosition(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("xyz")
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 7, 5))))

	r := bytes.NewReader(buf.Bytes())
	_, err := r.Seek(3, 0)
	require.NoError(t, err)

	img, err := Decode(r, "stream.jpg")
	require.NoError(t, err)
	defer img.Close()

	assert.Equal(t, FormatPNG, img.Format())
	assert.Equal(t, geom.Sz(7, 5), img.Size())
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", FormatPNG, false},
		{"out.PNG", FormatPNG, false},
		{"OUT.Jpeg", FormatJPEG, false},
		{"out.jpg", FormatJPEG, false},
		{"out.jpeg", FormatJPEG, false},
		{"out.gif", "", true},
		{"out.bmp", "", true},
		{"out.txt", "", true},
		{"out", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromFilename(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSave_PNGKeepsAlpha(t *testing.T) {
	img := newTestImage(t, 10, 8, Black)
	require.NoError(t, img.SetAlphaBlending(false))
	require.NoError(t, img.Fill(Color{Blue: 1, Alpha: 0.5}))

	path := filepath.Join(t.TempDir(), "alpha.png")
	require.NoError(t, img.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, FormatPNG, loaded.Format())
	c := mustPixel(t, loaded, 5, 5)
	assert.InDelta(t, 1.0, c.Blue, 1.0/255)
	assert.InDelta(t, 0.5, c.Alpha, 1.0/127)
}

func TestSave_JPEG(t *testing.T) {
	img := newTestImage(t, 16, 16, White)
	dir := t.TempDir()

	high := filepath.Join(dir, "high.jpg")
	low := filepath.Join(dir, "low.jpeg")
	require.NoError(t, img.Save(high))
	require.NoError(t, img.Save(low, WithQuality(5)))

	loaded, err := Load(high)
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, FormatJPEG, loaded.Format())
	assert.Equal(t, geom.Sz(16, 16), loaded.Size())

	_, err = os.Stat(low)
	assert.NoError(t, err)
}

func TestSave_ExtensionCaseIgnored(t *testing.T) {
	img := newTestImage(t, 6, 6, Blue)
	dir := t.TempDir()

	for path, want := range map[string]Format{
		filepath.Join(dir, "upper.PNG"): FormatPNG,
		filepath.Join(dir, "upper.JPG"): FormatJPEG,
	} {
		require.NoError(t, img.Save(path), path)

		loaded, err := Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, loaded.Format(), path)
		loaded.Close()
	}
}

func TestSave_ExistingFileNotOverwritten(t *testing.T) {
	img := newTestImage(t, 4, 4, Red)
	path := filepath.Join(t.TempDir(), "exists.png")
	original := []byte("original bytes")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	err := img.Save(path)
	assert.ErrorIs(t, err, ErrFileExists)

	err = img.Save(path, WithOverwrite(false), WithQuality(50))
	assert.ErrorIs(t, err, ErrFileExists)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestSave_Overwrite(t *testing.T) {
	img := newTestImage(t, 4, 4, Red)
	path := filepath.Join(t.TempDir(), "exists.png")
	require.NoError(t, os.WriteFile(path, []byte("original bytes"), 0o644))

	require.NoError(t, img.Save(path, WithOverwrite(true)))

	loaded, err := Load(path)
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, Red, mustPixel(t, loaded, 0, 0))
}

func TestSave_UnsupportedExtension(t *testing.T) {
	img := newTestImage(t, 4, 4, Red)
	dir := t.TempDir()

	for _, name := range []string{"out.gif", "out.tiff", "noext"} {
		path := filepath.Join(dir, name)
		err := img.Save(path, WithOverwrite(true))
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "%s must not be created", name)
	}
}

func TestSave_UnwritablePath(t *testing.T) {
	img := newTestImage(t, 4, 4, Red)
	path := filepath.Join(t.TempDir(), "missing-dir", "out.png")

	assert.ErrorIs(t, img.Save(path), ErrOpen)
}

func TestSave_Closed(t *testing.T) {
	img, err := New(geom.Sz(2, 2))
	require.NoError(t, err)
	img.Close()

	assert.ErrorIs(t, img.Save(filepath.Join(t.TempDir(), "x.png")), ErrClosed)
}

func TestEncode_UnknownFormat(t *testing.T) {
	img := newTestImage(t, 2, 2, Red)

	var buf bytes.Buffer
	assert.ErrorIs(t, img.Encode(&buf, Format("gif"), 0), ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestEncodeBase64PNG(t *testing.T) {
	img := newTestImage(t, 12, 7, Green)

	result, err := EncodeBase64PNG(img)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Width)
	assert.Equal(t, 7, result.Height)
	assert.Equal(t, "image/png", result.MimeType)

	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 7, cfg.Height)
}

func TestLoadImageInfo(t *testing.T) {
	dir := t.TempDir()

	opaque := encodeFile(t, dir, "opaque.jpg", 20, 10, jpegBytes)
	info, err := LoadImageInfo(opaque)
	require.NoError(t, err)
	assert.Equal(t, 20, info.Width)
	assert.Equal(t, 10, info.Height)
	assert.Equal(t, FormatJPEG, info.Format)
	assert.False(t, info.HasAlpha)
	assert.Positive(t, info.FileSizeBytes)

	img := newTestImage(t, 6, 6, Black)
	require.NoError(t, img.SetAlphaBlending(false))
	require.NoError(t, img.Fill(Color{Red: 1, Alpha: 0.25}))
	translucent := filepath.Join(dir, "translucent.png")
	require.NoError(t, img.Save(translucent))

	info, err = LoadImageInfo(translucent)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, info.Format)
	assert.True(t, info.HasAlpha)
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := LoadImageInfo("/nonexistent/image.png")
	assert.ErrorIs(t, err, ErrOpen)
}

func TestGetDimensions(t *testing.T) {
	path := encodeFile(t, t.TempDir(), "dims.png", 300, 200, pngBytes)

	dims, err := GetDimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 300, dims.Width)
	assert.Equal(t, 200, dims.Height)
}
