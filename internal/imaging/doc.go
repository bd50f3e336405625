// Package imaging provides an owned, GD-style image with friendly geometry
// and color types.
//
// An Image wraps a true-color gd.Buffer and exposes loading, saving, pixel
// access, rectangle fills, resizing, cropping and square cropping. None of
// these operations implement pixel algorithms here; each one translates its
// arguments and delegates to the buffer. DrawGrid is composed entirely of
// FillRect calls. SampleColor, SampleColorsMulti and DominantColors only
// read packed pixels back from the buffer.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - FillRect paints Corner1 through Corner2 inclusive, in place
//   - Crop takes the box [Origin, Origin+Size)
//
// # Lifecycle
//
// Images come from New (blank canvas), Load (file) or Decode (stream), and
// from the transforms Resize, Crop and SquareCrop. Transforms never mutate
// the receiver. When a transform has nothing to do it returns the receiver
// itself, so callers may get back the same *Image they passed in.
//
// An Image owns its buffer. Close releases it; Close is idempotent and any
// later operation fails with ErrClosed. An Image is not safe for concurrent
// use.
//
// # Color Representation
//
// Color holds normalized components in [0,1]. The packed form shared with
// the buffer is 0xAARRGGBB with GD's 7-bit inverted alpha (0 = opaque,
// 127 = transparent). Decoding divides RGB by 255 and alpha by 127, so a
// round trip is exact only to within 1/255 for RGB and 1/127 for alpha.
//
// # Error Handling
//
// Functions return errors wrapping one of the package sentinels (ErrOpen,
// ErrDecode, ErrUnsupportedFormat, ErrFileExists, ErrDegenerate, ErrClosed)
// or a gd sentinel (gd.ErrAllocation, gd.ErrColorAllocation, gd.ErrScale,
// gd.ErrCrop, gd.ErrOutOfBounds). Use errors.Is to test for them.
package imaging
