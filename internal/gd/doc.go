// Package gd provides a true-color pixel buffer that follows the contract of
// the GD graphics library, backed by Go image types.
//
// The buffer is the collaborator that the higher-level imaging package
// delegates to. It owns an *image.NRGBA and hands every real pixel operation
// (canvas allocation, scaling, cropping, blitting, PNG/JPEG coding) to
// github.com/disintegration/imaging, github.com/anthonynsimon/bild/imgio and
// the standard library codecs. What it adds on top is GD's conventions.
//
// # Packed Colors
//
// Colors cross the buffer boundary as packed 32-bit integers laid out as
// 0xAARRGGBB, where the alpha byte uses GD's 7-bit inverted scale:
//
//	0   = fully opaque
//	127 = fully transparent
//
// Red, green and blue use the full 0-255 range. Conversion to and from the
// 8-bit straight alpha stored in the NRGBA pixels uses the same formulas GD
// uses when reading and writing PNG files.
//
// # Rectangles
//
// FilledRectangle takes two inclusive corners, as GD does: filling (0,0)-(9,9)
// paints a 10x10 block. Crop takes a half-open image.Rectangle.
//
// # Buffer State
//
// Each buffer carries three flags mirroring GD's per-image state:
//   - interpolation method used by Scale (bilinear by default)
//   - alpha blending for fills and copies (on by default)
//   - save-alpha for PNG output (off by default; alpha is flattened)
//
// # Ownership
//
// A Buffer is not safe for concurrent use. Destroy releases the pixel
// memory; a destroyed buffer must not be used again.
package gd
