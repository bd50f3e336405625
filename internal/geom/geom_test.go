package geom

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectCorners(t *testing.T) {
	r := Rect{Origin: Pt(2, 3), Size: Sz(10, 20)}

	assert.Equal(t, Pt(2, 3), r.Corner1())
	assert.Equal(t, Pt(12, 23), r.Corner2())
}

func TestRectCorner2_Recomputed(t *testing.T) {
	r := XYWH(0, 0, 5, 5)
	r.Size.Width = 7
	r.Origin.Y = 1

	assert.Equal(t, Pt(7, 6), r.Corner2())
}

func TestRectRectangle(t *testing.T) {
	r := XYWH(4, 5, 6, 7)

	assert.Equal(t, image.Rect(4, 5, 10, 12), r.Rectangle())
	assert.Equal(t, 6, r.Rectangle().Dx())
	assert.Equal(t, 7, r.Rectangle().Dy())
}

func TestRectRectangle_PastMaxInt32(t *testing.T) {
	r := XYWH(10, 10, math.MaxInt32, math.MaxInt32)

	got := r.Rectangle()
	assert.Equal(t, image.Pt(10, 10), got.Min)
	assert.Equal(t, 10+math.MaxInt32, got.Max.X)
	assert.Equal(t, 10+math.MaxInt32, got.Max.Y)
}

func TestPointAdd_Negative(t *testing.T) {
	assert.Equal(t, Pt(-1, 2), Pt(3, 3).Add(Sz(-4, -1)))
}

func TestSize(t *testing.T) {
	tests := []struct {
		size   Size
		square bool
		min    int32
	}{
		{Sz(100, 50), false, 50},
		{Sz(50, 100), false, 50},
		{Sz(64, 64), true, 64},
		{Sz(0, 10), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			assert.Equal(t, tt.square, tt.size.IsSquare())
			assert.Equal(t, tt.min, tt.size.Min())
		})
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "(1,2)", Pt(1, 2).String())
	assert.Equal(t, "3x4", Sz(3, 4).String())
	assert.Equal(t, "(1,2)+3x4", XYWH(1, 2, 3, 4).String())
}
