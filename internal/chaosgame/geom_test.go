package chaosgame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec2(t *testing.T) {
	a, b := Vec2{1, 2}, Vec2{3, -1}
	assert.Equal(t, Vec2{4, 1}, a.Add(b))
	assert.Equal(t, Vec2{-2, 3}, a.Sub(b))
	assert.Equal(t, Vec2{2, 4}, a.Mul(2))
	assert.Equal(t, 1.0, a.Dot(b))
	assert.InDelta(t, 5, Vec2{3, 4}.Len(), 1e-12)
	assert.Equal(t, Vec2{2, 0.5}, a.Lerp(b, 0.5))
}

func TestRot2(t *testing.T) {
	v := Rot2(math.Pi / 2).MulVec(Vec2{1, 0})
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 1, v.Y, 1e-12)
	assert.Equal(t, Vec2{3, -4}, I2().MulVec(Vec2{3, -4}))
	// rotation keeps lengths
	assert.InDelta(t, 5, Rot2(0.7).MulVec(Vec2{3, 4}).Len(), 1e-12)
}

func TestMod(t *testing.T) {
	assert.Equal(t, 2, mod(-1, 3))
	assert.Equal(t, 0, mod(6, 3))
	assert.Equal(t, 1, mod(7, 3))
}

func TestShapes(t *testing.T) {
	p := Polygon(4)
	require.Len(t, p, 4)
	for _, pt := range p {
		assert.InDelta(t, 1, pt.Pos().Len(), 1e-12)
	}

	s := DefaultShape(4)
	a, b := FromSRGB(160, 147, 242), FromSRGB(186, 190, 220)
	// period 2 over 4 anchors alternates between the two colors
	assert.InDelta(t, a.R*a.R, s[0].R, 1e-12)
	assert.InDelta(t, b.R*b.R, s[1].R, 1e-12)
	assert.InDelta(t, a.B*a.B, s[2].B, 1e-12)

	require.ErrorIs(t, Shape{}.Validate(), ErrEmptyShape)
	require.ErrorIs(t, Shape{NewPoint(math.NaN(), 0, RGB{})}.Validate(), ErrInvalidParam)
	require.NoError(t, DefaultShape(1).Validate())
}
