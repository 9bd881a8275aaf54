package chaosgame

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B Real
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	cl := func(x Real) Real {
		if x < 0 {
			return 0
		}
		if x > 1 {
			return 1
		}
		return x
	}
	return RGB{cl(c.R), cl(c.G), cl(c.B)}
}

// Point is an anchor or a sample: a position, a squared-linear color and
// an importance weight.
type Point struct {
	X, Y    Real
	R, G, B Real
	Weight  Real
}

// NewPoint squares the color channels so that linear blending between two
// anchors approximates a perceptually linear one. The render gamma undoes it.
func NewPoint(x, y Real, c RGB) Point {
	return Point{
		X: x, Y: y,
		R: c.R * c.R, G: c.G * c.G, B: c.B * c.B,
		Weight: 1,
	}
}

func (p Point) Pos() Vec2 { return Vec2{p.X, p.Y} }

func (p *Point) SetPos(v Vec2) { p.X, p.Y = v.X, v.Y }

func (p *Point) MulWeight(w Real) { p.Weight *= w }

func (p *Point) Darken(k Real) {
	p.R *= k
	p.G *= k
	p.B *= k
}

// Lightness is the luma of the stored color.
func (p Point) Lightness() Real {
	return lumaR*p.R + lumaG*p.G + lumaB*p.B
}

// advance moves prev toward target: position by moveRatio, color by
// colorRatio. The result is a fresh sample with unit weight.
func advance(prev, target Point, moveRatio, colorRatio Real) Point {
	return Point{
		X:      lerp(prev.X, target.X, moveRatio),
		Y:      lerp(prev.Y, target.Y, moveRatio),
		R:      lerp(prev.R, target.R, colorRatio),
		G:      lerp(prev.G, target.G, colorRatio),
		B:      lerp(prev.B, target.B, colorRatio),
		Weight: 1,
	}
}
