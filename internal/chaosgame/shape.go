package chaosgame

import (
	"fmt"
	"math"
)

// Shape is the ordered, immutable set of anchors of a run.
type Shape []Point

// Validate rejects empty shapes and non-finite anchors.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return ErrEmptyShape
	}
	for i, p := range s {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: anchor #%d has non-finite position (%v, %v)", ErrInvalidParam, i, p.X, p.Y)
		}
	}
	return nil
}

// Polygon returns n anchors on the unit circle with a hue sweep.
func Polygon(n int) Shape {
	res := make(Shape, 0, n)
	for i := 0; i < n; i++ {
		phase := Real(i) / Real(n) * 2 * math.Pi
		res = append(res, NewPoint(math.Cos(phase), math.Sin(phase), RGB{
			R: 0.5 + 0.5*math.Cos(phase*0.6+0.7),
			G: 0.5,
			B: 0.5 + 0.5*math.Sin(phase*0.6+0.7),
		}))
	}
	return res
}

// FromSRGB maps 8-bit channels to [0,1].
func FromSRGB(r, g, b uint8) RGB {
	return RGB{Real(r) / 255, Real(g) / 255, Real(b) / 255}
}

// Colorize recolors the shape with a cosine wave between a and b that runs
// period times around the anchor list.
func Colorize(s Shape, a, b RGB, period int) Shape {
	if period < 1 {
		period = 1
	}
	res := make(Shape, len(s))
	for i, p := range s {
		t := 0.5 - 0.5*math.Cos(2*math.Pi*Real(i)*Real(period)/Real(len(s)))
		res[i] = NewPoint(p.X, p.Y, RGB{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t)})
	}
	return res
}

// DefaultShape is the polygon used when a scene does not define anchors.
func DefaultShape(sides int) Shape {
	return Colorize(Polygon(sides), FromSRGB(160, 147, 242), FromSRGB(186, 190, 220), max(sides/2, 1))
}
