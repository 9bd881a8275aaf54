package chaosgame

import (
	"fmt"
	"math"
)

// Distribution draws a real number, e.g. a per-step move ratio.
type Distribution interface {
	Sample(r *RuleRng) Real
}

type Uniform struct {
	Low, High Real
}

func NewUniform(low, high Real) (Uniform, error) {
	if err := checkFinite("low", low); err != nil {
		return Uniform{}, err
	}
	if err := checkFinite("high", high); err != nil {
		return Uniform{}, err
	}
	if low > high {
		return Uniform{}, fmt.Errorf("%w: uniform range is empty: [%v, %v]", ErrInvalidParam, low, high)
	}
	return Uniform{Low: low, High: high}, nil
}

func (u Uniform) Sample(r *RuleRng) Real { return lerp(u.Low, u.High, r.Float64()) }

// SkewNormal is Azzalini's skew-normal distribution.
type SkewNormal struct {
	Location, Scale, Shape Real
	delta                  Real
}

func NewSkewNormal(location, scale, shape Real) (SkewNormal, error) {
	for _, c := range []struct {
		name string
		v    Real
	}{{"location", location}, {"scale", scale}, {"shape", shape}} {
		if err := checkFinite(c.name, c.v); err != nil {
			return SkewNormal{}, err
		}
	}
	if scale <= 0 {
		return SkewNormal{}, fmt.Errorf("%w: skew normal scale must be > 0, got %v", ErrInvalidParam, scale)
	}
	return SkewNormal{
		Location: location,
		Scale:    scale,
		Shape:    shape,
		delta:    shape / math.Sqrt(1+shape*shape),
	}, nil
}

func (s SkewNormal) Sample(r *RuleRng) Real {
	u0 := r.NormFloat64()
	v := r.NormFloat64()
	u1 := s.delta*u0 + math.Sqrt(1-s.delta*s.delta)*v
	if u0 < 0 {
		u1 = -u1
	}
	return s.Location + s.Scale*u1
}

// Geometric counts failures before the first success of a Bernoulli(p) trial.
type Geometric struct {
	p   Real
	lnq Real
}

func NewGeometric(p Real) (Geometric, error) {
	if err := checkProb("geometric p", p); err != nil {
		return Geometric{}, err
	}
	return Geometric{p: p, lnq: math.Log1p(-p)}, nil
}

func (g Geometric) P() Real { return g.p }

// Sample is clamped to math.MaxInt32; p == 0 always returns the clamp.
func (g Geometric) Sample(r *RuleRng) int {
	switch {
	case g.p == 1:
		return 0
	case g.p == 0:
		return math.MaxInt32
	}
	u := 1 - r.Float64() // (0, 1]
	k := math.Floor(math.Log(u) / g.lnq)
	if k >= math.MaxInt32 || !isFinite(k) {
		return math.MaxInt32
	}
	return int(k)
}
