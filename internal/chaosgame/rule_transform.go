package chaosgame

import (
	"fmt"
	"math"
)

// SpiralRule rotates its child's sample about the origin by delta and scales
// it by epsilon. Both come from the same uniform draw, so they move together
// across their ranges.
type SpiralRule struct {
	rng        *RuleRng
	rule       Rule
	DeltaLow   Real
	DeltaHigh  Real
	EpsilonLow Real
	EpsilonHi  Real
}

func NewSpiralRule(rule Rule, deltaLow, deltaHigh, epsilonLow, epsilonHigh Real) (*SpiralRule, error) {
	if err := requireRule("spiral", rule); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		name string
		v    Real
	}{{"delta low", deltaLow}, {"delta high", deltaHigh}, {"epsilon low", epsilonLow}, {"epsilon high", epsilonHigh}} {
		if err := checkFinite(c.name, c.v); err != nil {
			return nil, err
		}
	}
	return &SpiralRule{
		rng:        NewRuleRng(),
		rule:       rule,
		DeltaLow:   deltaLow,
		DeltaHigh:  deltaHigh,
		EpsilonLow: epsilonLow,
		EpsilonHi:  epsilonHigh,
	}, nil
}

func (r *SpiralRule) Next(prev Point, history []int, shape Shape, scatter bool) (Point, int) {
	next, index := r.rule.Next(prev, history, shape, scatter)
	amount := r.rng.Float64()
	delta := lerp(r.DeltaLow, r.DeltaHigh, amount)
	epsilon := lerp(r.EpsilonLow, r.EpsilonHi, amount)
	next.SetPos(Rot2(delta).MulVec(next.Pos()).Mul(epsilon))
	return next, index
}

func (r *SpiralRule) Reseed(seed Seed) {
	r.rng.Reseed(seed)
	r.rule.Reseed(seed)
}

func (r *SpiralRule) Clone() Rule {
	c := *r
	c.rng = r.rng.Clone()
	c.rule = r.rule.Clone()
	return &c
}

// DiscreteSpiralRule applies a geometric number k of discrete spiral steps:
// rotation Delta*k, scale Epsilon^k and color Darken^k. Scatter draws use a
// different success probability and are reweighted by
// ((1-p)/(1-p_s))^k * p/p_s.
type DiscreteSpiralRule struct {
	rng          *RuleRng
	rule         Rule
	distribution Geometric
	distScatter  Geometric
	Delta        Real
	Epsilon      Real
	Darken       Real
}

func NewDiscreteSpiralRule(rule Rule, p, pScatter, delta, epsilon, darken Real) (*DiscreteSpiralRule, error) {
	if err := requireRule("discrete spiral", rule); err != nil {
		return nil, err
	}
	dist, err := NewGeometric(p)
	if err != nil {
		return nil, fmt.Errorf("discrete spiral p: %w", err)
	}
	distScatter, err := NewGeometric(pScatter)
	if err != nil {
		return nil, fmt.Errorf("discrete spiral p_scatter: %w", err)
	}
	if p == 0 || pScatter == 0 {
		return nil, fmt.Errorf("%w: discrete spiral needs p > 0 and p_scatter > 0, got (%v, %v)", ErrInvalidParam, p, pScatter)
	}
	// p_scatter == 1 never draws the jump counts k > 0 that p uses
	if pScatter == 1 && p < 1 {
		return nil, fmt.Errorf("%w: discrete spiral p_scatter=1 cannot reach the jumps that p=%v uses", ErrInvalidParam, p)
	}
	for _, c := range []struct {
		name string
		v    Real
	}{{"delta", delta}, {"epsilon", epsilon}, {"darken", darken}} {
		if err := checkFinite(c.name, c.v); err != nil {
			return nil, err
		}
	}
	return &DiscreteSpiralRule{
		rng:          NewRuleRng(),
		rule:         rule,
		distribution: dist,
		distScatter:  distScatter,
		Delta:        delta,
		Epsilon:      epsilon,
		Darken:       darken,
	}, nil
}

// scatterWeight is the likelihood ratio of k under p versus p_scatter.
func (r *DiscreteSpiralRule) scatterWeight(k int) Real {
	p, ps := r.distribution.P(), r.distScatter.P()
	return math.Pow((1-p)/(1-ps), Real(k)) * p / ps
}

func (r *DiscreteSpiralRule) Next(prev Point, history []int, shape Shape, scatter bool) (Point, int) {
	next, index := r.rule.Next(prev, history, shape, scatter)
	var k int
	if scatter {
		k = r.distScatter.Sample(r.rng)
		next.MulWeight(r.scatterWeight(k))
	} else {
		k = r.distribution.Sample(r.rng)
	}
	if k > 0 {
		delta := r.Delta * Real(k)
		epsilon := math.Pow(r.Epsilon, Real(k))
		next.SetPos(Rot2(delta).MulVec(next.Pos()).Mul(epsilon))
		next.Darken(math.Pow(r.Darken, Real(k)))
	}
	return next, index
}

func (r *DiscreteSpiralRule) Reseed(seed Seed) {
	r.rng.Reseed(seed)
	r.rule.Reseed(seed)
}

func (r *DiscreteSpiralRule) Clone() Rule {
	c := *r
	c.rng = r.rng.Clone()
	c.rule = r.rule.Clone()
	return &c
}
