package chaosgame

import "fmt"

// RandAdvanceRule is DefaultRule with a move ratio drawn every step.
type RandAdvanceRule struct {
	rng        *RuleRng
	choice     Choice
	dist       Distribution
	ColorRatio Real
}

func NewRandAdvanceRule(choice Choice, dist Distribution, colorRatio Real) (*RandAdvanceRule, error) {
	if dist == nil {
		return nil, fmt.Errorf("%w: random advance needs a distribution", ErrInvalidParam)
	}
	if err := checkFinite("color ratio", colorRatio); err != nil {
		return nil, err
	}
	if choice == nil {
		choice = NewDefaultChoice()
	}
	return &RandAdvanceRule{rng: NewRuleRng(), choice: choice, dist: dist, ColorRatio: colorRatio}, nil
}

func (r *RandAdvanceRule) Next(prev Point, history []int, shape Shape, _ bool) (Point, int) {
	index := r.choice.ChoosePoint(history, shape)
	return advance(prev, shape[index], r.dist.Sample(r.rng), r.ColorRatio), index
}

func (r *RandAdvanceRule) Reseed(seed Seed) {
	r.rng.Reseed(seed)
	r.choice.Reseed(seed)
}

// Clone shares dist: distributions are immutable values.
func (r *RandAdvanceRule) Clone() Rule {
	return &RandAdvanceRule{rng: r.rng.Clone(), choice: r.choice.Clone(), dist: r.dist, ColorRatio: r.ColorRatio}
}

// AdvanceTwoRule blends two advances: toward the chosen anchor by MoveRatio
// and toward the previous anchor shape[history[0]] by MoveRatio2. Skew 0
// keeps the first, 1 the second.
type AdvanceTwoRule struct {
	choice     Choice
	MoveRatio  Real
	MoveRatio2 Real
	ColorRatio Real
	Skew       Real
}

func NewAdvanceTwoRule(choice Choice, moveRatio, moveRatio2, colorRatio, skew Real) (*AdvanceTwoRule, error) {
	for _, c := range []struct {
		name string
		v    Real
	}{{"move ratio", moveRatio}, {"second move ratio", moveRatio2}, {"color ratio", colorRatio}, {"skew", skew}} {
		if err := checkFinite(c.name, c.v); err != nil {
			return nil, err
		}
	}
	if choice == nil {
		choice = NewDefaultChoice()
	}
	return &AdvanceTwoRule{choice: choice, MoveRatio: moveRatio, MoveRatio2: moveRatio2, ColorRatio: colorRatio, Skew: skew}, nil
}

func (r *AdvanceTwoRule) Next(prev Point, history []int, shape Shape, _ bool) (Point, int) {
	index := r.choice.ChoosePoint(history, shape)
	first := advance(prev, shape[index], r.MoveRatio, r.ColorRatio)
	second := shape[mod(history[0], len(shape))].Pos()
	first.SetPos(first.Pos().Lerp(prev.Pos().Lerp(second, r.MoveRatio2), r.Skew))
	return first, index
}

func (r *AdvanceTwoRule) Reseed(seed Seed) { r.choice.Reseed(seed) }

func (r *AdvanceTwoRule) Clone() Rule {
	c := *r
	c.choice = r.choice.Clone()
	return &c
}

// MergeRule steps both children from the same point and blends the samples
// by Ratio (0 = left). Weights multiply; the index comes from the left child.
type MergeRule struct {
	left  Rule
	right Rule
	Ratio Real
}

func NewMergeRule(left, right Rule, ratio Real) (*MergeRule, error) {
	if err := requireRule("merge (left)", left); err != nil {
		return nil, err
	}
	if err := requireRule("merge (right)", right); err != nil {
		return nil, err
	}
	if err := checkFinite("merge ratio", ratio); err != nil {
		return nil, err
	}
	return &MergeRule{left: left, right: right, Ratio: ratio}, nil
}

func (r *MergeRule) Next(prev Point, history []int, shape Shape, scatter bool) (Point, int) {
	a, index := r.left.Next(prev, history, shape, scatter)
	b, _ := r.right.Next(prev, history, shape, scatter)
	return Point{
		X:      lerp(a.X, b.X, r.Ratio),
		Y:      lerp(a.Y, b.Y, r.Ratio),
		R:      lerp(a.R, b.R, r.Ratio),
		G:      lerp(a.G, b.G, r.Ratio),
		B:      lerp(a.B, b.B, r.Ratio),
		Weight: a.Weight * b.Weight,
	}, index
}

func (r *MergeRule) Reseed(seed Seed) {
	r.left.Reseed(seed)
	r.right.Reseed(seed)
}

func (r *MergeRule) Clone() Rule {
	return &MergeRule{left: r.left.Clone(), right: r.right.Clone(), Ratio: r.Ratio}
}

// AffineAdvanceRule blends the plain advance toward the chosen anchor with
// anchor + M·(prev - anchor) by Skew.
type AffineAdvanceRule struct {
	choice     Choice
	M          Mat2
	MoveRatio  Real
	ColorRatio Real
	Skew       Real
}

func NewAffineAdvanceRule(choice Choice, m Mat2, moveRatio, colorRatio, skew Real) (*AffineAdvanceRule, error) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if err := checkFinite(fmt.Sprintf("affine m[%d][%d]", i, j), m.M[i][j]); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range []struct {
		name string
		v    Real
	}{{"move ratio", moveRatio}, {"color ratio", colorRatio}, {"skew", skew}} {
		if err := checkFinite(c.name, c.v); err != nil {
			return nil, err
		}
	}
	if choice == nil {
		choice = NewDefaultChoice()
	}
	return &AffineAdvanceRule{choice: choice, M: m, MoveRatio: moveRatio, ColorRatio: colorRatio, Skew: skew}, nil
}

func (r *AffineAdvanceRule) Next(prev Point, history []int, shape Shape, _ bool) (Point, int) {
	index := r.choice.ChoosePoint(history, shape)
	anchor := shape[index]
	next := advance(prev, anchor, r.MoveRatio, r.ColorRatio)
	affine := anchor.Pos().Add(r.M.MulVec(prev.Pos().Sub(anchor.Pos())))
	next.SetPos(next.Pos().Lerp(affine, r.Skew))
	return next, index
}

func (r *AffineAdvanceRule) Reseed(seed Seed) { r.choice.Reseed(seed) }

func (r *AffineAdvanceRule) Clone() Rule {
	c := *r
	c.choice = r.choice.Clone()
	return &c
}
