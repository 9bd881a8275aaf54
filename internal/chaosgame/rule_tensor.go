package chaosgame

import "fmt"

// TensorRule draws indices big*N+small (by default from a TensorChoice) and
// moves toward shape[big] + Scale*shape[small]. The ratio is JumpRatio when
// big differs from the previous big component and MoveRatio otherwise.
type TensorRule struct {
	choice     Choice
	MoveRatio  Real
	JumpRatio  Real
	ColorRatio Real
	Scale      Real
	JumpCenter bool // a jump heads for shape[big] itself
	ColorSmall bool // take the color from the small anchor
}

// NewTensorRule returns a rule with the defaults: move 0.5, jump 0.5,
// color 1, scale 0.2.
func NewTensorRule(choice Choice) (*TensorRule, error) {
	if choice == nil {
		c, err := NewTensorChoice(nil, nil, 0.5, false)
		if err != nil {
			return nil, err
		}
		choice = c
	}
	return &TensorRule{
		choice:     choice,
		MoveRatio:  0.5,
		JumpRatio:  0.5,
		ColorRatio: 1,
		Scale:      0.2,
	}, nil
}

func (r *TensorRule) Next(prev Point, history []int, shape Shape, _ bool) (Point, int) {
	n := len(shape)
	index := r.choice.ChoosePoint(history, shape)
	big, small := mod(index/n, n), mod(index, n)
	pBig, pSmall := shape[big], shape[small]

	jumped := big != mod(history[0]/n, n)
	ratio := r.MoveRatio
	if jumped {
		ratio = r.JumpRatio
	}
	target := pBig
	if !(r.JumpCenter && jumped) {
		target.SetPos(pBig.Pos().Add(pSmall.Pos().Mul(r.Scale)))
	}
	if r.ColorSmall {
		target.R, target.G, target.B = pSmall.R, pSmall.G, pSmall.B
	}
	return advance(prev, target, ratio, r.ColorRatio), big*n + small
}

func (r *TensorRule) Reseed(seed Seed) { r.choice.Reseed(seed) }

func (r *TensorRule) Clone() Rule {
	c := *r
	c.choice = r.choice.Clone()
	return &c
}

// TensoredRule nests Inner inside each anchor. With probability JumpProb the
// path jumps to a new big anchor drawn by Big and moves toward it by
// JumpRatio; otherwise Inner takes one step in the local frame of the current
// big anchor, shrunk by Scale. Indices live in the big*N+small space.
type TensoredRule struct {
	rng        *RuleRng
	inner      Rule
	big        Choice
	JumpProb   Real
	JumpRatio  Real
	ColorRatio Real
	Scale      Real
	scratch    []int
}

func NewTensoredRule(inner Rule, big Choice, jumpProb, jumpRatio, colorRatio, scale Real) (*TensoredRule, error) {
	if err := requireRule("tensored", inner); err != nil {
		return nil, err
	}
	if err := checkProb("tensored jump probability", jumpProb); err != nil {
		return nil, err
	}
	if scale == 0 || !isFinite(scale) {
		return nil, fmt.Errorf("%w: tensored scale must be finite and non-zero, got %v", ErrInvalidParam, scale)
	}
	if big == nil {
		big = NewDefaultChoice()
	}
	return &TensoredRule{
		rng:        NewRuleRng(),
		inner:      inner,
		big:        big,
		JumpProb:   jumpProb,
		JumpRatio:  jumpRatio,
		ColorRatio: colorRatio,
		Scale:      scale,
	}, nil
}

func (r *TensoredRule) project(history []int, f func(int) int) []int {
	if cap(r.scratch) < len(history) {
		r.scratch = make([]int, len(history))
	}
	h := r.scratch[:len(history)]
	for i, x := range history {
		h[i] = f(x)
	}
	return h
}

func (r *TensoredRule) Next(prev Point, history []int, shape Shape, scatter bool) (Point, int) {
	n := len(shape)
	big, small := mod(history[0]/n, n), mod(history[0], n)
	if r.rng.Float64() < r.JumpProb {
		nb := r.big.ChoosePoint(r.project(history, func(x int) int { return mod(x/n, n) }), shape)
		return advance(prev, shape[nb], r.JumpRatio, r.ColorRatio), nb*n + small
	}
	center := shape[big].Pos()
	local := prev
	local.SetPos(prev.Pos().Sub(center).Mul(1 / r.Scale))
	next, ns := r.inner.Next(local, r.project(history, func(x int) int { return mod(x, n) }), shape, scatter)
	next.SetPos(center.Add(next.Pos().Mul(r.Scale)))
	return next, big*n + mod(ns, n)
}

func (r *TensoredRule) Reseed(seed Seed) {
	r.rng.Reseed(seed)
	r.inner.Reseed(seed)
	r.big.Reseed(seed)
}

func (r *TensoredRule) Clone() Rule {
	return &TensoredRule{
		rng:        r.rng.Clone(),
		inner:      r.inner.Clone(),
		big:        r.big.Clone(),
		JumpProb:   r.JumpProb,
		JumpRatio:  r.JumpRatio,
		ColorRatio: r.ColorRatio,
		Scale:      r.Scale,
	}
}
