package chaosgame

import "fmt"

// OrRule delegates to Left with probability P (PScatter for scatter draws)
// and to Right otherwise. Scatter samples carry the weight P/PScatter or
// (1-P)/(1-PScatter) of the branch taken.
type OrRule struct {
	rng      *RuleRng
	left     Rule
	right    Rule
	P        Real
	PScatter Real
}

func NewOrRule(left, right Rule, p, pScatter Real) (*OrRule, error) {
	if err := requireRule("or (left)", left); err != nil {
		return nil, err
	}
	if err := requireRule("or (right)", right); err != nil {
		return nil, err
	}
	if err := checkProb("or p", p); err != nil {
		return nil, err
	}
	if err := checkProb("or p_scatter", pScatter); err != nil {
		return nil, err
	}
	// every branch reachable without scatter must stay reachable with it
	if (p > 0 && pScatter == 0) || (p < 1 && pScatter == 1) {
		return nil, fmt.Errorf("%w: or p_scatter=%v cannot reach a branch that p=%v uses", ErrInvalidParam, pScatter, p)
	}
	return &OrRule{rng: NewRuleRng(), left: left, right: right, P: p, PScatter: pScatter}, nil
}

func (r *OrRule) Left() Rule  { return r.left }
func (r *OrRule) Right() Rule { return r.right }

func (r *OrRule) Next(prev Point, history []int, shape Shape, scatter bool) (Point, int) {
	p := r.P
	if scatter {
		p = r.PScatter
	}
	var (
		res    Point
		index  int
		weight Real
	)
	if r.rng.Float64() < p {
		res, index = r.left.Next(prev, history, shape, scatter)
		weight = r.P / p
	} else {
		res, index = r.right.Next(prev, history, shape, scatter)
		weight = (1 - r.P) / (1 - p)
	}
	if scatter {
		res.MulWeight(weight)
	}
	return res, index
}

func (r *OrRule) Reseed(seed Seed) {
	r.rng.Reseed(seed)
	r.left.Reseed(seed)
	r.right.Reseed(seed)
}

func (r *OrRule) Clone() Rule {
	return &OrRule{
		rng:      r.rng.Clone(),
		left:     r.left.Clone(),
		right:    r.right.Clone(),
		P:        r.P,
		PScatter: r.PScatter,
	}
}
