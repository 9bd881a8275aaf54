package chaosgame

import "fmt"

// Rule produces the next sample from the previous path point and the anchor
// history (newest first, at least two entries). scatter marks auxiliary draws
// around the same path point; a rule whose branch probabilities differ
// between the two modes must reweight scatter samples so they stay an
// unbiased estimate of the non-scatter process.
//
// Rules own their RNG state and are not safe for concurrent use. Clone
// returns an independent deep copy and Reseed must reach every child.
type Rule interface {
	Next(prev Point, history []int, shape Shape, scatter bool) (Point, int)
	Reseed(seed Seed)
	Clone() Rule
}

// DefaultRule moves toward the chosen anchor by MoveRatio and blends the
// color by ColorRatio.
type DefaultRule struct {
	choice     Choice
	MoveRatio  Real
	ColorRatio Real
}

func NewDefaultRule(choice Choice, moveRatio, colorRatio Real) (*DefaultRule, error) {
	if err := checkFinite("move ratio", moveRatio); err != nil {
		return nil, err
	}
	if err := checkFinite("color ratio", colorRatio); err != nil {
		return nil, err
	}
	if choice == nil {
		choice = NewDefaultChoice()
	}
	return &DefaultRule{choice: choice, MoveRatio: moveRatio, ColorRatio: colorRatio}, nil
}

func (r *DefaultRule) Choice() Choice { return r.choice }

func (r *DefaultRule) Next(prev Point, history []int, shape Shape, _ bool) (Point, int) {
	index := r.choice.ChoosePoint(history, shape)
	return advance(prev, shape[index], r.MoveRatio, r.ColorRatio), index
}

func (r *DefaultRule) Reseed(seed Seed) { r.choice.Reseed(seed) }

func (r *DefaultRule) Clone() Rule {
	return &DefaultRule{choice: r.choice.Clone(), MoveRatio: r.MoveRatio, ColorRatio: r.ColorRatio}
}

func requireRule(name string, r Rule) error {
	if r == nil {
		return fmt.Errorf("%w: %s needs a child rule", ErrInvalidParam, name)
	}
	return nil
}
