package chaosgame

// DarkenRule scales the color of its child's sample by Amount.
type DarkenRule struct {
	rule   Rule
	Amount Real
}

func NewDarkenRule(rule Rule, amount Real) (*DarkenRule, error) {
	if err := requireRule("darken", rule); err != nil {
		return nil, err
	}
	if err := checkFinite("darken amount", amount); err != nil {
		return nil, err
	}
	return &DarkenRule{rule: rule, Amount: amount}, nil
}

func (r *DarkenRule) Next(prev Point, history []int, shape Shape, scatter bool) (Point, int) {
	next, index := r.rule.Next(prev, history, shape, scatter)
	next.Darken(r.Amount)
	return next, index
}

func (r *DarkenRule) Reseed(seed Seed) { r.rule.Reseed(seed) }
func (r *DarkenRule) Clone() Rule      { return &DarkenRule{rule: r.rule.Clone(), Amount: r.Amount} }
