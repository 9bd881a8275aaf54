package chaosgame

// TensorChoice works on the product index space big*N+small. With
// probability JumpProb the big component is redrawn by Big over the quotient
// history (and, with JumpAny, the small one by Small over the remainder
// history); otherwise big stays and only Small moves.
type TensorChoice struct {
	rng      *RuleRng
	Big      Choice
	Small    Choice
	JumpProb Real
	JumpAny  bool
	scratch  []int
}

func NewTensorChoice(big, small Choice, jumpProb Real, jumpAny bool) (*TensorChoice, error) {
	if err := checkProb("tensor jump probability", jumpProb); err != nil {
		return nil, err
	}
	if big == nil {
		big = NewDefaultChoice()
	}
	if small == nil {
		small = NewDefaultChoice()
	}
	return &TensorChoice{rng: NewRuleRng(), Big: big, Small: small, JumpProb: jumpProb, JumpAny: jumpAny}, nil
}

// project fills the scratch buffer with f applied to each history entry.
func (c *TensorChoice) project(history []int, f func(int) int) []int {
	if cap(c.scratch) < len(history) {
		c.scratch = make([]int, len(history))
	}
	h := c.scratch[:len(history)]
	for i, x := range history {
		h[i] = f(x)
	}
	return h
}

func (c *TensorChoice) ChoosePoint(history []int, shape Shape) int {
	n := len(shape)
	quot := func(x int) int { return mod(x/n, n) }
	rem := func(x int) int { return mod(x, n) }
	if c.rng.Float64() < c.JumpProb {
		big := c.Big.ChoosePoint(c.project(history, quot), shape)
		small := rem(history[0])
		if c.JumpAny {
			small = c.Small.ChoosePoint(c.project(history, rem), shape)
		}
		return small + n*big
	}
	small := c.Small.ChoosePoint(c.project(history, rem), shape)
	return n*quot(history[0]) + small
}

func (c *TensorChoice) Reseed(seed Seed) {
	c.rng.Reseed(seed)
	c.Big.Reseed(seed)
	c.Small.Reseed(seed)
}

func (c *TensorChoice) Clone() Choice {
	return &TensorChoice{
		rng:      c.rng.Clone(),
		Big:      c.Big.Clone(),
		Small:    c.Small.Clone(),
		JumpProb: c.JumpProb,
		JumpAny:  c.JumpAny,
	}
}
