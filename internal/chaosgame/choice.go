package chaosgame

import "fmt"

// Choice picks the next anchor index from the recent anchor history
// (newest first). Implementations own their RNG and are not safe for
// concurrent use; every worker works on its own Clone.
type Choice interface {
	ChoosePoint(history []int, shape Shape) int
	Reseed(seed Seed)
	Clone() Choice
}

// DefaultChoice is uniform over all anchors.
type DefaultChoice struct {
	rng *RuleRng
}

func NewDefaultChoice() *DefaultChoice { return &DefaultChoice{rng: NewRuleRng()} }

func (c *DefaultChoice) ChoosePoint(_ []int, shape Shape) int { return c.rng.IntN(len(shape)) }
func (c *DefaultChoice) Reseed(seed Seed)                     { c.rng.Reseed(seed) }
func (c *DefaultChoice) Clone() Choice                        { return &DefaultChoice{rng: c.rng.Clone()} }

// AvoidChoice is uniform over all anchors except (history[0]+Diff) mod N.
// With a single anchor there is nothing else to pick and 0 is returned.
type AvoidChoice struct {
	rng  *RuleRng
	Diff int
}

func NewAvoidChoice(diff int) *AvoidChoice { return &AvoidChoice{rng: NewRuleRng(), Diff: diff} }

func (c *AvoidChoice) ChoosePoint(history []int, shape Shape) int {
	n := len(shape)
	if n == 1 {
		return 0
	}
	diff := mod(c.Diff, n)
	inc := c.rng.IntN(n - 1)
	if inc >= diff {
		inc++
	}
	return (mod(history[0], n) + inc) % n
}

func (c *AvoidChoice) Reseed(seed Seed) { c.rng.Reseed(seed) }
func (c *AvoidChoice) Clone() Choice    { return &AvoidChoice{rng: c.rng.Clone(), Diff: c.Diff} }

// AvoidTwoChoice excludes (history[0]+Diff) mod N and rejects draws equal to
// (history[1]+Diff2) mod N. When both exclusions together would leave no
// candidate only the first one is enforced.
type AvoidTwoChoice struct {
	rng   *RuleRng
	Diff  int
	Diff2 int
}

func NewAvoidTwoChoice(diff, diff2 int) *AvoidTwoChoice {
	return &AvoidTwoChoice{rng: NewRuleRng(), Diff: diff, Diff2: diff2}
}

func (c *AvoidTwoChoice) ChoosePoint(history []int, shape Shape) int {
	n := len(shape)
	if n == 1 {
		return 0
	}
	current := mod(history[0], n)
	last := current
	if len(history) > 1 {
		last = mod(history[1], n)
	}
	diff := mod(c.Diff, n)
	first := (current + diff) % n
	second := mod(last+c.Diff2, n)
	// N == 2 with distinct exclusions leaves nothing to pick.
	enforceSecond := first == second || n > 2
	for {
		inc := c.rng.IntN(n - 1)
		if inc >= diff {
			inc++
		}
		res := (current + inc) % n
		if !enforceSecond || res != second {
			return res
		}
	}
}

func (c *AvoidTwoChoice) Reseed(seed Seed) { c.rng.Reseed(seed) }
func (c *AvoidTwoChoice) Clone() Choice {
	return &AvoidTwoChoice{rng: c.rng.Clone(), Diff: c.Diff, Diff2: c.Diff2}
}

// NeighborChoice jumps Dist anchors forward or backward with a coin flip.
type NeighborChoice struct {
	rng  *RuleRng
	Dist int
}

func NewNeighborChoice(dist int) (*NeighborChoice, error) {
	if dist < 0 {
		return nil, fmt.Errorf("%w: neighbor distance must be >= 0, got %d", ErrInvalidParam, dist)
	}
	return &NeighborChoice{rng: NewRuleRng(), Dist: dist}, nil
}

func (c *NeighborChoice) ChoosePoint(history []int, shape Shape) int {
	n := len(shape)
	if c.rng.Bool() {
		return mod(history[0]+c.Dist, n)
	}
	return mod(history[0]-c.Dist, n)
}

func (c *NeighborChoice) Reseed(seed Seed) { c.rng.Reseed(seed) }
func (c *NeighborChoice) Clone() Choice    { return &NeighborChoice{rng: c.rng.Clone(), Dist: c.Dist} }

// NeighborhoodChoice is uniform over history[0] + [-MaxDist, MaxDist] mod N.
type NeighborhoodChoice struct {
	rng     *RuleRng
	MaxDist int
}

func NewNeighborhoodChoice(maxDist int) (*NeighborhoodChoice, error) {
	if maxDist < 0 {
		return nil, fmt.Errorf("%w: neighborhood radius must be >= 0, got %d", ErrInvalidParam, maxDist)
	}
	return &NeighborhoodChoice{rng: NewRuleRng(), MaxDist: maxDist}, nil
}

func (c *NeighborhoodChoice) ChoosePoint(history []int, shape Shape) int {
	step := c.rng.IntN(2*c.MaxDist+1) - c.MaxDist
	return mod(history[0]+step, len(shape))
}

func (c *NeighborhoodChoice) Reseed(seed Seed) { c.rng.Reseed(seed) }
func (c *NeighborhoodChoice) Clone() Choice {
	return &NeighborhoodChoice{rng: c.rng.Clone(), MaxDist: c.MaxDist}
}
