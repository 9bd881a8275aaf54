package chaosgame

import (
	"fmt"
	"sort"
)

// MatrixChoice samples from an explicit Markov transition matrix: row
// history[0] gives the distribution of the next anchor. A single row is
// shared by every state.
type MatrixChoice struct {
	rng        *RuleRng
	cumulative [][]Real
}

// NewMatrixChoice normalizes each row and precomputes its cumulative sums.
func NewMatrixChoice(rows [][]Real) (*MatrixChoice, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: transition matrix has no rows", ErrInvalidParam)
	}
	cols := len(rows[0])
	if len(rows) > 1 && cols != len(rows) {
		return nil, fmt.Errorf("%w: transition matrix must be square, got %d rows of %d", ErrInvalidParam, len(rows), cols)
	}
	cum := make([][]Real, len(rows))
	for i, row := range rows {
		if len(row) != cols || cols == 0 {
			return nil, fmt.Errorf("%w: transition matrix row #%d has %d entries, want %d", ErrInvalidParam, i, len(row), cols)
		}
		sum := 0.0
		c := make([]Real, cols)
		for j, v := range row {
			if v < 0 || !isFinite(v) {
				return nil, fmt.Errorf("%w: transition matrix entry [%d][%d] = %v", ErrInvalidParam, i, j, v)
			}
			sum += v
			c[j] = sum
		}
		if sum <= 0 {
			return nil, fmt.Errorf("%w: transition matrix row #%d sums to zero", ErrInvalidParam, i)
		}
		for j := range c {
			c[j] /= sum
		}
		c[cols-1] = 1
		cum[i] = c
	}
	return &MatrixChoice{rng: NewRuleRng(), cumulative: cum}, nil
}

// Size is the number of anchors the matrix covers.
func (c *MatrixChoice) Size() int { return len(c.cumulative[0]) }

func (c *MatrixChoice) ChoosePoint(history []int, shape Shape) int {
	row := c.cumulative[0]
	if len(c.cumulative) > 1 {
		row = c.cumulative[mod(history[0], len(c.cumulative))]
	}
	u := c.rng.Float64()
	i := sort.Search(len(row), func(i int) bool { return row[i] > u })
	if i == len(row) {
		i--
	}
	return i % len(shape)
}

func (c *MatrixChoice) Reseed(seed Seed) { c.rng.Reseed(seed) }

// Clone shares the cumulative table; it is never written after construction.
func (c *MatrixChoice) Clone() Choice {
	return &MatrixChoice{rng: c.rng.Clone(), cumulative: c.cumulative}
}
