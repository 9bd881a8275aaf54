package chaosgame

import (
	"fmt"
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// mod is the euclidean remainder, always in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func lerp(a, b, t Real) Real { return a + (b-a)*t }

func checkProb(name string, p Real) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %s must be a probability in [0, 1], got %v", ErrInvalidParam, name, p)
	}
	return nil
}

func checkFinite(name string, x Real) error {
	if !isFinite(x) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParam, name, x)
	}
	return nil
}
