package chaosgame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var suffixes = map[byte]uint64{
	'k': 1e3,
	'm': 1e6,
	'b': 1e9,
	't': 1e12,
}

// ParseCount parses a non-negative integer with an optional k/m/b/t suffix
// ("500k", "2m"). Underscores are ignored.
func ParseCount(s string) (uint64, error) {
	t := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	if t == "" {
		return 0, fmt.Errorf("%w: empty count", ErrInvalidParam)
	}
	mul := uint64(1)
	if m, ok := suffixes[t[len(t)-1]]; ok {
		mul = m
		t = t[:len(t)-1]
	}
	n, err := strconv.ParseUint(t, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: count %q: %w", ErrInvalidParam, s, err)
	}
	if n > math.MaxUint64/mul {
		return 0, fmt.Errorf("%w: count %q overflows", ErrInvalidParam, s)
	}
	return n * mul, nil
}

// ParseDim parses "WxH".
func ParseDim(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: dimension %q is not WxH", ErrInvalidParam, s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q: %w", ErrInvalidParam, ws, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q: %w", ErrInvalidParam, hs, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: dimension %q must be positive", ErrInvalidParam, s)
	}
	return w, h, nil
}

// Count is a flag.Value accepting ParseCount syntax.
type Count uint64

func (c *Count) String() string {
	if c == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*c), 10)
}

func (c *Count) Set(s string) error {
	n, err := ParseCount(s)
	if err != nil {
		return err
	}
	*c = Count(n)
	return nil
}
