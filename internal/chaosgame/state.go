package chaosgame

import "fmt"

// State is the canonical accumulation grid. Only the Manager mutates it.
type State struct {
	Width, Height int
	Pixels        []Pixel
	Steps         uint64
	Stats         SampleStats
}

func NewState(width, height int) *State {
	return &State{Width: width, Height: height, Pixels: make([]Pixel, width*height)}
}

// Combine merges a worker buffer of the same geometry.
func (s *State) Combine(pixels []Pixel, steps uint64, stats SampleStats) error {
	if len(pixels) != len(s.Pixels) {
		return fmt.Errorf("buffer has %d pixels, state has %d", len(pixels), len(s.Pixels))
	}
	for i := range pixels {
		s.Pixels[i].AddPixel(pixels[i])
	}
	s.Steps += steps
	s.Stats.Add(stats)
	return nil
}

// Reset zeroes the state for a new geometry, keeping the allocation when the
// pixel count does not change.
func (s *State) Reset(width, height int) {
	if len(s.Pixels) == width*height {
		clear(s.Pixels)
	} else {
		s.Pixels = make([]Pixel, width*height)
	}
	s.Width, s.Height = width, height
	s.Steps = 0
	s.Stats = SampleStats{}
}

// MSE averages the per-pixel variance of the mean lightness.
func (s *State) MSE() Real {
	if len(s.Pixels) == 0 {
		return 0
	}
	res := 0.0
	for i := range s.Pixels {
		res += s.Pixels[i].ErrorSquared()
	}
	return res / Real(len(s.Pixels))
}
