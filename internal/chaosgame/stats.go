package chaosgame

import "fmt"

type Category uint8

const (
	Inside         Category = iota // main sample landed on the raster
	Outside                        // main sample dropped
	ScatterInside                  // scatter sample landed on the raster
	ScatterOutside                 // scatter sample dropped
	numCategories
)

// SampleStats counts samples per Category.
type SampleStats [numCategories]uint64

func (s *SampleStats) record(c Category) { s[c]++ }

func (s *SampleStats) Add(o SampleStats) {
	for i := range s {
		s[i] += o[i]
	}
}

func (s SampleStats) String() string {
	return fmt.Sprintf("inside=%d outside=%d scatter_inside=%d scatter_outside=%d",
		s[Inside], s[Outside], s[ScatterInside], s[ScatterOutside])
}
