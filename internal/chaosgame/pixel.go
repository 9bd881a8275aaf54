package chaosgame

// Pixel accumulates weighted color sums, the total weight and the lightness
// moments used by the convergence estimate.
type Pixel struct {
	RSum, GSum, BSum Real
	N                Real
	LSum, LSquared   Real
}

// Add accumulates one sample scaled by its importance weight.
func (p *Pixel) Add(pt Point) {
	w := pt.Weight
	p.RSum += pt.R * w
	p.GSum += pt.G * w
	p.BSum += pt.B * w
	p.N += w

	l := pt.Lightness()
	p.LSum += l * w
	p.LSquared += l * l * w
}

// AddPixel folds another accumulator in; the order of merges does not matter.
func (p *Pixel) AddPixel(o Pixel) {
	p.RSum += o.RSum
	p.GSum += o.GSum
	p.BSum += o.BSum
	p.N += o.N
	p.LSum += o.LSum
	p.LSquared += o.LSquared
}

// Mean is the average color; zero for an empty pixel.
func (p Pixel) Mean() RGB {
	if p.N == 0 {
		return RGB{}
	}
	return RGB{p.RSum / p.N, p.GSum / p.N, p.BSum / p.N}
}

// ErrorSquared is the variance of the mean lightness:
// σ(mean)² = (E[L²] - E[L]²) / n.
func (p Pixel) ErrorSquared() Real {
	if p.N == 0 {
		return 0
	}
	mean := p.LSum / p.N
	return (p.LSquared/p.N - mean*mean) / p.N
}
