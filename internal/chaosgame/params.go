package chaosgame

import "fmt"

// WorldParams is fixed for a run and cloned once per worker.
type WorldParams struct {
	Zoom         Real
	Center       Vec2
	Rule         Rule
	Shape        Shape
	Steps        int // main iterations per batch
	ScatterSteps int // scatter draws per main iteration
	BurninSteps  int
	Gain         Real
	Background   RGB // squared-linear
}

// DefaultParams fills in everything but the rule and shape.
func DefaultParams(rule Rule, shape Shape) WorldParams {
	return WorldParams{
		Zoom:         DefaultZoom,
		Rule:         rule,
		Shape:        shape,
		Steps:        DefaultSteps,
		ScatterSteps: DefaultScatterSteps,
		BurninSteps:  DefaultBurninSteps,
		Gain:         DefaultGain,
		Background:   RGB{BackgroundR, BackgroundG, BackgroundB},
	}
}

func (p WorldParams) Validate() error {
	if p.Rule == nil {
		return fmt.Errorf("%w: no rule", ErrInvalidParam)
	}
	if err := p.Shape.Validate(); err != nil {
		return err
	}
	if !(p.Zoom > 0) || !isFinite(p.Zoom) {
		return fmt.Errorf("%w: zoom must be > 0, got %v", ErrInvalidParam, p.Zoom)
	}
	if !isFinite(p.Center.X) || !isFinite(p.Center.Y) {
		return fmt.Errorf("%w: center must be finite, got %+v", ErrInvalidParam, p.Center)
	}
	if p.Steps <= 0 {
		return fmt.Errorf("%w: steps per batch must be > 0, got %d", ErrInvalidParam, p.Steps)
	}
	if p.ScatterSteps < 0 || p.BurninSteps < 0 {
		return fmt.Errorf("%w: scatter/burn-in steps must be >= 0, got %d/%d", ErrInvalidParam, p.ScatterSteps, p.BurninSteps)
	}
	if !(p.Gain > 0) || !isFinite(p.Gain) {
		return fmt.Errorf("%w: gain must be > 0, got %v", ErrInvalidParam, p.Gain)
	}
	return nil
}

// Clone deep-copies the rule; the shape is shared since it is immutable.
func (p WorldParams) Clone() WorldParams {
	c := p
	c.Rule = p.Rule.Clone()
	return c
}
