package chaosgame

import (
	"fmt"
	"strings"
)

// evalContext builds rule and choice trees for one scene. Named definitions
// are built on first use and every reference gets its own Clone, so two
// references never share RNG state.
type evalContext struct {
	ruleDefs   map[string]RuleCfg
	choiceDefs map[string]ChoiceCfg
	rules      map[string]Rule
	choices    map[string]Choice
	building   map[string]bool
	matrices   []*MatrixChoice
	nonce      int
}

func newEvalContext(cfg *Config) *evalContext {
	return &evalContext{
		ruleDefs:   cfg.Rules,
		choiceDefs: cfg.Choices,
		rules:      map[string]Rule{},
		choices:    map[string]Choice{},
		building:   map[string]bool{},
	}
}

// node numbers every built node; the label shows up in errors and logs.
func (ec *evalContext) node(kind string) string {
	ec.nonce++
	return fmt.Sprintf("%s#%d", kind, ec.nonce)
}

// checkShape rejects transition matrices whose size differs from the anchor
// count.
func (ec *evalContext) checkShape(shape Shape) error {
	for _, m := range ec.matrices {
		if m.Size() != len(shape) {
			return fmt.Errorf("%w: transition matrix covers %d anchors, shape has %d", ErrInvalidParam, m.Size(), len(shape))
		}
	}
	return nil
}

func orDefault(v *Real, def Real) Real {
	if v == nil {
		return def
	}
	return *v
}

func rangeOf(name string, v []Real, def Real) (Real, Real, error) {
	switch len(v) {
	case 0:
		return def, def, nil
	case 1:
		return v[0], v[0], nil
	case 2:
		return v[0], v[1], nil
	default:
		return 0, 0, fmt.Errorf("%w: %s needs 1 or 2 numbers, got %d", ErrInvalidParam, name, len(v))
	}
}

func (ec *evalContext) enter(key string) error {
	if ec.building[key] {
		return fmt.Errorf("%w: %s refers to itself", ErrInvalidParam, key)
	}
	ec.building[key] = true
	return nil
}

func (ec *evalContext) choiceRef(name string) (Choice, error) {
	if c, ok := ec.choices[name]; ok {
		return c.Clone(), nil
	}
	def, ok := ec.choiceDefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown choice %q", ErrInvalidParam, name)
	}
	key := "choice " + name
	if err := ec.enter(key); err != nil {
		return nil, err
	}
	defer delete(ec.building, key)
	c, err := ec.choice(&def)
	if err != nil {
		return nil, fmt.Errorf("choice %q: %w", name, err)
	}
	ec.choices[name] = c
	return c.Clone(), nil
}

func (ec *evalContext) ruleRef(name string) (Rule, error) {
	if r, ok := ec.rules[name]; ok {
		return r.Clone(), nil
	}
	def, ok := ec.ruleDefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown rule %q", ErrInvalidParam, name)
	}
	key := "rule " + name
	if err := ec.enter(key); err != nil {
		return nil, err
	}
	defer delete(ec.building, key)
	r, err := ec.rule(def)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	ec.rules[name] = r
	return r.Clone(), nil
}

// choice builds cfg; nil means the uniform default.
func (ec *evalContext) choice(cfg *ChoiceCfg) (Choice, error) {
	if cfg == nil {
		return NewDefaultChoice(), nil
	}
	if cfg.Ref != "" {
		return ec.choiceRef(cfg.Ref)
	}
	label := ec.node("choice")
	DebugLog("building %s: %q", label, cfg.Type)
	var (
		res Choice
		err error
	)
	switch strings.ToLower(cfg.Type) {
	case "", "default":
		res = NewDefaultChoice()
	case "avoid":
		res = NewAvoidChoice(cfg.Diff)
	case "avoid2", "avoid-two":
		res = NewAvoidTwoChoice(cfg.Diff, cfg.Diff2)
	case "neighbor":
		dist := 1
		if cfg.Dist != nil {
			dist = *cfg.Dist
		}
		res, err = NewNeighborChoice(dist)
	case "neighborhood":
		dist := 1
		if cfg.Dist != nil {
			dist = *cfg.Dist
		}
		res, err = NewNeighborhoodChoice(dist)
	case "matrix":
		var m *MatrixChoice
		if m, err = NewMatrixChoice(cfg.Matrix); err == nil {
			ec.matrices = append(ec.matrices, m)
			res = m
		}
	case "tensor":
		var big, small Choice
		if cfg.Big != nil {
			if big, err = ec.choice(cfg.Big); err != nil {
				return nil, err
			}
		}
		if cfg.Small != nil {
			if small, err = ec.choice(cfg.Small); err != nil {
				return nil, err
			}
		}
		res, err = NewTensorChoice(big, small, orDefault(cfg.JumpProb, 0.5), cfg.JumpAny)
	default:
		return nil, fmt.Errorf("%w: %s: unknown choice type %q", ErrInvalidParam, label, cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return res, nil
}

func (ec *evalContext) child(label, field string, cfg *RuleCfg) (Rule, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s: missing %q", ErrInvalidParam, label, field)
	}
	return ec.rule(*cfg)
}

func (ec *evalContext) distribution(cfg *DistCfg) (Distribution, error) {
	if cfg == nil {
		return NewUniform(0.25, 0.75)
	}
	switch strings.ToLower(cfg.Type) {
	case "", "uniform":
		return NewUniform(cfg.Low, cfg.High)
	case "skew-normal", "skewnormal":
		return NewSkewNormal(cfg.Location, cfg.Scale, cfg.Shape)
	default:
		return nil, fmt.Errorf("%w: unknown distribution %q", ErrInvalidParam, cfg.Type)
	}
}

func (ec *evalContext) rule(cfg RuleCfg) (Rule, error) {
	if cfg.Ref != "" {
		return ec.ruleRef(cfg.Ref)
	}
	label := ec.node("rule")
	DebugLog("building %s: %q", label, cfg.Type)
	res, err := ec.buildRule(label, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", label, cfg.Type, err)
	}
	return res, nil
}

func (ec *evalContext) buildRule(label string, cfg RuleCfg) (Rule, error) {
	move := orDefault(cfg.MoveRatio, 0.5)
	color := orDefault(cfg.ColorRatio, 0.5)
	switch strings.ToLower(cfg.Type) {
	case "", "advance", "default":
		choice, err := ec.choice(cfg.Choice)
		if err != nil {
			return nil, err
		}
		return NewDefaultRule(choice, move, color)
	case "darken":
		inner, err := ec.child(label, "rule", cfg.Rule)
		if err != nil {
			return nil, err
		}
		return NewDarkenRule(inner, orDefault(cfg.Amount, 1))
	case "spiral":
		inner, err := ec.child(label, "rule", cfg.Rule)
		if err != nil {
			return nil, err
		}
		dl, dh, err := rangeOf("deltaRange", cfg.DeltaRange, 0)
		if err != nil {
			return nil, err
		}
		el, eh, err := rangeOf("epsilonRange", cfg.EpsilonRange, 1)
		if err != nil {
			return nil, err
		}
		return NewSpiralRule(inner, dl, dh, el, eh)
	case "discrete-spiral":
		inner, err := ec.child(label, "rule", cfg.Rule)
		if err != nil {
			return nil, err
		}
		p := orDefault(cfg.P, 0.5)
		return NewDiscreteSpiralRule(inner, p, orDefault(cfg.PScatter, p),
			orDefault(cfg.Delta, 1), orDefault(cfg.Epsilon, 1), orDefault(cfg.Darken, 1))
	case "or":
		left, err := ec.child(label, "left", cfg.Left)
		if err != nil {
			return nil, err
		}
		right, err := ec.child(label, "right", cfg.Right)
		if err != nil {
			return nil, err
		}
		p := orDefault(cfg.P, 0.5)
		return NewOrRule(left, right, p, orDefault(cfg.PScatter, p))
	case "tensor":
		var choice Choice
		if cfg.Choice != nil {
			c, err := ec.choice(cfg.Choice)
			if err != nil {
				return nil, err
			}
			choice = c
		}
		r, err := NewTensorRule(choice)
		if err != nil {
			return nil, err
		}
		r.MoveRatio = orDefault(cfg.MoveRatio, r.MoveRatio)
		r.JumpRatio = orDefault(cfg.JumpRatio, r.JumpRatio)
		r.ColorRatio = orDefault(cfg.ColorRatio, r.ColorRatio)
		r.Scale = orDefault(cfg.Scale, r.Scale)
		r.JumpCenter = cfg.JumpCenter
		r.ColorSmall = cfg.ColorSmall
		return r, nil
	case "tensored":
		inner, err := ec.child(label, "rule", cfg.Rule)
		if err != nil {
			return nil, err
		}
		big, err := ec.choice(cfg.Big)
		if err != nil {
			return nil, err
		}
		return NewTensoredRule(inner, big, orDefault(cfg.JumpProb, 0.5), orDefault(cfg.JumpRatio, 0.5),
			orDefault(cfg.ColorRatio, 1), orDefault(cfg.Scale, 0.2))
	case "rand-advance":
		choice, err := ec.choice(cfg.Choice)
		if err != nil {
			return nil, err
		}
		dist, err := ec.distribution(cfg.Distribution)
		if err != nil {
			return nil, err
		}
		return NewRandAdvanceRule(choice, dist, color)
	case "advance-two":
		choice, err := ec.choice(cfg.Choice)
		if err != nil {
			return nil, err
		}
		return NewAdvanceTwoRule(choice, move, orDefault(cfg.MoveRatio2, move), color, orDefault(cfg.Skew, 0.5))
	case "merge":
		left, err := ec.child(label, "left", cfg.Left)
		if err != nil {
			return nil, err
		}
		right, err := ec.child(label, "right", cfg.Right)
		if err != nil {
			return nil, err
		}
		return NewMergeRule(left, right, orDefault(cfg.Ratio, 0.5))
	case "affine":
		choice, err := ec.choice(cfg.Choice)
		if err != nil {
			return nil, err
		}
		m := I2()
		if cfg.Matrix != nil {
			if len(cfg.Matrix) != 2 || len(cfg.Matrix[0]) != 2 || len(cfg.Matrix[1]) != 2 {
				return nil, fmt.Errorf("%w: affine matrix must be 2x2", ErrInvalidParam)
			}
			m = Mat2{M: [2][2]Real{
				{cfg.Matrix[0][0], cfg.Matrix[0][1]},
				{cfg.Matrix[1][0], cfg.Matrix[1][1]},
			}}
		}
		return NewAffineAdvanceRule(choice, m, move, color, orDefault(cfg.Skew, 0.5))
	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrInvalidParam, cfg.Type)
	}
}
