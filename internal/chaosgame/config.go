package chaosgame

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChoiceCfg describes a Choice. Ref names an entry of Config.Choices.
type ChoiceCfg struct {
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Ref      string     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Diff     int        `json:"diff,omitempty" yaml:"diff,omitempty"`
	Diff2    int        `json:"diff2,omitempty" yaml:"diff2,omitempty"`
	Dist     *int       `json:"dist,omitempty" yaml:"dist,omitempty"`
	Matrix   [][]Real   `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Big      *ChoiceCfg `json:"big,omitempty" yaml:"big,omitempty"`
	Small    *ChoiceCfg `json:"small,omitempty" yaml:"small,omitempty"`
	JumpProb *Real      `json:"jumpProb,omitempty" yaml:"jumpProb,omitempty"`
	JumpAny  bool       `json:"jumpAny,omitempty" yaml:"jumpAny,omitempty"`
}

// DistCfg describes the move ratio distribution of a "rand-advance" rule.
type DistCfg struct {
	Type     string `json:"type" yaml:"type"` // "uniform" or "skew-normal"
	Low      Real   `json:"low,omitempty" yaml:"low,omitempty"`
	High     Real   `json:"high,omitempty" yaml:"high,omitempty"`
	Location Real   `json:"location,omitempty" yaml:"location,omitempty"`
	Scale    Real   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Shape    Real   `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// RuleCfg describes a Rule tree node. Ref names an entry of Config.Rules.
// Unset numbers take the defaults of the node type.
type RuleCfg struct {
	Type         string     `json:"type,omitempty" yaml:"type,omitempty"`
	Ref          string     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Choice       *ChoiceCfg `json:"choice,omitempty" yaml:"choice,omitempty"`
	Rule         *RuleCfg   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Left         *RuleCfg   `json:"left,omitempty" yaml:"left,omitempty"`
	Right        *RuleCfg   `json:"right,omitempty" yaml:"right,omitempty"`
	Big          *ChoiceCfg `json:"big,omitempty" yaml:"big,omitempty"`
	Distribution *DistCfg   `json:"distribution,omitempty" yaml:"distribution,omitempty"`
	MoveRatio    *Real      `json:"moveRatio,omitempty" yaml:"moveRatio,omitempty"`
	MoveRatio2   *Real      `json:"moveRatio2,omitempty" yaml:"moveRatio2,omitempty"`
	ColorRatio   *Real      `json:"colorRatio,omitempty" yaml:"colorRatio,omitempty"`
	JumpRatio    *Real      `json:"jumpRatio,omitempty" yaml:"jumpRatio,omitempty"`
	JumpProb     *Real      `json:"jumpProb,omitempty" yaml:"jumpProb,omitempty"`
	Scale        *Real      `json:"scale,omitempty" yaml:"scale,omitempty"`
	Skew         *Real      `json:"skew,omitempty" yaml:"skew,omitempty"`
	Ratio        *Real      `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Amount       *Real      `json:"amount,omitempty" yaml:"amount,omitempty"`
	P            *Real      `json:"p,omitempty" yaml:"p,omitempty"`
	PScatter     *Real      `json:"pScatter,omitempty" yaml:"pScatter,omitempty"`
	Delta        *Real      `json:"delta,omitempty" yaml:"delta,omitempty"`
	Epsilon      *Real      `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	Darken       *Real      `json:"darken,omitempty" yaml:"darken,omitempty"`
	DeltaRange   []Real     `json:"deltaRange,omitempty" yaml:"deltaRange,omitempty"`
	EpsilonRange []Real     `json:"epsilonRange,omitempty" yaml:"epsilonRange,omitempty"`
	Matrix       [][]Real   `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	JumpCenter   bool       `json:"jumpCenter,omitempty" yaml:"jumpCenter,omitempty"`
	ColorSmall   bool       `json:"colorSmall,omitempty" yaml:"colorSmall,omitempty"`
}

// Config is a scene file: the rule, the anchors and the run parameters.
// Anchors are [x, y] (random color) or [x, y, r, g, b]. Background is
// given in squared-linear space like the default.
type Config struct {
	Width        int                  `json:"width,omitempty" yaml:"width,omitempty"`
	Height       int                  `json:"height,omitempty" yaml:"height,omitempty"`
	Zoom         Real                 `json:"zoom,omitempty" yaml:"zoom,omitempty"`
	Center       []Real               `json:"center,omitempty" yaml:"center,omitempty"`
	Steps        int                  `json:"steps,omitempty" yaml:"steps,omitempty"`
	ScatterSteps *int                 `json:"scatterSteps,omitempty" yaml:"scatterSteps,omitempty"`
	BurninSteps  *int                 `json:"burninSteps,omitempty" yaml:"burninSteps,omitempty"`
	Gain         Real                 `json:"gain,omitempty" yaml:"gain,omitempty"`
	Background   []Real               `json:"background,omitempty" yaml:"background,omitempty"`
	Threads      int                  `json:"threads,omitempty" yaml:"threads,omitempty"`
	QueueLength  int                  `json:"queueLength,omitempty" yaml:"queueLength,omitempty"`
	MaxSteps     uint64               `json:"maxSteps,omitempty" yaml:"maxSteps,omitempty"`
	Output       string               `json:"output,omitempty" yaml:"output,omitempty"`
	GIFOut       string               `json:"gifOut,omitempty" yaml:"gifOut,omitempty"`
	GIFDelay     int                  `json:"gifDelay,omitempty" yaml:"gifDelay,omitempty"`
	GIFEvery     uint64               `json:"gifEvery,omitempty" yaml:"gifEvery,omitempty"`
	Polygon      int                  `json:"polygon,omitempty" yaml:"polygon,omitempty"`
	Shape        [][]Real             `json:"shape,omitempty" yaml:"shape,omitempty"`
	Choices      map[string]ChoiceCfg `json:"choices,omitempty" yaml:"choices,omitempty"`
	Rules        map[string]RuleCfg   `json:"rules,omitempty" yaml:"rules,omitempty"`
	Rule         *RuleCfg             `json:"rule,omitempty" yaml:"rule,omitempty"`

	sceneZoom bool
}

// LoadConfig reads a JSON or YAML (by extension) scene file and fills in
// defaults. An empty path yields the default scene.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := ParseConfig(data, filepath.Ext(path), &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.defaults()
	DebugLog("Loaded config from %q: size=%dx%d, zoom=%v, steps=%d, scatter=%d, burn-in=%d, gain=%v",
		path, cfg.Width, cfg.Height, cfg.Zoom, cfg.Steps, *cfg.ScatterSteps, *cfg.BurninSteps, cfg.Gain)
	return &cfg, nil
}

// ParseConfig decodes data as YAML for ".yaml"/".yml" and JSON otherwise.
func ParseConfig(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// SetFallbackZoom sets the zoom unless the scene file gave one.
func (cfg *Config) SetFallbackZoom(z Real) {
	if !cfg.sceneZoom && z > 0 {
		cfg.Zoom = z
	}
}

func (cfg *Config) defaults() {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	cfg.sceneZoom = cfg.Zoom > 0
	if !cfg.sceneZoom {
		cfg.Zoom = DefaultZoom
	}
	if cfg.Steps <= 0 {
		cfg.Steps = DefaultSteps
	}
	if cfg.ScatterSteps == nil {
		n := DefaultScatterSteps
		cfg.ScatterSteps = &n
	}
	if cfg.BurninSteps == nil {
		n := DefaultBurninSteps
		cfg.BurninSteps = &n
	}
	if cfg.Gain <= 0 {
		cfg.Gain = DefaultGain
	}
	if cfg.Output == "" {
		cfg.Output = OutputPNG
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.Polygon <= 0 {
		cfg.Polygon = DefaultPolygon
	}
}

// Params builds the rule tree and shape. Every call gets its own evaluation
// context, so named definitions never leak between scenes.
func (cfg *Config) Params() (WorldParams, error) {
	ec := newEvalContext(cfg)
	var (
		rule Rule
		err  error
	)
	if cfg.Rule != nil {
		rule, err = ec.rule(*cfg.Rule)
	} else {
		rule, err = NewDefaultRule(NewDefaultChoice(), 0.5, 0.5)
	}
	if err != nil {
		return WorldParams{}, fmt.Errorf("rule: %w", err)
	}
	shape, err := cfg.shape()
	if err != nil {
		return WorldParams{}, fmt.Errorf("shape: %w", err)
	}
	if err := ec.checkShape(shape); err != nil {
		return WorldParams{}, fmt.Errorf("rule: %w", err)
	}
	p := DefaultParams(rule, shape)
	p.Zoom = cfg.Zoom
	p.Steps = cfg.Steps
	p.ScatterSteps = *cfg.ScatterSteps
	p.BurninSteps = *cfg.BurninSteps
	p.Gain = cfg.Gain
	if len(cfg.Center) > 0 {
		if len(cfg.Center) != 2 {
			return WorldParams{}, fmt.Errorf("%w: center needs 2 numbers, got %d", ErrInvalidParam, len(cfg.Center))
		}
		p.Center = Vec2{cfg.Center[0], cfg.Center[1]}
	}
	if len(cfg.Background) > 0 {
		if len(cfg.Background) != 3 {
			return WorldParams{}, fmt.Errorf("%w: background needs 3 numbers, got %d", ErrInvalidParam, len(cfg.Background))
		}
		p.Background = RGB{cfg.Background[0], cfg.Background[1], cfg.Background[2]}.clamp01()
	}
	DebugLog("Built scene: %d anchors, %d named rules, %d named choices, %d nodes", len(shape), len(ec.rules), len(ec.choices), ec.nonce)
	return p, p.Validate()
}

func (cfg *Config) shape() (Shape, error) {
	if len(cfg.Shape) == 0 {
		return DefaultShape(cfg.Polygon), nil
	}
	res := make(Shape, 0, len(cfg.Shape))
	for i, pt := range cfg.Shape {
		switch len(pt) {
		case 2:
			res = append(res, NewPoint(pt[0], pt[1], RGB{rand.Float64(), rand.Float64(), rand.Float64()}))
		case 5:
			res = append(res, NewPoint(pt[0], pt[1], RGB{pt[2], pt[3], pt[4]}.clamp01()))
		default:
			return nil, fmt.Errorf("%w: point #%d needs 2 or 5 numbers, got %d", ErrInvalidParam, i, len(pt))
		}
	}
	return res, res.Validate()
}
