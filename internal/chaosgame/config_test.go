package chaosgame

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScene = `
width: 64
height: 48
steps: 1000
scatterSteps: 0
zoom: 2
center: [0.5, -0.5]
choices:
  skip: {type: avoid, diff: 0}
rules:
  base: {type: advance, moveRatio: 0.5, choice: {ref: skip}}
rule:
  type: or
  p: 0.3
  left: {ref: base}
  right: {type: darken, amount: 0.5, rule: {ref: base}}
shape:
  - [0, 1]
  - [1, 0, 1, 0, 0]
  - [-1, 0, 0, 1, 0]
`

const jsonScene = `{
  "polygon": 5,
  "background": [0, 0, 0.5],
  "rule": {
    "type": "discrete-spiral",
    "p": 0.4,
    "delta": 0.1,
    "epsilon": 0.95,
    "rule": {
      "type": "tensored",
      "jumpProb": 0.1,
      "rule": {"type": "advance", "choice": {"type": "neighborhood", "dist": 1}},
      "big": {"type": "matrix", "matrix": [[0, 1, 1, 1, 1]]}
    }
  }
}`

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	cfg, err := LoadConfig(writeScene(t, "scene.yaml", yamlScene))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
	assert.Equal(t, OutputPNG, cfg.Output)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 1000, p.Steps)
	assert.Equal(t, 0, p.ScatterSteps)
	assert.Equal(t, DefaultBurninSteps, p.BurninSteps)
	assert.Equal(t, 2.0, p.Zoom)
	assert.Equal(t, Vec2{0.5, -0.5}, p.Center)
	require.Len(t, p.Shape, 3)
	assert.Equal(t, 1.0, p.Shape[1].R)
	assert.Equal(t, 0.0, p.Shape[1].G)

	branch, ok := p.Rule.(*OrRule)
	require.True(t, ok)
	assert.Equal(t, 0.3, branch.P)
	assert.Equal(t, 0.3, branch.PScatter)
	left, ok := branch.Left().(*DefaultRule)
	require.True(t, ok)
	dark, ok := branch.Right().(*DarkenRule)
	require.True(t, ok)
	right, ok := dark.rule.(*DefaultRule)
	require.True(t, ok)
	// every reference is its own instance
	assert.NotSame(t, left, right)
	assert.NotSame(t, left.Choice(), right.Choice())
	_, ok = left.Choice().(*AvoidChoice)
	assert.True(t, ok)
}

func TestLoadConfigJSON(t *testing.T) {
	cfg, err := LoadConfig(writeScene(t, "scene.json", jsonScene))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultScatterSteps, *cfg.ScatterSteps)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Len(t, p.Shape, 5)
	assert.Equal(t, RGB{0, 0, 0.5}, p.Background)
	ds, ok := p.Rule.(*DiscreteSpiralRule)
	require.True(t, ok)
	assert.Equal(t, 0.4, ds.distScatter.P())
	_, ok = ds.rule.(*TensoredRule)
	assert.True(t, ok)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Len(t, p.Shape, DefaultPolygon)
	assert.Equal(t, DefaultSteps, p.Steps)
	_, ok := p.Rule.(*DefaultRule)
	assert.True(t, ok)
}

func TestFallbackZoom(t *testing.T) {
	scene, err := LoadConfig(writeScene(t, "scene.yaml", yamlScene))
	require.NoError(t, err)
	scene.SetFallbackZoom(3)
	assert.Equal(t, 2.0, scene.Zoom)

	plain, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultZoom, plain.Zoom)
	plain.SetFallbackZoom(3)
	assert.Equal(t, 3.0, plain.Zoom)
	plain.SetFallbackZoom(0)
	assert.Equal(t, 3.0, plain.Zoom)
}

func TestConfigErrors(t *testing.T) {
	for name, scene := range map[string]string{
		"unknown rule":   `{"rule": {"type": "teleport"}}`,
		"unknown ref":    `{"rule": {"ref": "nope"}}`,
		"unknown choice": `{"rule": {"type": "advance", "choice": {"type": "psychic"}}}`,
		"self reference": `{"rules": {"a": {"type": "darken", "rule": {"ref": "a"}}}, "rule": {"ref": "a"}}`,
		"missing child":  `{"rule": {"type": "or"}}`,
		"bad point":      `{"shape": [[0, 1, 2]]}`,
		"bad center":     `{"center": [1]}`,
		"bad prob":       `{"rule": {"type": "or", "p": 2, "left": {}, "right": {}}}`,
		"bad affine":     `{"rule": {"type": "affine", "matrix": [[1, 0]]}}`,
		"matrix size":    `{"polygon": 3, "rule": {"type": "advance", "choice": {"type": "matrix", "matrix": [[1, 1, 1, 1, 1]]}}}`,
		"tensor matrix":  `{"polygon": 4, "rule": {"type": "tensor", "choice": {"type": "tensor", "big": {"type": "matrix", "matrix": [[0, 1, 1]]}}}}`,
	} {
		var cfg Config
		require.NoError(t, ParseConfig([]byte(scene), ".json", &cfg), name)
		cfg.defaults()
		_, err := cfg.Params()
		assert.ErrorIs(t, err, ErrInvalidParam, name)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	_, err = LoadConfig(writeScene(t, "broken.yml", "rule: [unclosed"))
	require.Error(t, err)
}

func TestConfigSelfReferenceMessage(t *testing.T) {
	var cfg Config
	require.NoError(t, ParseConfig([]byte(`{"rules": {"a": {"type": "darken", "rule": {"ref": "a"}}}, "rule": {"ref": "a"}}`), ".json", &cfg))
	cfg.defaults()
	_, err := cfg.Params()
	require.ErrorContains(t, err, "refers to itself")
}

func TestBundledScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		cfg, err := LoadConfig(path)
		require.NoError(t, err, path)
		_, err = cfg.Params()
		require.NoError(t, err, path)
	}
}
