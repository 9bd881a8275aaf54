package chaosgame

import (
	"context"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	for in, want := range map[string]uint64{
		"0":     0,
		"42":    42,
		"500k":  500_000,
		"2M":    2_000_000,
		"3b":    3_000_000_000,
		"1t":    1_000_000_000_000,
		"1_000": 1_000,
	} {
		got, err := ParseCount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "k", "abc", "-5", "1.5k", "20000000t"} {
		_, err := ParseCount(in)
		assert.ErrorIs(t, err, ErrInvalidParam, in)
	}

	var c Count
	require.NoError(t, c.Set("10k"))
	assert.Equal(t, Count(10_000), c)
	assert.Equal(t, "10000", c.String())
}

func TestParseDim(t *testing.T) {
	w, h, err := ParseDim("1920x1080")
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
	for _, in := range []string{"", "1920", "0x10", "ax10", "10xb", "-1x5"} {
		_, _, err := ParseDim(in)
		assert.ErrorIs(t, err, ErrInvalidParam, in)
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "1,234,567 iterations, MSE: 0.5", Summary(1_234_567, 0.5))
}

func testImage() *Image {
	s := NewState(40, 20)
	for i := 0; i < 100; i++ {
		s.Pixels[i*7%len(s.Pixels)].Add(NewPoint(0, 0, RGB{1, 0.5, 0}))
	}
	s.Steps = 100
	return s.Render(DefaultGain, RGB{BackgroundR, BackgroundG, BackgroundB})
}

func TestExportImage(t *testing.T) {
	img := testImage()
	out := ExportImage(img, 2, false)
	assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
	same := ExportImage(img, 1, false)
	assert.Equal(t, img.Pix, same.Pix)
	// exporting never touches the published frame
	stamped := ExportImage(img, 1, true)
	assert.NotEqual(t, img.Pix, stamped.Pix)
	assert.Equal(t, testImage().Pix, img.Pix)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(ExportImage(testImage(), 1, false), path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), decoded.Bounds())
}

func TestTimelapse(t *testing.T) {
	tl := NewTimelapse(100, 0)
	img := testImage()
	assert.True(t, tl.Capture(img))
	assert.False(t, tl.Capture(img))
	img2 := *img
	img2.Steps = 450
	assert.True(t, tl.Capture(&img2))
	assert.Equal(t, 2, tl.Frames())
	img2.Steps = 499
	assert.False(t, tl.Capture(&img2))

	path := filepath.Join(t.TempDir(), "out.gif")
	require.NoError(t, tl.Save(path, img))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, g.Image, 3)
	assert.Equal(t, GIFDelay, g.Delay[0])
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	scatter := 2
	cfg := &Config{
		Width:        24,
		Height:       16,
		Steps:        2_000,
		ScatterSteps: &scatter,
		Threads:      2,
		MaxSteps:     20_000,
		Output:       filepath.Join(dir, "out.png"),
		GIFOut:       filepath.Join(dir, "out.gif"),
		GIFEvery:     5_000,
	}
	cfg.defaults()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	img, err := Run(ctx, cfg, RunOptions{Supersample: 2, Stamp: true, Poll: time.Millisecond})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, img.Steps, uint64(20_000))
	assert.Equal(t, 48, img.Width)

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 24, 16), decoded.Bounds())
	_, err = os.Stat(cfg.GIFOut)
	require.NoError(t, err)
}

func TestRunCanceled(t *testing.T) {
	cfg := &Config{Width: 8, Height: 8, Threads: 1, Output: filepath.Join(t.TempDir(), "out.png")}
	cfg.defaults()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, cfg, RunOptions{})
	require.NoError(t, err)
	_, err = os.Stat(cfg.Output)
	require.NoError(t, err)
}
