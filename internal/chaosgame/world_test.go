package chaosgame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(t *testing.T) WorldParams {
	t.Helper()
	rule, err := NewDefaultRule(nil, 0.5, 0.5)
	require.NoError(t, err)
	p := DefaultParams(rule, DefaultShape(3))
	p.ScatterSteps = 0
	p.Steps = 10_000
	p.BurninSteps = 100
	return p
}

// slowParams keep the workers in burn-in long enough for nothing to be
// merged while a test inspects the world.
func slowParams(t *testing.T) WorldParams {
	p := testParams(t)
	p.BurninSteps = 20_000_000
	return p
}

func TestNewRejects(t *testing.T) {
	p := testParams(t)
	_, err := New(0, 10, p, 1, 1)
	require.ErrorIs(t, err, ErrInvalidParam)
	_, err = New(10, 10, p, -1, 1)
	require.ErrorIs(t, err, ErrInvalidParam)

	bad := p
	bad.Shape = nil
	_, err = New(10, 10, bad, 1, 1)
	require.ErrorIs(t, err, ErrEmptyShape)

	bad = p
	bad.Rule = nil
	_, err = New(10, 10, bad, 1, 1)
	require.ErrorIs(t, err, ErrInvalidParam)

	bad = p
	bad.Zoom = 0
	_, err = New(10, 10, bad, 1, 1)
	require.ErrorIs(t, err, ErrInvalidParam)
}

func TestFreshWorldDrawsBackground(t *testing.T) {
	w, err := New(8, 4, slowParams(t), 1, 0)
	require.NoError(t, err)
	defer w.Stop()

	px := backgroundRGBA(w.m.params.Background)
	buf := make([]byte, 8*4*4+8)
	w.Draw(buf)
	for i := 0; i < len(buf); i += 4 {
		require.Equal(t, px[:], buf[i:i+4], "byte %d", i)
	}
	assert.Zero(t, w.Steps())
	assert.Zero(t, w.MSE())
	require.NoError(t, w.Update())
	_, err = w.State()
	require.ErrorIs(t, err, ErrRunning)
}

func TestResizeResetsAccumulation(t *testing.T) {
	w, err := New(16, 16, slowParams(t), 1, 0)
	require.NoError(t, err)

	require.NoError(t, w.Resize(32, 8))
	width, height := w.Size()
	assert.Equal(t, 32, width)
	assert.Equal(t, 8, height)
	assert.Zero(t, w.Steps())
	assert.Len(t, w.Image().Pix, 32*8*4)

	require.NoError(t, w.Stop())
	st, err := w.State()
	require.NoError(t, err)
	assert.Len(t, st.Pixels, 32*8)
	for _, p := range st.Pixels {
		require.Zero(t, p.N)
	}
	require.ErrorIs(t, w.Resize(4, 4), ErrStopped)
}

func TestResizeMergesOnlyNewGeometry(t *testing.T) {
	w, err := New(16, 16, testParams(t), 2, 0)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return w.Steps() > 0 }, 10*time.Second, time.Millisecond)
	require.NoError(t, w.Resize(20, 10))
	require.NoError(t, w.Stop())
	st, err := w.State()
	require.NoError(t, err)
	assert.Equal(t, 20, st.Width)
	assert.Len(t, st.Pixels, 200)
	total := 0.0
	for _, p := range st.Pixels {
		total += p.N
	}
	// only samples of the new geometry were merged
	assert.Equal(t, Real(st.Stats[Inside]), total)
	assert.Equal(t, st.Steps, st.Stats[Inside]+st.Stats[Outside])
}

func TestWorldConverges(t *testing.T) {
	if testing.Short() {
		t.Skip("long run")
	}
	rule, err := NewDefaultRule(NewDefaultChoice(), 0.5, 0.5)
	require.NoError(t, err)
	shape := Shape{
		NewPoint(0, -1, RGB{1, 0, 0}),
		NewPoint(0.87, 0.5, RGB{0, 1, 0}),
		NewPoint(-0.87, 0.5, RGB{0, 0, 1}),
	}
	p := DefaultParams(rule, shape)
	p.ScatterSteps = 0
	p.Zoom = 1.25
	p.Steps = 100_000

	w, err := New(64, 64, p, 1, 0)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return w.Steps() >= 1_000_000 }, time.Minute, 10*time.Millisecond)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Update())

	st, err := w.State()
	require.NoError(t, err)
	require.GreaterOrEqual(t, st.Steps, uint64(1_000_000))
	total := 0.0
	for _, px := range st.Pixels {
		total += px.N
		if px.N == 0 {
			continue
		}
		m := px.Mean()
		for _, c := range []Real{m.R, m.G, m.B} {
			require.GreaterOrEqual(t, c, 0.0)
			require.LessOrEqual(t, c, 1.0+1e-12)
		}
	}
	assert.Equal(t, Real(st.Stats[Inside]), total)
	assert.Equal(t, st.Steps, st.Stats[Inside]+st.Stats[Outside])
	assert.Zero(t, st.Stats[ScatterInside]+st.Stats[ScatterOutside])
	assert.Positive(t, w.MSE())
	assert.Equal(t, st.Steps, w.Image().Steps)
}

func TestStopTwice(t *testing.T) {
	w, err := New(8, 8, testParams(t), 2, 0)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	<-w.Done()
}

func TestWorkerDisconnected(t *testing.T) {
	p := testParams(t)
	p.Steps = 10
	results := make(chan result)
	w := newWorker(0, p.Clone(), 4, 4, results)
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(errors.New("manager gone"))
	err := w.run(ctx)
	require.ErrorIs(t, err, ErrDisconnected)
	assert.Contains(t, err.Error(), "manager gone")
}

func TestWorkerBatchesAccumulate(t *testing.T) {
	p := testParams(t)
	p.Steps = 1_000
	w := newWorker(0, p.Clone(), 8, 8, make(chan result))
	w.batch()
	w.batch()
	// preview batch plus a full one
	assert.Equal(t, uint64(1_100), w.steps)
	total := uint64(0)
	for _, s := range w.stats {
		total += s
	}
	assert.Equal(t, w.steps, total)
}

func TestManagerDropsStaleBatches(t *testing.T) {
	m := &Manager{state: NewState(2, 2), gen: 3}
	buf := make([]Pixel, 4)
	buf[0].Add(NewPoint(0, 0, RGB{}))
	m.merge(result{gen: 2, pixels: buf, steps: 5})
	assert.Zero(t, m.state.Steps)
	m.merge(result{gen: 3, pixels: buf, steps: 5})
	assert.Equal(t, uint64(5), m.state.Steps)
}
