package chaosgame

import (
	"context"
	"fmt"
)

type controlKind uint8

const (
	ctrlResize controlKind = iota
	ctrlStop
)

type control struct {
	kind          controlKind
	width, height int
	gen           uint64
}

// result hands a pixel buffer over to the Manager. The worker never touches
// the buffer again after a successful send.
type result struct {
	worker int
	gen    uint64
	pixels []Pixel
	steps  uint64
	stats  SampleStats
	final  bool
}

// worker owns a private rule clone and pixel buffer and streams batches to
// the Manager.
type worker struct {
	id      int
	params  WorldParams
	view    viewport
	gen     uint64
	pixels  []Pixel
	steps   uint64
	stats   SampleStats
	point   Point
	history [HistoryDepth]int
	preview bool
	control chan control // single-slot mailbox written only by the Manager
	results chan<- result
}

func newWorker(id int, params WorldParams, width, height int, results chan<- result) *worker {
	params.Rule.Reseed(EntropySeed())
	w := &worker{
		id:      id,
		params:  params,
		point:   NewPoint(0, 0, RGB{}),
		control: make(chan control, 1),
		results: results,
	}
	w.reshape(width, height, 0)
	return w
}

// post replaces any control message the worker has not picked up yet.
func (w *worker) post(msg control) {
	select {
	case <-w.control:
	default:
	}
	w.control <- msg
}

func (w *worker) reshape(width, height int, gen uint64) {
	w.view = newViewport(width, height, w.params.Zoom, w.params.Center)
	w.gen = gen
	w.pixels = make([]Pixel, width*height)
	w.steps = 0
	w.stats = SampleStats{}
	w.preview = true
}

func (w *worker) step(scatter bool) Point {
	p, index := w.params.Rule.Next(w.point, w.history[:], w.params.Shape, scatter)
	if !scatter {
		copy(w.history[1:], w.history[:HistoryDepth-1])
		w.history[0] = index
		w.point = p
	}
	return p
}

func (w *worker) accumulate(p Point, scatter bool) {
	i, ok := w.view.index(p)
	switch {
	case ok && scatter:
		w.stats.record(ScatterInside)
	case ok:
		w.stats.record(Inside)
	case scatter:
		w.stats.record(ScatterOutside)
		return
	default:
		w.stats.record(Outside)
		return
	}
	w.pixels[i].Add(p)
}

func (w *worker) burnin() {
	for i := 0; i < w.params.BurninSteps; i++ {
		w.step(false)
	}
}

func (w *worker) batch() {
	n := w.params.Steps
	if w.preview {
		n = max(n/PreviewDivisor, 1)
		w.preview = false
	}
	for i := 0; i < n; i++ {
		for s := 0; s < w.params.ScatterSteps; s++ {
			w.accumulate(w.step(true), true)
		}
		w.accumulate(w.step(false), false)
	}
	w.steps += uint64(n)
}

func (w *worker) pending(final bool) result {
	return result{worker: w.id, gen: w.gen, pixels: w.pixels, steps: w.steps, stats: w.stats, final: final}
}

// handOff starts a fresh buffer after the old one was sent.
func (w *worker) handOff() {
	w.pixels = make([]Pixel, len(w.pixels))
	w.steps = 0
	w.stats = SampleStats{}
}

func (w *worker) disconnected(ctx context.Context) error {
	return fmt.Errorf("worker %d: %w: %w", w.id, ErrDisconnected, context.Cause(ctx))
}

// run is the sampling loop. Control messages are read between batches; a
// full results queue makes the worker keep accumulating into the same buffer.
func (w *worker) run(ctx context.Context) error {
	DebugLog("worker %d: start, %d burn-in steps", w.id, w.params.BurninSteps)
	w.burnin()
	for {
		select {
		case msg := <-w.control:
			switch msg.kind {
			case ctrlResize:
				DebugLog("worker %d: resize to %dx%d (gen %d)", w.id, msg.width, msg.height, msg.gen)
				w.reshape(msg.width, msg.height, msg.gen)
			case ctrlStop:
				select {
				case w.results <- w.pending(true):
					DebugLog("worker %d: stopped, %s", w.id, w.stats)
					return nil
				case <-ctx.Done():
					return w.disconnected(ctx)
				}
			}
		default:
		}

		w.batch()

		select {
		case w.results <- w.pending(false):
			w.handOff()
		case <-ctx.Done():
			return w.disconnected(ctx)
		default:
		}
	}
}
