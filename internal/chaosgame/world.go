package chaosgame

import (
	"fmt"
	"runtime"
	"sync"
)

// World is the foreground handle on a running chaos game.
type World struct {
	m        *Manager
	stopOnce sync.Once
}

// New validates the parameters and starts nThreads workers (0 means one per
// CPU) feeding a results queue of queueLength batches (0 means
// QueuePerThread per worker).
func New(width, height int, params WorldParams, nThreads, queueLength int) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidParam, width, height)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if nThreads < 0 || queueLength < 0 {
		return nil, fmt.Errorf("%w: threads and queue length must be >= 0, got %d/%d", ErrInvalidParam, nThreads, queueLength)
	}
	if nThreads == 0 {
		nThreads = runtime.NumCPU()
	}
	if queueLength == 0 {
		queueLength = QueuePerThread * nThreads
	}
	return &World{m: newManager(width, height, params, nThreads, queueLength)}, nil
}

// Update reports a fatal pipeline error, if any. It never blocks.
func (w *World) Update() error {
	select {
	case <-w.m.done:
		return w.m.err
	default:
		return nil
	}
}

// Done is closed once the pipeline has stopped.
func (w *World) Done() <-chan struct{} { return w.m.done }

// Image returns the latest published frame.
func (w *World) Image() *Image { return w.m.image.load() }

// Size is the geometry of the latest published frame.
func (w *World) Size() (int, int) {
	img := w.Image()
	return img.Width, img.Height
}

// Draw copies the latest frame into buf (RGBA8, row-major). Bytes beyond the
// frame are filled with the background.
func (w *World) Draw(buf []byte) {
	img := w.Image()
	n := copy(buf, img.Pix)
	if n < len(buf) {
		fill(buf[n:], backgroundRGBA(w.m.params.Background))
	}
}

// Resize resets the accumulation for a new geometry. It returns once the
// Manager has applied it; workers pick it up after their current batch.
func (w *World) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidParam, width, height)
	}
	req := request{kind: reqResize, width: width, height: height, reply: make(chan struct{})}
	select {
	case w.m.requests <- req:
	case <-w.m.done:
		return ErrStopped
	}
	select {
	case <-req.reply:
		return nil
	case <-w.m.done:
		return ErrStopped
	}
}

// Stop flushes every worker, renders the final frame and returns the fatal
// error of the run, if any. Calling it again is harmless.
func (w *World) Stop() error {
	w.stopOnce.Do(func() {
		select {
		case w.m.requests <- request{kind: reqStop}:
		case <-w.m.done:
		}
	})
	<-w.m.done
	return w.m.err
}

// Steps is the number of main iterations merged so far.
func (w *World) Steps() uint64 { return w.m.steps.Load() }

// MSE is the convergence estimate of the latest frame.
func (w *World) MSE() Real { return w.Image().MSE }

// State gives access to the accumulation grid once the world is stopped.
func (w *World) State() (*State, error) {
	select {
	case <-w.m.done:
		return w.m.state, nil
	default:
		return nil, ErrRunning
	}
}
