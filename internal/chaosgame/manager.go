package chaosgame

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type requestKind uint8

const (
	reqResize requestKind = iota
	reqStop
)

type request struct {
	kind          requestKind
	width, height int
	reply         chan struct{}
}

// published is the frame shown to the foreground. The lock only guards the
// pointer swap; frames are immutable.
type published struct {
	mu  sync.Mutex
	img *Image
}

func (p *published) store(img *Image) {
	p.mu.Lock()
	p.img = img
	p.mu.Unlock()
}

func (p *published) load() *Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.img
}

// Manager merges worker batches into the canonical State, renders and
// publishes frames, and drives resize and shutdown.
type Manager struct {
	params   WorldParams
	state    *State
	workers  []*worker
	results  chan result
	requests chan request
	group    *errgroup.Group
	gctx     context.Context
	cancel   context.CancelCauseFunc
	gen      uint64
	image    published
	steps    atomic.Uint64
	done     chan struct{}
	err      error // written before done is closed
}

func newManager(width, height int, params WorldParams, nThreads, queueLength int) *Manager {
	ctx, cancel := context.WithCancelCause(context.Background())
	group, gctx := errgroup.WithContext(ctx)
	m := &Manager{
		params:   params,
		state:    NewState(width, height),
		results:  make(chan result, queueLength),
		requests: make(chan request),
		group:    group,
		gctx:     gctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	m.image.store(backgroundImage(width, height, params.Background))
	for i := 0; i < nThreads; i++ {
		w := newWorker(i, params.Clone(), width, height, m.results)
		m.workers = append(m.workers, w)
		group.Go(func() error { return w.run(gctx) })
	}
	DebugLog("manager: %d workers, %dx%d, queue %d", nThreads, width, height, queueLength)
	go m.loop()
	return m
}

func (m *Manager) loop() {
	defer close(m.done)
	for {
		select {
		case res := <-m.results:
			m.merge(res)
			m.drain()
			m.publish()
		case req := <-m.requests:
			switch req.kind {
			case reqResize:
				m.resize(req.width, req.height)
				close(req.reply)
			case reqStop:
				m.shutdown()
				return
			}
		case <-m.gctx.Done():
			m.err = m.group.Wait()
			m.cancel(m.err)
			m.publish()
			DebugLog("manager: aborted: %v", m.err)
			return
		}
	}
}

// drain merges whatever is already queued, bounded by the queue size.
func (m *Manager) drain() {
	for i := 0; i < cap(m.results); i++ {
		select {
		case res := <-m.results:
			m.merge(res)
		default:
			return
		}
	}
}

func (m *Manager) merge(res result) {
	if res.gen != m.gen {
		DebugLog("manager: dropping stale batch of worker %d (gen %d, current %d)", res.worker, res.gen, m.gen)
		return
	}
	if err := m.state.Combine(res.pixels, res.steps, res.stats); err != nil {
		DebugLog("manager: dropping batch of worker %d: %v", res.worker, err)
	}
}

func (m *Manager) publish() {
	img := m.state.Render(m.params.Gain, m.params.Background)
	m.steps.Store(m.state.Steps)
	m.image.store(img)
}

func (m *Manager) resize(width, height int) {
	m.gen++
	m.state.Reset(width, height)
	m.steps.Store(0)
	m.image.store(backgroundImage(width, height, m.params.Background))
	for _, w := range m.workers {
		w.post(control{kind: ctrlResize, width: width, height: height, gen: m.gen})
	}
	DebugLog("manager: resized to %dx%d (gen %d)", width, height, m.gen)
}

// shutdown collects exactly one final buffer from every worker before the
// last render.
func (m *Manager) shutdown() {
	for _, w := range m.workers {
		w.post(control{kind: ctrlStop})
	}
	remaining := len(m.workers)
	for remaining > 0 {
		select {
		case res := <-m.results:
			m.merge(res)
			if res.final {
				remaining--
			}
		case <-m.gctx.Done():
			remaining = 0
		}
	}
	m.err = m.group.Wait()
	m.cancel(ErrStopped)
	m.publish()
	DebugLog("manager: stopped after %d steps, %s", m.state.Steps, m.state.Stats)
}
