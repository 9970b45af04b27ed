// Package engine implements the concurrent space defender simulation.
//
// One World value is shared by a set of goroutines: hazard simulators that
// own hazard indices, a player controller that consumes input impulses, and
// the caller's frame loop that integrates projectiles and collisions. All
// access to the World goes through a single mutex; input is handed over via
// atomic single-value slots so key presses never contend with that lock.
package engine

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-defender/internal/config"
	"github.com/vovakirdan/space-defender/internal/core"
)

// ErrShutdown is returned by Start once the engine has been shut down.
var ErrShutdown = errors.New("engine: shut down")

// Engine owns the World and the goroutines that mutate it.
type Engine struct {
	cfg    config.DefenderConfig
	diff   *config.DifficultyManager
	logger *log.Logger
	seed   int64

	mu    sync.Mutex
	world World

	// Guarded by mu alongside the world.
	started    bool
	cancel     context.CancelFunc
	stopParent func() bool

	input Impulses

	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSeed fixes the hazard spawn RNG seed. 0 seeds from the clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New creates an engine for cfg and resets it to a fresh round.
// The configuration is normalized first, so out-of-range values are clamped.
// No goroutines run until Start is called.
func New(cfg config.DefenderConfig, opts ...Option) *Engine {
	cfg = cfg.Normalize()

	e := &Engine{
		cfg:    cfg,
		diff:   config.NewDifficultyManager(cfg.Difficulty),
		logger: log.New(io.Discard),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}

	e.world.rng = rand.New(rand.NewSource(e.seed))
	e.world.reset(cfg)
	return e
}

// Config returns the normalized configuration the engine runs with.
func (e *Engine) Config() config.DefenderConfig {
	return e.cfg
}

// Start spawns the hazard simulators and the player controller.
// Calling Start on a running engine is a no-op. Cancelling ctx shuts the
// engine down as if Shutdown had been called.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.world.shutdown {
		e.mu.Unlock()
		return ErrShutdown
	}
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true

	workerCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.stopParent = context.AfterFunc(ctx, e.Shutdown)

	parts := partitionHazards(e.cfg.Hazards.Count, e.cfg.Workers)
	for w, indices := range parts {
		e.wg.Add(1)
		go e.runHazards(workerCtx, w, indices)
	}
	e.wg.Add(1)
	go e.runPlayer(workerCtx)
	e.mu.Unlock()

	e.logger.Info("engine started",
		"hazards", e.cfg.Hazards.Count,
		"workers", len(parts),
		"target", e.cfg.Round.TargetScore,
		"seed", e.seed,
	)
	return nil
}

// Shutdown sets the shutdown flag, cancels every worker and waits for all of
// them to return. Safe to call any number of times, before or after Start.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	first := !e.world.shutdown
	e.world.shutdown = true
	cancel := e.cancel
	stopParent := e.stopParent
	e.mu.Unlock()

	if stopParent != nil {
		stopParent()
	}
	if cancel != nil {
		cancel()
	}
	e.wg.Wait()

	e.doneOnce.Do(func() {
		close(e.done)
	})
	if first {
		e.logger.Info("engine stopped")
	}
}

// Done returns a channel that is closed once Shutdown has joined every worker.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Reset restores the round to initial conditions in one locked step.
// Valid at any time; mid-round it acts as a forced restart.
// Pending impulses are discarded so input from the previous round does not leak.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.world.reset(e.cfg)
	e.input.Drain()
	round := e.world.Round
	e.mu.Unlock()

	e.logger.Info("round reset", "round", round)
}

// Dispatch delivers one input event.
func (e *Engine) Dispatch(a core.Action) {
	switch a {
	case core.ActionLeft, core.ActionRight:
		e.input.SetDirection(a.Direction())
	case core.ActionFire:
		e.input.Fire()
	case core.ActionRestart:
		e.Reset()
	case core.ActionQuit:
		e.Shutdown()
	}
}

// With runs fn with exclusive access to the World. fn must not retain the
// pointer, block, or call back into the Engine.
func (e *Engine) With(fn func(w *World)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.world)
}

// Snapshot returns a read-only copy of the World without integrating a frame.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// partitionHazards assigns every hazard index to exactly one worker.
// workers <= 0 (or >= count) yields one worker per hazard.
func partitionHazards(count, workers int) [][]int {
	if workers <= 0 || workers > count {
		workers = count
	}
	parts := make([][]int, workers)
	for i := 0; i < count; i++ {
		w := i % workers
		parts[w] = append(parts[w], i)
	}
	return parts
}
