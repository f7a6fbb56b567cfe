// Package app drives the frame loop: each iteration pumps and dispatches
// platform events, runs frame callbacks with the elapsed time, then runs
// render callbacks.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/aurora/internal/platform"
)

// ErrNotInitialized is returned by Run before Initialize succeeded.
var ErrNotInitialized = errors.New("application not initialized")

// Config holds application settings.
type Config struct {
	Name          string
	VSync         bool
	Multisampling bool
	MSAASamples   int
	Logger        *slog.Logger
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		Name:          "Aurora Application",
		VSync:         true,
		Multisampling: true,
		MSAASamples:   4,
	}
}

// FrameFunc runs once per frame with the time since the previous frame.
type FrameFunc func(dt time.Duration)

// Application owns the platform adapter and the frame loop. One Application
// runs per process, on the goroutine locked to the main OS thread.
type Application struct {
	adapter platform.Adapter
	cfg     Config
	logger  *slog.Logger

	initialized   bool
	running       bool
	quitRequested bool
	exitCode      int

	onFrame  []FrameFunc
	onRender []func()
	onEvent  []func(platform.Event)

	now       func() time.Time
	last      time.Time
	frameTime time.Duration
	fps       float64
	frames    uint64
}

// New creates an application on adapter. Nothing touches the window system
// until Initialize.
func New(adapter platform.Adapter, cfg Config) *Application {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Application{
		adapter: adapter,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Initialize brings up the platform adapter. A non-nil error is fatal.
func (a *Application) Initialize() error {
	if a.initialized {
		return nil
	}
	if err := a.adapter.Initialize(); err != nil {
		return fmt.Errorf("initialize %s platform: %w", a.adapter.Name(), err)
	}
	a.initialized = true
	a.logger.Info("application initialized", "name", a.cfg.Name, "backend", a.adapter.Name())
	return nil
}

// Shutdown releases the platform adapter.
func (a *Application) Shutdown() {
	if !a.initialized {
		return
	}
	a.adapter.Shutdown()
	a.initialized = false
	a.logger.Info("application shut down", "frames", a.frames)
}

func (a *Application) Adapter() platform.Adapter { return a.adapter }
func (a *Application) Config() Config            { return a.cfg }
func (a *Application) Logger() *slog.Logger      { return a.logger }

// OnFrame registers an update callback. Callbacks run in registration order.
func (a *Application) OnFrame(fn FrameFunc) { a.onFrame = append(a.onFrame, fn) }

// OnRender registers a callback run after all frame callbacks.
func (a *Application) OnRender(fn func()) { a.onRender = append(a.onRender, fn) }

// OnEvent registers a callback for every event delivered to a live window or
// to no window, after the window's own callbacks.
func (a *Application) OnEvent(fn func(platform.Event)) { a.onEvent = append(a.onEvent, fn) }

// Quit ends Run after the current frame completes. It may be called before
// Run, in which case Run returns at once. The first requested code wins.
func (a *Application) Quit(code int) {
	if a.quitRequested {
		return
	}
	a.quitRequested = true
	a.exitCode = code
}

// QuitRequested reports whether Quit has been called.
func (a *Application) QuitRequested() bool { return a.quitRequested }

// Running reports whether Run is looping.
func (a *Application) Running() bool { return a.running }

// FPS is the rate implied by the last frame time.
func (a *Application) FPS() float64 { return a.fps }

// FrameTime is the duration of the last frame.
func (a *Application) FrameTime() time.Duration { return a.frameTime }

// Frames is the number of completed frames.
func (a *Application) Frames() uint64 { return a.frames }

// Run loops until Quit, a QuitEvent or ctx is done, and returns the exit
// code. Cancellation is observed between frames.
func (a *Application) Run(ctx context.Context) (int, error) {
	if !a.initialized {
		return 1, ErrNotInitialized
	}
	a.running = true
	a.last = a.now()
	a.logger.Debug("run loop started")

	for !a.quitRequested {
		if ctx.Err() != nil {
			a.logger.Info("run loop cancelled", "reason", ctx.Err())
			break
		}
		a.frame()
	}
	a.running = false

	a.logger.Debug("run loop stopped", "exit_code", a.exitCode, "frames", a.frames)
	return a.exitCode, nil
}

// frame runs one iteration: events, then updates, then rendering.
func (a *Application) frame() {
	now := a.now()
	dt := now.Sub(a.last)
	a.last = now
	a.frameTime = dt
	if dt > 0 {
		a.fps = float64(time.Second) / float64(dt)
	}

	a.processEvents()
	for _, fn := range a.onFrame {
		fn(dt)
	}
	for _, fn := range a.onRender {
		fn()
	}
	a.frames++
}

// processEvents pumps the adapter and dispatches everything it queued.
func (a *Application) processEvents() {
	a.adapter.PumpEvents()
	for a.adapter.HasEvents() {
		ev := a.adapter.NextEvent()
		if _, ok := ev.(platform.QuitEvent); ok {
			a.Quit(0)
		}
		if !platform.Dispatch(ev) {
			a.logger.Debug("dropped event for destroyed window", "type", ev.Type())
			continue
		}
		for _, fn := range a.onEvent {
			fn(ev)
		}
	}
}
