package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/aurora/internal/anim"
	"github.com/1broseidon/aurora/internal/app"
	"github.com/1broseidon/aurora/internal/config"
	"github.com/1broseidon/aurora/internal/gfx"
	"github.com/1broseidon/aurora/internal/platform"
)

func backendList() string {
	return strings.Join(platform.Backends(), ", ")
}

func runDemo(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/aurora/config.yaml)")
	backend := fs.String("backend", "", "Platform backend: auto, "+backendList())
	deferred := fs.Bool("deferred", false, "Record draw commands and play them back at frame end")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *deferred {
		cfg.App.Deferred = true
	}
	logger := newLogger(os.Stderr, cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := runHello(ctx, cfg, logger)
	if err != nil {
		logger.Error("run failed", "error", err)
		return 1
	}
	return code
}

// demo is the state of the hello window.
type demo struct {
	app      *app.Application
	renderer *gfx.Renderer
	window   *platform.Window

	clear  gfx.Color
	fade   *anim.PropertyAnimation[gfx.Color]
	radius float32
	pulse  *anim.Timeline
	spring *anim.Spring2D

	sinceReport time.Duration
}

func runHello(ctx context.Context, cfg *config.Config, logger *slog.Logger) (int, error) {
	adapter, err := platform.New(cfg.Backend, platform.Options{
		Display: cfg.Display,
		Samples: cfg.Samples(),
		Logger:  logger,
	})
	if err != nil {
		return 1, err
	}

	application := app.New(adapter, cfg.AppConfig(logger))
	if err := application.Initialize(); err != nil {
		return 1, err
	}
	defer application.Shutdown()

	win, err := adapter.CreateWindow(cfg.PlatformWindowConfig())
	if err != nil {
		return 1, fmt.Errorf("create window: %w", err)
	}
	defer adapter.DestroyWindow(win)

	glctx, err := adapter.CreateGLContext(win)
	if err != nil {
		return 1, fmt.Errorf("create gl context: %w", err)
	}
	defer adapter.DestroyGLContext(glctx)
	if err := adapter.MakeCurrent(win, glctx); err != nil {
		return 1, err
	}
	if cfg.App.VSync {
		adapter.SetSwapInterval(1)
	} else {
		adapter.SetSwapInterval(0)
	}

	dev := gfx.NewGLDevice()
	renderer := gfx.NewRenderer(dev, logger)
	width, height := win.Size()
	if err := renderer.Initialize(gfx.Region{Width: int32(width), Height: int32(height)}); err != nil {
		return 1, fmt.Errorf("initialize renderer: %w", err)
	}
	defer renderer.Shutdown()
	renderer.SetDeferred(cfg.App.Deferred)
	renderer.SetProjectionMatrix(gfx.ScreenOrtho(float32(width), float32(height)))
	logger.Info("renderer ready", "gl", dev.Version(), "deferred", cfg.App.Deferred)

	d := newDemo(application, renderer, win)
	if err := win.Show(); err != nil {
		return 1, fmt.Errorf("show window: %w", err)
	}

	code, err := application.Run(ctx)
	if err != nil {
		return 1, err
	}
	logger.Info("demo finished", "frames", application.Frames(), "draw_calls", d.renderer.Stats().DrawCalls)
	return code, nil
}

func newDemo(application *app.Application, renderer *gfx.Renderer, win *platform.Window) *demo {
	d := &demo{
		app:      application,
		renderer: renderer,
		window:   win,
		radius:   40,
		spring:   anim.NewSpring2D(anim.DefaultSpringConfig()),
	}

	dark, _ := gfx.ParseHex("#141824")
	dawn, _ := gfx.ParseHex("#2b3a67")
	d.fade = anim.NewPropertyAnimationFunc(&d.clear, dark, dawn, 4*time.Second, gfx.Color.Lerp)
	d.fade.SetEasing(anim.SineInOut)
	d.fade.SetPingPong(true)
	d.fade.SetLoop(true)
	d.fade.Start()

	grow := anim.NewPropertyAnimation(&d.radius, 40, 56, 600*time.Millisecond)
	grow.SetEasing(anim.BackOut)
	shrink := anim.NewPropertyAnimation(&d.radius, 56, 40, 900*time.Millisecond)
	shrink.SetEasing(anim.QuadIn)
	d.pulse = anim.NewTimeline()
	d.pulse.AddSequential(grow)
	d.pulse.AddSequential(shrink)
	d.pulse.OnComplete = d.pulse.Play

	w, h := win.Size()
	center := mgl32.Vec2{float32(w) / 2, float32(h) / 2}
	d.spring.Reset(center, mgl32.Vec2{})
	d.spring.SetTarget(center)

	win.OnClose = func() { application.Quit(0) }
	win.OnResize = d.resize
	application.OnEvent(d.handleEvent)
	application.OnFrame(d.update)
	application.OnRender(d.render)
	d.pulse.Play()
	return d
}

func (d *demo) resize(width, height uint32) {
	d.renderer.SetViewport(0, 0, int32(width), int32(height))
	d.renderer.SetProjectionMatrix(gfx.ScreenOrtho(float32(width), float32(height)))
}

func (d *demo) handleEvent(ev platform.Event) {
	switch e := ev.(type) {
	case platform.KeyDownEvent:
		if e.Key == platform.KeyEscape {
			d.app.Quit(0)
		}
	case platform.MouseMoveEvent:
		d.spring.SetTarget(mgl32.Vec2{e.X, e.Y})
	case platform.MouseDownEvent:
		d.spring.ApplyImpulse(mgl32.Vec2{0, -600})
	}
}

func (d *demo) update(dt time.Duration) {
	d.fade.Update(dt)
	d.pulse.Update(dt)
	d.spring.Update(dt)

	d.sinceReport += dt
	if d.sinceReport >= time.Second {
		d.sinceReport = 0
		stats := d.renderer.Stats()
		d.app.Logger().Debug("frame stats",
			"fps", int(d.app.FPS()),
			"draw_calls", stats.DrawCalls,
			"triangles", stats.Triangles,
			"flush", stats.FlushTime,
		)
	}
}

func (d *demo) render() {
	r := d.renderer
	r.ResetStats()
	r.BeginFrame()
	r.Clear(d.clear)

	width, height := d.window.Size()
	panel := gfx.Rect{X: 24, Y: 24, Width: float32(width) - 48, Height: 72}
	if err := r.DrawRoundedRect(panel, 12, gfx.White.WithAlpha(0.08)); err != nil {
		d.app.Logger().Error("draw panel", "error", err)
	}

	r.PushState()
	r.SetScissor(0, 0, int32(width), int32(height))
	r.SetBlendMode(gfx.BlendAdditive)
	pos := d.spring.Position()
	for _, c := range []struct {
		radius float32
		color  gfx.Color
	}{
		{d.radius * 1.6, gfx.RGBA(120, 160, 255, 40)},
		{d.radius, gfx.RGBA(160, 200, 255, 200)},
	} {
		if err := r.DrawCircle(pos, c.radius, c.color); err != nil {
			d.app.Logger().Error("draw circle", "error", err)
		}
	}
	if err := r.PopState(); err != nil {
		d.app.Logger().Error("render state unbalanced", "error", err)
	}

	r.EndFrame()
	d.app.Adapter().SwapBuffers(d.window)
}
