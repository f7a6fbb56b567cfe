package gfx

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

var testViewport = Region{Width: 800, Height: 600}

func newTestRenderer(t *testing.T) (*Renderer, *fakeDevice) {
	t.Helper()
	dev := newFakeDevice()
	r := NewRenderer(dev, nil)
	if err := r.Initialize(testViewport); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r, dev
}

func newTestShader(t *testing.T, dev Device) *Shader {
	t.Helper()
	s, err := NewShader(dev, nil, "vs", "fs")
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	return s
}

// gpuMatches fails unless dev holds the pipeline state r reports.
func gpuMatches(t *testing.T, r *Renderer, dev *fakeDevice) {
	t.Helper()
	st := r.State()
	src, dst := st.Blend.Factors()
	var program uint32
	if st.Shader != nil {
		program = st.Shader.Program()
	}
	want := gpuState{
		BlendEnabled:   true,
		BlendSrc:       src,
		BlendDst:       dst,
		DepthTest:      st.DepthTest,
		DepthFunc:      st.DepthFunc,
		Viewport:       st.Viewport,
		ScissorEnabled: st.ScissorEnabled,
		Scissor:        st.Scissor,
		Program:        program,
	}
	if dev.state != want {
		t.Fatalf("expected GPU state %+v, got %+v", want, dev.state)
	}
}

func TestInitialize_AppliesDefaultState(t *testing.T) {
	r, dev := newTestRenderer(t)

	st := r.State()
	if st.Blend != BlendAlpha || st.DepthTest || st.ScissorEnabled || st.Shader != nil {
		t.Fatalf("unexpected default state %+v", st)
	}
	if st.Viewport != testViewport {
		t.Fatalf("expected viewport %v, got %v", testViewport, st.Viewport)
	}
	gpuMatches(t, r, dev)
}

func TestSettersBeforeInitialize(t *testing.T) {
	dev := newFakeDevice()
	r := NewRenderer(dev, nil)

	r.SetBlendMode(BlendAdditive)
	r.SetScissor(1, 2, 3, 4)
	r.SetViewport(0, 0, 10, 10)
	r.Clear(Black)
	if len(dev.calls) != 0 {
		t.Fatalf("expected no device calls before Initialize, got %v", dev.calls)
	}
	if st := r.State(); st.Blend != BlendAdditive || !st.ScissorEnabled {
		t.Fatalf("expected CPU state updated, got %+v", st)
	}

	if err := r.Initialize(testViewport); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if st := r.State(); st.Viewport != testViewport || st.Blend != BlendAdditive {
		t.Fatalf("unexpected state after Initialize %+v", st)
	}
	if len(dev.clears) != 0 {
		t.Fatalf("expected clear before Initialize to be dropped, got %d", len(dev.clears))
	}
	gpuMatches(t, r, dev)
}

func TestInitialize_BuiltinShaderFailure(t *testing.T) {
	dev := newFakeDevice()
	dev.failCompile = true
	r := NewRenderer(dev, nil)

	err := r.Initialize(testViewport)
	if !errors.Is(err, errCompile) {
		t.Fatalf("expected compile error, got %v", err)
	}
	if err := r.DrawQuad(Rect{Width: 1, Height: 1}, White); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestPushPop_RestoresState(t *testing.T) {
	r, dev := newTestRenderer(t)
	shader := newTestShader(t, dev)
	before := r.State()

	r.PushState()
	r.SetShader(shader)
	r.SetBlendMode(BlendMultiply)
	r.EnableDepthTest(true)
	r.SetDepthFunc(DepthLessEqual)
	r.SetViewport(10, 20, 100, 200)
	r.SetScissor(1, 2, 3, 4)
	gpuMatches(t, r, dev)

	if err := r.PopState(); err != nil {
		t.Fatalf("PopState: %v", err)
	}
	if r.State() != before {
		t.Fatalf("expected %+v after pop, got %+v", before, r.State())
	}
	if r.StackDepth() != 0 {
		t.Fatalf("expected empty stack, got depth %d", r.StackDepth())
	}
	gpuMatches(t, r, dev)
}

func TestPushPop_Nested(t *testing.T) {
	r, dev := newTestRenderer(t)

	r.PushState()
	r.SetBlendMode(BlendAdditive)
	r.PushState()
	r.SetBlendMode(BlendNone)

	if err := r.PopState(); err != nil {
		t.Fatalf("PopState: %v", err)
	}
	if r.State().Blend != BlendAdditive {
		t.Fatalf("expected Additive, got %v", r.State().Blend)
	}
	gpuMatches(t, r, dev)

	if err := r.PopState(); err != nil {
		t.Fatalf("PopState: %v", err)
	}
	if r.State().Blend != BlendAlpha {
		t.Fatalf("expected Alpha, got %v", r.State().Blend)
	}
	gpuMatches(t, r, dev)
}

func TestPopState_EmptyStack(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.SetBlendMode(BlendAdditive)
	before := r.State()
	calls := len(dev.calls)

	if err := r.PopState(); !errors.Is(err, ErrStateStackEmpty) {
		t.Fatalf("expected ErrStateStackEmpty, got %v", err)
	}
	if r.State() != before {
		t.Fatalf("expected state unchanged, got %+v", r.State())
	}
	if len(dev.calls) != calls {
		t.Fatalf("expected no GPU calls, got %v", dev.calls[calls:])
	}
}

func TestBlendModes_Factors(t *testing.T) {
	tests := []struct {
		mode     BlendMode
		src, dst BlendFactor
	}{
		{BlendNone, BlendOne, BlendZero},
		{BlendAlpha, BlendSrcAlpha, BlendOneMinusSrcAlpha},
		{BlendAdditive, BlendSrcAlpha, BlendOne},
		{BlendMultiply, BlendDstColor, BlendZero},
	}

	r, dev := newTestRenderer(t)
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r.SetBlendMode(tt.mode)
			if !dev.state.BlendEnabled {
				t.Fatalf("expected blending enabled")
			}
			if dev.state.BlendSrc != tt.src || dev.state.BlendDst != tt.dst {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tt.src, tt.dst, dev.state.BlendSrc, dev.state.BlendDst)
			}
		})
	}
}

func TestParseBlendMode(t *testing.T) {
	m, err := ParseBlendMode("additive")
	if err != nil || m != BlendAdditive {
		t.Fatalf("expected Additive, got %v (%v)", m, err)
	}
	if _, err := ParseBlendMode("screen"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestDrawQuad_AdditiveUsesBuiltinShader(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.SetBlendMode(BlendAdditive)

	if err := r.DrawQuad(Rect{X: 10, Y: 10, Width: 100, Height: 50}, Color{1, 0, 0, 0.5}); err != nil {
		t.Fatalf("DrawQuad: %v", err)
	}
	if len(dev.draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(dev.draws))
	}
	d := dev.draws[0]
	if d.State.BlendSrc != BlendSrcAlpha || d.State.BlendDst != BlendOne {
		t.Fatalf("expected (SrcAlpha, One), got (%v, %v)", d.State.BlendSrc, d.State.BlendDst)
	}
	if d.Program != r.BuiltinShader().Program() {
		t.Fatalf("expected built-in program %d, got %d", r.BuiltinShader().Program(), d.Program)
	}
	if r.State().Shader != nil {
		t.Fatalf("expected bound shader to stay nil")
	}
	if dev.state.Program != 0 {
		t.Fatalf("expected program 0 restored, got %d", dev.state.Program)
	}
	if want := (Color{1, 0, 0, 0.5}).vec4(); d.Color != want {
		t.Fatalf("expected tint %v, got %v", want, d.Color)
	}
	if want := Translate(10, 10).Mul4(Scale(100, 50)); d.Model != want {
		t.Fatalf("expected model %v, got %v", want, d.Model)
	}
}

func TestDrawQuad_UsesBoundShader(t *testing.T) {
	r, dev := newTestRenderer(t)
	shader := newTestShader(t, dev)
	r.SetShader(shader)

	if err := r.DrawQuad(Rect{Width: 1, Height: 1}, White); err != nil {
		t.Fatalf("DrawQuad: %v", err)
	}
	if dev.draws[0].Program != shader.Program() {
		t.Fatalf("expected program %d, got %d", shader.Program(), dev.draws[0].Program)
	}
}

func TestDraw_WithoutShaderIsSkipped(t *testing.T) {
	r, dev := newTestRenderer(t)

	if err := r.Draw(NewQuadMesh(1, 1, White)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(dev.draws) != 0 {
		t.Fatalf("expected no draws, got %d", len(dev.draws))
	}
	if r.Stats().DrawCalls != 0 {
		t.Fatalf("expected no counted draws, got %d", r.Stats().DrawCalls)
	}
}

func TestDraw_WithoutShaderWarnsOnceUntilBound(t *testing.T) {
	var buf bytes.Buffer
	dev := newFakeDevice()
	r := NewRenderer(dev, slog.New(slog.NewTextHandler(&buf, nil)))
	if err := r.Initialize(testViewport); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	mesh := NewQuadMesh(1, 1, White)

	for i := 0; i < 3; i++ {
		_ = r.Draw(mesh)
	}
	if n := strings.Count(buf.String(), "no shader bound"); n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}

	r.SetShader(newTestShader(t, dev))
	r.SetShader(nil)
	_ = r.Draw(mesh)
	_ = r.Draw(mesh)
	if n := strings.Count(buf.String(), "no shader bound"); n != 2 {
		t.Fatalf("expected a second warning after rebinding, got %d", n)
	}
}

func TestDraw_NilMesh(t *testing.T) {
	r, _ := newTestRenderer(t)
	if err := r.Draw(nil); err == nil {
		t.Fatalf("expected error for nil mesh")
	}
}

func TestStats_Immediate(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.SetShader(newTestShader(t, dev))
	mesh := NewQuadMesh(10, 10, White)

	for i := 0; i < 3; i++ {
		if err := r.Draw(mesh); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}
	if err := r.DrawInstanced(mesh, 4); err != nil {
		t.Fatalf("DrawInstanced: %v", err)
	}

	st := r.Stats()
	if st.DrawCalls != 4 {
		t.Fatalf("expected 4 draw calls, got %d", st.DrawCalls)
	}
	if st.Triangles != 2*3+2*4 {
		t.Fatalf("expected 14 triangles, got %d", st.Triangles)
	}
	if st.Vertices != 4*3+4*4 {
		t.Fatalf("expected 28 vertices, got %d", st.Vertices)
	}
	if len(dev.draws) != 4 || dev.draws[3].Instances != 4 {
		t.Fatalf("expected 4 GPU draws with 4 instances last, got %+v", dev.draws)
	}
}

func TestStats_DeferredCountsOnceAndPlaysBackAtEndFrame(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.SetDeferred(true)
	r.BeginFrame()

	for i := 0; i < 3; i++ {
		if err := r.DrawQuad(Rect{Width: 1, Height: 1}, White); err != nil {
			t.Fatalf("DrawQuad: %v", err)
		}
	}
	if r.Stats().DrawCalls != 3 {
		t.Fatalf("expected 3 draw calls at submit, got %d", r.Stats().DrawCalls)
	}
	if len(dev.draws) != 0 {
		t.Fatalf("expected no GPU draws before EndFrame, got %d", len(dev.draws))
	}
	if n := r.Commands().Count(CmdDrawMesh); n != 3 {
		t.Fatalf("expected 3 recorded draws, got %d", n)
	}

	r.EndFrame()
	if len(dev.draws) != 3 {
		t.Fatalf("expected 3 GPU draws after EndFrame, got %d", len(dev.draws))
	}
	if r.Stats().DrawCalls != 3 {
		t.Fatalf("expected playback not to recount, got %d", r.Stats().DrawCalls)
	}
	if r.Commands().Len() != 0 {
		t.Fatalf("expected empty command buffer, got %d", r.Commands().Len())
	}
}

func TestDeferred_PlaybackKeepsStateOrder(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.SetDeferred(true)

	r.SetBlendMode(BlendAdditive)
	_ = r.DrawQuad(Rect{Width: 1, Height: 1}, White)
	r.SetBlendMode(BlendMultiply)
	_ = r.DrawQuad(Rect{Width: 1, Height: 1}, White)
	r.Flush()

	if len(dev.draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(dev.draws))
	}
	if dev.draws[0].State.BlendDst != BlendOne {
		t.Fatalf("expected first draw additive, got %v", dev.draws[0].State.BlendDst)
	}
	if dev.draws[1].State.BlendSrc != BlendDstColor {
		t.Fatalf("expected second draw multiply, got %v", dev.draws[1].State.BlendSrc)
	}
}

func TestDeferred_RoundedRectReleasedAfterFlush(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.SetDeferred(true)
	live := len(dev.liveMeshes)

	_ = r.DrawRoundedRect(Rect{Width: 40, Height: 20}, 5, White)
	r.Flush()

	if len(dev.draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(dev.draws))
	}
	if len(dev.liveMeshes) != live {
		t.Fatalf("expected transient mesh released, got %d live meshes", len(dev.liveMeshes))
	}
}

func TestResetStats_KeepsState(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.SetBlendMode(BlendMultiply)
	_ = r.DrawCircle(Vec2{5, 5}, 3, White)

	r.ResetStats()
	if r.Stats() != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", r.Stats())
	}
	if r.State().Blend != BlendMultiply {
		t.Fatalf("expected blend unchanged, got %v", r.State().Blend)
	}
}

func TestScissor_PushSetPop(t *testing.T) {
	r, dev := newTestRenderer(t)

	r.PushState()
	r.SetScissor(10, 10, 100, 100)
	if !dev.state.ScissorEnabled || dev.state.Scissor != (Region{X: 10, Y: 10, Width: 100, Height: 100}) {
		t.Fatalf("expected scissor set, got %+v", dev.state)
	}
	if err := r.PopState(); err != nil {
		t.Fatalf("PopState: %v", err)
	}
	if dev.state.ScissorEnabled {
		t.Fatalf("expected scissor disabled after pop")
	}
}

func TestDisableScissor_KeepsRect(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.SetScissor(1, 2, 3, 4)
	r.DisableScissor()

	st := r.State()
	if st.ScissorEnabled {
		t.Fatalf("expected scissor disabled")
	}
	if st.Scissor != (Region{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Fatalf("expected rect kept, got %v", st.Scissor)
	}
}

func TestSetTexture_NilUnbinds(t *testing.T) {
	r, dev := newTestRenderer(t)
	tex, err := NewTexture(dev, 2, 2, DefaultTextureOptions(), nil)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}

	r.SetTexture(tex, 1)
	if dev.textures[1] != tex.ID() {
		t.Fatalf("expected texture %d in slot 1, got %d", tex.ID(), dev.textures[1])
	}
	r.SetTexture(nil, 1)
	if dev.textures[1] != 0 {
		t.Fatalf("expected slot 1 unbound, got %d", dev.textures[1])
	}
}

func TestClear(t *testing.T) {
	r, dev := newTestRenderer(t)
	r.Clear(Black)
	r.ClearDepth(1)

	if len(dev.clears) != 2 || dev.clears[0] != ClearColor || dev.clears[1] != ClearDepth {
		t.Fatalf("expected color then depth clear, got %v", dev.clears)
	}
}

func TestShutdown_ReleasesBuiltins(t *testing.T) {
	r, dev := newTestRenderer(t)
	_ = r.DrawQuad(Rect{Width: 1, Height: 1}, White)
	_ = r.DrawCircle(Vec2{}, 1, White)

	r.Shutdown()
	if len(dev.liveMeshes) != 0 {
		t.Fatalf("expected all meshes released, got %d", len(dev.liveMeshes))
	}
	if err := r.DrawQuad(Rect{}, White); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized after shutdown, got %v", err)
	}
}

func TestShader_WarnsOncePerUnknownUniform(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	dev := newFakeDevice()
	s, err := NewShader(dev, logger, "vs", "fs")
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}

	s.SetFloat("uTime", 1)
	s.SetFloat("uTime", 2)
	s.SetColor(UniformColor, White)

	if n := strings.Count(buf.String(), "uniform not found"); n != 1 {
		t.Fatalf("expected 1 warning, got %d: %s", n, buf.String())
	}
	if got := dev.uniform(s.Program(), UniformColor); got != White.vec4() {
		t.Fatalf("expected color uniform set, got %v", got)
	}
}
