package gfx

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	circleSegments      = 64
	roundedRectSegments = 8
)

// ErrNotInitialized is returned by draw calls before Initialize. State
// setters called before Initialize only update the CPU-side state, which
// Initialize then applies.
var ErrNotInitialized = errors.New("renderer not initialized")

// Renderer keeps a current RenderState mirrored on the GPU, a stack of saved
// states, and optionally records GPU commands for playback at EndFrame.
//
// Every mutator updates the current state and issues the matching command at
// once; in deferred mode the command is recorded instead, so playback order
// matches call order.
type Renderer struct {
	dev    Device
	logger *slog.Logger

	initialized bool
	state       RenderState
	stack       stateStack

	deferred bool
	commands CommandBuffer
	stats    Stats

	projection mgl32.Mat4
	view       mgl32.Mat4
	model      mgl32.Mat4

	builtin    *Shader
	unitQuad   *Mesh
	unitCircle *Mesh
	// transients are meshes built for a single draw, released once the draw
	// has executed.
	transients []*Mesh

	// bound is the program current on the GPU while commands execute.
	bound *Shader
	// warnedNoShader suppresses repeated warnings for draws without a shader
	// until one is bound again.
	warnedNoShader bool
}

// NewRenderer creates a renderer on dev. A nil logger discards output.
func NewRenderer(dev Device, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = nopLogger()
	}
	return &Renderer{
		dev:        dev,
		logger:     logger,
		state:      DefaultRenderState(),
		projection: mgl32.Ident4(),
		view:       mgl32.Ident4(),
		model:      mgl32.Ident4(),
	}
}

// Initialize loads GL, compiles the built-in shader and applies the default
// state with the given viewport. Errors are fatal for rendering.
func (r *Renderer) Initialize(viewport Region) error {
	if r.initialized {
		return nil
	}
	if err := r.dev.Init(); err != nil {
		return err
	}
	builtin, err := NewBasicShader(r.dev, r.logger)
	if err != nil {
		return fmt.Errorf("built-in shader: %w", err)
	}
	r.builtin = builtin
	r.unitQuad = NewQuadMesh(1, 1, White)
	r.unitCircle = NewCircleMesh(1, circleSegments, White)

	r.initialized = true
	r.state.Viewport = viewport
	r.applyState()
	r.logger.Debug("renderer initialized", "viewport", viewport)
	return nil
}

// Shutdown drops pending commands and releases built-in resources.
func (r *Renderer) Shutdown() {
	if !r.initialized {
		return
	}
	r.commands.Reset()
	r.releaseTransients()
	r.unitQuad.Release()
	r.unitCircle.Release()
	r.builtin.Release()
	r.stack.reset()
	r.state = DefaultRenderState()
	r.bound = nil
	r.initialized = false
}

// Device returns the device the renderer draws with.
func (r *Renderer) Device() Device { return r.dev }

// BuiltinShader returns the shader used by the convenience draws.
func (r *Renderer) BuiltinShader() *Shader { return r.builtin }

// State returns the current render state.
func (r *Renderer) State() RenderState { return r.state }

// StackDepth returns the number of saved states.
func (r *Renderer) StackDepth() int { return r.stack.depth() }

// SetDeferred switches between immediate execution and recording. Leaving
// deferred mode flushes what was recorded.
func (r *Renderer) SetDeferred(deferred bool) {
	if r.deferred && !deferred {
		r.Flush()
	}
	r.deferred = deferred
}

func (r *Renderer) Deferred() bool { return r.deferred }

// Commands returns the commands recorded since the last flush.
func (r *Renderer) Commands() *CommandBuffer { return &r.commands }

// BeginFrame starts a frame. Stats are not reset here.
func (r *Renderer) BeginFrame() {
	if r.deferred && r.commands.Len() > 0 {
		r.logger.Warn("commands left from previous frame", "count", r.commands.Len())
	}
}

// EndFrame plays back recorded commands and releases per-frame meshes.
func (r *Renderer) EndFrame() {
	r.Flush()
	if r.stack.depth() != 0 {
		r.logger.Warn("unbalanced state stack at end of frame", "depth", r.stack.depth())
	}
}

// Flush executes all recorded commands in order and empties the buffer.
func (r *Renderer) Flush() {
	if r.commands.Len() > 0 {
		start := time.Now()
		for _, cmd := range r.commands.Commands() {
			r.execute(cmd)
		}
		r.stats.FlushTime += time.Since(start)
		r.commands.Reset()
	}
	r.releaseTransients()
}

// PushState saves the current state.
func (r *Renderer) PushState() {
	r.stack.push(r.state)
}

// PopState restores the most recently saved state and reissues every GPU
// state call needed to match it. On an empty stack nothing changes.
func (r *Renderer) PopState() error {
	st, err := r.stack.pop()
	if err != nil {
		r.logger.Error("PopState without matching PushState", "error", err)
		return err
	}
	r.state = st
	if st.Shader != nil {
		r.warnedNoShader = false
	}
	r.applyState()
	return nil
}

// applyState issues the full current state.
func (r *Renderer) applyState() {
	r.submit(SetShaderCommand{Shader: r.state.Shader})
	r.submit(SetBlendCommand{Mode: r.state.Blend})
	r.submit(SetDepthCommand{Enabled: r.state.DepthTest, Func: r.state.DepthFunc})
	r.submit(SetViewportCommand{Viewport: r.state.Viewport})
	r.submit(SetScissorCommand{Enabled: r.state.ScissorEnabled, Rect: r.state.Scissor})
}

// SetShader binds s for subsequent draws; nil unbinds.
func (r *Renderer) SetShader(s *Shader) {
	r.state.Shader = s
	if s != nil {
		r.warnedNoShader = false
	}
	r.submit(SetShaderCommand{Shader: s})
}

func (r *Renderer) SetBlendMode(mode BlendMode) {
	r.state.Blend = mode
	r.submit(SetBlendCommand{Mode: mode})
}

func (r *Renderer) EnableDepthTest(enable bool) {
	r.state.DepthTest = enable
	r.submit(SetDepthCommand{Enabled: enable, Func: r.state.DepthFunc})
}

func (r *Renderer) SetDepthFunc(fn DepthFunc) {
	r.state.DepthFunc = fn
	r.submit(SetDepthCommand{Enabled: r.state.DepthTest, Func: fn})
}

func (r *Renderer) SetViewport(x, y int32, width, height int32) {
	r.state.Viewport = Region{X: x, Y: y, Width: width, Height: height}
	r.submit(SetViewportCommand{Viewport: r.state.Viewport})
}

// SetScissor stores the scissor box and enables the test.
func (r *Renderer) SetScissor(x, y int32, width, height int32) {
	r.state.ScissorEnabled = true
	r.state.Scissor = Region{X: x, Y: y, Width: width, Height: height}
	r.submit(SetScissorCommand{Enabled: true, Rect: r.state.Scissor})
}

// DisableScissor turns the test off. The stored box is kept.
func (r *Renderer) DisableScissor() {
	r.state.ScissorEnabled = false
	r.submit(SetScissorCommand{Enabled: false, Rect: r.state.Scissor})
}

// SetTexture binds t to slot; nil unbinds the slot.
func (r *Renderer) SetTexture(t *Texture, slot int) {
	r.submit(SetTextureCommand{Texture: t, Slot: slot})
}

// Clear clears the color buffer.
func (r *Renderer) Clear(c Color) {
	r.submit(ClearCommand{Mask: ClearColor, Color: c})
}

// ClearDepth clears the depth buffer to depth.
func (r *Renderer) ClearDepth(depth float32) {
	r.submit(ClearCommand{Mask: ClearDepth, Depth: depth})
}

func (r *Renderer) SetProjectionMatrix(m mgl32.Mat4) { r.projection = m }
func (r *Renderer) SetViewMatrix(m mgl32.Mat4)       { r.view = m }
func (r *Renderer) SetModelMatrix(m mgl32.Mat4)      { r.model = m }

func (r *Renderer) ProjectionMatrix() mgl32.Mat4 { return r.projection }
func (r *Renderer) ViewMatrix() mgl32.Mat4       { return r.view }
func (r *Renderer) ModelMatrix() mgl32.Mat4      { return r.model }

// Stats returns the counters accumulated since the last ResetStats.
func (r *Renderer) Stats() Stats { return r.stats }

// ResetStats zeroes the counters. Render state is not touched.
func (r *Renderer) ResetStats() { r.stats = Stats{} }

// Draw draws mesh with the bound shader. Without a bound shader the draw is
// skipped and not counted; the first such draw logs a warning.
func (r *Renderer) Draw(mesh *Mesh) error {
	return r.DrawInstanced(mesh, 1)
}

// DrawInstanced draws count instances of mesh with the bound shader.
func (r *Renderer) DrawInstanced(mesh *Mesh, count int) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if mesh == nil {
		return fmt.Errorf("draw: nil mesh")
	}
	if r.state.Shader == nil {
		if !r.warnedNoShader {
			r.logger.Warn("draw skipped: no shader bound", "vertices", mesh.VertexCount())
			r.warnedNoShader = true
		}
		return nil
	}
	r.submitDraw(mesh, nil, r.model, White, count)
	return nil
}

// DrawQuad fills rect with color.
func (r *Renderer) DrawQuad(rect Rect, color Color) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	local := Translate(rect.X, rect.Y).Mul4(Scale(rect.Width, rect.Height))
	r.submitDraw(r.unitQuad, r.convenienceShader(), r.model.Mul4(local), color, 1)
	return nil
}

// DrawCircle fills a circle of radius around center with color.
func (r *Renderer) DrawCircle(center Vec2, radius float32, color Color) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	local := Translate(center.X(), center.Y()).Mul4(Scale(radius, radius))
	r.submitDraw(r.unitCircle, r.convenienceShader(), r.model.Mul4(local), color, 1)
	return nil
}

// DrawRoundedRect fills rect with corners rounded by radius.
func (r *Renderer) DrawRoundedRect(rect Rect, radius float32, color Color) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	mesh := NewRoundedRectMesh(rect.Width, rect.Height, radius, roundedRectSegments, White)
	r.transients = append(r.transients, mesh)
	local := Translate(rect.X, rect.Y)
	r.submitDraw(mesh, r.convenienceShader(), r.model.Mul4(local), color, 1)
	if !r.deferred {
		r.releaseTransients()
	}
	return nil
}

// convenienceShader returns nil to draw with the bound shader, or the
// built-in shader as a per-draw override when none is bound.
func (r *Renderer) convenienceShader() *Shader {
	if r.state.Shader != nil {
		return nil
	}
	return r.builtin
}

func (r *Renderer) submitDraw(mesh *Mesh, override *Shader, model mgl32.Mat4, tint Color, instances int) {
	r.submit(DrawMeshCommand{
		Mesh:       mesh,
		Shader:     override,
		Instances:  instances,
		Projection: r.projection,
		View:       r.view,
		Model:      model,
		Tint:       tint,
	})
}

// submit counts draws and then executes or records cmd. Before Initialize
// there is no GPU to talk to and cmd is dropped.
func (r *Renderer) submit(cmd Command) {
	if !r.initialized {
		return
	}
	if d, ok := cmd.(DrawMeshCommand); ok {
		r.stats.addDraw(d.Mesh, d.Instances)
	}
	if r.deferred {
		r.commands.Add(cmd)
		return
	}
	r.execute(cmd)
}

func (r *Renderer) execute(cmd Command) {
	switch c := cmd.(type) {
	case SetShaderCommand:
		r.bindProgram(c.Shader)
		r.bound = c.Shader
	case SetBlendCommand:
		src, dst := c.Mode.Factors()
		r.dev.SetBlend(true, src, dst)
	case SetDepthCommand:
		r.dev.SetDepth(c.Enabled, c.Func)
	case SetViewportCommand:
		r.dev.SetViewport(c.Viewport)
	case SetScissorCommand:
		r.dev.SetScissor(c.Enabled, c.Rect)
	case SetTextureCommand:
		var id uint32
		if c.Texture != nil {
			id = c.Texture.id
		}
		r.dev.BindTexture(id, c.Slot)
	case ClearCommand:
		r.dev.Clear(c.Mask, c.Color, c.Depth)
	case DrawMeshCommand:
		r.executeDraw(c)
	}
}

func (r *Renderer) executeDraw(c DrawMeshCommand) {
	shader := c.Shader
	if shader == nil {
		shader = r.bound
	}
	if shader == nil {
		return
	}
	if shader != r.bound {
		r.bindProgram(shader)
	}
	shader.setDrawUniforms(c)
	c.Mesh.upload(r.dev)
	r.dev.DrawMesh(c.Mesh.handle, c.Mesh.mode, c.Mesh.elementCount(), c.Mesh.IndexCount() > 0, c.Instances)
	if shader != r.bound {
		r.bindProgram(r.bound)
	}
}

func (r *Renderer) bindProgram(s *Shader) {
	if s == nil {
		r.dev.UseProgram(0)
		return
	}
	r.dev.UseProgram(s.program)
}

func (r *Renderer) releaseTransients() {
	for i, m := range r.transients {
		m.Release()
		r.transients[i] = nil
	}
	r.transients = r.transients[:0]
}
