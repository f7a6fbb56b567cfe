package gfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// gpuState is the pipeline state a fakeDevice has been told to use.
type gpuState struct {
	BlendEnabled   bool
	BlendSrc       BlendFactor
	BlendDst       BlendFactor
	DepthTest      bool
	DepthFunc      DepthFunc
	Viewport       Region
	ScissorEnabled bool
	Scissor        Region
	Program        uint32
}

type fakeDraw struct {
	Program   uint32
	Mesh      MeshHandle
	Count     int
	Indexed   bool
	Instances int
	State     gpuState
	Model     mgl32.Mat4
	Color     mgl32.Vec4
}

// fakeDevice records GPU calls instead of issuing them.
type fakeDevice struct {
	state    gpuState
	calls    []string
	draws    []fakeDraw
	clears   []ClearMask
	textures map[int]uint32

	nextID        uint32
	failCompile   bool
	uniforms      map[string]int32
	uniformValues map[uint32]map[int32]any
	liveMeshes    map[uint32]bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		textures: make(map[int]uint32),
		uniforms: map[string]int32{
			UniformProjection: 0,
			UniformView:       1,
			UniformModel:      2,
			UniformColor:      3,
			UniformTexture:    4,
		},
		uniformValues: make(map[uint32]map[int32]any),
		liveMeshes:    make(map[uint32]bool),
	}
}

var errCompile = errors.New("compile failed")

func (d *fakeDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) log(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) Init() error { return nil }

func (d *fakeDevice) SetBlend(enabled bool, src, dst BlendFactor) {
	d.state.BlendEnabled, d.state.BlendSrc, d.state.BlendDst = enabled, src, dst
	d.log("blend %v %v %v", enabled, src, dst)
}

func (d *fakeDevice) SetDepth(enabled bool, fn DepthFunc) {
	d.state.DepthTest, d.state.DepthFunc = enabled, fn
	d.log("depth %v %d", enabled, fn)
}

func (d *fakeDevice) SetViewport(r Region) {
	d.state.Viewport = r
	d.log("viewport %v", r)
}

func (d *fakeDevice) SetScissor(enabled bool, r Region) {
	d.state.ScissorEnabled, d.state.Scissor = enabled, r
	d.log("scissor %v %v", enabled, r)
}

func (d *fakeDevice) Clear(mask ClearMask, color Color, depth float32) {
	d.clears = append(d.clears, mask)
	d.log("clear %d", mask)
}

func (d *fakeDevice) CreateProgram(vs, fs string) (uint32, error) {
	if d.failCompile {
		return 0, errCompile
	}
	return d.id(), nil
}

func (d *fakeDevice) DeleteProgram(program uint32) { d.log("delete program %d", program) }

func (d *fakeDevice) UseProgram(program uint32) {
	d.state.Program = program
	d.log("use %d", program)
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	loc, ok := d.uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *fakeDevice) setUniform(program uint32, loc int32, v any) {
	m := d.uniformValues[program]
	if m == nil {
		m = make(map[int32]any)
		d.uniformValues[program] = m
	}
	m[loc] = v
}

func (d *fakeDevice) uniform(program uint32, name string) any {
	return d.uniformValues[program][d.UniformLocation(program, name)]
}

func (d *fakeDevice) Uniform1i(p uint32, loc int32, v int32)      { d.setUniform(p, loc, v) }
func (d *fakeDevice) Uniform1f(p uint32, loc int32, v float32)    { d.setUniform(p, loc, v) }
func (d *fakeDevice) Uniform2f(p uint32, loc int32, v mgl32.Vec2) { d.setUniform(p, loc, v) }
func (d *fakeDevice) Uniform3f(p uint32, loc int32, v mgl32.Vec3) { d.setUniform(p, loc, v) }
func (d *fakeDevice) Uniform4f(p uint32, loc int32, v mgl32.Vec4) { d.setUniform(p, loc, v) }
func (d *fakeDevice) UniformMatrix4(p uint32, loc int32, m mgl32.Mat4) {
	d.setUniform(p, loc, m)
}

func (d *fakeDevice) CreateMesh(vertices []Vertex, indices []uint32) MeshHandle {
	h := MeshHandle{VAO: d.id(), VBO: d.id(), EBO: d.id()}
	d.liveMeshes[h.VAO] = true
	return h
}

func (d *fakeDevice) UpdateMesh(h MeshHandle, vertices []Vertex, indices []uint32) {
	d.log("update mesh %d", h.VAO)
}

func (d *fakeDevice) DeleteMesh(h MeshHandle) {
	delete(d.liveMeshes, h.VAO)
}

func (d *fakeDevice) DrawMesh(h MeshHandle, mode DrawMode, count int, indexed bool, instances int) {
	draw := fakeDraw{
		Program:   d.state.Program,
		Mesh:      h,
		Count:     count,
		Indexed:   indexed,
		Instances: instances,
		State:     d.state,
	}
	if m, ok := d.uniform(d.state.Program, UniformModel).(mgl32.Mat4); ok {
		draw.Model = m
	}
	if c, ok := d.uniform(d.state.Program, UniformColor).(mgl32.Vec4); ok {
		draw.Color = c
	}
	d.draws = append(d.draws, draw)
	d.log("draw %d", h.VAO)
}

func (d *fakeDevice) CreateTexture(desc TextureDesc, pixels []byte) uint32 { return d.id() }

func (d *fakeDevice) UpdateTexture(id uint32, desc TextureDesc, x, y, w, h int, pixels []byte) {
	d.log("update texture %d", id)
}

func (d *fakeDevice) DeleteTexture(id uint32) { d.log("delete texture %d", id) }

func (d *fakeDevice) BindTexture(id uint32, slot int) {
	d.textures[slot] = id
	d.log("texture %d %d", slot, id)
}

func (d *fakeDevice) CreateFramebuffer(color uint32, width, height int, depth bool) (FramebufferHandle, error) {
	h := FramebufferHandle{FBO: d.id()}
	if depth {
		h.Depth = d.id()
	}
	return h, nil
}

func (d *fakeDevice) DeleteFramebuffer(h FramebufferHandle) { d.log("delete framebuffer %d", h.FBO) }
func (d *fakeDevice) BindFramebuffer(h FramebufferHandle)   { d.log("framebuffer %d", h.FBO) }
