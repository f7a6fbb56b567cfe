package gfx

import "github.com/go-gl/mathgl/mgl32"

// BlendFactor is a blend equation factor.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
)

var blendFactorNames = [...]string{
	BlendZero:             "Zero",
	BlendOne:              "One",
	BlendSrcAlpha:         "SrcAlpha",
	BlendOneMinusSrcAlpha: "OneMinusSrcAlpha",
	BlendDstColor:         "DstColor",
}

func (f BlendFactor) String() string {
	if f >= 0 && int(f) < len(blendFactorNames) {
		return blendFactorNames[f]
	}
	return "Unknown"
}

// DepthFunc is the depth comparison function.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
	DepthEqual
	DepthGreater
	DepthGreaterEqual
	DepthNotEqual
	DepthAlways
	DepthNever
)

// DrawMode is the primitive topology of a mesh.
type DrawMode int

const (
	Triangles DrawMode = iota
	Lines
	Points
	TriangleStrip
	TriangleFan
)

// ClearMask selects the buffers a clear affects.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// MeshHandle names the GPU objects backing a mesh.
type MeshHandle struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// Valid reports whether the handle refers to uploaded buffers.
func (h MeshHandle) Valid() bool { return h.VAO != 0 }

// FramebufferHandle names a framebuffer and its optional depth attachment.
type FramebufferHandle struct {
	FBO   uint32
	Depth uint32
}

// Device is the GPU call surface used by the renderer and its resources.
// Programs and textures are addressed by their GL names.
type Device interface {
	// Init loads GL entry points for the current context.
	Init() error

	SetBlend(enabled bool, src, dst BlendFactor)
	SetDepth(enabled bool, fn DepthFunc)
	SetViewport(r Region)
	SetScissor(enabled bool, r Region)
	Clear(mask ClearMask, color Color, depth float32)

	CreateProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	// UniformLocation returns -1 for names the program does not use.
	UniformLocation(program uint32, name string) int32
	Uniform1i(program uint32, location int32, v int32)
	Uniform1f(program uint32, location int32, v float32)
	Uniform2f(program uint32, location int32, v mgl32.Vec2)
	Uniform3f(program uint32, location int32, v mgl32.Vec3)
	Uniform4f(program uint32, location int32, v mgl32.Vec4)
	UniformMatrix4(program uint32, location int32, m mgl32.Mat4)

	CreateMesh(vertices []Vertex, indices []uint32) MeshHandle
	UpdateMesh(h MeshHandle, vertices []Vertex, indices []uint32)
	DeleteMesh(h MeshHandle)
	// DrawMesh draws count elements; indexed selects the element buffer.
	DrawMesh(h MeshHandle, mode DrawMode, count int, indexed bool, instances int)

	CreateTexture(desc TextureDesc, pixels []byte) uint32
	UpdateTexture(texture uint32, desc TextureDesc, x, y, width, height int, pixels []byte)
	DeleteTexture(texture uint32)
	BindTexture(texture uint32, slot int)

	CreateFramebuffer(color uint32, width, height int, depth bool) (FramebufferHandle, error)
	DeleteFramebuffer(h FramebufferHandle)
	BindFramebuffer(h FramebufferHandle)
}
