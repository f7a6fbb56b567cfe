package gfx

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// GLDevice implements Device on OpenGL 4.1 core. A context must be current
// on the calling thread.
type GLDevice struct{}

func NewGLDevice() *GLDevice { return &GLDevice{} }

func (d *GLDevice) Init() error {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return nil
}

// Version returns the GL_VERSION string of the current context.
func (d *GLDevice) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func glBlendFactor(f BlendFactor) uint32 {
	switch f {
	case BlendZero:
		return gl.ZERO
	case BlendOne:
		return gl.ONE
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	case BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendDstColor:
		return gl.DST_COLOR
	}
	return gl.ONE
}

func glDepthFunc(fn DepthFunc) uint32 {
	switch fn {
	case DepthLessEqual:
		return gl.LEQUAL
	case DepthEqual:
		return gl.EQUAL
	case DepthGreater:
		return gl.GREATER
	case DepthGreaterEqual:
		return gl.GEQUAL
	case DepthNotEqual:
		return gl.NOTEQUAL
	case DepthAlways:
		return gl.ALWAYS
	case DepthNever:
		return gl.NEVER
	}
	return gl.LESS
}

func glDrawMode(m DrawMode) uint32 {
	switch m {
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case TriangleFan:
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}

func glToggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (d *GLDevice) SetBlend(enabled bool, src, dst BlendFactor) {
	glToggle(gl.BLEND, enabled)
	gl.BlendFunc(glBlendFactor(src), glBlendFactor(dst))
}

func (d *GLDevice) SetDepth(enabled bool, fn DepthFunc) {
	glToggle(gl.DEPTH_TEST, enabled)
	gl.DepthFunc(glDepthFunc(fn))
}

func (d *GLDevice) SetViewport(r Region) {
	gl.Viewport(r.X, r.Y, r.Width, r.Height)
}

func (d *GLDevice) SetScissor(enabled bool, r Region) {
	glToggle(gl.SCISSOR_TEST, enabled)
	gl.Scissor(r.X, r.Y, r.Width, r.Height)
}

func (d *GLDevice) Clear(mask ClearMask, color Color, depth float32) {
	var bits uint32
	if mask&ClearColor != 0 {
		gl.ClearColor(color.R, color.G, color.B, color.A)
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&ClearDepth != 0 {
		gl.ClearDepthf(depth)
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
}

func (d *GLDevice) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return newProgram(vertexSrc, fragmentSrc)
}

func (d *GLDevice) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *GLDevice) UseProgram(program uint32)    { gl.UseProgram(program) }

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) Uniform1i(program uint32, loc int32, v int32) {
	gl.ProgramUniform1i(program, loc, v)
}

func (d *GLDevice) Uniform1f(program uint32, loc int32, v float32) {
	gl.ProgramUniform1f(program, loc, v)
}

func (d *GLDevice) Uniform2f(program uint32, loc int32, v mgl32.Vec2) {
	gl.ProgramUniform2f(program, loc, v[0], v[1])
}

func (d *GLDevice) Uniform3f(program uint32, loc int32, v mgl32.Vec3) {
	gl.ProgramUniform3f(program, loc, v[0], v[1], v[2])
}

func (d *GLDevice) Uniform4f(program uint32, loc int32, v mgl32.Vec4) {
	gl.ProgramUniform4f(program, loc, v[0], v[1], v[2], v[3])
}

func (d *GLDevice) UniformMatrix4(program uint32, loc int32, m mgl32.Mat4) {
	gl.ProgramUniformMatrix4fv(program, loc, 1, false, &m[0])
}

const vertexStride = int32(unsafe.Sizeof(Vertex{}))

func (d *GLDevice) CreateMesh(vertices []Vertex, indices []uint32) MeshHandle {
	var h MeshHandle
	gl.GenVertexArrays(1, &h.VAO)
	gl.GenBuffers(1, &h.VBO)
	gl.GenBuffers(1, &h.EBO)

	gl.BindVertexArray(h.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, vertexStride, unsafe.Offsetof(Vertex{}.Position))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, unsafe.Offsetof(Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride, unsafe.Offsetof(Vertex{}.Color))

	uploadMeshData(vertices, indices)
	gl.BindVertexArray(0)
	return h
}

func (d *GLDevice) UpdateMesh(h MeshHandle, vertices []Vertex, indices []uint32) {
	gl.BindVertexArray(h.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	uploadMeshData(vertices, indices)
	gl.BindVertexArray(0)
}

// uploadMeshData fills the buffers bound to the current vertex array.
func uploadMeshData(vertices []Vertex, indices []uint32) {
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	}
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.DYNAMIC_DRAW)
	}
}

func (d *GLDevice) DeleteMesh(h MeshHandle) {
	gl.DeleteBuffers(1, &h.EBO)
	gl.DeleteBuffers(1, &h.VBO)
	gl.DeleteVertexArrays(1, &h.VAO)
}

func (d *GLDevice) DrawMesh(h MeshHandle, mode DrawMode, count int, indexed bool, instances int) {
	gl.BindVertexArray(h.VAO)
	prim := glDrawMode(mode)
	switch {
	case indexed && instances > 1:
		gl.DrawElementsInstanced(prim, int32(count), gl.UNSIGNED_INT, nil, int32(instances))
	case indexed:
		gl.DrawElements(prim, int32(count), gl.UNSIGNED_INT, nil)
	case instances > 1:
		gl.DrawArraysInstanced(prim, 0, int32(count), int32(instances))
	default:
		gl.DrawArrays(prim, 0, int32(count))
	}
	gl.BindVertexArray(0)
}

func glTextureFormat(f TextureFormat, srgb bool) (internal int32, format uint32) {
	switch f {
	case FormatRGB:
		if srgb {
			return gl.SRGB8, gl.RGB
		}
		return gl.RGB8, gl.RGB
	case FormatBGR:
		if srgb {
			return gl.SRGB8, gl.BGR
		}
		return gl.RGB8, gl.BGR
	case FormatBGRA:
		if srgb {
			return gl.SRGB8_ALPHA8, gl.BGRA
		}
		return gl.RGBA8, gl.BGRA
	case FormatRed:
		return gl.R8, gl.RED
	case FormatRG:
		return gl.RG8, gl.RG
	}
	if srgb {
		return gl.SRGB8_ALPHA8, gl.RGBA
	}
	return gl.RGBA8, gl.RGBA
}

func glWrap(w Wrap) int32 {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapMirror:
		return gl.MIRRORED_REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func glFilter(f Filter, min, mipmaps bool) int32 {
	switch {
	case f == FilterNearest && min && mipmaps:
		return gl.NEAREST_MIPMAP_NEAREST
	case f == FilterNearest:
		return gl.NEAREST
	case f == FilterTrilinear && min && mipmaps:
		return gl.LINEAR_MIPMAP_LINEAR
	case f == FilterLinear && min && mipmaps:
		return gl.LINEAR_MIPMAP_NEAREST
	}
	return gl.LINEAR
}

func (d *GLDevice) CreateTexture(desc TextureDesc, pixels []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter, true, desc.Mipmaps))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter, false, false))

	internal, format := glTextureFormat(desc.Format, desc.SRGB)
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, ptr)
	if desc.Mipmaps && ptr != nil {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (d *GLDevice) UpdateTexture(id uint32, desc TextureDesc, x, y, width, height int, pixels []byte) {
	_, format := glTextureFormat(desc.Format, desc.SRGB)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(width), int32(height), format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if desc.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *GLDevice) DeleteTexture(id uint32) { gl.DeleteTextures(1, &id) }

func (d *GLDevice) BindTexture(id uint32, slot int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (d *GLDevice) CreateFramebuffer(color uint32, width, height int, depth bool) (FramebufferHandle, error) {
	var h FramebufferHandle
	gl.GenFramebuffers(1, &h.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, h.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color, 0)

	if depth {
		gl.GenRenderbuffers(1, &h.Depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, h.Depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, h.Depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		d.DeleteFramebuffer(h)
		return FramebufferHandle{}, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return h, nil
}

func (d *GLDevice) DeleteFramebuffer(h FramebufferHandle) {
	if h.Depth != 0 {
		gl.DeleteRenderbuffers(1, &h.Depth)
	}
	gl.DeleteFramebuffers(1, &h.FBO)
}

func (d *GLDevice) BindFramebuffer(h FramebufferHandle) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, h.FBO)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}
