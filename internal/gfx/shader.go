package gfx

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms the renderer sets on every draw. Programs that do not declare them
// are not warned about.
const (
	UniformProjection = "uProjection"
	UniformView       = "uView"
	UniformModel      = "uModel"
	UniformColor      = "uColor"
	UniformTexture    = "uTexture"
)

// Shader is a linked program with a uniform location cache. Uniform setters
// write through the device immediately, also in deferred mode.
type Shader struct {
	dev     Device
	logger  *slog.Logger
	program uint32

	locations map[string]int32
	warned    map[string]bool
}

// NewShader compiles and links a program from GLSL sources.
func NewShader(dev Device, logger *slog.Logger, vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := dev.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = nopLogger()
	}
	return &Shader{
		dev:       dev,
		logger:    logger,
		program:   program,
		locations: make(map[string]int32),
		warned:    make(map[string]bool),
	}, nil
}

// LoadShader reads GLSL sources from files.
func LoadShader(dev Device, logger *slog.Logger, vertexPath, fragmentPath string) (*Shader, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("read fragment shader: %w", err)
	}
	s, err := NewShader(dev, logger, string(vs), string(fs))
	if err != nil {
		return nil, fmt.Errorf("%s, %s: %w", vertexPath, fragmentPath, err)
	}
	return s, nil
}

// Program returns the GL program name.
func (s *Shader) Program() uint32 { return s.program }

// Release deletes the program.
func (s *Shader) Release() {
	if s.program != 0 {
		s.dev.DeleteProgram(s.program)
		s.program = 0
	}
}

func (s *Shader) location(name string) int32 {
	loc, ok := s.locations[name]
	if !ok {
		loc = s.dev.UniformLocation(s.program, name)
		s.locations[name] = loc
	}
	return loc
}

// lookup resolves a user-set uniform, warning once per unknown name.
func (s *Shader) lookup(name string) (int32, bool) {
	loc := s.location(name)
	if loc < 0 {
		if !s.warned[name] {
			s.warned[name] = true
			s.logger.Warn("uniform not found in shader", "uniform", name, "program", s.program)
		}
		return loc, false
	}
	return loc, true
}

func (s *Shader) SetInt(name string, v int32) {
	if loc, ok := s.lookup(name); ok {
		s.dev.Uniform1i(s.program, loc, v)
	}
}

func (s *Shader) SetFloat(name string, v float32) {
	if loc, ok := s.lookup(name); ok {
		s.dev.Uniform1f(s.program, loc, v)
	}
}

func (s *Shader) SetVec2(name string, v Vec2) {
	if loc, ok := s.lookup(name); ok {
		s.dev.Uniform2f(s.program, loc, v)
	}
}

func (s *Shader) SetVec3(name string, x, y, z float32) {
	if loc, ok := s.lookup(name); ok {
		s.dev.Uniform3f(s.program, loc, mgl32.Vec3{x, y, z})
	}
}

func (s *Shader) SetVec4(name string, x, y, z, w float32) {
	if loc, ok := s.lookup(name); ok {
		s.dev.Uniform4f(s.program, loc, mgl32.Vec4{x, y, z, w})
	}
}

func (s *Shader) SetColor(name string, c Color) {
	if loc, ok := s.lookup(name); ok {
		s.dev.Uniform4f(s.program, loc, c.vec4())
	}
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := s.lookup(name); ok {
		s.dev.UniformMatrix4(s.program, loc, m)
	}
}

// setDrawUniforms sets the renderer-managed uniforms the program declares.
func (s *Shader) setDrawUniforms(c DrawMeshCommand) {
	if loc := s.location(UniformProjection); loc >= 0 {
		s.dev.UniformMatrix4(s.program, loc, c.Projection)
	}
	if loc := s.location(UniformView); loc >= 0 {
		s.dev.UniformMatrix4(s.program, loc, c.View)
	}
	if loc := s.location(UniformModel); loc >= 0 {
		s.dev.UniformMatrix4(s.program, loc, c.Model)
	}
	if loc := s.location(UniformColor); loc >= 0 {
		s.dev.Uniform4f(s.program, loc, c.Tint.vec4())
	}
}

const vertexShader = `#version 410 core
layout(location = 0) in vec2 aPosition;
layout(location = 1) in vec2 aTexCoord;
layout(location = 2) in vec4 aColor;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
	vTexCoord = aTexCoord;
	vColor = aColor;
	gl_Position = uProjection * uView * uModel * vec4(aPosition, 0.0, 1.0);
}
`

const basicFragmentShader = `#version 410 core
in vec2 vTexCoord;
in vec4 vColor;

uniform vec4 uColor;

out vec4 fragColor;

void main() {
	fragColor = vColor * uColor;
}
`

const texturedFragmentShader = `#version 410 core
in vec2 vTexCoord;
in vec4 vColor;

uniform vec4 uColor;
uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
	fragColor = texture(uTexture, vTexCoord) * vColor * uColor;
}
`

// Separable 9-tap gaussian; uDirection is (1,0) or (0,1).
const blurFragmentShader = `#version 410 core
in vec2 vTexCoord;
in vec4 vColor;

uniform vec4 uColor;
uniform sampler2D uTexture;
uniform vec2 uTexelSize;
uniform vec2 uDirection;

out vec4 fragColor;

const float weights[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

void main() {
	vec2 texel = uTexelSize * uDirection;
	vec4 sum = texture(uTexture, vTexCoord) * weights[0];
	for (int i = 1; i < 5; i++) {
		sum += texture(uTexture, vTexCoord + texel * float(i)) * weights[i];
		sum += texture(uTexture, vTexCoord - texel * float(i)) * weights[i];
	}
	fragColor = sum * vColor * uColor;
}
`

// NewBasicShader draws vertex colors multiplied by uColor.
func NewBasicShader(dev Device, logger *slog.Logger) (*Shader, error) {
	return NewShader(dev, logger, vertexShader, basicFragmentShader)
}

// NewTexturedShader samples uTexture from slot 0.
func NewTexturedShader(dev Device, logger *slog.Logger) (*Shader, error) {
	s, err := NewShader(dev, logger, vertexShader, texturedFragmentShader)
	if err != nil {
		return nil, err
	}
	s.SetInt(UniformTexture, 0)
	return s, nil
}

// NewBlurShader is a one-direction gaussian blur over uTexture.
func NewBlurShader(dev Device, logger *slog.Logger) (*Shader, error) {
	s, err := NewShader(dev, logger, vertexShader, blurFragmentShader)
	if err != nil {
		return nil, err
	}
	s.SetInt(UniformTexture, 0)
	return s, nil
}
