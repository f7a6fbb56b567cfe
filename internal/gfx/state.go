package gfx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStateStackEmpty is returned by PopState without a matching PushState.
var ErrStateStackEmpty = errors.New("render state stack is empty")

// BlendMode selects a blend function.
type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAlpha
	BlendAdditive
	BlendMultiply
)

var blendModeNames = [...]string{
	BlendNone:     "None",
	BlendAlpha:    "Alpha",
	BlendAdditive: "Additive",
	BlendMultiply: "Multiply",
}

func (m BlendMode) String() string {
	if m >= 0 && int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode converts a case-insensitive name to a BlendMode.
func ParseBlendMode(s string) (BlendMode, error) {
	for m, name := range blendModeNames {
		if strings.EqualFold(s, name) {
			return BlendMode(m), nil
		}
	}
	return BlendAlpha, fmt.Errorf("unknown blend mode %q", s)
}

// Factors returns the source and destination blend factors of m. Blending
// stays enabled for BlendNone; One/Zero replaces the destination.
func (m BlendMode) Factors() (src, dst BlendFactor) {
	switch m {
	case BlendNone:
		return BlendOne, BlendZero
	case BlendAdditive:
		return BlendSrcAlpha, BlendOne
	case BlendMultiply:
		return BlendDstColor, BlendZero
	}
	return BlendSrcAlpha, BlendOneMinusSrcAlpha
}

// RenderState is the GPU pipeline state the renderer keeps current.
type RenderState struct {
	Shader         *Shader
	Blend          BlendMode
	DepthTest      bool
	DepthFunc      DepthFunc
	Viewport       Region
	ScissorEnabled bool
	// Scissor is kept while the test is disabled.
	Scissor Region
}

// DefaultRenderState has no shader, alpha blending and no depth or scissor
// test.
func DefaultRenderState() RenderState {
	return RenderState{
		Blend:     BlendAlpha,
		DepthFunc: DepthLess,
	}
}

// stateStack is a LIFO of saved render states.
type stateStack struct {
	saved []RenderState
}

func (s *stateStack) push(st RenderState) {
	s.saved = append(s.saved, st)
}

func (s *stateStack) pop() (RenderState, error) {
	if len(s.saved) == 0 {
		return RenderState{}, ErrStateStackEmpty
	}
	top := s.saved[len(s.saved)-1]
	s.saved[len(s.saved)-1] = RenderState{}
	s.saved = s.saved[:len(s.saved)-1]
	return top, nil
}

func (s *stateStack) depth() int { return len(s.saved) }

func (s *stateStack) reset() {
	clear(s.saved)
	s.saved = s.saved[:0]
}
