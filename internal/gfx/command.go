package gfx

import "github.com/go-gl/mathgl/mgl32"

// CommandType identifies a recorded command.
type CommandType uint8

const (
	CmdDrawMesh CommandType = iota
	CmdSetShader
	CmdSetTexture
	CmdSetScissor
	CmdClear
	CmdSetBlend
	CmdSetDepth
	CmdSetViewport
)

var commandTypeNames = [...]string{
	CmdDrawMesh:    "DrawMesh",
	CmdSetShader:   "SetShader",
	CmdSetTexture:  "SetTexture",
	CmdSetScissor:  "SetScissor",
	CmdClear:       "Clear",
	CmdSetBlend:    "SetBlend",
	CmdSetDepth:    "SetDepth",
	CmdSetViewport: "SetViewport",
}

func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// Command is a GPU operation the renderer either executes immediately or
// records for playback. Commands reference meshes, shaders and textures
// without owning them; those must outlive the buffer's next flush.
type Command interface {
	Type() CommandType
	isCommand()
}

// DrawMeshCommand draws a mesh with the matrices captured at record time.
// A nil Shader draws with the program bound when the command executes.
type DrawMeshCommand struct {
	Mesh       *Mesh
	Shader     *Shader
	Instances  int
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
	Tint       Color
}

type SetShaderCommand struct {
	Shader *Shader
}

// SetTextureCommand binds Texture to Slot; a nil Texture unbinds the slot.
type SetTextureCommand struct {
	Texture *Texture
	Slot    int
}

type SetScissorCommand struct {
	Enabled bool
	Rect    Region
}

type ClearCommand struct {
	Mask  ClearMask
	Color Color
	Depth float32
}

type SetBlendCommand struct {
	Mode BlendMode
}

type SetDepthCommand struct {
	Enabled bool
	Func    DepthFunc
}

type SetViewportCommand struct {
	Viewport Region
}

func (DrawMeshCommand) Type() CommandType    { return CmdDrawMesh }
func (SetShaderCommand) Type() CommandType   { return CmdSetShader }
func (SetTextureCommand) Type() CommandType  { return CmdSetTexture }
func (SetScissorCommand) Type() CommandType  { return CmdSetScissor }
func (ClearCommand) Type() CommandType       { return CmdClear }
func (SetBlendCommand) Type() CommandType    { return CmdSetBlend }
func (SetDepthCommand) Type() CommandType    { return CmdSetDepth }
func (SetViewportCommand) Type() CommandType { return CmdSetViewport }

func (DrawMeshCommand) isCommand()    {}
func (SetShaderCommand) isCommand()   {}
func (SetTextureCommand) isCommand()  {}
func (SetScissorCommand) isCommand()  {}
func (ClearCommand) isCommand()       {}
func (SetBlendCommand) isCommand()    {}
func (SetDepthCommand) isCommand()    {}
func (SetViewportCommand) isCommand() {}

// CommandBuffer is an ordered list of recorded commands.
type CommandBuffer struct {
	commands []Command
}

// Add appends cmd.
func (b *CommandBuffer) Add(cmd Command) {
	b.commands = append(b.commands, cmd)
}

// Len returns the number of recorded commands.
func (b *CommandBuffer) Len() int { return len(b.commands) }

// Commands returns the recorded commands in order. The slice is valid until
// the next Add or Reset.
func (b *CommandBuffer) Commands() []Command { return b.commands }

// Count returns how many commands of type t are recorded.
func (b *CommandBuffer) Count(t CommandType) int {
	n := 0
	for _, c := range b.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset drops all commands, keeping capacity for the next frame.
func (b *CommandBuffer) Reset() {
	clear(b.commands)
	b.commands = b.commands[:0]
}
