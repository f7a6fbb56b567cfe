package gfx

import "testing"

func TestCommandBuffer_Count(t *testing.T) {
	var b CommandBuffer
	b.Add(SetBlendCommand{Mode: BlendAdditive})
	b.Add(DrawMeshCommand{})
	b.Add(DrawMeshCommand{})
	b.Add(ClearCommand{Mask: ClearColor})

	if b.Len() != 4 {
		t.Fatalf("expected 4 commands, got %d", b.Len())
	}
	if n := b.Count(CmdDrawMesh); n != 2 {
		t.Fatalf("expected 2 draws, got %d", n)
	}
	if n := b.Count(CmdSetScissor); n != 0 {
		t.Fatalf("expected 0 scissor commands, got %d", n)
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer after reset, got %d", b.Len())
	}
}

func TestCommandType_String(t *testing.T) {
	if CmdSetViewport.String() != "SetViewport" {
		t.Fatalf("expected SetViewport, got %s", CmdSetViewport)
	}
	if CommandType(99).String() != "Unknown" {
		t.Fatalf("expected Unknown, got %s", CommandType(99))
	}
}
