package gfx

import "time"

// Stats accumulates draw statistics until ResetStats.
type Stats struct {
	DrawCalls uint32
	Triangles uint32
	Vertices  uint32
	// FlushTime is the CPU time spent issuing GPU calls.
	FlushTime time.Duration
}

func (s *Stats) addDraw(m *Mesh, instances int) {
	if instances < 1 {
		instances = 1
	}
	s.DrawCalls++
	s.Vertices += uint32(m.VertexCount() * instances)
	s.Triangles += uint32(m.TriangleCount() * instances)
}
