package gfx

import "math"

// Vertex is the vertex layout shared by every mesh: attribute 0 is the
// position, 1 the texture coordinate and 2 the color.
type Vertex struct {
	Position Vec2
	TexCoord Vec2
	Color    Color
}

// Mesh is CPU-side geometry uploaded lazily the first time it is drawn.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
	mode     DrawMode

	dev    Device
	handle MeshHandle
	dirty  bool
}

// NewMesh creates a triangle mesh. A nil index slice draws vertices in order.
func NewMesh(vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{vertices: vertices, indices: indices, mode: Triangles, dirty: true}
}

func (m *Mesh) SetVertices(vertices []Vertex) {
	m.vertices = vertices
	m.dirty = true
}

func (m *Mesh) SetIndices(indices []uint32) {
	m.indices = indices
	m.dirty = true
}

// UpdateVertices overwrites vertices starting at offset, growing the mesh
// when the range runs past its end.
func (m *Mesh) UpdateVertices(offset int, vertices []Vertex) {
	if end := offset + len(vertices); end > len(m.vertices) {
		grown := make([]Vertex, end)
		copy(grown, m.vertices)
		m.vertices = grown
	}
	copy(m.vertices[offset:], vertices)
	m.dirty = true
}

func (m *Mesh) SetMode(mode DrawMode) { m.mode = mode }
func (m *Mesh) Mode() DrawMode        { return m.mode }

func (m *Mesh) Vertices() []Vertex { return m.vertices }
func (m *Mesh) Indices() []uint32  { return m.indices }

func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) IndexCount() int  { return len(m.indices) }

// elementCount is the number of vertices or indices a draw consumes.
func (m *Mesh) elementCount() int {
	if len(m.indices) > 0 {
		return len(m.indices)
	}
	return len(m.vertices)
}

// TriangleCount returns the triangles one draw of the mesh rasterizes.
func (m *Mesh) TriangleCount() int {
	n := m.elementCount()
	switch m.mode {
	case Triangles:
		return n / 3
	case TriangleStrip, TriangleFan:
		if n < 3 {
			return 0
		}
		return n - 2
	}
	return 0
}

// Draw draws the mesh with r's current state.
func (m *Mesh) Draw(r *Renderer) error { return r.Draw(m) }

// DrawInstanced draws count instances of the mesh with r's current state.
func (m *Mesh) DrawInstanced(r *Renderer, count int) error { return r.DrawInstanced(m, count) }

// upload creates or refreshes the GPU buffers.
func (m *Mesh) upload(dev Device) {
	switch {
	case !m.handle.Valid():
		m.dev = dev
		m.handle = dev.CreateMesh(m.vertices, m.indices)
	case m.dirty:
		dev.UpdateMesh(m.handle, m.vertices, m.indices)
	}
	m.dirty = false
}

// Release frees the GPU buffers. The mesh can be drawn again afterwards and
// is re-uploaded.
func (m *Mesh) Release() {
	if m.handle.Valid() {
		m.dev.DeleteMesh(m.handle)
	}
	m.handle = MeshHandle{}
	m.dirty = true
}

// NewQuadMesh returns a width x height quad with its top-left corner at the
// origin.
func NewQuadMesh(width, height float32, color Color) *Mesh {
	vertices := []Vertex{
		{Position: Vec2{0, 0}, TexCoord: Vec2{0, 0}, Color: color},
		{Position: Vec2{width, 0}, TexCoord: Vec2{1, 0}, Color: color},
		{Position: Vec2{width, height}, TexCoord: Vec2{1, 1}, Color: color},
		{Position: Vec2{0, height}, TexCoord: Vec2{0, 1}, Color: color},
	}
	return NewMesh(vertices, []uint32{0, 1, 2, 2, 3, 0})
}

// NewCircleMesh returns a triangle fan circle centred on the origin, stored
// as an indexed triangle list.
func NewCircleMesh(radius float32, segments int, color Color) *Mesh {
	if segments < 3 {
		segments = 3
	}
	vertices := make([]Vertex, 0, segments+1)
	vertices = append(vertices, Vertex{Position: Vec2{0, 0}, TexCoord: Vec2{0.5, 0.5}, Color: color})
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		vertices = append(vertices, Vertex{
			Position: Vec2{c * radius, s * radius},
			TexCoord: Vec2{0.5 + c*0.5, 0.5 + s*0.5},
			Color:    color,
		})
	}
	indices := make([]uint32, 0, segments*3)
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		indices = append(indices, 0, uint32(i+1), uint32(next))
	}
	return NewMesh(vertices, indices)
}

// NewRoundedRectMesh returns a rectangle with its top-left corner at the
// origin and corners rounded with radius, each corner using segments
// triangles. The radius is clamped to half the shorter side.
func NewRoundedRectMesh(width, height, radius float32, segments int, color Color) *Mesh {
	radius = max(0, min(radius, width/2, height/2))
	if segments < 1 {
		segments = 1
	}
	if radius == 0 {
		return NewQuadMesh(width, height, color)
	}

	// Corner centres clockwise from top-left, each with its starting angle.
	corners := [4]struct {
		cx, cy float32
		start  float64
	}{
		{radius, radius, math.Pi},
		{width - radius, radius, 1.5 * math.Pi},
		{width - radius, height - radius, 0},
		{radius, height - radius, 0.5 * math.Pi},
	}

	vertex := func(x, y float32) Vertex {
		return Vertex{Position: Vec2{x, y}, TexCoord: Vec2{x / width, y / height}, Color: color}
	}

	vertices := []Vertex{vertex(width/2, height/2)}
	for _, c := range corners {
		for i := 0; i <= segments; i++ {
			a := c.start + 0.5*math.Pi*float64(i)/float64(segments)
			vertices = append(vertices, vertex(
				c.cx+radius*float32(math.Cos(a)),
				c.cy+radius*float32(math.Sin(a)),
			))
		}
	}

	ring := len(vertices) - 1
	indices := make([]uint32, 0, ring*3)
	for i := 0; i < ring; i++ {
		next := (i+1)%ring + 1
		indices = append(indices, 0, uint32(i+1), uint32(next))
	}
	return NewMesh(vertices, indices)
}
