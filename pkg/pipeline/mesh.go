package pipeline

import "fmt"

// Triangle is an ordered triple of vertex payloads. Front faces wind
// counter-clockwise in clip space.
type Triangle[T any] struct {
	A, B, C T
}

// Tri creates a triangle.
func Tri[T any](a, b, c T) Triangle[T] {
	return Triangle[T]{A: a, B: b, C: c}
}

// Mesh is an indexed triangle list. Each consecutive index triple names
// one triangle. The pipeline borrows it read-only during a submission.
type Mesh[T any] struct {
	Vertices []T
	Indices  []uint32
}

// NewMesh creates an indexed mesh.
func NewMesh[T any](vertices []T, indices []uint32) Mesh[T] {
	return Mesh[T]{Vertices: vertices, Indices: indices}
}

// validate checks the mesh shape invariants. Violations are programmer
// bugs; Submit fails fast on them.
func (m Mesh[T]) validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("pipeline: index count %d not divisible by 3", len(m.Indices))
	}
	if len(m.Vertices) < 3 {
		return fmt.Errorf("pipeline: mesh has %d vertices, need at least 3", len(m.Vertices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("pipeline: index %d at position %d out of range (%d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}
