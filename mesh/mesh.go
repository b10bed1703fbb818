// Package mesh implements a polygonal mesh arena with stable vertex and
// face indices. It is the mutable surface the handle operator works on:
// faces are ordered, cyclic vertex rings whose winding defines the face
// normal by the right-hand rule.
package mesh

import (
	"errors"
	"fmt"

	"github.com/nhthn/blender-handle/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexID indexes a vertex in a Mesh. IDs are stable for the life of the mesh.
type VertexID int

// FaceID indexes a face in a Mesh. IDs of deleted faces are never reused.
type FaceID int

var (
	// ErrFaceDeleted reports use of a face that was removed from the mesh.
	ErrFaceDeleted = errors.New("face was deleted")
	// ErrShortFace reports an attempt to create a face with fewer than 3 vertices.
	ErrShortFace = errors.New("face needs at least 3 vertices")
)

type face struct {
	verts   []VertexID
	deleted bool
}

// Mesh is an arena of vertices and faces. The zero value is an empty mesh
// ready for use.
type Mesh struct {
	verts []r3.Vec
	faces []face
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex at position p and returns its index.
func (m *Mesh) AddVertex(p r3.Vec) VertexID {
	m.verts = append(m.verts, p)
	return VertexID(len(m.verts) - 1)
}

// Vertex returns the position of a vertex.
func (m *Mesh) Vertex(id VertexID) r3.Vec {
	return m.verts[id]
}

// SetVertex moves a vertex to position p.
func (m *Mesh) SetVertex(id VertexID, p r3.Vec) {
	m.verts[id] = p
}

// NumVertices returns the total number of vertices ever created.
func (m *Mesh) NumVertices() int { return len(m.verts) }

// AddFace creates a face from an ordered vertex ring and returns its index.
// At least 3 vertices are required and all of them must exist in the mesh.
func (m *Mesh) AddFace(verts ...VertexID) (FaceID, error) {
	if len(verts) < 3 {
		return -1, fmt.Errorf("%d vertices: %w", len(verts), ErrShortFace)
	}
	for _, v := range verts {
		if v < 0 || int(v) >= len(m.verts) {
			return -1, fmt.Errorf("vertex %d out of range [0,%d)", v, len(m.verts))
		}
	}
	ring := make([]VertexID, len(verts))
	copy(ring, verts)
	m.faces = append(m.faces, face{verts: ring})
	return FaceID(len(m.faces) - 1), nil
}

// DeleteFace removes a face from the mesh. The face's vertices and every
// other face referencing them are left intact, so boundary edges remain
// available for restitching.
func (m *Mesh) DeleteFace(id FaceID) error {
	f, err := m.lookup(id)
	if err != nil {
		return err
	}
	f.deleted = true
	return nil
}

// Face returns a copy of the ordered vertex ring of a face.
func (m *Mesh) Face(id FaceID) ([]VertexID, error) {
	f, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	ring := make([]VertexID, len(f.verts))
	copy(ring, f.verts)
	return ring, nil
}

// FaceNormal returns the unit normal of a face computed with Newell's
// method from its vertex ring winding. Degenerate faces yield the zero
// vector.
func (m *Mesh) FaceNormal(id FaceID) (r3.Vec, error) {
	f, err := m.lookup(id)
	if err != nil {
		return r3.Vec{}, err
	}
	return d3.PolygonNormal(m.ringPoints(f.verts)), nil
}

// Bounds returns the axis-aligned bounding box of every vertex in the
// mesh, deleted-face vertices included. An empty mesh yields the zero box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.verts) == 0 {
		return r3.Box{}
	}
	s := d3.Set(m.verts)
	return r3.Box{Min: s.Min(), Max: s.Max()}
}

// FaceCentroid returns the arithmetic mean of a face's vertex positions.
func (m *Mesh) FaceCentroid(id FaceID) (r3.Vec, error) {
	f, err := m.lookup(id)
	if err != nil {
		return r3.Vec{}, err
	}
	return m.ringPoints(f.verts).Centroid(), nil
}

// Faces returns the indices of all live faces in creation order.
func (m *Mesh) Faces() []FaceID {
	ids := make([]FaceID, 0, len(m.faces))
	for i := range m.faces {
		if !m.faces[i].deleted {
			ids = append(ids, FaceID(i))
		}
	}
	return ids
}

// NumFaces returns the number of live faces.
func (m *Mesh) NumFaces() int {
	n := 0
	for i := range m.faces {
		if !m.faces[i].deleted {
			n++
		}
	}
	return n
}

// Triangles fan-triangulates all live faces for rendering. Quads and larger
// polygons become len(ring)-2 triangles anchored at the ring's first vertex.
func (m *Mesh) Triangles() []r3.Triangle {
	tris := make([]r3.Triangle, 0, 2*len(m.faces))
	for i := range m.faces {
		f := &m.faces[i]
		if f.deleted {
			continue
		}
		v0 := m.verts[f.verts[0]]
		for j := 1; j+1 < len(f.verts); j++ {
			tris = append(tris, r3.Triangle{
				v0,
				m.verts[f.verts[j]],
				m.verts[f.verts[j+1]],
			})
		}
	}
	return tris
}

func (m *Mesh) lookup(id FaceID) (*face, error) {
	if id < 0 || int(id) >= len(m.faces) {
		return nil, fmt.Errorf("face %d out of range [0,%d)", id, len(m.faces))
	}
	f := &m.faces[id]
	if f.deleted {
		return nil, fmt.Errorf("face %d: %w", id, ErrFaceDeleted)
	}
	return f, nil
}

func (m *Mesh) ringPoints(ring []VertexID) d3.Set {
	pts := make(d3.Set, len(ring))
	for i, v := range ring {
		pts[i] = m.verts[v]
	}
	return pts
}
