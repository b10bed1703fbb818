package handle_test

import (
	"errors"
	"testing"

	handle "github.com/nhthn/blender-handle"
	"github.com/nhthn/blender-handle/internal/d3"
	"github.com/nhthn/blender-handle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// bridgedCube builds a cube and bridges its bottom and top faces.
func bridgedCube(t *testing.T, segments int, weight float64, twists int) (*mesh.Mesh, handle.Result) {
	t.Helper()
	m, faces := mesh.Cube(2)
	ring1, err := m.Face(faces[mesh.CubeBottom])
	if err != nil {
		t.Fatal(err)
	}
	ring2, err := m.Face(faces[mesh.CubeTop])
	if err != nil {
		t.Fatal(err)
	}
	res, err := handle.MakeHandle(m, handle.Params{
		Face1:    faces[mesh.CubeBottom],
		Face2:    faces[mesh.CubeTop],
		Vertex1:  ring1[0],
		Vertex2:  ring2[0],
		Segments: segments,
		Weight:   weight,
		Twists:   twists,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m, res
}

func TestMakeHandleCube(t *testing.T) {
	m, res := bridgedCube(t, 10, 30, 0)
	// 9 interior rings of 4 vertices each.
	if len(res.Vertices) != 36 {
		t.Errorf("got %d new vertices, want 36", len(res.Vertices))
	}
	// 10 bands of 4 quads each.
	if len(res.Faces) != 40 {
		t.Errorf("got %d new faces, want 40", len(res.Faces))
	}
	for _, f := range res.Faces {
		ring, err := m.Face(f)
		if err != nil {
			t.Fatal(err)
		}
		if len(ring) != 4 {
			t.Errorf("face %d has %d vertices, want quad", f, len(ring))
		}
	}
	// 4 cube side faces survive alongside the 40 band faces.
	if got := m.NumFaces(); got != 44 {
		t.Errorf("mesh has %d live faces, want 44", got)
	}
	for i := 0; i < m.NumVertices(); i++ {
		if p := m.Vertex(mesh.VertexID(i)); !d3.IsFinite(p) {
			t.Fatalf("vertex %d not finite: %v", i, p)
		}
	}
}

func TestMakeHandleConsumesFaces(t *testing.T) {
	m, faces := mesh.Cube(2)
	ring1, _ := m.Face(faces[mesh.CubeBottom])
	ring2, _ := m.Face(faces[mesh.CubeTop])
	_, err := handle.MakeHandle(m, handle.DefaultParams(
		faces[mesh.CubeBottom], faces[mesh.CubeTop], ring1[0], ring2[0],
	))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Face(faces[mesh.CubeBottom]); !errors.Is(err, mesh.ErrFaceDeleted) {
		t.Errorf("face 1 still live after bridging: %v", err)
	}
	if _, err := m.Face(faces[mesh.CubeTop]); !errors.Is(err, mesh.ErrFaceDeleted) {
		t.Errorf("face 2 still live after bridging: %v", err)
	}
	// Boundary vertices of the deleted faces survive for the tube.
	if got := m.NumVertices(); got < 8 {
		t.Errorf("cube vertices deleted: %d left", got)
	}
}

func TestMakeHandleMixedVertexCounts(t *testing.T) {
	// Replace the cube's right face with two triangles, then bridge the
	// quad left face to one of them. This is the unequal-count path: the
	// 3-ring is padded to 4 and the last band closes with a triangle fan.
	m, faces := mesh.Cube(2)
	rightRing, err := m.Face(faces[mesh.CubeRight])
	if err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteFace(faces[mesh.CubeRight]); err != nil {
		t.Fatal(err)
	}
	tri1, err := m.AddFace(rightRing[0], rightRing[1], rightRing[2])
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddFace(rightRing[0], rightRing[2], rightRing[3]); err != nil {
		t.Fatal(err)
	}

	leftRing, err := m.Face(faces[mesh.CubeLeft])
	if err != nil {
		t.Fatal(err)
	}
	const segments = 3
	res, err := handle.MakeHandle(m, handle.Params{
		Face1:    faces[mesh.CubeLeft],
		Face2:    tri1,
		Vertex1:  leftRing[0],
		Vertex2:  rightRing[0],
		Segments: segments,
		Weight:   10,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Interior rings carry the padded count of 4.
	if len(res.Vertices) != (segments-1)*4 {
		t.Errorf("got %d new vertices, want %d", len(res.Vertices), (segments-1)*4)
	}
	quads, tris := 0, 0
	for _, f := range res.Faces {
		ring, err := m.Face(f)
		if err != nil {
			t.Fatal(err)
		}
		if len(ring) == 4 {
			quads++
		} else {
			tris++
		}
	}
	// Two full quad bands plus a 4-to-3 band of 3 quads and 1 fan triangle.
	if quads != 11 || tris != 1 {
		t.Errorf("got %d quads and %d triangles, want 11 and 1", quads, tris)
	}
	for i := 0; i < m.NumVertices(); i++ {
		if p := m.Vertex(mesh.VertexID(i)); !d3.IsFinite(p) {
			t.Fatalf("vertex %d not finite: %v", i, p)
		}
	}
}

func TestMakeHandleTwisted(t *testing.T) {
	m0, res0 := bridgedCube(t, 8, 10, 0)
	m1, res1 := bridgedCube(t, 8, 10, 1)
	if len(res0.Faces) != len(res1.Faces) || len(res0.Vertices) != len(res1.Vertices) {
		t.Fatal("twist changed element counts")
	}
	// A full extra turn must move interior vertices.
	moved := false
	for i := range res0.Vertices {
		if !d3.EqualWithin(m0.Vertex(res0.Vertices[i]), m1.Vertex(res1.Vertices[i]), 1e-9) {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("twisted handle identical to untwisted handle")
	}
}

func TestMakeHandleSingleSegment(t *testing.T) {
	m, res := bridgedCube(t, 1, 0, 0)
	if len(res.Vertices) != 0 {
		t.Errorf("got %d new vertices, want 0", len(res.Vertices))
	}
	if len(res.Faces) != 4 {
		t.Errorf("got %d new faces, want 4", len(res.Faces))
	}
	if got := m.NumFaces(); got != 8 {
		t.Errorf("mesh has %d live faces, want 8", got)
	}
}

func TestMakeHandleValidation(t *testing.T) {
	t.Run("bad segments", func(t *testing.T) {
		m, faces := mesh.Cube(2)
		ring1, _ := m.Face(faces[mesh.CubeBottom])
		ring2, _ := m.Face(faces[mesh.CubeTop])
		p := handle.DefaultParams(faces[mesh.CubeBottom], faces[mesh.CubeTop], ring1[0], ring2[0])
		p.Segments = 0
		if _, err := handle.MakeHandle(m, p); !errors.Is(err, handle.ErrBadSegments) {
			t.Errorf("got %v, want ErrBadSegments", err)
		}
		if got := m.NumFaces(); got != 6 {
			t.Errorf("failed call mutated mesh: %d faces", got)
		}
	})
	t.Run("vertex not on face", func(t *testing.T) {
		m, faces := mesh.Cube(2)
		ring2, _ := m.Face(faces[mesh.CubeTop])
		// ring2[0] is a top corner, not on the bottom ring.
		p := handle.DefaultParams(faces[mesh.CubeBottom], faces[mesh.CubeTop], ring2[0], ring2[0])
		if _, err := handle.MakeHandle(m, p); !errors.Is(err, handle.ErrVertexNotOnFace) {
			t.Errorf("got %v, want ErrVertexNotOnFace", err)
		}
		if got := m.NumFaces(); got != 6 {
			t.Errorf("failed call mutated mesh: %d faces", got)
		}
	})
	t.Run("deleted face", func(t *testing.T) {
		m, faces := mesh.Cube(2)
		ring1, _ := m.Face(faces[mesh.CubeBottom])
		ring2, _ := m.Face(faces[mesh.CubeTop])
		if err := m.DeleteFace(faces[mesh.CubeTop]); err != nil {
			t.Fatal(err)
		}
		p := handle.DefaultParams(faces[mesh.CubeBottom], faces[mesh.CubeTop], ring1[0], ring2[0])
		if _, err := handle.MakeHandle(m, p); !errors.Is(err, mesh.ErrFaceDeleted) {
			t.Errorf("got %v, want ErrFaceDeleted", err)
		}
	})
	t.Run("coincident centroids", func(t *testing.T) {
		m := mesh.New()
		square := planarSquare(m, 0)
		f1, err := m.AddFace(square[0], square[1], square[2], square[3])
		if err != nil {
			t.Fatal(err)
		}
		f2, err := m.AddFace(square[3], square[2], square[1], square[0])
		if err != nil {
			t.Fatal(err)
		}
		p := handle.DefaultParams(f1, f2, square[0], square[0])
		if _, err := handle.MakeHandle(m, p); !errors.Is(err, handle.ErrDegenerateGeometry) {
			t.Errorf("got %v, want ErrDegenerateGeometry", err)
		}
	})
	t.Run("degenerate face", func(t *testing.T) {
		// Every edge of the tiny triangle is shorter than the basis
		// scan's minimum, but its normal still normalizes, so the
		// failure is the basis search, not the normal check.
		m := mesh.New()
		tiny := [3]mesh.VertexID{
			m.AddVertex(r3.Vec{}),
			m.AddVertex(r3.Vec{X: 1e-11}),
			m.AddVertex(r3.Vec{Y: 1e-11}),
		}
		f1, err := m.AddFace(tiny[0], tiny[1], tiny[2])
		if err != nil {
			t.Fatal(err)
		}
		square := planarSquare(m, 2)
		f2, err := m.AddFace(square[0], square[1], square[2], square[3])
		if err != nil {
			t.Fatal(err)
		}
		verts := m.NumVertices()
		p := handle.DefaultParams(f1, f2, tiny[0], square[0])
		if _, err := handle.MakeHandle(m, p); !errors.Is(err, handle.ErrDegenerateFace) {
			t.Errorf("got %v, want ErrDegenerateFace", err)
		}
		if got := m.NumFaces(); got != 2 {
			t.Errorf("failed call mutated mesh: %d faces", got)
		}
		if got := m.NumVertices(); got != verts {
			t.Errorf("failed call mutated mesh: %d vertices, want %d", got, verts)
		}
	})
	t.Run("zero face normal", func(t *testing.T) {
		m := mesh.New()
		line := [3]mesh.VertexID{
			m.AddVertex(r3.Vec{}),
			m.AddVertex(r3.Vec{X: 1}),
			m.AddVertex(r3.Vec{X: 2}),
		}
		f1, err := m.AddFace(line[0], line[1], line[2])
		if err != nil {
			t.Fatal(err)
		}
		square := planarSquare(m, 2)
		f2, err := m.AddFace(square[0], square[1], square[2], square[3])
		if err != nil {
			t.Fatal(err)
		}
		p := handle.DefaultParams(f1, f2, line[0], square[0])
		if _, err := handle.MakeHandle(m, p); !errors.Is(err, handle.ErrDegenerateGeometry) {
			t.Errorf("got %v, want ErrDegenerateGeometry", err)
		}
		if got := m.NumFaces(); got != 2 {
			t.Errorf("failed call mutated mesh: %d faces", got)
		}
	})
}

func planarSquare(m *mesh.Mesh, z float64) [4]mesh.VertexID {
	return [4]mesh.VertexID{
		m.AddVertex(r3.Vec{X: -1, Y: -1, Z: z}),
		m.AddVertex(r3.Vec{X: 1, Y: -1, Z: z}),
		m.AddVertex(r3.Vec{X: 1, Y: 1, Z: z}),
		m.AddVertex(r3.Vec{X: -1, Y: 1, Z: z}),
	}
}
