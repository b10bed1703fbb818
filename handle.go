// Package handle generates a smooth tubular bridge between two polygonal
// faces of a mesh. The tube's cross sections are interpolated between the
// two face rings in polar form along a cubic Hermite centerline, with a
// weight parameter controlling the bulge and a twist count controlling how
// the tube spirals.
package handle

import (
	"fmt"
	"math"

	"github.com/nhthn/blender-handle/internal/d3"
	"github.com/nhthn/blender-handle/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// minEdgeLength is the shortest edge usable as projection basis x-axis.
const minEdgeLength = 1e-10

// Params configures one handle between two faces of a mesh.
type Params struct {
	// Face1 and Face2 are the faces to bridge. Both are consumed: their
	// interiors are deleted and replaced by the tube, their boundary rings
	// become the tube's end cross sections.
	Face1, Face2 mesh.FaceID
	// Vertex1 and Vertex2 pick the starting corner of each ring. They must
	// lie on their respective faces and control which corners of the two
	// rings line up across the tube.
	Vertex1, Vertex2 mesh.VertexID
	// Segments is the number of quad bands along the tube, at least 1.
	// Segments-1 interior cross sections are generated.
	Segments int
	// Weight scales how far the tube bulges out along the face normals
	// before turning toward the other face. Unrestricted; negative values
	// push the tube through the faces.
	Weight float64
	// Twists adds full extra rotations to the far cross section so the
	// tube spirals. May be negative.
	Twists int
}

// DefaultParams returns Params with the interactive defaults: 10 segments,
// weight 10 and no twist.
func DefaultParams(face1, face2 mesh.FaceID, vertex1, vertex2 mesh.VertexID) Params {
	return Params{
		Face1:    face1,
		Face2:    face2,
		Vertex1:  vertex1,
		Vertex2:  vertex2,
		Segments: 10,
		Weight:   10,
	}
}

// Result lists the mesh elements a handle created, in creation order.
type Result struct {
	// Vertices are the interior ring vertices, ring by ring from face 1
	// toward face 2.
	Vertices []mesh.VertexID
	// Faces are the stitched quads and triangles, band by band.
	Faces []mesh.FaceID
}

// MakeHandle bridges the two faces in p with a tube of p.Segments quad
// bands. All validation and geometry runs before the first mesh mutation,
// so an error before stitching leaves the mesh untouched; an error from the
// mesh itself mid-stitch is reported with whatever was built so far in the
// Result. The two input faces are deleted last, boundary preserving.
func MakeHandle(m *mesh.Mesh, p Params) (Result, error) {
	if p.Segments < 1 {
		return Result{}, fmt.Errorf("segments=%d: %w", p.Segments, ErrBadSegments)
	}

	ring1, err := m.Face(p.Face1)
	if err != nil {
		return Result{}, fmt.Errorf("face 1: %w", err)
	}
	ring2, err := m.Face(p.Face2)
	if err != nil {
		return Result{}, fmt.Errorf("face 2: %w", err)
	}

	// Ring 2 runs opposite to its native winding so that, with its normal
	// negated below, the stitched tube winds outward consistently.
	reverseRing(ring2)

	i1 := indexOf(ring1, p.Vertex1)
	if i1 < 0 {
		return Result{}, fmt.Errorf("vertex %d, face %d: %w", p.Vertex1, p.Face1, ErrVertexNotOnFace)
	}
	i2 := indexOf(ring2, p.Vertex2)
	if i2 < 0 {
		return Result{}, fmt.Errorf("vertex %d, face %d: %w", p.Vertex2, p.Face2, ErrVertexNotOnFace)
	}
	ring1 = rotateRing(ring1, i1)
	ring2 = rotateRing(ring2, i2)

	n1, err := m.FaceNormal(p.Face1)
	if err != nil {
		return Result{}, fmt.Errorf("face 1: %w", err)
	}
	n2raw, err := m.FaceNormal(p.Face2)
	if err != nil {
		return Result{}, fmt.Errorf("face 2: %w", err)
	}
	n2 := r3.Scale(-1, n2raw) // outward normal: the faces look at each other.
	if r3.Norm2(n1) == 0 || r3.Norm2(n2) == 0 {
		return Result{}, fmt.Errorf("zero face normal: %w", ErrDegenerateGeometry)
	}
	c1, err := m.FaceCentroid(p.Face1)
	if err != nil {
		return Result{}, fmt.Errorf("face 1: %w", err)
	}
	c2, err := m.FaceCentroid(p.Face2)
	if err != nil {
		return Result{}, fmt.Errorf("face 2: %w", err)
	}

	displacement := r3.Sub(c2, c1)
	if r3.Norm2(displacement) < minEdgeLength*minEdgeLength {
		return Result{}, fmt.Errorf("coincident face centroids: %w", ErrDegenerateGeometry)
	}

	// Centroid-relative local frames.
	points1 := relativeTo(m, ring1, c1)
	points2 := relativeTo(m, ring2, c2)

	// Pad the shorter ring by repeating its first point so every interior
	// cross section shares one vertex count. The duplicates collapse to
	// zero-length edges rather than resampling the polygon.
	for len(points1) < len(points2) {
		points1 = append(points1, points1[0])
	}
	for len(points2) < len(points1) {
		points2 = append(points2, points2[0])
	}

	// Rotate both polygons into the plane orthogonal to the line between
	// the centroids. That plane hosts the shared 2D basis both cross
	// sections are compared in.
	planeNormal := r3.Unit(displacement)
	aligned1 := alignToNormal(points1, n1, planeNormal)
	aligned2 := alignToNormal(points2, n2, planeNormal)

	xAxis, err := basisFromRing(aligned1)
	if err != nil {
		return Result{}, fmt.Errorf("face %d: %w", p.Face1, err)
	}
	yAxis := r3.Cross(planeNormal, xAxis)

	polar1 := toPolar(aligned1, xAxis, yAxis)
	polar2 := toPolar(aligned2, xAxis, yAxis)

	untwist(polar1, polar2)
	if p.Twists != 0 {
		shiftAngles(polar2, 2*math.Pi*float64(p.Twists))
	}

	// Compute every interior cross section before touching the mesh so
	// degenerate spline output is caught while the mesh is still pristine.
	spline := centerline{c1: c1, c2: c2, n1: n1, n2: n2, weight: p.Weight}
	sections := make([][]r3.Vec, 0, p.Segments-1)
	for i := 1; i < p.Segments; i++ {
		t := float64(i) / float64(p.Segments)
		centroid := spline.Centroid(t)
		normal := spline.Normal(t)
		if !d3.IsFinite(centroid) || !d3.IsFinite(normal) {
			return Result{}, fmt.Errorf("cross section %d of %d not finite: %w", i, p.Segments, ErrDegenerateGeometry)
		}
		section, err := lerpPolar(polar1, polar2, t)
		if err != nil {
			return Result{}, err
		}
		points := fromPolar(section, xAxis, yAxis)
		points = alignToNormal(points, planeNormal, normal)
		for j := range points {
			points[j] = r3.Add(points[j], centroid)
		}
		sections = append(sections, points)
	}

	// Materialize interior rings. The endpoint rings alias the original
	// face vertices; every interior ring owns fresh vertices.
	var res Result
	rings := make([][]mesh.VertexID, 0, p.Segments+1)
	rings = append(rings, ring1)
	for _, section := range sections {
		ring := make([]mesh.VertexID, len(section))
		for j, pt := range section {
			ring[j] = m.AddVertex(pt)
		}
		res.Vertices = append(res.Vertices, ring...)
		rings = append(rings, ring)
	}
	rings = append(rings, ring2)

	for i := 0; i+1 < len(rings); i++ {
		faces, err := stitchRings(m, rings[i], rings[i+1])
		res.Faces = append(res.Faces, faces...)
		if err != nil {
			return res, fmt.Errorf("stitching band %d: %w", i, err)
		}
	}

	if err := m.DeleteFace(p.Face1); err != nil {
		return res, fmt.Errorf("deleting face 1: %w", err)
	}
	if err := m.DeleteFace(p.Face2); err != nil {
		return res, fmt.Errorf("deleting face 2: %w", err)
	}
	return res, nil
}

// basisFromRing returns the direction of the first ring edge of usable
// length, scanning the edge into each vertex from its predecessor.
func basisFromRing(ring []r3.Vec) (r3.Vec, error) {
	for i := range ring {
		edge := r3.Sub(ring[(i-1+len(ring))%len(ring)], ring[i])
		if r3.Norm(edge) >= minEdgeLength {
			return r3.Unit(edge), nil
		}
	}
	return r3.Vec{}, ErrDegenerateFace
}

func indexOf(ring []mesh.VertexID, v mesh.VertexID) int {
	for i, r := range ring {
		if r == v {
			return i
		}
	}
	return -1
}

// rotateRing cyclically shifts ring so index n becomes index 0.
func rotateRing(ring []mesh.VertexID, n int) []mesh.VertexID {
	return append(ring[n:len(ring):len(ring)], ring[:n]...)
}

func reverseRing(ring []mesh.VertexID) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}

func relativeTo(m *mesh.Mesh, ring []mesh.VertexID, origin r3.Vec) []r3.Vec {
	pts := make([]r3.Vec, len(ring))
	for i, v := range ring {
		pts[i] = r3.Sub(m.Vertex(v), origin)
	}
	return pts
}
