package mesh

import "gonum.org/v1/gonum/spatial/r3"

// CubeFace names one of the six quad faces returned by Cube.
type CubeFace int

const (
	CubeBottom CubeFace = iota // -Z
	CubeTop                    // +Z
	CubeFront                  // -Y
	CubeRight                  // +X
	CubeBack                   // +Y
	CubeLeft                   // -X
)

// Cube builds an axis-aligned cube of the given side length centered at the
// origin. All six faces are quads wound so their normals point outward.
func Cube(side float64) (*Mesh, [6]FaceID) {
	h := side / 2
	m := New()
	v := [8]VertexID{
		m.AddVertex(r3.Vec{X: -h, Y: -h, Z: -h}),
		m.AddVertex(r3.Vec{X: h, Y: -h, Z: -h}),
		m.AddVertex(r3.Vec{X: h, Y: h, Z: -h}),
		m.AddVertex(r3.Vec{X: -h, Y: h, Z: -h}),
		m.AddVertex(r3.Vec{X: -h, Y: -h, Z: h}),
		m.AddVertex(r3.Vec{X: h, Y: -h, Z: h}),
		m.AddVertex(r3.Vec{X: h, Y: h, Z: h}),
		m.AddVertex(r3.Vec{X: -h, Y: h, Z: h}),
	}
	var faces [6]FaceID
	for i, ring := range [6][4]VertexID{
		CubeBottom: {v[0], v[3], v[2], v[1]},
		CubeTop:    {v[4], v[5], v[6], v[7]},
		CubeFront:  {v[0], v[1], v[5], v[4]},
		CubeRight:  {v[1], v[2], v[6], v[5]},
		CubeBack:   {v[2], v[3], v[7], v[6]},
		CubeLeft:   {v[3], v[0], v[4], v[7]},
	} {
		// AddFace cannot fail here: all vertices exist.
		faces[i], _ = m.AddFace(ring[0], ring[1], ring[2], ring[3])
	}
	return m, faces
}
