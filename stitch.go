package handle

import (
	"github.com/nhthn/blender-handle/mesh"
)

// stitchRings connects two cyclic vertex rings with a band of quads. Rings
// of unequal length are handled without resampling: the surplus vertices of
// the larger ring close onto the first vertex of the smaller ring as a
// triangle fan, which leaves a visible seam but keeps the band watertight.
func stitchRings(m *mesh.Mesh, ringA, ringB []mesh.VertexID) ([]mesh.FaceID, error) {
	if len(ringA) < len(ringB) {
		return stitchRings(m, ringB, ringA)
	}
	faces := make([]mesh.FaceID, 0, len(ringA))
	for i := 0; i < len(ringB); i++ {
		f, err := m.AddFace(
			ringA[i],
			ringA[(i+1)%len(ringA)],
			ringB[(i+1)%len(ringB)],
			ringB[i],
		)
		if err != nil {
			return faces, err
		}
		faces = append(faces, f)
	}
	for i := len(ringB); i < len(ringA); i++ {
		f, err := m.AddFace(
			ringA[i],
			ringA[(i+1)%len(ringA)],
			ringB[0],
		)
		if err != nil {
			return faces, err
		}
		faces = append(faces, f)
	}
	return faces, nil
}
