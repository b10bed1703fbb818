package handle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// alignToNormal rotates every point about the origin by the minimal rotation
// that maps oldNormal onto newNormal and returns the rotated copy. When the
// normals are nearly parallel the points are returned unchanged; callers
// never ask for a deliberate 180 degree flip, which has no unique axis.
func alignToNormal(points []r3.Vec, oldNormal, newNormal r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(points))
	a := r3.Unit(oldNormal)
	b := r3.Unit(newNormal)
	axis := r3.Cross(a, b)
	if r3.Norm2(axis) < 1e-3 {
		copy(out, points)
		return out
	}
	angle := math.Atan2(r3.Norm(axis), r3.Dot(a, b))
	rot := r3.NewRotation(angle, axis)
	for i, p := range points {
		out[i] = rot.Rotate(p)
	}
	return out
}
