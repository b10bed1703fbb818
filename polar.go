package handle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// polarPoint is one cross-section vertex in radius-angle form. Theta is not
// wrapped to [0,2π): unwrapped angles let twist accumulate across a ring and
// interpolate without seams.
type polarPoint struct {
	R, Theta float64
}

// toPolar projects points onto the plane spanned by the orthonormal xAxis
// and yAxis and returns them in polar form. Angles are unwrapped so the
// returned sequence is monotonically non-decreasing, starting from a floor
// of zero, which downstream interpolation relies on. The basis must be
// orthonormal and orthogonal to the projection plane's normal.
func toPolar(points []r3.Vec, xAxis, yAxis r3.Vec) []polarPoint {
	out := make([]polarPoint, len(points))
	last := 0.0
	for i, p := range points {
		theta := math.Atan2(r3.Dot(p, yAxis), r3.Dot(p, xAxis))
		for theta < last {
			theta += 2 * math.Pi
		}
		out[i] = polarPoint{R: r3.Norm(p), Theta: theta}
		last = theta
	}
	return out
}

// fromPolar is the inverse of toPolar for the same basis, mapping polar
// points back to 3D positions in the projection plane.
func fromPolar(pp []polarPoint, xAxis, yAxis r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(pp))
	for i, p := range pp {
		dir := r3.Add(
			r3.Scale(math.Cos(p.Theta), xAxis),
			r3.Scale(math.Sin(p.Theta), yAxis),
		)
		out[i] = r3.Scale(p.R, dir)
	}
	return out
}

// untwist pulls ring b back by a full turn when its first point sits more
// than half a turn ahead of ring a's first point. Without it the handle
// picks up an unintended extra twist from the angle unwrapping. Reports
// whether the correction was applied.
func untwist(a, b []polarPoint) bool {
	if b[0].Theta-a[0].Theta > math.Pi {
		shiftAngles(b, -2*math.Pi)
		return true
	}
	return false
}

// shiftAngles adds delta to every angle of a polar cross section.
func shiftAngles(pp []polarPoint, delta float64) {
	for i := range pp {
		pp[i].Theta += delta
	}
}

// lerpPolar blends two equal-length polar cross sections componentwise at
// parameter t.
func lerpPolar(a, b []polarPoint, t float64) ([]polarPoint, error) {
	if len(a) != len(b) {
		return nil, ErrRingMismatch
	}
	out := make([]polarPoint, len(a))
	for i := range a {
		out[i] = polarPoint{
			R:     a[i].R*(1-t) + b[i].R*t,
			Theta: a[i].Theta*(1-t) + b[i].Theta*t,
		}
	}
	return out, nil
}
