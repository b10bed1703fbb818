package handle

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Cubic Hermite basis. The handle centerline is a Hermite spline through the
// two face centroids with tangents along the face normals.

// Hermite1 is the unique cubic with f(0)=1, f(1)=0, f'(0)=f'(1)=0.
func Hermite1(t float64) float64 {
	return 2*t*t*t - 3*t*t + 1
}

// Hermite2 is the unique cubic with f(0)=f(1)=0, f'(0)=1, f'(1)=0.
func Hermite2(t float64) float64 {
	return t*t*t - 2*t*t + t
}

// Hermite1Deriv is the derivative of Hermite1.
func Hermite1Deriv(t float64) float64 {
	return 6*t*t - 6*t
}

// Hermite2Deriv is the derivative of Hermite2.
func Hermite2Deriv(t float64) float64 {
	return 3*t*t - 4*t + 1
}

// centerline is the spline the handle's cross sections are strung along.
// c1, c2 are the endpoint face centroids and n1, n2 the endpoint unit
// normals pointing away from each face into the handle; n2 is therefore the
// negated native normal of face 2, since the faces look at each other
// through the tube. weight scales the tangents and controls the bulge.
type centerline struct {
	c1, c2 r3.Vec
	n1, n2 r3.Vec
	weight float64
}

// Centroid returns the cross-section center at parameter t in [0,1].
// The mirrored h1(1-t) and the minus sign on the n2 term make the curve run
// from c1 at t=0 to c2 at t=1 with tangents w·n1 and -w·n2.
func (s centerline) Centroid(t float64) r3.Vec {
	p := r3.Scale(Hermite1(t), s.c1)
	p = r3.Add(p, r3.Scale(Hermite1(1-t), s.c2))
	p = r3.Add(p, r3.Scale(s.weight*Hermite2(t), s.n1))
	p = r3.Sub(p, r3.Scale(s.weight*Hermite2(1-t), s.n2))
	return p
}

// Normal returns the unit tangent of the centroid curve at parameter t.
// Cross sections are oriented along it so they stay roughly perpendicular
// to the centerline.
func (s centerline) Normal(t float64) r3.Vec {
	v := r3.Scale(Hermite1Deriv(t), s.c1)
	v = r3.Sub(v, r3.Scale(Hermite1Deriv(1-t), s.c2))
	v = r3.Add(v, r3.Scale(s.weight*Hermite2Deriv(t), s.n1))
	v = r3.Add(v, r3.Scale(s.weight*Hermite2Deriv(1-t), s.n2))
	return r3.Unit(v)
}
