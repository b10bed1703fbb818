// Package render converts meshes to triangle soup and reads and writes
// binary STL.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle.
type Triangle3 = r3.Triangle
