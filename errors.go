package handle

import "errors"

var (
	// ErrBadSegments reports a segment count below 1.
	ErrBadSegments = errors.New("segment count must be at least 1")
	// ErrVertexNotOnFace reports a start vertex that does not belong to the
	// ring of its designated face.
	ErrVertexNotOnFace = errors.New("start vertex not on face")
	// ErrDegenerateFace reports a face whose vertices are bunched so close
	// together that no edge can anchor a projection basis.
	ErrDegenerateFace = errors.New("face has no edge of usable length")
	// ErrDegenerateGeometry reports input geometry the spline cannot bridge,
	// such as coincident face centroids or a zero-length face normal.
	ErrDegenerateGeometry = errors.New("degenerate handle geometry")
	// ErrRingMismatch reports polar cross sections of unequal length. The
	// builder pads its rings before interpolating, so seeing this error
	// outside direct use of the interpolator is a bug.
	ErrRingMismatch = errors.New("cross section lengths differ")
)
