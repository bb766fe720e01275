package gosiegeom

import "errors"

var (
	// ErrNoPoints is returned when a query receives an empty point set.
	ErrNoPoints = errors.New("gosiegeom: no points")

	// ErrNonFinite is returned when an input coordinate is NaN or Inf.
	ErrNonFinite = errors.New("gosiegeom: non-finite coordinate")

	// ErrDegenerate is returned when the input does not span enough
	// dimensions for the query, or a polygon cannot be triangulated.
	ErrDegenerate = errors.New("gosiegeom: degenerate input")

	// ErrConstraintCrossing is returned when a constraint edge would cross an
	// edge that is already constrained.
	ErrConstraintCrossing = errors.New("gosiegeom: constraint crosses an existing constraint")

	// ErrIndexRange is returned for vertex indices outside the input.
	ErrIndexRange = errors.New("gosiegeom: vertex index out of range")
)
