package regioncount

import "errors"

var (
	// ErrBadPolygon is returned when a region polygon has fewer than 3 vertices.
	ErrBadPolygon = errors.New("region polygon needs at least 3 vertices")

	// ErrNoRegions is returned when a region set is built with no regions at all.
	ErrNoRegions = errors.New("region set needs at least one region")

	// ErrAlreadyAssigned is returned when an identity with a frozen region
	// assignment is assigned again. Correct orchestration never triggers it.
	ErrAlreadyAssigned = errors.New("identity already assigned to a region")
)
