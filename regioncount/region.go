package regioncount

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Region is a fixed polygon zone with a 1-based index. Immutable after
// construction.
type Region struct {
	index int
	ring  orb.Ring
}

// NewRegion builds a region from an ordered vertex list. The polygon may be
// non-convex. Fewer than 3 vertices is a configuration error.
func NewRegion(index int, vertices []Point) (Region, error) {
	if len(vertices) < 3 {
		return Region{}, errors.Wrapf(ErrBadPolygon, "region %d has %d vertices", index, len(vertices))
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	// orb rings are closed
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return Region{
		index: index,
		ring:  ring,
	}, nil
}

// Index returns the region's 1-based priority index.
func (r Region) Index() int {
	return r.index
}

// Contains reports whether the point lies inside the region polygon.
func (r Region) Contains(p Point) bool {
	return planar.RingContains(r.ring, orb.Point{p.X, p.Y})
}

// Vertices returns a copy of the region's closed vertex ring, for overlay
// rendering by presentation collaborators.
func (r Region) Vertices() []Point {
	out := make([]Point, len(r.ring))
	for i, p := range r.ring {
		out[i] = Point{X: p[0], Y: p[1]}
	}
	return out
}

// RegionSet holds regions in priority order: when a point lies inside more
// than one region, the first region in construction order wins.
type RegionSet struct {
	regions []Region
}

// NewRegionSet builds a region set from polygons given in priority order.
// Region indices are assigned 1..N by position.
func NewRegionSet(polygons ...[]Point) (*RegionSet, error) {
	if len(polygons) == 0 {
		return nil, ErrNoRegions
	}
	regions := make([]Region, len(polygons))
	for i, vertices := range polygons {
		region, err := NewRegion(i+1, vertices)
		if err != nil {
			return nil, err
		}
		regions[i] = region
	}
	return &RegionSet{regions: regions}, nil
}

// Locate returns the index of the first region containing the point, or 0
// when no region contains it.
func (s *RegionSet) Locate(p Point) int {
	for _, region := range s.regions {
		if region.Contains(p) {
			return region.index
		}
	}
	return 0
}

// Len returns the number of regions.
func (s *RegionSet) Len() int {
	return len(s.regions)
}

// Regions returns the regions in priority order.
func (s *RegionSet) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}
