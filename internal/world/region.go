// Regions — named rectangular areas registered on a map, with guard and
// priority semantics. Custom region behavior hangs off the Controller hook.
package world

import "sort"

// RegionController customizes region behavior. Implementations override the
// defaults for murder accounting and item accessibility inside the region.
type RegionController interface {
	// OnEnter is called when a mobile identified by serial enters the region.
	OnEnter(serial Serial)
	// OnExit is called when a mobile identified by serial leaves the region.
	OnExit(serial Serial)
}

// Region is a rectangular area registered on a map. Higher priority regions
// shadow lower ones when several cover the same tile.
type Region struct {
	Name     string  `json:"name"`
	Map      *Map    `json:"-"`
	Area     []Rect2D `json:"area"`
	Priority int     `json:"priority"`
	Guarded  bool    `json:"guarded"`

	Controller RegionController `json:"-"`

	registered bool
}

// NewRegion creates an unregistered region covering the given area.
func NewRegion(name string, m *Map, priority int, area ...Rect2D) *Region {
	return &Region{
		Name:     name,
		Map:      m,
		Area:     area,
		Priority: priority,
	}
}

// Contains reports whether the point lies inside any of the region's rects.
func (r *Region) Contains(p Point3D) bool {
	for _, rect := range r.Area {
		if rect.Contains(p) {
			return true
		}
	}
	return false
}

// Registered reports whether the region is currently live on its map.
func (r *Region) Registered() bool {
	return r.registered
}

// Register adds the region to its map's region list. Registering twice is a
// no-op.
func (r *Region) Register() {
	if r.Map == nil || r.registered {
		return
	}
	r.Map.regions = append(r.Map.regions, r)
	sort.SliceStable(r.Map.regions, func(i, j int) bool {
		return r.Map.regions[i].Priority > r.Map.regions[j].Priority
	})
	r.registered = true
}

// Unregister removes the region from its map.
func (r *Region) Unregister() {
	if r.Map == nil || !r.registered {
		return
	}
	for i, reg := range r.Map.regions {
		if reg == r {
			r.Map.regions = append(r.Map.regions[:i], r.Map.regions[i+1:]...)
			break
		}
	}
	r.registered = false
}

// FindRegion returns the highest-priority region containing the point, or nil.
func FindRegion(m *Map, p Point3D) *Region {
	if m == nil {
		return nil
	}
	for _, r := range m.regions {
		if r.Contains(p) {
			return r
		}
	}
	return nil
}

// FindRegionsIntersecting returns every registered region whose area overlaps
// the given rectangle.
func FindRegionsIntersecting(m *Map, rect Rect2D) []*Region {
	if m == nil {
		return nil
	}
	var out []*Region
	for _, r := range m.regions {
		for _, a := range r.Area {
			if a.Intersects(rect) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
