package world

import "fmt"

// Terrain types for map tiles.
type Terrain uint8

const (
	TerrainGrass    Terrain = iota // Open buildable land
	TerrainForest                  // Buildable, slower traversal
	TerrainMountain                // Impassable rock
	TerrainSand                    // Buildable coastal land
	TerrainSwamp                   // Passable, not buildable
	TerrainWater                   // Impassable
)

// TerrainName returns a display name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainGrass:
		return "grass"
	case TerrainForest:
		return "forest"
	case TerrainMountain:
		return "mountain"
	case TerrainSand:
		return "sand"
	case TerrainSwamp:
		return "swamp"
	case TerrainWater:
		return "water"
	default:
		return "unknown"
	}
}

// Buildable reports whether structures and stones may occupy the terrain.
func (t Terrain) Buildable() bool {
	switch t {
	case TerrainGrass, TerrainForest, TerrainSand:
		return true
	default:
		return false
	}
}

// Map is one facet of the shard: a named rectangular tile grid plus the
// regions registered on it.
type Map struct {
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	terrain []Terrain

	regions []*Region
}

// NewMap creates an empty map of the given dimensions, all grass.
func NewMap(name string, width, height int) *Map {
	return &Map{
		Name:    name,
		Width:   width,
		Height:  height,
		terrain: make([]Terrain, width*height),
	}
}

// InBounds reports whether the coordinate lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// TerrainAt returns the terrain at a coordinate, or water when out of bounds.
func (m *Map) TerrainAt(x, y int) Terrain {
	if !m.InBounds(x, y) {
		return TerrainWater
	}
	return m.terrain[y*m.Width+x]
}

// SetTerrain writes the terrain at a coordinate. Out-of-bounds writes are ignored.
func (m *Map) SetTerrain(x, y int, t Terrain) {
	if !m.InBounds(x, y) {
		return
	}
	m.terrain[y*m.Width+x] = t
}

// CanFit reports whether the point is a legal spot for a placed object:
// in bounds and on buildable terrain.
func (m *Map) CanFit(p Point3D) bool {
	return m.InBounds(p.X, p.Y) && m.TerrainAt(p.X, p.Y).Buildable()
}

// TerrainCounts tallies tiles per terrain type.
func TerrainCounts(m *Map) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range m.terrain {
		counts[t]++
	}
	return counts
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%s, %dx%d, regions=%d)", m.Name, m.Width, m.Height, len(m.regions))
}
