// Homestead plot placement — scores buildable land and seeds house plots for
// a fresh shard facet.
package world

import (
	"math/rand"
	"sort"
)

// Plot holds the parameters of one candidate house footprint.
type Plot struct {
	Location Point3D
	Size     PlotSize
	Score    float64 // Desirability score
}

// PlotSize categorizes house footprint scale.
type PlotSize uint8

const (
	PlotSmall PlotSize = iota // 8x8 cottages and tents
	PlotMedium                // 12x12 villas
	PlotLarge                 // 18x18 towers and keeps
)

// Footprint returns the side length in tiles for a plot size.
func (s PlotSize) Footprint() int {
	switch s {
	case PlotMedium:
		return 12
	case PlotLarge:
		return 18
	default:
		return 8
	}
}

// PlaceHomesteadPlots finds suitable locations for seeded houses on the map.
// Returns plots sorted by desirability, spaced so footprints never touch.
func PlaceHomesteadPlots(m *Map, seed int64, count int) []Plot {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		p     Point3D
		score float64
	}
	var candidates []scored

	// Sample the grid rather than scoring every tile; plots never need
	// single-tile precision.
	for y := 8; y < m.Height-8; y += 4 {
		for x := 8; x < m.Width-8; x += 4 {
			s := plotScore(m, x, y)
			if s > 0 {
				candidates = append(candidates, scored{Point3D{X: x, Y: y}, s})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var plots []Plot
	minDist := 24

	for _, c := range candidates {
		if len(plots) >= count {
			break
		}
		if tooClose(c.p, plots, minDist) {
			continue
		}
		size := PlotSmall
		switch rng.Intn(4) {
		case 0:
			size = PlotLarge
		case 1, 2:
			size = PlotMedium
		}
		plots = append(plots, Plot{Location: c.p, Size: size, Score: c.score})
	}

	return plots
}

// plotScore evaluates how desirable a tile is for a house footprint.
// Prefers open grass with buildable surroundings; shoreline is a bonus.
func plotScore(m *Map, x, y int) float64 {
	score := 0.0

	switch m.TerrainAt(x, y) {
	case TerrainGrass:
		score += 3.0
	case TerrainSand:
		score += 2.0
	case TerrainForest:
		score += 1.0
	default:
		return 0
	}

	// All tiles of the largest footprint must be buildable.
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			if !m.TerrainAt(x+dx, y+dy).Buildable() {
				return 0
			}
		}
	}

	// Coastal proximity bonus.
	for _, d := range [4]Point2D{{8, 0}, {-8, 0}, {0, 8}, {0, -8}} {
		if m.TerrainAt(x+d.X, y+d.Y) == TerrainSand {
			score += 0.5
			break
		}
	}

	return score
}

// tooClose reports whether a point is within minDist (Chebyshev) of an
// existing plot.
func tooClose(p Point3D, plots []Plot, minDist int) bool {
	for _, existing := range plots {
		dx := p.X - existing.Location.X
		if dx < 0 {
			dx = -dx
		}
		dy := p.Y - existing.Location.Y
		if dy < 0 {
			dy = -dy
		}
		if dx < minDist && dy < minDist {
			return true
		}
	}
	return false
}
