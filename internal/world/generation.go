// Map generation using layered simplex noise. Produces elevation and
// moisture fields, then derives tile terrain for a fresh shard facet.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Name        string  // Facet name
	Width       int     // Map width in tiles
	Height      int     // Map height in tiles
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for water (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Name:        "Avalor",
		Width:       1024,
		Height:      1024,
		Seed:        0,
		SeaLevel:    0.28,
		MountainLvl: 0.74,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration and tests.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Name:        "Proving Grounds",
		Width:       256,
		Height:      256,
		Seed:        42,
		SeaLevel:    0.30,
		MountainLvl: 0.78,
	}
}

// Generate creates a complete map with terrain derived from noise fields.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Independent noise layers for elevation and moisture.
	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	m := NewMap(cfg.Name, cfg.Width, cfg.Height)

	halfW := float64(cfg.Width) / 2
	halfH := float64(cfg.Height) / 2

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx := float64(x)
			fy := float64(y)

			// Multi-octave noise for natural-looking terrain.
			elev := octaveNoise(elevNoise, fx, fy, 4, 0.008, 0.5)
			moist := octaveNoise(moistNoise, fx, fy, 3, 0.006, 0.5)

			// Continental shaping: elevation falls off toward map edges so the
			// facet is ringed by ocean.
			nx := (fx - halfW) / halfW
			ny := (fy - halfH) / halfH
			dist := math.Sqrt(nx*nx + ny*ny)
			falloff := 1.0 - math.Pow(dist, 3.0)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			m.SetTerrain(x, y, deriveTerrain(elev, moist, cfg))
		}
	}

	markShoreline(m)

	return m
}

// octaveNoise samples layered noise with decreasing amplitude per octave.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	var total, amplitude, maxValue float64
	amplitude = 1.0
	f := freq

	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*f, y*f) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		f *= 2
	}

	return total / maxValue
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, moist float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainWater
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if moist > 0.72 && elev < 0.45 {
		return TerrainSwamp
	}
	if moist > 0.5 {
		return TerrainForest
	}
	return TerrainGrass
}

// markShoreline converts low land tiles adjacent to water into sand.
func markShoreline(m *Map) {
	var marks []Point2D

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.TerrainAt(x, y)
			if t == TerrainWater || t == TerrainMountain {
				continue
			}
			for _, d := range [4]Point2D{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				if m.TerrainAt(x+d.X, y+d.Y) == TerrainWater {
					marks = append(marks, Point2D{X: x, Y: y})
					break
				}
			}
		}
	}

	for _, p := range marks {
		m.SetTerrain(p.X, p.Y, TerrainSand)
	}
}
