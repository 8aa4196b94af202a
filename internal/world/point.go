// Package world provides the tile grid, terrain, maps, and the region system.
// Coordinates are flat tile coordinates (x, y) with a z elevation component.
package world

import "fmt"

// Point3D is a position on a map.
type Point3D struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Zero reports whether the point is the zero value, which no valid
// world location uses.
func (p Point3D) Zero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// String returns the point in (x, y, z) form.
func (p Point3D) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// Rect2D is an axis-aligned rectangle in tile coordinates.
// End is exclusive on both axes.
type Rect2D struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

// Point2D is a position on a map without elevation.
type Point2D struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewRect2D builds a rectangle from an origin and size.
func NewRect2D(x, y, width, height int) Rect2D {
	return Rect2D{
		Start: Point2D{X: x, Y: y},
		End:   Point2D{X: x + width, Y: y + height},
	}
}

// RectAround builds the square of the given radius centered on a point.
func RectAround(center Point3D, radius int) Rect2D {
	return NewRect2D(center.X-radius, center.Y-radius, radius*2+1, radius*2+1)
}

// Width returns the rectangle width in tiles.
func (r Rect2D) Width() int { return r.End.X - r.Start.X }

// Height returns the rectangle height in tiles.
func (r Rect2D) Height() int { return r.End.Y - r.Start.Y }

// Contains reports whether the point lies inside the rectangle.
func (r Rect2D) Contains(p Point3D) bool {
	return p.X >= r.Start.X && p.X < r.End.X && p.Y >= r.Start.Y && p.Y < r.End.Y
}

// Intersects reports whether two rectangles overlap.
func (r Rect2D) Intersects(o Rect2D) bool {
	return r.Start.X < o.End.X && o.Start.X < r.End.X &&
		r.Start.Y < o.End.Y && o.Start.Y < r.End.Y
}

// String returns the rectangle in (x, y)+(w, h) form.
func (r Rect2D) String() string {
	return fmt.Sprintf("(%d, %d)+(%d, %d)", r.Start.X, r.Start.Y, r.Width(), r.Height())
}
