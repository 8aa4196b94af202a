package world

import "testing"

func TestRectAround(t *testing.T) {
	r := RectAround(Point3D{X: 100, Y: 100}, 7)
	if r.Width() != 15 || r.Height() != 15 {
		t.Fatalf("rect = %dx%d, want 15x15", r.Width(), r.Height())
	}
	if !r.Contains(Point3D{X: 93, Y: 107}) {
		t.Fatal("corner inside radius excluded")
	}
	if r.Contains(Point3D{X: 92, Y: 100}) {
		t.Fatal("point beyond radius included")
	}
}

func TestFindRegionHonorsPriority(t *testing.T) {
	m := NewMap("test", 64, 64)
	area := NewRect2D(10, 10, 20, 20)

	low := NewRegion("wilds", m, 1, area)
	high := NewRegion("township", m, 10, area)
	low.Register()
	high.Register()

	got := FindRegion(m, Point3D{X: 15, Y: 15})
	if got != high {
		t.Fatalf("FindRegion = %v, want the higher priority region", got)
	}

	high.Unregister()
	if got := FindRegion(m, Point3D{X: 15, Y: 15}); got != low {
		t.Fatalf("FindRegion after unregister = %v, want the low region", got)
	}
	if high.Registered() {
		t.Fatal("unregistered region still reports registered")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	m := NewMap("test", 64, 64)
	r := NewRegion("township", m, 5, NewRect2D(0, 0, 8, 8))
	r.Register()
	r.Register()
	if got := len(FindRegionsIntersecting(m, NewRect2D(0, 0, 8, 8))); got != 1 {
		t.Fatalf("region registered %d times", got)
	}
}
