package township

import "testing"

func TestActualActivityForIsPure(t *testing.T) {
	settings := DefaultSettings()

	cases := []struct {
		visitors int
		want     ActivityLevel
	}{
		{0, ActivityNone},
		{19, ActivityNone},
		{20, ActivityLow},
		{39, ActivityLow},
		{40, ActivityMedium},
		{80, ActivityHigh},
		{119, ActivityHigh},
		{120, ActivityBooming},
		{100_000, ActivityBooming},
	}
	for _, tc := range cases {
		got := ActualActivityFor(settings, tc.visitors)
		if got != tc.want {
			t.Fatalf("ActualActivityFor(%d) = %s, want %s", tc.visitors, ActivityName(got), ActivityName(tc.want))
		}
		// Recomputing on the same inputs yields the same result.
		if again := ActualActivityFor(settings, tc.visitors); again != got {
			t.Fatalf("ActualActivityFor(%d) not idempotent: %s then %s", tc.visitors, ActivityName(got), ActivityName(again))
		}
	}
}

func TestRatchetNeverDecreases(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	weeks := []int{25, 25, 50, 50, 0, 0, 90, 3, 90, 90, 150, 0, 0, 150, 150, 150, 0}
	prev := s.ActivityLevel()
	for i, visitors := range weeks {
		s.evaluateWeek(visitors)
		if s.ActivityLevel() < prev {
			t.Fatalf("week %d (%d visitors): ratchet fell from %s to %s",
				i, visitors, ActivityName(prev), ActivityName(s.ActivityLevel()))
		}
		prev = s.ActivityLevel()
		if want := ActualActivityFor(e.svc.Settings, visitors); s.LastActualActivityLevel() != want {
			t.Fatalf("week %d: actual = %s, want %s",
				i, ActivityName(s.LastActualActivityLevel()), ActivityName(want))
		}
	}
}

func TestPromotionToLowIsImmediate(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	s.evaluateWeek(20)
	if s.ActivityLevel() != ActivityLow {
		t.Fatalf("one qualifying week: level = %s, want low", ActivityName(s.ActivityLevel()))
	}
}

func TestConsecutiveWeekCounterResetsOnMiss(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.activityLevel = ActivityMedium // Promotion to high requires 2 consecutive weeks

	for i, visitors := range []int{100, 5, 100, 100} {
		s.evaluateWeek(visitors)
		if s.ActivityLevel() != ActivityMedium {
			t.Fatalf("after week %d: level = %s, want medium (miss must reset the counter)",
				i, ActivityName(s.ActivityLevel()))
		}
	}

	// The third consecutive qualifying week completes the requirement.
	s.evaluateWeek(100)
	if s.ActivityLevel() != ActivityHigh {
		t.Fatalf("after three consecutive qualifying weeks: level = %s, want high",
			ActivityName(s.ActivityLevel()))
	}
}

func TestUpdateActivityHonorsWeekBoundary(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	visit := func(n int) {
		for i := 0; i < n; i++ {
			s.CountVisitor(e.member("visitor"))
		}
	}

	// First run establishes the week tag without evaluating an empty week.
	s.UpdateActivity()
	visit(30)

	// Same ISO week: nothing is evaluated.
	s.UpdateActivity()
	if s.ActivityLevel() != ActivityNone {
		t.Fatalf("mid-week update evaluated: level = %s", ActivityName(s.ActivityLevel()))
	}

	e.advanceWeeks(1)
	s.UpdateActivity()
	if s.ActivityLevel() != ActivityLow {
		t.Fatalf("after week boundary: level = %s, want low", ActivityName(s.ActivityLevel()))
	}
	if s.VisitorsThisWeek() != 0 {
		t.Fatalf("visitor counts not reset: %d", s.VisitorsThisWeek())
	}
}

func TestCountVisitorDedupesPerDay(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	m := e.member("regular")

	s.CountVisitor(m)
	s.CountVisitor(m)
	if s.VisitorsThisWeek() != 1 {
		t.Fatalf("visitor counted %d times in one day", s.VisitorsThisWeek())
	}
}
