package township

import (
	"log/slog"
	"time"

	"github.com/grimholt/townshard/internal/world"
)

// ActualActivityFor returns the highest tier whose weekly visitor threshold
// the given count meets. Pure: no stone state involved.
func ActualActivityFor(settings *Settings, visitors int) ActivityLevel {
	level := ActivityNone
	for _, tier := range []ActivityLevel{ActivityLow, ActivityMedium, ActivityHigh, ActivityBooming} {
		if visitors >= settings.Threshold(tier) {
			level = tier
		}
	}
	return level
}

// ActivityLevel returns the ratcheted activity level. It never decreases over
// the stone's lifetime; a township that once reached a tier keeps that tier's
// privileges.
func (s *Stone) ActivityLevel() ActivityLevel { return s.activityLevel }

// LastActualActivityLevel returns the activity level actually earned last
// week, which drives fee multipliers. Unlike the ratchet, it can fall.
func (s *Stone) LastActualActivityLevel() ActivityLevel { return s.lastActualActivityLevel }

// WeeksAtLevel returns the consecutive qualifying weeks counted toward the
// next promotion.
func (s *Stone) WeeksAtLevel() int { return s.weeksAtLevel }

// weekTag identifies an ISO week for boundary detection.
func weekTag(t time.Time) int {
	year, week := t.ISOWeek()
	return year*100 + week
}

// UpdateActivity runs the weekly activity recalculation if a week boundary
// has passed since the last run (or on first run). Evaluated once per elapsed
// week:
//   - the actual level is recomputed fresh from this week's visitors;
//   - the ratcheted level promotes one tier when this week met the next
//     tier's threshold for enough consecutive weeks;
//   - missing the next tier's threshold resets the consecutive-week counter.
func (s *Stone) UpdateActivity() {
	now := s.svc.Now()
	tag := weekTag(now)
	if s.lastWeekTag == tag {
		return // Same ISO week; nothing to evaluate yet
	}
	firstRun := s.lastWeekTag == 0
	s.lastWeekTag = tag
	if firstRun && s.VisitorsThisWeek() == 0 {
		return // Newly placed stone with no traffic yet
	}

	visitors := s.VisitorsThisWeek()
	s.evaluateWeek(visitors)

	// Start the new week's counts fresh.
	s.visitorsByDay = [7]int{}
	s.visitorsToday = make(map[world.Serial]struct{})
}

// evaluateWeek applies one week's visitor total to the state machine.
func (s *Stone) evaluateWeek(visitors int) {
	settings := s.svc.Settings

	s.lastActualActivityLevel = ActualActivityFor(settings, visitors)

	next := s.activityLevel
	if next < ActivityBooming {
		next++
	}

	if visitors >= settings.Threshold(next) && s.activityLevel < ActivityBooming {
		// Qualifying week for the next tier.
		if s.weeksAtLevel >= settings.WeeksRequired(next) {
			old := s.activityLevel
			s.activityLevel = next
			s.weeksAtLevel = 0
			slog.Info("township activity promoted",
				"serial", s.Serial(),
				"from", ActivityName(old),
				"to", ActivityName(next),
				"visitors", visitors,
			)
			s.RecordMessage("The township has grown to " + ActivityName(next) + " activity.")
		} else {
			s.weeksAtLevel++
		}
	} else {
		// Missed the threshold: no partial credit carries across a miss.
		s.weeksAtLevel = 0
	}
}
