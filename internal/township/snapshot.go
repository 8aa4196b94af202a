package township

import (
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/world"
)

// StoneSnapshot is the persistable view of a stone: every scalar the stone
// owns outright. Live world objects in the registries (placed items, NPCs,
// livestock) are owned by the world save, not the township payload; on load
// they re-register against the reconstituted stone.
type StoneSnapshot struct {
	Serial   world.Serial
	GuildID  world.Serial
	Center   world.Point3D
	Facet    string
	Extended bool
	PackedUp bool

	GoldHeld     int
	Deposits     []LedgerEntry
	Withdrawals  []LedgerEntry
	TaxSubsidy   int
	FameSubsidy  int
	FeeBreakdown []string

	ActivityLevel           ActivityLevel
	LastActualActivityLevel ActivityLevel
	WeeksAtLevel            int
	VisitorsByDay           [7]int
	LastWeekTag             int

	LawLevel        LawLevel
	Enemies         []world.Serial
	BuildingPermits []world.Serial
	Messages        []string

	NoGateIn    bool
	NoGateOut   bool
	NoRecallIn  bool
	NoRecallOut bool

	Stockpile map[items.ResourceKind]int
}

// Snapshot captures the stone's persistable state.
func (s *Stone) Snapshot() *StoneSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &StoneSnapshot{
		Serial:   s.Serial(),
		GuildID:  s.GuildID,
		Center:   s.Center,
		Extended: s.Extended,
		PackedUp: s.packedUp,

		GoldHeld:     s.goldHeld,
		Deposits:     append([]LedgerEntry(nil), s.deposits...),
		Withdrawals:  append([]LedgerEntry(nil), s.withdrawals...),
		TaxSubsidy:   s.TaxSubsidy,
		FameSubsidy:  s.FameSubsidy,
		FeeBreakdown: append([]string(nil), s.feeBreakdown...),

		ActivityLevel:           s.activityLevel,
		LastActualActivityLevel: s.lastActualActivityLevel,
		WeeksAtLevel:            s.weeksAtLevel,
		VisitorsByDay:           s.visitorsByDay,
		LastWeekTag:             s.lastWeekTag,

		LawLevel:        s.LawLevel,
		Enemies:         append([]world.Serial(nil), s.Enemies...),
		BuildingPermits: append([]world.Serial(nil), s.BuildingPermits...),
		Messages:        append([]string(nil), s.messageLog...),

		NoGateIn:    s.NoGateIn,
		NoGateOut:   s.NoGateOut,
		NoRecallIn:  s.NoRecallIn,
		NoRecallOut: s.NoRecallOut,

		Stockpile: make(map[items.ResourceKind]int, len(s.stockpile.counts)),
	}
	if s.Facet != nil {
		snap.Facet = s.Facet.Name
	}
	for kind, count := range s.stockpile.counts {
		snap.Stockpile[kind] = count
	}
	return snap
}

// RestoreStone reconstitutes a stone from its snapshot. The caller resolves
// the facet by name before calling; a packed-up stone stays off the map.
func RestoreStone(svc *Services, snap *StoneSnapshot, facet *world.Map) *Stone {
	s := NewStone(svc, nil, snap.Center, facet)
	s.Item.ID = snap.Serial
	// Fresh allocations must never collide with restored serials.
	world.SeedSerials(snap.Serial)
	s.GuildID = snap.GuildID
	s.Extended = snap.Extended

	s.goldHeld = snap.GoldHeld
	s.deposits = append([]LedgerEntry(nil), snap.Deposits...)
	s.withdrawals = append([]LedgerEntry(nil), snap.Withdrawals...)
	s.TaxSubsidy = snap.TaxSubsidy
	s.FameSubsidy = snap.FameSubsidy
	s.feeBreakdown = append([]string(nil), snap.FeeBreakdown...)

	s.activityLevel = snap.ActivityLevel
	s.lastActualActivityLevel = snap.LastActualActivityLevel
	s.weeksAtLevel = snap.WeeksAtLevel
	s.visitorsByDay = snap.VisitorsByDay
	s.lastWeekTag = snap.LastWeekTag

	s.LawLevel = snap.LawLevel
	s.Enemies = append([]world.Serial(nil), snap.Enemies...)
	s.BuildingPermits = append([]world.Serial(nil), snap.BuildingPermits...)
	s.messageLog = append([]string(nil), snap.Messages...)

	s.NoGateIn = snap.NoGateIn
	s.NoGateOut = snap.NoGateOut
	s.NoRecallIn = snap.NoRecallIn
	s.NoRecallOut = snap.NoRecallOut

	for kind, count := range snap.Stockpile {
		s.stockpile.counts[kind] = count
	}

	if snap.PackedUp {
		s.packedUp = true
		s.region.Unregister()
		s.Item.Stash()
	}

	// Extended radius affects the region footprint; rebuild after the flag
	// is set.
	if s.Extended && !snap.PackedUp {
		s.updateRegion()
	}
	return s
}
