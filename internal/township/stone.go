package township

import (
	"log/slog"
	"sync"
	"time"

	"github.com/grimholt/townshard/internal/guilds"
	"github.com/grimholt/townshard/internal/housing"
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/oplog"
	"github.com/grimholt/townshard/internal/world"
)

// Services bundles the collaborators every stone needs. The shard builds one
// Services value and hands it to stones at creation; nothing here is global.
type Services struct {
	Settings *Settings
	Guilds   *guilds.Registry
	Houses   *housing.Index
	Registry *Registry
	Log      *oplog.Logger

	// Clock supplies the shard's in-game wall time. Injectable for tests.
	Clock func() time.Time
}

// Now returns the current shard time.
func (s *Services) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Stone is the root aggregate for one township: a persisted world item
// anchoring the claimed region, its economy, and its registries.
type Stone struct {
	mu sync.Mutex

	Item *items.Item

	GuildID world.Serial
	Center  world.Point3D
	Facet   *world.Map
	Extended bool

	// Economy.
	goldHeld    int
	deposits    []LedgerEntry
	withdrawals []LedgerEntry
	TaxSubsidy  int // Banked half-gold units
	FameSubsidy int // Banked fame points
	feeBreakdown []string

	// Activity.
	activityLevel           ActivityLevel // Ratcheted; never decreases
	lastActualActivityLevel ActivityLevel // Recomputed fresh each week
	weeksAtLevel            int           // Consecutive qualifying weeks
	visitorsByDay           [7]int
	visitorsToday           map[world.Serial]struct{}
	lastWeekTag             int // year*100+ISOweek of the last weekly update, 0 = never
	fameVisitsToday         int

	// Governance.
	LawLevel        LawLevel
	Enemies         []world.Serial
	BuildingPermits []world.Serial
	messageLog      []string

	// Travel restrictions.
	NoGateIn    bool
	NoGateOut   bool
	NoRecallIn  bool
	NoRecallOut bool

	// Registries.
	itemRegistry map[world.Serial]*ItemRecord
	lockdowns    map[world.Serial]*LockdownRecord
	npcs         []*PlacedNPC
	livestock    map[*mobiles.Creature]world.Serial

	stockpile *Stockpile

	region *Region

	packedUp bool
	deleted  bool

	svc *Services
}

// NewStone creates a township stone for a guild at the given center and
// registers it with the instance registry and the region system.
func NewStone(svc *Services, guild *guilds.Guild, center world.Point3D, facet *world.Map) *Stone {
	s := &Stone{
		Item:          items.NewItem("a township stone"),
		Center:        center,
		Facet:         facet,
		visitorsToday: make(map[world.Serial]struct{}),
		itemRegistry:  make(map[world.Serial]*ItemRecord),
		lockdowns:     make(map[world.Serial]*LockdownRecord),
		livestock:     make(map[*mobiles.Creature]world.Serial),
		svc:           svc,
	}
	s.Item.Movable = false
	s.Item.Loc = center
	s.Item.Facet = facet
	s.stockpile = NewStockpile(s)
	if guild != nil {
		s.GuildID = guild.ID
	}

	s.region = newRegion(s)
	s.region.Register()

	if svc.Registry != nil {
		svc.Registry.Register(s)
	}
	slog.Info("township placed", "serial", s.Item.ID, "guild", s.GuildID, "center", center.String())
	return s
}

// Serial returns the stone's world serial.
func (s *Stone) Serial() world.Serial { return s.Item.ID }

// Deleted reports whether the stone has been destroyed.
func (s *Stone) Deleted() bool { return s.deleted }

// PackedUp reports whether the township is currently in packed-up state.
func (s *Stone) PackedUp() bool { return s.packedUp }

// Guild resolves the owning guild, or nil if it has disbanded.
func (s *Stone) Guild() *guilds.Guild {
	if s.svc.Guilds == nil {
		return nil
	}
	g := s.svc.Guilds.Find(s.GuildID)
	if g.Disbanded() {
		return nil
	}
	return g
}

// Radius returns the claimed radius in tiles.
func (s *Stone) Radius() int {
	if s.Extended {
		return RadiusExtended
	}
	return RadiusStandard
}

// Bounds returns the claimed rectangle.
func (s *Stone) Bounds() world.Rect2D {
	return world.RectAround(s.Center, s.Radius())
}

// Region returns the stone's live region binding.
func (s *Stone) Region() *Region { return s.region }

// Contains reports whether the point lies inside the claimed area.
func (s *Stone) Contains(p world.Point3D, facet *world.Map) bool {
	return facet == s.Facet && s.Bounds().Contains(p)
}

// SetExtended switches the claimed radius and rebuilds the region binding.
func (s *Stone) SetExtended(extended bool) {
	if s.Extended == extended {
		return
	}
	s.Extended = extended
	s.updateRegion()
}

// MoveCenter relocates the stone and rebuilds the region binding.
func (s *Stone) MoveCenter(center world.Point3D, facet *world.Map) {
	s.Center = center
	s.Facet = facet
	s.Item.Loc = center
	s.Item.Facet = facet
	s.updateRegion()
}

// updateRegion atomically swaps the region binding: the old region is
// unregistered only after the replacement is fully built.
func (s *Stone) updateRegion() {
	next := newRegion(s)
	old := s.region
	s.region = next
	if old != nil {
		old.Unregister()
	}
	next.Register()
}

// RecordMessage appends to the bounded rolling message log.
func (s *Stone) RecordMessage(text string) {
	s.messageLog = append(s.messageLog, text)
	if len(s.messageLog) > MessageLogCap {
		s.messageLog = s.messageLog[len(s.messageLog)-MessageLogCap:]
	}
}

// MessageLog returns the rolling message log, oldest first.
func (s *Stone) MessageLog() []string { return s.messageLog }

// IsEnemy reports whether the mobile is on the township enemy list.
func (s *Stone) IsEnemy(m *mobiles.Mobile) bool {
	if m == nil {
		return false
	}
	for _, id := range s.Enemies {
		if id == m.ID {
			return true
		}
	}
	return false
}

// AddEnemy puts a mobile on the enemy list.
func (s *Stone) AddEnemy(m *mobiles.Mobile) {
	if m == nil || s.IsEnemy(m) {
		return
	}
	s.Enemies = append(s.Enemies, m.ID)
}

// RemoveEnemy clears a mobile from the enemy list.
func (s *Stone) RemoveEnemy(m *mobiles.Mobile) {
	for i, id := range s.Enemies {
		if id == m.ID {
			s.Enemies = append(s.Enemies[:i], s.Enemies[i+1:]...)
			return
		}
	}
}

// HasBuildingPermit reports whether the mobile holds a decoration permit.
func (s *Stone) HasBuildingPermit(m *mobiles.Mobile) bool {
	if m == nil {
		return false
	}
	for _, id := range s.BuildingPermits {
		if id == m.ID {
			return true
		}
	}
	return false
}

// GrantBuildingPermit adds a mobile to the permit list.
func (s *Stone) GrantBuildingPermit(m *mobiles.Mobile) {
	if m == nil || s.HasBuildingPermit(m) {
		return
	}
	s.BuildingPermits = append(s.BuildingPermits, m.ID)
}

// CountVisitor credits one visit for the mobile today. A mobile counts at
// most once per day; members of the owning guild still count, matching the
// foot-traffic model.
func (s *Stone) CountVisitor(m *mobiles.Mobile) {
	if m == nil || s.deleted || s.packedUp {
		return
	}
	if _, seen := s.visitorsToday[m.ID]; seen {
		return
	}
	s.visitorsToday[m.ID] = struct{}{}
	day := int(s.svc.Now().Weekday())
	s.visitorsByDay[day]++
}

// VisitorsThisWeek sums the per-day visitor counts for the current week.
func (s *Stone) VisitorsThisWeek() int {
	total := 0
	for _, n := range s.visitorsByDay {
		total += n
	}
	return total
}

// Delete destroys the township. Destruction cascades: placed NPCs and
// livestock are released, lockdowns freed, the region unregistered, and the
// stone removed from the instance registry.
func (s *Stone) Delete() {
	if s.deleted {
		return
	}
	s.deleted = true

	// Release all placed NPCs.
	for _, npc := range s.npcs {
		if npc.Creature != nil && !npc.Creature.Deleted() {
			npc.Creature.Delete()
		}
	}
	s.npcs = nil

	// Release livestock back to their original owners.
	for creature := range s.livestock {
		s.releaseLivestockLocked(creature)
	}

	// Free every lockdown.
	for _, rec := range s.lockdowns {
		if rec.Item != nil && !rec.Item.ItemBase().Deleted() {
			rec.Item.ItemBase().Movable = true
		}
	}
	s.lockdowns = make(map[world.Serial]*LockdownRecord)

	// Clean up decorative items that only existed under township coverage.
	for _, rec := range s.itemRegistry {
		base := rec.Item.ItemBase()
		if !base.Deleted() && base.TownshipItem {
			base.Delete()
		}
	}
	s.itemRegistry = make(map[world.Serial]*ItemRecord)

	if s.region != nil {
		s.region.Unregister()
	}
	if s.svc.Registry != nil {
		s.svc.Registry.Unregister(s)
	}
	s.Item.Delete()

	slog.Info("township deleted", "serial", s.Item.ID, "guild", s.GuildID)
	s.svc.Log.Log("township", "township %d deleted (guild %d)", s.Item.ID, s.GuildID)
}

// Lock serializes access to the stone's registries for hosts that drive
// timers and handlers from more than one goroutine. The shard's single
// logical thread never contends on it.
func (s *Stone) Lock()   { s.mu.Lock() }
func (s *Stone) Unlock() { s.mu.Unlock() }
