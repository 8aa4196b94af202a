package township

import (
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// regionPriority places township regions above plain wilderness but below
// engine-guarded town zones.
const regionPriority = 50

// Region binds a stone to the generic region system. It is recreated whole
// whenever the stone's center or radius changes; the stone swaps bindings
// atomically so no stale or empty region ever stays registered.
type Region struct {
	*world.Region

	Stone *Stone
}

// newRegion builds an unregistered region matching the stone's current
// geometry.
func newRegion(s *Stone) *Region {
	name := "the township"
	if g := s.Guild(); g != nil {
		name = "the township of " + g.Name
	}
	r := &Region{
		Region: world.NewRegion(name, s.Facet, regionPriority, s.Bounds()),
		Stone:  s,
	}
	r.Region.Controller = r
	return r
}

// OnEnter implements world.RegionController.
func (r *Region) OnEnter(serial world.Serial) {}

// OnExit implements world.RegionController.
func (r *Region) OnExit(serial world.Serial) {}

// MurderCountsAgainst reports whether a kill inside the region counts as
// murder for the attacker. Law policy: Lawless never counts; Authority counts
// only against outsiders; None always counts.
func (r *Region) MurderCountsAgainst(attacker *mobiles.Mobile) bool {
	switch r.Stone.LawLevel {
	case LawLawless:
		return false
	case LawAuthority:
		return r.Stone.GetAccess(attacker) < AccessAlly
	default:
		return true
	}
}

// IsItemAccessible reports whether a mobile may use an item inside the
// region regardless of lock ownership. Containers, books, doors, and
// township-flagged decorative classes stay accessible to everyone; anything
// else falls back to the lockdown owner check.
func (r *Region) IsItemAccessible(m *mobiles.Mobile, it items.Carriable) bool {
	switch it.(type) {
	case *items.Container, *items.Book, *items.Door:
		return true
	}
	if it.ItemBase().TownshipItem {
		return true
	}
	if !r.Stone.IsLockedDown(it) {
		return true
	}
	return r.Stone.IsLockdownOwner(m, it)
}
