package township

import (
	"time"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// ItemRecord tracks one township-owned placed item.
type ItemRecord struct {
	Item     items.Carriable
	Owner    world.Serial
	PlacedAt time.Time
}

// LockdownRecord tracks one locked-down item.
type LockdownRecord struct {
	Item   items.Carriable
	Locker world.Serial
}

// defragItems removes registry entries whose item has been deleted. Every
// read path calls this first; purging is lazy, never eager.
func (s *Stone) defragItems() {
	for serial, rec := range s.itemRegistry {
		if rec.Item == nil || rec.Item.ItemBase().Deleted() {
			delete(s.itemRegistry, serial)
		}
	}
}

func (s *Stone) defragLockdowns() {
	for serial, rec := range s.lockdowns {
		if rec.Item == nil || rec.Item.ItemBase().Deleted() {
			delete(s.lockdowns, serial)
		}
	}
}

func (s *Stone) defragNPCs() {
	live := s.npcs[:0]
	for _, npc := range s.npcs {
		if npc.Creature != nil && !npc.Creature.Deleted() {
			live = append(live, npc)
		}
	}
	s.npcs = live
}

func (s *Stone) defragLivestock() {
	for creature := range s.livestock {
		if creature.Deleted() {
			delete(s.livestock, creature)
		}
	}
}

// RegisterItem records a placed item as township property.
func (s *Stone) RegisterItem(it items.Carriable, owner *mobiles.Mobile) {
	base := it.ItemBase()
	rec := &ItemRecord{Item: it, PlacedAt: s.svc.Now()}
	if owner != nil {
		rec.Owner = owner.ID
	}
	s.itemRegistry[base.ID] = rec
}

// UnregisterItem drops a placed item from the registry.
func (s *Stone) UnregisterItem(it items.Carriable) {
	delete(s.itemRegistry, it.ItemBase().ID)
}

// OwnedItems returns the live placed-item records.
func (s *Stone) OwnedItems() []*ItemRecord {
	s.defragItems()
	out := make([]*ItemRecord, 0, len(s.itemRegistry))
	for _, rec := range s.itemRegistry {
		out = append(out, rec)
	}
	return out
}

// ItemCount returns the number of live placed items.
func (s *Stone) ItemCount() int {
	s.defragItems()
	return len(s.itemRegistry)
}

// IsItemOwner reports whether the actor may manage the placed item. Leaders
// manage everything regardless of the recorded owner.
func (s *Stone) IsItemOwner(m *mobiles.Mobile, it items.Carriable) bool {
	if m == nil {
		return false
	}
	if s.GetAccess(m) >= AccessLeader {
		return true
	}
	s.defragItems()
	rec, ok := s.itemRegistry[it.ItemBase().ID]
	return ok && rec.Owner == m.ID
}

// LockDown marks an item non-movable and registers it to the locking mobile.
func (s *Stone) LockDown(it items.Carriable, locker *mobiles.Mobile) bool {
	base := it.ItemBase()
	if base.Deleted() {
		return false
	}
	s.defragLockdowns()
	if _, exists := s.lockdowns[base.ID]; exists {
		return false
	}
	base.Movable = false
	rec := &LockdownRecord{Item: it}
	if locker != nil {
		rec.Locker = locker.ID
	}
	s.lockdowns[base.ID] = rec
	return true
}

// Release frees a locked-down item, restoring movability.
func (s *Stone) Release(it items.Carriable) bool {
	base := it.ItemBase()
	s.defragLockdowns()
	if _, exists := s.lockdowns[base.ID]; !exists {
		return false
	}
	delete(s.lockdowns, base.ID)
	base.Movable = true
	return true
}

// IsLockedDown reports whether the item sits in the lockdown registry.
func (s *Stone) IsLockedDown(it items.Carriable) bool {
	s.defragLockdowns()
	_, ok := s.lockdowns[it.ItemBase().ID]
	return ok
}

// IsLockdownOwner reports whether the actor may release the lockdown. Leaders
// may release anything.
func (s *Stone) IsLockdownOwner(m *mobiles.Mobile, it items.Carriable) bool {
	if m == nil {
		return false
	}
	if s.GetAccess(m) >= AccessLeader {
		return true
	}
	s.defragLockdowns()
	rec, ok := s.lockdowns[it.ItemBase().ID]
	return ok && rec.Locker == m.ID
}

// Lockdowns returns the live lockdown records.
func (s *Stone) Lockdowns() []*LockdownRecord {
	s.defragLockdowns()
	out := make([]*LockdownRecord, 0, len(s.lockdowns))
	for _, rec := range s.lockdowns {
		out = append(out, rec)
	}
	return out
}

// LockdownCount returns the number of live lockdowns.
func (s *Stone) LockdownCount() int {
	s.defragLockdowns()
	return len(s.lockdowns)
}

// MakeLivestock converts a tamed creature into township livestock: control
// and herding state are stripped, the creature becomes invulnerable and
// guild-flagged, and the original owner is recorded for later release.
func (s *Stone) MakeLivestock(creature *mobiles.Creature) bool {
	if creature == nil || creature.Deleted() || !creature.Tamable {
		return false
	}
	s.defragLivestock()
	if _, exists := s.livestock[creature]; exists {
		return false
	}
	owner := creature.ControlMaster
	creature.ControlMaster = 0
	creature.TargetLocation = nil
	creature.Invulnerable = true
	creature.GuildFlagged = true
	s.livestock[creature] = owner
	return true
}

// ReleaseLivestock returns a livestock creature to its original owner,
// reversing MakeLivestock exactly.
func (s *Stone) ReleaseLivestock(creature *mobiles.Creature) bool {
	s.defragLivestock()
	if _, exists := s.livestock[creature]; !exists {
		return false
	}
	s.releaseLivestockLocked(creature)
	return true
}

func (s *Stone) releaseLivestockLocked(creature *mobiles.Creature) {
	owner := s.livestock[creature]
	delete(s.livestock, creature)
	creature.ControlMaster = owner
	creature.Invulnerable = false
	creature.GuildFlagged = false
}

// IsLivestock reports whether the creature is township livestock.
func (s *Stone) IsLivestock(creature *mobiles.Creature) bool {
	s.defragLivestock()
	_, ok := s.livestock[creature]
	return ok
}

// IsLivestockOwner reports whether the actor may reclaim the creature.
// Leaders may reclaim anything.
func (s *Stone) IsLivestockOwner(m *mobiles.Mobile, creature *mobiles.Creature) bool {
	if m == nil {
		return false
	}
	if s.GetAccess(m) >= AccessLeader {
		return true
	}
	s.defragLivestock()
	owner, ok := s.livestock[creature]
	return ok && owner == m.ID
}

// Livestock returns the live livestock map (creature → original owner).
func (s *Stone) Livestock() map[*mobiles.Creature]world.Serial {
	s.defragLivestock()
	out := make(map[*mobiles.Creature]world.Serial, len(s.livestock))
	for c, o := range s.livestock {
		out[c] = o
	}
	return out
}
