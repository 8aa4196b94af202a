package township

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// ErrAlreadyPackedUp rejects a second pack-up while the first is outstanding.
var ErrAlreadyPackedUp = errors.New("nothing to pack up")

// ContractError marks a programming-contract violation inside the pack-up
// protocol: deeding a deleted item, overflowing a crate. These abort the
// whole operation and are never swallowed.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("township pack-up contract violation in %s: %s", e.Op, e.Detail)
}

// CrateCategory names the typed moving crates the protocol produces.
type CrateCategory uint8

const (
	CrateAddons CrateCategory = iota
	CratePlants
	CrateLockdowns
	CrateNPCs
	CrateLivestock
	CrateStockpile
)

// CrateName returns a display name for a crate category.
func CrateName(c CrateCategory) string {
	switch c {
	case CrateAddons:
		return "addons"
	case CratePlants:
		return "plants"
	case CrateLockdowns:
		return "lockdowns"
	case CrateNPCs:
		return "residents"
	case CrateLivestock:
		return "livestock"
	case CrateStockpile:
		return "stockpile"
	default:
		return "sundries"
	}
}

// MovingCrate is a key-locked container used exclusively by the pack-up
// protocol to bundle restoration deeds for transport.
type MovingCrate struct {
	items.Container

	Category CrateCategory
	StoneID  world.Serial
}

func newMovingCrate(category CrateCategory, stoneID world.Serial, keyValue string) *MovingCrate {
	c := &MovingCrate{
		Container: *items.NewContainer("a township moving crate (" + CrateName(category) + ")"),
		Category:  category,
		StoneID:   stoneID,
	}
	c.Locked = true
	c.KeyValue = keyValue
	return c
}

// ItemRestorationDeed embeds one stashed item and restores it exactly once.
type ItemRestorationDeed struct {
	items.Item

	StoneID world.Serial
	stashed items.Carriable
	used    bool
}

// NewItemRestorationDeed stashes the item and wraps it in deed form.
func NewItemRestorationDeed(stoneID world.Serial, it items.Carriable) *ItemRestorationDeed {
	base := it.ItemBase()
	base.Stash()
	return &ItemRestorationDeed{
		Item:    *items.NewItem("a township restoration deed (" + base.Name + ")"),
		StoneID: stoneID,
		stashed: it,
	}
}

// Stashed returns the embedded item, for inspection.
func (d *ItemRestorationDeed) Stashed() items.Carriable { return d.stashed }

// Use materializes the stashed item at the location. The deed consumes
// itself; a second use fails.
func (d *ItemRestorationDeed) Use(at world.Point3D, facet *world.Map) error {
	if d.used || d.Deleted() {
		return errors.New("the deed has already been used")
	}
	if facet == nil || !facet.CanFit(at) {
		return errors.New("that location cannot hold the item")
	}
	d.used = true
	d.stashed.ItemBase().MoveToWorld(at, facet)
	d.Delete()
	return nil
}

// LivestockRestorationDeed embeds one stashed livestock creature.
type LivestockRestorationDeed struct {
	items.Item

	StoneID       world.Serial
	OriginalOwner world.Serial
	creature      *mobiles.Creature
	used          bool
}

// NewLivestockRestorationDeed stashes the creature and wraps it in deed form.
func NewLivestockRestorationDeed(stoneID world.Serial, creature *mobiles.Creature, originalOwner world.Serial) *LivestockRestorationDeed {
	creature.Stash()
	return &LivestockRestorationDeed{
		Item:          *items.NewItem("a livestock deed (" + creature.Name + ")"),
		StoneID:       stoneID,
		OriginalOwner: originalOwner,
		creature:      creature,
	}
}

// Creature returns the embedded creature, for inspection.
func (d *LivestockRestorationDeed) Creature() *mobiles.Creature { return d.creature }

// Use materializes the stashed creature, returning control to its original
// owner. The deed consumes itself.
func (d *LivestockRestorationDeed) Use(at world.Point3D, facet *world.Map) error {
	if d.used || d.Deleted() {
		return errors.New("the deed has already been used")
	}
	if facet == nil || !facet.CanFit(at) {
		return errors.New("that location cannot hold the creature")
	}
	d.used = true
	d.creature.RestoreToWorld(at, facet)
	d.creature.ControlMaster = d.OriginalOwner
	d.creature.Invulnerable = false
	d.creature.GuildFlagged = false
	d.Delete()
	return nil
}

// NPCDeed re-hires one dismissed township NPC when the township is restored.
type NPCDeed struct {
	items.Item

	StoneID   world.Serial
	Archetype NPCArchetype
}

func newNPCDeed(stoneID world.Serial, archetype NPCArchetype) *NPCDeed {
	return &NPCDeed{
		Item:      *items.NewItem("an employment contract (" + Archetypes[archetype].Name + ")"),
		StoneID:   stoneID,
		Archetype: archetype,
	}
}

// TownshipRestorationDeed bundles the stashed townstone, guildstone, and the
// moving crates under one key-locked-container protocol.
type TownshipRestorationDeed struct {
	items.Item

	Stone      *Stone
	Guildstone *items.Item
	Crates     []*MovingCrate
	KeyValue   string

	used bool
}

// PackUp converts all live state owned by the township into moving crates
// plus one restoration deed, handing both deed and crate key to the
// initiator. Packing an already-packed township is rejected; the operation
// is exactly-once.
func (s *Stone) PackUp(initiator *mobiles.Mobile) (*TownshipRestorationDeed, *items.Key, error) {
	if s.packedUp || s.svc.Registry.hasOutstandingCrates(s.Serial()) {
		if initiator != nil {
			initiator.SendMessage("Nothing to pack up.")
		}
		return nil, nil, ErrAlreadyPackedUp
	}

	log := s.svc.Log
	keyValue := uuid.NewString()
	stoneID := s.Serial()
	log.Log("packup", "township %d pack-up started, key %s", stoneID, keyValue)

	crates := map[CrateCategory]*MovingCrate{}
	crateFor := func(c CrateCategory) *MovingCrate {
		if crate, ok := crates[c]; ok {
			return crate
		}
		crate := newMovingCrate(c, stoneID, keyValue)
		crates[c] = crate
		return crate
	}

	addToCrate := func(c CrateCategory, deed items.Carriable) error {
		if err := crateFor(c).Add(deed); err != nil {
			return &ContractError{Op: "crate " + CrateName(c), Detail: err.Error()}
		}
		return nil
	}

	// Owned decorative items: redeedable addons convert to their
	// construction deed; plants reduce to seeds or stash whole; everything
	// else stashes behind an item restoration deed.
	for _, rec := range s.OwnedItems() {
		base := rec.Item.ItemBase()
		if base.Deleted() {
			return nil, nil, &ContractError{Op: "items", Detail: fmt.Sprintf("item %d deleted mid-walk", base.ID)}
		}
		switch it := rec.Item.(type) {
		case *items.Addon:
			if it.Redeedable {
				deed := it.Redeed()
				log.Log("packup", "township %d redeeded addon %q", stoneID, base.Name)
				if err := addToCrate(CrateAddons, deed); err != nil {
					return nil, nil, err
				}
			} else {
				log.Log("packup", "township %d stashed addon %q", stoneID, base.Name)
				if err := addToCrate(CrateAddons, NewItemRestorationDeed(stoneID, it)); err != nil {
					return nil, nil, err
				}
			}
		case *items.Plant:
			if seed := it.ToSeed(); seed != nil {
				log.Log("packup", "township %d reduced plant %q to seed", stoneID, base.Name)
				if err := addToCrate(CratePlants, seed); err != nil {
					return nil, nil, err
				}
			} else {
				log.Log("packup", "township %d stashed plant %q", stoneID, base.Name)
				if err := addToCrate(CratePlants, NewItemRestorationDeed(stoneID, it)); err != nil {
					return nil, nil, err
				}
			}
		default:
			log.Log("packup", "township %d stashed item %q", stoneID, base.Name)
			if err := addToCrate(CrateAddons, NewItemRestorationDeed(stoneID, rec.Item)); err != nil {
				return nil, nil, err
			}
		}
	}
	s.itemRegistry = make(map[world.Serial]*ItemRecord)

	// Lockdown registry contents.
	for _, rec := range s.Lockdowns() {
		base := rec.Item.ItemBase()
		if base.Deleted() {
			return nil, nil, &ContractError{Op: "lockdowns", Detail: fmt.Sprintf("item %d deleted mid-walk", base.ID)}
		}
		base.Movable = true
		log.Log("packup", "township %d stashed lockdown %q", stoneID, base.Name)
		if err := addToCrate(CrateLockdowns, NewItemRestorationDeed(stoneID, rec.Item)); err != nil {
			return nil, nil, err
		}
	}
	s.lockdowns = make(map[world.Serial]*LockdownRecord)

	// Placed NPCs convert to employment contracts via the archetype table.
	for _, npc := range s.liveNPCs() {
		log.Log("packup", "township %d dismissed %s into contract", stoneID, Archetypes[npc.Archetype].Name)
		if err := addToCrate(CrateNPCs, newNPCDeed(stoneID, npc.Archetype)); err != nil {
			return nil, nil, err
		}
		npc.Creature.Delete()
	}
	s.npcs = nil

	// Livestock get dedicated restoration deeds preserving their original
	// owner.
	for creature, owner := range s.Livestock() {
		log.Log("packup", "township %d stashed livestock %q", stoneID, creature.Name)
		if err := addToCrate(CrateLivestock, NewLivestockRestorationDeed(stoneID, creature, owner)); err != nil {
			return nil, nil, err
		}
		delete(s.livestock, creature)
	}

	// Stockpile drains into commodity deeds — building materials have no
	// restoration form, so the township is credited back its stock instead.
	for _, deed := range s.stockpile.ToDeeds() {
		log.Log("packup", "township %d crated stockpile deed %q", stoneID, deed.Name)
		if err := addToCrate(CrateStockpile, deed); err != nil {
			return nil, nil, err
		}
	}

	// Stash the stones themselves and bundle everything.
	var guildstone *items.Item
	if g := s.Guild(); g != nil && g.Guildstone != nil && !g.Guildstone.Deleted() {
		guildstone = g.Guildstone
		guildstone.Stash()
		log.Log("packup", "township %d stashed guildstone", stoneID)
	}

	s.packedUp = true
	s.region.Unregister()
	s.Item.Stash()
	log.Log("packup", "township %d stashed townstone", stoneID)

	crateList := make([]*MovingCrate, 0, len(crates))
	for _, crate := range crates {
		crateList = append(crateList, crate)
		s.svc.Registry.trackCrate(crate)
	}

	deed := &TownshipRestorationDeed{
		Item:       *items.NewItem("a township restoration deed"),
		Stone:      s,
		Guildstone: guildstone,
		Crates:     crateList,
		KeyValue:   keyValue,
	}
	key := items.NewKey(keyValue)

	deliverTo(initiator, deed)
	deliverTo(initiator, key)
	log.Log("packup", "township %d pack-up complete: %d crates", stoneID, len(crateList))
	return deed, key, nil
}

// deliverTo hands an item to a mobile: backpack, else bank box, else dropped
// at their feet.
func deliverTo(m *mobiles.Mobile, it items.Carriable) {
	if m == nil {
		return
	}
	if err := m.Backpack().Add(it); err == nil {
		return
	}
	if err := m.BankBox().Add(it); err == nil {
		return
	}
	it.ItemBase().MoveToWorld(m.Loc, m.Facet)
}

// Use restores the township at a validated location. The packed-up flag
// clears only once the stones are back in the world; crate contents restore
// individually through their own deeds.
func (d *TownshipRestorationDeed) Use(actor *mobiles.Mobile, at world.Point3D, facet *world.Map, v *Validator) error {
	if d.used || d.Deleted() {
		return errors.New("the deed has already been used")
	}
	s := d.Stone
	if s == nil || s.Deleted() {
		return errors.New("the township this deed restores no longer exists")
	}

	// The guildstone travels inside the restoration bundle, so the house
	// check cannot demand it be placed yet. A guild-owned house suffices;
	// the deed re-places the guildstone at the same spot below.
	if result := v.CheckPlacement(at, facet, s.Guild(), s.Radius(), RequireGuildOwnedHouse); result != PlacementSuccess {
		if actor != nil {
			actor.SendMessage(PlacementMessage(result))
		}
		return fmt.Errorf("placement rejected: %s", PlacementMessage(result))
	}

	d.used = true

	if d.Guildstone != nil && !d.Guildstone.Deleted() {
		d.Guildstone.MoveToWorld(at, facet)
	}

	s.Center = at
	s.Facet = facet
	s.Item.MoveToWorld(at, facet)
	s.packedUp = false
	s.updateRegion()

	for _, crate := range d.Crates {
		deliverTo(actor, crate)
		s.svc.Registry.untrackCrate(crate)
	}

	s.svc.Log.Log("packup", "township %d restored at %s on %s", s.Serial(), at.String(), facet.Name)
	d.Delete()
	return nil
}
