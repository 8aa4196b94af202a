package township

import (
	"time"

	"github.com/grimholt/townshard/internal/housing"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// NPCArchetype is the closed enumeration of placeable township NPCs. All
// per-archetype behavior is data on the Archetypes table, never type
// switches.
type NPCArchetype uint8

const (
	NPCProvisioner NPCArchetype = iota
	NPCTownCrier
	NPCStablemaster
	NPCAnimalTrainer
	NPCMinstrel
	NPCLookout
	NPCAlchemist
	NPCMage
	NPCArmorer
	NPCEmissary
	NPCBanker
	NPCInnkeeper

	npcArchetypeCount
)

// NPCHouseRequirement constrains where an archetype may stand.
type NPCHouseRequirement uint8

const (
	NPCAnywhere       NPCHouseRequirement = iota // Inside the township, house optional
	NPCRequiresHouse                             // Must stand inside a house
	NPCOutdoorsOnly                              // Must stand outside any house
)

// ArchetypeInfo carries everything the township needs to know about one NPC
// archetype: its purchase charge, daily wage, minimum activity level, house
// requirement, and whether it reserves its house exclusively.
type ArchetypeInfo struct {
	Name        string
	Charge      int // Purchase price in gold
	DailyFee    int // Base daily wage before activity scaling
	ActivityReq ActivityLevel
	HouseReq    NPCHouseRequirement
	// Reserved archetypes (bankers, innkeepers) cannot share a house with
	// any other placed NPC.
	Reserved bool
}

// Archetypes is the static dispatch table keyed by archetype.
var Archetypes = [npcArchetypeCount]ArchetypeInfo{
	NPCProvisioner:   {Name: "provisioner", Charge: 5_000, DailyFee: 25, ActivityReq: ActivityNone, HouseReq: NPCRequiresHouse},
	NPCTownCrier:     {Name: "town crier", Charge: 10_000, DailyFee: 50, ActivityReq: ActivityLow, HouseReq: NPCOutdoorsOnly},
	NPCStablemaster:  {Name: "stablemaster", Charge: 10_000, DailyFee: 50, ActivityReq: ActivityLow, HouseReq: NPCOutdoorsOnly},
	NPCAnimalTrainer: {Name: "animal trainer", Charge: 10_000, DailyFee: 50, ActivityReq: ActivityLow, HouseReq: NPCAnywhere},
	NPCMinstrel:      {Name: "minstrel", Charge: 15_000, DailyFee: 50, ActivityReq: ActivityLow, HouseReq: NPCAnywhere},
	NPCLookout:       {Name: "lookout", Charge: 20_000, DailyFee: 75, ActivityReq: ActivityLow, HouseReq: NPCOutdoorsOnly},
	NPCAlchemist:     {Name: "alchemist", Charge: 25_000, DailyFee: 100, ActivityReq: ActivityMedium, HouseReq: NPCRequiresHouse},
	NPCMage:          {Name: "mage", Charge: 25_000, DailyFee: 100, ActivityReq: ActivityMedium, HouseReq: NPCRequiresHouse},
	NPCArmorer:       {Name: "armorer", Charge: 25_000, DailyFee: 100, ActivityReq: ActivityMedium, HouseReq: NPCRequiresHouse},
	NPCEmissary:      {Name: "emissary", Charge: 50_000, DailyFee: 150, ActivityReq: ActivityMedium, HouseReq: NPCRequiresHouse},
	NPCBanker:        {Name: "banker", Charge: 100_000, DailyFee: 250, ActivityReq: ActivityHigh, HouseReq: NPCRequiresHouse, Reserved: true},
	NPCInnkeeper:     {Name: "innkeeper", Charge: 100_000, DailyFee: 250, ActivityReq: ActivityHigh, HouseReq: NPCRequiresHouse, Reserved: true},
}

// Behavior is the shared township-NPC capability: every placed NPC composes
// one instead of re-implementing ownership and wander rules per concrete
// creature type.
type Behavior struct {
	Owner       world.Serial
	WanderRange int
	Home        world.Point3D
}

// CanWanderTo reports whether the NPC's walk destination stays in range of
// its placement point.
func (b *Behavior) CanWanderTo(p world.Point3D) bool {
	dx := p.X - b.Home.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - b.Home.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= b.WanderRange && dy <= b.WanderRange
}

// PlacedNPC is one NPC stationed in the township.
type PlacedNPC struct {
	Archetype NPCArchetype
	Creature  *mobiles.Creature
	Behavior  Behavior
	PlacedAt  time.Time

	// Lookout memory: enemy serials seen, decayed daily.
	lookoutMemory map[world.Serial]int
}

// PlaceNPCResult classifies the outcome of an NPC placement attempt.
type PlaceNPCResult uint8

const (
	PlaceNPCSuccess PlaceNPCResult = iota
	PlaceNPCOutsideTownship
	PlaceNPCActivityTooLow
	PlaceNPCNeedsHouse
	PlaceNPCOutdoorsOnly
	PlaceNPCHouseNotYours
	PlaceNPCHouseFull
	PlaceNPCHouseReserved
	PlaceNPCInsufficientFunds
)

// PlaceNPCMessage maps a placement result to its player-facing message.
func PlaceNPCMessage(r PlaceNPCResult) string {
	switch r {
	case PlaceNPCSuccess:
		return "The township welcomes its new resident."
	case PlaceNPCOutsideTownship:
		return "That location is not within the township."
	case PlaceNPCActivityTooLow:
		return "The township is not active enough to support that resident."
	case PlaceNPCNeedsHouse:
		return "That resident must be housed."
	case PlaceNPCOutdoorsOnly:
		return "That resident must stand in the open."
	case PlaceNPCHouseNotYours:
		return "You do not control that house."
	case PlaceNPCHouseFull:
		return "That house cannot support another resident."
	case PlaceNPCHouseReserved:
		return "That house already hosts a resident who requires it exclusively."
	case PlaceNPCInsufficientFunds:
		return "The township fund cannot cover that resident's hiring charge."
	default:
		return "That resident cannot be placed there."
	}
}

// CanPlaceNPC validates an NPC placement without mutating state. The checks,
// in order: region membership, the archetype's minimum activity level, then
// — when the target stands in a house — control of the house, its public
// flag, per-house capacity, and reserved-archetype exclusivity.
//
// Activity gating uses the ratcheted level: a township that once reached a
// tier keeps buying that tier's NPCs even if traffic later collapses.
func (s *Stone) CanPlaceNPC(actor *mobiles.Mobile, archetype NPCArchetype, at world.Point3D, facet *world.Map) PlaceNPCResult {
	info := Archetypes[archetype]

	if !s.Contains(at, facet) {
		return PlaceNPCOutsideTownship
	}
	if s.activityLevel < info.ActivityReq {
		return PlaceNPCActivityTooLow
	}

	var house *housing.House
	if s.svc.Houses != nil {
		house = s.svc.Houses.FindAt(at, facet)
		if house.Deleted() {
			house = nil
		}
	}

	switch info.HouseReq {
	case NPCRequiresHouse:
		if house == nil {
			return PlaceNPCNeedsHouse
		}
	case NPCOutdoorsOnly:
		if house != nil {
			return PlaceNPCOutdoorsOnly
		}
	}

	if house != nil {
		if !s.canUseHouse(actor, house) {
			return PlaceNPCHouseNotYours
		}
		inHouse := s.npcsInHouse(house)
		if len(inHouse) >= house.MaxNPCs {
			return PlaceNPCHouseFull
		}
		for _, other := range inHouse {
			if Archetypes[other.Archetype].Reserved || info.Reserved {
				return PlaceNPCHouseReserved
			}
		}
	}

	return PlaceNPCSuccess
}

// canUseHouse reports whether the actor may station NPCs in the house:
// co-ownership, an owner allied with the township's guild, or the public
// flag all qualify.
func (s *Stone) canUseHouse(actor *mobiles.Mobile, house *housing.House) bool {
	if house.IsCoOwner(actor) {
		return true
	}
	if house.Public {
		return true
	}
	guild := s.Guild()
	if guild != nil && s.svc.Guilds != nil && house.OwnerID != 0 {
		for _, g := range s.svc.Guilds.All() {
			for _, member := range g.Members {
				if member != house.OwnerID {
					continue
				}
				if g.ID == guild.ID || guild.IsAlliedWith(g) {
					return true
				}
			}
		}
	}
	return false
}

// npcsInHouse returns the live placed NPCs standing inside the house.
func (s *Stone) npcsInHouse(house *housing.House) []*PlacedNPC {
	s.defragNPCs()
	var out []*PlacedNPC
	for _, npc := range s.npcs {
		if house.Contains(npc.Creature.Loc, npc.Creature.Facet) {
			out = append(out, npc)
		}
	}
	return out
}

// PlaceNPC validates, charges the township fund, and stations the NPC.
func (s *Stone) PlaceNPC(actor *mobiles.Mobile, archetype NPCArchetype, at world.Point3D, facet *world.Map) (PlaceNPCResult, *PlacedNPC) {
	if result := s.CanPlaceNPC(actor, archetype, at, facet); result != PlaceNPCSuccess {
		return result, nil
	}
	info := Archetypes[archetype]
	if s.goldHeld < info.Charge {
		return PlaceNPCInsufficientFunds, nil
	}
	s.goldHeld -= info.Charge
	s.recordWithdrawal(info.Charge, "Hired "+info.Name)

	creature := mobiles.NewCreature(info.Name, false)
	creature.Invulnerable = true
	creature.GuildFlagged = true
	creature.MoveToWorld(at, facet)

	npc := &PlacedNPC{
		Archetype: archetype,
		Creature:  creature,
		Behavior: Behavior{
			WanderRange: 5,
			Home:        at,
		},
		PlacedAt: s.svc.Now(),
	}
	if actor != nil {
		npc.Behavior.Owner = actor.ID
	}
	if archetype == NPCLookout {
		npc.lookoutMemory = make(map[world.Serial]int)
	}
	s.npcs = append(s.npcs, npc)
	return PlaceNPCSuccess, npc
}

// DismissNPC removes a placed NPC from the township and the world.
func (s *Stone) DismissNPC(npc *PlacedNPC) {
	for i, existing := range s.npcs {
		if existing == npc {
			s.npcs = append(s.npcs[:i], s.npcs[i+1:]...)
			break
		}
	}
	if npc.Creature != nil && !npc.Creature.Deleted() {
		npc.Creature.Delete()
	}
}

// liveNPCs returns the placed NPCs after defragmentation.
func (s *Stone) liveNPCs() []*PlacedNPC {
	s.defragNPCs()
	return s.npcs
}

// NPCs returns the live placed NPCs.
func (s *Stone) NPCs() []*PlacedNPC { return s.liveNPCs() }

// NoteEnemySighting records an enemy in a lookout's memory.
func (npc *PlacedNPC) NoteEnemySighting(enemy world.Serial, retentionDays int) {
	if npc.lookoutMemory == nil {
		return
	}
	npc.lookoutMemory[enemy] = retentionDays
}

// Remembers reports whether the lookout still remembers the enemy.
func (npc *PlacedNPC) Remembers(enemy world.Serial) bool {
	if npc.lookoutMemory == nil {
		return false
	}
	return npc.lookoutMemory[enemy] > 0
}

// DecayLookoutMemory ages every remembered sighting by one day, forgetting
// expired ones. The shard's day tick drives this.
func (s *Stone) DecayLookoutMemory() {
	for _, npc := range s.liveNPCs() {
		if npc.lookoutMemory == nil {
			continue
		}
		for serial, days := range npc.lookoutMemory {
			if days <= 1 {
				delete(npc.lookoutMemory, serial)
			} else {
				npc.lookoutMemory[serial] = days - 1
			}
		}
	}
}
