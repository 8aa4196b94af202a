package township

import (
	"github.com/grimholt/townshard/internal/guilds"
	"github.com/grimholt/townshard/internal/housing"
	"github.com/grimholt/townshard/internal/world"
)

// PlacementResult classifies a territory-claim or decoration placement
// attempt. Success is the only passing value; every failure names its cause.
type PlacementResult uint8

const (
	PlacementSuccess PlacementResult = iota
	PlacementInvalidLocation
	PlacementInvalidMap
	PlacementNoGuild
	PlacementNotInGuildHouse
	PlacementNotInGuildOwnedHouse
	PlacementInHostileHouse
	PlacementConflictingRegion
	PlacementInsufficientOwnership
)

// PlacementMessage maps a placement result to its player-facing message.
func PlacementMessage(r PlacementResult) string {
	switch r {
	case PlacementSuccess:
		return "The township may be established here."
	case PlacementInvalidLocation:
		return "That location is not valid."
	case PlacementInvalidMap:
		return "A township cannot be established on this facet."
	case PlacementNoGuild:
		return "Only a guild may establish a township."
	case PlacementNotInGuildHouse:
		return "The stone must rest within your guild's own guildhouse."
	case PlacementNotInGuildOwnedHouse:
		return "The stone must rest within a house your guild controls."
	case PlacementInHostileHouse:
		return "That house does not belong to your guild."
	case PlacementConflictingRegion:
		return "Another protected region overlaps the claimed area."
	case PlacementInsufficientOwnership:
		return "Your guild does not control enough of the houses in the area."
	default:
		return "The township cannot be established here."
	}
}

// HouseRequirement selects which house-ownership rule a placement must meet.
type HouseRequirement uint8

const (
	// RequireGuildHouse demands the location lie inside the house holding
	// the guild's own guildstone.
	RequireGuildHouse HouseRequirement = iota
	// RequireGuildOwnedHouse demands the location lie inside a house owned
	// by a guild member.
	RequireGuildOwnedHouse
	// RequireOutsideOrGuildOwned allows open ground, but any covering house
	// must be guild-owned.
	RequireOutsideOrGuildOwned
)

// Validator decides placement legality. It holds the collaborators the checks
// need; CheckPlacement itself is pure with respect to world state.
type Validator struct {
	Houses *housing.Index
	Guilds *guilds.Registry
	// Threshold is the required member/ally ownership fraction of in-radius
	// houses.
	Threshold float64
	// CountAllies widens the ownership fraction to allied guilds' houses.
	CountAllies bool
	// Replacing is the region a re-placement will supersede; it is excluded
	// from conflict scanning. Nil for fresh placements.
	Replacing *world.Region
}

// CheckPlacement decides whether claiming a territory of the given radius at
// the location is legal. Checks run in order and the first failure wins:
// location/map validity, guild validity, the house requirement, conflicting
// guarded regions, then the house-ownership fraction.
//
// Faulty world state (demolished houses, missing owners) is treated as
// failing the check in question; nothing here panics or propagates errors.
func (v *Validator) CheckPlacement(location world.Point3D, facet *world.Map, g *guilds.Guild, radius int, req HouseRequirement) PlacementResult {
	if location.Zero() {
		return PlacementInvalidLocation
	}
	if facet == nil || !facet.CanFit(location) {
		return PlacementInvalidMap
	}
	if g.Disbanded() {
		return PlacementNoGuild
	}

	if result := v.checkHouseRequirement(location, facet, g, req); result != PlacementSuccess {
		return result
	}

	area := world.RectAround(location, radius)
	for _, region := range world.FindRegionsIntersecting(facet, area) {
		if region == v.Replacing {
			continue
		}
		if region.Guarded {
			return PlacementConflictingRegion
		}
	}

	if v.CalculateHouseOwnership(location, facet, g, radius) < v.Threshold {
		return PlacementInsufficientOwnership
	}

	return PlacementSuccess
}

func (v *Validator) checkHouseRequirement(location world.Point3D, facet *world.Map, g *guilds.Guild, req HouseRequirement) PlacementResult {
	var house *housing.House
	if v.Houses != nil {
		house = v.Houses.FindAt(location, facet)
		if house.Deleted() {
			house = nil
		}
	}

	switch req {
	case RequireGuildHouse:
		// The house must hold the guild's own guildstone.
		if house == nil {
			return PlacementNotInGuildHouse
		}
		stone := g.Guildstone
		if stone == nil || stone.Deleted() || !house.Contains(stone.Loc, stone.Facet) {
			return PlacementNotInGuildHouse
		}
		if !v.houseOwnedByGuild(house, g) {
			return PlacementNotInGuildHouse
		}
	case RequireGuildOwnedHouse:
		if house == nil || !v.houseOwnedByGuild(house, g) {
			return PlacementNotInGuildOwnedHouse
		}
	case RequireOutsideOrGuildOwned:
		if house != nil && !v.houseOwnedByGuild(house, g) {
			return PlacementInHostileHouse
		}
	}
	return PlacementSuccess
}

// houseOwnedByGuild reports whether the house's owner is a member of the
// guild. Ownerless houses never qualify.
func (v *Validator) houseOwnedByGuild(house *housing.House, g *guilds.Guild) bool {
	if house.Deleted() || house.OwnerID == 0 || g.Disbanded() {
		return false
	}
	for _, member := range g.Members {
		if member == house.OwnerID {
			return true
		}
	}
	return false
}

// CalculateHouseOwnership returns the fraction of qualifying houses within
// the radius owned by guild members (or allies when CountAllies is set).
// Siege tents and ownerless houses are excluded from the denominator. Zero
// qualifying houses yields 0.0 — a rejection, not a division fault; "no
// houses to prove ownership of" is deliberately conservative.
func (v *Validator) CalculateHouseOwnership(location world.Point3D, facet *world.Map, g *guilds.Guild, radius int) float64 {
	if g.Disbanded() || v.Houses == nil {
		return 0.0
	}

	area := world.RectAround(location, radius)
	total := 0
	owned := 0

	for _, house := range v.Houses.FindInRect(area, facet) {
		if house.Deleted() || house.Kind == housing.KindSiegeTent || house.OwnerID == 0 {
			continue
		}
		total++
		if v.houseOwnedByGuild(house, g) {
			owned++
			continue
		}
		if v.CountAllies && v.Guilds != nil {
			for _, ally := range v.Guilds.All() {
				if !g.IsAlliedWith(ally) {
					continue
				}
				if v.houseOwnedByGuild(house, ally) {
					owned++
					break
				}
			}
		}
	}

	if total == 0 {
		return 0.0
	}
	return float64(owned) / float64(total)
}
