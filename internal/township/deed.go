package township

import (
	"errors"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// TownshipDeed founds a new township. The purchase price of the deed seeds
// the township fund, so a freshly placed stone can already pay its first
// days of fees.
type TownshipDeed struct {
	items.Item

	used bool
}

// NewTownshipDeed creates an unused township deed.
func NewTownshipDeed() *TownshipDeed {
	return &TownshipDeed{Item: *items.NewItem("a township deed")}
}

// Use places a township stone at the location. The actor must lead a guild
// that does not already hold a township, and the location must pass full
// placement validation. On success the deed is consumed and the new stone's
// fund is seeded with the initial funding fee.
func (d *TownshipDeed) Use(actor *mobiles.Mobile, at world.Point3D, facet *world.Map, svc *Services, v *Validator) (*Stone, error) {
	if d.used || d.Deleted() {
		return nil, errors.New("the deed has already been used")
	}
	if actor == nil {
		return nil, errors.New("no actor")
	}

	g := svc.Guilds.GuildOf(actor)
	if g == nil || !g.IsLeader(actor) {
		actor.SendMessage("Only a guild leader may found a township.")
		return nil, errors.New("actor is not a guild leader")
	}
	if existing := svc.Registry.FindByGuild(g.ID); existing != nil && !existing.Deleted() {
		actor.SendMessage("Thy guild already holds a township.")
		return nil, errors.New("guild already holds a township")
	}

	if result := v.CheckPlacement(at, facet, g, RadiusStandard, RequireGuildHouse); result != PlacementSuccess {
		actor.SendMessage(PlacementMessage(result))
		return nil, errors.New("placement rejected: " + PlacementMessage(result))
	}

	d.used = true
	d.Delete()

	s := NewStone(svc, g, at, facet)
	s.goldHeld = svc.Settings.InitialFundingFee
	s.recordDeposit(svc.Settings.InitialFundingFee, "Initial funding")
	svc.Log.Log("township", "guild %d founded township %d at %s", g.ID, s.Serial(), at.String())
	actor.SendMessage("Thy township has been founded.")
	return s, nil
}
