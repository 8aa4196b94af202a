package mobiles

import (
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/world"
)

// Creature is a tamable or spawned animal/monster body.
type Creature struct {
	Mobile

	// Control and herding state. Both are stripped when a creature becomes
	// township livestock.
	ControlMaster world.Serial `json:"control_master,omitempty"`
	TargetLocation *world.Point3D `json:"target_location,omitempty"` // Herding destination

	Invulnerable bool `json:"invulnerable"`
	GuildFlagged bool `json:"guild_flagged"`

	Tamable bool `json:"tamable"`

	// Pack animals carry a container players can load.
	Pack *items.Container `json:"-"`

	stashed bool
}

// NewCreature creates a creature with a fresh serial.
func NewCreature(name string, tamable bool) *Creature {
	c := &Creature{Mobile: *NewMobile(name), Tamable: tamable}
	return c
}

// NewPackAnimal creates a creature carrying a pack container.
func NewPackAnimal(name string) *Creature {
	c := NewCreature(name, true)
	c.Pack = items.NewContainer("pack")
	return c
}

// Controlled reports whether a player currently commands the creature.
func (c *Creature) Controlled() bool { return c.ControlMaster != 0 }

// Stash internalizes the creature off-map for deed storage.
func (c *Creature) Stash() {
	c.Facet = nil
	c.stashed = true
}

// Stashed reports whether the creature is in the internalized off-map state.
func (c *Creature) Stashed() bool { return c.stashed }

// RestoreToWorld places a stashed creature back on a map.
func (c *Creature) RestoreToWorld(p world.Point3D, facet *world.Map) {
	c.Loc = p
	c.Facet = facet
	c.stashed = false
}
