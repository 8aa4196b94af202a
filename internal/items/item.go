// Package items provides the item primitives the township core consumes:
// base items, containers, currency, commodity deeds, and keys.
package items

import (
	"github.com/grimholt/townshard/internal/world"
)

// Item is the base world item. Concrete item kinds embed it.
type Item struct {
	ID   world.Serial `json:"id"`
	Name string       `json:"name"`

	Loc   world.Point3D `json:"loc"`
	Facet *world.Map    `json:"-"`

	Movable bool `json:"movable"`

	// Decorative classes flagged for township accessibility overrides.
	TownshipItem bool `json:"township_item,omitempty"`

	deleted bool
	stashed bool
	parent  *Container
}

// NewItem creates a movable item with a fresh serial.
func NewItem(name string) *Item {
	return &Item{
		ID:      world.NextSerial(),
		Name:    name,
		Movable: true,
	}
}

// Carriable is anything with an item base; containers hold Carriables so
// concrete deed types survive the round trip through a crate.
type Carriable interface {
	ItemBase() *Item
}

// ItemBase returns the item itself, satisfying Carriable for every embedder.
func (i *Item) ItemBase() *Item { return i }

// Serial returns the item's world serial.
func (i *Item) Serial() world.Serial { return i.ID }

// Deleted reports whether the item has been removed from the world.
func (i *Item) Deleted() bool { return i.deleted }

// Delete removes the item from the world and from its container.
func (i *Item) Delete() {
	if i.deleted {
		return
	}
	if i.parent != nil {
		i.parent.Remove(i)
	}
	i.deleted = true
	i.Facet = nil
}

// MoveToWorld places the item at a location on a map, removing it from any
// container first.
func (i *Item) MoveToWorld(p world.Point3D, m *world.Map) {
	if i.parent != nil {
		i.parent.Remove(i)
	}
	i.Loc = p
	i.Facet = m
	i.stashed = false
}

// Stash internalizes the item: off every map, held only by whatever object
// recorded its serial. Stashed items are not deleted and can be restored.
func (i *Item) Stash() {
	if i.parent != nil {
		i.parent.Remove(i)
	}
	i.Facet = nil
	i.stashed = true
}

// Stashed reports whether the item is in the internalized off-map state.
func (i *Item) Stashed() bool { return i.stashed }

// InContainer reports whether the item currently sits inside a container.
func (i *Item) InContainer() bool { return i.parent != nil }

// Parent returns the containing container, or nil.
func (i *Item) Parent() *Container { return i.parent }
