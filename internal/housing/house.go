// Package housing provides the player-house model the township core consumes:
// ownership, co-ownership, capacity, and spatial lookup.
package housing

import (
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// Kind distinguishes house classes with different township standing.
type Kind uint8

const (
	KindClassic  Kind = iota // Standard deeded house
	KindTent                 // Ordinary tent
	KindSiegeTent            // Siege tent — never counts toward ownership fractions
)

// House is a player-owned structure with a rectangular footprint.
type House struct {
	ID   world.Serial `json:"id"`
	Kind Kind         `json:"kind"`

	OwnerID  world.Serial   `json:"owner_id"` // 0 = ownerless (condemned or decaying)
	CoOwners []world.Serial `json:"co_owners"`

	Footprint world.Rect2D `json:"footprint"`
	Facet     *world.Map   `json:"-"`

	Public bool `json:"public"`

	MaxLockdowns int `json:"max_lockdowns"`
	MaxNPCs      int `json:"max_npcs"` // Township NPC capacity

	deleted bool
}

// New creates a house owned by the given mobile.
func New(kind Kind, owner *mobiles.Mobile, footprint world.Rect2D, facet *world.Map) *House {
	h := &House{
		ID:           world.NextSerial(),
		Kind:         kind,
		Footprint:    footprint,
		Facet:        facet,
		MaxLockdowns: 425,
		MaxNPCs:      2,
	}
	if owner != nil {
		h.OwnerID = owner.ID
	}
	return h
}

// Deleted reports whether the house has been demolished.
func (h *House) Deleted() bool { return h == nil || h.deleted }

// Delete demolishes the house.
func (h *House) Delete() { h.deleted = true }

// IsOwner reports whether the mobile owns the house.
func (h *House) IsOwner(m *mobiles.Mobile) bool {
	return h != nil && !h.deleted && m != nil && h.OwnerID != 0 && h.OwnerID == m.ID
}

// IsCoOwner reports whether the mobile owns or co-owns the house.
func (h *House) IsCoOwner(m *mobiles.Mobile) bool {
	if h.IsOwner(m) {
		return true
	}
	if h == nil || h.deleted || m == nil {
		return false
	}
	for _, id := range h.CoOwners {
		if id == m.ID {
			return true
		}
	}
	return false
}

// AddCoOwner records a co-owner.
func (h *House) AddCoOwner(m *mobiles.Mobile) {
	if m == nil || h.IsCoOwner(m) {
		return
	}
	h.CoOwners = append(h.CoOwners, m.ID)
}

// Contains reports whether the point lies inside the house footprint.
func (h *House) Contains(p world.Point3D, facet *world.Map) bool {
	return h != nil && !h.deleted && h.Facet == facet && h.Footprint.Contains(p)
}

// Index is the spatial lookup over all houses on the shard. The shard owns
// one index; consumers receive it explicitly.
type Index struct {
	houses []*House
}

// NewIndex creates an empty house index.
func NewIndex() *Index {
	return &Index{}
}

// Add registers a house.
func (idx *Index) Add(h *House) {
	idx.houses = append(idx.houses, h)
}

// Remove drops a house from the index.
func (idx *Index) Remove(h *House) {
	for i, existing := range idx.houses {
		if existing == h {
			idx.houses = append(idx.houses[:i], idx.houses[i+1:]...)
			return
		}
	}
}

// FindAt returns the house whose footprint contains the point, or nil.
func (idx *Index) FindAt(p world.Point3D, facet *world.Map) *House {
	for _, h := range idx.houses {
		if h.Contains(p, facet) {
			return h
		}
	}
	return nil
}

// FindInRect returns every live house whose footprint intersects the
// rectangle on the given map.
func (idx *Index) FindInRect(rect world.Rect2D, facet *world.Map) []*House {
	var out []*House
	for _, h := range idx.houses {
		if h.deleted || h.Facet != facet {
			continue
		}
		if h.Footprint.Intersects(rect) {
			out = append(out, h)
		}
	}
	return out
}

// All returns every registered house, demolished ones included.
func (idx *Index) All() []*House {
	return idx.houses
}
