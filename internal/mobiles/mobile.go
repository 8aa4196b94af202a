// Package mobiles provides the mobile primitives the township core consumes:
// players and creatures with location, guild affiliation, and messaging.
package mobiles

import (
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/world"
)

// StaffLevel separates players from shard staff with administrative override.
type StaffLevel uint8

const (
	LevelPlayer StaffLevel = iota
	LevelCounselor
	LevelGameMaster
	LevelAdministrator
)

// messageLogCap bounds the per-mobile message buffer.
const messageLogCap = 50

// Mobile is a player or NPC body in the world.
type Mobile struct {
	ID   world.Serial `json:"id"`
	Name string       `json:"name"`

	Loc   world.Point3D `json:"loc"`
	Facet *world.Map    `json:"-"`

	GuildID world.Serial `json:"guild_id,omitempty"` // 0 = no guild
	Staff   StaffLevel   `json:"staff,omitempty"`

	Fame  int `json:"fame"`
	Kills int `json:"kills"` // Murder counts

	backpack *items.Container
	bankBox  *items.Container

	deleted  bool
	messages []string
}

// NewMobile creates a mobile with a fresh serial, backpack, and bank box.
func NewMobile(name string) *Mobile {
	return &Mobile{
		ID:       world.NextSerial(),
		Name:     name,
		backpack: items.NewContainer("backpack"),
		bankBox:  items.NewContainer("bank box"),
	}
}

// Serial returns the mobile's world serial.
func (m *Mobile) Serial() world.Serial { return m.ID }

// Deleted reports whether the mobile has been removed from the world.
func (m *Mobile) Deleted() bool { return m.deleted }

// Delete removes the mobile from the world.
func (m *Mobile) Delete() {
	m.deleted = true
	m.Facet = nil
}

// Backpack returns the mobile's backpack container.
func (m *Mobile) Backpack() *items.Container { return m.backpack }

// BankBox returns the mobile's bank box container.
func (m *Mobile) BankBox() *items.Container { return m.bankBox }

// MoveToWorld places the mobile at a location on a map.
func (m *Mobile) MoveToWorld(p world.Point3D, facet *world.Map) {
	m.Loc = p
	m.Facet = facet
}

// SendMessage delivers a line of feedback to the mobile. Messages are kept in
// a bounded buffer so handlers and tests can inspect recent output.
func (m *Mobile) SendMessage(text string) {
	m.messages = append(m.messages, text)
	if len(m.messages) > messageLogCap {
		m.messages = m.messages[len(m.messages)-messageLogCap:]
	}
}

// LastMessage returns the most recently delivered message, or "".
func (m *Mobile) LastMessage() string {
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1]
}

// Messages returns the buffered messages, oldest first.
func (m *Mobile) Messages() []string { return m.messages }

// InRange reports whether the mobile stands within dist tiles (Chebyshev) of
// the point on the same map.
func (m *Mobile) InRange(p world.Point3D, facet *world.Map, dist int) bool {
	if m.Facet != facet || facet == nil {
		return false
	}
	dx := m.Loc.X - p.X
	if dx < 0 {
		dx = -dx
	}
	dy := m.Loc.Y - p.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= dist && dy <= dist
}
