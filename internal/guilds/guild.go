// Package guilds provides the guild model: membership, leadership, and
// alliances. A guild is the sole ownership unit for a township.
package guilds

import (
	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// Guild is a persistent player organization.
type Guild struct {
	ID           world.Serial `json:"id"`
	Name         string       `json:"name"`
	Abbreviation string       `json:"abbreviation"`

	LeaderID world.Serial   `json:"leader_id"`
	Members  []world.Serial `json:"members"`
	Allies   []world.Serial `json:"allies"` // Allied guild IDs

	// The guildstone item anchoring the guild in the world.
	Guildstone *items.Item `json:"-"`

	disbanded bool
}

// New creates a guild led by the given mobile, with a guildstone.
func New(name, abbreviation string, leader *mobiles.Mobile) *Guild {
	g := &Guild{
		ID:           world.NextSerial(),
		Name:         name,
		Abbreviation: abbreviation,
		Guildstone:   items.NewItem("guildstone of " + name),
	}
	g.Guildstone.Movable = false
	if leader != nil {
		g.LeaderID = leader.ID
		g.Members = append(g.Members, leader.ID)
		leader.GuildID = g.ID
	}
	return g
}

// Disbanded reports whether the guild has been dissolved.
func (g *Guild) Disbanded() bool { return g == nil || g.disbanded }

// Disband dissolves the guild and deletes its guildstone.
func (g *Guild) Disband() {
	if g.disbanded {
		return
	}
	g.disbanded = true
	if g.Guildstone != nil {
		g.Guildstone.Delete()
	}
}

// IsLeader reports whether the mobile leads this guild.
func (g *Guild) IsLeader(m *mobiles.Mobile) bool {
	return g != nil && m != nil && !g.disbanded && g.LeaderID == m.ID
}

// IsMember reports whether the mobile belongs to this guild.
func (g *Guild) IsMember(m *mobiles.Mobile) bool {
	if g == nil || m == nil || g.disbanded {
		return false
	}
	for _, id := range g.Members {
		if id == m.ID {
			return true
		}
	}
	return false
}

// AddMember enrolls a mobile in the guild.
func (g *Guild) AddMember(m *mobiles.Mobile) {
	if g.IsMember(m) {
		return
	}
	g.Members = append(g.Members, m.ID)
	m.GuildID = g.ID
}

// RemoveMember removes a mobile from the guild.
func (g *Guild) RemoveMember(m *mobiles.Mobile) {
	for i, id := range g.Members {
		if id == m.ID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			break
		}
	}
	if m.GuildID == g.ID {
		m.GuildID = 0
	}
}

// IsAlliedWith reports whether the two guilds are in alliance.
func (g *Guild) IsAlliedWith(other *Guild) bool {
	if g == nil || other == nil || g.disbanded || other.disbanded {
		return false
	}
	for _, id := range g.Allies {
		if id == other.ID {
			return true
		}
	}
	return false
}

// DeclareAlliance records a mutual alliance between two guilds.
func DeclareAlliance(a, b *Guild) {
	if a == nil || b == nil || a.ID == b.ID {
		return
	}
	if !a.IsAlliedWith(b) {
		a.Allies = append(a.Allies, b.ID)
	}
	if !b.IsAlliedWith(a) {
		b.Allies = append(b.Allies, a.ID)
	}
}

// Registry resolves guilds by ID and by member. The shard owns one registry;
// components that need cross-guild lookups receive it explicitly.
type Registry struct {
	byID map[world.Serial]*Guild
}

// NewRegistry creates an empty guild registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[world.Serial]*Guild)}
}

// Register adds a guild to the registry.
func (r *Registry) Register(g *Guild) {
	r.byID[g.ID] = g
}

// Unregister removes a guild from the registry.
func (r *Registry) Unregister(g *Guild) {
	delete(r.byID, g.ID)
}

// Find returns the guild with the given ID, or nil.
func (r *Registry) Find(id world.Serial) *Guild {
	return r.byID[id]
}

// GuildOf returns the guild the mobile belongs to, or nil.
func (r *Registry) GuildOf(m *mobiles.Mobile) *Guild {
	if m == nil || m.GuildID == 0 {
		return nil
	}
	g := r.byID[m.GuildID]
	if g.Disbanded() {
		return nil
	}
	return g
}

// All returns every registered guild.
func (r *Registry) All() []*Guild {
	out := make([]*Guild, 0, len(r.byID))
	for _, g := range r.byID {
		out = append(out, g)
	}
	return out
}
