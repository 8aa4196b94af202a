package township

import (
	"sync"

	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// Registry tracks every live township stone on the shard. Stones register on
// creation and unregister on deletion; components needing cross-township
// queries receive the registry explicitly.
type Registry struct {
	mu     sync.Mutex
	stones []*Stone
	crates []*MovingCrate
}

// NewRegistry creates an empty township registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a stone.
func (r *Registry) Register(s *Stone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.stones {
		if existing == s {
			return
		}
	}
	r.stones = append(r.stones, s)
}

// Unregister removes a stone.
func (r *Registry) Unregister(s *Stone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.stones {
		if existing == s {
			r.stones = append(r.stones[:i], r.stones[i+1:]...)
			return
		}
	}
}

// All returns a snapshot of the live stones.
func (r *Registry) All() []*Stone {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Stone, len(r.stones))
	copy(out, r.stones)
	return out
}

// Find returns the stone with the given serial, or nil.
func (r *Registry) Find(serial world.Serial) *Stone {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stones {
		if s.Serial() == serial {
			return s
		}
	}
	return nil
}

// FindByGuild returns the stone owned by the given guild, or nil.
func (r *Registry) FindByGuild(guildID world.Serial) *Stone {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stones {
		if s.GuildID == guildID {
			return s
		}
	}
	return nil
}

// FindAt returns the stone whose claimed area covers the point, or nil.
func (r *Registry) FindAt(p world.Point3D, facet *world.Map) *Stone {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stones {
		if s.Contains(p, facet) {
			return s
		}
	}
	return nil
}

// trackCrate records an outstanding moving crate so a second pack-up of the
// same stone is rejected until every crate is delivered or destroyed.
func (r *Registry) trackCrate(c *MovingCrate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.crates = append(r.crates, c)
}

// untrackCrate releases a crate once it has been handed back to a player.
func (r *Registry) untrackCrate(c *MovingCrate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.crates {
		if existing == c {
			r.crates = append(r.crates[:i], r.crates[i+1:]...)
			return
		}
	}
}

// hasOutstandingCrates reports whether any undelivered or undestroyed moving
// crate still references the stone.
func (r *Registry) hasOutstandingCrates(stoneID world.Serial) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	live := r.crates[:0]
	for _, c := range r.crates {
		if !c.Deleted() {
			live = append(live, c)
		}
	}
	r.crates = live
	for _, c := range r.crates {
		if c.StoneID == stoneID {
			return true
		}
	}
	return false
}

// StoneFor returns the township the mobile stands in, or nil.
func (r *Registry) StoneFor(m *mobiles.Mobile) *Stone {
	if m == nil || m.Facet == nil {
		return nil
	}
	return r.FindAt(m.Loc, m.Facet)
}
