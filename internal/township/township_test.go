package township

import (
	"testing"
	"time"

	"github.com/grimholt/townshard/internal/guilds"
	"github.com/grimholt/townshard/internal/housing"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/oplog"
	"github.com/grimholt/townshard/internal/world"
)

// env is the shared test fixture: one facet, one guild with a leader, and a
// services bundle with a controllable clock.
type env struct {
	svc    *Services
	facet  *world.Map
	guild  *guilds.Guild
	leader *mobiles.Mobile
	now    time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		facet: world.NewMap("Avalor", 256, 256),
		// A Monday at noon, so weekday bookkeeping is stable.
		now: time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
	}
	e.leader = mobiles.NewMobile("Aria")
	e.guild = guilds.New("Stonewatch", "SW", e.leader)
	e.svc = &Services{
		Settings: DefaultSettings(),
		Guilds:   guilds.NewRegistry(),
		Houses:   housing.NewIndex(),
		Registry: NewRegistry(),
		Log:      oplog.Discard(),
		Clock:    func() time.Time { return e.now },
	}
	e.svc.Guilds.Register(e.guild)
	return e
}

var testCenter = world.Point3D{X: 128, Y: 128}

// stone places a township at the fixture center.
func (e *env) stone() *Stone {
	return NewStone(e.svc, e.guild, testCenter, e.facet)
}

// addHouse registers a 15×15 house centered on p.
func (e *env) addHouse(owner *mobiles.Mobile, p world.Point3D) *housing.House {
	h := housing.New(housing.KindClassic, owner, world.RectAround(p, 7), e.facet)
	e.svc.Houses.Add(h)
	return h
}

// member enrolls a fresh mobile in the fixture guild.
func (e *env) member(name string) *mobiles.Mobile {
	m := mobiles.NewMobile(name)
	e.guild.AddMember(m)
	return m
}

// advanceWeeks moves the clock forward by whole weeks.
func (e *env) advanceWeeks(n int) {
	e.now = e.now.Add(time.Duration(n) * 7 * 24 * time.Hour)
}
