// Shard ties the world, registries, and township systems together and runs
// them each tick.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/grimholt/townshard/internal/config"
	"github.com/grimholt/townshard/internal/guilds"
	"github.com/grimholt/townshard/internal/housing"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/oplog"
	"github.com/grimholt/townshard/internal/persistence"
	"github.com/grimholt/townshard/internal/township"
	"github.com/grimholt/townshard/internal/world"
)

// Shard holds the complete shard state and wires the township systems
// together.
type Shard struct {
	Config config.Config

	Facet     *world.Map
	Guilds    *guilds.Registry
	Houses    *housing.Index
	Townships *township.Registry
	Mobiles   []*mobiles.Mobile

	Settings *township.Settings
	Services *township.Services

	Store *persistence.Store
	Log   *oplog.Logger

	LastTick uint64
}

// CurrentTick returns the most recently processed tick number.
func (sh *Shard) CurrentTick() uint64 {
	return sh.LastTick
}

// NewShard builds a shard from configuration: terrain, registries, settings,
// and any townships stored in the world save.
func NewShard(cfg config.Config, store *persistence.Store) (*Shard, error) {
	gen := world.DefaultGenConfig()
	gen.Width = cfg.MapWidth
	gen.Height = cfg.MapHeight
	gen.Seed = cfg.Seed
	facet := world.Generate(gen)

	settings, err := persistence.LoadSettings(cfg.SaveRoot)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	sh := &Shard{
		Config:    cfg,
		Facet:     facet,
		Guilds:    guilds.NewRegistry(),
		Houses:    housing.NewIndex(),
		Townships: township.NewRegistry(),
		Settings:  settings,
		Store:     store,
		Log:       oplog.New(cfg.SaveRoot),
	}
	sh.Services = &township.Services{
		Settings: settings,
		Guilds:   sh.Guilds,
		Houses:   sh.Houses,
		Registry: sh.Townships,
		Log:      sh.Log,
	}

	if cfg.SeedHouses > 0 {
		sh.seedHouses(cfg.SeedHouses)
	}

	if store != nil {
		snaps, err := store.LoadTownships()
		if err != nil {
			return nil, fmt.Errorf("load townships: %w", err)
		}
		for _, snap := range snaps {
			township.RestoreStone(sh.Services, snap, facet)
		}
		if len(snaps) > 0 {
			slog.Info("townships restored from save", "count", len(snaps))
		}
	}

	slog.Info("shard ready",
		"facet", facet.Name,
		"houses", len(sh.Houses.All()),
		"townships", len(sh.Townships.All()),
	)
	return sh, nil
}

// seedHouses scatters starter homesteads over scored plots. Useful for fresh
// shards and load testing; live shards get houses from players.
func (sh *Shard) seedHouses(count int) {
	plots := world.PlaceHomesteadPlots(sh.Facet, sh.Config.Seed, count)
	for i, plot := range plots {
		owner := mobiles.NewMobile(fmt.Sprintf("Homesteader %d", i+1))
		owner.Loc = plot.Location
		owner.Facet = sh.Facet

		footprint := world.RectAround(plot.Location, 7)
		house := housing.New(housing.KindClassic, owner, footprint, sh.Facet)
		sh.Houses.Add(house)
		sh.Mobiles = append(sh.Mobiles, owner)
	}
	slog.Info("homesteads seeded", "requested", count, "placed", len(plots))
}

// TickMinute runs per-tick updates: foot-traffic counting for every mobile
// standing in a township.
func (sh *Shard) TickMinute(tick uint64) {
	sh.LastTick = tick
	for _, m := range sh.Mobiles {
		if m.Deleted() {
			continue
		}
		if stone := sh.Townships.StoneFor(m); stone != nil {
			stone.Lock()
			stone.CountVisitor(m)
			stone.Unlock()
		}
	}
}

// TickDay runs the daily township cycle — fame conversion, weekly activity
// evaluation at week boundaries, fee charging, lookout memory decay — then
// saves the shard.
func (sh *Shard) TickDay(tick uint64) {
	sh.LastTick = tick
	slog.Info("day tick", "time", ShardTime(tick), "townships", len(sh.Townships.All()))

	township.DoAllTownshipFees(sh.Townships)

	// Lookout memory retention is counted in days.
	for _, stone := range sh.Townships.All() {
		stone.Lock()
		stone.DecayLookoutMemory()
		stone.Unlock()
	}

	if sh.Store != nil {
		if err := sh.Store.SaveShardState(sh.Config.SaveRoot, sh.Settings, sh.Townships, int64(tick)); err != nil {
			slog.Error("shard save failed", "err", err)
		}
	}
}

// TickWeek logs the weekly rollover. The activity state machine itself keys
// off the wall-clock ISO week inside the daily cycle, so nothing is evaluated
// here.
func (sh *Shard) TickWeek(tick uint64) {
	sh.LastTick = tick
	slog.Info("week tick", "time", ShardTime(tick))
}
