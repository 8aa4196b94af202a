package township

import (
	"errors"
	"testing"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/world"
)

// packedEnv builds a township with one of everything packable.
func packedEnv(t *testing.T) (*env, *Stone) {
	t.Helper()
	e := newEnv(t)
	e.addHouse(e.leader, testCenter)
	e.guild.Guildstone.MoveToWorld(testCenter, e.facet)
	s := e.stone()
	s.goldHeld = 100_000

	addon := items.NewAddon("fountain", true)
	addon.MoveToWorld(world.Point3D{X: 130, Y: 130}, e.facet)
	s.RegisterItem(addon, e.leader)

	plant := items.NewPlant("rose bush", "rose seed", true)
	plant.MoveToWorld(world.Point3D{X: 131, Y: 130}, e.facet)
	s.RegisterItem(plant, e.leader)

	chest := items.NewContainer("oaken chest")
	chest.MoveToWorld(world.Point3D{X: 132, Y: 130}, e.facet)
	if !s.LockDown(chest, e.leader) {
		t.Fatalf("lockdown failed")
	}

	sheep := mobiles.NewCreature("sheep", true)
	sheep.ControlMaster = e.leader.ID
	sheep.MoveToWorld(world.Point3D{X: 133, Y: 130}, e.facet)
	if !s.MakeLivestock(sheep) {
		t.Fatalf("livestock conversion failed")
	}

	s.Stockpile().Deposit(items.NewCommodity(items.ResourceBoards, 400), e.leader)
	return e, s
}

func TestPackUpIsExactlyOnce(t *testing.T) {
	e, s := packedEnv(t)

	deed, key, err := s.PackUp(e.leader)
	if err != nil {
		t.Fatalf("pack-up failed: %v", err)
	}
	if deed == nil || key == nil {
		t.Fatalf("pack-up returned deed=%v key=%v", deed, key)
	}
	if !s.PackedUp() {
		t.Fatalf("stone not flagged packed up")
	}

	again, _, err := s.PackUp(e.leader)
	if !errors.Is(err, ErrAlreadyPackedUp) {
		t.Fatalf("second pack-up: err = %v, want ErrAlreadyPackedUp", err)
	}
	if again != nil {
		t.Fatalf("second pack-up produced a second restoration deed")
	}
}

func TestPackUpCratesAreKeyLocked(t *testing.T) {
	e, s := packedEnv(t)

	deed, key, err := s.PackUp(e.leader)
	if err != nil {
		t.Fatalf("pack-up failed: %v", err)
	}
	if len(deed.Crates) == 0 {
		t.Fatalf("no moving crates produced")
	}
	for _, crate := range deed.Crates {
		if !crate.Locked {
			t.Fatalf("crate %q not locked", CrateName(crate.Category))
		}
		if !key.Opens(&crate.Container) {
			t.Fatalf("key does not open crate %q", CrateName(crate.Category))
		}
		if len(crate.Contents()) == 0 {
			t.Fatalf("crate %q is empty", CrateName(crate.Category))
		}
	}
}

func TestPackUpEmptiesRegistries(t *testing.T) {
	e, s := packedEnv(t)

	if _, _, err := s.PackUp(e.leader); err != nil {
		t.Fatalf("pack-up failed: %v", err)
	}
	if n := len(s.OwnedItems()); n != 0 {
		t.Fatalf("%d items still registered", n)
	}
	if n := len(s.Lockdowns()); n != 0 {
		t.Fatalf("%d lockdowns still registered", n)
	}
	if n := len(s.Livestock()); n != 0 {
		t.Fatalf("%d livestock still held", n)
	}
	if s.Stockpile().Count(items.ResourceBoards) != 0 {
		t.Fatalf("stockpile not drained")
	}
}

func TestRestoreClearsPackedFlag(t *testing.T) {
	e, s := packedEnv(t)

	deed, _, err := s.PackUp(e.leader)
	if err != nil {
		t.Fatalf("pack-up failed: %v", err)
	}

	v := &Validator{
		Houses:    e.svc.Houses,
		Guilds:    e.svc.Guilds,
		Threshold: e.svc.Settings.GuildHousePercentage,
	}
	if err := deed.Use(e.leader, testCenter, e.facet, v); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if s.PackedUp() {
		t.Fatalf("stone still flagged packed up after restore")
	}
	if !s.Contains(testCenter, e.facet) {
		t.Fatalf("restored region does not cover the center")
	}

	// A used deed never restores twice.
	if err := deed.Use(e.leader, testCenter, e.facet, v); err == nil {
		t.Fatalf("second use of restoration deed succeeded")
	}
}

func TestItemRestorationDeedRoundTrip(t *testing.T) {
	e := newEnv(t)
	statue := items.NewItem("marble statue")
	statue.MoveToWorld(world.Point3D{X: 50, Y: 50}, e.facet)

	deed := NewItemRestorationDeed(1, statue)
	if !statue.Stashed() {
		t.Fatalf("deeded item not stashed")
	}

	at := world.Point3D{X: 60, Y: 60}
	if err := deed.Use(at, e.facet); err != nil {
		t.Fatalf("deed use failed: %v", err)
	}
	if statue.Loc != at || statue.Facet != e.facet {
		t.Fatalf("restored item at %v on %v", statue.Loc, statue.Facet)
	}
	if err := deed.Use(at, e.facet); err == nil {
		t.Fatalf("second deed use succeeded")
	}
}

func TestLivestockDeedRestoresOwner(t *testing.T) {
	e := newEnv(t)
	owner := e.member("Shepherd")
	sheep := mobiles.NewCreature("sheep", true)
	sheep.Invulnerable = true
	sheep.GuildFlagged = true

	deed := NewLivestockRestorationDeed(1, sheep, owner.ID)
	at := world.Point3D{X: 40, Y: 40}
	if err := deed.Use(at, e.facet); err != nil {
		t.Fatalf("deed use failed: %v", err)
	}
	if sheep.ControlMaster != owner.ID {
		t.Fatalf("control master = %d, want %d", sheep.ControlMaster, owner.ID)
	}
	if sheep.Invulnerable || sheep.GuildFlagged {
		t.Fatalf("township flags not cleared on restore")
	}
}
