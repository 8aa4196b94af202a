package township

import (
	"testing"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
)

func TestItemRegistryPurgesDeletedLazily(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	bench := items.NewAddon("bench", true)
	fountain := items.NewAddon("fountain", false)
	s.RegisterItem(bench, e.leader)
	s.RegisterItem(fountain, e.leader)
	if got := s.ItemCount(); got != 2 {
		t.Fatalf("ItemCount = %d, want 2", got)
	}

	bench.Delete()

	// The registry still holds the stale record until the next read.
	if got := len(s.itemRegistry); got != 2 {
		t.Fatalf("raw registry size = %d before defrag, want 2", got)
	}
	if got := s.ItemCount(); got != 1 {
		t.Fatalf("ItemCount = %d after delete, want 1", got)
	}
	if got := len(s.itemRegistry); got != 1 {
		t.Fatalf("raw registry size = %d after defrag, want 1", got)
	}
	for _, rec := range s.OwnedItems() {
		if rec.Item == bench {
			t.Fatal("deleted item survived defrag")
		}
	}
}

func TestLockDownTogglesMovable(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	m := e.member("Bram")
	chest := items.NewContainer("oak chest")

	if !chest.Movable {
		t.Fatal("fresh container should be movable")
	}
	if !s.LockDown(chest, m) {
		t.Fatal("LockDown failed")
	}
	if chest.Movable {
		t.Fatal("locked-down item should not be movable")
	}
	if s.LockDown(chest, m) {
		t.Fatal("double lockdown should fail")
	}
	if !s.IsLockedDown(chest) {
		t.Fatal("IsLockedDown = false for locked item")
	}
	if !s.Release(chest) {
		t.Fatal("Release failed")
	}
	if !chest.Movable {
		t.Fatal("released item should be movable again")
	}
	if s.Release(chest) {
		t.Fatal("second Release should fail")
	}
}

func TestLockdownOwnership(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	locker := e.member("Bram")
	other := e.member("Cass")
	chest := items.NewContainer("oak chest")
	s.LockDown(chest, locker)

	if !s.IsLockdownOwner(locker, chest) {
		t.Fatal("locker should own the lockdown")
	}
	if s.IsLockdownOwner(other, chest) {
		t.Fatal("unrelated member should not own the lockdown")
	}
	if !s.IsLockdownOwner(e.leader, chest) {
		t.Fatal("leader should override lockdown ownership")
	}
}

func TestLivestockRoundTrip(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	shepherd := e.member("Bram")

	sheep := mobiles.NewCreature("sheep", true)
	sheep.ControlMaster = shepherd.ID

	if !s.MakeLivestock(sheep) {
		t.Fatal("MakeLivestock failed")
	}
	if sheep.ControlMaster != 0 {
		t.Fatal("livestock should have no control master")
	}
	if !sheep.Invulnerable || !sheep.GuildFlagged {
		t.Fatal("livestock should be invulnerable and guild flagged")
	}
	if s.MakeLivestock(sheep) {
		t.Fatal("creature cannot be made livestock twice")
	}
	if !s.IsLivestockOwner(shepherd, sheep) {
		t.Fatal("original owner should be able to reclaim")
	}

	if !s.ReleaseLivestock(sheep) {
		t.Fatal("ReleaseLivestock failed")
	}
	if sheep.ControlMaster != shepherd.ID {
		t.Fatalf("ControlMaster = %d after release, want %d", sheep.ControlMaster, shepherd.ID)
	}
	if sheep.Invulnerable || sheep.GuildFlagged {
		t.Fatal("release should strip invulnerability and guild flag")
	}
	if s.ReleaseLivestock(sheep) {
		t.Fatal("second release should fail")
	}
}

func TestLivestockRejectsUntamable(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	wolf := mobiles.NewCreature("dire wolf", false)
	if s.MakeLivestock(wolf) {
		t.Fatal("untamable creature accepted as livestock")
	}
}
