package township

import (
	"testing"

	"github.com/grimholt/townshard/internal/guilds"
	"github.com/grimholt/townshard/internal/mobiles"
)

func TestLeaderAlwaysPassesCoLeaderCheck(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	// No house at the stone, so co-ownership cannot be the reason.
	if !s.CheckAccess(e.leader, AccessCoLeader) {
		t.Fatalf("guild leader denied co-leader access")
	}
	if got := s.GetAccess(e.leader); got != AccessLeader {
		t.Fatalf("leader access = %s, want leader", AccessName(got))
	}

	// Still true when a house exists and the leader is not on its co-owner
	// list.
	stranger := mobiles.NewMobile("Bram")
	e.addHouse(stranger, testCenter)
	if !s.CheckAccess(e.leader, AccessCoLeader) {
		t.Fatalf("guild leader denied co-leader access with foreign house present")
	}
}

func TestAccessPriorityOrder(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	member := e.member("Corin")
	if got := s.GetAccess(member); got != AccessMember {
		t.Fatalf("member access = %s, want member", AccessName(got))
	}

	allyLeader := mobiles.NewMobile("Dagny")
	allyGuild := guilds.New("Oakenshield", "OS", allyLeader)
	e.svc.Guilds.Register(allyGuild)
	guilds.DeclareAlliance(e.guild, allyGuild)
	if got := s.GetAccess(allyLeader); got != AccessAlly {
		t.Fatalf("ally access = %s, want ally", AccessName(got))
	}

	foe := mobiles.NewMobile("Edda")
	s.AddEnemy(foe)
	if got := s.GetAccess(foe); got != AccessEnemy {
		t.Fatalf("enemy access = %s, want enemy", AccessName(got))
	}

	bystander := mobiles.NewMobile("Finn")
	if got := s.GetAccess(bystander); got != AccessNeutral {
		t.Fatalf("bystander access = %s, want neutral", AccessName(got))
	}
}

func TestHouseCoOwnerAtStoneIsCoLeader(t *testing.T) {
	e := newEnv(t)
	house := e.addHouse(e.leader, testCenter)
	s := e.stone()

	trustee := e.member("Gwen")
	house.AddCoOwner(trustee)
	if got := s.GetAccess(trustee); got != AccessCoLeader {
		t.Fatalf("house co-owner access = %s, want co-leader", AccessName(got))
	}
}

func TestStaffOverride(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	gm := mobiles.NewMobile("Hale")
	gm.Staff = mobiles.LevelGameMaster
	if got := s.GetAccess(gm); got != AccessLeader {
		t.Fatalf("game master access = %s, want leader", AccessName(got))
	}
}

func TestCheckAccessDenialMessages(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	member := e.member("Bram")
	stranger := mobiles.NewMobile("Finn")

	if s.CheckAccess(member, AccessCoLeader) {
		t.Fatal("member passed a co-leader check")
	}
	if got := member.LastMessage(); got != "Only the township's leadership may do that." {
		t.Fatalf("co-leader denial = %q", got)
	}

	if s.CheckAccess(member, AccessLeader) {
		t.Fatal("member passed a leader check")
	}
	if got := member.LastMessage(); got != "Only the guild leader may do that." {
		t.Fatalf("leader denial = %q", got)
	}

	if s.CheckAccess(stranger, AccessMember) {
		t.Fatal("stranger passed a member check")
	}
	if got := stranger.LastMessage(); got != "You must belong to the township's guild to do that." {
		t.Fatalf("member denial = %q", got)
	}

	if s.CheckAccess(stranger, AccessAlly) {
		t.Fatal("stranger passed an ally check")
	}
	if got := stranger.LastMessage(); got != "Only the guild and its allies may do that." {
		t.Fatalf("ally denial = %q", got)
	}

	// A granted check sends nothing.
	before := len(e.leader.Messages())
	if !s.CheckAccess(e.leader, AccessLeader) {
		t.Fatal("leader failed a leader check")
	}
	if len(e.leader.Messages()) != before {
		t.Fatal("granted check sent a message")
	}
}
