package commands

import (
	"testing"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/township"
	"github.com/grimholt/townshard/internal/world"
)

func TestMatchKeywordsPrefersCodes(t *testing.T) {
	got := matchKeywords([]Keyword{KeywordReleaseThis}, "lock this down")
	if len(got) != 1 || got[0] != KeywordReleaseThis {
		t.Fatalf("matchKeywords = %v, want supplied code only", got)
	}
}

func TestMatchKeywordsFallsBackToText(t *testing.T) {
	got := matchKeywords(nil, "I say LOCK THIS DOWN at once")
	if len(got) != 1 || got[0] != KeywordLockThisDown {
		t.Fatalf("matchKeywords = %v, want lockdown from free text", got)
	}
	if got := matchKeywords(nil, "good morrow"); got != nil {
		t.Fatalf("matchKeywords = %v, want nothing", got)
	}
}

func TestSpeechLockdownAndRelease(t *testing.T) {
	e := newCmdEnv(t)
	m := e.member("Bram")
	chest := items.NewContainer("oak chest")

	if !e.d.HandleSpeech(m, nil, "lock this down", chest) {
		t.Fatal("lockdown speech not handled")
	}
	if !e.stone.IsLockedDown(chest) {
		t.Fatal("chest not locked down")
	}

	// Another member cannot release someone else's lockdown.
	other := e.member("Cass")
	if e.d.HandleSpeech(other, []Keyword{KeywordReleaseThis}, "", chest) {
		t.Fatal("release by non-owner should not be handled")
	}
	if !e.stone.IsLockedDown(chest) {
		t.Fatal("chest released by non-owner")
	}

	if !e.d.HandleSpeech(m, []Keyword{KeywordReleaseThis}, "", chest) {
		t.Fatal("release by locker not handled")
	}
	if e.stone.IsLockedDown(chest) {
		t.Fatal("chest still locked after release")
	}
}

func TestSpeechOutsideTownshipIgnored(t *testing.T) {
	e := newCmdEnv(t)
	wanderer := mobiles.NewMobile("Pell")
	wanderer.MoveToWorld(world.Point3D{X: 5, Y: 5}, e.facet)

	if e.d.HandleSpeech(wanderer, nil, "lock this down", items.NewContainer("box")) {
		t.Fatal("speech outside a township should not be handled")
	}
}

func TestSpeechRemoveThyself(t *testing.T) {
	e := newCmdEnv(t)
	e.addHouse(e.leader, townCenter)
	e.stone.DepositGold(items.NewGold(50_000), "seed")

	result, npc := e.stone.PlaceNPC(e.leader, township.NPCProvisioner, townCenter, e.facet)
	if result != township.PlaceNPCSuccess {
		t.Fatalf("PlaceNPC = %v", result)
	}

	// Plain members lack the standing to dismiss residents.
	m := e.member("Bram")
	if e.d.HandleSpeech(m, []Keyword{KeywordRemoveThyself}, "", npc.Creature) {
		t.Fatal("member dismissal should be refused")
	}
	if len(e.stone.NPCs()) != 1 {
		t.Fatal("NPC dismissed by a plain member")
	}

	if !e.d.HandleSpeech(e.leader, []Keyword{KeywordRemoveThyself}, "", npc.Creature) {
		t.Fatal("leader dismissal not handled")
	}
	if len(e.stone.NPCs()) != 0 {
		t.Fatal("NPC still placed after dismissal")
	}
}

func TestSpeechLeaveTownship(t *testing.T) {
	e := newCmdEnv(t)
	shepherd := e.member("Bram")

	sheep := mobiles.NewCreature("sheep", true)
	sheep.ControlMaster = shepherd.ID
	sheep.MoveToWorld(townCenter, e.facet)
	if !e.stone.MakeLivestock(sheep) {
		t.Fatal("MakeLivestock failed")
	}

	stranger := e.member("Cass")
	if e.d.HandleSpeech(stranger, []Keyword{KeywordLeaveTownship}, "", sheep) {
		t.Fatal("livestock released by a stranger")
	}

	if !e.d.HandleSpeech(shepherd, []Keyword{KeywordLeaveTownship}, "", sheep) {
		t.Fatal("owner release not handled")
	}
	if sheep.ControlMaster != shepherd.ID {
		t.Fatalf("ControlMaster = %d, want %d", sheep.ControlMaster, shepherd.ID)
	}
}
