package commands

import (
	"strings"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/township"
)

// Keyword is a pre-tokenized speech code. The speech pipeline hands the
// dispatcher recognized codes alongside the raw text; when the pipeline
// recognizes nothing, the raw text is matched against the phrase table as a
// fallback.
type Keyword uint16

const (
	KeywordLockThisDown Keyword = 0x0100 + iota
	KeywordReleaseThis
	KeywordRemoveThyself
	KeywordLeaveTownship
)

// keywordPhrases maps each keyword to its spoken phrase, for fallback
// matching against free text.
var keywordPhrases = map[Keyword]string{
	KeywordLockThisDown:  "lock this down",
	KeywordReleaseThis:   "release this",
	KeywordRemoveThyself: "remove thyself",
	KeywordLeaveTownship: "leave township",
}

// matchKeywords returns the recognized codes, falling back to phrase
// matching on the raw text when the pipeline supplied none.
func matchKeywords(keywords []Keyword, text string) []Keyword {
	if len(keywords) > 0 {
		return keywords
	}
	lowered := strings.ToLower(text)
	var out []Keyword
	for kw, phrase := range keywordPhrases {
		if strings.Contains(lowered, phrase) {
			out = append(out, kw)
		}
	}
	return out
}

// HandleSpeech processes one spoken line. target carries whatever the actor
// last targeted: an item for lockdown phrases, a creature for dismissal and
// livestock phrases. Returns whether any keyword was consumed.
func (d *Dispatcher) HandleSpeech(actor *mobiles.Mobile, keywords []Keyword, text string, target any) bool {
	if actor == nil {
		return false
	}
	stone := d.Townships.StoneFor(actor)
	if stone == nil {
		return false
	}

	handled := false
	for _, kw := range matchKeywords(keywords, text) {
		switch kw {
		case KeywordLockThisDown:
			handled = d.lockThisDown(stone, actor, target) || handled
		case KeywordReleaseThis:
			handled = d.releaseThis(stone, actor, target) || handled
		case KeywordRemoveThyself:
			handled = d.removeThyself(stone, actor, target) || handled
		case KeywordLeaveTownship:
			handled = d.leaveTownship(stone, actor, target) || handled
		}
	}
	return handled
}

func (d *Dispatcher) lockThisDown(stone *township.Stone, actor *mobiles.Mobile, target any) bool {
	it, ok := target.(items.Carriable)
	if !ok {
		actor.SendMessage("Thou canst not lock that down.")
		return false
	}
	if !stone.CheckAccess(actor, township.AccessMember) {
		return false
	}
	if !stone.LockDown(it, actor) {
		actor.SendMessage("Thou canst not lock that down.")
		return false
	}
	actor.SendMessage("The item has been locked down.")
	return true
}

func (d *Dispatcher) releaseThis(stone *township.Stone, actor *mobiles.Mobile, target any) bool {
	it, ok := target.(items.Carriable)
	if !ok {
		return false
	}
	if !stone.IsLockdownOwner(actor, it) {
		actor.SendMessage("That is not thine to release.")
		return false
	}
	if !stone.Release(it) {
		return false
	}
	actor.SendMessage("The item has been released.")
	return true
}

func (d *Dispatcher) removeThyself(stone *township.Stone, actor *mobiles.Mobile, target any) bool {
	creature, ok := target.(*mobiles.Creature)
	if !ok {
		return false
	}
	if !stone.CheckAccess(actor, township.AccessCoLeader) {
		return false
	}
	for _, npc := range stone.NPCs() {
		if npc.Creature == creature {
			stone.DismissNPC(npc)
			actor.SendMessage("The resident departs.")
			return true
		}
	}
	actor.SendMessage("That is no township resident.")
	return false
}

func (d *Dispatcher) leaveTownship(stone *township.Stone, actor *mobiles.Mobile, target any) bool {
	creature, ok := target.(*mobiles.Creature)
	if !ok {
		return false
	}
	if !stone.IsLivestockOwner(actor, creature) && !stone.CheckAccess(actor, township.AccessCoLeader) {
		actor.SendMessage("That beast is not thine.")
		return false
	}
	if !stone.ReleaseLivestock(creature) {
		return false
	}
	actor.SendMessage("The beast is released from the township.")
	return true
}
