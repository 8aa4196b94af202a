package township

import (
	"github.com/grimholt/townshard/internal/mobiles"
)

// GetAccess computes the actor's access level. The function is total: it
// always yields a level, evaluated in priority order — administrative
// override, guild leader, co-owner of the house holding the stone, guild
// member, allied guild, enemy list, else neutral.
func (s *Stone) GetAccess(m *mobiles.Mobile) AccessLevel {
	if m == nil {
		return AccessNeutral
	}
	if m.Staff >= mobiles.LevelGameMaster {
		return AccessLeader
	}

	guild := s.Guild()
	if guild.IsLeader(m) {
		return AccessLeader
	}

	// Co-ownership of the house the stone occupies confers co-leadership.
	if s.svc.Houses != nil {
		if house := s.svc.Houses.FindAt(s.Center, s.Facet); !house.Deleted() && house.IsCoOwner(m) {
			return AccessCoLeader
		}
	}

	if guild.IsMember(m) {
		return AccessMember
	}
	if guild != nil && s.svc.Guilds != nil {
		if actorGuild := s.svc.Guilds.GuildOf(m); actorGuild != nil && guild.IsAlliedWith(actorGuild) {
			return AccessAlly
		}
	}
	if s.IsEnemy(m) {
		return AccessEnemy
	}
	return AccessNeutral
}

// CheckAccess reports whether the actor holds at least the required level,
// sending a role-specific denial message when it does not.
func (s *Stone) CheckAccess(m *mobiles.Mobile, required AccessLevel) bool {
	if s.GetAccess(m) >= required {
		return true
	}
	if m != nil {
		m.SendMessage(denialMessage(required))
	}
	return false
}

// denialMessage returns the player-facing refusal for an access check that
// required the given level.
func denialMessage(required AccessLevel) string {
	switch required {
	case AccessLeader:
		return "Only the guild leader may do that."
	case AccessCoLeader:
		return "Only the township's leadership may do that."
	case AccessMember:
		return "You must belong to the township's guild to do that."
	case AccessAlly:
		return "Only the guild and its allies may do that."
	default:
		return "You do not have the township's leave to do that."
	}
}

// ViewRange is how close an actor must stand to the stone for view-only
// operations.
const ViewRange = 8

// CheckView validates spatial presence and proximity only: the actor must be
// on the stone's map and within ViewRange tiles.
func (s *Stone) CheckView(m *mobiles.Mobile) bool {
	if m == nil {
		return false
	}
	if m.Staff >= mobiles.LevelGameMaster {
		return true
	}
	if !m.InRange(s.Center, s.Facet, ViewRange) {
		m.SendMessage("You are too far away from the township stone.")
		return false
	}
	return true
}
