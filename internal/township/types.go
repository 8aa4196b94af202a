// Package township implements guild-owned territories: access control, the
// weekly activity state machine, daily fees, placement validation, item and
// NPC registries, resource stockpiles, and the pack-up/restore protocol.
package township

// AccessLevel is the total-order role model gating every mutating township
// operation.
type AccessLevel uint8

const (
	AccessEnemy AccessLevel = iota
	AccessNeutral
	AccessAlly
	AccessMember
	AccessCoLeader
	AccessLeader
)

// AccessName returns a display name for an access level.
func AccessName(a AccessLevel) string {
	switch a {
	case AccessEnemy:
		return "Enemy"
	case AccessNeutral:
		return "Neutral"
	case AccessAlly:
		return "Ally"
	case AccessMember:
		return "Member"
	case AccessCoLeader:
		return "Co-Leader"
	case AccessLeader:
		return "Leader"
	default:
		return "Unknown"
	}
}

// LawLevel selects the township's legal posture, which drives murder
// accounting and a fee surcharge.
type LawLevel uint8

const (
	LawNone LawLevel = iota
	LawAuthority
	LawLawless
)

// LawName returns a display name for a law level.
func LawName(l LawLevel) string {
	switch l {
	case LawAuthority:
		return "Grant of Authority"
	case LawLawless:
		return "Lawless"
	default:
		return "None"
	}
}

// ActivityLevel is the five-tier classification of weekly visitor traffic.
type ActivityLevel uint8

const (
	ActivityNone ActivityLevel = iota
	ActivityLow
	ActivityMedium
	ActivityHigh
	ActivityBooming
)

// ActivityName returns a display name for an activity level.
func ActivityName(a ActivityLevel) string {
	switch a {
	case ActivityLow:
		return "Low"
	case ActivityMedium:
		return "Medium"
	case ActivityHigh:
		return "High"
	case ActivityBooming:
		return "Booming"
	default:
		return "None"
	}
}
