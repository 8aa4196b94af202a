package township

// Hard invariants of the township economy. These are not tunable.
const (
	MaxGoldHeld          = 10_000_000
	MaxStockpilePerKind  = 10_000_000
	LedgerCap            = 10
	MessageLogCap        = 25
	RadiusStandard       = 50
	RadiusExtended       = 75
	FamePointsPerVisit   = 288
	FameVisitsDailyQuota = 41
)

// Settings is the process-wide township configuration: fees, charges,
// modifiers, and clearances. One instance exists per shard, persisted in the
// flat binary settings file at world-save boundaries.
type Settings struct {
	// Daily fee components, in gold.
	BaseFee        int
	ExtendedFee    int
	LawlessFee     int
	LawAuthorityFee int
	NoGateOutFee   int
	NoGateInFee    int
	NoRecallOutFee int
	NoRecallInFee  int

	// Fee modifiers keyed by the actual (not ratcheted) activity level.
	FeeActivityModifier [5]float64 // Base, NPC, and extended fees
	LawFeeModifier     [5]float64 // Law-level surcharge only

	// Weekly visitor thresholds per tier: Low, Medium, High, Booming.
	ActivityThresholds [4]int

	// Consecutive qualifying weeks required before promoting into each tier.
	ActivityWeeks [4]int

	// Placement.
	GuildHousePercentage float64 // Required member/ally house ownership fraction
	NeutralHouseClearance int     // Tiles a stone must keep from non-guild houses

	// Initial funding charge for placing a stone, in gold.
	InitialFundingFee int
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() *Settings {
	return &Settings{
		BaseFee:         100,
		ExtendedFee:     250,
		LawlessFee:      500,
		LawAuthorityFee: 500,
		NoGateOutFee:    100,
		NoGateInFee:     100,
		NoRecallOutFee:  50,
		NoRecallInFee:   50,

		FeeActivityModifier: [5]float64{1.0, 1.5, 2.0, 3.0, 4.0},
		LawFeeModifier:     [5]float64{1.0, 1.2, 1.5, 2.0, 3.0},

		ActivityThresholds: [4]int{20, 40, 80, 120},
		ActivityWeeks:      [4]int{0, 1, 2, 3},

		GuildHousePercentage:  0.75,
		NeutralHouseClearance: 5,

		InitialFundingFee: 12_500,
	}
}

// FeeModifier returns the base fee modifier for an actual activity level.
func (s *Settings) FeeModifier(a ActivityLevel) float64 {
	return s.FeeActivityModifier[a]
}

// LawModifier returns the law surcharge modifier for an actual activity level.
func (s *Settings) LawModifier(a ActivityLevel) float64 {
	return s.LawFeeModifier[a]
}

// Threshold returns the weekly visitor threshold for entering the given tier.
// ActivityNone has no threshold.
func (s *Settings) Threshold(a ActivityLevel) int {
	if a == ActivityNone {
		return 0
	}
	return s.ActivityThresholds[a-1]
}

// WeeksRequired returns the consecutive qualifying weeks required to promote
// into the given tier.
func (s *Settings) WeeksRequired(a ActivityLevel) int {
	if a == ActivityNone {
		return 0
	}
	return s.ActivityWeeks[a-1]
}
