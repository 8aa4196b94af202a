package township

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/grimholt/townshard/internal/world"
)

// FeeBreakdown returns the human-readable component list from the most recent
// charged daily fee.
func (s *Stone) FeeBreakdown() []string { return s.feeBreakdown }

// PreviewFeeBreakdown computes today's fee components without touching any
// stone state.
func (s *Stone) PreviewFeeBreakdown() []string {
	_, breakdown := s.dailyFee(false)
	return breakdown
}

// GetTotalFeePerDay computes today's fee. When charge is true the subsidy
// pool is debited and the stored breakdown refreshed; a preview leaves the
// stone untouched.
func (s *Stone) GetTotalFeePerDay(charge bool) int {
	total, breakdown := s.dailyFee(charge)
	if charge {
		s.feeBreakdown = breakdown
	}
	return total
}

// dailyFee computes the fee total and its component list. The subsidy
// discount is applied last; the pool is only debited when charge is true.
func (s *Stone) dailyFee(charge bool) (int, []string) {
	settings := s.svc.Settings
	mod := settings.FeeModifier(s.lastActualActivityLevel)
	var breakdown []string

	subtotal := 0
	add := func(amount int, label string) {
		if amount == 0 {
			return
		}
		subtotal += amount
		breakdown = append(breakdown, fmt.Sprintf("%s: %s gold", label, humanize.Comma(int64(amount))))
	}

	add(int(float64(settings.BaseFee)*mod), "Base fee")

	npcTotal := 0
	for _, npc := range s.liveNPCs() {
		npcTotal += int(float64(Archetypes[npc.Archetype].DailyFee) * mod)
	}
	add(npcTotal, "NPC wages")

	if s.NoGateOut {
		add(settings.NoGateOutFee, "No gate travel out")
	}
	if s.NoGateIn {
		add(settings.NoGateInFee, "No gate travel in")
	}
	if s.NoRecallOut {
		add(settings.NoRecallOutFee, "No recall out")
	}
	if s.NoRecallIn {
		add(settings.NoRecallInFee, "No recall in")
	}

	lawMod := settings.LawModifier(s.lastActualActivityLevel)
	switch s.LawLevel {
	case LawLawless:
		add(int(float64(settings.LawlessFee)*lawMod), "Lawless charter")
	case LawAuthority:
		add(int(float64(settings.LawAuthorityFee)*lawMod), "Grant of authority")
	}

	if s.Extended {
		add(int(float64(settings.ExtendedFee)*mod), "Extended area")
	}

	// Tax subsidy discount: the pool holds half-gold units, so covering a
	// discount of D gold costs 2D units. The discount tops out at 30% of the
	// subtotal.
	ceiling := 2 * (subtotal * 30 / 100)
	spend := s.TaxSubsidy
	if spend > ceiling {
		spend = ceiling
	}
	discount := spend / 2
	if discount > 0 {
		breakdown = append(breakdown, fmt.Sprintf("Tax subsidy discount: -%s gold", humanize.Comma(int64(discount))))
		if charge {
			s.TaxSubsidy -= discount * 2
		}
	}

	total := subtotal - discount
	breakdown = append(breakdown, fmt.Sprintf("Total: %s gold per day", humanize.Comma(int64(total))))
	return total, breakdown
}

// convertFameSubsidy converts banked fame points into synthetic visits,
// capped at the daily quota. Applied before the day's fee and activity
// bookkeeping so achievements substitute for foot traffic.
func (s *Stone) convertFameSubsidy() {
	s.fameVisitsToday = 0
	for s.FameSubsidy >= FamePointsPerVisit && s.fameVisitsToday < FameVisitsDailyQuota {
		s.FameSubsidy -= FamePointsPerVisit
		s.fameVisitsToday++
		day := int(s.svc.Now().Weekday())
		s.visitorsByDay[day]++
	}
	if s.fameVisitsToday > 0 {
		s.svc.Log.Log("township", "township %d converted fame subsidy into %d visits", s.Serial(), s.fameVisitsToday)
	}
}

// BankFameSubsidy credits fame points to the subsidy pool.
func (s *Stone) BankFameSubsidy(points int) {
	if points > 0 {
		s.FameSubsidy += points
	}
}

// BankTaxSubsidy credits half-gold units to the tax subsidy pool.
func (s *Stone) BankTaxSubsidy(halfGold int) {
	if halfGold > 0 {
		s.TaxSubsidy += halfGold
	}
}

// DoDailyFees runs one in-game day for this stone: fame conversion, weekly
// activity evaluation when a week boundary passed, then the fee charge.
// A stone that cannot pay is deleted outright.
func (s *Stone) DoDailyFees() {
	if s.deleted || s.packedUp {
		return
	}

	s.convertFameSubsidy()
	s.UpdateActivity()

	// Daily visitor dedupe resets with the fee cycle, even on zero-fee days.
	s.visitorsToday = make(map[world.Serial]struct{})

	fee := s.GetTotalFeePerDay(true)
	if fee <= 0 {
		return
	}

	if s.goldHeld < fee {
		slog.Warn("township defaulted on daily fees",
			"serial", s.Serial(),
			"fee", fee,
			"gold_held", s.goldHeld,
		)
		s.svc.Log.Log("township", "township %d defaulted: fee %d, held %d — deleting", s.Serial(), fee, s.goldHeld)
		s.Delete()
		return
	}

	s.goldHeld -= fee
	s.recordWithdrawal(fee, "Daily fees")
}

// DoAllTownshipFees runs the daily fee cycle for every live township. The
// shard's day tick invokes this once per in-game day. Each stone is locked
// for its cycle so API handlers on other goroutines see consistent state.
func DoAllTownshipFees(reg *Registry) {
	for _, stone := range reg.All() {
		stone.Lock()
		stone.DoDailyFees()
		stone.Unlock()
	}
}
