package township

import (
	"strings"
	"testing"
	"time"
)

func TestFeeScalesWithActualActivity(t *testing.T) {
	e := newEnv(t)
	s := e.stone()

	if fee := s.GetTotalFeePerDay(false); fee != e.svc.Settings.BaseFee {
		t.Fatalf("idle fee = %d, want base %d", fee, e.svc.Settings.BaseFee)
	}

	s.lastActualActivityLevel = ActivityBooming
	if fee := s.GetTotalFeePerDay(false); fee != 400 {
		t.Fatalf("booming fee = %d, want 400 (base 100 × 4.0)", fee)
	}

	// The ratchet does not drive fees; only the actual level does.
	s.activityLevel = ActivityBooming
	s.lastActualActivityLevel = ActivityNone
	if fee := s.GetTotalFeePerDay(false); fee != e.svc.Settings.BaseFee {
		t.Fatalf("collapsed-traffic fee = %d, want base %d", fee, e.svc.Settings.BaseFee)
	}
}

func TestSubsidyDiscountZeroPool(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.Extended = true
	s.LawLevel = LawAuthority

	fee := s.GetTotalFeePerDay(false)
	for _, line := range s.FeeBreakdown() {
		if strings.Contains(line, "subsidy") {
			t.Fatalf("discount line present with empty pool: %q", line)
		}
	}
	// Base 100 + authority 500 + extended 250 at modifier 1.0.
	if fee != 850 {
		t.Fatalf("fee = %d, want 850", fee)
	}
}

func TestSubsidyDiscountFullPoolIsThirtyPercent(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.BankTaxSubsidy(1_000_000)

	// Subtotal is the base fee of 100; the discount ceiling is 30% of that.
	fee := s.GetTotalFeePerDay(true)
	if fee != 70 {
		t.Fatalf("discounted fee = %d, want 70", fee)
	}
	// Covering a 30-gold discount costs 60 half-gold units.
	if s.TaxSubsidy != 1_000_000-60 {
		t.Fatalf("pool = %d, want %d", s.TaxSubsidy, 1_000_000-60)
	}
}

func TestSubsidyPoolNotDebitedOnPreview(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.BankTaxSubsidy(500)

	s.GetTotalFeePerDay(false)
	if s.TaxSubsidy != 500 {
		t.Fatalf("preview debited the pool: %d", s.TaxSubsidy)
	}
}

func TestDoDailyFeesScenario(t *testing.T) {
	e := newEnv(t)
	e.svc.Settings.BaseFee = 3_000
	s := e.stone()
	s.goldHeld = 5_000

	s.DoDailyFees()

	if s.GoldHeld() != 2_000 {
		t.Fatalf("GoldHeld = %d, want 2000", s.GoldHeld())
	}
	withdrawals := s.Withdrawals()
	if len(withdrawals) == 0 {
		t.Fatalf("no withdrawal recorded")
	}
	last := withdrawals[len(withdrawals)-1]
	if last.Amount != 3_000 || last.Description != "Daily fees" {
		t.Fatalf("newest withdrawal = %d %q, want 3000 \"Daily fees\"", last.Amount, last.Description)
	}
}

func TestFeeDefaultDeletesTownship(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.goldHeld = 50 // Below the base fee

	s.DoDailyFees()

	if !s.Deleted() {
		t.Fatalf("defaulted township not deleted")
	}
	if e.svc.Registry.Find(s.Serial()) != nil {
		t.Fatalf("deleted township still registered")
	}
}

func TestConvertFameSubsidyQuota(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.BankFameSubsidy(FamePointsPerVisit*50 + 7)

	s.convertFameSubsidy()

	if s.VisitorsThisWeek() != FameVisitsDailyQuota {
		t.Fatalf("converted %d visits, want daily quota %d", s.VisitorsThisWeek(), FameVisitsDailyQuota)
	}
	wantLeft := FamePointsPerVisit*50 + 7 - FamePointsPerVisit*FameVisitsDailyQuota
	if s.FameSubsidy != wantLeft {
		t.Fatalf("pool = %d, want %d", s.FameSubsidy, wantLeft)
	}
}

func TestZeroFeeDayStillResetsVisitorDedupe(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	e.svc.Settings.BaseFee = 0

	visitor := e.member("Bram")
	s.CountVisitor(visitor)
	if got := s.VisitorsThisWeek(); got != 1 {
		t.Fatalf("visitors = %d, want 1", got)
	}

	// The zero-fee day still closes the dedupe window.
	s.DoDailyFees()
	e.now = e.now.Add(24 * time.Hour)

	s.CountVisitor(visitor)
	if got := s.VisitorsThisWeek(); got != 2 {
		t.Fatalf("visitors = %d after next-day return, want 2", got)
	}
}

func TestFeePreviewLeavesStoneUntouched(t *testing.T) {
	e := newEnv(t)
	s := e.stone()
	s.goldHeld = 10_000

	s.DoDailyFees()
	charged := s.FeeBreakdown()
	if len(charged) == 0 {
		t.Fatalf("no breakdown recorded by the charge")
	}

	// Preview after a state change must not rewrite the charged breakdown.
	s.NoGateIn = true
	preview := s.PreviewFeeBreakdown()
	if len(preview) <= len(charged) {
		t.Fatalf("preview = %d lines, want more than charged %d", len(preview), len(charged))
	}
	if got := s.FeeBreakdown(); len(got) != len(charged) {
		t.Fatalf("stored breakdown rewritten by preview: %v", got)
	}
	if got := s.GetTotalFeePerDay(false); got <= 0 {
		t.Fatalf("preview total = %d", got)
	}
	if got := s.FeeBreakdown(); len(got) != len(charged) {
		t.Fatalf("stored breakdown rewritten by fee preview: %v", got)
	}
}
