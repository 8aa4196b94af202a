package township

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/grimholt/townshard/internal/items"
)

// LedgerEntry records one deposit or withdrawal.
type LedgerEntry struct {
	When        time.Time `json:"when"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
}

// DepositResult classifies the outcome of a gold deposit.
type DepositResult uint8

const (
	DepositSuccess DepositResult = iota
	DepositPartial            // Pile partially accepted, remainder returned
	DepositFull               // Stone at cap, nothing accepted
	DepositCheckTooValuable   // Check would overflow the cap; checks do not split
	DepositInvalid
)

// GoldHeld returns the stone's banked gold.
func (s *Stone) GoldHeld() int { return s.goldHeld }

// Deposits returns the rolling deposit ledger, newest last.
func (s *Stone) Deposits() []LedgerEntry { return s.deposits }

// Withdrawals returns the rolling withdrawal ledger, newest last.
func (s *Stone) Withdrawals() []LedgerEntry { return s.withdrawals }

func (s *Stone) recordDeposit(amount int, description string) {
	s.deposits = appendLedger(s.deposits, LedgerEntry{
		When:        s.svc.Now(),
		Amount:      amount,
		Description: description,
	})
}

func (s *Stone) recordWithdrawal(amount int, description string) {
	s.withdrawals = appendLedger(s.withdrawals, LedgerEntry{
		When:        s.svc.Now(),
		Amount:      amount,
		Description: description,
	})
}

func appendLedger(ledger []LedgerEntry, e LedgerEntry) []LedgerEntry {
	ledger = append(ledger, e)
	if len(ledger) > LedgerCap {
		ledger = ledger[len(ledger)-LedgerCap:]
	}
	return ledger
}

// DepositGold accepts a gold pile. Piles split: a deposit that would exceed
// the cap accepts what fits and leaves the remainder in the pile. Returns the
// result and the amount actually accepted.
func (s *Stone) DepositGold(pile *items.Gold, description string) (DepositResult, int) {
	if pile == nil || pile.Deleted() || pile.Amount <= 0 {
		return DepositInvalid, 0
	}
	room := MaxGoldHeld - s.goldHeld
	if room <= 0 {
		return DepositFull, 0
	}

	accepted := pile.Amount
	result := DepositSuccess
	if accepted > room {
		accepted = room
		result = DepositPartial
	}

	s.goldHeld += accepted
	pile.Amount -= accepted
	if pile.Amount == 0 {
		pile.Delete()
	}
	s.recordDeposit(accepted, description)
	return result, accepted
}

// DepositCheck accepts a bank check. Checks deposit whole or not at all: a
// check that would overflow the cap is rejected untouched.
func (s *Stone) DepositCheck(check *items.BankCheck, description string) (DepositResult, int) {
	if check == nil || check.Deleted() || check.Worth <= 0 {
		return DepositInvalid, 0
	}
	if s.goldHeld >= MaxGoldHeld {
		return DepositFull, 0
	}
	if s.goldHeld+check.Worth > MaxGoldHeld {
		return DepositCheckTooValuable, 0
	}

	s.goldHeld += check.Worth
	accepted := check.Worth
	check.Delete()
	s.recordDeposit(accepted, description)
	return DepositSuccess, accepted
}

// WithdrawGold removes up to amount gold from the stone, recording the
// withdrawal. Returns the amount actually withdrawn.
func (s *Stone) WithdrawGold(amount int, description string) int {
	if amount <= 0 {
		return 0
	}
	if amount > s.goldHeld {
		amount = s.goldHeld
	}
	s.goldHeld -= amount
	s.recordWithdrawal(amount, description)
	return amount
}

// DepositMessage maps a deposit result to its player-facing message.
func DepositMessage(r DepositResult, accepted int) string {
	switch r {
	case DepositSuccess:
		return fmt.Sprintf("You deposit %s gold into the township fund.", humanize.Comma(int64(accepted)))
	case DepositPartial:
		return fmt.Sprintf("The township fund could only hold %s more gold; the rest was returned.", humanize.Comma(int64(accepted)))
	case DepositFull:
		return "The township fund is full."
	case DepositCheckTooValuable:
		return "That check is too valuable for the township fund to hold."
	default:
		return "That cannot be deposited."
	}
}
