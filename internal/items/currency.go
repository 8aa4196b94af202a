package items

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Gold is a stackable pile of coins.
type Gold struct {
	Item

	Amount int `json:"amount"`
}

// NewGold creates a gold pile of the given amount.
func NewGold(amount int) *Gold {
	g := &Gold{Item: *NewItem("gold coins"), Amount: amount}
	return g
}

// BankCheck is a non-divisible note worth a fixed amount of gold. It deposits
// whole or not at all.
type BankCheck struct {
	Item

	Worth int `json:"worth"`
}

// NewBankCheck creates a check for the given amount.
func NewBankCheck(worth int) *BankCheck {
	c := &BankCheck{
		Item:  *NewItem(fmt.Sprintf("a bank check for %s gold", humanize.Comma(int64(worth)))),
		Worth: worth,
	}
	return c
}
