package township

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
)

// stockpileLogCap bounds the rolling stockpile transaction log.
const stockpileLogCap = 10

// StockpileResult classifies a stockpile deposit attempt.
type StockpileResult uint8

const (
	StockpileSuccess StockpileResult = iota
	StockpilePartial
	StockpileFull
	StockpileWrongKind
	StockpileInvalid
)

// StockpileMessage maps a stockpile result to its player-facing message.
func StockpileMessage(r StockpileResult, accepted int) string {
	switch r {
	case StockpileSuccess:
		return fmt.Sprintf("You add %s resources to the township stockpile.", humanize.Comma(int64(accepted)))
	case StockpilePartial:
		return fmt.Sprintf("The stockpile could only hold %s more; the rest was returned.", humanize.Comma(int64(accepted)))
	case StockpileFull:
		return "The stockpile cannot hold any more of that."
	case StockpileWrongKind:
		return "The township stockpile does not accept that."
	default:
		return "That cannot be stockpiled."
	}
}

// StockpileEntry records one stockpile deposit or withdrawal.
type StockpileEntry struct {
	When   time.Time          `json:"when"`
	Kind   items.ResourceKind `json:"kind"`
	Amount int                `json:"amount"` // Negative for withdrawals
	Who    string             `json:"who"`
}

// String renders the entry for ledger displays.
func (e StockpileEntry) String() string {
	verb := "deposited"
	amount := e.Amount
	if amount < 0 {
		verb = "withdrew"
		amount = -amount
	}
	return fmt.Sprintf("%s %s %d %s", e.Who, verb, amount, items.ResourceName(e.Kind))
}

// Stockpile is the township's typed resource store: one capped counter per
// resource kind plus a small rolling transaction log.
type Stockpile struct {
	stone  *Stone
	counts map[items.ResourceKind]int
	log    []StockpileEntry
}

// NewStockpile creates an empty stockpile bound to a stone.
func NewStockpile(stone *Stone) *Stockpile {
	return &Stockpile{
		stone:  stone,
		counts: make(map[items.ResourceKind]int),
	}
}

// Stockpile returns the stone's resource stockpile.
func (s *Stone) Stockpile() *Stockpile { return s.stockpile }

// Count returns the stored amount of one resource kind.
func (p *Stockpile) Count(kind items.ResourceKind) int {
	return p.counts[kind]
}

// Log returns the rolling transaction log, newest last.
func (p *Stockpile) Log() []StockpileEntry { return p.log }

func (p *Stockpile) record(kind items.ResourceKind, amount int, who string) {
	p.log = append(p.log, StockpileEntry{
		When:   p.stone.svc.Now(),
		Kind:   kind,
		Amount: amount,
		Who:    who,
	})
	if len(p.log) > stockpileLogCap {
		p.log = p.log[len(p.log)-stockpileLogCap:]
	}
}

// add credits up to amount of a kind, honoring the per-kind cap. Returns the
// amount accepted.
func (p *Stockpile) add(kind items.ResourceKind, amount int, who string) int {
	if amount <= 0 {
		return 0
	}
	room := MaxStockpilePerKind - p.counts[kind]
	if room <= 0 {
		return 0
	}
	if amount > room {
		amount = room
	}
	p.counts[kind] += amount
	p.record(kind, amount, who)
	return amount
}

// Withdraw removes up to amount of a kind, returning the amount actually
// removed.
func (p *Stockpile) Withdraw(kind items.ResourceKind, amount int, who string) int {
	if amount <= 0 {
		return 0
	}
	if amount > p.counts[kind] {
		amount = p.counts[kind]
	}
	if amount == 0 {
		return 0
	}
	p.counts[kind] -= amount
	p.record(kind, -amount, who)
	return amount
}

// Deposit accepts a heterogeneous source: loose commodities, commodity
// deeds, containers of either, or a pack animal's load. The accepted
// resource kind derives from the item's type identity. Returns the result
// and the total amount accepted.
func (p *Stockpile) Deposit(source items.Carriable, depositor *mobiles.Mobile) (StockpileResult, int) {
	if source == nil || source.ItemBase().Deleted() {
		return StockpileInvalid, 0
	}
	who := ""
	if depositor != nil {
		who = depositor.Name
	}

	switch it := source.(type) {
	case *items.Commodity:
		return p.depositAmount(it.Kind, it.Amount, who, func(accepted int) {
			it.Amount -= accepted
			if it.Amount == 0 {
				it.Delete()
			}
		})
	case *items.CommodityDeed:
		return p.depositAmount(it.Kind, it.Amount, who, func(accepted int) {
			it.Amount -= accepted
			if it.Amount == 0 {
				it.Delete()
			}
		})
	case *items.Container:
		return p.depositContainer(it, who)
	default:
		return StockpileWrongKind, 0
	}
}

// DepositPack empties a pack animal's load into the stockpile.
func (p *Stockpile) DepositPack(animal *mobiles.Creature, depositor *mobiles.Mobile) (StockpileResult, int) {
	if animal == nil || animal.Deleted() || animal.Pack == nil {
		return StockpileInvalid, 0
	}
	who := ""
	if depositor != nil {
		who = depositor.Name
	}
	return p.depositContainer(animal.Pack, who)
}

func (p *Stockpile) depositAmount(kind items.ResourceKind, amount int, who string, consume func(accepted int)) (StockpileResult, int) {
	if kind == items.ResourceNone {
		return StockpileWrongKind, 0
	}
	accepted := p.add(kind, amount, who)
	if accepted == 0 {
		return StockpileFull, 0
	}
	consume(accepted)
	if accepted < amount {
		return StockpilePartial, accepted
	}
	return StockpileSuccess, accepted
}

// depositContainer walks the container and deposits every stockpileable item
// inside. Items of other kinds are left untouched.
func (p *Stockpile) depositContainer(c *items.Container, who string) (StockpileResult, int) {
	total := 0
	sawStockpileable := false
	partial := false

	for _, held := range append([]items.Carriable(nil), c.Contents()...) {
		var kind items.ResourceKind
		var amount int
		var consume func(int)

		switch it := held.(type) {
		case *items.Commodity:
			kind, amount = it.Kind, it.Amount
			consume = func(accepted int) {
				it.Amount -= accepted
				if it.Amount == 0 {
					it.Delete()
				}
			}
		case *items.CommodityDeed:
			kind, amount = it.Kind, it.Amount
			consume = func(accepted int) {
				it.Amount -= accepted
				if it.Amount == 0 {
					it.Delete()
				}
			}
		default:
			continue
		}

		sawStockpileable = true
		accepted := p.add(kind, amount, who)
		if accepted > 0 {
			consume(accepted)
			total += accepted
		}
		if accepted < amount {
			partial = true
		}
	}

	if !sawStockpileable {
		return StockpileWrongKind, 0
	}
	if total == 0 {
		return StockpileFull, 0
	}
	if partial {
		return StockpilePartial, total
	}
	return StockpileSuccess, total
}

// ToDeeds drains the stockpile into commodity deeds, one per non-empty kind.
// Used by the pack-up protocol.
func (p *Stockpile) ToDeeds() []*items.CommodityDeed {
	var deeds []*items.CommodityDeed
	for _, kind := range items.AllResourceKinds {
		if amount := p.counts[kind]; amount > 0 {
			deeds = append(deeds, items.NewCommodityDeed(kind, amount))
			p.counts[kind] = 0
		}
	}
	return deeds
}
