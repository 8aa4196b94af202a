// Package commands dispatches player chat commands and speech keywords to
// township handlers. The in-game command surface (`[township` / `[ts` /
// `[stockpile`) renders stone state as text responses; speech keywords carry
// a pre-tokenized code with free-text fallback matching.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/mobiles"
	"github.com/grimholt/townshard/internal/township"
)

// Handler processes one command for an actor. args excludes the command word.
type Handler func(d *Dispatcher, actor *mobiles.Mobile, args []string)

// Dispatcher routes commands and speech to township operations.
type Dispatcher struct {
	Townships *township.Registry
	Svc       *township.Services

	handlers map[string]Handler
}

// NewDispatcher wires the standard command set.
func NewDispatcher(reg *township.Registry, svc *township.Services) *Dispatcher {
	d := &Dispatcher{
		Townships: reg,
		Svc:       svc,
		handlers:  make(map[string]Handler),
	}
	d.register("township", handleTownship)
	d.register("ts", handleTownship)
	d.register("stockpile", handleStockpile)
	return d
}

func (d *Dispatcher) register(name string, h Handler) {
	d.handlers[strings.ToLower(name)] = h
}

// Execute parses one chat line. Command lines start with '['; anything else
// is ignored here and flows to the speech pipeline. Returns whether the line
// was consumed.
func (d *Dispatcher) Execute(actor *mobiles.Mobile, line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") {
		return false
	}
	fields := strings.Fields(strings.TrimPrefix(line, "["))
	if len(fields) == 0 {
		return false
	}
	h, ok := d.handlers[strings.ToLower(fields[0])]
	if !ok {
		return false
	}
	h(d, actor, fields[1:])
	return true
}

// stoneFor resolves the township the actor stands in, messaging them when
// there is none.
func (d *Dispatcher) stoneFor(actor *mobiles.Mobile) *township.Stone {
	stone := d.Townships.StoneFor(actor)
	if stone == nil {
		actor.SendMessage("Thou art not within a township.")
	}
	return stone
}

func handleTownship(d *Dispatcher, actor *mobiles.Mobile, args []string) {
	if actor == nil {
		return
	}
	stone := d.stoneFor(actor)
	if stone == nil {
		return
	}

	sub := "status"
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}

	switch sub {
	case "status":
		townshipStatus(stone, actor)
	case "gold":
		townshipGold(stone, actor)
	case "fees":
		for _, line := range stone.PreviewFeeBreakdown() {
			actor.SendMessage(line)
		}
		actor.SendMessage(fmt.Sprintf("Total daily fee: %s gold.", humanize.Comma(int64(stone.GetTotalFeePerDay(false)))))
	case "messages":
		for _, msg := range stone.MessageLog() {
			actor.SendMessage(msg)
		}
	case "withdraw":
		townshipWithdraw(stone, actor, args[1:])
	case "packup":
		if !stone.CheckAccess(actor, township.AccessLeader) {
			return
		}
		if _, _, err := stone.PackUp(actor); err == nil {
			actor.SendMessage("Thy township has been packed into a restoration deed.")
		}
	default:
		actor.SendMessage("Township commands: status, gold, fees, messages, withdraw <amount>, packup.")
	}
}

func townshipStatus(stone *township.Stone, actor *mobiles.Mobile) {
	actor.SendMessage(fmt.Sprintf("Township %d, centered at %s, radius %d.",
		stone.Serial(), stone.Center.String(), stone.Radius()))
	actor.SendMessage(fmt.Sprintf("Activity: %s (this week: %s, %d visitors).",
		township.ActivityName(stone.ActivityLevel()),
		township.ActivityName(stone.LastActualActivityLevel()),
		stone.VisitorsThisWeek()))
	actor.SendMessage(fmt.Sprintf("Law: %s. Daily fee: %s gold.",
		township.LawName(stone.LawLevel),
		humanize.Comma(int64(stone.GetTotalFeePerDay(false)))))
	actor.SendMessage(fmt.Sprintf("Thy standing: %s.", township.AccessName(stone.GetAccess(actor))))
}

func townshipGold(stone *township.Stone, actor *mobiles.Mobile) {
	actor.SendMessage(fmt.Sprintf("The township holds %s gold.", humanize.Comma(int64(stone.GoldHeld()))))
	for _, entry := range stone.Deposits() {
		actor.SendMessage(fmt.Sprintf("Deposit: %s gold — %s", humanize.Comma(int64(entry.Amount)), entry.Description))
	}
	for _, entry := range stone.Withdrawals() {
		actor.SendMessage(fmt.Sprintf("Withdrawal: %s gold — %s", humanize.Comma(int64(entry.Amount)), entry.Description))
	}
}

func townshipWithdraw(stone *township.Stone, actor *mobiles.Mobile, args []string) {
	if !stone.CheckAccess(actor, township.AccessCoLeader) {
		return
	}
	if len(args) == 0 {
		actor.SendMessage("Withdraw how much?")
		return
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 {
		actor.SendMessage("That is not a sum of gold.")
		return
	}
	got := stone.WithdrawGold(amount, "Withdrawn by "+actor.Name)
	if got == 0 {
		actor.SendMessage("The township coffers are empty.")
		return
	}
	pile := items.NewGold(got)
	if err := actor.Backpack().Add(pile); err != nil {
		pile.MoveToWorld(actor.Loc, actor.Facet)
	}
	actor.SendMessage(fmt.Sprintf("Thou hast withdrawn %s gold.", humanize.Comma(int64(got))))
}

func handleStockpile(d *Dispatcher, actor *mobiles.Mobile, args []string) {
	if actor == nil {
		return
	}
	stone := d.stoneFor(actor)
	if stone == nil {
		return
	}
	if !stone.CheckAccess(actor, township.AccessMember) {
		return
	}

	sub := "view"
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}
	pile := stone.Stockpile()

	switch sub {
	case "view":
		for _, kind := range items.AllResourceKinds {
			if n := pile.Count(kind); n > 0 {
				actor.SendMessage(fmt.Sprintf("%s: %s", items.ResourceName(kind), humanize.Comma(int64(n))))
			}
		}
	case "log":
		for _, entry := range pile.Log() {
			actor.SendMessage(entry.String())
		}
	case "withdraw":
		stockpileWithdraw(stone, actor, args[1:])
	default:
		actor.SendMessage("Stockpile commands: view, log, withdraw <resource> <amount>.")
	}
}

func stockpileWithdraw(stone *township.Stone, actor *mobiles.Mobile, args []string) {
	if !stone.CheckAccess(actor, township.AccessCoLeader) {
		return
	}
	if len(args) < 2 {
		actor.SendMessage("Withdraw which resource, and how much?")
		return
	}
	kind, ok := items.ResourceByName(args[0])
	if !ok {
		actor.SendMessage("The stockpile holds no such resource.")
		return
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil || amount <= 0 {
		actor.SendMessage("That is not an amount.")
		return
	}

	got := stone.Stockpile().Withdraw(kind, amount, actor.Name)
	if got == 0 {
		actor.SendMessage("The stockpile is empty of that.")
		return
	}
	deed := items.NewCommodityDeed(kind, got)
	if err := actor.Backpack().Add(deed); err != nil {
		deed.MoveToWorld(actor.Loc, actor.Facet)
	}
	actor.SendMessage(fmt.Sprintf("Thou hast drawn %s %s from the stockpile.",
		humanize.Comma(int64(got)), items.ResourceName(kind)))
}
