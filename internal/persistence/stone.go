package persistence

import (
	"fmt"

	"github.com/grimholt/townshard/internal/items"
	"github.com/grimholt/townshard/internal/persistence/codec"
	"github.com/grimholt/townshard/internal/township"
	"github.com/grimholt/townshard/internal/world"
)

// Township payload format history. Decoding replays from the stored version
// forward; fields added by later versions default when absent.
//
//	v1: geometry, fund, ledgers, activity state, law level, enemies, messages
//	v2: subsidy pools, fee breakdown, building permits
//	v3: travel restrictions, stockpile counts
const stoneVersion = 3

const (
	// flagPackedUp marks a stone that is stashed inside a restoration deed.
	flagPackedUp uint64 = 1 << iota
	// flagStockpile gates the stockpile count table; empty stockpiles write
	// nothing.
	flagStockpile
)

// EncodeStone serializes a stone snapshot into the versioned binary format.
func EncodeStone(snap *township.StoneSnapshot) ([]byte, error) {
	var flags uint64
	if snap.PackedUp {
		flags |= flagPackedUp
	}
	if len(snap.Stockpile) > 0 {
		flags |= flagStockpile
	}

	e := codec.NewEncoder(stoneVersion, flags)

	// v1
	e.WriteUint64(uint64(snap.Serial))
	e.WriteUint64(uint64(snap.GuildID))
	e.WriteInt(snap.Center.X)
	e.WriteInt(snap.Center.Y)
	e.WriteInt(snap.Center.Z)
	e.WriteString(snap.Facet)
	e.WriteBool(snap.Extended)
	e.WriteInt(snap.GoldHeld)
	writeLedger(e, snap.Deposits)
	writeLedger(e, snap.Withdrawals)
	e.WriteUint8(byte(snap.ActivityLevel))
	e.WriteUint8(byte(snap.LastActualActivityLevel))
	e.WriteInt(snap.WeeksAtLevel)
	for _, n := range snap.VisitorsByDay {
		e.WriteInt(n)
	}
	e.WriteInt(snap.LastWeekTag)
	e.WriteUint8(byte(snap.LawLevel))
	writeSerials(e, snap.Enemies)
	e.WriteStringSlice(snap.Messages)

	// v2
	e.WriteInt(snap.TaxSubsidy)
	e.WriteInt(snap.FameSubsidy)
	e.WriteStringSlice(snap.FeeBreakdown)
	writeSerials(e, snap.BuildingPermits)

	// v3
	e.WriteBool(snap.NoGateIn)
	e.WriteBool(snap.NoGateOut)
	e.WriteBool(snap.NoRecallIn)
	e.WriteBool(snap.NoRecallOut)
	if len(snap.Stockpile) > 0 {
		e.WriteInt(len(snap.Stockpile))
		for _, kind := range items.AllResourceKinds {
			if count, ok := snap.Stockpile[kind]; ok {
				e.WriteUint64(uint64(kind))
				e.WriteInt(count)
			}
		}
	}

	return e.Bytes()
}

// DecodeStone deserializes a stone snapshot, migrating older payloads
// forward.
func DecodeStone(data []byte) (*township.StoneSnapshot, error) {
	d, err := codec.NewDecoder(data)
	if err != nil {
		return nil, err
	}
	if d.Version() > stoneVersion {
		return nil, fmt.Errorf("township payload version %d is newer than %d", d.Version(), stoneVersion)
	}

	snap := &township.StoneSnapshot{
		PackedUp:  d.Has(flagPackedUp),
		Stockpile: map[items.ResourceKind]int{},
	}

	// v1
	snap.Serial = world.Serial(d.ReadUint64())
	snap.GuildID = world.Serial(d.ReadUint64())
	snap.Center.X = d.ReadInt()
	snap.Center.Y = d.ReadInt()
	snap.Center.Z = d.ReadInt()
	snap.Facet = d.ReadString()
	snap.Extended = d.ReadBool()
	snap.GoldHeld = d.ReadInt()
	snap.Deposits = readLedger(d)
	snap.Withdrawals = readLedger(d)
	snap.ActivityLevel = township.ActivityLevel(d.ReadUint8())
	snap.LastActualActivityLevel = township.ActivityLevel(d.ReadUint8())
	snap.WeeksAtLevel = d.ReadInt()
	for i := range snap.VisitorsByDay {
		snap.VisitorsByDay[i] = d.ReadInt()
	}
	snap.LastWeekTag = d.ReadInt()
	snap.LawLevel = township.LawLevel(d.ReadUint8())
	snap.Enemies = readSerials(d)
	snap.Messages = d.ReadStringSlice()

	if d.Version() >= 2 {
		snap.TaxSubsidy = d.ReadInt()
		snap.FameSubsidy = d.ReadInt()
		snap.FeeBreakdown = d.ReadStringSlice()
		snap.BuildingPermits = readSerials(d)
	}

	if d.Version() >= 3 {
		snap.NoGateIn = d.ReadBool()
		snap.NoGateOut = d.ReadBool()
		snap.NoRecallIn = d.ReadBool()
		snap.NoRecallOut = d.ReadBool()
		if d.Has(flagStockpile) {
			n := d.ReadInt()
			for i := 0; i < n; i++ {
				kind := items.ResourceKind(d.ReadUint64())
				snap.Stockpile[kind] = d.ReadInt()
			}
		}
	}

	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("decode township %d: %w", snap.Serial, err)
	}
	return snap, nil
}

func writeLedger(e *codec.Encoder, entries []township.LedgerEntry) {
	e.WriteInt(len(entries))
	for _, entry := range entries {
		e.WriteTime(entry.When)
		e.WriteInt(entry.Amount)
		e.WriteString(entry.Description)
	}
}

func readLedger(d *codec.Decoder) []township.LedgerEntry {
	n := d.ReadInt()
	if d.Err() != nil || n <= 0 {
		return nil
	}
	out := make([]township.LedgerEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, township.LedgerEntry{
			When:        d.ReadTime(),
			Amount:      d.ReadInt(),
			Description: d.ReadString(),
		})
	}
	return out
}

func writeSerials(e *codec.Encoder, serials []world.Serial) {
	e.WriteInt(len(serials))
	for _, s := range serials {
		e.WriteUint64(uint64(s))
	}
}

func readSerials(d *codec.Decoder) []world.Serial {
	n := d.ReadInt()
	if d.Err() != nil || n <= 0 {
		return nil
	}
	out := make([]world.Serial, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, world.Serial(d.ReadUint64()))
	}
	return out
}
