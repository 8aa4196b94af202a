package items

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ResourceKind is a bit flag identifying one stockpileable resource. Flags
// combine when an operation spans several kinds.
type ResourceKind uint16

const (
	ResourceNone        ResourceKind = 0
	ResourceBoards      ResourceKind = 1 << iota
	ResourceIngots
	ResourceGranite
	ResourceMarble
	ResourceSandstone
	ResourceFertileDirt
	ResourceNightshade
)

// AllResourceKinds lists every single-flag resource in display order.
var AllResourceKinds = []ResourceKind{
	ResourceBoards,
	ResourceIngots,
	ResourceGranite,
	ResourceMarble,
	ResourceSandstone,
	ResourceFertileDirt,
	ResourceNightshade,
}

// ResourceName returns a display name for a single resource kind.
func ResourceName(k ResourceKind) string {
	switch k {
	case ResourceBoards:
		return "boards"
	case ResourceIngots:
		return "ingots"
	case ResourceGranite:
		return "granite"
	case ResourceMarble:
		return "marble"
	case ResourceSandstone:
		return "sandstone"
	case ResourceFertileDirt:
		return "fertile dirt"
	case ResourceNightshade:
		return "nightshade"
	default:
		return "unknown"
	}
}

// ResourceByName resolves a display name back to its kind. Matching is
// case-insensitive; multi-word names accept either spaces or underscores.
func ResourceByName(name string) (ResourceKind, bool) {
	name = strings.ToLower(strings.ReplaceAll(name, "_", " "))
	for _, kind := range AllResourceKinds {
		if ResourceName(kind) == name {
			return kind, true
		}
	}
	return 0, false
}

// Commodity is a loose stack of a raw resource.
type Commodity struct {
	Item

	Kind   ResourceKind `json:"kind"`
	Amount int          `json:"amount"`
}

// NewCommodity creates a resource stack.
func NewCommodity(kind ResourceKind, amount int) *Commodity {
	c := &Commodity{
		Item:   *NewItem(ResourceName(kind)),
		Kind:   kind,
		Amount: amount,
	}
	return c
}

// CommodityDeed wraps a commodity stack in deed form for bulk transport.
type CommodityDeed struct {
	Item

	Kind   ResourceKind `json:"kind"`
	Amount int          `json:"amount"`
}

// NewCommodityDeed creates a filled commodity deed.
func NewCommodityDeed(kind ResourceKind, amount int) *CommodityDeed {
	d := &CommodityDeed{
		Item: *NewItem(fmt.Sprintf("a commodity deed for %s %s",
			humanize.Comma(int64(amount)), ResourceName(kind))),
		Kind:   kind,
		Amount: amount,
	}
	return d
}
