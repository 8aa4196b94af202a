package world

import "sync/atomic"

// Serial uniquely identifies a world object (item or mobile) for the life of
// the shard. Serial 0 is never assigned.
type Serial uint64

var serialCounter atomic.Uint64

// NextSerial allocates a fresh serial.
func NextSerial() Serial {
	return Serial(serialCounter.Add(1))
}

// SeedSerials advances the allocator past the highest serial seen in a loaded
// save so fresh objects never collide with restored ones.
func SeedSerials(highest Serial) {
	for {
		cur := serialCounter.Load()
		if cur >= uint64(highest) {
			return
		}
		if serialCounter.CompareAndSwap(cur, uint64(highest)) {
			return
		}
	}
}
