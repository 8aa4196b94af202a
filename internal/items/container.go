package items

import (
	"errors"

	"github.com/grimholt/townshard/internal/world"
)

// DefaultContainerCapacity matches the standard backpack item cap.
const DefaultContainerCapacity = 125

// ErrContainerFull is returned when adding to a container at capacity.
var ErrContainerFull = errors.New("container is full")

// Container is an item that holds other items.
type Container struct {
	Item

	Capacity int `json:"capacity"`

	// Locked containers open only for a key with a matching value.
	Locked   bool   `json:"locked"`
	KeyValue string `json:"key_value,omitempty"`

	contents []Carriable
}

// NewContainer creates an empty container with the default capacity.
func NewContainer(name string) *Container {
	c := &Container{
		Item:     *NewItem(name),
		Capacity: DefaultContainerCapacity,
	}
	return c
}

// Add places an item inside the container.
func (c *Container) Add(it Carriable) error {
	if len(c.contents) >= c.Capacity {
		return ErrContainerFull
	}
	base := it.ItemBase()
	if base.parent != nil {
		base.parent.Remove(base)
	}
	base.parent = c
	base.Facet = nil
	c.contents = append(c.contents, it)
	return nil
}

// Remove takes an item out of the container. Removing an item that is not
// inside is a no-op.
func (c *Container) Remove(it Carriable) {
	base := it.ItemBase()
	for idx, held := range c.contents {
		if held.ItemBase() == base {
			c.contents = append(c.contents[:idx], c.contents[idx+1:]...)
			base.parent = nil
			return
		}
	}
}

// Contents returns the held items. The slice is shared; callers must not
// mutate it.
func (c *Container) Contents() []Carriable { return c.contents }

// Count returns the number of held items.
func (c *Container) Count() int { return len(c.contents) }

// FindBySerial returns the held item with the given serial, or nil.
func (c *Container) FindBySerial(s world.Serial) Carriable {
	for _, held := range c.contents {
		if held.ItemBase().ID == s {
			return held
		}
	}
	return nil
}

// Delete removes the container and everything inside it.
func (c *Container) Delete() {
	for _, held := range append([]Carriable(nil), c.contents...) {
		held.ItemBase().Delete()
	}
	c.contents = nil
	c.Item.Delete()
}

// Key opens locked containers whose KeyValue matches.
type Key struct {
	Item

	KeyValue string `json:"key_value"`
}

// NewKey creates a key bound to the given lock value.
func NewKey(keyValue string) *Key {
	k := &Key{Item: *NewItem("a key"), KeyValue: keyValue}
	return k
}

// Opens reports whether the key fits the container's lock.
func (k *Key) Opens(c *Container) bool {
	return c.Locked && c.KeyValue != "" && c.KeyValue == k.KeyValue
}
