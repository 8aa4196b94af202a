package items

// Door is a hinged barrier item. Doors inside a township stay usable
// regardless of lockdown ownership.
type Door struct {
	Item

	Open bool `json:"open"`
}

// NewDoor creates a closed door.
func NewDoor() *Door {
	d := &Door{Item: *NewItem("a door")}
	d.Movable = false
	return d
}

// Book is a readable item. Like doors, books stay accessible inside a
// township.
type Book struct {
	Item

	Title string `json:"title"`
	Pages []string `json:"pages,omitempty"`
}

// NewBook creates a book with the given title.
func NewBook(title string) *Book {
	b := &Book{Item: *NewItem(title), Title: title}
	return b
}

// Addon is a multi-tile decorative structure. Redeedable addons convert back
// into their construction deed; others can only be stashed whole.
type Addon struct {
	Item

	Redeedable bool   `json:"redeedable"`
	DeedName   string `json:"deed_name,omitempty"`
}

// NewAddon creates an immovable addon.
func NewAddon(name string, redeedable bool) *Addon {
	a := &Addon{Item: *NewItem(name), Redeedable: redeedable}
	a.Movable = false
	if redeedable {
		a.DeedName = "a deed for " + name
	}
	return a
}

// Redeed converts a redeedable addon back into its construction deed,
// deleting the addon. Returns nil for non-redeedable addons.
func (a *Addon) Redeed() *Item {
	if !a.Redeedable {
		return nil
	}
	deed := NewItem(a.DeedName)
	a.Delete()
	return deed
}

// Plant is a grown or growing decorative plant.
type Plant struct {
	Item

	Growing  bool   `json:"growing"`
	SeedName string `json:"seed_name"`
}

// NewPlant creates a plant. Growing plants reduce to seeds when packed.
func NewPlant(name, seedName string, growing bool) *Plant {
	p := &Plant{Item: *NewItem(name), Growing: growing, SeedName: seedName}
	p.Movable = false
	return p
}

// ToSeed reduces a growing plant to its seed, deleting the plant. Returns nil
// for plants already in decorative form.
func (p *Plant) ToSeed() *Item {
	if !p.Growing {
		return nil
	}
	seed := NewItem(p.SeedName)
	p.Delete()
	return seed
}
