// Package eventdata holds the perk grid data model and the validator that
// guards data fetched from the API.
package eventdata

// PerkType is the kind of value a perk carries for a package.
type PerkType string

const (
	// PerkTypeSimple perks are included or not (boolean values).
	PerkTypeSimple PerkType = "simple"
	// PerkTypeQuantity perks carry a count.
	PerkTypeQuantity PerkType = "quantity"
	// PerkTypeFreeform perks carry arbitrary text.
	PerkTypeFreeform PerkType = "freeform"
)

// PerkTypes lists the recognized perk types in declaration order.
var PerkTypes = []PerkType{PerkTypeSimple, PerkTypeQuantity, PerkTypeFreeform}

// Valid reports whether t is one of PerkTypes.
func (t PerkType) Valid() bool {
	for _, known := range PerkTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Perk is a benefit tracked across packages. It defines a grid row.
type Perk struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Type        PerkType `json:"type"`
	// Limited perks are available only in limited quantities.
	Limited bool `json:"limited"`
	// SoldOut perks are limited and no longer available.
	SoldOut bool `json:"soldOut"`
}

// PerkWithValue is a Perk as listed under a Package, with that package's
// value for it. A nil Value is falsy.
type PerkWithValue struct {
	Perk
	Value *PerkValue `json:"value,omitempty"`
}

// Package is a purchasable sponsorship tier. It defines a grid column.
type Package struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Price in whole US dollars.
	Price   int64           `json:"price"`
	Limited bool            `json:"limited"`
	SoldOut bool            `json:"soldOut"`
	Perks   []PerkWithValue `json:"perks"`
}

// EventData is the root aggregate returned by the perk grid API. Perks is
// the canonical row order and Packages the canonical column order.
type EventData struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Packages []Package `json:"packages"`
	Perks    []Perk    `json:"perks"`
}

// ValueFor returns pkg's value for perk, or nil when the package does not
// list it.
func ValueFor(perk Perk, pkg Package) *PerkValue {
	for _, p := range pkg.Perks {
		if p.ID == perk.ID {
			return p.Value
		}
	}
	return nil
}
