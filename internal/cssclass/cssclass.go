// Package cssclass defines the class names placed on perk grid elements.
// They are the supported styling hook for consumers.
package cssclass

import "perkgrid/internal/eventdata"

const (
	// Loading marks the placeholder shown while data loads.
	Loading = "epg_loading"
	// Error marks the message shown when loading fails.
	Error = "epg_error"

	Grid = "epg_grid"
	// DisplayAsGrid is present on the grid when it is laid out in columns
	// rather than as a list.
	DisplayAsGrid = "epg_display-as-grid"

	Header   = "epg_header"
	Body     = "epg_body"
	Footer   = "epg_footer"
	Rowgroup = "epg_rowgroup"
	Row      = "epg_row"

	Columnheader = "epg_columnheader"
	Rowheader    = "epg_rowheader"
	// Cell is on every gridcell, columnheader and rowheader element.
	Cell = "epg_cell"

	// Title is the first header cell; Caption the heading inside it.
	Title   = "epg_title"
	Caption = "epg_caption"

	Package         = "epg_package"
	Perk            = "epg_perk"
	PackagePerk     = "epg_package-perk"
	PackagePerkList = "epg_package-perk-list"
	Descriptor      = "epg_descriptor"
	Price           = "epg_price"

	Attributes        = "epg_attributes"
	AttributesSoldOut = "epg_attributes-sold-out"
	AttributesLimited = "epg_attributes-limited"

	PerkValueBase   = "epg_perk-value"
	PerkValueTruthy = "epg_perk-value-truthy"
	PerkValueFalsy  = "epg_perk-value-falsy"
)

// PerkValue returns the classes of a perk value span, e.g.
// "epg_perk-value epg_perk-value-simple epg_perk-value-falsy".
func PerkValue(perkType eventdata.PerkType, value *eventdata.PerkValue) string {
	state := PerkValueFalsy
	if value.Truthy() {
		state = PerkValueTruthy
	}
	return PerkValueBase + " " + PerkValueBase + "-" + string(perkType) + " " + state
}
