package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"perkgrid/internal/cssclass"
	"perkgrid/internal/dom"
	"perkgrid/internal/eventdata"
)

const (
	glyphIncluded    = "✓"
	glyphNotIncluded = "✕"
)

// ErrUnknownPerkType is returned when a perk's type has no value rendering.
var ErrUnknownPerkType = errors.New("unknown perk type")

func classes(names ...string) string {
	return strings.Join(names, " ")
}

// Build creates the grid element for data. The display class is left to
// the caller; see Render.
func Build(data eventdata.EventData, opts Options) (*dom.Element, error) {
	opts = opts.normalized()

	grid := dom.NewElement("div", cssclass.Grid,
		dom.WithRole("grid"),
		dom.WithAttr("style", sizingHints(opts, len(data.Packages))),
	)

	grid.Append(header(data, opts))

	if opts.Display != DisplayList {
		b, err := body(data, opts)
		if err != nil {
			return nil, err
		}
		grid.Append(b, footer(data))
	}
	return grid, nil
}

// sizingHints encodes column sizing as CSS custom properties so that the
// stylesheet can size columns without measuring.
func sizingHints(opts Options, columnCount int) string {
	minWidth := MinWidthForGrid(opts, columnCount)
	fraction := func(w int) string {
		if minWidth == 0 {
			return "0fr"
		}
		return strconv.FormatFloat(float64(w)/float64(minWidth), 'f', -1, 64) + "fr"
	}
	return fmt.Sprintf(
		"--column-count: %d; --min-width-perk: %dpx; --min-width-package: %dpx; --max-width-perk: %s; --max-width-package: %s;",
		columnCount, opts.MinWidthPerk, opts.MinWidthPackage, fraction(opts.MinWidthPerk), fraction(opts.MinWidthPackage),
	)
}

func rowgroup(class string) *dom.Element {
	return dom.NewElement("div", classes(cssclass.Rowgroup, class), dom.WithRole("rowgroup"))
}

func row() *dom.Element {
	return dom.NewElement("div", cssclass.Row, dom.WithRole("row"))
}

func header(data eventdata.EventData, opts Options) *dom.Element {
	el := rowgroup(cssclass.Header)
	headerRow := row()

	title := dom.NewElement("div", classes(cssclass.Cell, cssclass.Columnheader, cssclass.Title),
		dom.WithRole("columnheader"))
	if opts.GridTitle != "" {
		title.Append(dom.NewElement("h1", cssclass.Caption, dom.WithText(opts.GridTitle)))
	} else {
		title.SetHidden(true)
	}

	headerRow.Append(title)
	for _, pkg := range data.Packages {
		headerRow.Append(packageHeader(pkg, opts))
	}
	el.Append(headerRow)
	return el
}

func body(data eventdata.EventData, opts Options) (*dom.Element, error) {
	el := rowgroup(cssclass.Body)
	for _, perk := range data.Perks {
		r, err := perkRow(perk, data.Packages, opts)
		if err != nil {
			return nil, err
		}
		el.Append(r)
	}
	return el, nil
}

func footer(data eventdata.EventData) *dom.Element {
	el := rowgroup(cssclass.Footer)
	footerRow := row()

	footerRow.Append(dom.NewElement("div", classes(cssclass.Cell, cssclass.Rowheader),
		dom.WithRole("rowheader"), dom.WithLabel("Package price")))
	for _, pkg := range data.Packages {
		cell := dom.NewElement("div", classes(cssclass.Cell, cssclass.Package),
			dom.WithRole("gridcell"), dom.WithLabel("Package price"))
		cell.Append(packagePrice(pkg))
		footerRow.Append(cell)
	}
	el.Append(footerRow)
	return el
}

func packageHeader(pkg eventdata.Package, opts Options) *dom.Element {
	el := dom.NewElement("div", classes(cssclass.Cell, cssclass.Columnheader, cssclass.Package),
		dom.WithRole("columnheader"), dom.WithLabel("Package"))

	el.Append(dom.NewElement("div", cssclass.Descriptor, dom.WithText(pkg.Name)))
	el.Append(attributes(pkg.Limited, pkg.SoldOut, opts))

	if opts.Display != DisplayGrid {
		el.Append(perkList(pkg, opts), packagePrice(pkg))
	}
	return el
}

func perkList(pkg eventdata.Package, opts Options) *dom.Element {
	el := dom.NewElement("ul", cssclass.PackagePerkList)
	for _, perk := range pkg.Perks {
		item := dom.NewElement("li", cssclass.Perk)
		item.Append(
			dom.NewElement("div", cssclass.Descriptor, dom.WithText(perk.Description)),
			attributes(perk.Limited, perk.SoldOut, opts),
		)
		el.Append(item)
	}
	return el
}

func perkRow(perk eventdata.Perk, packages []eventdata.Package, opts Options) (*dom.Element, error) {
	el := row()

	rowHeader := dom.NewElement("div", classes(cssclass.Cell, cssclass.Rowheader, cssclass.Perk),
		dom.WithRole("rowheader"), dom.WithLabel("Perk"))
	rowHeader.Append(
		dom.NewElement("div", cssclass.Descriptor, dom.WithText(perk.Description)),
		attributes(perk.Limited, perk.SoldOut, opts),
	)
	el.Append(rowHeader)

	for _, pkg := range packages {
		cell, err := perkValue(perk, pkg)
		if err != nil {
			return nil, err
		}
		el.Append(cell)
	}
	return el, nil
}

// attributes returns the limited/sold-out badge, or nil when neither
// applies. Sold out wins over limited.
func attributes(limited, soldOut bool, opts Options) *dom.Element {
	switch {
	case soldOut:
		return dom.NewElement("div", classes(cssclass.Attributes, cssclass.AttributesSoldOut),
			dom.WithText(opts.SoldOutText))
	case limited:
		return dom.NewElement("div", classes(cssclass.Attributes, cssclass.AttributesLimited),
			dom.WithText(opts.LimitedText))
	default:
		return nil
	}
}

func perkValue(perk eventdata.Perk, pkg eventdata.Package) (*dom.Element, error) {
	value := eventdata.ValueFor(perk, pkg)

	el := dom.NewElement("div", classes(cssclass.Cell, cssclass.Perk, cssclass.PackagePerk),
		dom.WithRole("gridcell"))
	span := dom.NewElement("span", cssclass.PerkValue(perk.Type, value))

	included := false
	text := glyphNotIncluded

	switch perk.Type {
	case eventdata.PerkTypeSimple:
		if value.Truthy() {
			included = true
			text = glyphIncluded
			span.SetAttr("aria-label", "included")
			span.SetAttr("role", "img")
		}
	case eventdata.PerkTypeQuantity, eventdata.PerkTypeFreeform:
		if value.Truthy() {
			included = true
			text = value.String()
		}
	default:
		return nil, fmt.Errorf("%w %q for perk %q", ErrUnknownPerkType, perk.Type, perk.ID)
	}

	if !included {
		span.SetAttr("aria-label", "not included")
		span.SetAttr("role", "img")
	}
	span.SetText(text)

	el.Append(span)
	return el, nil
}

func packagePrice(pkg eventdata.Package) *dom.Element {
	return dom.NewElement("div", cssclass.Price, dom.WithText(FormatPrice(pkg.Price)))
}
