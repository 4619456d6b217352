package render

import (
	"fmt"
	"strings"
)

// Display selects how the grid is laid out.
type Display string

const (
	// DisplayResponsive switches between grid and list with the available
	// width.
	DisplayResponsive Display = "responsive"
	// DisplayGrid always lays packages out in columns.
	DisplayGrid Display = "grid"
	// DisplayList collapses the grid into a single column of packages, each
	// listing its perks.
	DisplayList Display = "list"
)

// ParseDisplay parses a display name. The empty string selects
// DisplayResponsive.
func ParseDisplay(s string) (Display, error) {
	switch d := Display(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DisplayResponsive, nil
	case DisplayResponsive, DisplayGrid, DisplayList:
		return d, nil
	default:
		return "", fmt.Errorf("invalid display %q: must be one of grid, list, responsive", s)
	}
}

const (
	DefaultMinWidthPerk    = 200
	DefaultMinWidthPackage = 100
	DefaultLimitedText     = "Limited quantities"
	DefaultSoldOutText     = "Sold out"
)

// Options controls how a grid is built.
type Options struct {
	// GridTitle is shown in the first header cell. When empty the cell is
	// collapsed.
	GridTitle string
	Display   Display
	// MinWidthPerk is the minimum width in px of the perk column in grid
	// display.
	MinWidthPerk int
	// MinWidthPackage is the minimum width in px of each package column in
	// grid display.
	MinWidthPackage int
	LimitedText     string
	SoldOutText     string
	// AllowKeyboardNavigation attaches a focus manager to the grid.
	AllowKeyboardNavigation bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Display:                 DisplayResponsive,
		MinWidthPerk:            DefaultMinWidthPerk,
		MinWidthPackage:         DefaultMinWidthPackage,
		LimitedText:             DefaultLimitedText,
		SoldOutText:             DefaultSoldOutText,
		AllowKeyboardNavigation: true,
	}
}

func (o Options) normalized() Options {
	if o.Display == "" {
		o.Display = DisplayResponsive
	}
	if o.LimitedText == "" {
		o.LimitedText = DefaultLimitedText
	}
	if o.SoldOutText == "" {
		o.SoldOutText = DefaultSoldOutText
	}
	if o.MinWidthPerk < 0 {
		o.MinWidthPerk = DefaultMinWidthPerk
	}
	if o.MinWidthPackage < 0 {
		o.MinWidthPackage = DefaultMinWidthPackage
	}
	return o
}

// MinWidthForGrid is the narrowest width in px at which every column fits
// at its minimum width.
func MinWidthForGrid(opts Options, packageCount int) int {
	opts = opts.normalized()
	return opts.MinWidthPerk + packageCount*opts.MinWidthPackage
}
