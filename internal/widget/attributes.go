package widget

import (
	"strconv"
	"strings"

	"perkgrid/internal/dom"
	"perkgrid/internal/render"
	"perkgrid/pkg/logging"
)

const (
	DefaultPlaceholderText = "Loading..."
	DefaultErrorText       = "There was a problem loading data for the perk grid."
)

// Attributes configure one perk grid. Only EventID is required. Build them
// with DefaultAttributes or ParseDataset; an attribute given as "" stays
// empty.
type Attributes struct {
	EventID         string
	GridTitle       string
	PlaceholderText string
	ErrorText       string
	LimitedText     string
	SoldOutText     string
	Display         render.Display
	MinWidthPerk    int
	MinWidthPackage int
	// AllowKeyboardNavigation defaults to true.
	AllowKeyboardNavigation bool
}

// DefaultAttributes returns attributes with every optional field at its
// default.
func DefaultAttributes() Attributes {
	opts := render.DefaultOptions()
	return Attributes{
		PlaceholderText:         DefaultPlaceholderText,
		ErrorText:               DefaultErrorText,
		LimitedText:             opts.LimitedText,
		SoldOutText:             opts.SoldOutText,
		Display:                 opts.Display,
		MinWidthPerk:            opts.MinWidthPerk,
		MinWidthPackage:         opts.MinWidthPackage,
		AllowKeyboardNavigation: opts.AllowKeyboardNavigation,
	}
}

// RenderOptions returns the options passed to render.Render.
func (a Attributes) RenderOptions() render.Options {
	return render.Options{
		GridTitle:               a.GridTitle,
		Display:                 a.Display,
		MinWidthPerk:            a.MinWidthPerk,
		MinWidthPackage:         a.MinWidthPackage,
		LimitedText:             a.LimitedText,
		SoldOutText:             a.SoldOutText,
		AllowKeyboardNavigation: a.AllowKeyboardNavigation,
	}
}

// ParseDataset reads attributes from data-* style keys. Keys may be given
// as attribute names ("data-event-id", "event-id") or dataset names
// ("eventId"). Malformed optional values keep their default and are
// logged.
func ParseDataset(dataset map[string]string) Attributes {
	a := DefaultAttributes()
	for key, value := range dataset {
		switch DatasetKey(key) {
		case "eventId":
			a.EventID = value
		case "gridTitle":
			a.GridTitle = value
		case "placeholderText":
			a.PlaceholderText = value
		case "errorText":
			a.ErrorText = value
		case "limitedText":
			a.LimitedText = value
		case "soldOutText":
			a.SoldOutText = value
		case "display":
			d, err := render.ParseDisplay(value)
			if err != nil {
				logging.Warn(subsystem, "ignoring data-display: %v", err)
				continue
			}
			a.Display = d
		case "minWidthPerk":
			a.MinWidthPerk = parsePixels(key, value, a.MinWidthPerk)
		case "minWidthPackage":
			a.MinWidthPackage = parsePixels(key, value, a.MinWidthPackage)
		case "allowKeyboardNavigation":
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				logging.Warn(subsystem, "ignoring %s=%q: not a boolean", key, value)
				continue
			}
			a.AllowKeyboardNavigation = b
		}
	}
	return a
}

// Dataset collects the data-* attributes of el, keyed by dataset name.
func Dataset(el *dom.Element) map[string]string {
	out := make(map[string]string)
	for _, name := range []string{
		"event-id", "grid-title", "placeholder-text", "error-text", "limited-text",
		"sold-out-text", "display", "min-width-perk", "min-width-package",
		"allow-keyboard-navigation",
	} {
		if v, ok := el.Attr("data-" + name); ok {
			out[DatasetKey(name)] = v
		}
	}
	return out
}

func parsePixels(key, value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	if err != nil || n < 0 {
		logging.Warn(subsystem, "ignoring %s=%q: not a width in px", key, value)
		return fallback
	}
	return n
}

// DatasetKey converts "data-min-width-perk" or "min-width-perk" to
// "minWidthPerk". Dataset names pass through.
func DatasetKey(key string) string {
	key = strings.TrimPrefix(key, "data-")
	parts := strings.Split(key, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
