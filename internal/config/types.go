package config

import (
	"strconv"
	"time"
)

// PerkGridConfig is the top-level configuration structure for perkgrid.
type PerkGridConfig struct {
	API    APIConfig    `yaml:"api"`
	Widget WidgetConfig `yaml:"widget"`
	Demo   DemoConfig   `yaml:"demo"`
	TUI    TUIConfig    `yaml:"tui"`
}

// APIConfig points perkgrid at the perk grid API.
type APIConfig struct {
	Root     string        `yaml:"root,omitempty" validate:"omitempty,url"` // e.g. "https://www.embercommunity.com/"
	Timeout  time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`      // Per attempt
	RetryMax int           `yaml:"retryMax,omitempty" validate:"gte=0,lte=10"`
}

// WidgetConfig holds defaults for the perk grid attributes. Command line
// flags override them.
type WidgetConfig struct {
	GridTitle       string `yaml:"gridTitle,omitempty"`
	PlaceholderText string `yaml:"placeholderText,omitempty"`
	ErrorText       string `yaml:"errorText,omitempty"`
	LimitedText     string `yaml:"limitedText,omitempty"`
	SoldOutText     string `yaml:"soldOutText,omitempty"`
	Display         string `yaml:"display,omitempty" validate:"omitempty,oneof=grid list responsive"`
	MinWidthPerk    int    `yaml:"minWidthPerk,omitempty" validate:"gte=0"`
	MinWidthPackage int    `yaml:"minWidthPackage,omitempty" validate:"gte=0"`
	// Pointer so that an explicit false in an overlay is not lost.
	AllowKeyboardNavigation *bool `yaml:"allowKeyboardNavigation,omitempty"`
}

// DemoConfig configures the demo web server.
type DemoConfig struct {
	Host           string   `yaml:"host,omitempty" validate:"required"`
	Port           int      `yaml:"port,omitempty" validate:"gte=1,lte=65535"`
	FixturesDir    string   `yaml:"fixturesDir,omitempty"` // Directory of <event-id>.json files
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// TUIConfig configures the terminal host.
type TUIConfig struct {
	// PxPerColumn converts terminal columns to the px widths the grid
	// thresholds are expressed in.
	PxPerColumn int           `yaml:"pxPerColumn,omitempty" validate:"gte=1"`
	Debounce    time.Duration `yaml:"debounce,omitempty" validate:"gte=0"`
}

// Dataset returns the configured widget attributes keyed by dataset name,
// omitting unset values.
func (w WidgetConfig) Dataset() map[string]string {
	out := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("gridTitle", w.GridTitle)
	set("placeholderText", w.PlaceholderText)
	set("errorText", w.ErrorText)
	set("limitedText", w.LimitedText)
	set("soldOutText", w.SoldOutText)
	set("display", w.Display)
	if w.MinWidthPerk > 0 {
		out["minWidthPerk"] = strconv.Itoa(w.MinWidthPerk)
	}
	if w.MinWidthPackage > 0 {
		out["minWidthPackage"] = strconv.Itoa(w.MinWidthPackage)
	}
	if w.AllowKeyboardNavigation != nil {
		out["allowKeyboardNavigation"] = strconv.FormatBool(*w.AllowKeyboardNavigation)
	}
	return out
}
