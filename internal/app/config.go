package app

import (
	"maps"

	"perkgrid/internal/config"
	"perkgrid/internal/widget"
)

// Config holds the application configuration
type Config struct {
	// EventID selects the perk grid to show.
	EventID string

	// UI mode
	NoTUI bool

	// Debug settings
	Debug bool

	// FixturesDir serves perk grids from a directory of <event-id>.json
	// files instead of the API. Offline without a directory serves the
	// built-in sample only.
	FixturesDir string
	Offline     bool

	// Attributes override the configured widget attributes, keyed by
	// dataset or attribute name.
	Attributes map[string]string

	// Width is the line width of CLI mode output in columns.
	Width int

	// PerkGridConfig is loaded by NewApplication when nil.
	PerkGridConfig *config.PerkGridConfig
}

// NewConfig creates a new application configuration
func NewConfig(eventID string, noTUI, debug bool) *Config {
	return &Config{
		EventID: eventID,
		NoTUI:   noTUI,
		Debug:   debug,
	}
}

// WidgetAttributes merges the configured widget defaults, the attribute
// overrides and the event id.
func (c *Config) WidgetAttributes() widget.Attributes {
	dataset := map[string]string{}
	if c.PerkGridConfig != nil {
		maps.Copy(dataset, c.PerkGridConfig.Widget.Dataset())
	}
	for k, v := range c.Attributes {
		dataset[widget.DatasetKey(k)] = v
	}
	if c.EventID != "" {
		dataset["eventId"] = c.EventID
	}
	return widget.ParseDataset(dataset)
}
