package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"perkgrid/internal/config"
	"perkgrid/internal/render"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		eventID string
		noTUI   bool
		debug   bool
	}{
		{
			name:    "full configuration",
			eventID: "emberconf",
			noTUI:   true,
			debug:   true,
		},
		{
			name:  "minimal configuration",
			noTUI: false,
			debug: false,
		},
		{
			name:  "debug only",
			debug: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.eventID, tt.noTUI, tt.debug)

			assert.Equal(t, tt.eventID, cfg.EventID)
			assert.Equal(t, tt.noTUI, cfg.NoTUI)
			assert.Equal(t, tt.debug, cfg.Debug)
			assert.Nil(t, cfg.PerkGridConfig, "PerkGridConfig should be nil before loading")
		})
	}
}

func TestConfig_WidgetAttributes(t *testing.T) {
	pgCfg := config.GetDefaultConfig()
	pgCfg.Widget.GridTitle = "From config"
	pgCfg.Widget.Display = "list"
	pgCfg.Widget.MinWidthPerk = 250

	cfg := NewConfig("emberconf", false, false)
	cfg.PerkGridConfig = &pgCfg
	cfg.Attributes = map[string]string{
		"grid-title": "From flag",
		"eventId":    "ignored",
	}

	attrs := cfg.WidgetAttributes()
	assert.Equal(t, "emberconf", attrs.EventID, "the event id argument wins")
	assert.Equal(t, "From flag", attrs.GridTitle)
	assert.Equal(t, render.DisplayList, attrs.Display)
	assert.Equal(t, 250, attrs.MinWidthPerk)
	assert.True(t, attrs.AllowKeyboardNavigation)
}

func TestConfig_WidgetAttributesWithoutConfig(t *testing.T) {
	attrs := NewConfig("", false, false).WidgetAttributes()
	assert.Empty(t, attrs.EventID)
	assert.Equal(t, render.DisplayResponsive, attrs.Display)
}
