package config

import "time"

// GetDefaultConfig returns the configuration used when no file overrides
// it.
func GetDefaultConfig() PerkGridConfig {
	return PerkGridConfig{
		API: APIConfig{
			Root:     "https://www.embercommunity.com/",
			Timeout:  10 * time.Second,
			RetryMax: 2,
		},
		Widget: WidgetConfig{},
		Demo: DemoConfig{
			Host:           "localhost",
			Port:           4200,
			AllowedOrigins: []string{"*"},
		},
		TUI: TUIConfig{
			PxPerColumn: 8,
			Debounce:    300 * time.Millisecond,
		},
	}
}
