package app

import (
	"fmt"

	"perkgrid/internal/demo"
	"perkgrid/internal/fetch"
)

// Services holds the collaborators the hosts share
type Services struct {
	Fetcher fetch.Fetcher
	// Store is set in offline mode.
	Store *demo.Store
}

// InitializeServices creates the fetcher: a fixture store offline, the API
// client otherwise.
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg.Offline || cfg.FixturesDir != "" {
		store, err := demo.NewStore(cfg.FixturesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
		return &Services{Fetcher: store, Store: store}, nil
	}

	var opts []fetch.Option
	root := ""
	if cfg.PerkGridConfig != nil {
		api := cfg.PerkGridConfig.API
		root = api.Root
		if api.Timeout > 0 {
			opts = append(opts, fetch.WithTimeout(api.Timeout))
		}
		opts = append(opts, fetch.WithRetryMax(api.RetryMax))
	}
	return &Services{Fetcher: fetch.New(root, opts...)}, nil
}
