// Package config provides configuration management for perkgrid.
//
// This package implements a layered configuration system that allows users to
// customize perkgrid's behavior through YAML files. Configuration is loaded from
// multiple sources and merged in a specific order, with later sources overriding
// earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Points at the public perk grid API
//     - Ensures perkgrid works out-of-the-box
//
//  2. User Configuration (~/.config/perkgrid/config.yaml)
//     - User-specific settings that apply everywhere
//
//  3. Project Configuration (./.perkgrid/config.yaml)
//     - Settings for the current directory, e.g. a demo fixtures folder
//
//  4. Environment (./.env, then PERKGRID_API_ROOT and PERKGRID_DEMO_PORT)
//
// Values that are unset in a layer leave the previous layer untouched. The
// merged result is validated before it is returned.
//
// # Configuration Structure
//
//	api:
//	  root: "https://www.embercommunity.com/"
//	  timeout: 10s
//	  retryMax: 2
//
//	widget:
//	  gridTitle: "Sponsorship packages"
//	  display: "responsive"   # or "grid", "list"
//	  minWidthPerk: 200
//	  minWidthPackage: 100
//	  allowKeyboardNavigation: true
//
//	demo:
//	  host: "localhost"
//	  port: 4200
//	  fixturesDir: "./fixtures"
//	  allowedOrigins: ["*"]
//
//	tui:
//	  pxPerColumn: 8
//	  debounce: 300ms
//
// The widget section supplies default attributes; command line flags
// override them.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attrs := widget.ParseDataset(cfg.Widget.Dataset())
package config
