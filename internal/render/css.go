package render

import _ "embed"

// DefaultCSS is the stock stylesheet for the class contract in
// internal/cssclass. Consumers may ship their own instead.
//
//go:embed perk-grid.css
var DefaultCSS string
