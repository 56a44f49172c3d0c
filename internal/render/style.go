package render

import _ "embed"

//go:embed assets/catalog.css
var stylesheet string

// Stylesheet returns the CSS that styles rendered blocks.
func Stylesheet() string { return stylesheet }
