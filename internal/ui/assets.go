package ui

import "embed"

// Static holds the stylesheet referenced by page.
//
//go:embed static
var Static embed.FS
