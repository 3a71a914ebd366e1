package domain

import "sort"

// IconKey names one entry of the closed sidebar icon set.
type IconKey string

const (
	IconFolder    IconKey = "IconFolder"
	IconDatabase  IconKey = "IconDatabase"
	IconReport    IconKey = "IconReport"
	IconFileWord  IconKey = "IconFileWord"
	IconChartBar  IconKey = "IconChartBar"
	IconChartPie  IconKey = "IconChartPie"
	IconDashboard IconKey = "IconDashboard"
	IconTable     IconKey = "IconTable"
	IconWorld     IconKey = "IconWorld"
	IconSettings  IconKey = "IconSettings"
	IconHelp      IconKey = "IconHelp"
	IconSearch    IconKey = "IconSearch"
)

// glyphs maps icon keys to tabler-icons CSS classes.
var glyphs = map[IconKey]string{
	IconFolder:    "ti ti-folder",
	IconDatabase:  "ti ti-database",
	IconReport:    "ti ti-report",
	IconFileWord:  "ti ti-file-word",
	IconChartBar:  "ti ti-chart-bar",
	IconChartPie:  "ti ti-chart-pie",
	IconDashboard: "ti ti-dashboard",
	IconTable:     "ti ti-table",
	IconWorld:     "ti ti-world",
	IconSettings:  "ti ti-settings",
	IconHelp:      "ti ti-help",
	IconSearch:    "ti ti-search",
}

// Valid reports whether k belongs to the icon set.
func (k IconKey) Valid() bool {
	_, ok := glyphs[k]
	return ok
}

// ResolveGlyph returns the glyph for k, falling back to the folder glyph.
func ResolveGlyph(k IconKey) string {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return glyphs[IconFolder]
}

// IconKeys lists the icon set in a stable order.
func IconKeys() []IconKey {
	keys := make([]IconKey, 0, len(glyphs))
	for k := range glyphs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
