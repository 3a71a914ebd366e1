package workspace

import (
	"encoding/json"
	"sync"
)

// ChartPoint is one sample of the static chart series.
type ChartPoint struct {
	Month   string `json:"month"`
	Desktop int    `json:"desktop"`
	Mobile  int    `json:"mobile"`
}

// ChartSeries feeds every chart pane.
var ChartSeries = []ChartPoint{
	{Month: "January", Desktop: 186, Mobile: 80},
	{Month: "February", Desktop: 305, Mobile: 200},
	{Month: "March", Desktop: 237, Mobile: 120},
	{Month: "April", Desktop: 73, Mobile: 190},
	{Month: "May", Desktop: 209, Mobile: 130},
	{Month: "June", Desktop: 214, Mobile: 140},
}

// TableRow is one record of the static data table.
type TableRow struct {
	ID       int    `json:"id"`
	Header   string `json:"header"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Target   string `json:"target"`
	Limit    string `json:"limit"`
	Reviewer string `json:"reviewer"`
}

var (
	tableOnce sync.Once
	tableRows []TableRow
)

// TableRows returns the embedded dataset shown by table panes.
func TableRows() []TableRow {
	tableOnce.Do(func() {
		raw, err := embedded.ReadFile("layouts/table.json")
		if err == nil {
			_ = json.Unmarshal(raw, &tableRows)
		}
	})
	return tableRows
}
