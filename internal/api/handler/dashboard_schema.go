package handler

import (
	"time"

	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createDashboardRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	URL  string `json:"url"  validate:"omitempty,max=2048"`
	Icon string `json:"icon" validate:"omitempty"`
}

// updateDashboardRequest distinguishes absent fields (nil) from blank ones.
type updateDashboardRequest struct {
	Name *string `json:"name" validate:"omitempty,max=120"`
	URL  *string `json:"url"  validate:"omitempty,max=2048"`
	Icon *string `json:"icon"`
}

type dashboardResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon"`
	Glyph     string    `json:"glyph"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type listDashboardsResponse struct {
	Data  []dashboardResponse `json:"data"`
	Total int                 `json:"total"`
	Query string              `json:"query,omitempty"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

type deletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type newTabRequest struct {
	Component string `json:"component" validate:"required"`
	Label     string `json:"label"     validate:"omitempty,max=60"`
}

type paletteResponse struct {
	Items []workspace.PaletteItem `json:"items"`
}
