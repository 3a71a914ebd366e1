package handler

import (
	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// --- Request → Domain ---

func toDraft(req createDashboardRequest) domain.DashboardDraft {
	return domain.DashboardDraft{
		Name: req.Name,
		URL:  req.URL,
		Icon: domain.IconKey(req.Icon),
	}
}

func toPatch(req updateDashboardRequest) domain.DashboardPatch {
	patch := domain.DashboardPatch{Name: req.Name, URL: req.URL}
	if req.Icon != nil {
		icon := domain.IconKey(*req.Icon)
		patch.Icon = &icon
	}
	return patch
}

// --- Domain → Response ---

func toDashboardResponse(d *domain.Dashboard) dashboardResponse {
	return dashboardResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		URL:       d.URL,
		Icon:      string(d.Icon),
		Glyph:     domain.ResolveGlyph(d.Icon),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toListResponse(items []*domain.Dashboard, query string) listDashboardsResponse {
	data := make([]dashboardResponse, 0, len(items))
	for _, d := range items {
		data = append(data, toDashboardResponse(d))
	}
	return listDashboardsResponse{Data: data, Total: len(data), Query: query}
}
