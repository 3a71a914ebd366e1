package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/dashboard-workspace/internal/api/metrics"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

// WorkspaceHandler serves the per-user pane layout.
type WorkspaceHandler struct {
	service ports.WorkspaceService
}

func NewWorkspaceHandler(service ports.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{service: service}
}

// GetLayout handles GET /v1/workspace/layout.
//
// @Summary      Get the caller's workspace layout
// @Tags         workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workspace.Model
// @Failure      401  {object}  errorResponse
// @Router       /v1/workspace/layout [get]
func (h *WorkspaceHandler) GetLayout(c echo.Context) error {
	m, err := h.service.Layout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// SaveLayout handles PUT /v1/workspace/layout.
//
// @Summary      Save the caller's workspace layout
// @Tags         workspace
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  workspace.Model  true  "Layout tree"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/workspace/layout [put]
func (h *WorkspaceHandler) SaveLayout(c echo.Context) error {
	var m workspace.Model
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SaveLayout(c.Request().Context(), &m)
	metrics.LayoutSavesTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetLayout handles DELETE /v1/workspace/layout and returns the default.
//
// @Summary      Reset the caller's workspace layout
// @Tags         workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workspace.Model
// @Router       /v1/workspace/layout [delete]
func (h *WorkspaceHandler) ResetLayout(c echo.Context) error {
	m, err := h.service.ResetLayout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// NewTab handles POST /v1/workspace/tabs.
//
// @Summary      Create a tab descriptor for a palette component
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newTabRequest  true  "Component and optional label"
// @Success      201   {object}  workspace.Node
// @Failure      422   {object}  errorResponse
// @Router       /v1/workspace/tabs [post]
func (h *WorkspaceHandler) NewTab(c echo.Context) error {
	var req newTabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tab, err := h.service.NewTab(c.Request().Context(), req.Component, req.Label)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tab)
}

// Palette handles GET /v1/workspace/palette.
//
// @Summary      List draggable components
// @Tags         workspace
// @Produce      json
// @Success      200  {object}  paletteResponse
// @Router       /v1/workspace/palette [get]
func (h *WorkspaceHandler) Palette(c echo.Context) error {
	return c.JSON(http.StatusOK, paletteResponse{Items: h.service.Palette()})
}
