package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// DashboardHandler handles HTTP requests for dashboard shortcuts.
// Every route runs behind the Auth middleware, which places the caller in
// the request context; the service resolves it from there.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// List handles GET /v1/dashboards. With ?q= it searches by name instead.
//
// @Summary      List or search the caller's dashboards
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Case-insensitive name filter"
// @Success      200  {object}  listDashboardsResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/dashboards [get]
func (h *DashboardHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParams().Has("q") {
		query := c.QueryParam("q")
		items, err := h.service.Search(ctx, query)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toListResponse(items, query))
	}

	items, err := h.service.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(items, ""))
}

// Create handles POST /v1/dashboards.
//
// @Summary      Create a dashboard shortcut
// @Tags         dashboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDashboardRequest  true  "Dashboard details"
// @Success      201   {object}  dashboardResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/dashboards [post]
func (h *DashboardHandler) Create(c echo.Context) error {
	var req createDashboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	d, err := h.service.Create(c.Request().Context(), toDraft(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toDashboardResponse(d))
}

// Get handles GET /v1/dashboards/:id.
//
// @Summary      Get a dashboard by id
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Dashboard id"
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/dashboards/{id} [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	d, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(d))
}

// Update handles PATCH /v1/dashboards/:id. Only the fields present in the
// body change; a blank url or icon resets it to the default.
//
// @Summary      Partially update a dashboard
// @Tags         dashboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Dashboard id"
// @Param        body  body      updateDashboardRequest  true  "Fields to change"
// @Success      200   {object}  dashboardResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/dashboards/{id} [patch]
func (h *DashboardHandler) Update(c echo.Context) error {
	var req updateDashboardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	d, err := h.service.Update(c.Request().Context(), c.Param("id"), toPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(d))
}

// Delete handles DELETE /v1/dashboards/:id.
//
// @Summary      Delete a dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Dashboard id"
// @Success      200  {object}  deletedResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/dashboards/{id} [delete]
func (h *DashboardHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{ID: id, Deleted: true})
}

// Count handles GET /v1/dashboards/count.
//
// @Summary      Count the caller's dashboards
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboards/count [get]
func (h *DashboardHandler) Count(c echo.Context) error {
	n, err := h.service.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

// CountAll handles GET /v1/admin/dashboards/count.
//
// @Summary      Count every dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/dashboards/count [get]
func (h *DashboardHandler) CountAll(c echo.Context) error {
	n, err := h.service.CountAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}
