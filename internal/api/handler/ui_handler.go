package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	g "maragu.dev/gomponents"

	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
	"github.com/99minutos/dashboard-workspace/internal/sidebar"
	"github.com/99minutos/dashboard-workspace/internal/ui"
)

// UIHandler serves the server-rendered pages and the live sidebar socket.
type UIHandler struct {
	dashboards    ports.DashboardService
	workspace     ports.WorkspaceService
	notifier      ports.SessionNotifier
	googleEnabled bool
	log           zerolog.Logger
}

func NewUIHandler(dashboards ports.DashboardService, workspace ports.WorkspaceService, notifier ports.SessionNotifier, googleEnabled bool, log zerolog.Logger) *UIHandler {
	return &UIHandler{
		dashboards:    dashboards,
		workspace:     workspace,
		notifier:      notifier,
		googleEnabled: googleEnabled,
		log:           log,
	}
}

// Login handles GET /login. Signed-in visitors go straight to the shell.
func (h *UIHandler) Login(c echo.Context) error {
	if _, ok := identity.UserFromContext(c.Request().Context()); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return renderHTML(c, http.StatusOK, ui.LoginPage(h.googleEnabled))
}

// Shell handles GET /. The first sidebar snapshot is rendered inline; later
// changes arrive over /ui/live.
func (h *UIHandler) Shell(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := identity.UserFromContext(ctx)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	ctrl := sidebar.NewController(h.dashboards, h.log)
	ctrl.SetUser(ctx, user)

	layout, err := h.workspace.Layout(ctx)
	if err != nil {
		return err
	}
	return renderHTML(c, http.StatusOK, ui.ShellPage(ctrl.Snapshot(), layout, h.workspace.Palette()))
}

func renderHTML(c echo.Context, code int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return node.Render(c.Response())
}
