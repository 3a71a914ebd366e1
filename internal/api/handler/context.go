package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/dashboard-workspace/internal/api/middleware"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// ctxClaims extracts the token claims injected by the Auth middleware and
// fails fast before any service call:
//   - claims must be present (presence proves the middleware ran).
//   - subject and token id must be set; sign-out cannot revoke a token
//     without its id.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(ports.TokenClaims)
	if !ok || claims.Subject == "" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if claims.TokenID == "" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing identifier")
	}
	return claims, nil
}
