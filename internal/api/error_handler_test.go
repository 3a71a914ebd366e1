package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"auth required", domain.ErrAuthenticationRequired, http.StatusUnauthorized},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"store not found", &domain.RemoteStoreError{Op: "fetch dashboard", Err: domain.ErrDashboardNotFound}, http.StatusNotFound},
		{"conflict", domain.ErrUserExists, http.StatusConflict},
		{"validation", domain.NewValidationError("name is required"), http.StatusUnprocessableEntity},
		{"layout", domain.ErrInvalidLayout, http.StatusUnprocessableEntity},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{"store down", &domain.RemoteStoreError{Op: "fetch dashboards", Err: errors.New("dial tcp")}, http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
				t.Fatalf("expected error envelope, got %q", rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("password=hunter2"), c)

	if rec.Body.String() != "{\"error\":\"internal server error\"}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
