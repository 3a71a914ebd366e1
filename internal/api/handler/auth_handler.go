package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/api/middleware"
	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

const (
	oauthSessionName = "oauth"
	oauthStateKey    = "state"
)

// OAuthProvider is an external sign-in provider using the authorization-code flow.
type OAuthProvider interface {
	Enabled() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (domain.ProviderProfile, error)
}

// CookieConfig controls the auth cookie handed to browsers.
type CookieConfig struct {
	Secure       bool
	TTL          time.Duration
	PostLoginURL string
}

type AuthHandler struct {
	authService ports.AuthService
	provider    OAuthProvider
	cookies     CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, provider OAuthProvider, cookies CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, provider: provider, cookies: cookies, log: log}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new local user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.Name)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a local user, returns a JWT and sets the auth cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)
	if c.Request().Header.Get("HX-Request") != "" {
		c.Response().Header().Set("HX-Redirect", "/")
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// GoogleLogin starts the Google sign-in redirect.
//
// @Summary      Start Google sign-in
// @Tags         auth
// @Success      307
// @Failure      404  {object}  errorResponse
// @Router       /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	if h.provider == nil || !h.provider.Enabled() {
		return echo.NewHTTPError(http.StatusNotFound, "google sign-in is not configured")
	}

	sess, err := session.Get(oauthSessionName, c)
	if err != nil {
		return err
	}
	state := uuid.NewString()
	sess.Values[oauthStateKey] = state
	sess.Options = &sessions.Options{
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	return c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// GoogleCallback completes Google sign-in and redirects to the app.
//
// @Summary      Google sign-in callback
// @Tags         auth
// @Param        state  query  string  true  "Opaque state issued by /auth/google/login"
// @Param        code   query  string  true  "Authorization code"
// @Success      303
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if h.provider == nil || !h.provider.Enabled() {
		return echo.NewHTTPError(http.StatusNotFound, "google sign-in is not configured")
	}
	if reason := c.QueryParam("error"); reason != "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "sign-in cancelled: "+reason)
	}

	sess, err := session.Get(oauthSessionName, c)
	if err != nil {
		return err
	}
	expected, _ := sess.Values[oauthStateKey].(string)
	delete(sess.Values, oauthStateKey)
	sess.Options = &sessions.Options{Path: "/auth/google", MaxAge: -1}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	if expected == "" || c.QueryParam("state") != expected {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid oauth state")
	}

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	ctx := c.Request().Context()
	profile, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.log.Warn().Err(err).Msg("google exchange failed")
		return echo.NewHTTPError(http.StatusUnauthorized, "google sign-in failed")
	}

	token, _, err := h.authService.SignInWithProvider(ctx, profile)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)
	return c.Redirect(http.StatusSeeOther, h.cookies.PostLoginURL)
}

// Logout revokes the current token and clears the auth cookie. htmx callers
// are sent back to the login page.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.SignOut(c.Request().Context(), claims); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
	})
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/login")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the signed-in user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.Me(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookies.TTL),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
