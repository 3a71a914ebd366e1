package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// TokenCookie carries the access token for browser sessions.
const TokenCookie = "auth_token"

// ClaimsKey is the echo context key holding the decoded ports.TokenClaims.
const ClaimsKey = "claims"

var (
	errMissingToken = errors.New("missing authorization")
	errInvalidToken = errors.New("invalid token")
	errRevokedToken = errors.New("token revoked")
)

// Auth validates the JWT from the Authorization header or the auth cookie,
// rejects revoked tokens and injects the claims into both the echo context
// and the request context.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := authenticate(c, jwtSecret, revoker)
			switch {
			case errors.Is(err, errMissingToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			case errors.Is(err, errRevokedToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			case errors.Is(err, errInvalidToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			case err != nil:
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session check unavailable")
			}

			inject(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth but lets anonymous requests through
// untouched. Used by the server-rendered pages.
func OptionalAuth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := authenticate(c, jwtSecret, revoker); err == nil {
				inject(c, claims)
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, jwtSecret string, revoker ports.TokenRevoker) (ports.TokenClaims, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return ports.TokenClaims{}, err
	}

	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, mc, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, errInvalidToken
	}

	claims := ports.TokenClaims{
		TokenID:  stringClaim(mc, "jti"),
		Subject:  stringClaim(mc, "sub"),
		Username: stringClaim(mc, "username"),
		Email:    stringClaim(mc, "email"),
		Role:     stringClaim(mc, "role"),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if claims.Subject == "" || claims.TokenID == "" {
		return ports.TokenClaims{}, errInvalidToken
	}

	if revoker != nil {
		revoked, err := revoker.IsRevoked(c.Request().Context(), claims.TokenID)
		if err != nil {
			return ports.TokenClaims{}, err
		}
		if revoked {
			return ports.TokenClaims{}, errRevokedToken
		}
	}
	return claims, nil
}

func bearerToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", errInvalidToken
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", errMissingToken
}

func inject(c echo.Context, claims ports.TokenClaims) {
	c.Set(ClaimsKey, claims)
	c.Set("user_id", claims.Subject)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)

	ctx := identity.WithUser(c.Request().Context(), &domain.User{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	})
	c.SetRequest(c.Request().WithContext(ctx))
}

func stringClaim(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}
