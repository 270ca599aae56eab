package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/models"
)

// CookieName returns the role-scoped auth cookie. One cookie per role
// lets all four portals stay signed in from the same browser.
func CookieName(role models.Role) string {
	return string(role) + "Token"
}

// SignToken issues the HS256 token stored in a role cookie.
func SignToken(id models.Identity, role models.Role, secret []byte, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id.ID,
		"role": string(role),
		"exp":  expires.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func parseToken(raw string, secret []byte) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// RoleParam reads and validates the :role route parameter.
func RoleParam(c echo.Context) (models.Role, error) {
	role := models.Role(c.Param("role"))
	if !role.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}
	return role, nil
}

// RequireRole gates a route group on the :role parameter's cookie: the
// token must verify, carry that role, and match the identity currently
// signed into the role's session slot. The identity lands in the echo
// context under "identity".
func RequireRole(core *app.Core, secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := RoleParam(c)
			if err != nil {
				return err
			}

			cookie, err := c.Cookie(CookieName(role))
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
			}

			claims, err := parseToken(cookie.Value, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if r, _ := claims["role"].(string); r != string(role) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token role mismatch")
			}

			id, ok := core.Active(role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}
			if sub, _ := claims["sub"].(string); sub != id.ID {
				return echo.NewHTTPError(http.StatusUnauthorized, "stale session")
			}

			c.Set("identity", id)
			c.Set("role", role)
			return next(c)
		}
	}
}

// Identity returns the identity RequireRole stored on the context.
func Identity(c echo.Context) (models.Identity, bool) {
	id, ok := c.Get("identity").(models.Identity)
	return id, ok
}
