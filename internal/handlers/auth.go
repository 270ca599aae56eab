package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/events"
	"github.com/bazaarnow/marketplace/internal/identity"
	"github.com/bazaarnow/marketplace/internal/logging"
	authmw "github.com/bazaarnow/marketplace/internal/middleware/auth"
	"github.com/bazaarnow/marketplace/internal/models"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	Core      *app.Core
	Directory *identity.Directory
	JWTSecret []byte
	Producer  *events.Producer
}

// Login signs an identity into the :role slot. Customers authenticate
// through the external provider's profile; staff roles use email and
// password against the directory.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	role, err := authmw.RoleParam(c)
	if err != nil {
		return err
	}

	var id models.Identity
	if role == models.RoleCustomer {
		var profile identity.ExternalProfile
		if err := c.Bind(&profile); err != nil {
			l.Warn("login_failed", "status", 400, "reason", "invalid_body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if profile.ID == "" || profile.Email == "" {
			l.Warn("login_failed", "status", 400, "reason", "missing_profile_fields")
			return echo.NewHTTPError(http.StatusBadRequest, "external profile requires id and email")
		}
		id, err = h.Directory.ResolveCustomer(ctx, profile)
		if err != nil {
			l.Error("login_failed", "status", 500, "reason", "directory_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	} else {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			l.Warn("login_failed", "status", 400, "reason", "invalid_body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		id, err = h.Directory.StaffLogin(ctx, role, req.Email, req.Password)
		if errors.Is(err, identity.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid_credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		if err != nil {
			l.Error("login_failed", "status", 500, "reason", "directory_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	if err := h.Core.Login(ctx, role, id); err != nil {
		l.Error("login_failed", "status", 500, "reason", "persist_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	exp := time.Now().Add(sessionTTL)
	token, err := authmw.SignToken(id, role, h.JWTSecret, exp)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot_sign_token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create token")
	}
	c.SetCookie(CreateCookie(authmw.CookieName(role), token, "/", exp))

	h.publish(c, map[string]any{
		"type": "login",
		"role": role,
		"id":   id.ID,
	})

	l.Info("login_success", "role", role)
	return c.JSON(http.StatusOK, id)
}

// Logout clears the :role slot only; the other portals stay signed in.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	role, err := authmw.RoleParam(c)
	if err != nil {
		return err
	}

	if err := h.Core.Logout(ctx, role); err != nil {
		l.Error("logout_failed", "status", 500, "reason", "persist_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	c.SetCookie(DeleteCookie(authmw.CookieName(role), "/"))

	h.publish(c, map[string]any{
		"type": "logout",
		"role": role,
	})

	l.Info("logout_success", "role", role)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Session reports whether anyone is signed into the :role slot.
func (h *AuthHandler) Session(c echo.Context) error {
	role, err := authmw.RoleParam(c)
	if err != nil {
		return err
	}

	if id, ok := h.Core.Active(role); ok {
		return c.JSON(http.StatusOK, echo.Map{"active": true, "identity": id})
	}
	return c.JSON(http.StatusOK, echo.Map{"active": false})
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := eventContext(c)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.TopicSessions, event["type"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}
