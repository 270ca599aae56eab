package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/logging"
)

// RequestLogger attaches a request-scoped slog logger to the context
// and emits one http_request line per request, leveled by outcome.
// The request id comes from the incoming header when the caller sent
// one, else from the id the RequestID middleware already stamped on
// the response.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", c.Request().Method,
				"route", c.Path(),
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			req := c.Request().WithContext(logging.IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status

			args := []any{"status", status, "duration_ms", dur.Milliseconds()}
			if err != nil {
				args = append(args, "error", err.Error())
			}
			switch {
			case status >= 500:
				l.Error("http_request", args...)
			case status >= 400:
				l.Warn("http_request", args...)
			default:
				l.Info("http_request", append(args, "bytes_out", c.Response().Size)...)
			}
			return nil
		}
	}
}
