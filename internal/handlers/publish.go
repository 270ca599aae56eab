package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// eventContext derives the context for a post-response event publish.
// It keeps the request's values but drops its cancellation, so a
// client disconnecting right after the response cannot abort the
// Kafka write. Bounded by its own timeout instead.
func eventContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request().Context()), 5*time.Second)
}
