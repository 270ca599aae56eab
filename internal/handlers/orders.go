package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/events"
	"github.com/bazaarnow/marketplace/internal/logging"
	authmw "github.com/bazaarnow/marketplace/internal/middleware/auth"
	"github.com/bazaarnow/marketplace/internal/models"
	"github.com/bazaarnow/marketplace/internal/order"
)

type OrderHandler struct {
	Core     *app.Core
	Producer *events.Producer
}

// List returns the orders visible to the signed-in role: own orders
// for customers, everything for admin, the bound store's orders for
// vendors, out-for-delivery orders for delivery.
func (h *OrderHandler) List(c echo.Context) error {
	role, err := authmw.RoleParam(c)
	if err != nil {
		return err
	}
	id, ok := authmw.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	orders := h.Core.OrdersFor(role, id)
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// Advance moves an order to the requested status. Only the immediate
// successor of the current status is accepted; customers cannot
// transition orders at all.
func (h *OrderHandler) Advance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_advance")

	role, err := authmw.RoleParam(c)
	if err != nil {
		return err
	}
	if role == models.RoleCustomer {
		return echo.NewHTTPError(http.StatusForbidden, "customers cannot change order status")
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		l.Warn("advance_failed", "status", 400, "reason", "invalid_body")
		return echo.NewHTTPError(http.StatusBadRequest, "status required")
	}

	orderID := c.Param("id")
	o, err := h.Core.AdvanceOrder(ctx, orderID, req.Status)
	if errors.Is(err, order.ErrNotFound) {
		l.Warn("advance_failed", "status", 404, "order_id", orderID)
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if errors.Is(err, order.ErrInvalidTransition) {
		l.Warn("advance_failed", "status", 409, "order_id", orderID, "to", req.Status)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		l.Error("advance_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":     "order_status_changed",
		"order_id": o.ID,
		"status":   o.Status,
		"by_role":  role,
	})

	l.Info("advance_success", "order_id", o.ID, "to", o.Status)
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := eventContext(c)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.TopicOrders, event["order_id"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}
