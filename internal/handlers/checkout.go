package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/events"
	"github.com/bazaarnow/marketplace/internal/logging"
	"github.com/bazaarnow/marketplace/internal/order"
	"github.com/bazaarnow/marketplace/internal/payment"
)

type CheckoutHandler struct {
	Core     *app.Core
	Payments *payment.Processor
	Producer *events.Producer
}

type checkoutRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Landmark      string `json:"landmark"`
	PaymentMethod string `json:"payment_method"`
}

// validate mirrors the original form checks: field-level errors that
// never reach the order book.
func (r checkoutRequest) validate() map[string]string {
	errs := map[string]string{}
	if r.Name == "" {
		errs["name"] = "Required"
	}
	if len(r.Phone) < 10 {
		errs["phone"] = "Invalid phone"
	}
	if r.Address == "" {
		errs["address"] = "Required"
	}
	return errs
}

// Checkout validates the delivery form, runs the simulated payment and
// turns the cart into an order. Aborting the request mid-payment
// abandons the whole thing: no order is created, the cart is kept.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid_body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if errs := req.validate(); len(errs) > 0 {
		l.Warn("checkout_failed", "status", 400, "reason", "validation", "fields", errs)
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	if _, _, count := h.Core.CartView(); count == 0 {
		l.Warn("checkout_failed", "status", 400, "reason", "empty_cart")
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	if err := h.Payments.Process(ctx); err != nil {
		// client went away mid-payment; nothing was committed
		l.Info("checkout_abandoned", "error", err)
		return err
	}

	o, err := h.Core.Checkout(ctx, order.CustomerInfo{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if errors.Is(err, app.ErrEmptyCart) {
		// cart was emptied while the payment delay ran
		l.Warn("checkout_failed", "status", 400, "reason", "empty_cart")
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		l.Error("checkout_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":     "order_created",
		"order_id": o.ID,
		"customer": o.CustomerID,
		"total":    o.Total,
	})

	l.Info("checkout_success", "order_id", o.ID, "total", o.Total)
	return c.JSON(http.StatusCreated, o)
}

func (h *CheckoutHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := eventContext(c)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.TopicOrders, event["order_id"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}
