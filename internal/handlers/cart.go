package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/events"
	"github.com/bazaarnow/marketplace/internal/logging"
	"github.com/bazaarnow/marketplace/internal/models"
)

// CartHandler exposes the active cart. The cart is usable without a
// sign-in; guests can shop and check out, as in the original.
type CartHandler struct {
	Core     *app.Core
	Producer *events.Producer
}

type cartView struct {
	Items    []models.CartEntry `json:"items"`
	Subtotal int64              `json:"subtotal"`
	Count    int                `json:"count"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	items, subtotal, count := h.Core.CartView()
	return c.JSON(http.StatusOK, cartView{Items: items, Subtotal: subtotal, Count: count})
}

// AddToCart puts one unit of the product in the cart; repeated calls
// keep incrementing the quantity.
func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		l.Warn("cart_add_failed", "status", 400, "reason", "invalid_body")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	entry, err := h.Core.AddToCart(ctx, req.ProductID)
	if errors.Is(err, app.ErrUnknownProduct) {
		l.Warn("cart_add_failed", "status", 404, "product_id", req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		l.Error("cart_add_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_added",
		"product_id": req.ProductID,
		"quantity":   entry.Quantity,
	})
	return c.JSON(http.StatusOK, entry)
}

// UpdateQuantity adjusts an entry by a signed delta. Reaching zero
// deletes the entry; unknown product ids are a no-op.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_update")

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_update_failed", "status", 400, "reason", "invalid_body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	productID := c.Param("productId")
	if err := h.Core.UpdateCartQuantity(ctx, productID, req.Delta); err != nil {
		l.Error("cart_update_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":       "cart_quantity_updated",
		"product_id": productID,
		"delta":      req.Delta,
	})

	items, subtotal, count := h.Core.CartView()
	return c.JSON(http.StatusOK, cartView{Items: items, Subtotal: subtotal, Count: count})
}

// RemoveItem deletes the entry for the product; missing ids no-op.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	productID := c.Param("productId")
	if err := h.Core.RemoveFromCart(ctx, productID); err != nil {
		logging.FromContext(ctx).Error("cart_remove_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_removed",
		"product_id": productID,
	})

	items, subtotal, count := h.Core.CartView()
	return c.JSON(http.StatusOK, cartView{Items: items, Subtotal: subtotal, Count: count})
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Core.ClearCart(ctx); err != nil {
		logging.FromContext(ctx).Error("cart_clear_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{"type": "cart_cleared"})
	return c.JSON(http.StatusOK, cartView{Items: []models.CartEntry{}})
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := eventContext(c)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.TopicCart, event["type"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}
