package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/catalog"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

func (h *CatalogHandler) ListStores(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Stores())
}

func (h *CatalogHandler) GetStore(c echo.Context) error {
	s, ok := h.Catalog.Store(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "store not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) StoreProducts(c echo.Context) error {
	if _, ok := h.Catalog.Store(c.Param("id")); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "store not found")
	}
	return c.JSON(http.StatusOK, h.Catalog.StoreProducts(c.Param("id")))
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	if cat := c.QueryParam("category"); cat != "" {
		return c.JSON(http.StatusOK, h.Catalog.CategoryProducts(cat))
	}
	return c.JSON(http.StatusOK, h.Catalog.Products())
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	p, ok := h.Catalog.Product(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, p)
}
