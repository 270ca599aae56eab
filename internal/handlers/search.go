package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/logging"
	"github.com/bazaarnow/marketplace/internal/search"
	"github.com/bazaarnow/marketplace/internal/util"
)

type SearchHandler struct {
	Searcher search.Searcher
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Paginate(page, size)

	ctx := c.Request().Context()
	total, products, err := h.Searcher.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_failed", "query", q, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search error")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
