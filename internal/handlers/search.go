package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"shopper-api/internal/service/search"
	"shopper-api/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "missing query"})
	}
	if h.ES == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": "search is not configured"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		c.Logger().Errorf("search error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
