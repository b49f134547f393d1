package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

// GetGeoLookup handles GET /geo/lookup
func (h *Handler) GetGeoLookup(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Missing q"},
		})
	}

	rows := 0
	if v := c.QueryParam("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid rows"},
			})
		}
		rows = n
	}
	bypassCache := c.QueryParam("fresh") == "true"

	docs, err := h.Geo.Lookup(c.Request().Context(), q, rows, bypassCache)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, docs)
}

// GetCrawlCaptures handles GET /crawl/captures
func (h *Handler) GetCrawlCaptures(c echo.Context) error {
	target := c.QueryParam("url")
	if target == "" {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Missing url"},
		})
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid limit"},
			})
		}
		limit = n
	}

	records, err := h.Crawl.Captures(c.Request().Context(), target, c.QueryParam("match_type"), limit)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, records)
}
