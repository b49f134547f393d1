package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

// GetBreakers handles GET /admin/breakers
func (h *Handler) GetBreakers(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, h.Breakers.Snapshot())
}

// PostBreakerReset handles POST /admin/breakers/:name/reset
func (h *Handler) PostBreakerReset(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Breakers.Reset(c.Param("name")); err != nil {
		if errors.Is(err, breaker.ErrUnknownBreaker) {
			return c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "not_found", Message: "Record not found"},
			})
		}
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
