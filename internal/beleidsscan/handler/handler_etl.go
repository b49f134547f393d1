package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

// ETL payloads are validated against the cross-runtime contracts rather than
// bound into request structs, so the handlers pass the raw body through.

// PostETLJob handles POST /etl/jobs
func (h *Handler) PostETLJob(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	job, err := h.ETL.SubmitJob(c.Request().Context(), callerID, raw)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, job)
}

// GetETLJob handles GET /etl/jobs/:runId
func (h *Handler) GetETLJob(c echo.Context) error {
	job, err := h.ETL.GetJob(c.Request().Context(), c.Param("runId"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, job)
}

// PostETLJobResult handles POST /etl/jobs/:runId/result
func (h *Handler) PostETLJobResult(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	job, err := h.ETL.RecordResult(c.Request().Context(), c.Param("runId"), raw)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, job)
}

// PostETLJobManifest handles POST /etl/jobs/:runId/manifest
func (h *Handler) PostETLJobManifest(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	job, err := h.ETL.RecordManifest(c.Request().Context(), c.Param("runId"), raw)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, job)
}

// PostExtensionMigrate handles POST /extensions/migrate
func (h *Handler) PostExtensionMigrate(c echo.Context) error {
	var req model.MigrateExtensionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	result, err := h.Extensions.Migrate(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, result)
}
