package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/service"
)

// PutScraperGraph handles PUT /scrapers/:scraperId/graph
func (h *Handler) PutScraperGraph(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.SaveGraphReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	result, mergeRes, err := h.Graphs.SaveGraph(c.Request().Context(), callerID, c.Param("scraperId"), req)
	if err != nil {
		if errors.Is(err, service.ErrMergeConflict) && mergeRes != nil {
			return c.JSON(http.StatusConflict, map[string]any{
				"error": map[string]any{
					"code":    "merge_conflict",
					"message": "Merge produced unresolved conflicts",
				},
				"node_conflicts": mergeRes.NodeConflicts,
				"edge_conflicts": mergeRes.EdgeConflicts,
			})
		}
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	status := http.StatusCreated
	if result.Merged {
		status = http.StatusOK
	}
	return c.JSON(status, result)
}

// GetScraperGraph handles GET /scrapers/:scraperId/graph
func (h *Handler) GetScraperGraph(c echo.Context) error {
	g, err := h.Graphs.HeadGraph(c.Request().Context(), c.Param("scraperId"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, g)
}

// GetScraperGraphVersion handles GET /scrapers/:scraperId/graph/versions/:version
func (h *Handler) GetScraperGraphVersion(c echo.Context) error {
	version, err := strconv.ParseInt(c.Param("version"), 10, 64)
	if err != nil || version <= 0 {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid version"},
		})
	}

	g, err := h.Graphs.GetGraphVersion(c.Request().Context(), c.Param("scraperId"), version)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, g)
}

// GetScraperGraphVersions handles GET /scrapers/:scraperId/graph/versions
func (h *Handler) GetScraperGraphVersions(c echo.Context) error {
	versions, err := h.Graphs.ListGraphVersions(c.Request().Context(), c.Param("scraperId"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, versions)
}

// PostScraperGraphDiff handles POST /scrapers/:scraperId/graph/diff
func (h *Handler) PostScraperGraphDiff(c echo.Context) error {
	var req model.DiffGraphReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	diff, err := h.Graphs.DiffGraphVersions(c.Request().Context(), c.Param("scraperId"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, diff)
}

// PostScraperGraphMerge handles POST /scrapers/:scraperId/graph/merge
func (h *Handler) PostScraperGraphMerge(c echo.Context) error {
	var req model.MergeGraphReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	res, err := h.Graphs.MergeGraphVersions(c.Request().Context(), c.Param("scraperId"), req)
	if err != nil {
		if errors.Is(err, service.ErrMergeConflict) && res != nil {
			return c.JSON(http.StatusConflict, map[string]any{
				"error": map[string]any{
					"code":    "merge_conflict",
					"message": "Merge produced unresolved conflicts",
				},
				"node_conflicts": res.NodeConflicts,
				"edge_conflicts": res.EdgeConflicts,
			})
		}
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, res)
}
