package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/service"
)

// PostKGBranch handles POST /kg/branches
func (h *Handler) PostKGBranch(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CreateBranchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	branch, err := h.KG.CreateBranch(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, branch)
}

// GetKGBranches handles GET /kg/branches
func (h *Handler) GetKGBranches(c echo.Context) error {
	branches, err := h.KG.ListBranches(c.Request().Context())
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, branches)
}

// GetKGLog handles GET /kg/branches/:branch/log
func (h *Handler) GetKGLog(c echo.Context) error {
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

	commits, err := h.KG.Log(c.Request().Context(), c.Param("branch"), limit)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, commits)
}

// PostKGCommit handles POST /kg/branches/:branch/commits
func (h *Handler) PostKGCommit(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CommitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	commit, err := h.KG.Commit(c.Request().Context(), c.Param("branch"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, commit)
}

// PostKGMerge handles POST /kg/merge
func (h *Handler) PostKGMerge(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.KGMergeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	result, err := h.KG.Merge(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMergeConflict) && result != nil {
			return c.JSON(http.StatusConflict, result)
		}
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, result)
}

// PostKGStash handles POST /kg/stashes
func (h *Handler) PostKGStash(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.StashReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	stash, err := h.KG.Stash(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, stash)
}

// PostKGStashPop handles POST /kg/stashes/pop
func (h *Handler) PostKGStashPop(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.StashPopReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	stash, err := h.KG.StashPop(c.Request().Context(), req.Branch)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, stash)
}

// GetKGStashes handles GET /kg/stashes
func (h *Handler) GetKGStashes(c echo.Context) error {
	branch := c.QueryParam("branch")
	if branch == "" {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Missing branch"},
		})
	}

	stashes, err := h.KG.StashList(c.Request().Context(), branch)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, stashes)
}

// PostKGQuery handles POST /kg/query
func (h *Handler) PostKGQuery(c echo.Context) error {
	var req model.SparqlQueryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	res, err := h.KG.Query(c.Request().Context(), req.Query)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, res)
}

// PostKGUpdate handles POST /kg/update
func (h *Handler) PostKGUpdate(c echo.Context) error {
	var req model.SparqlUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	if err := h.KG.Update(c.Request().Context(), req.Update); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
