package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

// PostDocument handles POST /documents
func (h *Handler) PostDocument(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CreateDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	doc, err := h.Documents.CreateDocument(c.Request().Context(), callerID, req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, doc)
}

// GetDocument handles GET /documents/:id
func (h *Handler) GetDocument(c echo.Context) error {
	doc, err := h.Documents.GetDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, doc)
}

// GetDocuments handles GET /documents
func (h *Handler) GetDocuments(c echo.Context) error {
	filter := model.DocumentFilter{
		Authority:     c.QueryParam("authority"),
		AuthorityKind: c.QueryParam("authority_kind"),
		DocType:       c.QueryParam("doc_type"),
		TitleQuery:    c.QueryParam("q"),
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid limit"},
			})
		}
		filter.Limit = limit
	}

	docs, err := h.Documents.ListDocuments(c.Request().Context(), filter)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, docs)
}

// PutDocument handles PUT /documents/:id
func (h *Handler) PutDocument(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.UpdateDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	doc, err := h.Documents.UpdateDocument(c.Request().Context(), callerID, c.Param("id"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, doc)
}

// DeleteDocument handles DELETE /documents/:id
func (h *Handler) DeleteDocument(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Documents.DeleteDocument(c.Request().Context(), callerID, c.Param("id")); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// PostDocumentExtension handles POST /documents/:id/extensions
func (h *Handler) PostDocumentExtension(c echo.Context) error {
	callerID, err := h.extractCallerID(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.AttachExtensionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, bindError())
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	doc, err := h.Documents.AttachExtension(c.Request().Context(), callerID, c.Param("id"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, doc)
}
