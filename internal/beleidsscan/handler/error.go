package handler

import (
	"errors"
	"net/http"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/etl"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/service"
)

// Helper to map errors to HTTP status and body
func httpError(err error) (int, interface{}) {
	var contractErr *etl.ContractError
	if errors.As(err, &contractErr) {
		return http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]any{
				"code":           "contract_violation",
				"message":        contractErr.Message,
				"schema_version": contractErr.SchemaVersion,
				"fields":         contractErr.Fields,
			},
		}
	}

	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Unauthorized"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		msg = "Record not found"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
		msg = "Record already exists"
	case errors.Is(err, service.ErrMergeConflict):
		status = http.StatusConflict
		code = "merge_conflict"
		msg = "Merge produced unresolved conflicts"
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
		code = "bad_request"
		msg = "Invalid input"
	case errors.Is(err, service.ErrUpstream):
		status = http.StatusBadGateway
		code = "upstream_unavailable"
		msg = "Upstream service unavailable"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = err.Error()
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}

func validationError(err error) model.ErrorResponse {
	if e, ok := err.(*model.ErrorDetail); ok {
		return model.ErrorResponse{Error: *e}
	}
	return model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: err.Error()},
	}
}

func bindError() model.ErrorResponse {
	return model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
	}
}
