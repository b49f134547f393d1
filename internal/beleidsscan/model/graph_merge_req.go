package model

import (
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
)

type DiffGraphReq struct {
	VersionA int64 `json:"version_a" validate:"required,gt=0"`
	VersionB int64 `json:"version_b" validate:"required,gt=0"`
}

func (r *DiffGraphReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// MergeGraphReq merges two stored versions against an explicit base version
// without saving; the preview API for the review UI.
type MergeGraphReq struct {
	BaseVersion   int64                 `json:"base_version" validate:"required,gt=0"`
	OursVersion   int64                 `json:"ours_version" validate:"required,gt=0"`
	TheirsVersion int64                 `json:"theirs_version" validate:"required,gt=0"`
	Strategy      merge.Strategy        `json:"strategy,omitempty"`
	Choices       map[string]merge.Side `json:"choices,omitempty"`
}

func (r *MergeGraphReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Strategy != "" && !r.Strategy.Valid() {
		return &ErrorDetail{Code: "bad_request", Message: "unknown merge strategy: " + string(r.Strategy)}
	}
	return nil
}
