package model

import (
	"strings"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/kg"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
)

type CreateBranchReq struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	// From is the branch the new head starts at; empty creates an orphan branch.
	From string `json:"from,omitempty"`
}

func (r *CreateBranchReq) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.From = strings.TrimSpace(r.From)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type CommitReq struct {
	Triples []kg.Triple `json:"triples" validate:"required,min=1,dive"`
	Message string      `json:"message" validate:"required,min=1,max=500"`
}

func (r *CommitReq) Validate() error {
	r.Message = strings.TrimSpace(r.Message)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	for _, t := range r.Triples {
		if t.Subject == "" || t.Predicate == "" {
			return &ErrorDetail{Code: "bad_request", Message: "triple subject and predicate are required"}
		}
	}
	return nil
}

type KGMergeReq struct {
	Source   string                `json:"source" validate:"required,min=1"`
	Target   string                `json:"target" validate:"required,min=1"`
	Strategy merge.Strategy        `json:"strategy,omitempty"`
	Choices  map[string]merge.Side `json:"choices,omitempty"`
}

func (r *KGMergeReq) Validate() error {
	r.Source = strings.TrimSpace(r.Source)
	r.Target = strings.TrimSpace(r.Target)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Source == r.Target {
		return &ErrorDetail{Code: "bad_request", Message: "source and target must differ"}
	}
	if r.Strategy != "" && !r.Strategy.Valid() {
		return &ErrorDetail{Code: "bad_request", Message: "unknown merge strategy: " + string(r.Strategy)}
	}
	return nil
}

// KGMergeResult reports how a branch merge concluded. Conflicts are only set
// when the merge was rejected.
type KGMergeResult struct {
	Source      string                      `json:"source"`
	Target      string                      `json:"target"`
	Outcome     string                      `json:"outcome"` // merged | fast_forward | up_to_date
	MergeCommit string                      `json:"merge_commit,omitempty"`
	Conflicts   []merge.Conflict[kg.Triple] `json:"conflicts,omitempty"`
}

const (
	KGMergeOutcomeMerged      = "merged"
	KGMergeOutcomeFastForward = "fast_forward"
	KGMergeOutcomeUpToDate    = "up_to_date"
	KGMergeOutcomeConflict    = "conflict"
)

type StashReq struct {
	Branch  string      `json:"branch" validate:"required,min=1"`
	Triples []kg.Triple `json:"triples" validate:"required,min=1,dive"`
	Message string      `json:"message,omitempty" validate:"omitempty,max=500"`
}

func (r *StashReq) Validate() error {
	r.Branch = strings.TrimSpace(r.Branch)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type StashPopReq struct {
	Branch string `json:"branch" validate:"required,min=1"`
}

func (r *StashPopReq) Validate() error {
	r.Branch = strings.TrimSpace(r.Branch)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type SparqlQueryReq struct {
	Query string `json:"query" validate:"required,min=1"`
}

func (r *SparqlQueryReq) Validate() error {
	r.Query = strings.TrimSpace(r.Query)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type SparqlUpdateReq struct {
	Update string `json:"update" validate:"required,min=1"`
}

func (r *SparqlUpdateReq) Validate() error {
	r.Update = strings.TrimSpace(r.Update)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
