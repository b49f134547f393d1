package model

import (
	"strings"
	"time"
)

type CreateDocumentReq struct {
	Title         string     `json:"title" validate:"required,min=1,max=500"`
	Authority     string     `json:"authority" validate:"required,min=1,max=200"`
	AuthorityKind string     `json:"authority_kind" validate:"required,oneof=gemeente provincie rijk waterschap"`
	DocType       string     `json:"doc_type" validate:"required,min=1,max=100"`
	SourceURL     string     `json:"source_url" validate:"required,url"`
	Content       string     `json:"content,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

func (r *CreateDocumentReq) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Authority = strings.ToLower(strings.TrimSpace(r.Authority))
	r.AuthorityKind = strings.ToLower(strings.TrimSpace(r.AuthorityKind))
	r.DocType = strings.ToLower(strings.TrimSpace(r.DocType))
	r.SourceURL = strings.TrimSpace(r.SourceURL)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
