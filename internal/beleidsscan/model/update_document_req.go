package model

import (
	"strings"
	"time"
)

// UpdateDocumentReq carries the mutable fields; empty fields are left as-is.
type UpdateDocumentReq struct {
	Title       string     `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	DocType     string     `json:"doc_type,omitempty" validate:"omitempty,min=1,max=100"`
	SourceURL   string     `json:"source_url,omitempty" validate:"omitempty,url"`
	Content     string     `json:"content,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func (r *UpdateDocumentReq) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.DocType = strings.ToLower(strings.TrimSpace(r.DocType))
	r.SourceURL = strings.TrimSpace(r.SourceURL)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
