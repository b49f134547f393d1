package model

import (
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/extension"
)

// Authority kinds for Dutch government layers.
const (
	AuthorityGemeente   = "gemeente"
	AuthorityProvincie  = "provincie"
	AuthorityRijk       = "rijk"
	AuthorityWaterschap = "waterschap"
)

// Extension is a typed metadata sidecar attached to a canonical document.
type Extension struct {
	Type          string            `json:"type" bson:"type"`
	SchemaVersion string            `json:"schema_version" bson:"schema_version"`
	Payload       extension.Payload `json:"payload" bson:"payload"`
	AttachedAt    time.Time         `json:"attached_at" bson:"attached_at"`
}

// CanonicalDocument is the normalized document schema used across ingestion,
// review, and export.
type CanonicalDocument struct {
	ID                 string      `json:"id" bson:"_id,omitempty"`
	Title              string      `json:"title" bson:"title"`
	Authority          string      `json:"authority" bson:"authority"`
	AuthorityKind      string      `json:"authority_kind" bson:"authority_kind"`
	DocType            string      `json:"doc_type" bson:"doc_type"`
	SourceURL          string      `json:"source_url" bson:"source_url"`
	ContentFingerprint string      `json:"content_fingerprint,omitempty" bson:"content_fingerprint,omitempty"`
	PublishedAt        *time.Time  `json:"published_at,omitempty" bson:"published_at,omitempty"`
	RetrievedAt        *time.Time  `json:"retrieved_at,omitempty" bson:"retrieved_at,omitempty"`
	Extensions         []Extension `json:"extensions,omitempty" bson:"extensions,omitempty"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedBy string     `json:"created_by,omitempty" bson:"created_by,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

type DocumentFilter struct {
	Authority      string
	AuthorityKind  string
	DocType        string
	TitleQuery     string
	IncludeDeleted bool
	Limit          int64
}

// GraphVersionInfo is the listing row for stored scraper graph versions.
type GraphVersionInfo struct {
	ScraperID     string    `json:"scraper_id" bson:"scraper_id"`
	Version       int64     `json:"version" bson:"version"`
	ParentVersion int64     `json:"parent_version" bson:"parent_version"`
	NodeCount     int       `json:"node_count" bson:"node_count"`
	EdgeCount     int       `json:"edge_count" bson:"edge_count"`
	UpdatedBy     string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// ETL job lifecycle statuses as tracked by the orchestration side.
const (
	ETLJobPending   = "pending"
	ETLJobSucceeded = "succeeded"
	ETLJobFailed    = "failed"
	ETLJobPartial   = "partial"
)

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *ErrorDetail) Error() string {
	return e.Message
}
