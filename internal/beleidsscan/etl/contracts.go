// Package etl carries the cross-runtime contracts between the orchestration
// layer and the ETL workers: job requests, job results, and output manifests.
// The wire format is camelCase JSON shared with the non-Go workers.
package etl

import (
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	JobSchemaVersion      = "etl-job@v1"
	ResultSchemaVersion   = "etl-result@v1"
	ManifestSchemaVersion = "etl-manifest@v1"
)

// Job statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusPartial   = "partial"
)

var sha256HexRe = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// 64-char sha256 hex digests, used by artifact refs and fingerprints
		_ = validate.RegisterValidation("sha256hex", func(fl validator.FieldLevel) bool {
			return sha256HexRe.MatchString(fl.Field().String())
		})
		// Workers on other runtimes emit timestamps both with and without
		// a zone offset, so a bare local form is accepted alongside RFC3339.
		_ = validate.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if _, err := time.Parse(time.RFC3339, s); err == nil {
				return true
			}
			_, err := time.Parse("2006-01-02T15:04:05", s)
			return err == nil
		})
	})
	return validate
}

type ExtensionFlags struct {
	Geo   bool `json:"geo"`
	Legal bool `json:"legal"`
	Web   bool `json:"web"`
}

type JobInput struct {
	DocumentIDs       []string       `json:"documentIds,omitempty"`
	Query             map[string]any `json:"query,omitempty"`
	IncludeChunks     bool           `json:"includeChunks"`
	IncludeExtensions ExtensionFlags `json:"includeExtensions"`
	GeoSource         string         `json:"geoSource" validate:"required,oneof=mongo postgis both"`
}

type JobArtifacts struct {
	ArtifactRefs []string `json:"artifactRefs,omitempty" validate:"omitempty,dive,sha256hex"`
}

type JobModels struct {
	NLPModelID        string `json:"nlpModelId" validate:"required,min=1"`
	RDFMappingVersion string `json:"rdfMappingVersion" validate:"required,min=1"`
}

type JobOutput struct {
	Format              string `json:"format" validate:"required,oneof=turtle"`
	OutputDir           string `json:"outputDir,omitempty"`
	ArtifactStorePrefix string `json:"artifactStorePrefix,omitempty"`
	ManifestName        string `json:"manifestName" validate:"required,min=1"`
}

type JobRequest struct {
	SchemaVersion string        `json:"schemaVersion" validate:"required,eq=etl-job@v1"`
	RunID         string        `json:"runId" validate:"required,min=1"`
	CreatedAt     string        `json:"createdAt" validate:"required,iso8601"`
	Input         JobInput      `json:"input"`
	Artifacts     *JobArtifacts `json:"artifacts,omitempty"`
	Models        JobModels     `json:"models"`
	Output        JobOutput     `json:"output"`
}

// Validate enforces the structural rules plus the two XOR constraints the
// workers rely on: exactly one input source and exactly one output destination.
func (r *JobRequest) Validate() error {
	if err := getValidator().Struct(r); err != nil {
		return newContractError("ETL job request validation failed", r.SchemaVersion, err)
	}

	hasIDs := len(r.Input.DocumentIDs) > 0
	hasQuery := len(r.Input.Query) > 0
	if hasIDs == hasQuery {
		return &ContractError{
			Message:       "either documentIds or query must be provided, but not both",
			SchemaVersion: r.SchemaVersion,
			Fields:        []FieldError{{Field: "input", Rule: "one_of_documentIds_query"}},
		}
	}

	hasDir := r.Output.OutputDir != ""
	hasPrefix := r.Output.ArtifactStorePrefix != ""
	if hasDir == hasPrefix {
		return &ContractError{
			Message:       "either outputDir or artifactStorePrefix must be provided, but not both",
			SchemaVersion: r.SchemaVersion,
			Fields:        []FieldError{{Field: "output", Rule: "one_of_outputDir_artifactStorePrefix"}},
		}
	}
	return nil
}

type JobStats struct {
	DocumentsProcessed int `json:"documentsProcessed" validate:"gte=0"`
	TriplesEmitted     int `json:"triplesEmitted" validate:"gte=0"`
	FilesWritten       int `json:"filesWritten" validate:"gte=0"`
}

type JobOutputs struct {
	TurtleFiles []string `json:"turtleFiles" validate:"required,min=1,dive,min=1"`
	Manifest    string   `json:"manifest" validate:"required,min=1"`
}

type JobError struct {
	Code       string         `json:"code" validate:"required,min=1"`
	Message    string         `json:"message" validate:"required,min=1"`
	DocumentID string         `json:"documentId,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
}

type JobResult struct {
	SchemaVersion string     `json:"schemaVersion" validate:"required,eq=etl-result@v1"`
	RunID         string     `json:"runId" validate:"required,min=1"`
	Status        string     `json:"status" validate:"required,oneof=succeeded failed partial"`
	Stats         JobStats   `json:"stats"`
	Outputs       JobOutputs `json:"outputs"`
	Errors        []JobError `json:"errors,omitempty" validate:"omitempty,dive"`
}

func (r *JobResult) Validate() error {
	if err := getValidator().Struct(r); err != nil {
		return newContractError("ETL job result validation failed", r.SchemaVersion, err)
	}
	return nil
}

type DocumentFingerprint struct {
	DocumentID         string `json:"documentId" validate:"required,min=1"`
	ContentFingerprint string `json:"contentFingerprint" validate:"required,sha256hex"`
}

type ManifestProvenance struct {
	InputFingerprints []DocumentFingerprint `json:"inputFingerprints" validate:"dive"`
	ParserVersions    map[string]string     `json:"parserVersions"`
	MapperVersions    map[string]string     `json:"mapperVersions"`
	ModelVersions     map[string]string     `json:"modelVersions"`
	RDFMappingVersion string                `json:"rdfMappingVersion" validate:"required,min=1"`
}

type Manifest struct {
	SchemaVersion string             `json:"schemaVersion" validate:"required,min=1"`
	RunID         string             `json:"runId" validate:"required,min=1"`
	CreatedAt     string             `json:"createdAt" validate:"required,iso8601"`
	CompletedAt   string             `json:"completedAt" validate:"required,iso8601"`
	Provenance    ManifestProvenance `json:"provenance"`
	Outputs       JobOutputs         `json:"outputs"`
	Stats         JobStats           `json:"stats"`
}

func (m *Manifest) Validate() error {
	if err := getValidator().Struct(m); err != nil {
		return newContractError("ETL manifest validation failed", m.SchemaVersion, err)
	}
	return nil
}
