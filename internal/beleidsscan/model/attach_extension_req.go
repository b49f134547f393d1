package model

import (
	"strings"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/extension"
)

type AttachExtensionReq struct {
	Type          string            `json:"type" validate:"required,oneof=geo legal web"`
	SchemaVersion string            `json:"schema_version" validate:"required,min=1"`
	Payload       extension.Payload `json:"payload" validate:"required"`
}

func (r *AttachExtensionReq) Validate() error {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.SchemaVersion = strings.TrimSpace(r.SchemaVersion)

	// Clients often echo back the qualified form stored on documents
	// ("geo@v1"); reduce it to the bare version and cross-check the type.
	if strings.Contains(r.SchemaVersion, "@") {
		extType, version, err := extension.ParseSchemaVersion(r.SchemaVersion)
		if err != nil {
			return &ErrorDetail{Code: "bad_request", Message: "malformed schema_version: " + r.SchemaVersion}
		}
		if extType != r.Type {
			return &ErrorDetail{Code: "bad_request", Message: "schema_version type " + extType + " does not match extension type " + r.Type}
		}
		r.SchemaVersion = version
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
