package model

import (
	"strings"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/extension"
)

// MigrateExtensionReq migrates a payload between schema versions. An empty
// ToVersion means "migrate to the current storage version".
type MigrateExtensionReq struct {
	Type        string            `json:"type" validate:"required,oneof=geo legal web"`
	FromVersion string            `json:"from_version" validate:"required,min=1"`
	ToVersion   string            `json:"to_version,omitempty"`
	Payload     extension.Payload `json:"payload" validate:"required"`
}

func (r *MigrateExtensionReq) Validate() error {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.FromVersion = strings.TrimSpace(r.FromVersion)
	r.ToVersion = strings.TrimSpace(r.ToVersion)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

type MigratedExtension struct {
	Type          string            `json:"type"`
	SchemaVersion string            `json:"schema_version"`
	Payload       extension.Payload `json:"payload"`
	StepsApplied  int               `json:"steps_applied"`
}
