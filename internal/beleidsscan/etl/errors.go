package etl

import (
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ContractError reports why a payload does not satisfy its contract,
// including the schemaVersion it claimed.
type ContractError struct {
	Message       string       `json:"message"`
	SchemaVersion string       `json:"schemaVersion,omitempty"`
	Fields        []FieldError `json:"fields,omitempty"`
}

func (e *ContractError) Error() string {
	if e.SchemaVersion == "" {
		return e.Message
	}
	return e.Message + " (" + e.SchemaVersion + ")"
}

func newContractError(message, schemaVersion string, err error) *ContractError {
	ce := &ContractError{Message: message, SchemaVersion: schemaVersion}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			ce.Fields = append(ce.Fields, FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
		}
	} else if err != nil {
		ce.Fields = append(ce.Fields, FieldError{Field: "", Rule: err.Error()})
	}
	return ce
}
