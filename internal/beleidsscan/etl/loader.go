package etl

import "encoding/json"

// ParseJobRequest decodes and validates a job request payload.
func ParseJobRequest(data []byte) (*JobRequest, error) {
	var req JobRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &ContractError{Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// ParseJobResult decodes and validates a job result payload.
func ParseJobResult(data []byte) (*JobResult, error) {
	var res JobResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, &ContractError{Message: "invalid JSON: " + err.Error()}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

// ParseManifest decodes and validates a manifest payload.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ContractError{Message: "invalid JSON: " + err.Error()}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
