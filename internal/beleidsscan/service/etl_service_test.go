package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/etl"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
)

func manifestBody(runID string) string {
	fp := strings.Repeat("0f", 32)
	return `{
		"schemaVersion": "etl-manifest@v1",
		"runId": "` + runID + `",
		"createdAt": "2024-03-01T10:00:00Z",
		"completedAt": "2024-03-01T10:05:00Z",
		"provenance": {
			"inputFingerprints": [{"documentId": "doc-1", "contentFingerprint": "` + fp + `"}],
			"parserVersions": {"pdf": "1.4.0"},
			"mapperVersions": {"rdf": "2.1.0"},
			"modelVersions": {"nlp": "3.7.2"},
			"rdfMappingVersion": "2.1.0"
		},
		"outputs": {"turtleFiles": ["out/docs-0.ttl"], "manifest": "out/manifest.json"},
		"stats": {"documentsProcessed": 1, "triplesEmitted": 40, "filesWritten": 1}
	}`
}

func TestRecordManifest(t *testing.T) {
	repo := new(MockETLJobRepository)
	svc := NewETLService(repo)

	repo.On("GetETLJob", mock.Anything, "run-42").
		Return(&model.ETLJob{RunID: "run-42", Status: model.ETLJobSucceeded}, nil)
	repo.On("SetETLJobManifest", mock.Anything, mock.MatchedBy(func(job *model.ETLJob) bool {
		return job.Manifest != nil && job.Manifest.RunID == "run-42"
	})).Return(nil)

	job, err := svc.RecordManifest(context.Background(), "run-42", []byte(manifestBody("run-42")))
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", job.Manifest.Provenance.RDFMappingVersion)
	repo.AssertExpectations(t)
}

func TestRecordManifestRunIDMismatch(t *testing.T) {
	repo := new(MockETLJobRepository)
	svc := NewETLService(repo)

	_, err := svc.RecordManifest(context.Background(), "run-42", []byte(manifestBody("run-43")))
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestRecordManifestContractViolation(t *testing.T) {
	repo := new(MockETLJobRepository)
	svc := NewETLService(repo)

	_, err := svc.RecordManifest(context.Background(), "run-42", []byte(`{"schemaVersion": "etl-manifest@v1"}`))

	var ce *etl.ContractError
	assert.True(t, errors.As(err, &ce))
}
