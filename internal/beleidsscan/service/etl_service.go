package service

import (
	"context"
	"errors"
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/etl"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/repository"
)

type ETLService interface {
	// SubmitJob validates a raw etl-job@v1 payload and registers the run.
	// Contract violations come back as *etl.ContractError.
	SubmitJob(ctx context.Context, callerID string, raw []byte) (*model.ETLJob, error)
	GetJob(ctx context.Context, runID string) (*model.ETLJob, error)
	// RecordResult validates a raw etl-result@v1 payload against the run.
	RecordResult(ctx context.Context, runID string, raw []byte) (*model.ETLJob, error)
	// RecordManifest validates a raw etl-manifest@v1 payload against the run.
	RecordManifest(ctx context.Context, runID string, raw []byte) (*model.ETLJob, error)
}

type etlService struct {
	repo repository.ETLJobRepository
}

func NewETLService(repo repository.ETLJobRepository) ETLService {
	return &etlService{repo: repo}
}

func (s *etlService) SubmitJob(ctx context.Context, callerID string, raw []byte) (*model.ETLJob, error) {
	req, err := etl.ParseJobRequest(raw)
	if err != nil {
		return nil, err
	}

	job := &model.ETLJob{
		RunID:       req.RunID,
		Request:     *req,
		Status:      model.ETLJobPending,
		SubmittedAt: time.Now().UTC(),
		SubmittedBy: callerID,
	}
	if err := s.repo.InsertETLJob(ctx, job); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return job, nil
}

func (s *etlService) GetJob(ctx context.Context, runID string) (*model.ETLJob, error) {
	job, err := s.repo.GetETLJob(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *etlService) RecordResult(ctx context.Context, runID string, raw []byte) (*model.ETLJob, error) {
	result, err := etl.ParseJobResult(raw)
	if err != nil {
		return nil, err
	}
	if result.RunID != runID {
		return nil, ErrBadRequest
	}

	job, err := s.GetJob(ctx, runID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job.Result = result
	job.Status = result.Status
	job.CompletedAt = &now

	if err := s.repo.SetETLJobResult(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *etlService) RecordManifest(ctx context.Context, runID string, raw []byte) (*model.ETLJob, error) {
	manifest, err := etl.ParseManifest(raw)
	if err != nil {
		return nil, err
	}
	if manifest.RunID != runID {
		return nil, ErrBadRequest
	}

	job, err := s.GetJob(ctx, runID)
	if err != nil {
		return nil, err
	}

	job.Manifest = manifest
	if err := s.repo.SetETLJobManifest(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}
