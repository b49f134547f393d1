package service

import (
	"context"
	"errors"
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/metrics"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/repository"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
)

type GraphService interface {
	// SaveGraph stores a new revision. A stale ParentVersion triggers a
	// three-way merge against the stored head; unresolved conflicts surface
	// as ErrMergeConflict with the conflict detail in the returned MergeResult.
	SaveGraph(ctx context.Context, callerID, scraperID string, req model.SaveGraphReq) (*model.SaveGraphResult, *scrapegraph.MergeResult, error)
	HeadGraph(ctx context.Context, scraperID string) (*scrapegraph.Graph, error)
	GetGraphVersion(ctx context.Context, scraperID string, version int64) (*scrapegraph.Graph, error)
	ListGraphVersions(ctx context.Context, scraperID string) ([]model.GraphVersionInfo, error)
	DiffGraphVersions(ctx context.Context, scraperID string, req model.DiffGraphReq) (*scrapegraph.Diff, error)
	MergeGraphVersions(ctx context.Context, scraperID string, req model.MergeGraphReq) (*scrapegraph.MergeResult, error)
}

type graphService struct {
	repo repository.GraphRepository
}

func NewGraphService(repo repository.GraphRepository) GraphService {
	return &graphService{repo: repo}
}

func (s *graphService) SaveGraph(ctx context.Context, callerID, scraperID string, req model.SaveGraphReq) (*model.SaveGraphResult, *scrapegraph.MergeResult, error) {
	incoming := req.Graph(scraperID)
	if err := incoming.Validate(); err != nil {
		return nil, nil, ErrBadRequest
	}
	incoming.UpdatedBy = callerID
	incoming.UpdatedAt = time.Now().UTC()

	head, err := s.repo.HeadGraph(ctx, scraperID)
	if errors.Is(err, repository.ErrNotFound) {
		// first revision for this scraper
		incoming.Version = 1
		incoming.ParentVersion = 0
		if err := s.insert(ctx, incoming); err != nil {
			return nil, nil, err
		}
		metrics.GraphSaves.WithLabelValues("direct").Inc()
		return &model.SaveGraphResult{ScraperID: scraperID, Version: 1}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if req.ParentVersion == head.Version {
		incoming.Version = head.Version + 1
		if err := s.insert(ctx, incoming); err != nil {
			return nil, nil, err
		}
		metrics.GraphSaves.WithLabelValues("direct").Inc()
		return &model.SaveGraphResult{ScraperID: scraperID, Version: incoming.Version}, nil, nil
	}
	if req.ParentVersion > head.Version {
		return nil, nil, ErrBadRequest
	}

	// stale parent: reconcile against the head through their common base
	base, err := s.repo.GetGraphVersion(ctx, scraperID, req.ParentVersion)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrBadRequest
		}
		return nil, nil, err
	}

	opts := merge.Options{Strategy: req.Strategy, Choices: req.Choices}
	res, err := scrapegraph.Merge(base, head, incoming, opts)
	if err != nil {
		if errors.Is(err, merge.ErrUnresolvedConflicts) {
			metrics.GraphSaves.WithLabelValues("conflict").Inc()
			return nil, res, ErrMergeConflict
		}
		return nil, nil, err
	}

	merged := res.Graph
	merged.Version = head.Version + 1
	merged.ParentVersion = head.Version
	merged.UpdatedBy = callerID
	merged.UpdatedAt = time.Now().UTC()
	if err := s.insert(ctx, merged); err != nil {
		return nil, nil, err
	}

	metrics.GraphSaves.WithLabelValues("merged").Inc()
	return &model.SaveGraphResult{
		ScraperID: scraperID,
		Version:   merged.Version,
		Merged:    true,
		Warnings:  res.Warnings,
	}, res, nil
}

func (s *graphService) insert(ctx context.Context, g *scrapegraph.Graph) error {
	if err := s.repo.InsertGraphVersion(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// another writer claimed the version between head read and insert
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *graphService) HeadGraph(ctx context.Context, scraperID string) (*scrapegraph.Graph, error) {
	g, err := s.repo.HeadGraph(ctx, scraperID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *graphService) GetGraphVersion(ctx context.Context, scraperID string, version int64) (*scrapegraph.Graph, error) {
	g, err := s.repo.GetGraphVersion(ctx, scraperID, version)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *graphService) ListGraphVersions(ctx context.Context, scraperID string) ([]model.GraphVersionInfo, error) {
	return s.repo.ListGraphVersions(ctx, scraperID)
}

func (s *graphService) DiffGraphVersions(ctx context.Context, scraperID string, req model.DiffGraphReq) (*scrapegraph.Diff, error) {
	a, err := s.GetGraphVersion(ctx, scraperID, req.VersionA)
	if err != nil {
		return nil, err
	}
	b, err := s.GetGraphVersion(ctx, scraperID, req.VersionB)
	if err != nil {
		return nil, err
	}
	return scrapegraph.Compare(a, b), nil
}

// MergeGraphVersions previews a merge of stored versions without saving.
func (s *graphService) MergeGraphVersions(ctx context.Context, scraperID string, req model.MergeGraphReq) (*scrapegraph.MergeResult, error) {
	base, err := s.GetGraphVersion(ctx, scraperID, req.BaseVersion)
	if err != nil {
		return nil, err
	}
	ours, err := s.GetGraphVersion(ctx, scraperID, req.OursVersion)
	if err != nil {
		return nil, err
	}
	theirs, err := s.GetGraphVersion(ctx, scraperID, req.TheirsVersion)
	if err != nil {
		return nil, err
	}

	res, err := scrapegraph.Merge(base, ours, theirs, merge.Options{Strategy: req.Strategy, Choices: req.Choices})
	if err != nil {
		if errors.Is(err, merge.ErrUnresolvedConflicts) {
			return res, ErrMergeConflict
		}
		return nil, err
	}
	return res, nil
}
