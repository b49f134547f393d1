package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/graphdb"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/kg"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/metrics"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/repository"
)

// SparqlClient is the slice of the GraphDB client the service needs.
type SparqlClient interface {
	Select(ctx context.Context, query string) (*graphdb.SelectResult, error)
	Update(ctx context.Context, update string) error
}

type KGService interface {
	CreateBranch(ctx context.Context, req model.CreateBranchReq) (*kg.Branch, error)
	ListBranches(ctx context.Context) ([]*kg.Branch, error)
	Log(ctx context.Context, branch string, limit int) ([]*kg.Commit, error)
	Commit(ctx context.Context, branch string, req model.CommitReq) (*kg.Commit, error)
	Merge(ctx context.Context, req model.KGMergeReq) (*model.KGMergeResult, error)
	Stash(ctx context.Context, req model.StashReq) (*kg.Stash, error)
	StashPop(ctx context.Context, branch string) (*kg.Stash, error)
	StashList(ctx context.Context, branch string) ([]*kg.Stash, error)
	Query(ctx context.Context, query string) (*graphdb.SelectResult, error)
	Update(ctx context.Context, update string) error
}

type kgService struct {
	repo   repository.KGRepository
	sparql SparqlClient
}

func NewKGService(repo repository.KGRepository, sparql SparqlClient) KGService {
	return &kgService{repo: repo, sparql: sparql}
}

func (s *kgService) CreateBranch(ctx context.Context, req model.CreateBranchReq) (*kg.Branch, error) {
	head := ""
	if req.From != "" {
		from, err := s.repo.GetBranch(ctx, req.From)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		head = from.Head
	}

	b := &kg.Branch{Name: req.Name, Head: head, CreatedAt: time.Now().UTC()}
	if err := s.repo.CreateBranch(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return b, nil
}

func (s *kgService) ListBranches(ctx context.Context) ([]*kg.Branch, error) {
	return s.repo.ListBranches(ctx)
}

func (s *kgService) Log(ctx context.Context, branch string, limit int) ([]*kg.Commit, error) {
	b, err := s.repo.GetBranch(ctx, branch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Head == "" {
		return nil, nil
	}
	return kg.FirstParentLog(ctx, s.repo, b.Head, limit)
}

func (s *kgService) Commit(ctx context.Context, branch string, req model.CommitReq) (*kg.Commit, error) {
	b, err := s.repo.GetBranch(ctx, branch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c := &kg.Commit{
		ID:        uuid.NewString(),
		Branch:    branch,
		Snapshot:  kg.SnapshotOf(req.Triples),
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if b.Head != "" {
		c.Parents = []string{b.Head}
	}

	if err := s.repo.InsertCommit(ctx, c); err != nil {
		return nil, err
	}
	if err := s.repo.SetBranchHead(ctx, branch, c.ID); err != nil {
		return nil, err
	}
	metrics.KGCommits.Inc()
	return c, nil
}

func (s *kgService) Merge(ctx context.Context, req model.KGMergeReq) (*model.KGMergeResult, error) {
	source, err := s.repo.GetBranch(ctx, req.Source)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	target, err := s.repo.GetBranch(ctx, req.Target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if source.Head == "" {
		return nil, ErrBadRequest
	}

	result := &model.KGMergeResult{Source: req.Source, Target: req.Target}

	// empty target fast-forwards to the source head
	if target.Head == "" {
		if err := s.repo.SetBranchHead(ctx, req.Target, source.Head); err != nil {
			return nil, err
		}
		result.Outcome = model.KGMergeOutcomeFastForward
		metrics.KGMerges.WithLabelValues(result.Outcome).Inc()
		return result, nil
	}

	baseID, err := kg.MergeBase(ctx, s.repo, target.Head, source.Head)
	if err != nil {
		return nil, err
	}

	switch baseID {
	case source.Head:
		// source is already contained in target
		result.Outcome = model.KGMergeOutcomeUpToDate
		metrics.KGMerges.WithLabelValues(result.Outcome).Inc()
		return result, nil
	case target.Head:
		if err := s.repo.SetBranchHead(ctx, req.Target, source.Head); err != nil {
			return nil, err
		}
		result.Outcome = model.KGMergeOutcomeFastForward
		metrics.KGMerges.WithLabelValues(result.Outcome).Inc()
		return result, nil
	}

	var base kg.Snapshot
	if baseID != "" {
		baseCommit, err := s.repo.GetCommit(ctx, baseID)
		if err != nil {
			return nil, err
		}
		base = baseCommit.Snapshot
	}
	ours, err := s.repo.GetCommit(ctx, target.Head)
	if err != nil {
		return nil, err
	}
	theirs, err := s.repo.GetCommit(ctx, source.Head)
	if err != nil {
		return nil, err
	}

	opts := merge.Options{Strategy: req.Strategy, Choices: req.Choices}
	mergedSnapshot, conflicts, err := kg.MergeSnapshots(base, ours.Snapshot, theirs.Snapshot, opts)
	if err != nil {
		if errors.Is(err, merge.ErrUnresolvedConflicts) {
			result.Outcome = model.KGMergeOutcomeConflict
			result.Conflicts = conflicts
			metrics.KGMerges.WithLabelValues(result.Outcome).Inc()
			return result, ErrMergeConflict
		}
		return nil, err
	}

	mergeCommit := &kg.Commit{
		ID:        uuid.NewString(),
		Branch:    req.Target,
		Parents:   []string{target.Head, source.Head},
		Snapshot:  mergedSnapshot,
		Message:   "Merge branch '" + req.Source + "' into " + req.Target,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertCommit(ctx, mergeCommit); err != nil {
		return nil, err
	}
	if err := s.repo.SetBranchHead(ctx, req.Target, mergeCommit.ID); err != nil {
		return nil, err
	}

	metrics.KGCommits.Inc()
	result.Outcome = model.KGMergeOutcomeMerged
	result.MergeCommit = mergeCommit.ID
	metrics.KGMerges.WithLabelValues(result.Outcome).Inc()
	return result, nil
}

func (s *kgService) Stash(ctx context.Context, req model.StashReq) (*kg.Stash, error) {
	if _, err := s.repo.GetBranch(ctx, req.Branch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stash := &kg.Stash{
		ID:        uuid.NewString(),
		Branch:    req.Branch,
		Snapshot:  kg.SnapshotOf(req.Triples),
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.PushStash(ctx, stash); err != nil {
		return nil, err
	}
	return stash, nil
}

func (s *kgService) StashPop(ctx context.Context, branch string) (*kg.Stash, error) {
	stash, err := s.repo.PopStash(ctx, branch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stash, nil
}

func (s *kgService) StashList(ctx context.Context, branch string) ([]*kg.Stash, error) {
	return s.repo.ListStashes(ctx, branch)
}

func (s *kgService) Query(ctx context.Context, query string) (*graphdb.SelectResult, error) {
	res, err := s.sparql.Select(ctx, query)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("graphdb").Inc()
		return nil, ErrUpstream
	}
	return res, nil
}

func (s *kgService) Update(ctx context.Context, update string) error {
	if err := s.sparql.Update(ctx, update); err != nil {
		metrics.UpstreamFailures.WithLabelValues("graphdb").Inc()
		return ErrUpstream
	}
	return nil
}
