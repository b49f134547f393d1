package repository

import (
	"context"
	"errors"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/kg"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type DocumentRepository interface {
	// Create a canonical document; duplicate source URL yields ErrDuplicate
	CreateDocument(ctx context.Context, doc *model.CanonicalDocument) error
	GetDocument(ctx context.Context, id string) (*model.CanonicalDocument, error)
	UpdateDocument(ctx context.Context, doc *model.CanonicalDocument) error
	// Soft delete
	DeleteDocument(ctx context.Context, id, deletedBy string) error
	FindDocuments(ctx context.Context, filter model.DocumentFilter) ([]*model.CanonicalDocument, error)
	AttachExtension(ctx context.Context, id string, ext model.Extension) error
	EnsureDocumentIndexes(ctx context.Context) error
}

type GraphRepository interface {
	// Head returns the highest stored version for a scraper
	HeadGraph(ctx context.Context, scraperID string) (*scrapegraph.Graph, error)
	GetGraphVersion(ctx context.Context, scraperID string, version int64) (*scrapegraph.Graph, error)
	ListGraphVersions(ctx context.Context, scraperID string) ([]model.GraphVersionInfo, error)
	// InsertGraphVersion stores an immutable version; (scraper_id, version)
	// is unique and a collision yields ErrDuplicate
	InsertGraphVersion(ctx context.Context, g *scrapegraph.Graph) error
	EnsureGraphIndexes(ctx context.Context) error
}

type KGRepository interface {
	CreateBranch(ctx context.Context, b *kg.Branch) error
	GetBranch(ctx context.Context, name string) (*kg.Branch, error)
	ListBranches(ctx context.Context) ([]*kg.Branch, error)
	SetBranchHead(ctx context.Context, name, head string) error
	InsertCommit(ctx context.Context, c *kg.Commit) error
	GetCommit(ctx context.Context, id string) (*kg.Commit, error)
	PushStash(ctx context.Context, s *kg.Stash) error
	// PopStash removes and returns the most recent stash for a branch
	PopStash(ctx context.Context, branch string) (*kg.Stash, error)
	ListStashes(ctx context.Context, branch string) ([]*kg.Stash, error)
	EnsureKGIndexes(ctx context.Context) error
}

type ETLJobRepository interface {
	InsertETLJob(ctx context.Context, job *model.ETLJob) error
	GetETLJob(ctx context.Context, runID string) (*model.ETLJob, error)
	SetETLJobResult(ctx context.Context, job *model.ETLJob) error
	SetETLJobManifest(ctx context.Context, job *model.ETLJob) error
	EnsureETLIndexes(ctx context.Context) error
}
