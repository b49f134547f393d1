package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/graphdb"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/kg"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
)

type MockGraphRepository struct {
	mock.Mock
}

func (m *MockGraphRepository) HeadGraph(ctx context.Context, scraperID string) (*scrapegraph.Graph, error) {
	args := m.Called(ctx, scraperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrapegraph.Graph), args.Error(1)
}

func (m *MockGraphRepository) GetGraphVersion(ctx context.Context, scraperID string, version int64) (*scrapegraph.Graph, error) {
	args := m.Called(ctx, scraperID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrapegraph.Graph), args.Error(1)
}

func (m *MockGraphRepository) ListGraphVersions(ctx context.Context, scraperID string) ([]model.GraphVersionInfo, error) {
	args := m.Called(ctx, scraperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GraphVersionInfo), args.Error(1)
}

func (m *MockGraphRepository) InsertGraphVersion(ctx context.Context, g *scrapegraph.Graph) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGraphRepository) EnsureGraphIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockKGRepository struct {
	mock.Mock
}

func (m *MockKGRepository) CreateBranch(ctx context.Context, b *kg.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockKGRepository) GetBranch(ctx context.Context, name string) (*kg.Branch, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Branch), args.Error(1)
}

func (m *MockKGRepository) ListBranches(ctx context.Context) ([]*kg.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kg.Branch), args.Error(1)
}

func (m *MockKGRepository) SetBranchHead(ctx context.Context, name, head string) error {
	args := m.Called(ctx, name, head)
	return args.Error(0)
}

func (m *MockKGRepository) InsertCommit(ctx context.Context, c *kg.Commit) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockKGRepository) GetCommit(ctx context.Context, id string) (*kg.Commit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Commit), args.Error(1)
}

func (m *MockKGRepository) PushStash(ctx context.Context, s *kg.Stash) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockKGRepository) PopStash(ctx context.Context, branch string) (*kg.Stash, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Stash), args.Error(1)
}

func (m *MockKGRepository) ListStashes(ctx context.Context, branch string) ([]*kg.Stash, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kg.Stash), args.Error(1)
}

func (m *MockKGRepository) EnsureKGIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockETLJobRepository struct {
	mock.Mock
}

func (m *MockETLJobRepository) InsertETLJob(ctx context.Context, job *model.ETLJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockETLJobRepository) GetETLJob(ctx context.Context, runID string) (*model.ETLJob, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ETLJob), args.Error(1)
}

func (m *MockETLJobRepository) SetETLJobResult(ctx context.Context, job *model.ETLJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockETLJobRepository) SetETLJobManifest(ctx context.Context, job *model.ETLJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockETLJobRepository) EnsureETLIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSparqlClient struct {
	mock.Mock
}

func (m *MockSparqlClient) Select(ctx context.Context, query string) (*graphdb.SelectResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graphdb.SelectResult), args.Error(1)
}

func (m *MockSparqlClient) Update(ctx context.Context, update string) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}
