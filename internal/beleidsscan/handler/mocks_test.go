package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/commoncrawl"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/graphdb"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/pdok"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/kg"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, callerID string, req model.CreateDocumentReq) (*model.CanonicalDocument, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CanonicalDocument), args.Error(1)
}

func (m *MockDocumentService) GetDocument(ctx context.Context, id string) (*model.CanonicalDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CanonicalDocument), args.Error(1)
}

func (m *MockDocumentService) UpdateDocument(ctx context.Context, callerID, id string, req model.UpdateDocumentReq) (*model.CanonicalDocument, error) {
	args := m.Called(ctx, callerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CanonicalDocument), args.Error(1)
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, callerID, id string) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, filter model.DocumentFilter) ([]*model.CanonicalDocument, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CanonicalDocument), args.Error(1)
}

func (m *MockDocumentService) AttachExtension(ctx context.Context, callerID, id string, req model.AttachExtensionReq) (*model.CanonicalDocument, error) {
	args := m.Called(ctx, callerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CanonicalDocument), args.Error(1)
}

type MockGraphService struct {
	mock.Mock
}

func (m *MockGraphService) SaveGraph(ctx context.Context, callerID, scraperID string, req model.SaveGraphReq) (*model.SaveGraphResult, *scrapegraph.MergeResult, error) {
	args := m.Called(ctx, callerID, scraperID, req)
	var result *model.SaveGraphResult
	if args.Get(0) != nil {
		result = args.Get(0).(*model.SaveGraphResult)
	}
	var mergeRes *scrapegraph.MergeResult
	if args.Get(1) != nil {
		mergeRes = args.Get(1).(*scrapegraph.MergeResult)
	}
	return result, mergeRes, args.Error(2)
}

func (m *MockGraphService) HeadGraph(ctx context.Context, scraperID string) (*scrapegraph.Graph, error) {
	args := m.Called(ctx, scraperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrapegraph.Graph), args.Error(1)
}

func (m *MockGraphService) GetGraphVersion(ctx context.Context, scraperID string, version int64) (*scrapegraph.Graph, error) {
	args := m.Called(ctx, scraperID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrapegraph.Graph), args.Error(1)
}

func (m *MockGraphService) ListGraphVersions(ctx context.Context, scraperID string) ([]model.GraphVersionInfo, error) {
	args := m.Called(ctx, scraperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GraphVersionInfo), args.Error(1)
}

func (m *MockGraphService) DiffGraphVersions(ctx context.Context, scraperID string, req model.DiffGraphReq) (*scrapegraph.Diff, error) {
	args := m.Called(ctx, scraperID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrapegraph.Diff), args.Error(1)
}

func (m *MockGraphService) MergeGraphVersions(ctx context.Context, scraperID string, req model.MergeGraphReq) (*scrapegraph.MergeResult, error) {
	args := m.Called(ctx, scraperID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrapegraph.MergeResult), args.Error(1)
}

type MockKGService struct {
	mock.Mock
}

func (m *MockKGService) CreateBranch(ctx context.Context, req model.CreateBranchReq) (*kg.Branch, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Branch), args.Error(1)
}

func (m *MockKGService) ListBranches(ctx context.Context) ([]*kg.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kg.Branch), args.Error(1)
}

func (m *MockKGService) Log(ctx context.Context, branch string, limit int) ([]*kg.Commit, error) {
	args := m.Called(ctx, branch, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kg.Commit), args.Error(1)
}

func (m *MockKGService) Commit(ctx context.Context, branch string, req model.CommitReq) (*kg.Commit, error) {
	args := m.Called(ctx, branch, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Commit), args.Error(1)
}

func (m *MockKGService) Merge(ctx context.Context, req model.KGMergeReq) (*model.KGMergeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KGMergeResult), args.Error(1)
}

func (m *MockKGService) Stash(ctx context.Context, req model.StashReq) (*kg.Stash, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Stash), args.Error(1)
}

func (m *MockKGService) StashPop(ctx context.Context, branch string) (*kg.Stash, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kg.Stash), args.Error(1)
}

func (m *MockKGService) StashList(ctx context.Context, branch string) ([]*kg.Stash, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kg.Stash), args.Error(1)
}

func (m *MockKGService) Query(ctx context.Context, query string) (*graphdb.SelectResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graphdb.SelectResult), args.Error(1)
}

func (m *MockKGService) Update(ctx context.Context, update string) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

type MockExtensionService struct {
	mock.Mock
}

func (m *MockExtensionService) Migrate(ctx context.Context, req model.MigrateExtensionReq) (*model.MigratedExtension, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MigratedExtension), args.Error(1)
}

type MockETLService struct {
	mock.Mock
}

func (m *MockETLService) SubmitJob(ctx context.Context, callerID string, raw []byte) (*model.ETLJob, error) {
	args := m.Called(ctx, callerID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ETLJob), args.Error(1)
}

func (m *MockETLService) GetJob(ctx context.Context, runID string) (*model.ETLJob, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ETLJob), args.Error(1)
}

func (m *MockETLService) RecordResult(ctx context.Context, runID string, raw []byte) (*model.ETLJob, error) {
	args := m.Called(ctx, runID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ETLJob), args.Error(1)
}

func (m *MockETLService) RecordManifest(ctx context.Context, runID string, raw []byte) (*model.ETLJob, error) {
	args := m.Called(ctx, runID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ETLJob), args.Error(1)
}

type MockGeoService struct {
	mock.Mock
}

func (m *MockGeoService) Lookup(ctx context.Context, q string, rows int, bypassCache bool) ([]pdok.Document, error) {
	args := m.Called(ctx, q, rows, bypassCache)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pdok.Document), args.Error(1)
}

type MockCrawlService struct {
	mock.Mock
}

func (m *MockCrawlService) Captures(ctx context.Context, target, matchType string, limit int) ([]commoncrawl.Record, error) {
	args := m.Called(ctx, target, matchType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commoncrawl.Record), args.Error(1)
}
