package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/model"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/service"
)

func graphPayload(parentVersion int64) map[string]interface{} {
	return map[string]interface{}{
		"parent_version": parentVersion,
		"nodes": map[string]interface{}{
			"start": map[string]interface{}{
				"id":          "start",
				"kind":        "list",
				"url_pattern": "https://utrecht.nl/beleid",
			},
		},
		"edges": map[string]interface{}{},
	}
}

func TestPutScraperGraph(t *testing.T) {
	apiPath := "/api/v1/scrapers/utrecht/graph"

	t.Run("save graph at head and return 201", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("SaveGraph", mock.Anything, "editor_1", "utrecht", mock.MatchedBy(func(req model.SaveGraphReq) bool {
			return req.ParentVersion == 3 && len(req.Nodes) == 1
		})).Return(&model.SaveGraphResult{ScraperID: "utrecht", Version: 4}, nil, nil)

		headers := map[string]string{"x-user-id": "editor_1"}
		rec := performRequest(e, http.MethodPut, apiPath, graphPayload(3), headers)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var result model.SaveGraphResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, int64(4), result.Version)
		assert.False(t, result.Merged)
		svcs.graphs.AssertExpectations(t)
	})

	t.Run("save graph with stale parent merged cleanly and return 200", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("SaveGraph", mock.Anything, "editor_1", "utrecht", mock.Anything).
			Return(&model.SaveGraphResult{ScraperID: "utrecht", Version: 5, Merged: true}, &scrapegraph.MergeResult{}, nil)

		headers := map[string]string{"x-user-id": "editor_1"}
		rec := performRequest(e, http.MethodPut, apiPath, graphPayload(2), headers)
		assert.Equal(t, http.StatusOK, rec.Code)

		var result model.SaveGraphResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Merged)
	})

	t.Run("save graph merge conflict returns 409 with conflict detail", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		node := scrapegraph.Node{ID: "start", Kind: "list"}
		conflictRes := &scrapegraph.MergeResult{
			NodeConflicts: []merge.Conflict[scrapegraph.Node]{
				{Key: "start", Kind: merge.ConflictBothModified, Ours: &node, Theirs: &node},
			},
		}
		svcs.graphs.On("SaveGraph", mock.Anything, "editor_1", "utrecht", mock.Anything).
			Return(nil, conflictRes, service.ErrMergeConflict)

		headers := map[string]string{"x-user-id": "editor_1"}
		rec := performRequest(e, http.MethodPut, apiPath, graphPayload(2), headers)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var body map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "node_conflicts")
		assert.Contains(t, body, "error")
	})

	t.Run("save graph missing x-user-id and return 401", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		rec := performRequest(e, http.MethodPut, apiPath, graphPayload(1), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("save graph with parent ahead of head and return 400", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("SaveGraph", mock.Anything, "editor_1", "utrecht", mock.Anything).
			Return(nil, nil, service.ErrBadRequest)

		headers := map[string]string{"x-user-id": "editor_1"}
		rec := performRequest(e, http.MethodPut, apiPath, graphPayload(99), headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetScraperGraph(t *testing.T) {
	t.Run("get head graph success and return 200", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("HeadGraph", mock.Anything, "utrecht").
			Return(&scrapegraph.Graph{ScraperID: "utrecht", Version: 4}, nil)

		rec := performRequest(e, http.MethodGet, "/api/v1/scrapers/utrecht/graph", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get head graph for unknown scraper and return 404", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("HeadGraph", mock.Anything, "nergens").
			Return(nil, service.ErrNotFound)

		rec := performRequest(e, http.MethodGet, "/api/v1/scrapers/nergens/graph", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetScraperGraphVersion(t *testing.T) {
	t.Run("get stored version success and return 200", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("GetGraphVersion", mock.Anything, "utrecht", int64(2)).
			Return(&scrapegraph.Graph{ScraperID: "utrecht", Version: 2}, nil)

		rec := performRequest(e, http.MethodGet, "/api/v1/scrapers/utrecht/graph/versions/2", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get non-numeric version and return 400", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		rec := performRequest(e, http.MethodGet, "/api/v1/scrapers/utrecht/graph/versions/latest", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostScraperGraphMerge(t *testing.T) {
	apiPath := "/api/v1/scrapers/utrecht/graph/merge"

	t.Run("merge preview success and return 200", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		svcs.graphs.On("MergeGraphVersions", mock.Anything, "utrecht", mock.MatchedBy(func(req model.MergeGraphReq) bool {
			return req.BaseVersion == 1 && req.OursVersion == 2 && req.TheirsVersion == 3
		})).Return(&scrapegraph.MergeResult{Graph: &scrapegraph.Graph{ScraperID: "utrecht"}}, nil)

		payload := map[string]interface{}{
			"base_version":   1,
			"ours_version":   2,
			"theirs_version": 3,
		}
		rec := performRequest(e, http.MethodPost, apiPath, payload, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		svcs.graphs.AssertExpectations(t)
	})

	t.Run("merge preview conflict and return 409", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		node := scrapegraph.Node{ID: "start", Kind: "list"}
		conflictRes := &scrapegraph.MergeResult{
			NodeConflicts: []merge.Conflict[scrapegraph.Node]{
				{Key: "start", Kind: merge.ConflictBothModified, Ours: &node, Theirs: &node},
			},
		}
		svcs.graphs.On("MergeGraphVersions", mock.Anything, "utrecht", mock.Anything).
			Return(conflictRes, service.ErrMergeConflict)

		payload := map[string]interface{}{
			"base_version":   1,
			"ours_version":   2,
			"theirs_version": 3,
		}
		rec := performRequest(e, http.MethodPost, apiPath, payload, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("merge preview missing versions and return 400", func(t *testing.T) {
		svcs := newMockServices()
		e := setupServer(svcs)

		payload := map[string]interface{}{"base_version": 1}
		rec := performRequest(e, http.MethodPost, apiPath, payload, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
