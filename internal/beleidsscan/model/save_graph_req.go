package model

import (
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/scrapegraph"
)

// SaveGraphReq submits a new navigation graph revision for a scraper. When
// ParentVersion is behind the stored head, the save is reconciled by a
// three-way merge under the given strategy.
type SaveGraphReq struct {
	ParentVersion int64                       `json:"parent_version" validate:"gte=0"`
	Nodes         map[string]scrapegraph.Node `json:"nodes" validate:"required"`
	Edges         map[string]scrapegraph.Edge `json:"edges"`
	Strategy      merge.Strategy              `json:"strategy,omitempty"`
	Choices       map[string]merge.Side       `json:"choices,omitempty"`
}

func (r *SaveGraphReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Strategy != "" && !r.Strategy.Valid() {
		return &ErrorDetail{Code: "bad_request", Message: "unknown merge strategy: " + string(r.Strategy)}
	}
	return nil
}

// Graph builds the incoming graph revision.
func (r *SaveGraphReq) Graph(scraperID string) *scrapegraph.Graph {
	g := scrapegraph.New(scraperID)
	g.ParentVersion = r.ParentVersion
	for id, n := range r.Nodes {
		g.Nodes[id] = n
	}
	for id, e := range r.Edges {
		g.Edges[id] = e
	}
	return g
}

// SaveGraphResult reports the stored version and whether a merge was needed.
type SaveGraphResult struct {
	ScraperID string   `json:"scraper_id"`
	Version   int64    `json:"version"`
	Merged    bool     `json:"merged"`
	Warnings  []string `json:"warnings,omitempty"`
}
