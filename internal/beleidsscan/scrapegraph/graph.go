// Package scrapegraph models the per-scraper navigation graph: how a scraper
// walks a government publication site. Nodes are page states, edges are
// navigation actions between them. Graphs are versioned per scraper and
// concurrent edits reconcile through a three-way merge.
package scrapegraph

import (
	"fmt"
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
)

// Node kinds observed while scraping.
const (
	NodeKindList       = "list"
	NodeKindDetail     = "detail"
	NodeKindForm       = "form"
	NodeKindAttachment = "attachment"
)

// Edge actions.
const (
	ActionFollow   = "follow"
	ActionPaginate = "paginate"
	ActionSubmit   = "submit"
	ActionDownload = "download"
)

type Node struct {
	ID         string            `json:"id" bson:"id"`
	Kind       string            `json:"kind" bson:"kind"`
	URLPattern string            `json:"url_pattern" bson:"url_pattern"`
	Selector   string            `json:"selector,omitempty" bson:"selector,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

type Edge struct {
	ID       string `json:"id" bson:"id"`
	From     string `json:"from" bson:"from"`
	To       string `json:"to" bson:"to"`
	Action   string `json:"action" bson:"action"`
	Selector string `json:"selector,omitempty" bson:"selector,omitempty"`
}

type Graph struct {
	ScraperID     string          `json:"scraper_id" bson:"scraper_id"`
	Version       int64           `json:"version" bson:"version"`
	ParentVersion int64           `json:"parent_version" bson:"parent_version"`
	Nodes         map[string]Node `json:"nodes" bson:"nodes"`
	Edges         map[string]Edge `json:"edges" bson:"edges"`
	UpdatedBy     string          `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at" bson:"updated_at"`
}

func New(scraperID string) *Graph {
	return &Graph{
		ScraperID: scraperID,
		Nodes:     map[string]Node{},
		Edges:     map[string]Edge{},
	}
}

// Clone returns a deep copy. Stored versions are immutable; callers mutate
// clones only.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		ScraperID:     g.ScraperID,
		Version:       g.Version,
		ParentVersion: g.ParentVersion,
		UpdatedBy:     g.UpdatedBy,
		UpdatedAt:     g.UpdatedAt,
		Nodes:         make(map[string]Node, len(g.Nodes)),
		Edges:         make(map[string]Edge, len(g.Edges)),
	}
	for id, n := range g.Nodes {
		if n.Metadata != nil {
			md := make(map[string]string, len(n.Metadata))
			for k, v := range n.Metadata {
				md[k] = v
			}
			n.Metadata = md
		}
		c.Nodes[id] = n
	}
	for id, e := range g.Edges {
		c.Edges[id] = e
	}
	return c
}

// Validate checks referential integrity of edges and key/ID agreement.
func (g *Graph) Validate() error {
	for id, n := range g.Nodes {
		if n.ID != id {
			return fmt.Errorf("node key %q does not match node id %q", id, n.ID)
		}
	}
	for id, e := range g.Edges {
		if e.ID != id {
			return fmt.Errorf("edge key %q does not match edge id %q", id, e.ID)
		}
		if _, ok := g.Nodes[e.From]; !ok {
			return fmt.Errorf("edge %q references unknown node %q", id, e.From)
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return fmt.Errorf("edge %q references unknown node %q", id, e.To)
		}
	}
	return nil
}

func nodeEqual(a, b Node) bool {
	if a.ID != b.ID || a.Kind != b.Kind || a.URLPattern != b.URLPattern || a.Selector != b.Selector {
		return false
	}
	if len(a.Metadata) != len(b.Metadata) {
		return false
	}
	for k, v := range a.Metadata {
		if b.Metadata[k] != v {
			return false
		}
	}
	return true
}

func edgeEqual(a, b Edge) bool { return a == b }

// Change captures a single modified entry in a diff.
type Change[V any] struct {
	ID     string `json:"id"`
	Before V      `json:"before"`
	After  V      `json:"after"`
}

type Diff struct {
	AddedNodes    []Node         `json:"added_nodes,omitempty"`
	RemovedNodes  []Node         `json:"removed_nodes,omitempty"`
	ModifiedNodes []Change[Node] `json:"modified_nodes,omitempty"`
	AddedEdges    []Edge         `json:"added_edges,omitempty"`
	RemovedEdges  []Edge         `json:"removed_edges,omitempty"`
	ModifiedEdges []Change[Edge] `json:"modified_edges,omitempty"`
}

func (d *Diff) Empty() bool {
	return len(d.AddedNodes) == 0 && len(d.RemovedNodes) == 0 && len(d.ModifiedNodes) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0 && len(d.ModifiedEdges) == 0
}

// Compare diffs b against a.
func Compare(a, b *Graph) *Diff {
	d := &Diff{}
	for id, bn := range b.Nodes {
		an, ok := a.Nodes[id]
		switch {
		case !ok:
			d.AddedNodes = append(d.AddedNodes, bn)
		case !nodeEqual(an, bn):
			d.ModifiedNodes = append(d.ModifiedNodes, Change[Node]{ID: id, Before: an, After: bn})
		}
	}
	for id, an := range a.Nodes {
		if _, ok := b.Nodes[id]; !ok {
			d.RemovedNodes = append(d.RemovedNodes, an)
		}
	}
	for id, be := range b.Edges {
		ae, ok := a.Edges[id]
		switch {
		case !ok:
			d.AddedEdges = append(d.AddedEdges, be)
		case !edgeEqual(ae, be):
			d.ModifiedEdges = append(d.ModifiedEdges, Change[Edge]{ID: id, Before: ae, After: be})
		}
	}
	for id, ae := range a.Edges {
		if _, ok := b.Edges[id]; !ok {
			d.RemovedEdges = append(d.RemovedEdges, ae)
		}
	}
	return d
}

// MergeResult is the outcome of a three-way merge. On conflict (strategy
// "fail" or unresolved manual entries) Graph is nil and the conflict slices
// carry both sides.
type MergeResult struct {
	Graph         *Graph                 `json:"graph,omitempty"`
	NodeConflicts []merge.Conflict[Node] `json:"node_conflicts,omitempty"`
	EdgeConflicts []merge.Conflict[Edge] `json:"edge_conflicts,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
}

func (r *MergeResult) HasConflicts() bool {
	return len(r.NodeConflicts) > 0 || len(r.EdgeConflicts) > 0
}

// Merge merges ours and theirs against their common base version. Edges left
// dangling after node resolution are dropped and reported as warnings rather
// than failing the merge.
func Merge(base, ours, theirs *Graph, opts merge.Options) (*MergeResult, error) {
	res := &MergeResult{}

	nodes, nodeConflicts, nodeErr := merge.Maps(base.Nodes, ours.Nodes, theirs.Nodes, nodeEqual, opts)
	edges, edgeConflicts, edgeErr := merge.Maps(base.Edges, ours.Edges, theirs.Edges, edgeEqual, opts)

	res.NodeConflicts = nodeConflicts
	res.EdgeConflicts = edgeConflicts
	if nodeErr != nil || edgeErr != nil {
		if res.HasConflicts() {
			return res, merge.ErrUnresolvedConflicts
		}
		if nodeErr != nil {
			return nil, nodeErr
		}
		return nil, edgeErr
	}

	for id, e := range edges {
		_, fromOK := nodes[e.From]
		_, toOK := nodes[e.To]
		if !fromOK || !toOK {
			delete(edges, id)
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("dropped edge %q: endpoint no longer present after merge", id))
		}
	}

	res.Graph = &Graph{
		ScraperID: base.ScraperID,
		Nodes:     nodes,
		Edges:     edges,
	}
	return res, nil
}
