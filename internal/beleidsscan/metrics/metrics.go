// Package metrics holds the Prometheus instrumentation exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beleidsscan_documents_created_total",
		Help: "Canonical documents created through the API.",
	})

	GraphSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beleidsscan_graph_saves_total",
		Help: "Scraper graph saves by outcome (direct, merged, conflict).",
	}, []string{"outcome"})

	KGCommits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beleidsscan_kg_commits_total",
		Help: "Knowledge-graph commits, merge commits included.",
	})

	KGMerges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beleidsscan_kg_merges_total",
		Help: "Knowledge-graph branch merges by outcome.",
	}, []string{"outcome"})

	ExtensionMigrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beleidsscan_extension_migrations_total",
		Help: "Extension payload migrations by extension type.",
	}, []string{"type"})

	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beleidsscan_upstream_failures_total",
		Help: "Failed calls to external integrations by target.",
	}, []string{"target"})
)
