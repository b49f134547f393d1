package service

import (
	"context"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/commoncrawl"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/metrics"
)

// CDXIndex is implemented by the Common Crawl client.
type CDXIndex interface {
	Query(ctx context.Context, target, matchType string, limit int) ([]commoncrawl.Record, error)
}

type CrawlService interface {
	// Captures lists historical crawl captures for a URL.
	Captures(ctx context.Context, target, matchType string, limit int) ([]commoncrawl.Record, error)
}

type crawlService struct {
	index CDXIndex
}

func NewCrawlService(index CDXIndex) CrawlService {
	return &crawlService{index: index}
}

func (s *crawlService) Captures(ctx context.Context, target, matchType string, limit int) ([]commoncrawl.Record, error) {
	if target == "" {
		return nil, ErrBadRequest
	}
	switch matchType {
	case "", "exact", "prefix", "host", "domain":
	default:
		return nil, ErrBadRequest
	}

	records, err := s.index.Query(ctx, target, matchType, limit)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("commoncrawl").Inc()
		return nil, ErrUpstream
	}
	return records, nil
}
