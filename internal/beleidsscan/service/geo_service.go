package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/pdok"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/metrics"
)

// GeoCache is the slice of the Redis wrapper the geo lookups use.
type GeoCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}

// Geocoder is implemented by the PDOK client.
type Geocoder interface {
	Free(ctx context.Context, q string, rows int) ([]pdok.Document, error)
}

type GeoService interface {
	// Lookup geocodes a free-text place reference, serving from cache when
	// possible. bypassCache forces a fresh upstream call.
	Lookup(ctx context.Context, q string, rows int, bypassCache bool) ([]pdok.Document, error)
}

type geoService struct {
	geocoder Geocoder
	cache    GeoCache // nil disables caching
	ttl      time.Duration
	logger   *slog.Logger
}

func NewGeoService(geocoder Geocoder, cache GeoCache, ttl time.Duration, logger *slog.Logger) GeoService {
	return &geoService{geocoder: geocoder, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(q string) string {
	return "pdok:free:" + q
}

func (s *geoService) Lookup(ctx context.Context, q string, rows int, bypassCache bool) ([]pdok.Document, error) {
	if q == "" {
		return nil, ErrBadRequest
	}

	if s.cache != nil && !bypassCache {
		var cached []pdok.Document
		hit, err := s.cache.GetJSON(ctx, cacheKey(q), &cached)
		if err != nil {
			// cache trouble must not block geocoding
			s.logger.Warn("geo cache read failed", "q", q, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	docs, err := s.geocoder.Free(ctx, q, rows)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("pdok").Inc()
		return nil, ErrUpstream
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey(q), docs, s.ttl); err != nil {
			s.logger.Warn("geo cache write failed", "q", q, "error", err)
		}
	}
	return docs, nil
}
