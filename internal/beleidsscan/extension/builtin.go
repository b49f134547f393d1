package extension

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRegistry returns the registry with the shipped migration chains:
//
//	geo:   v1 -> v2
//	legal: v1 -> v2
//	web:   v1 -> v2 -> v3
func DefaultRegistry() *Registry {
	r := NewRegistry()
	steps := []Step{
		{Type: TypeGeo, From: "v1", To: "v2", Apply: geoV1toV2},
		{Type: TypeLegal, From: "v1", To: "v2", Apply: legalV1toV2},
		{Type: TypeWeb, From: "v1", To: "v2", Apply: webV1toV2},
		{Type: TypeWeb, From: "v2", To: "v3", Apply: webV2toV3},
	}
	for _, s := range steps {
		if err := r.Register(s); err != nil {
			// shipped chains are wired at compile time; a duplicate is a programming error
			panic(err)
		}
	}
	r.SetCurrent(TypeGeo, "v2")
	r.SetCurrent(TypeLegal, "v2")
	r.SetCurrent(TypeWeb, "v3")
	return r
}

// geo v1 stored the PDOK centroid as a WKT string; v2 stores structured
// coordinates with an explicit CRS.
func geoV1toV2(p Payload) (Payload, error) {
	wkt, ok := p["centroide_ll"].(string)
	if !ok {
		return nil, fmt.Errorf("geo payload missing centroide_ll")
	}
	lon, lat, err := parsePointWKT(wkt)
	if err != nil {
		return nil, err
	}
	delete(p, "centroide_ll")
	p["centroid"] = map[string]any{"lon": lon, "lat": lat}
	p["crs"] = "EPSG:4326"
	return p, nil
}

func parsePointWKT(s string) (lon, lat float64, err error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "POINT(") || !strings.HasSuffix(s, ")") {
		return 0, 0, fmt.Errorf("malformed WKT point %q", s)
	}
	inner := s[len("POINT(") : len(s)-1]
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed WKT point %q", s)
	}
	lon, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed WKT point %q: %w", s, err)
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed WKT point %q: %w", s, err)
	}
	return lon, lat, nil
}

// legal v1 kept a flat regulation title and BWB identifier; v2 types the
// instrument and namespaces the identifier.
func legalV1toV2(p Payload) (Payload, error) {
	title, _ := p["regeling"].(string)
	if title == "" {
		return nil, fmt.Errorf("legal payload missing regeling")
	}
	kind := "regeling"
	if k, ok := p["soort"].(string); ok && k != "" {
		kind = strings.ToLower(k)
	}
	delete(p, "regeling")
	delete(p, "soort")
	p["instrument"] = map[string]any{"kind": kind, "title": title}
	if bwb, ok := p["bwb"].(string); ok {
		delete(p, "bwb")
		p["bwb_id"] = bwb
	}
	return p, nil
}

// web v1 -> v2 renames the fetch fields and adds crawl provenance.
func webV1toV2(p Payload) (Payload, error) {
	url, ok := p["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("web payload missing url")
	}
	delete(p, "url")
	p["source_url"] = url
	if fetched, ok := p["fetched_at"]; ok {
		delete(p, "fetched_at")
		p["retrieved_at"] = fetched
	}
	if _, ok := p["crawl"]; !ok {
		p["crawl"] = map[string]any{"provider": "direct"}
	}
	return p, nil
}

// web v2 -> v3 normalizes the content digest into a lowercase fingerprint.
func webV2toV3(p Payload) (Payload, error) {
	if digest, ok := p["digest"].(string); ok && digest != "" {
		delete(p, "digest")
		p["content_fingerprint"] = strings.ToLower(digest)
	}
	return p, nil
}
