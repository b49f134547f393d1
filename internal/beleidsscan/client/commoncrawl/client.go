// Package commoncrawl queries the Common Crawl CDX index for historical
// captures of government publication pages.
package commoncrawl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
)

const BreakerName = "commoncrawl"

const maxLimit = 500

// Record is one CDX capture row. The index serves all fields as strings.
type Record struct {
	URLKey    string `json:"urlkey"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Mime      string `json:"mime"`
	Status    string `json:"status"`
	Digest    string `json:"digest"`
	Length    string `json:"length"`
}

type Client struct {
	indexURL string
	hc       *http.Client
	breakers *breaker.Registry
}

func New(indexURL string, hc *http.Client, breakers *breaker.Registry) *Client {
	return &Client{indexURL: indexURL, hc: hc, breakers: breakers}
}

// Query lists captures for a URL. matchType may be empty, "prefix", "host"
// or "domain". The index answers 404 when it holds no captures; that is an
// empty result, not an error.
func (c *Client) Query(ctx context.Context, target, matchType string, limit int) ([]Record, error) {
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	params := url.Values{}
	params.Set("url", target)
	params.Set("output", "json")
	params.Set("limit", strconv.Itoa(limit))
	if matchType != "" {
		params.Set("matchType", matchType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.breakers.Get(BreakerName).Execute(func() (*http.Response, error) {
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			resp.Body.Close()
			return nil, fmt.Errorf("cdx index status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("commoncrawl query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	// one JSON object per line
	var records []Record
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("commoncrawl query: decode line: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("commoncrawl query: read: %w", err)
	}
	return records, nil
}
