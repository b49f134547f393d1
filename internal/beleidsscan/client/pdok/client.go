// Package pdok calls the PDOK Locatieserver, the national geocoding API used
// to resolve place references found in policy documents.
package pdok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
)

// BreakerName identifies this upstream in the breaker registry.
const BreakerName = "pdok"

const defaultRows = 10

// Document is one Locatieserver search hit.
type Document struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Weergavenaam string  `json:"weergavenaam"`
	Score        float64 `json:"score"`
	CentroideLL  string  `json:"centroide_ll"`
}

type searchEnvelope struct {
	Response struct {
		NumFound int        `json:"numFound"`
		Docs     []Document `json:"docs"`
	} `json:"response"`
}

type Client struct {
	baseURL  string
	hc       *http.Client
	breakers *breaker.Registry
}

func New(baseURL string, hc *http.Client, breakers *breaker.Registry) *Client {
	return &Client{baseURL: baseURL, hc: hc, breakers: breakers}
}

// Free runs a free-text search against /free.
func (c *Client) Free(ctx context.Context, q string, rows int) ([]Document, error) {
	if rows <= 0 {
		rows = defaultRows
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("rows", strconv.Itoa(rows))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/free?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.breakers.Get(BreakerName).Execute(func() (*http.Response, error) {
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("locatieserver status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pdok free search: %w", err)
	}
	defer resp.Body.Close()

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("pdok free search: decode: %w", err)
	}
	return envelope.Response.Docs, nil
}
