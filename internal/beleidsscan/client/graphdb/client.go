// Package graphdb talks SPARQL to the GraphDB repository holding the policy
// knowledge graph.
package graphdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
)

const BreakerName = "graphdb"

// Binding is one bound value in a SPARQL result row.
type Binding struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// SelectResult is the application/sparql-results+json envelope.
type SelectResult struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Binding `json:"bindings"`
	} `json:"results"`
}

type Client struct {
	baseURL    string
	repository string
	hc         *http.Client
	breakers   *breaker.Registry
}

func New(baseURL, repository string, hc *http.Client, breakers *breaker.Registry) *Client {
	return &Client{baseURL: baseURL, repository: repository, hc: hc, breakers: breakers}
}

func (c *Client) queryEndpoint() string {
	return c.baseURL + "/repositories/" + c.repository
}

// Select runs a SPARQL SELECT/ASK query.
func (c *Client) Select(ctx context.Context, query string) (*SelectResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryEndpoint(), strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/sparql-query")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("sparql select: %w", err)
	}
	defer resp.Body.Close()

	var result SelectResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sparql select: decode: %w", err)
	}
	return &result, nil
}

// Update runs a SPARQL UPDATE against the statements endpoint.
func (c *Client) Update(ctx context.Context, update string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryEndpoint()+"/statements", strings.NewReader(update))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/sparql-update")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("sparql update: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.breakers.Get(BreakerName).Execute(func() (*http.Response, error) {
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, fmt.Errorf("graphdb status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return resp, nil
	})
}
