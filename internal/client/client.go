// Package client provides an HTTP client for the rigcheck server API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rigcheck/rigcheck-go/internal/metrics"
	"github.com/rigcheck/rigcheck-go/internal/models"
	"github.com/rigcheck/rigcheck-go/internal/power"
	"github.com/rigcheck/rigcheck-go/internal/service"
)

// Client talks to a running rigcheck server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
// If baseURL is empty, uses RIGCHECK_SERVER_URL env var or defaults to
// localhost:8080. Timeout can be configured via RIGCHECK_CLIENT_TIMEOUT
// (escalated compatibility checks block on the LLM, hence the generous default).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("RIGCHECK_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("RIGCHECK_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s - %s", resp.Status, errResp.Error)
		}
		return fmt.Errorf("server error: %s", resp.Status)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected health status: %q", resp.Status)
	}
	return nil
}

// Components queries component records. Every predicate except category is
// passed through as a query parameter; brand/min_price/max_price resolve
// against indexed columns, everything else against specs.
func (c *Client) Components(ctx context.Context, category string, predicates map[string]string) ([]models.Component, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	for key, value := range predicates {
		params.Set(key, value)
	}

	path := "/api/components"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp struct {
		Components []models.Component `json:"components"`
		Count      int                `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Components, nil
}

// Categories lists the distinct component categories on the server.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Brands lists the distinct brands within one category.
func (c *Client) Brands(ctx context.Context, category string) ([]string, error) {
	var resp struct {
		Brands []string `json:"brands"`
	}
	path := "/api/categories/" + url.PathEscape(category) + "/brands"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}

// CheckCompatibility runs one ordered pairwise compatibility check.
func (c *Client) CheckCompatibility(ctx context.Context, compA, compB models.Component) (models.Verdict, error) {
	req := map[string]models.Component{
		"component_a": compA,
		"component_b": compB,
	}
	var verdict models.Verdict
	if err := c.do(ctx, http.MethodPost, "/api/compatibility", req, &verdict); err != nil {
		return models.Verdict{}, err
	}
	return verdict, nil
}

type buildRequest struct {
	Components []models.Component `json:"components"`
}

// EstimatePower computes the power profile of a configuration.
func (c *Client) EstimatePower(ctx context.Context, components []models.Component) (power.Estimate, error) {
	var est power.Estimate
	if err := c.do(ctx, http.MethodPost, "/api/power", buildRequest{Components: components}, &est); err != nil {
		return power.Estimate{}, err
	}
	return est, nil
}

// CheckBuild reviews a full configuration: pairwise verdicts plus power profile.
func (c *Client) CheckBuild(ctx context.Context, components []models.Component) (service.BuildReport, error) {
	var report service.BuildReport
	if err := c.do(ctx, http.MethodPost, "/api/build/check", buildRequest{Components: components}, &report); err != nil {
		return service.BuildReport{}, err
	}
	return report, nil
}

// Stats returns the server's runtime statistics.
func (c *Client) Stats(ctx context.Context) (metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &snap); err != nil {
		return metrics.Snapshot{}, err
	}
	return snap, nil
}
