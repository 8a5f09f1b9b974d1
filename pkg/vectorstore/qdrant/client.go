package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"internship-chatbot-be/pkg/vectorstore"
)

// Config configures the Qdrant-backed VectorStore.
type Config struct {
	BaseURL    string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Client implements vectorstore.VectorStore using Qdrant's REST API.
type Client struct {
	cfg     Config
	baseURL string
	client  *http.Client
}

var _ vectorstore.VectorStore = &Client{}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:6333"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		// Qdrant convention.
		req.Header.Set("api-key", c.cfg.APIKey)
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	endpoint := c.baseURL + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant request failed: method=%s path=%s status=%d body=%s", method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// qdrant filter clauses: a conjunction of exact field matches.
type fieldCondition struct {
	Key   string `json:"key"`
	Match struct {
		Value string `json:"value"`
	} `json:"match"`
}

type qdrantFilter struct {
	Must []fieldCondition `json:"must"`
}

func buildFilter(filter map[string]string) *qdrantFilter {
	if len(filter) == 0 {
		return nil
	}
	f := &qdrantFilter{}
	for key, value := range filter {
		cond := fieldCondition{Key: key}
		cond.Match.Value = value
		f.Must = append(f.Must, cond)
	}
	return f
}

// Search performs a filtered top-k nearest-neighbor query, requesting
// payload but not vectors.
func (c *Client) Search(ctx context.Context, params vectorstore.SearchParams) ([]vectorstore.SearchResult, error) {
	if strings.TrimSpace(c.cfg.Collection) == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}
	if len(params.Vector) == 0 {
		return nil, fmt.Errorf("query vector is required")
	}
	if params.TopK <= 0 {
		return []vectorstore.SearchResult{}, nil
	}

	req := struct {
		Vector         []float32     `json:"vector"`
		Limit          int           `json:"limit"`
		Filter         *qdrantFilter `json:"filter,omitempty"`
		ScoreThreshold float64       `json:"score_threshold,omitempty"`
		WithPayload    bool          `json:"with_payload"`
		WithVector     bool          `json:"with_vector"`
	}{
		Vector:         params.Vector,
		Limit:          params.TopK,
		Filter:         buildFilter(params.Filter),
		ScoreThreshold: params.ScoreThreshold,
		WithPayload:    true,
		WithVector:     false,
	}

	type qdrantResult struct {
		ID      any            `json:"id"`
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	}
	var resp struct {
		Result []qdrantResult `json:"result"`
		Status string         `json:"status"`
	}

	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(c.cfg.Collection))
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}

	out := make([]vectorstore.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		out = append(out, vectorstore.SearchResult{
			ID:      fmt.Sprint(r.ID),
			Score:   r.Score,
			Payload: r.Payload,
		})
	}
	return out, nil
}

// Upsert writes points into the collection, waiting for the operation to
// complete so a follow-up search can see them.
func (c *Client) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}
	if strings.TrimSpace(c.cfg.Collection) == "" {
		return fmt.Errorf("qdrant collection is required")
	}

	for i, p := range points {
		if p.ID == "" {
			return fmt.Errorf("point[%d] has empty id", i)
		}
		if len(p.Vector) == 0 {
			return fmt.Errorf("point[%d] has no vector", i)
		}
	}

	req := struct {
		Points []vectorstore.Point `json:"points"`
	}{
		Points: points,
	}

	path := fmt.Sprintf("/collections/%s/points?wait=true", url.PathEscape(c.cfg.Collection))
	return c.doJSON(ctx, http.MethodPut, path, req, nil)
}
