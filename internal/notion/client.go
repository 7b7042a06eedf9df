package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the Notion API base endpoint.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultNotionVersion is the Notion API version header value.
	DefaultNotionVersion = "2022-06-28"

	// DefaultQueryPageSize is the page size used for plain database fetches.
	DefaultQueryPageSize = 50

	// ListQueryPageSize is the page size used when listing all pages of the
	// configured database.
	ListQueryPageSize = 500
)

// Config holds the immutable configuration for a Notion API client.
// APIKey and DatabaseID are required; BaseURL and NotionVersion fall back
// to the API defaults.
type Config struct {
	// APIKey is the integration's bearer token
	APIKey string

	// DatabaseID is the database all queries target
	DatabaseID string

	// BaseURL is the API base endpoint (default: DefaultBaseURL)
	BaseURL string

	// NotionVersion is the value of the Notion-Version header
	// (default: DefaultNotionVersion)
	NotionVersion string
}

// Validate checks that the required credentials are present.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("notion API key is required")
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("notion database ID is required")
	}
	return nil
}

// Client issues requests against the Notion API. Headers are fixed at
// construction; the client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new Notion client from the given configuration.
// Missing credentials are a construction error, not a runtime condition.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.NotionVersion == "" {
		config.NotionVersion = DefaultNotionVersion
	}

	return &Client{
		httpClient: &http.Client{},
		config:     config,
	}, nil
}

// DatabaseID returns the configured database identifier.
func (c *Client) DatabaseID() string {
	return c.config.DatabaseID
}

// NotionError represents a failed Notion API operation.
type NotionError struct {
	// Op is the operation that failed (e.g., "queryDatabase", "getPage")
	Op string

	// StatusCode is the HTTP status of the response, if one was received
	StatusCode int

	// Body is the response body of a non-2xx response, if any
	Body string

	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *NotionError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("notion %s: status %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("notion %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("notion %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *NotionError) Unwrap() error {
	return e.Err
}

// do performs a single API request. The response body is always drained and
// closed, on every path. A non-2xx status is returned as a *NotionError.
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &NotionError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &NotionError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Notion-Version", c.config.NotionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NotionError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded amount of the error body; Notion error payloads
		// are small JSON objects.
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &NotionError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NotionError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// QueryDatabase lists pages of the configured database, sorted by creation
// time descending.
func (c *Client) QueryDatabase(ctx context.Context, pageSize int) (*QueryResult, error) {
	if pageSize <= 0 {
		pageSize = DefaultQueryPageSize
	}

	body := map[string]any{
		"page_size": pageSize,
		"sorts": []map[string]any{
			{
				"property":  "Created time",
				"timestamp": "created_time",
				"direction": "descending",
			},
		},
	}

	var result QueryResult
	path := fmt.Sprintf("databases/%s/query", c.config.DatabaseID)
	if err := c.do(ctx, "queryDatabase", http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPage fetches a page's properties.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, "getPage", http.MethodGet, "pages/"+pageID, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetBlockChildren fetches a page's immediate child blocks.
func (c *Client) GetBlockChildren(ctx context.Context, pageID string) ([]Block, error) {
	var result blockChildrenResult
	if err := c.do(ctx, "getBlockChildren", http.MethodGet, "blocks/"+pageID+"/children", nil, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// UpdateStatus sets the page's "Status" property to the given option name.
// The name is not validated locally; an illegal value is rejected by the API
// and surfaced as the returned error.
func (c *Client) UpdateStatus(ctx context.Context, pageID, status string) error {
	body := map[string]any{
		"properties": map[string]any{
			"Status": map[string]any{
				"status": map[string]any{
					"name": status,
				},
			},
		},
	}
	return c.do(ctx, "updateStatus", http.MethodPatch, "pages/"+pageID, body, nil)
}

// AppendBlockChildren appends the given blocks as children of the page in a
// single call. Repeated calls append again; the operation is not idempotent.
func (c *Client) AppendBlockChildren(ctx context.Context, pageID string, blocks []Block) error {
	body := map[string]any{
		"children": blocks,
	}
	return c.do(ctx, "appendBlockChildren", http.MethodPatch, "blocks/"+pageID+"/children", body, nil)
}
