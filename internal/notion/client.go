package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notionsite/internal/logger"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"

	maxResponseBytes = 10 * 1024 * 1024
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingID        = errors.New("missing id")
)

// Source is the remote content contract used by the builder, the seeder and
// the weekly digest.
type Source interface {
	Query(ctx context.Context, databaseID string, q Query) (*QueryResult, error)
	RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error)
	CreatePage(ctx context.Context, databaseID string, props map[string]PropertyValue) (*Record, error)
	UpdatePage(ctx context.Context, pageID string, props map[string]PropertyValue) (*Record, error)
}

var _ Source = (*Client)(nil)

// APIError is a non-2xx response. It matches ErrUnexpectedStatus.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion: status %d: %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Client talks to the Notion REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	version    string
	logger     *logger.Logger
}

type Options struct {
	BaseURL    string
	Token      string
	Version    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

func NewClient(opt Options) *Client {
	c := &Client{
		httpClient: opt.HTTPClient,
		baseURL:    strings.TrimRight(opt.BaseURL, "/"),
		token:      opt.Token,
		version:    opt.Version,
		logger:     opt.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if c.httpClient == nil {
		timeout := opt.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

func (c *Client) Query(ctx context.Context, databaseID string, q Query) (*QueryResult, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("query database: %w", ErrMissingID)
	}
	var out QueryResult
	path := "/databases/" + url.PathEscape(databaseID) + "/query"
	if err := c.do(ctx, http.MethodPost, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("retrieve database: %w", ErrMissingID)
	}
	var out Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(databaseID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type createPageRequest struct {
	Parent     parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

func (c *Client) CreatePage(ctx context.Context, databaseID string, props map[string]PropertyValue) (*Record, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("create page: %w", ErrMissingID)
	}
	body := createPageRequest{
		Parent:     parent{DatabaseID: databaseID},
		Properties: props,
	}
	var out Record
	if err := c.do(ctx, http.MethodPost, "/pages", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties"`
}

func (c *Client) UpdatePage(ctx context.Context, pageID string, props map[string]PropertyValue) (*Record, error) {
	if pageID == "" {
		return nil, fmt.Errorf("update page: %w", ErrMissingID)
	}
	var out Record
	if err := c.do(ctx, http.MethodPatch, "/pages/"+url.PathEscape(pageID), updatePageRequest{Properties: props}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.logger != nil {
		c.logger.Debug("notion request", "method", method, "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = truncate(string(raw), 512)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
