// Package api is the HTTP/JSON client for the remote bookmark service.
package api

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

	"github.com/google/uuid"

	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
)

// Client talks to the bookmark API rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL    string        // ex: http://localhost:8080/api
	Timeout    time.Duration // 0 = no client timeout
	HTTPClient *http.Client  // optional, overrides Timeout
	Logger     logger.Logger // optional
}

// NewClient creates a Client.
func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}, nil
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]model.Bookmark, error) {
	resp, err := c.do(ctx, "list", http.MethodGet, "/bookmarks", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var bookmarks []model.Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&bookmarks); err != nil {
		return nil, &Error{Op: "list", Method: http.MethodGet, Path: "/bookmarks", Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return bookmarks, nil
}

// Create stores a new bookmark. The response body is ignored.
func (c *Client) Create(ctx context.Context, b model.Bookmark) error {
	return c.send(ctx, "create", http.MethodPost, "/bookmarks", b)
}

// Update applies a partial update to the bookmark with the given id.
func (c *Client) Update(ctx context.Context, id string, patch model.Patch) error {
	return c.send(ctx, "update", http.MethodPut, "/bookmarks/"+url.PathEscape(id), patch)
}

// Delete removes the bookmark with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.send(ctx, "delete", http.MethodDelete, "/bookmarks/"+url.PathEscape(id), nil)
}

func (c *Client) send(ctx context.Context, op, method, path string, body any) error {
	resp, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// do performs the request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			logger.String("op", op),
			logger.String("request_id", reqID),
			logger.Error(err),
		)
		return nil, &Error{Op: op, Method: method, Path: path, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}

	c.log.Debug("api request",
		logger.String("op", op),
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
		logger.String("request_id", reqID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &Error{Op: op, Method: method, Path: path, StatusCode: resp.StatusCode, Err: ErrStatus}
	}

	return resp, nil
}
