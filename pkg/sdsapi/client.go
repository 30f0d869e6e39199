// Package sdsapi provides the client for the upstream SDS Manager REST API.
// The per-session credential is passed on every call through a fixed custom
// header; non-2xx responses surface as *APIError carrying the upstream error
// code and message when the body provides them.
package sdsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultCRUDTimeout   = 10 * time.Second
	defaultSubmitTimeout = 10 * time.Second
)

// APIError is a non-2xx response from the backend. ErrorCode and
// ErrorMessage are populated only when the body carried the upstream error
// shape; otherwise Body holds the raw response text.
type APIError struct {
	StatusCode   int
	ErrorCode    string
	ErrorMessage string
	Body         string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("sdsapi: %d %s: %s", e.StatusCode, e.ErrorCode, e.ErrorMessage)
	}
	return fmt.Sprintf("sdsapi: status %d: %s", e.StatusCode, e.Body)
}

// errorBody is the upstream error shape.
type errorBody struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// Config holds client configuration.
type Config struct {
	BaseURL      string
	APIKeyHeader string

	// Timeout applies to status polls, CRUDTimeout to short CRUD calls,
	// SubmitTimeout to the multipart import submission.
	Timeout       time.Duration
	CRUDTimeout   time.Duration
	SubmitTimeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the SDS Manager REST API.
type Client struct {
	baseURL       string
	headerName    string
	timeout       time.Duration
	crudTimeout   time.Duration
	submitTimeout time.Duration
	httpClient    *http.Client
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "X-MCP-API-KEY"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CRUDTimeout == 0 {
		cfg.CRUDTimeout = defaultCRUDTimeout
	}
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = defaultSubmitTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		headerName:    cfg.APIKeyHeader,
		timeout:       cfg.Timeout,
		crudTimeout:   cfg.CRUDTimeout,
		submitTimeout: cfg.SubmitTimeout,
		httpClient:    cfg.HTTPClient,
	}, nil
}

// do performs a single JSON request. Transport failures are returned as
// wrapped plain errors, non-2xx responses as *APIError. There are no
// automatic retries.
func (c *Client) do(ctx context.Context, method, path, apiKey string, body any, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(c.headerName, apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// newAPIError builds an APIError, parsing the upstream error shape when the
// body allows.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.ErrorCode != "" && eb.ErrorMessage != "" {
		apiErr.ErrorCode = eb.ErrorCode
		apiErr.ErrorMessage = eb.ErrorMessage
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, path, apiKey string, timeout time.Duration, out any) error {
	return c.do(ctx, http.MethodGet, path, apiKey, nil, timeout, out)
}

func (c *Client) post(ctx context.Context, path, apiKey string, body any, timeout time.Duration, out any) error {
	return c.do(ctx, http.MethodPost, path, apiKey, body, timeout, out)
}

func (c *Client) patch(ctx context.Context, path, apiKey string, body any, timeout time.Duration, out any) error {
	return c.do(ctx, http.MethodPatch, path, apiKey, body, timeout, out)
}

// postMultipart uploads a file with accompanying form fields. The submit
// timeout applies.
func (c *Client) postMultipart(ctx context.Context, path, apiKey, fileName string, file io.Reader, fields map[string]string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("writing form field %s: %w", key, err)
		}
	}
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copying file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(c.headerName, apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
