// Package backend is the client side of the drawing execution collaborator:
// it ships emitted drafting code to the ezdxf execution server and returns
// the produced DXF artifact.
package backend

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/liscad/liscad/internal/ctxlog"
	"resty.dev/v3"
)

// Client talks to the execution backend over HTTP.
type Client struct {
	http *resty.Client
}

// New builds a backend client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = time.Minute
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Drawing is the decoded artifact produced by one execution.
type Drawing struct {
	Filename     string
	Content      []byte
	Size         int
	ExecutionLog string
}

type executeRequest struct {
	PythonCode string `json:"python_code"`
	Filename   string `json:"filename"`
}

type executeResponse struct {
	Success      bool   `json:"success"`
	DXFContent   string `json:"dxf_content"`
	Filename     string `json:"filename"`
	FileSize     int    `json:"file_size"`
	ExecutionLog string `json:"execution_log"`
	Error        string `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Execute runs the emitted code on the backend and returns the drawing. Any
// backend-reported failure becomes an error; there is no partial artifact.
func (c *Client) Execute(ctx context.Context, code, filename string) (*Drawing, error) {
	logger := ctxlog.FromContext(ctx)

	var out executeResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(executeRequest{PythonCode: code, Filename: filename}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/generate-drawing")
	if err != nil {
		return nil, fmt.Errorf("backend: request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return nil, fmt.Errorf("backend: execution failed: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("backend: unexpected status %d", resp.StatusCode())
	}
	if !out.Success {
		return nil, fmt.Errorf("backend: execution failed: %s", out.Error)
	}

	content, err := base64.StdEncoding.DecodeString(out.DXFContent)
	if err != nil {
		return nil, fmt.Errorf("backend: malformed artifact encoding: %w", err)
	}

	logger.Debug("Drawing executed on backend.", "filename", out.Filename, "bytes", len(content))
	return &Drawing{
		Filename:     out.Filename,
		Content:      content,
		Size:         out.FileSize,
		ExecutionLog: out.ExecutionLog,
	}, nil
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health verifies the backend is reachable and running.
func (c *Client) Health(ctx context.Context) error {
	var out healthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/")
	if err != nil {
		return fmt.Errorf("backend: health check failed: %w", err)
	}
	if resp.IsError() || out.Status != "running" {
		return fmt.Errorf("backend: not healthy (status %d, %q)", resp.StatusCode(), out.Status)
	}
	return nil
}
