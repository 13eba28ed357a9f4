package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/liscad/liscad/internal/ctxlog"
	"resty.dev/v3"
)

const anthropicVersion = "2023-06-01"

// AnthropicClient generates DSL through the Anthropic messages API.
type AnthropicClient struct {
	http      *resty.Client
	model     string
	maxTokens int
}

// AnthropicOptions configures the client. Zero values fall back to sane
// defaults.
type AnthropicOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	MaxTokens  int
}

// NewAnthropicClient builds a generator backed by the Anthropic API.
func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.anthropic.com"
	}
	if opts.Model == "" {
		opts.Model = "claude-sonnet-4-5"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Minute
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", opts.APIKey).
		SetHeader("anthropic-version", anthropicVersion)

	c := &AnthropicClient{http: client, model: opts.Model}
	c.maxTokens = opts.MaxTokens
	if c.maxTokens == 0 {
		c.maxTokens = 8192
	}
	return c
}

type anthropicRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system,omitempty"`
	Messages  []anthropicMsg `json:"messages"`
}

type anthropicMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements Client.
func (c *AnthropicClient) Generate(ctx context.Context, req *Request) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	system := SystemPrompt()
	user := BuildUserPrompt(req)

	body := anthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  []anthropicMsg{{Role: "user", Content: user}},
	}

	var out anthropicResponse
	var apiErr anthropicError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/messages")
	if err != nil {
		return nil, fmt.Errorf("generation: request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("generation: API error (%s): %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("generation: unexpected status %d", resp.StatusCode())
	}

	var raw string
	for _, block := range out.Content {
		if block.Type == "text" {
			raw += block.Text
		}
	}

	code := ExtractDSL(raw)
	result := &Result{
		Code:    code,
		Success: code != "",
		Metadata: Metadata{
			PromptLength:   len(system) + len(user),
			ResponseLength: len(raw),
			GenerationTime: time.Since(start),
		},
	}
	if !result.Success {
		result.Error = "model response contained no DSL statements"
	}

	logger.Debug("DSL generation finished.",
		"model", c.model,
		"input_tokens", out.Usage.InputTokens,
		"output_tokens", out.Usage.OutputTokens,
		"dsl_bytes", len(code),
		"duration", result.Metadata.GenerationTime,
	)
	return result, nil
}
