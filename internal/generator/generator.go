// Package generator is the client side of the DSL-generation collaborator:
// it sends a natural-language drawing requirement (plus drawing settings and
// optional conversation context) to an LLM API and returns the DSL text the
// translator consumes.
package generator

import (
	"context"
	"time"
)

// Settings is the drawing settings record forwarded to the generator so the
// produced DSL matches the document conventions.
type Settings struct {
	Scale               float64
	TextHeight          float64
	DimensionTextHeight float64
	LineColor           int
	TextColor           int
	DimensionColor      int
	PaperSize           string
	Units               string
}

// Context carries optional conversational grounding for a generation call.
type Context struct {
	PriorDesigns []string
	Discussion   []string
	ProjectScope string
}

// Request is one generation call.
type Request struct {
	Requirement string
	Settings    Settings
	Context     *Context
}

// Metadata describes a completed generation call.
type Metadata struct {
	PromptLength   int
	ResponseLength int
	GenerationTime time.Duration
}

// Result is the collaborator's answer. Success is false when the model
// produced no usable DSL; Error then explains why.
type Result struct {
	Code     string
	Success  bool
	Error    string
	Metadata Metadata
}

// Client generates DSL text from free-text requirements.
type Client interface {
	Generate(ctx context.Context, req *Request) (*Result, error)
}

// Func adapts a plain function to the Client interface; used by tests and
// the harness.
type Func func(ctx context.Context, req *Request) (*Result, error)

// Generate implements Client.
func (f Func) Generate(ctx context.Context, req *Request) (*Result, error) {
	return f(ctx, req)
}
