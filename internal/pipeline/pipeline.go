// Package pipeline wires the stages together: DSL generation, structural
// validation, translation and optional execution on the drawing backend.
// One run is a pure function of its inputs; all drafting state lives inside
// the translation call.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/liscad/liscad/internal/backend"
	"github.com/liscad/liscad/internal/ctxlog"
	"github.com/liscad/liscad/internal/dsl"
	"github.com/liscad/liscad/internal/emit"
	"github.com/liscad/liscad/internal/generator"
	"github.com/liscad/liscad/internal/translate"
)

// Pipeline holds the collaborators one run needs. Backend may be nil when
// execution is not requested.
type Pipeline struct {
	Generator generator.Client
	Backend   *backend.Client
	Mode      dsl.Mode
}

// RunResult captures everything a single run produced, for diagnostic
// display by the caller.
type RunResult struct {
	ID          string
	Title       string
	DSL         string
	Validation  dsl.Validation
	Translation *translate.Result
	GenMeta     *generator.Metadata
	Drawing     *backend.Drawing
}

// FromRequirement generates DSL for a free-text requirement and translates
// it. A generation failure is a hard error with no partial result.
func (p *Pipeline) FromRequirement(ctx context.Context, requirement, title string, settings generator.Settings, genCtx *generator.Context) (*RunResult, error) {
	logger := ctxlog.FromContext(ctx)
	runID := uuid.NewString()
	logger.Info("Generating DSL from requirement.", "run", runID, "requirement_len", len(requirement))

	gen, err := p.Generator.Generate(ctx, &generator.Request{
		Requirement: requirement,
		Settings:    settings,
		Context:     genCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	if !gen.Success {
		return nil, fmt.Errorf("generation failed: %s", gen.Error)
	}

	result, err := p.fromDSL(ctx, runID, gen.Code, title)
	if result != nil {
		result.GenMeta = &gen.Metadata
	}
	return result, err
}

// FromDSL validates and translates DSL text that already exists (a file, a
// prior design, a user edit).
func (p *Pipeline) FromDSL(ctx context.Context, input, title string) (*RunResult, error) {
	return p.fromDSL(ctx, uuid.NewString(), input, title)
}

func (p *Pipeline) fromDSL(ctx context.Context, runID, input, title string) (*RunResult, error) {
	logger := ctxlog.FromContext(ctx)

	result := &RunResult{
		ID:    runID,
		Title: emit.SanitizeTitle(title),
		DSL:   input,
	}

	// Cheap pre-flight before any statement work. A structurally broken
	// document is rejected here; per-statement faults are the translator's
	// business.
	result.Validation = dsl.CheckStructure(input)
	if !result.Validation.Valid {
		logger.Warn("Structural validation failed.", "run", runID, "errors", result.Validation.Errors)
		return result, fmt.Errorf("validation: %s", result.Validation.Errors[0])
	}

	result.Translation = translate.Document(ctx, input, translate.Options{
		Mode:  p.Mode,
		Title: result.Title,
	})

	logger.Info("Translation finished.",
		"run", runID,
		"success", result.Translation.Success,
		"translated", result.Translation.Stats.Translated,
		"errors", len(result.Translation.Errors),
		"warnings", len(result.Translation.Warnings),
	)
	return result, nil
}

// Execute ships the run's emitted code to the execution backend and attaches
// the returned drawing. It refuses runs whose translation did not succeed.
func (p *Pipeline) Execute(ctx context.Context, result *RunResult) error {
	if p.Backend == nil {
		return fmt.Errorf("backend: no execution backend configured")
	}
	if result.Translation == nil || !result.Translation.Success {
		return fmt.Errorf("backend: refusing to execute a failed translation")
	}

	drawing, err := p.Backend.Execute(ctx, result.Translation.Code, result.Title)
	if err != nil {
		return err
	}
	result.Drawing = drawing
	return nil
}
