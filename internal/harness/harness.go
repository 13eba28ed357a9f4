package harness

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/liscad/liscad/internal/ctxlog"
	"github.com/liscad/liscad/internal/dsl"
	"github.com/liscad/liscad/internal/generator"
	"github.com/liscad/liscad/internal/translate"
)

// CaseResult is the outcome of one scenario run.
type CaseResult struct {
	Scenario    Scenario
	Passed      bool
	Duration    time.Duration
	DSL         string
	Features    Features
	Translation *translate.Result
	// FailReasons lists why the case failed; empty when Passed.
	FailReasons []string
	// FeatureGaps lists expected structural features the run did not
	// exercise. Advisory only; a case passes or fails on translation
	// success alone.
	FeatureGaps []string
}

// Report aggregates a full harness run.
type Report struct {
	Cases  []CaseResult
	Passed int
	Failed int
	// ErrorCategories counts translation errors grouped by the text before
	// the first colon, across all cases.
	ErrorCategories map[string]int
	Duration        time.Duration
}

// Runner executes scenario catalogues against a generator.
type Runner struct {
	generator generator.Client
	mode      dsl.Mode
}

// NewRunner returns a Runner translating in the given parse mode.
func NewRunner(gen generator.Client, mode dsl.Mode) *Runner {
	return &Runner{generator: gen, mode: mode}
}

// Run executes every scenario and returns the aggregate report. Individual
// scenario failures do not abort the run; only a context cancellation does.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	started := time.Now()

	report := &Report{ErrorCategories: make(map[string]int)}
	for _, scenario := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("harness: run aborted: %w", err)
		}

		result := r.runCase(ctx, scenario)
		report.Cases = append(report.Cases, result)
		if result.Passed {
			report.Passed++
			logger.Info("Scenario passed.", "id", scenario.ID, "duration", result.Duration)
		} else {
			report.Failed++
			logger.Warn("Scenario failed.", "id", scenario.ID, "reasons", result.FailReasons)
		}
		if result.Translation != nil {
			for _, msg := range result.Translation.Errors {
				report.ErrorCategories[errorCategory(msg)]++
			}
		}
	}
	report.Duration = time.Since(started)
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, scenario Scenario) CaseResult {
	started := time.Now()
	result := CaseResult{Scenario: scenario}

	genResult, err := r.generator.Generate(ctx, &generator.Request{
		Requirement: scenario.Requirement,
		Settings:    scenario.Settings,
	})
	if err != nil {
		result.FailReasons = append(result.FailReasons, fmt.Sprintf("generation failed: %v", err))
		result.Duration = time.Since(started)
		return result
	}
	if !genResult.Success {
		result.FailReasons = append(result.FailReasons, "generation failed: "+genResult.Error)
		result.Duration = time.Since(started)
		return result
	}
	result.DSL = genResult.Code

	translation := translate.Document(ctx, genResult.Code, translate.Options{
		Mode:  r.mode,
		Title: scenario.Name,
	})
	result.Translation = translation
	result.Features = DetectFeatures(genResult.Code, translation.Code)
	result.FeatureGaps = missingFeatures(scenario.Expect, result.Features)

	if !translation.Success {
		result.FailReasons = append(result.FailReasons, "translation produced errors")
	}

	result.Passed = len(result.FailReasons) == 0
	result.Duration = time.Since(started)
	return result
}

var (
	drawingCommandRe = regexp.MustCompile(`(?m)^\s*\((line|circle|arc|rectangle|polyline|lwpolyline|spline)\b`)
	layerCommandRe   = regexp.MustCompile(`(?m)^\s*\(layer\b`)
	dimCommandRe     = regexp.MustCompile(`(?m)^\s*\((dimension|dimlinear)\b`)
	textCommandRe    = regexp.MustCompile(`(?m)^\s*\((text|mtext)\b`)
)

// DetectFeatures derives the structural feature record for a run from the
// generated DSL and the emitted code. SyntaxValid requires both texts to
// carry at least one non-comment line.
func DetectFeatures(dslText, emittedCode string) Features {
	return Features{
		DrawingCommands: drawingCommandRe.MatchString(dslText),
		Layers:          layerCommandRe.MatchString(dslText),
		Dimensions:      dimCommandRe.MatchString(dslText),
		Text:            textCommandRe.MatchString(dslText),
		SyntaxValid:     hasNonCommentLine(dslText, ";") && hasNonCommentLine(emittedCode, "#"),
	}
}

func hasNonCommentLine(text, commentPrefix string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}
		return true
	}
	return false
}

func missingFeatures(expect, got Features) []string {
	var reasons []string
	check := func(want, have bool, name string) {
		if want && !have {
			reasons = append(reasons, "missing expected feature: "+name)
		}
	}
	check(expect.DrawingCommands, got.DrawingCommands, "drawing commands")
	check(expect.Layers, got.Layers, "layers")
	check(expect.Dimensions, got.Dimensions, "dimensions")
	check(expect.Text, got.Text, "text annotations")
	check(expect.SyntaxValid, got.SyntaxValid, "valid syntax")
	return reasons
}

// errorCategory groups an error message by the text before its first colon,
// the shared shape of all translator and parser errors.
func errorCategory(msg string) string {
	if i := strings.Index(msg, ":"); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}
	return msg
}
