package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liscad/liscad/internal/ctxlog"
	"github.com/liscad/liscad/internal/dsl"
	"github.com/liscad/liscad/internal/harness"
	"github.com/liscad/liscad/internal/pipeline"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	mode := dsl.ModeLenient
	if appConfig.Strict {
		mode = dsl.ModeStrict
	}

	if appConfig.SelfTest {
		return a.runSelfTest(ctx, appConfig, mode)
	}

	p := &pipeline.Pipeline{
		Generator: a.generator,
		Backend:   a.backend,
		Mode:      mode,
	}

	var (
		result *pipeline.RunResult
		err    error
	)
	switch {
	case appConfig.FilePath != "":
		a.logger.Info("Translating DSL file.", "path", appConfig.FilePath)
		input, readErr := os.ReadFile(appConfig.FilePath)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", appConfig.FilePath, readErr)
		}
		result, err = p.FromDSL(ctx, string(input), appConfig.Title)
	case appConfig.Requirement != "":
		a.logger.Info("Generating and translating from requirement.")
		result, err = p.FromRequirement(ctx, appConfig.Requirement, appConfig.Title, a.config.Drawing.Settings(), nil)
	}
	if err != nil {
		if result != nil {
			a.printSummary(result)
		}
		return err
	}

	if appConfig.Execute {
		if execErr := p.Execute(ctx, result); execErr != nil {
			a.printSummary(result)
			return execErr
		}
	}

	if err := a.writeArtifacts(appConfig, result); err != nil {
		return err
	}
	a.printSummary(result)

	if !result.Translation.Success {
		return fmt.Errorf("translation finished with %d error(s)", len(result.Translation.Errors))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runSelfTest(ctx context.Context, appConfig *Config, mode dsl.Mode) error {
	base := a.config.Drawing.Settings()

	var (
		scenarios []harness.Scenario
		err       error
	)
	if appConfig.ScenariosPath != "" {
		scenarios, err = harness.LoadCatalogue(ctx, appConfig.ScenariosPath, base)
	} else {
		scenarios, err = harness.DefaultCatalogue(base)
	}
	if err != nil {
		return err
	}
	a.logger.Info("Running scenario harness.", "scenarios", len(scenarios))

	report, err := harness.NewRunner(a.generator, mode).Run(ctx, scenarios)
	if err != nil {
		return err
	}
	if err := report.Write(a.outW); err != nil {
		return err
	}
	if !report.Success() {
		return fmt.Errorf("%d of %d scenario(s) failed", report.Failed, len(report.Cases))
	}
	return nil
}

// writeArtifacts persists what the run produced: the emitted code, the DSL
// when it was generated rather than read, and the DXF when the backend ran.
func (a *App) writeArtifacts(appConfig *Config, result *pipeline.RunResult) error {
	if result.Translation == nil {
		return nil
	}

	if err := os.MkdirAll(appConfig.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", appConfig.OutDir, err)
	}

	codePath := filepath.Join(appConfig.OutDir, result.Title+".py")
	if err := os.WriteFile(codePath, []byte(result.Translation.Code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", codePath, err)
	}
	a.logger.Info("Emitted code written.", "path", codePath)

	if appConfig.Requirement != "" {
		dslPath := filepath.Join(appConfig.OutDir, result.Title+".lsp")
		if err := os.WriteFile(dslPath, []byte(result.DSL), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dslPath, err)
		}
		a.logger.Info("Generated DSL written.", "path", dslPath)
	}

	if result.Drawing != nil {
		dxfPath := filepath.Join(appConfig.OutDir, result.Drawing.Filename)
		if err := os.WriteFile(dxfPath, result.Drawing.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dxfPath, err)
		}
		a.logger.Info("Drawing written.", "path", dxfPath, "size", result.Drawing.Size)
	}
	return nil
}

func (a *App) printSummary(result *pipeline.RunResult) {
	fmt.Fprintf(a.outW, "run %s (%s)\n", result.ID, result.Title)

	if !result.Validation.Valid {
		for _, msg := range result.Validation.Errors {
			fmt.Fprintf(a.outW, "  validation error: %s\n", msg)
		}
		return
	}
	if result.Translation == nil {
		return
	}

	s := result.Translation.Stats
	fmt.Fprintf(a.outW, "  statements: %d translated, %d skipped, %d errored (of %d)\n",
		s.Translated, s.Skipped, s.Errored, s.Total)
	for _, msg := range result.Translation.Errors {
		fmt.Fprintf(a.outW, "  error: %s\n", msg)
	}
	for _, msg := range result.Translation.Warnings {
		fmt.Fprintf(a.outW, "  warning: %s\n", msg)
	}
	if result.Drawing != nil {
		fmt.Fprintf(a.outW, "  drawing: %s (%d bytes)\n", result.Drawing.Filename, result.Drawing.Size)
	}
}
