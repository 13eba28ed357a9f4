package translate

import (
	"context"
	"fmt"

	"github.com/liscad/liscad/internal/ctxlog"
	"github.com/liscad/liscad/internal/dsl"
	"github.com/liscad/liscad/internal/emit"
)

// Stats counts the fate of every statement in a run.
type Stats struct {
	Total      int
	Translated int
	Skipped    int
	Errored    int
}

// Result is the outcome of one translation run. Success is true iff Errors
// is empty, regardless of warnings.
type Result struct {
	Code     string
	Success  bool
	Errors   []string
	Warnings []string
	Stats    Stats
}

// Options configures a translation run.
type Options struct {
	// Mode selects lenient or strict handling of unparseable lines.
	Mode dsl.Mode
	// Title names the drawing in the closing save call.
	Title string
}

// Document parses a DSL document and translates it in one call.
func Document(ctx context.Context, input string, opts Options) *Result {
	commands, issues := dsl.Parse(ctx, input, opts.Mode)
	res := Commands(ctx, commands, opts.Title)

	if len(issues) > 0 {
		// Strict mode: dropped lines become visible errors. Lenient mode
		// never produces issues, so this is a no-op there.
		parseErrs := make([]string, len(issues))
		for i, issue := range issues {
			parseErrs[i] = issue.Error()
		}
		res.Errors = append(parseErrs, res.Errors...)
		res.Success = false
	}
	return res
}

// Commands folds an ordered command sequence into a Result. Each statement
// translates independently against the shared per-run State: failures are
// collected and counted, unknown commands are skipped with a warning, and
// translation always continues to the next statement.
func Commands(ctx context.Context, commands []dsl.Command, title string) *Result {
	logger := ctxlog.FromContext(ctx)

	state := NewState()
	res := &Result{}
	blocks := make([]string, 0, len(commands))

	for _, cmd := range commands {
		res.Stats.Total++

		kind := KindOf(cmd.Name)
		if kind == KindUnknown {
			res.Stats.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped unsupported command: %s", cmd.Name))
			logger.Debug("Skipped unsupported command.", "command", cmd.Name)
			continue
		}

		block, err := handlers[kind](cmd, &state)
		if err != nil {
			res.Stats.Errored++
			res.Errors = append(res.Errors, err.Error())
			logger.Debug("Statement failed to translate.", "command", cmd.Name, "error", err)
			continue
		}

		res.Stats.Translated++
		blocks = append(blocks, block)
	}

	res.Code = emit.Document(blocks, title)
	res.Success = len(res.Errors) == 0

	logger.Debug("Translation run finished.",
		"total", res.Stats.Total,
		"translated", res.Stats.Translated,
		"skipped", res.Stats.Skipped,
		"errored", res.Stats.Errored,
	)
	return res
}
