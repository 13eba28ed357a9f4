package dsl

import (
	"context"
	"fmt"
	"strings"

	"github.com/liscad/liscad/internal/ctxlog"
)

// Command is one parsed statement: the lowercased command name, its ordered
// positional parameters as raw tokens, and the original source line.
type Command struct {
	Name   string
	Params []string
	Source string
}

// Mode controls how the parser reports lines it cannot turn into a Command.
type Mode int

const (
	// ModeLenient drops unparseable lines after logging them, tolerating
	// noise from the upstream generator.
	ModeLenient Mode = iota
	// ModeStrict records every dropped line as a ParseIssue so the caller
	// can surface it to the user.
	ModeStrict
)

// ParseIssue describes a line the parser could not turn into a Command.
type ParseIssue struct {
	Line   int // 1-based line number in the input document
	Source string
	Reason string
}

// Error renders the issue in the "<category>: <detail>" shape used by every
// diagnostic in the pipeline.
func (i ParseIssue) Error() string {
	return fmt.Sprintf("parse: line %d: %s", i.Line, i.Reason)
}

// Parse consumes a DSL document line by line and returns the ordered Command
// sequence. Blank lines and ';' comments are skipped. Parse never fails as a
// whole: malformed lines are dropped, and in ModeStrict each drop is also
// returned as a ParseIssue.
func Parse(ctx context.Context, input string, mode Mode) ([]Command, []ParseIssue) {
	logger := ctxlog.FromContext(ctx)

	var commands []Command
	var issues []ParseIssue

	for n, rawLine := range strings.Split(input, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		tokens := Tokenize(line)
		if len(tokens) == 0 {
			issue := ParseIssue{Line: n + 1, Source: line, Reason: "statement has no tokens"}
			logger.Warn("Dropping unparseable DSL line.", "line", issue.Line, "source", line)
			if mode == ModeStrict {
				issues = append(issues, issue)
			}
			continue
		}

		commands = append(commands, Command{
			Name:   strings.ToLower(tokens[0]),
			Params: tokens[1:],
			Source: line,
		})
	}

	logger.Debug("DSL document parsed.", "commands", len(commands), "dropped", len(issues))
	return commands, issues
}
