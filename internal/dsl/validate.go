package dsl

import "strings"

// Validation is the outcome of the structural pre-flight check.
type Validation struct {
	Valid  bool
	Errors []string
}

// drawingMarkers are the substrings whose presence means the document draws
// something at all.
var drawingMarkers = []string{"line", "circle", "rectangle", "arc"}

// CheckStructure performs the cheap, line-oriented pre-flight check: net
// parenthesis balance across all non-comment, non-blank lines, and the
// presence of at least one drawing command substring. It is a syntactic
// heuristic, not a parse — parentheses inside quoted strings are counted
// like any other character. It is advisory and does not replace the
// per-statement error handling of the translator.
func CheckStructure(input string) Validation {
	balance := 0
	hasDrawing := false

	for _, rawLine := range strings.Split(input, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		balance += strings.Count(line, "(") - strings.Count(line, ")")
		if !hasDrawing {
			for _, marker := range drawingMarkers {
				if strings.Contains(line, marker) {
					hasDrawing = true
					break
				}
			}
		}
	}

	var errs []string
	if balance != 0 {
		errs = append(errs, "unbalanced parentheses")
	}
	if !hasDrawing {
		errs = append(errs, "no drawing commands found")
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
