package harness

import (
	"fmt"
	"io"
	"sort"
	"time"
)

const timeUnit = time.Millisecond

// Write renders the report in a terminal-friendly layout: one line per
// case, then the totals and the error-category frequency table.
func (r *Report) Write(w io.Writer) error {
	for _, c := range r.Cases {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "%s  %-24s %s (%s)\n", status, c.Scenario.ID, c.Scenario.Name, c.Duration.Round(timeUnit)); err != nil {
			return err
		}
		for _, reason := range c.FailReasons {
			if _, err := fmt.Fprintf(w, "      - %s\n", reason); err != nil {
				return err
			}
		}
		for _, gap := range c.FeatureGaps {
			if _, err := fmt.Fprintf(w, "      note: %s\n", gap); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\n%d passed, %d failed (%s)\n", r.Passed, r.Failed, r.Duration.Round(timeUnit)); err != nil {
		return err
	}

	if len(r.ErrorCategories) > 0 {
		if _, err := fmt.Fprintln(w, "\nError categories:"); err != nil {
			return err
		}
		categories := make([]string, 0, len(r.ErrorCategories))
		for name := range r.ErrorCategories {
			categories = append(categories, name)
		}
		sort.Slice(categories, func(i, j int) bool {
			if r.ErrorCategories[categories[i]] != r.ErrorCategories[categories[j]] {
				return r.ErrorCategories[categories[i]] > r.ErrorCategories[categories[j]]
			}
			return categories[i] < categories[j]
		})
		for _, name := range categories {
			if _, err := fmt.Fprintf(w, "  %4d  %s\n", r.ErrorCategories[name], name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Success reports whether every case passed.
func (r *Report) Success() bool {
	return r.Failed == 0
}
