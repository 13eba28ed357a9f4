// Package harness runs the scripted end-to-end scenarios: natural-language
// requirement → DSL generation → translation → structural feature checks,
// with an aggregate report of pass/fail counts and error-category
// frequencies. The scenario catalogue is data: a hand-authored set embedded
// in the binary, overridable by a directory of .hcl files.
package harness

import (
	"context"
	"embed"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/liscad/liscad/internal/ctxlog"
	"github.com/liscad/liscad/internal/fsutil"
	"github.com/liscad/liscad/internal/generator"
)

//go:embed scenarios/*.hcl
var embeddedScenarios embed.FS

// Features is the structural feature record derived from one run's DSL and
// emitted code.
type Features struct {
	DrawingCommands bool
	Layers          bool
	Dimensions      bool
	Text            bool
	SyntaxValid     bool
}

// Scenario is one hand-authored catalogue entry.
type Scenario struct {
	ID          string
	Name        string
	Requirement string
	Expect      Features
	// Settings are the drawing settings for this scenario, already merged
	// over the catalogue-wide base.
	Settings generator.Settings
}

// hclScenarioFile mirrors the top-level structure of a catalogue file.
type hclScenarioFile struct {
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclScenario struct {
	ID          string            `hcl:"id,label"`
	Name        string            `hcl:"name"`
	Requirement string            `hcl:"requirement"`
	Expect      *hclExpectBlock   `hcl:"expect,block"`
	Settings    *hclSettingsBlock `hcl:"settings,block"`
}

type hclExpectBlock struct {
	DrawingCommands bool `hcl:"drawing_commands,optional"`
	Layers          bool `hcl:"layers,optional"`
	Dimensions      bool `hcl:"dimensions,optional"`
	Text            bool `hcl:"text,optional"`
	SyntaxValid     bool `hcl:"syntax_valid,optional"`
}

type hclSettingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// DefaultCatalogue returns the embedded scenario set merged over the given
// base settings.
func DefaultCatalogue(base generator.Settings) ([]Scenario, error) {
	entries, err := embeddedScenarios.ReadDir("scenarios")
	if err != nil {
		return nil, fmt.Errorf("catalogue: read embedded scenarios: %w", err)
	}

	parser := hclparse.NewParser()
	var scenarios []Scenario
	for _, entry := range entries {
		src, err := embeddedScenarios.ReadFile("scenarios/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("catalogue: read %s: %w", entry.Name(), err)
		}
		parsed, err := parseCatalogueFile(parser, entry.Name(), src, base)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, parsed...)
	}
	return scenarios, nil
}

// LoadCatalogue parses every .hcl file under path into scenarios, merged
// over the given base settings.
func LoadCatalogue(ctx context.Context, path string, base generator.Settings) ([]Scenario, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("catalogue: find scenario files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("catalogue: no .hcl scenario files found in %s", path)
	}

	parser := hclparse.NewParser()
	var scenarios []Scenario
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("catalogue: parse %s: %w", file, diags)
		}
		parsed, err := decodeCatalogueBody(hclFile.Body, file, base)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, parsed...)
	}

	logger.Debug("Scenario catalogue loaded.", "path", path, "scenarios", len(scenarios))
	return scenarios, nil
}

func parseCatalogueFile(parser *hclparse.Parser, name string, src []byte, base generator.Settings) ([]Scenario, error) {
	hclFile, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("catalogue: parse %s: %w", name, diags)
	}
	return decodeCatalogueBody(hclFile.Body, name, base)
}

func decodeCatalogueBody(body hcl.Body, name string, base generator.Settings) ([]Scenario, error) {
	var file hclScenarioFile
	if diags := gohcl.DecodeBody(body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("catalogue: decode %s: %w", name, diags)
	}

	scenarios := make([]Scenario, 0, len(file.Scenarios))
	for _, s := range file.Scenarios {
		scenario := Scenario{
			ID:          s.ID,
			Name:        s.Name,
			Requirement: s.Requirement,
			Settings:    base,
		}
		if s.Expect != nil {
			scenario.Expect = Features{
				DrawingCommands: s.Expect.DrawingCommands,
				Layers:          s.Expect.Layers,
				Dimensions:      s.Expect.Dimensions,
				Text:            s.Expect.Text,
				SyntaxValid:     s.Expect.SyntaxValid,
			}
		}
		if s.Settings != nil {
			merged, err := applySettingsOverrides(scenario.Settings, s.Settings.Body)
			if err != nil {
				return nil, fmt.Errorf("catalogue: scenario %q in %s: %w", s.ID, name, err)
			}
			scenario.Settings = merged
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
