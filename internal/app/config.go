package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FilePath    string // existing DSL file to translate
	Requirement string // free-text requirement to generate DSL from
	SelfTest    bool   // run the scripted scenario harness instead

	Title         string
	OutDir        string
	ScenariosPath string // extra .hcl scenario files for -selftest
	Execute       bool   // ship emitted code to the drawing backend
	Strict        bool   // reject documents containing malformed statements

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	modes := 0
	if cfg.FilePath != "" {
		modes++
	}
	if cfg.Requirement != "" {
		modes++
	}
	if cfg.SelfTest {
		modes++
	}
	if modes == 0 {
		return nil, errors.New("one of a DSL file, a requirement, or -selftest is required")
	}
	if modes > 1 {
		return nil, errors.New("a DSL file, a requirement, and -selftest are mutually exclusive")
	}

	if cfg.ScenariosPath != "" && !cfg.SelfTest {
		return nil, errors.New("-scenarios only applies with -selftest")
	}
	if cfg.Execute && cfg.SelfTest {
		return nil, errors.New("-execute does not apply to -selftest runs")
	}

	if cfg.Title == "" {
		cfg.Title = "drawing"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}

	return &cfg, nil
}
