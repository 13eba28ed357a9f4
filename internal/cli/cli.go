package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/liscad/liscad/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("liscad", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
LisCAD - translates a Lisp-style drafting DSL into executable ezdxf code.

Usage:
  liscad [options] [DSL_PATH]

Arguments:
  DSL_PATH
    Path to a DSL document to translate. Equivalent to -file.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("file", "", "Path to a DSL document to translate.")
	fFlag := flagSet.String("f", "", "Path to a DSL document to translate (shorthand).")
	reqFlag := flagSet.String("requirement", "", "Free-text drawing requirement to generate DSL from.")
	rFlag := flagSet.String("r", "", "Free-text drawing requirement (shorthand).")
	titleFlag := flagSet.String("title", "drawing", "Drawing title, used for output filenames.")
	outFlag := flagSet.String("out", ".", "Directory for emitted code and drawings.")
	executeFlag := flagSet.Bool("execute", false, "Send the emitted code to the drawing backend and save the DXF.")
	selfTestFlag := flagSet.Bool("selftest", false, "Run the scripted scenario harness and report.")
	scenariosFlag := flagSet.String("scenarios", "", "Directory of .hcl scenario files for -selftest. Empty uses the built-in set.")
	strictFlag := flagSet.Bool("strict", false, "Reject documents containing malformed statements instead of dropping them.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	filePath := ""
	if *fileFlag != "" {
		filePath = *fileFlag
	} else if *fFlag != "" {
		filePath = *fFlag
	} else if flagSet.NArg() > 0 {
		filePath = flagSet.Arg(0)
	}

	requirement := *reqFlag
	if requirement == "" {
		requirement = *rFlag
	}

	if filePath == "" && requirement == "" && !*selfTestFlag {
		slog.Debug("No mode selected, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		FilePath:      filePath,
		Requirement:   requirement,
		SelfTest:      *selfTestFlag,
		Title:         *titleFlag,
		OutDir:        *outFlag,
		ScenariosPath: *scenariosFlag,
		Execute:       *executeFlag,
		Strict:        *strictFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
