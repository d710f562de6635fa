package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Marohn-Group/mrfmsim-yaml/internal/app"
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
	flagSet := flag.NewFlagSet("mrfmsim-yaml", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
mrfmsim-yaml - Load, validate and canonically re-emit experiment configuration files.

Usage:
  mrfmsim-yaml [options] CONFIG_PATH

Arguments:
  CONFIG_PATH
    Path to a single .yaml file or a directory containing .yaml files.

Options:
`)
		flagSet.PrintDefaults()
	}

	checkFlag := flagSet.Bool("check", false, "Verify that every file round-trips to its canonical form.")
	writeFlag := flagSet.Bool("write", false, "Rewrite files in canonical form instead of printing.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	path := flagSet.Arg(0)

	if *checkFlag && *writeFlag {
		return nil, false, &ExitError{Code: 2, Message: "-check and -write are mutually exclusive"}
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

	return &app.Config{
		Path:      path,
		Check:     *checkFlag,
		Write:     *writeFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}, false, nil
}
