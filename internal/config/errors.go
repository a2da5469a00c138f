package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Validate().
//
// Callers match them with errors.Is.
var (
	// ErrNoInput is returned when no input file is specified.
	ErrNoInput = errors.New("no input specified: provide one or more result files, or - for stdin")

	// ErrStdinReadTwice is returned when "-" is given more than once.
	ErrStdinReadTwice = errors.New("stdin (-) can only be used as one input")

	// ErrInvalidInputFormat is returned for an input format other than
	// auto, json or sarif.
	ErrInvalidInputFormat = errors.New("invalid input format: must be auto, json or sarif")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidPadWidth is returned when the pad width is negative.
	ErrInvalidPadWidth = errors.New("invalid pad width: must be non-negative")

	// ErrInvalidFilesAnalyzed is returned when a fixed files analyzed count
	// is negative.
	ErrInvalidFilesAnalyzed = errors.New("invalid files analyzed: must be non-negative")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --table is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown and --table cannot be used together")

	// ErrInvalidRuleSeverity is returned when the configuration file names
	// a severity that does not exist.
	ErrInvalidRuleSeverity = errors.New("invalid severity in configuration file")
)
