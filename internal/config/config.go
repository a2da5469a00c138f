package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "issuesreport"

	// DefaultInputFormat detects each input's format from its name and content.
	DefaultInputFormat = "auto"

	// DefaultPadWidth is the number of spaces written before each count in
	// the console report.
	DefaultPadWidth = 10

	// DefaultConcurrency of 4 decodes a handful of inputs in parallel
	// without holding many large documents in memory at once.
	DefaultConcurrency = 4

	// DeriveFilesAnalyzed means the files analyzed count is summed from
	// the inputs rather than fixed by the user.
	DeriveFilesAnalyzed = -1
)

// stdinInput is the input name that reads standard input.
const stdinInput = "-"

// inputFormats lists the accepted InputFormat values.
var inputFormats = []string{"auto", "json", "sarif"}

// Config holds all configuration options for issuesreport.
// This struct is populated from CLI flags and the optional configuration
// file, and passed through the application rather than kept as global state.
type Config struct {
	// Inputs are the analysis result files to read. "-" reads stdin.
	Inputs []string

	// InputFormat is the format of the inputs: auto, json or sarif.
	InputFormat string

	// Title is the report title, usually the project name.
	Title string

	// FilesAnalyzed fixes the number of files analyzed.
	// DeriveFilesAnalyzed sums the counts found in the inputs.
	FilesAnalyzed int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON writes logs as JSON lines instead of text.
	LogJSON bool

	// Concurrency is the number of inputs decoded at once.
	Concurrency int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .issuesreport in the current
	// directory, the XDG config directory and the home directory.
	ConfigFilePath string

	// File holds the settings loaded from the configuration file.
	File *File

	// JSONReport enables the structured JSON report.
	// Mutually exclusive with MarkdownReport and TableReport.
	JSONReport bool

	// MarkdownReport enables GitHub Flavored Markdown output with tables,
	// alerts and a pie chart.
	// Mutually exclusive with JSONReport and TableReport.
	MarkdownReport bool

	// TableReport enables the per-file table.
	// Mutually exclusive with JSONReport and MarkdownReport.
	TableReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// PadWidth is the number of spaces before each count in the console report.
	PadWidth int

	// Color enables ANSI colors in the table report.
	Color bool

	// Summary also writes the console summary to stderr when another
	// format is selected.
	Summary bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		InputFormat:   DefaultInputFormat,
		FilesAnalyzed: DeriveFilesAnalyzed,
		Concurrency:   DefaultConcurrency,
		PadWidth:      DefaultPadWidth,
		File:          NewFile(),
	}
}

// XDGConfigDir returns the XDG config directory for issuesreport.
// On Linux: ~/.config/issuesreport
// On macOS: ~/Library/Application Support/issuesreport
// On Windows: %APPDATA%\issuesreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Only the first error found is returned.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	stdin := 0
	for _, input := range c.Inputs {
		if input == stdinInput {
			stdin++
		}
	}
	if stdin > 1 {
		return ErrStdinReadTwice
	}

	if !slices.Contains(inputFormats, strings.ToLower(strings.TrimSpace(c.InputFormat))) {
		return ErrInvalidInputFormat
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.PadWidth < 0 {
		return ErrInvalidPadWidth
	}

	if c.FilesAnalyzed < DeriveFilesAnalyzed {
		return ErrInvalidFilesAnalyzed
	}

	if c.reportFormatCount() > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}

// reportFormatCount returns how many alternative report formats are enabled.
func (c *Config) reportFormatCount() int {
	n := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.TableReport} {
		if enabled {
			n++
		}
	}
	return n
}
