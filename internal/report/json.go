package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/issuesreport/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is written to the "version" field when not empty.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the issuesreport version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the structured report in JSON format.
func (w *JSONWriter) Write(report *model.IssuesReport) (int, error) {
	doc := NewJSONReport(report)
	doc.Version = w.version
	return w.writeJSON(doc)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport is the structured form of an IssuesReport.
// It is a snapshot: building it copies everything it needs from the report.
type JSONReport struct {
	// Version is the issuesreport version that generated this report.
	Version string `json:"version,omitempty"`

	// Title is the report title, usually the project name.
	Title string `json:"title"`

	// Date is when the analysis ran.
	Date time.Time `json:"date"`

	// FilesAnalyzed is the number of files the engine analyzed.
	FilesAnalyzed int `json:"filesAnalyzed"`

	// Summary counts all issues by severity.
	Summary model.SeverityTally `json:"summary"`

	// Rules maps rule keys to rule names.
	Rules map[string]string `json:"rules"`

	// Files lists per-file breakdowns sorted by path.
	Files []JSONFileReport `json:"files"`
}

// JSONFileReport is the per-file part of a JSONReport.
type JSONFileReport struct {
	// Path is the file path; empty for project-level issues.
	Path string `json:"path"`

	// Summary counts the file's issues by severity.
	Summary model.SeverityTally `json:"summary"`

	// Issues lists the file's issues in arrival order.
	Issues []JSONIssue `json:"issues"`
}

// JSONIssue is an issue together with its identifier.
type JSONIssue struct {
	// ID is the issue identifier, see model.Issue.ID.
	ID string `json:"id"`

	model.Issue
}

// NewJSONReport builds the structured form of report.
func NewJSONReport(report *model.IssuesReport) *JSONReport {
	summary := report.Summary()
	doc := &JSONReport{
		Title:         report.Title(),
		Date:          report.Date(),
		FilesAnalyzed: report.FilesAnalyzed(),
		Summary:       summary.Tally,
		Rules:         summary.RuleNames(),
		Files:         make([]JSONFileReport, 0),
	}

	for _, fr := range report.ResourceReports() {
		file := JSONFileReport{
			Path:    fr.Path,
			Summary: fr.Tally,
			Issues:  make([]JSONIssue, 0, len(fr.Issues)),
		}
		for _, issue := range fr.Issues {
			file.Issues = append(file.Issues, JSONIssue{ID: issue.ID(), Issue: issue})
		}
		doc.Files = append(doc.Files, file)
	}

	return doc
}
