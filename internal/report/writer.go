package report

import (
	"io"

	"github.com/nao1215/issuesreport/internal/model"
)

// Writer defines the interface for report output.
// Implementations render an aggregated IssuesReport in some format.
type Writer interface {
	// Write renders the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.IssuesReport) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// This is useful for outputting to both terminal and file.
//
// Writing stops at the first failing writer.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.IssuesReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// projectLabel is shown instead of an empty path for project-level issues.
const projectLabel = "(project)"

// displayPath returns the path shown to users for a FileReport key.
func displayPath(path string) string {
	if path == model.NoFilePath {
		return projectLabel
	}
	return path
}

// displayLine returns the line shown to users, "-" when absent.
func displayLine(issue model.Issue) string {
	if !issue.HasLine() {
		return "-"
	}
	return itoa(issue.StartLine)
}
