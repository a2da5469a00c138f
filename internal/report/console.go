package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/issuesreport/internal/model"
)

const (
	// ConsoleHeader is the banner line that opens the console report.
	ConsoleHeader = "-------------  Issues Report  -------------"

	// ConsoleFooter is the banner line that closes the console report.
	ConsoleFooter = "-------------------------------------------"

	// DefaultPadWidth is the number of spaces written before each count.
	DefaultPadWidth = 10
)

// ConsoleWriter outputs the fixed-format text summary: total issue count,
// files analyzed, and one line per severity level that has issues.
// The layout is stable; scripts match it.
type ConsoleWriter struct {
	baseWriter

	// padWidth is the number of spaces written before each count.
	padWidth int
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithPadWidth sets the number of spaces written before each count.
// Negative values are ignored.
func WithPadWidth(width int) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		if width >= 0 {
			w.padWidth = width
		}
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		padWidth:   DefaultPadWidth,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the report and writes it to the output.
// A report with issues but no files analyzed is rejected with
// model.ErrIssuesWithoutFiles and nothing is written.
func (w *ConsoleWriter) Write(report *model.IssuesReport) (int, error) {
	text, err := w.Render(report)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w.output, text)
}

// Render returns the console text for the report.
// It reads the report only, so rendering twice yields identical text.
func (w *ConsoleWriter) Render(report *model.IssuesReport) (string, error) {
	if err := report.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString(ConsoleHeader)
	sb.WriteString("\n\n")

	switch {
	case report.NoFiles():
		sb.WriteString("No files analyzed\n")
	case report.NoIssues():
		sb.WriteString("No issues to display (")
		sb.WriteString(itoa(report.FilesAnalyzed()))
		sb.WriteString(" files analyzed)\n")
	default:
		w.writeIssues(&sb, report.Tally(), report.FilesAnalyzed())
	}

	sb.WriteString("\n")
	sb.WriteString(ConsoleFooter)
	sb.WriteString("\n")

	return sb.String(), nil
}

// Render returns the console text for the report with default settings.
func Render(report *model.IssuesReport) (string, error) {
	return NewConsoleWriter(io.Discard).Render(report)
}

// writeIssues writes the total line and the per-severity lines.
func (w *ConsoleWriter) writeIssues(sb *strings.Builder, tally model.SeverityTally, filesAnalyzed int) {
	sb.WriteString(w.pad(tally.Total))
	sb.WriteString(" issue")
	if tally.Total > 1 {
		sb.WriteString("s")
	}
	sb.WriteString(" (")
	sb.WriteString(itoa(filesAnalyzed))
	sb.WriteString(" files analyzed)\n\n")

	for _, severity := range model.Severities() {
		count := tally.Count(severity)
		if count == 0 {
			continue
		}
		sb.WriteString(w.pad(count))
		sb.WriteString(" ")
		sb.WriteString(severity.Label())
		sb.WriteString("\n")
	}
}

// pad returns the count preceded by padWidth spaces.
func (w *ConsoleWriter) pad(count int) string {
	return strings.Repeat(" ", w.padWidth) + itoa(count)
}

// itoa formats an int in base 10.
func itoa(n int) string {
	return strconv.Itoa(n)
}
