package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/nao1215/issuesreport/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// TableWriter outputs a per-file breakdown as a terminal table: one row
// per file with a column per severity level, followed by a one-line total.
type TableWriter struct {
	baseWriter

	// useColors enables ANSI colors for non-zero blocker and critical counts.
	useColors bool

	// maxPathWidth limits the File column; 0 means no limit.
	maxPathWidth int
}

// TableWriterOption configures a TableWriter.
type TableWriterOption func(*TableWriter)

// WithColors enables ANSI colors in table cells.
func WithColors(enabled bool) TableWriterOption {
	return func(w *TableWriter) {
		w.useColors = enabled
	}
}

// WithMaxPathWidth truncates paths longer than width, keeping their end.
// Zero or a negative width disables truncation.
func WithMaxPathWidth(width int) TableWriterOption {
	return func(w *TableWriter) {
		w.maxPathWidth = max(width, 0)
	}
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, opts ...TableWriterOption) *TableWriter {
	w := &TableWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the table. Counts are written through a counting writer so
// the returned byte count covers the table and the total line.
func (w *TableWriter) Write(report *model.IssuesReport) (int, error) {
	cw := &countingWriter{w: w.output}

	if err := w.writeTable(cw, report); err != nil {
		return cw.n, err
	}

	tally := report.Tally()
	plural := "s"
	if tally.Total == 1 {
		plural = ""
	}
	if _, err := fmt.Fprintf(cw, "%d issue%s in %d file(s) (%d files analyzed)\n",
		tally.Total, plural, len(report.ResourcesWithReport()), report.FilesAnalyzed()); err != nil {
		return cw.n, err
	}

	return cw.n, nil
}

// writeTable writes the per-file rows.
func (w *TableWriter) writeTable(out io.Writer, report *model.IssuesReport) error {
	table := tablewriter.NewWriter(out)
	defer func() { _ = table.Close() }()

	headers := []string{"File"}
	for _, severity := range model.Severities() {
		headers = append(headers, severityTitle(severity))
	}
	headers = append(headers, "Total")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var red, yellow func(...any) string
	if w.useColors {
		// Colors were asked for explicitly, so they apply even when the
		// output is not a terminal.
		redColor := color.New(color.FgRed, color.Bold)
		redColor.EnableColor()
		yellowColor := color.New(color.FgYellow)
		yellowColor.EnableColor()
		red = redColor.SprintFunc()
		yellow = yellowColor.SprintFunc()
	} else {
		red = fmt.Sprint
		yellow = fmt.Sprint
	}

	var data [][]string
	for _, fr := range report.ResourceReports() {
		row := []string{truncatePath(displayPath(fr.Path), w.maxPathWidth)}
		for _, severity := range model.Severities() {
			cell := strconv.Itoa(fr.Tally.Count(severity))
			if fr.Tally.Count(severity) > 0 {
				switch severity {
				case model.SeverityBlocker:
					cell = red(cell)
				case model.SeverityCritical:
					cell = yellow(cell)
				}
			}
			row = append(row, cell)
		}
		row = append(row, strconv.Itoa(fr.Tally.Total))
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// truncatePath shortens path to width runes by replacing its start with
// "...". The end of a path names the file, so it is kept.
func truncatePath(path string, width int) string {
	runes := []rune(path)
	if width <= 0 || len(runes) <= width {
		return path
	}
	if width <= 3 {
		return string(runes[len(runes)-width:])
	}
	return "..." + string(runes[len(runes)-width+3:])
}

// countingWriter counts bytes written to w.
type countingWriter struct {
	w io.Writer
	n int
}

// Write implements io.Writer.
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
