package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/issuesreport/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and documentation.
type MarkdownWriter struct {
	baseWriter

	// maxIssues is the issue count above which individual issues are not
	// listed; only per-file tallies are written.
	maxIssues int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMaxListedIssues overrides model.TooManyIssuesThreshold.
func WithMaxListedIssues(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if n >= 0 {
			w.maxIssues = n
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		maxIssues:  model.TooManyIssuesThreshold,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.IssuesReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFiles(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.IssuesReport) {
	title := "Issues Report"
	if report.Title() != "" {
		title += ": " + report.Title()
	}
	md.H1(title)
	md.PlainText("")

	date := "-"
	if !report.Date().IsZero() {
		date = report.Date().Format("2006-01-02 15:04:05 MST")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Analysis Date", date},
			{"Files Analyzed", strconv.Itoa(report.FilesAnalyzed())},
			{"Files With Issues", strconv.Itoa(len(report.ResourcesWithReport()))},
			{"Issues", strconv.Itoa(report.Tally().Total)},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity table, chart, and alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.IssuesReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	tally := report.Tally()
	rows := make([][]string, 0, len(model.Severities())+1)
	for _, severity := range model.Severities() {
		rows = append(rows, []string{
			severityIcon(severity) + " " + severityTitle(severity),
			strconv.Itoa(tally.Count(severity)),
		})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(tally.Total) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if !tally.IsEmpty() {
		w.writePieChart(md, tally)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, tally model.SeverityTally) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Severity Distribution"),
		piechart.WithShowData(true),
	)

	for _, severity := range model.Severities() {
		if count := tally.Count(severity); count > 0 {
			chart.LabelAndIntValue(severityTitle(severity), uint64(count)) //nolint:gosec // counts are never negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the most severe level present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.IssuesReport) {
	tally := report.Tally()
	switch {
	case report.NoFiles():
		md.Note("No files analyzed.")
	case tally.Blocker > 0:
		md.Cautionf("%d blocker issue(s) must be fixed before release.", tally.Blocker)
	case tally.Critical > 0:
		md.Warningf("%d critical issue(s) should be reviewed.", tally.Critical)
	case tally.Major > 0:
		md.Importantf("%d major issue(s) found.", tally.Major)
	case !tally.IsEmpty():
		md.Note("Only minor and informational issues found.")
	default:
		md.Tip("No issues to display.")
	}
	md.PlainText("")
}

// writeFiles writes the per-file breakdown.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, report *model.IssuesReport) {
	md.H2("Files")
	md.PlainText("")

	files := report.ResourceReports()
	if len(files) == 0 {
		md.PlainText("No file has issues.")
		md.PlainText("")
		return
	}

	if report.Tally().Total > w.maxIssues {
		md.Note(fmt.Sprintf("%d issues exceed the listing limit of %d; showing per-file counts only.",
			report.Tally().Total, w.maxIssues))
		md.PlainText("")
		w.writeFileTallies(md, files)
		return
	}

	for _, fr := range files {
		md.H3("`" + displayPath(fr.Path) + "`")
		md.PlainText("")
		w.writeIssuesTable(md, report, fr)
	}
}

// writeFileTallies writes one table row per file.
func (w *MarkdownWriter) writeFileTallies(md *markdown.Markdown, files []model.FileReport) {
	header := []string{"File"}
	for _, severity := range model.Severities() {
		header = append(header, severityTitle(severity))
	}
	header = append(header, "Total")

	rows := make([][]string, len(files))
	for i, fr := range files {
		row := []string{"`" + displayPath(fr.Path) + "`"}
		for _, severity := range model.Severities() {
			row = append(row, strconv.Itoa(fr.Tally.Count(severity)))
		}
		rows[i] = append(row, strconv.Itoa(fr.Tally.Total))
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeIssuesTable writes the issues of one file.
func (w *MarkdownWriter) writeIssuesTable(md *markdown.Markdown, report *model.IssuesReport, fr model.FileReport) {
	rows := make([][]string, len(fr.Issues))
	for i, issue := range fr.Issues {
		name, ok := report.RuleName(issue.RuleKey)
		if !ok || name == "" {
			name = issue.RuleKey
		}
		message := issue.Message
		if message == "" {
			message = "-"
		}
		rows[i] = []string{
			displayLine(issue),
			severityIcon(issue.Severity) + " " + severityTitle(issue.Severity),
			"`" + issue.RuleKey + "`",
			name,
			truncateString(message, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Line", "Severity", "Rule", "Name", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by issuesreport*")
}

// severityTitle returns the severity label in title case (e.g. "Blocker").
func severityTitle(s model.Severity) string {
	return cases.Title(language.English).String(s.Label())
}

// severityIcon returns an emoji marker for the severity level.
func severityIcon(s model.Severity) string {
	switch s {
	case model.SeverityBlocker:
		return "🔴"
	case model.SeverityCritical:
		return "🟠"
	case model.SeverityMajor:
		return "🟡"
	case model.SeverityMinor:
		return "🔵"
	case model.SeverityInfo:
		return "⚪"
	default:
		return "❔"
	}
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}
