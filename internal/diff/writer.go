package diff

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/issuesreport/internal/model"
	"github.com/nao1215/markdown"
)

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// WriteText writes the result in a human-readable text format.
func WriteText(w io.Writer, result *Result) error {
	var sb strings.Builder

	sb.WriteString("Issues Comparison")
	if result.Current.Title != "" {
		sb.WriteString(": " + result.Current.Title)
	}
	sb.WriteString("\n" + strings.Repeat("=", 60) + "\n")

	fmt.Fprintf(&sb, "\nStatus: %s\n", FormatDirection(result.Delta.Direction))

	sb.WriteString("\nIssues Summary:\n")
	fmt.Fprintf(&sb, "  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Baseline", "Current", "Change")
	sb.WriteString("  " + strings.Repeat("-", 45) + "\n")
	for _, severity := range model.Severities() {
		fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", severity.String(),
			result.Baseline.Tally.Count(severity), result.Current.Tally.Count(severity),
			FormatDelta(result.Delta.Count(severity)))
	}
	sb.WriteString("  " + strings.Repeat("-", 45) + "\n")
	fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", "TOTAL",
		result.Baseline.Tally.Total, result.Current.Tally.Total, FormatDelta(result.Delta.Total))

	if len(result.NewIssues) > 0 {
		fmt.Fprintf(&sb, "\nNew Issues (%d):\n", len(result.NewIssues))
		for _, issue := range result.NewIssues {
			fmt.Fprintf(&sb, "  [+] [%s] %s %s\n", issue.Severity, issue.RuleKey, location(issue))
			if issue.Message != "" {
				fmt.Fprintf(&sb, "      %s\n", issue.Message)
			}
		}
	}

	if len(result.FixedIssues) > 0 {
		fmt.Fprintf(&sb, "\nFixed Issues (%d):\n", len(result.FixedIssues))
		for _, issue := range result.FixedIssues {
			fmt.Fprintf(&sb, "  [-] [%s] %s %s\n", issue.Severity, issue.RuleKey, location(issue))
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(&sb, "\nUnchanged: %d issues\n", result.UnchangedCount)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteMarkdown writes the result as GitHub Flavored Markdown.
func WriteMarkdown(w io.Writer, result *Result) error {
	md := markdown.NewMarkdown(w)

	title := "Issues Comparison"
	if result.Current.Title != "" {
		title += ": " + result.Current.Title
	}
	md.H1(title)
	md.PlainText("")

	switch result.Delta.Direction {
	case DirectionWorsened:
		md.Caution(FormatDirection(result.Delta.Direction))
	case DirectionImproved:
		md.Tip(FormatDirection(result.Delta.Direction))
	default:
		md.Note(FormatDirection(result.Delta.Direction))
	}
	md.PlainText("")

	rows := make([][]string, 0, len(model.Severities())+2)
	rows = append(rows, []string{"Files Analyzed",
		strconv.Itoa(result.Baseline.FilesAnalyzed),
		strconv.Itoa(result.Current.FilesAnalyzed),
		FormatDelta(result.Current.FilesAnalyzed - result.Baseline.FilesAnalyzed)})
	for _, severity := range model.Severities() {
		rows = append(rows, []string{severity.String(),
			strconv.Itoa(result.Baseline.Tally.Count(severity)),
			strconv.Itoa(result.Current.Tally.Count(severity)),
			FormatDelta(result.Delta.Count(severity))})
	}
	rows = append(rows, []string{"**Total**",
		"**" + strconv.Itoa(result.Baseline.Tally.Total) + "**",
		"**" + strconv.Itoa(result.Current.Tally.Total) + "**",
		"**" + FormatDelta(result.Delta.Total) + "**"})

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Baseline", "Current", "Change"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(result.NewIssues) > 0 {
		md.H2f("New Issues (%d)", len(result.NewIssues))
		md.PlainText("")
		items := make([]string, 0, len(result.NewIssues))
		for _, issue := range result.NewIssues {
			items = append(items, fmt.Sprintf("**[%s]** `%s` %s %s",
				issue.Severity, issue.RuleKey, location(issue), issue.Message))
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if len(result.FixedIssues) > 0 {
		md.H2f("Fixed Issues (%d)", len(result.FixedIssues))
		md.PlainText("")
		items := make([]string, 0, len(result.FixedIssues))
		for _, issue := range result.FixedIssues {
			items = append(items, fmt.Sprintf("~~**[%s]** `%s` %s~~",
				issue.Severity, issue.RuleKey, location(issue)))
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if result.UnchangedCount > 0 {
		md.HorizontalRule()
		md.PlainTextf("*%d issues unchanged*", result.UnchangedCount)
	}

	return md.Build()
}

// FormatDirection formats a direction for display.
func FormatDirection(direction Direction) string {
	switch direction {
	case DirectionImproved:
		return "IMPROVED (weighted issue score decreased)"
	case DirectionWorsened:
		return "WORSENED (weighted issue score increased)"
	default:
		return "UNCHANGED"
	}
}

// FormatDelta formats a numeric delta with sign for display.
func FormatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

// location renders "path:line", using "(project)" for project issues.
func location(issue model.Issue) string {
	path := issue.FilePath
	if model.NormalizePath(path) == model.NoFilePath {
		path = "(project)"
	}
	if issue.HasLine() {
		return path + ":" + strconv.Itoa(issue.StartLine)
	}
	return path
}
