package diff

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/issuesreport/internal/model"
)

// newReport builds a report with the given issues and files analyzed count.
func newReport(t *testing.T, filesAnalyzed int, issues ...model.Issue) *model.IssuesReport {
	t.Helper()

	report := model.NewIssuesReport("project", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err := report.AddIssues(issues...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := report.SetFilesAnalyzed(filesAnalyzed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return report
}

// issue builds an issue with the given severity and location.
func issue(severity model.Severity, rule, path string, line int) model.Issue {
	return model.Issue{
		Severity:  severity,
		RuleKey:   rule,
		RuleName:  "Rule " + rule,
		FilePath:  path,
		StartLine: line,
		Message:   "message for " + rule,
	}
}

// TestCompare tests matching issues between two reports.
func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("new fixed and unchanged issues", func(t *testing.T) {
		t.Parallel()

		baseline := newReport(t, 3,
			issue(model.SeverityMajor, "go:S1", "a.go", 1),
			issue(model.SeverityMinor, "go:S2", "b.go", 2),
		)
		current := newReport(t, 3,
			issue(model.SeverityMajor, "go:S1", "a.go", 1),
			issue(model.SeverityBlocker, "go:S3", "c.go", 3),
		)

		result := Compare(baseline, current)

		if len(result.NewIssues) != 1 || result.NewIssues[0].RuleKey != "go:S3" {
			t.Errorf("unexpected new issues: %+v", result.NewIssues)
		}
		if len(result.FixedIssues) != 1 || result.FixedIssues[0].RuleKey != "go:S2" {
			t.Errorf("unexpected fixed issues: %+v", result.FixedIssues)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("expected 1 unchanged issue, got %d", result.UnchangedCount)
		}
		if result.Delta.Direction != DirectionWorsened {
			t.Errorf("expected worsened, got %s", result.Delta.Direction)
		}
		if result.Delta.Blocker != 1 || result.Delta.Minor != -1 || result.Delta.Total != 0 {
			t.Errorf("unexpected delta: %+v", result.Delta)
		}
		if !result.HasChanges() {
			t.Error("expected changes")
		}
	})

	t.Run("duplicate ids are matched by count", func(t *testing.T) {
		t.Parallel()

		dup := issue(model.SeverityMinor, "go:S1", "a.go", 5)
		baseline := newReport(t, 1, dup, dup)
		current := newReport(t, 1, dup, dup, dup)

		result := Compare(baseline, current)

		if len(result.NewIssues) != 1 {
			t.Errorf("expected 1 new issue, got %d", len(result.NewIssues))
		}
		if len(result.FixedIssues) != 0 {
			t.Errorf("expected no fixed issues, got %d", len(result.FixedIssues))
		}
		if result.UnchangedCount != 2 {
			t.Errorf("expected 2 unchanged issues, got %d", result.UnchangedCount)
		}
	})

	t.Run("moved issue is fixed and new", func(t *testing.T) {
		t.Parallel()

		baseline := newReport(t, 1, issue(model.SeverityMajor, "go:S1", "a.go", 5))
		current := newReport(t, 1, issue(model.SeverityMajor, "go:S1", "a.go", 6))

		result := Compare(baseline, current)

		if len(result.NewIssues) != 1 || len(result.FixedIssues) != 1 {
			t.Errorf("expected one new and one fixed issue, got %+v", result)
		}
		if result.Delta.Direction != DirectionUnchanged {
			t.Errorf("expected unchanged direction, got %s", result.Delta.Direction)
		}
	})

	t.Run("fixed blocker outweighs new info issues", func(t *testing.T) {
		t.Parallel()

		baseline := newReport(t, 2, issue(model.SeverityBlocker, "go:S1", "a.go", 1))
		current := newReport(t, 2,
			issue(model.SeverityInfo, "go:S2", "a.go", 2),
			issue(model.SeverityInfo, "go:S2", "a.go", 3),
			issue(model.SeverityInfo, "go:S2", "a.go", 4),
		)

		result := Compare(baseline, current)

		if result.Delta.Direction != DirectionImproved {
			t.Errorf("expected improved, got %s", result.Delta.Direction)
		}
		if result.Delta.Total != 2 {
			t.Errorf("expected total delta 2, got %d", result.Delta.Total)
		}
	})

	t.Run("identical reports", func(t *testing.T) {
		t.Parallel()

		issues := []model.Issue{
			issue(model.SeverityMajor, "go:S1", "a.go", 1),
			issue(model.SeverityInfo, "go:S2", "", 0),
		}
		result := Compare(newReport(t, 1, issues...), newReport(t, 1, issues...))

		if result.HasChanges() {
			t.Errorf("expected no changes, got %+v", result)
		}
		if result.Delta.Direction != DirectionUnchanged {
			t.Errorf("expected unchanged, got %s", result.Delta.Direction)
		}
	})
}

// TestWriteText tests the text comparison output.
func TestWriteText(t *testing.T) {
	t.Parallel()

	baseline := newReport(t, 1, issue(model.SeverityMinor, "go:S2", "b.go", 2))
	current := newReport(t, 2,
		issue(model.SeverityCritical, "go:S3", "c.go", 3),
		issue(model.SeverityInfo, "go:S4", "", 0),
	)

	var buf bytes.Buffer
	if err := WriteText(&buf, Compare(baseline, current)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Issues Comparison: project",
		"Status: WORSENED",
		"New Issues (2):",
		"[+] [CRITICAL] go:S3 c.go:3",
		"[+] [INFO] go:S4 (project)",
		"Fixed Issues (1):",
		"[-] [MINOR] go:S2 b.go:2",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Unchanged:") {
		t.Errorf("expected no unchanged line:\n%s", output)
	}
}

// TestWriteJSON tests the JSON comparison output.
func TestWriteJSON(t *testing.T) {
	t.Parallel()

	baseline := newReport(t, 1)
	current := newReport(t, 1, issue(model.SeverityMajor, "go:S1", "a.go", 1))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, Compare(baseline, current)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		NewIssues []struct {
			Severity string `json:"severity"`
			RuleKey  string `json:"ruleKey"`
		} `json:"newIssues"`
		FixedIssues []any `json:"fixedIssues"`
		Delta       struct {
			Major     int    `json:"major"`
			Direction string `json:"direction"`
		} `json:"delta"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(decoded.NewIssues) != 1 || decoded.NewIssues[0].Severity != "MAJOR" {
		t.Errorf("unexpected new issues: %+v", decoded.NewIssues)
	}
	if decoded.FixedIssues == nil {
		t.Error("expected an empty fixedIssues array, got null")
	}
	if decoded.Delta.Major != 1 || decoded.Delta.Direction != "worsened" {
		t.Errorf("unexpected delta: %+v", decoded.Delta)
	}
}

// TestWriteMarkdown tests the Markdown comparison output.
func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		baseline []model.Issue
		current  []model.Issue
		want     []string
	}{
		{
			name:     "improved",
			baseline: []model.Issue{issue(model.SeverityBlocker, "go:S1", "a.go", 1)},
			current:  nil,
			want:     []string{"> [!TIP]", "## Fixed Issues (1)", "~~**[BLOCKER]** `go:S1` a.go:1~~"},
		},
		{
			name:     "worsened",
			baseline: nil,
			current:  []model.Issue{issue(model.SeverityMajor, "go:S1", "a.go", 1)},
			want:     []string{"> [!CAUTION]", "## New Issues (1)", "**[MAJOR]** `go:S1` a.go:1"},
		},
		{
			name:     "unchanged",
			baseline: []model.Issue{issue(model.SeverityMajor, "go:S1", "a.go", 1)},
			current:  []model.Issue{issue(model.SeverityMajor, "go:S1", "a.go", 1)},
			want:     []string{"> [!NOTE]", "*1 issues unchanged*", "| Metric | Baseline | Current | Change |"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := Compare(newReport(t, 1, tc.baseline...), newReport(t, 1, tc.current...))

			var buf bytes.Buffer
			if err := WriteMarkdown(&buf, result); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, buf.String())
				}
			}
		})
	}
}

// TestFormatDelta tests signed delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		delta int
		want  string
	}{
		{delta: 3, want: "+3"},
		{delta: 0, want: "0"},
		{delta: -2, want: "-2"},
	}

	for _, tc := range testCases {
		if got := FormatDelta(tc.delta); got != tc.want {
			t.Errorf("FormatDelta(%d) = %q, want %q", tc.delta, got, tc.want)
		}
	}
}
