package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/nao1215/issuesreport/internal/model"
	"github.com/nao1215/issuesreport/internal/source"
)

// TestIngestStep tests loading inputs into the report.
func TestIngestStep(t *testing.T) {
	t.Parallel()

	t.Run("adds issues in input order and sums files", func(t *testing.T) {
		t.Parallel()

		sources := []source.Source{
			&fakeSource{name: "first", batch: source.Batch{Issues: issuesOf("r1", 2), FilesAnalyzed: 3}},
			&fakeSource{name: "second", batch: source.Batch{Issues: issuesOf("r2", 1), FilesAnalyzed: 4}},
		}

		report := newTestReport()
		step := NewIngestStep(sources, WithIngestLogger(discardLogger()))
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.FilesAnalyzed() != 7 {
			t.Errorf("expected 7 files analyzed, got %d", report.FilesAnalyzed())
		}
		fr, ok := report.FileReport("a.go")
		if !ok {
			t.Fatal("expected a.go file report")
		}
		rules := make([]string, 0, len(fr.Issues))
		for _, issue := range fr.Issues {
			rules = append(rules, issue.RuleKey)
		}
		if strings.Join(rules, ",") != "r1,r1,r2" {
			t.Errorf("unexpected arrival order: %v", rules)
		}
	})

	t.Run("fixed files analyzed overrides inputs", func(t *testing.T) {
		t.Parallel()

		sources := []source.Source{
			&fakeSource{name: "in", batch: source.Batch{Issues: issuesOf("r", 1), FilesAnalyzed: 3}},
		}

		report := newTestReport()
		step := NewIngestStep(sources, WithFilesAnalyzed(10), WithIngestLogger(discardLogger()))
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.FilesAnalyzed() != 10 {
			t.Errorf("expected 10 files analyzed, got %d", report.FilesAnalyzed())
		}
	})

	t.Run("filter rewrites and drops issues", func(t *testing.T) {
		t.Parallel()

		sources := []source.Source{
			&fakeSource{name: "in", batch: source.Batch{Issues: issuesOf("r", 4), FilesAnalyzed: 1}},
		}
		filter := func(issue model.Issue) (model.Issue, bool) {
			if issue.StartLine%2 == 0 {
				return issue, false
			}
			issue.Severity = model.SeverityBlocker
			return issue, true
		}

		report := newTestReport()
		step := NewIngestStep(sources, WithIssueFilter(filter), WithIngestLogger(discardLogger()))
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if tally := report.Tally(); tally.Total != 2 || tally.Blocker != 2 {
			t.Errorf("unexpected tally: %+v", tally)
		}
	})

	t.Run("invalid issue fails with input name", func(t *testing.T) {
		t.Parallel()

		bad := []model.Issue{{Severity: model.Severity(42), RuleKey: "r"}}
		sources := []source.Source{
			&fakeSource{name: "broken.json", batch: source.Batch{Issues: bad, FilesAnalyzed: 1}},
		}

		err := NewIngestStep(sources, WithIngestLogger(discardLogger())).Do(context.Background(), newTestReport())
		if !errors.Is(err, model.ErrUnknownSeverity) {
			t.Fatalf("expected ErrUnknownSeverity, got %v", err)
		}
		if !strings.Contains(err.Error(), "broken.json") {
			t.Errorf("expected input name in error, got %v", err)
		}
	})

	t.Run("load error leaves report empty", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("unreadable")
		sources := []source.Source{
			&fakeSource{name: "ok", batch: source.Batch{Issues: issuesOf("r", 1), FilesAnalyzed: 1}},
			&fakeSource{name: "bad", err: loadErr},
		}

		report := newTestReport()
		err := NewIngestStep(sources, WithIngestLogger(discardLogger())).Do(context.Background(), report)
		if !errors.Is(err, loadErr) {
			t.Fatalf("expected %v, got %v", loadErr, err)
		}
		if !report.NoIssues() {
			t.Error("expected no issues after a failed load")
		}
	})

	t.Run("name", func(t *testing.T) {
		t.Parallel()

		if name := NewIngestStep(nil).Name(); name != "ingest" {
			t.Errorf("expected ingest, got %q", name)
		}
	})
}

// TestThresholdStep tests the oversized report warning.
func TestThresholdStep(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		threshold int
		issues    int
		wantWarn  bool
	}{
		{name: "below threshold", threshold: 3, issues: 2, wantWarn: false},
		{name: "at threshold", threshold: 3, issues: 3, wantWarn: false},
		{name: "above threshold", threshold: 3, issues: 4, wantWarn: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			report := newTestReport()
			if err := report.AddIssues(issuesOf("r", tc.issues)...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err := NewThresholdStep(tc.threshold, logger).Do(context.Background(), report); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			warned := strings.Contains(buf.String(), "too many issues")
			if warned != tc.wantWarn {
				t.Errorf("warned = %v, expected %v (log: %s)", warned, tc.wantWarn, buf.String())
			}
		})
	}

	t.Run("negative threshold uses default", func(t *testing.T) {
		t.Parallel()

		if step := NewThresholdStep(-1, nil); step.threshold != model.TooManyIssuesThreshold {
			t.Errorf("expected %d, got %d", model.TooManyIssuesThreshold, step.threshold)
		}
	})
}

// TestValidateStep tests report metadata validation.
func TestValidateStep(t *testing.T) {
	t.Parallel()

	t.Run("issues without files", func(t *testing.T) {
		t.Parallel()

		report := newTestReport()
		if err := report.AddIssues(issuesOf("r", 1)...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := NewValidateStep().Do(context.Background(), report); !errors.Is(err, model.ErrIssuesWithoutFiles) {
			t.Errorf("expected ErrIssuesWithoutFiles, got %v", err)
		}
	})

	t.Run("consistent report", func(t *testing.T) {
		t.Parallel()

		report := newTestReport()
		if err := report.SetFilesAnalyzed(2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := NewValidateStep().Do(context.Background(), report); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestDefaultPipeline tests a full run over fake inputs.
func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	sources := []source.Source{
		&fakeSource{name: "a", batch: source.Batch{Issues: issuesOf("r1", 2), FilesAnalyzed: 2}},
		&fakeSource{name: "b", batch: source.Batch{Issues: issuesOf("r2", 3), FilesAnalyzed: 1}},
	}

	report := newTestReport()
	p := NewDefault(Options{
		Sources:       sources,
		FilesAnalyzed: DeriveFilesAnalyzed,
		Concurrency:   2,
		Logger:        discardLogger(),
	})

	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Tally().Total != 5 || report.Tally().Major != 5 {
		t.Errorf("unexpected tally: %+v", report.Tally())
	}
	if report.FilesAnalyzed() != 3 {
		t.Errorf("expected 3 files analyzed, got %d", report.FilesAnalyzed())
	}
}
