package model

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// TooManyIssuesThreshold is the number of issues above which report
// output switches to per-file tallies instead of listing every issue.
const TooManyIssuesThreshold = 1000

// IssuesReport is the aggregation root of one analysis run.
// It groups issues by file, counts them by severity, and records the
// metadata (title, date, files analyzed) that report writers display.
//
// IssuesReport is not safe for concurrent use. Issues must be added from a
// single goroutine; once ingestion is complete any number of writers may
// read it.
//
// Every accessor returns a copy.
type IssuesReport struct {
	title         string
	date          time.Time
	filesAnalyzed int
	summary       ReportSummary
	files         map[string]*FileReport
}

// NewIssuesReport creates an empty report.
func NewIssuesReport(title string, date time.Time) *IssuesReport {
	return &IssuesReport{
		title:   title,
		date:    date,
		summary: newReportSummary(),
		files:   make(map[string]*FileReport),
	}
}

// Title returns the report title.
func (r *IssuesReport) Title() string {
	return r.title
}

// SetTitle sets the report title.
func (r *IssuesReport) SetTitle(title string) {
	r.title = title
}

// Date returns the analysis date.
func (r *IssuesReport) Date() time.Time {
	return r.date
}

// SetDate sets the analysis date.
func (r *IssuesReport) SetDate(date time.Time) {
	r.date = date
}

// FilesAnalyzed returns the number of files the engine analyzed.
func (r *IssuesReport) FilesAnalyzed() int {
	return r.filesAnalyzed
}

// SetFilesAnalyzed records the number of files the engine analyzed.
// The count is independent of the files that received issues: a file can
// be analyzed and produce none.
func (r *IssuesReport) SetFilesAnalyzed(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeFileCount, count)
	}
	r.filesAnalyzed = count
	return nil
}

// AddIssue records one issue.
//
// The issue is routed to the FileReport of its normalized path (created on
// first use) or to the project bucket when it has no path. Its rule name is
// recorded under its rule key and exactly one severity counter is
// incremented in both the file tally and the global tally.
//
// An issue with an unrecognized severity is rejected with an error wrapping
// ErrUnknownSeverity before anything is modified.
func (r *IssuesReport) AddIssue(issue Issue) error {
	if !issue.Severity.Valid() {
		return fmt.Errorf("%w: %d (rule %q)", ErrUnknownSeverity, int(issue.Severity), issue.RuleKey)
	}

	fr := r.getOrCreate(NormalizePath(issue.FilePath))
	r.summary.ruleNames[issue.RuleKey] = issue.RuleName
	r.summary.Tally.add(issue.Severity)
	fr.addIssue(issue)

	return nil
}

// AddIssues records issues in order. It stops at the first rejected issue;
// issues before it stay recorded.
func (r *IssuesReport) AddIssues(issues ...Issue) error {
	for i, issue := range issues {
		if err := r.AddIssue(issue); err != nil {
			return fmt.Errorf("issue %d: %w", i, err)
		}
	}
	return nil
}

// getOrCreate returns the FileReport for path, allocating it on first use.
func (r *IssuesReport) getOrCreate(path string) *FileReport {
	fr, ok := r.files[path]
	if !ok {
		fr = newFileReport(path)
		r.files[path] = fr
	}
	return fr
}

// NoIssues reports whether no issue has been recorded.
func (r *IssuesReport) NoIssues() bool {
	return r.summary.Tally.IsEmpty()
}

// NoFiles reports whether the files analyzed count is zero.
func (r *IssuesReport) NoFiles() bool {
	return r.filesAnalyzed == 0
}

// Validate reports inconsistent metadata. A report with issues but zero
// files analyzed returns ErrIssuesWithoutFiles.
func (r *IssuesReport) Validate() error {
	if r.NoFiles() && !r.NoIssues() {
		return fmt.Errorf("%w (%d issues)", ErrIssuesWithoutFiles, r.summary.Tally.Total)
	}
	return nil
}

// Summary returns a copy of the global summary.
func (r *IssuesReport) Summary() ReportSummary {
	return r.summary.clone()
}

// Tally returns the global severity tally.
func (r *IssuesReport) Tally() SeverityTally {
	return r.summary.Tally
}

// RuleName returns the display name recorded for a rule key.
func (r *IssuesReport) RuleName(ruleKey string) (string, bool) {
	return r.summary.RuleName(ruleKey)
}

// FileReport returns a copy of the report for a path. The path is
// normalized first; use NoFilePath for project-level issues.
func (r *IssuesReport) FileReport(path string) (FileReport, bool) {
	fr, ok := r.files[NormalizePath(path)]
	if !ok {
		return FileReport{}, false
	}
	return fr.clone(), true
}

// FileReports returns a copy of the path to FileReport mapping.
func (r *IssuesReport) FileReports() map[string]FileReport {
	out := make(map[string]FileReport, len(r.files))
	for path, fr := range r.files {
		out[path] = fr.clone()
	}
	return out
}

// ResourceReports returns copies of all file reports sorted by path.
// The project bucket, when present, comes first.
func (r *IssuesReport) ResourceReports() []FileReport {
	paths := r.ResourcesWithReport()
	out := make([]FileReport, 0, len(paths))
	for _, path := range paths {
		out = append(out, r.files[path].clone())
	}
	return out
}

// ResourcesWithReport returns the sorted paths that received at least one
// issue.
func (r *IssuesReport) ResourcesWithReport() []string {
	return slices.Sorted(maps.Keys(r.files))
}
