package diff

import (
	"github.com/nao1215/issuesreport/internal/model"
)

// Direction summarizes how the weighted issue score moved between runs.
type Direction string

const (
	// DirectionWorsened means the current run scores higher than the baseline.
	DirectionWorsened Direction = "worsened"

	// DirectionImproved means the current run scores lower than the baseline.
	DirectionImproved Direction = "improved"

	// DirectionUnchanged means both runs have the same score.
	DirectionUnchanged Direction = "unchanged"
)

// severityWeights weight each severity when scoring a run, so one new
// blocker outweighs a handful of fixed info issues.
var severityWeights = map[model.Severity]int{
	model.SeverityBlocker:  100,
	model.SeverityCritical: 50,
	model.SeverityMajor:    10,
	model.SeverityMinor:    5,
	model.SeverityInfo:     1,
}

// Snapshot holds the metadata of one side of a comparison.
type Snapshot struct {
	Title         string              `json:"title,omitempty"`
	FilesAnalyzed int                 `json:"filesAnalyzed"`
	Tally         model.SeverityTally `json:"tally"`
}

// Delta holds current minus baseline counts per severity.
type Delta struct {
	Blocker   int       `json:"blocker"`
	Critical  int       `json:"critical"`
	Major     int       `json:"major"`
	Minor     int       `json:"minor"`
	Info      int       `json:"info"`
	Total     int       `json:"total"`
	Direction Direction `json:"direction"`
}

// Count returns the delta for the given severity.
func (d Delta) Count(s model.Severity) int {
	switch s {
	case model.SeverityBlocker:
		return d.Blocker
	case model.SeverityCritical:
		return d.Critical
	case model.SeverityMajor:
		return d.Major
	case model.SeverityMinor:
		return d.Minor
	case model.SeverityInfo:
		return d.Info
	default:
		return 0
	}
}

// Result is the outcome of comparing a baseline report with a current one.
type Result struct {
	Baseline       Snapshot      `json:"baseline"`
	Current        Snapshot      `json:"current"`
	NewIssues      []model.Issue `json:"newIssues"`
	FixedIssues    []model.Issue `json:"fixedIssues"`
	UnchangedCount int           `json:"unchangedCount"`
	Delta          Delta         `json:"delta"`
}

// HasChanges reports whether any issue appeared or disappeared.
func (r *Result) HasChanges() bool {
	return len(r.NewIssues) > 0 || len(r.FixedIssues) > 0
}

// Compare matches the issues of two reports by Issue.ID.
//
// Issues sharing an ID are matched by count: if the baseline has two
// occurrences and the current run three, one is new. New issues keep the
// current report's order and fixed issues the baseline's order (files
// sorted by path, issues in arrival order).
func Compare(baseline, current *model.IssuesReport) *Result {
	result := &Result{
		Baseline:    snapshot(baseline),
		Current:     snapshot(current),
		NewIssues:   []model.Issue{},
		FixedIssues: []model.Issue{},
	}

	baselineIssues := issuesOf(baseline)
	currentIssues := issuesOf(current)

	remaining := countIDs(baselineIssues)
	for _, issue := range currentIssues {
		id := issue.ID()
		if remaining[id] > 0 {
			remaining[id]--
			result.UnchangedCount++
			continue
		}
		result.NewIssues = append(result.NewIssues, issue)
	}

	unmatched := countIDs(currentIssues)
	for _, issue := range baselineIssues {
		id := issue.ID()
		if unmatched[id] > 0 {
			unmatched[id]--
			continue
		}
		result.FixedIssues = append(result.FixedIssues, issue)
	}

	result.Delta = calculateDelta(result.Baseline.Tally, result.Current.Tally)
	return result
}

// snapshot extracts the metadata of a report.
func snapshot(report *model.IssuesReport) Snapshot {
	return Snapshot{
		Title:         report.Title(),
		FilesAnalyzed: report.FilesAnalyzed(),
		Tally:         report.Tally(),
	}
}

// issuesOf flattens a report in path order.
func issuesOf(report *model.IssuesReport) []model.Issue {
	var issues []model.Issue
	for _, fr := range report.ResourceReports() {
		issues = append(issues, fr.Issues...)
	}
	return issues
}

// countIDs counts the occurrences of each issue ID.
func countIDs(issues []model.Issue) map[string]int {
	counts := make(map[string]int, len(issues))
	for _, issue := range issues {
		counts[issue.ID()]++
	}
	return counts
}

// calculateDelta computes per-severity deltas and the overall direction.
func calculateDelta(baseline, current model.SeverityTally) Delta {
	delta := Delta{
		Blocker:  current.Blocker - baseline.Blocker,
		Critical: current.Critical - baseline.Critical,
		Major:    current.Major - baseline.Major,
		Minor:    current.Minor - baseline.Minor,
		Info:     current.Info - baseline.Info,
		Total:    current.Total - baseline.Total,
	}

	baselineScore, currentScore := score(baseline), score(current)
	switch {
	case currentScore < baselineScore:
		delta.Direction = DirectionImproved
	case currentScore > baselineScore:
		delta.Direction = DirectionWorsened
	default:
		delta.Direction = DirectionUnchanged
	}

	return delta
}

// score returns the weighted issue score of a tally.
func score(tally model.SeverityTally) int {
	total := 0
	for _, severity := range model.Severities() {
		total += tally.Count(severity) * severityWeights[severity]
	}
	return total
}
