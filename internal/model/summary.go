package model

import (
	"maps"
	"slices"
)

// ReportSummary is the global view of an IssuesReport: a tally across all
// files and the names of the rules that raised issues.
type ReportSummary struct {
	// Tally counts every issue added to the report.
	Tally SeverityTally `json:"total"`

	// ruleNames maps rule keys to display names. Last write wins.
	ruleNames map[string]string
}

// newReportSummary creates an empty summary.
func newReportSummary() ReportSummary {
	return ReportSummary{ruleNames: make(map[string]string)}
}

// RuleName returns the display name recorded for a rule key.
func (s ReportSummary) RuleName(ruleKey string) (string, bool) {
	name, ok := s.ruleNames[ruleKey]
	return name, ok
}

// RuleNames returns a copy of the rule key to name mapping.
func (s ReportSummary) RuleNames() map[string]string {
	if s.ruleNames == nil {
		return map[string]string{}
	}
	return maps.Clone(s.ruleNames)
}

// RuleKeys returns the recorded rule keys in sorted order.
func (s ReportSummary) RuleKeys() []string {
	return slices.Sorted(maps.Keys(s.ruleNames))
}

// clone returns a copy whose rule map is independent of s.
func (s ReportSummary) clone() ReportSummary {
	return ReportSummary{
		Tally:     s.Tally,
		ruleNames: s.RuleNames(),
	}
}
