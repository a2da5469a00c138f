package model

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestSeverityString tests the String and Label methods of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
		label    string
	}{
		{SeverityInfo, "INFO", "info"},
		{SeverityMinor, "MINOR", "minor"},
		{SeverityMajor, "MAJOR", "major"},
		{SeverityCritical, "CRITICAL", "critical"},
		{SeverityBlocker, "BLOCKER", "blocker"},
		{Severity(999), "UNKNOWN", "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
			if tc.severity.Label() != tc.label {
				t.Errorf("got label %q, expected %q", tc.severity.Label(), tc.label)
			}
		})
	}
}

// TestSeverityOrdering tests that severity levels are ordered correctly.
// Info < Minor < Major < Critical < Blocker
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if SeverityInfo >= SeverityMinor {
		t.Error("expected SeverityInfo < SeverityMinor")
	}
	if SeverityMinor >= SeverityMajor {
		t.Error("expected SeverityMinor < SeverityMajor")
	}
	if SeverityMajor >= SeverityCritical {
		t.Error("expected SeverityMajor < SeverityCritical")
	}
	if SeverityCritical >= SeverityBlocker {
		t.Error("expected SeverityCritical < SeverityBlocker")
	}

	all := Severities()
	if len(all) != severityCount {
		t.Fatalf("got %d severities, expected %d", len(all), severityCount)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] <= all[i] {
			t.Errorf("Severities() not descending at %d: %v then %v", i, all[i-1], all[i])
		}
	}
}

// TestParseSeverity tests conversion from engine output.
func TestParseSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Severity
		wantErr  bool
	}{
		{"BLOCKER", SeverityBlocker, false},
		{"CRITICAL", SeverityCritical, false},
		{"MAJOR", SeverityMajor, false},
		{"MINOR", SeverityMinor, false},
		{"INFO", SeverityInfo, false},
		{"minor", SeverityMinor, false},
		{"  Blocker ", SeverityBlocker, false},
		{"HIGH", SeverityInfo, true},
		{"", SeverityInfo, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSeverity(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownSeverity) {
					t.Errorf("ParseSeverity(%q) expected ErrUnknownSeverity, got %v", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeverity(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseSeverity(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

// TestSeverityJSON tests that severities serialize as names.
func TestSeverityJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes issue with named severity", func(t *testing.T) {
		t.Parallel()

		var issue Issue
		data := `{"severity":"CRITICAL","ruleKey":"go:S100","ruleName":"Names","filePath":"a.go","startLine":3}`
		if err := json.Unmarshal([]byte(data), &issue); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if issue.Severity != SeverityCritical {
			t.Errorf("got %v, expected CRITICAL", issue.Severity)
		}
		if issue.StartLine != 3 {
			t.Errorf("got line %d, expected 3", issue.StartLine)
		}
	})

	t.Run("rejects unknown severity name", func(t *testing.T) {
		t.Parallel()

		var issue Issue
		err := json.Unmarshal([]byte(`{"severity":"SEVERE"}`), &issue)
		if !errors.Is(err, ErrUnknownSeverity) {
			t.Errorf("expected ErrUnknownSeverity, got %v", err)
		}
	})

	t.Run("encodes severity name", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(Issue{Severity: SeverityMajor, RuleKey: "k"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := string(data); got != `{"severity":"MAJOR","ruleKey":"k","ruleName":""}` {
			t.Errorf("unexpected JSON: %s", got)
		}
	})
}

// TestSeverityTally tests counter dispatch.
func TestSeverityTally(t *testing.T) {
	t.Parallel()

	var tally SeverityTally
	if !tally.IsEmpty() {
		t.Error("expected zero tally to be empty")
	}

	for _, s := range Severities() {
		if !tally.add(s) {
			t.Errorf("add(%v) returned false", s)
		}
	}
	if tally.add(Severity(7)) {
		t.Error("expected add of unknown severity to return false")
	}

	for _, s := range Severities() {
		if tally.Count(s) != 1 {
			t.Errorf("Count(%v) = %d, expected 1", s, tally.Count(s))
		}
	}
	if tally.Total != 5 {
		t.Errorf("got total %d, expected 5", tally.Total)
	}
	if tally.Count(Severity(7)) != 0 {
		t.Error("expected zero count for unknown severity")
	}
}
