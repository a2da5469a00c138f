package model

// SeverityTally counts issues per severity level.
// Total always equals the sum of the five counters. Counters only grow;
// the zero value is an empty tally.
type SeverityTally struct {
	// Blocker is the number of BLOCKER issues.
	Blocker int `json:"blocker"`

	// Critical is the number of CRITICAL issues.
	Critical int `json:"critical"`

	// Major is the number of MAJOR issues.
	Major int `json:"major"`

	// Minor is the number of MINOR issues.
	Minor int `json:"minor"`

	// Info is the number of INFO issues.
	Info int `json:"info"`

	// Total is the number of issues of any severity.
	Total int `json:"total"`
}

// Count returns the counter for the given severity.
// Unknown severities count as zero.
func (t SeverityTally) Count(s Severity) int {
	if c := t.counter(s); c != nil {
		return *c
	}
	return 0
}

// IsEmpty reports whether no issue has been counted.
func (t SeverityTally) IsEmpty() bool {
	return t.Total == 0
}

// add increments the counter for s and the total.
// It returns false, leaving the tally untouched, when s is unknown.
func (t *SeverityTally) add(s Severity) bool {
	c := t.counter(s)
	if c == nil {
		return false
	}
	*c++
	t.Total++
	return true
}

// counter maps a severity to its counter slot.
func (t *SeverityTally) counter(s Severity) *int {
	switch s {
	case SeverityBlocker:
		return &t.Blocker
	case SeverityCritical:
		return &t.Critical
	case SeverityMajor:
		return &t.Major
	case SeverityMinor:
		return &t.Minor
	case SeverityInfo:
		return &t.Info
	default:
		return nil
	}
}
