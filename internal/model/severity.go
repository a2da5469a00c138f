package model

import (
	"fmt"
	"strings"
)

// Severity represents the importance level of an issue reported by the
// analysis engine.
// Strings from analysis output are converted by ParseSeverity.
type Severity int

const (
	// SeverityInfo is an informational issue with no direct quality impact.
	SeverityInfo Severity = iota

	// SeverityMinor is a quality flaw with little impact on productivity.
	SeverityMinor

	// SeverityMajor is a quality flaw that can highly impact productivity.
	SeverityMajor

	// SeverityCritical is a bug with a low probability to impact behavior
	// in production, or a security flaw.
	SeverityCritical

	// SeverityBlocker is a bug with a high probability to impact behavior
	// in production and must be fixed immediately.
	SeverityBlocker
)

// severityCount is the number of recognized severity levels.
const severityCount = 5

// Severities returns all severity levels ordered from the most to the
// least severe (BLOCKER first, INFO last). Report writers iterate in this
// order.
func Severities() []Severity {
	return []Severity{
		SeverityBlocker,
		SeverityCritical,
		SeverityMajor,
		SeverityMinor,
		SeverityInfo,
	}
}

// String returns the upper-case name of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityMinor:
		return "MINOR"
	case SeverityMajor:
		return "MAJOR"
	case SeverityCritical:
		return "CRITICAL"
	case SeverityBlocker:
		return "BLOCKER"
	default:
		return "UNKNOWN"
	}
}

// Label returns the lower-case label used in console output (e.g. "minor").
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}

// Valid reports whether s is one of the five recognized levels.
func (s Severity) Valid() bool {
	return s >= SeverityInfo && s < severityCount
}

// ParseSeverity converts a severity name such as "BLOCKER" into a Severity.
// Matching ignores case and surrounding whitespace. Any other value returns
// an error wrapping ErrUnknownSeverity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "BLOCKER":
		return SeverityBlocker, nil
	case "CRITICAL":
		return SeverityCritical, nil
	case "MAJOR":
		return SeverityMajor, nil
	case "MINOR":
		return SeverityMinor, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize as
// their names in JSON and YAML.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
