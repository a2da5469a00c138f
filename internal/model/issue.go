package model

import (
	"path/filepath"
	"strconv"
)

// NoFilePath is the FileReport key for issues that are attached to the
// project as a whole rather than to a specific file.
const NoFilePath = ""

// Issue is a single finding reported by the analysis engine.
// Issues are consumed read-only by IssuesReport.
type Issue struct {
	// Severity is the importance level of the issue.
	Severity Severity `json:"severity"`

	// RuleKey identifies the rule that raised the issue (e.g. "go:S1481").
	RuleKey string `json:"ruleKey"`

	// RuleName is the human-readable rule name.
	RuleName string `json:"ruleName"`

	// FilePath is the file the issue belongs to.
	// Empty means the issue is on the project, not a file.
	FilePath string `json:"filePath,omitempty"`

	// StartLine is the 1-based line where the issue starts.
	// Zero means the engine did not report a line.
	StartLine int `json:"startLine,omitempty"`

	// Message is the engine's description of this occurrence.
	Message string `json:"message,omitempty"`
}

// HasLine reports whether the issue carries a starting line.
func (i Issue) HasLine() bool {
	return i.StartLine > 0
}

// ID returns a string identifying the issue occurrence in the form
// "<ruleKey>R<path>L<line>". A missing line is rendered as "-".
func (i Issue) ID() string {
	line := "-"
	if i.HasLine() {
		line = strconv.Itoa(i.StartLine)
	}
	return i.RuleKey + "R" + NormalizePath(i.FilePath) + "L" + line
}

// NormalizePath returns the FileReport key for a file path.
// Paths are cleaned and use forward slashes so "./a/../b.go" and "b.go"
// share a bucket. Empty and "." map to NoFilePath.
func NormalizePath(path string) string {
	if path == NoFilePath {
		return NoFilePath
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned == "." {
		return NoFilePath
	}
	return cleaned
}
