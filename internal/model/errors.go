package model

import "errors"

// Aggregation errors.
// These errors are returned by IssuesReport methods and can be matched
// with errors.Is.
var (
	// ErrUnknownSeverity is returned when an issue carries a severity outside
	// the five recognized levels. It signals a mismatch between the analysis
	// engine output and this package's contract; the issue is not counted.
	ErrUnknownSeverity = errors.New("unknown severity")

	// ErrNegativeFileCount is returned by SetFilesAnalyzed for negative counts.
	ErrNegativeFileCount = errors.New("invalid files analyzed count: must be non-negative")

	// ErrIssuesWithoutFiles is returned by Validate when issues were recorded
	// but the files analyzed count is zero. The caller supplied inconsistent
	// metadata, so no "no files" or "no issues" message is a correct summary.
	ErrIssuesWithoutFiles = errors.New("inconsistent report: issues recorded but no files analyzed")
)
