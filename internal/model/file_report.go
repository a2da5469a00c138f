package model

import "slices"

// FileReport is the aggregated view of all issues attributed to one file
// path, or to the project when Path is NoFilePath.
type FileReport struct {
	// Path is the normalized file path this report is keyed by.
	Path string `json:"path"`

	// Issues holds the issues for Path in arrival order.
	Issues []Issue `json:"issues"`

	// Tally counts Issues by severity. It is updated on every insertion.
	Tally SeverityTally `json:"summary"`
}

// newFileReport creates an empty report for the given normalized path.
func newFileReport(path string) *FileReport {
	return &FileReport{
		Path:   path,
		Issues: make([]Issue, 0),
	}
}

// IsProject reports whether the report holds project-level issues.
func (f FileReport) IsProject() bool {
	return f.Path == NoFilePath
}

// addIssue appends the issue and updates the tally.
// The severity must already be validated by the caller.
func (f *FileReport) addIssue(issue Issue) {
	f.Issues = append(f.Issues, issue)
	f.Tally.add(issue.Severity)
}

// clone returns a copy that shares no memory with f.
func (f *FileReport) clone() FileReport {
	return FileReport{
		Path:   f.Path,
		Issues: slices.Clone(f.Issues),
		Tally:  f.Tally,
	}
}
