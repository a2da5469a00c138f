// Package diff compares two aggregated reports of the same project, for
// example the analysis of a main branch and of a pull request.
//
// Issues are matched by model.Issue.ID, which combines rule key, file path
// and start line. An issue whose line moved is therefore reported once as
// fixed and once as new.
//
// The overall direction weights each severity (a blocker counts 100, an
// info issue 1) so that fixing many info issues does not hide one new
// blocker.
package diff
