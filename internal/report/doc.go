// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - ConsoleWriter: Fixed-format text summary for terminals and CI logs
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for pull request comments
//   - TableWriter: Per-file breakdown table
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. Writers only read
// the report, so several may render the same report in sequence.
package report
