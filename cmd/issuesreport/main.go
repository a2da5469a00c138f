// Package main provides the entry point for the issuesreport CLI.
//
// issuesreport aggregates the issues found by static analysis engines per
// file and severity, and renders the result as a console summary, JSON,
// Markdown or a terminal table.
//
// Usage:
//
//	issuesreport report results.sarif
//	golangci-lint run --out-format sarif | issuesreport report --markdown -
//	issuesreport diff --baseline main.sarif pr.sarif
//
// See --help for all available options.
package main

// main is the entry point for issuesreport.
func main() {
	Execute()
}
