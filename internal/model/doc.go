// Package model defines the core data structures of issuesreport.
//
// This package contains the following main types:
//   - Issue: A single finding reported by an analysis engine
//   - Severity: The five issue levels, BLOCKER to INFO
//   - SeverityTally: Issue counts per severity plus a total
//   - FileReport: All issues attributed to one file path
//   - IssuesReport: The aggregation root of an analysis run
//
// IssuesReport is a single-writer structure. Ingestion must be serialized
// by the caller; reading it after ingestion needs no synchronization.
package model
