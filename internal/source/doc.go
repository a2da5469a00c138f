// Package source loads issues produced by analysis engines.
//
// A Source reads one input (a file or stdin) and returns a Batch: the
// issues it contains plus the number of files the engine analyzed. Two
// input formats are supported:
//   - the native JSON document written by issuesreport-aware engines
//   - SARIF 2.1.0, as emitted by most static analysis tools
//
// Sources are independent of each other, so the pipeline loads them
// concurrently and merges the batches in input order.
package source
