// Package pipeline provides a framework for executing report steps in
// sequence.
//
// A run goes through three stages: ingesting the inputs into an
// IssuesReport, warning about oversized reports, and validating the
// report metadata. Each stage is implemented as a Step that receives the
// current report and can modify it.
//
// Inputs are decoded concurrently with errgroup; the report itself is only
// ever written by one goroutine.
package pipeline
