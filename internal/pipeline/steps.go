package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/issuesreport/internal/model"
	"github.com/nao1215/issuesreport/internal/source"
)

// DeriveFilesAnalyzed tells IngestStep to sum the files analyzed counts of
// the inputs instead of using a fixed value.
const DeriveFilesAnalyzed = -1

// IssueFilter rewrites an issue before it is added to the report.
// Returning false drops the issue.
type IssueFilter func(issue model.Issue) (model.Issue, bool)

// IngestStep loads the inputs and adds their issues to the report.
// Inputs are decoded concurrently but added in input order, so the
// arrival order of issues in each file is deterministic.
type IngestStep struct {
	// sources are the inputs to load.
	sources []source.Source

	// loader decodes the inputs.
	loader *BatchLoader

	// filesAnalyzed overrides the derived count when not negative.
	filesAnalyzed int

	// filter rewrites or drops issues; nil keeps them as loaded.
	filter IssueFilter

	// logger for structured logging.
	logger *slog.Logger
}

// IngestStepOption configures an IngestStep.
type IngestStepOption func(*IngestStep)

// WithBatchLoader sets the loader used to decode inputs.
func WithBatchLoader(loader *BatchLoader) IngestStepOption {
	return func(s *IngestStep) {
		s.loader = loader
	}
}

// WithFilesAnalyzed fixes the files analyzed count of the report.
// DeriveFilesAnalyzed (or any negative value) sums the inputs' counts.
func WithFilesAnalyzed(n int) IngestStepOption {
	return func(s *IngestStep) {
		s.filesAnalyzed = n
	}
}

// WithIssueFilter sets the filter applied to every loaded issue.
func WithIssueFilter(filter IssueFilter) IngestStepOption {
	return func(s *IngestStep) {
		s.filter = filter
	}
}

// WithIngestLogger sets a custom logger for the ingest step.
func WithIngestLogger(logger *slog.Logger) IngestStepOption {
	return func(s *IngestStep) {
		s.logger = logger
	}
}

// NewIngestStep creates a step that loads the given sources.
func NewIngestStep(sources []source.Source, opts ...IngestStepOption) *IngestStep {
	s := &IngestStep{
		sources:       sources,
		filesAnalyzed: DeriveFilesAnalyzed,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.loader == nil {
		s.loader = NewBatchLoader(WithBatchLogger(s.logger))
	}

	return s
}

// Name returns the step name.
func (s *IngestStep) Name() string {
	return "ingest"
}

// Do loads every input and adds its issues to the report.
// An invalid issue aborts the step; issues added before it stay in the
// report, but the error is returned so the run fails.
func (s *IngestStep) Do(ctx context.Context, report *model.IssuesReport) error {
	batches, err := s.loader.Load(ctx, s.sources)
	if err != nil {
		return err
	}

	derived := 0
	for _, batch := range batches {
		issues := s.apply(batch.Issues)
		if err := report.AddIssues(issues...); err != nil {
			return fmt.Errorf("%s: %w", batch.Source, err)
		}
		derived += batch.FilesAnalyzed

		s.logger.Info("input ingested",
			"input", batch.Source,
			"issues", len(issues),
			"dropped", len(batch.Issues)-len(issues),
			"files_analyzed", batch.FilesAnalyzed,
		)
	}

	filesAnalyzed := derived
	if s.filesAnalyzed >= 0 {
		filesAnalyzed = s.filesAnalyzed
	}

	return report.SetFilesAnalyzed(filesAnalyzed)
}

// apply runs the filter over issues, keeping their order.
func (s *IngestStep) apply(issues []model.Issue) []model.Issue {
	if s.filter == nil {
		return issues
	}
	kept := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		rewritten, ok := s.filter(issue)
		if !ok {
			s.logger.Debug("issue dropped",
				"rule", issue.RuleKey,
				"file", issue.FilePath,
				"message", issue.Message,
			)
			continue
		}
		kept = append(kept, rewritten)
	}
	return kept
}

// ThresholdStep warns when the report holds more issues than a reader can
// reasonably go through.
type ThresholdStep struct {
	threshold int
	logger    *slog.Logger
}

// NewThresholdStep creates a step that warns above threshold issues.
// Negative thresholds use model.TooManyIssuesThreshold.
func NewThresholdStep(threshold int, logger *slog.Logger) *ThresholdStep {
	if threshold < 0 {
		threshold = model.TooManyIssuesThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ThresholdStep{threshold: threshold, logger: logger}
}

// Name returns the step name.
func (s *ThresholdStep) Name() string {
	return "threshold"
}

// Do logs a warning when the issue count exceeds the threshold.
func (s *ThresholdStep) Do(_ context.Context, report *model.IssuesReport) error {
	if total := report.Tally().Total; total > s.threshold {
		s.logger.Warn("too many issues, reports will be truncated",
			"issues", total,
			"threshold", s.threshold,
		)
	}
	return nil
}

// ValidateStep rejects reports whose metadata is inconsistent, such as
// issues reported while no file was analyzed.
type ValidateStep struct{}

// NewValidateStep creates a ValidateStep.
func NewValidateStep() *ValidateStep {
	return &ValidateStep{}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do validates the report.
func (s *ValidateStep) Do(_ context.Context, report *model.IssuesReport) error {
	return report.Validate()
}

// Options holds the settings used by NewDefault.
type Options struct {
	// Sources are the inputs to ingest.
	Sources []source.Source

	// FilesAnalyzed fixes the files analyzed count; DeriveFilesAnalyzed
	// sums the inputs' counts.
	FilesAnalyzed int

	// Concurrency limits concurrent decodes.
	Concurrency int

	// Filter rewrites or drops issues before they are added; may be nil.
	Filter IssueFilter

	// Logger is shared by every step.
	Logger *slog.Logger
}

// NewDefault creates the standard pipeline: ingest, threshold, validate.
func NewDefault(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loader := NewBatchLoader(
		WithConcurrency(opts.Concurrency),
		WithBatchLogger(logger),
	)

	p := New(WithLogger(logger))
	p.AddSteps(
		NewIngestStep(opts.Sources,
			WithBatchLoader(loader),
			WithFilesAnalyzed(opts.FilesAnalyzed),
			WithIssueFilter(opts.Filter),
			WithIngestLogger(logger),
		),
		NewThresholdStep(model.TooManyIssuesThreshold, logger),
		NewValidateStep(),
	)
	return p
}
