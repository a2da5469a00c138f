package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/issuesreport/internal/config"
	"github.com/nao1215/issuesreport/internal/log"
	"github.com/nao1215/issuesreport/internal/model"
	"github.com/nao1215/issuesreport/internal/pipeline"
	"github.com/nao1215/issuesreport/internal/report"
	"github.com/nao1215/issuesreport/internal/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// tableFixedWidth is the width taken by the severity and total columns of
// the table report, borders included.
const tableFixedWidth = 70

// minTablePathWidth keeps paths readable on narrow terminals.
const minTablePathWidth = 15

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [input...]",
		Short: "Aggregate analysis results into an issues report",
		Long: `Report reads one or more analysis result files and aggregates their issues
per file and per severity.

Inputs are native issuesreport JSON documents or SARIF 2.1.0 logs. Use - to
read from standard input. The number of files analyzed is summed from the
inputs unless --files-analyzed is given.

Examples:
  # Print the console summary of a SARIF log
  issuesreport report results.sarif

  # Merge the results of several engines
  issuesreport report gosec.sarif semgrep.sarif custom.json

  # Read from stdin and write a Markdown report for a pull request comment
  golangci-lint run --out-format sarif | issuesreport report --markdown -o report.md -

  # Print a per-file table with colors
  issuesreport report --table --color results.sarif

Configuration file (.issuesreport) example:
  title: my-project
  minSeverity: MINOR
  rules:
    "G104":
      ignore: true
    "go:S1481":
      severity: INFO`,
		Args: cobra.ArbitraryArgs,
		RunE: runReportCmd,
	}

	addInputFlags(cmd)

	// Report content flags
	cmd.Flags().StringP("title", "t", "",
		"Report title, usually the project name")
	cmd.Flags().Int("files-analyzed", config.DeriveFilesAnalyzed,
		"Number of files analyzed (default: summed from the inputs)")

	// Report format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --table)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --table)")
	cmd.Flags().Bool("table", false,
		"Output a per-file table (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Int("pad-width", config.DefaultPadWidth,
		"Number of spaces before each count in the console report")
	cmd.Flags().Bool("color", false,
		"Colorize blocker and critical counts in the table report")
	cmd.Flags().Bool("summary", false,
		"Also print the console summary to stderr when another format is selected")

	return cmd
}

// addInputFlags adds the flags shared by every command that reads inputs.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("input-format", config.DefaultInputFormat,
		"Input format: auto, json or sarif")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of inputs decoded concurrently")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .issuesreport in current, XDG config or home directory)")
	cmd.Flags().Bool("log-json", false,
		"Write logs as JSON lines")
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)

	ctx, stop := signalContext(cmd)
	defer stop()

	issuesReport, err := buildReport(ctx, cfg, cfg.Inputs, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}

	return outputReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, issuesReport)
}

// signalContext returns the command context, cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and cobra flags.
// Flags override file settings only when set explicitly.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := buildInputConfig(cmd, args)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("title") {
		if cfg.Title, err = flags.GetString("title"); err != nil {
			return nil, err
		}
	}

	if cfg.FilesAnalyzed, err = flags.GetInt("files-analyzed"); err != nil {
		return nil, err
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.TableReport, err = flags.GetBool("table"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	if cfg.File.PadWidth != nil {
		cfg.PadWidth = *cfg.File.PadWidth
	}
	if flags.Changed("pad-width") {
		if cfg.PadWidth, err = flags.GetInt("pad-width"); err != nil {
			return nil, err
		}
	}

	if cfg.Summary, err = flags.GetBool("summary"); err != nil {
		return nil, err
	}

	if cfg.File.Color != nil {
		cfg.Color = *cfg.File.Color
	}
	if flags.Changed("color") {
		if cfg.Color, err = flags.GetBool("color"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// buildInputConfig loads the configuration file and applies the flags
// added by addInputFlags.
func buildInputConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.Verbose = getVerboseFlag(cmd)

	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.File, err = loadConfigFile(cfg.ConfigFilePath); err != nil {
		return nil, err
	}

	cfg.Title = cfg.File.Title
	if cfg.File.InputFormat != "" {
		cfg.InputFormat = cfg.File.InputFormat
	}
	if cfg.File.Concurrency != nil {
		cfg.Concurrency = *cfg.File.Concurrency
	}

	if flags.Changed("input-format") {
		if cfg.InputFormat, err = flags.GetString("input-format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}

	cfg.Inputs = args
	return cfg, nil
}

// loadConfigFile loads the configuration file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise an empty configuration is used when no file is found.
func loadConfigFile(explicitPath string) (*config.File, error) {
	path := config.FindConfigFile(explicitPath)
	if path == "" {
		if explicitPath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", explicitPath)
		}
		return config.NewFile(), nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return file, nil
}

// setupLogger creates a structured logger on w.
func setupLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	if asJSON {
		return log.NewJSONLogger(w, verbose)
	}
	return log.NewLogger(w, verbose)
}

// buildReport ingests inputs into a new report dated now.
func buildReport(ctx context.Context, cfg *config.Config, inputs []string, stdin io.Reader, logger *slog.Logger) (*model.IssuesReport, error) {
	format, err := source.ParseFormat(cfg.InputFormat)
	if err != nil {
		return nil, err
	}

	sources := make([]source.Source, 0, len(inputs))
	for _, input := range inputs {
		src, err := source.New(input, format, stdin)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	var filter pipeline.IssueFilter
	if cfg.File != nil && cfg.File.HasIssueRules() {
		filter = cfg.File.Apply
	}

	logger.Info("building report",
		"inputs", len(sources),
		"format", format,
		"concurrency", cfg.Concurrency,
	)

	issuesReport := model.NewIssuesReport(cfg.Title, time.Now())
	p := pipeline.NewDefault(pipeline.Options{
		Sources:       sources,
		FilesAnalyzed: cfg.FilesAnalyzed,
		Concurrency:   cfg.Concurrency,
		Filter:        filter,
		Logger:        logger,
	})
	if err := p.Execute(ctx, issuesReport); err != nil {
		return nil, err
	}

	logger.Info("report built",
		"issues", issuesReport.Tally().Total,
		"files", len(issuesReport.ResourcesWithReport()),
		"filesAnalyzed", issuesReport.FilesAnalyzed(),
	)

	return issuesReport, nil
}

// tablePathWidth returns the File column width that fits the terminal
// behind output, or 0 (no limit) when output is not a terminal.
func tablePathWidth(output io.Writer) int {
	f, ok := output.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return max(width-tableFixedWidth, minTablePathWidth)
}

// openOutput returns the report destination: stdout, or path created with
// owner-only permissions. The returned close function is never nil.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Issue messages may quote secrets found by the engine.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// outputReport writes the report in the requested format.
// With --summary, the console summary follows on stderr.
func outputReport(stdout, stderr io.Writer, cfg *config.Config, issuesReport *model.IssuesReport) (err error) {
	output, closeOutput, err := openOutput(stdout, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := newReportWriter(output, cfg)
	if cfg.Summary && (cfg.JSONReport || cfg.MarkdownReport || cfg.TableReport) {
		w = report.NewMultiWriter(w, report.NewConsoleWriter(stderr, report.WithPadWidth(cfg.PadWidth)))
	}

	_, err = w.Write(issuesReport)
	return err
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.TableReport:
		return report.NewTableWriter(output,
			report.WithColors(cfg.Color),
			report.WithMaxPathWidth(tablePathWidth(output)),
		)
	default:
		return report.NewConsoleWriter(output, report.WithPadWidth(cfg.PadWidth))
	}
}
