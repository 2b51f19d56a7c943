package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/atena-tools/atena/app"
	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/analyzer"
	"github.com/atena-tools/atena/internal/config"
	"github.com/atena-tools/atena/internal/version"
	"github.com/atena-tools/atena/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkStrict     bool
	checkJSON       bool
	checkVerbose    bool
	checkConfigPath string
	checkExclude    []string
)

// checkResult is the machine-readable summary emitted by check --json
type checkResult struct {
	Passed      bool                 `json:"passed"`
	ExitCode    int                  `json:"exit_code"`
	Violations  []checkViolation     `json:"violations"`
	Summary     domain.ReportSummary `json:"summary"`
	DurationMs  int64                `json:"duration_ms"`
	GeneratedAt string               `json:"generated_at"`
	Version     string               `json:"version"`
}

// checkViolation pairs one violation with its file path. The report
// envelope keys violations by path; the flattened check output has to
// carry the path on each entry instead.
type checkViolation struct {
	FilePath string          `json:"file_path"`
	Function string          `json:"function,omitempty"`
	Line     int             `json:"line,omitempty"`
	Rule     string          `json:"rule"`
	Severity domain.Severity `json:"severity"`
	Message  string          `json:"message"`
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Fast quality check for CI/CD pipelines",
		Long: `Run the analysis and derive an exit status from the result.

By default only WARNING-severity violations fail the check; use
--strict to fail on INFO-severity findings as well.

Exit codes:
  0 - Check passed
  1 - Quality threshold(s) violated
  2 - Analysis error (path not found, invalid threshold, etc.)

Examples:
  # Basic check with configured thresholds
  atena check src/

  # Fail on any finding, including INFO
  atena check --strict src/

  # JSON output for machine parsing
  atena check --json src/`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false,
		"Fail on INFO-severity findings, not just warnings")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringSliceVarP(&checkExclude, "exclude", "e", nil,
		"Additional gitignore-style patterns to skip")

	addThresholdFlags(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	startTime := time.Now()

	loader := service.NewConfigurationLoader()
	var cfg *config.Config
	if checkConfigPath != "" {
		loaded, err := loader.LoadConfig(checkConfigPath)
		if err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
		}
		cfg = loaded
	} else {
		loaded, err := loader.LoadDefaultConfig()
		if err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
		}
		cfg = loaded
	}

	cfg = loader.MergeConfig(cfg, service.ThresholdOverrides{
		MaxFunctionLength: maxFunctionLength,
		MaxComplexity:     maxComplexity,
		MaxParams:         maxParams,
		MaxLineLength:     maxLineLength,
		MaxClassMethods:   maxClassMethods,
	})

	svc := service.NewAnalyzeService(analyzer.DefaultRegistry(), cfg.Analysis)
	uc := app.NewAnalyzeUseCase(svc, service.NewOutputFormatter())

	report, err := uc.Execute(context.Background(), domain.AnalyzeRequest{
		Path:            path,
		Thresholds:      cfg.Thresholds,
		ExcludePatterns: append(cfg.Analysis.Exclude, checkExclude...),
	})
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	failures := report.Summary.WarningCount
	if checkStrict {
		failures = report.TotalViolations()
	}

	result := &checkResult{
		Passed:      failures == 0,
		Summary:     report.Summary,
		Violations:  collectViolations(report),
		DurationMs:  time.Since(startTime).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	if !result.Passed {
		result.ExitCode = 1
	}

	if checkJSON {
		return outputCheckJSON(result)
	}
	return outputCheckText(result)
}

// collectViolations flattens the per-file report in report order
func collectViolations(report *domain.Report) []checkViolation {
	violations := []checkViolation{}
	for _, file := range report.Files {
		for _, v := range file.Violations {
			violations = append(violations, checkViolation{
				FilePath: file.FilePath,
				Function: v.Function,
				Line:     v.Line,
				Rule:     v.Rule,
				Severity: v.Severity,
				Message:  v.Message,
			})
		}
	}
	return violations
}

func outputCheckText(result *checkResult) error {
	if result.Passed {
		fmt.Println("PASS: All quality checks passed")
		if checkVerbose {
			fmt.Printf("  Files analyzed: %d\n", result.Summary.FilesAnalyzed)
			fmt.Printf("  Functions measured: %d\n", result.Summary.FunctionsMeasured)
			fmt.Printf("  Duration: %dms\n", result.DurationMs)
		}
		return nil
	}

	fmt.Println("FAIL: Quality check failed")
	fmt.Printf("  Violations: %d\n", len(result.Violations))

	for _, v := range result.Violations {
		fmt.Printf("  [%s] %s: %s\n", v.Severity, v.Rule, v.Message)
		if checkVerbose {
			fmt.Printf("         at %s:%d\n", v.FilePath, v.Line)
		}
	}

	if checkVerbose {
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Files: %d\n", result.Summary.FilesAnalyzed)
		fmt.Printf("  Warnings: %d\n", result.Summary.WarningCount)
		fmt.Printf("  Info: %d\n", result.Summary.InfoCount)
		fmt.Printf("  Duration: %dms\n", result.DurationMs)
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *checkResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
