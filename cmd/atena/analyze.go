package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/atena-tools/atena/app"
	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/analyzer"
	"github.com/atena-tools/atena/internal/config"
	"github.com/atena-tools/atena/service"
)

var (
	outputFormat    string
	jsonOutput      bool
	yamlOutput      bool
	outputPath      string
	configPath      string
	excludePatterns []string
	noProgress      bool

	maxFunctionLength int
	maxComplexity     int
	maxParams         int
	maxLineLength     int
	maxClassMethods   int
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze Python files for quality problems",
		Long: `Analyze Python files for long functions, high complexity, style
problems, and more. The path may be a single file or a directory tree.

Examples:
  atena analyze src/
  atena analyze --max-function-length 30 src/
  atena analyze --json src/
  atena analyze --exclude 'migrations/' --exclude '*_pb2.py' .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringSliceVarP(&excludePatterns, "exclude", "e", nil,
		"Additional gitignore-style patterns to skip")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"Disable the progress bar")

	addThresholdFlags(cmd)

	return cmd
}

// addThresholdFlags registers the per-rule limit flags shared by
// analyze and check. A zero value means "use the configured limit".
func addThresholdFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&maxFunctionLength, "max-function-length", 0,
		"Maximum allowed function length in lines")
	cmd.Flags().IntVar(&maxComplexity, "max-complexity", 0,
		"Maximum allowed cyclomatic complexity per function")
	cmd.Flags().IntVar(&maxParams, "max-params", 0,
		"Maximum allowed parameters per function")
	cmd.Flags().IntVar(&maxLineLength, "max-line-length", 0,
		"Maximum allowed line length in characters")
	cmd.Flags().IntVar(&maxClassMethods, "max-class-methods", 0,
		"Maximum allowed methods per class")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	format, err := resolveFormat()
	if err != nil {
		return err
	}

	cfg, err := loadMergedConfig()
	if err != nil {
		return err
	}

	var writer io.Writer = os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	// Progress goes to stderr, so it is safe alongside structured output
	pm := service.NewProgressManager(!noProgress && format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewAnalyzeServiceWithProgress(analyzer.DefaultRegistry(), cfg.Analysis, pm)
	uc := app.NewAnalyzeUseCase(svc, service.NewOutputFormatter())

	_, err = uc.Execute(context.Background(), domain.AnalyzeRequest{
		Path:            path,
		Thresholds:      cfg.Thresholds,
		ExcludePatterns: append(cfg.Analysis.Exclude, excludePatterns...),
		OutputFormat:    format,
		OutputWriter:    writer,
	})
	if err != nil {
		return err
	}

	if outputPath != "" {
		fmt.Printf("Report saved to: %s\n", outputPath)
	}
	return nil
}

// resolveFormat maps the format flags to an output format
func resolveFormat() (domain.OutputFormat, error) {
	if jsonOutput {
		return domain.OutputFormatJSON, nil
	}
	if yamlOutput {
		return domain.OutputFormatYAML, nil
	}
	switch outputFormat {
	case "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml", "yml":
		return domain.OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// loadMergedConfig loads the config file and applies flag overrides
func loadMergedConfig() (*config.Config, error) {
	loader := service.NewConfigurationLoader()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = loader.LoadConfig(configPath)
	} else {
		cfg, err = loader.LoadDefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	return loader.MergeConfig(cfg, service.ThresholdOverrides{
		MaxFunctionLength: maxFunctionLength,
		MaxComplexity:     maxComplexity,
		MaxParams:         maxParams,
		MaxLineLength:     maxLineLength,
		MaxClassMethods:   maxClassMethods,
	}), nil
}
