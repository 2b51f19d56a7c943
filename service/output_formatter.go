package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/version"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// ReportEnvelope wraps a report with serialization metadata. Files maps
// each analyzed path to its ordered violations; both the JSON and YAML
// encoders emit map keys lexicographically, which matches the report's
// aggregation order.
type ReportEnvelope struct {
	Version     string                        `json:"version" yaml:"version"`
	GeneratedAt string                        `json:"generated_at" yaml:"generated_at"`
	DurationMs  int64                         `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
	Files       map[string][]domain.Violation `json:"files" yaml:"files"`
	Summary     domain.ReportSummary          `json:"summary" yaml:"summary"`
	Warnings    []string                      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewReportEnvelope builds the serialization envelope for a report
func NewReportEnvelope(report *domain.Report, duration time.Duration) ReportEnvelope {
	files := make(map[string][]domain.Violation, len(report.Files))
	for _, f := range report.Files {
		files[f.FilePath] = f.Violations
	}
	return ReportEnvelope{
		Version:     version.Version,
		GeneratedAt: time.Now().Format(time.RFC3339),
		DurationMs:  duration.Milliseconds(),
		Files:       files,
		Summary:     report.Summary,
		Warnings:    report.Warnings,
	}
}

// Write writes the report in the specified format
func (f *OutputFormatterImpl) Write(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	return f.WriteWithDuration(report, format, writer, 0)
}

// WriteWithDuration writes the report with timing metadata
func (f *OutputFormatterImpl) WriteWithDuration(report *domain.Report, format domain.OutputFormat, writer io.Writer, duration time.Duration) error {
	switch format {
	case domain.OutputFormatJSON:
		return writeJSON(writer, NewReportEnvelope(report, duration))
	case domain.OutputFormatYAML:
		return writeYAML(writer, NewReportEnvelope(report, duration))
	case domain.OutputFormatText:
		return f.writeReportText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteClassification writes an error classification result
func (f *OutputFormatterImpl) WriteClassification(result domain.Classification, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return writeJSON(writer, result)
	case domain.OutputFormatYAML:
		return writeYAML(writer, result)
	case domain.OutputFormatText:
		return f.writeClassificationText(result, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeReportText(report *domain.Report, writer io.Writer) error {
	fmt.Fprintln(writer, "Code Quality Report")
	fmt.Fprintln(writer, "===================")
	fmt.Fprintln(writer)

	for _, file := range report.Files {
		if len(file.Violations) == 0 {
			continue
		}
		fmt.Fprintf(writer, "%s\n", file.FilePath)
		for _, v := range file.Violations {
			location := ""
			if v.Line > 0 {
				location = fmt.Sprintf(":%d", v.Line)
			}
			fmt.Fprintf(writer, "  [%s] %s%s %s\n", v.Severity, v.Rule, location, v.Message)
		}
		fmt.Fprintln(writer)
	}

	for _, w := range report.Warnings {
		fmt.Fprintf(writer, "Warning: %s\n", w)
	}

	fmt.Fprintf(writer, "Files analyzed:     %d\n", report.Summary.FilesAnalyzed)
	fmt.Fprintf(writer, "Functions measured: %d\n", report.Summary.FunctionsMeasured)
	fmt.Fprintf(writer, "Warnings:           %d\n", report.Summary.WarningCount)
	fmt.Fprintf(writer, "Info:               %d\n", report.Summary.InfoCount)

	return nil
}

func (f *OutputFormatterImpl) writeClassificationText(result domain.Classification, writer io.Writer) error {
	fmt.Fprintf(writer, "Category:   %s\n", result.Category)
	fmt.Fprintf(writer, "Suggestion: %s\n", result.Suggestion)
	if result.Documentation != nil {
		fmt.Fprintf(writer, "See also:   %s (%s)\n", result.Documentation.Title, result.Documentation.URL)
		if result.Documentation.Description != "" {
			fmt.Fprintf(writer, "            %s\n", result.Documentation.Description)
		}
	}
	return nil
}

// writeJSON writes data as indented JSON to the writer
func writeJSON(writer io.Writer, data any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// writeYAML writes data as YAML to the writer
func writeYAML(writer io.Writer, data any) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(data)
}
