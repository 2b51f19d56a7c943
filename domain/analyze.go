package domain

import (
	"context"
	"io"
	"sort"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Severity represents the severity of a reported violation
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Rule identifiers, in the fixed order violations are emitted per file.
// Function-scoped rules come first (in function source order), then
// file-scoped rules.
const (
	RuleLongFunction     = "long-function"
	RuleHighComplexity   = "high-complexity"
	RuleTooManyParams    = "too-many-params"
	RuleMissingDocstring = "missing-docstring"
	RuleLongLine         = "long-line"
	RuleBareExcept       = "bare-except"
	RulePrintNotLog      = "print-not-log"
	RulePendingMarker    = "pending-marker"
	RuleLargeClass       = "large-class"

	// RuleUnreadableFile is the synthetic rule recorded when a file could
	// not be read or decoded. It short-circuits all other rules for that file.
	RuleUnreadableFile = "unreadable-file"
)

// Thresholds holds the configurable limits that turn facts into violations.
// All values must be positive integers.
type Thresholds struct {
	// MaxFunctionLength is the maximum allowed function length in lines
	MaxFunctionLength int `json:"max_function_length" mapstructure:"max_function_length" yaml:"max_function_length"`

	// MaxComplexity is the maximum allowed cyclomatic complexity estimate
	MaxComplexity int `json:"max_complexity" mapstructure:"max_complexity" yaml:"max_complexity"`

	// MaxParams is the maximum allowed parameter count
	MaxParams int `json:"max_params" mapstructure:"max_params" yaml:"max_params"`

	// MaxLineLength is the maximum allowed line length in characters
	MaxLineLength int `json:"max_line_length" mapstructure:"max_line_length" yaml:"max_line_length"`

	// MaxClassMethods is the maximum allowed number of methods per class
	MaxClassMethods int `json:"max_class_methods" mapstructure:"max_class_methods" yaml:"max_class_methods"`
}

// DefaultThresholds returns the standard threshold values
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxFunctionLength: 50,
		MaxComplexity:     10,
		MaxParams:         5,
		MaxLineLength:     120,
		MaxClassMethods:   20,
	}
}

// Validate checks that every threshold is a positive integer.
// Validation failures are fatal before any file is touched.
func (t Thresholds) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"max_function_length", t.MaxFunctionLength},
		{"max_complexity", t.MaxComplexity},
		{"max_params", t.MaxParams},
		{"max_line_length", t.MaxLineLength},
		{"max_class_methods", t.MaxClassMethods},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return NewInvalidThresholdError(c.name, c.value)
		}
	}
	return nil
}

// FunctionFacts holds the structural measurements for one detected
// function or method. Immutable once produced.
type FunctionFacts struct {
	Name         string `json:"name" yaml:"name"`
	StartLine    int    `json:"start_line" yaml:"start_line"`
	LineCount    int    `json:"line_count" yaml:"line_count"`
	ParamCount   int    `json:"param_count" yaml:"param_count"`
	Complexity   int    `json:"complexity" yaml:"complexity"`
	HasDocstring bool   `json:"has_docstring" yaml:"has_docstring"`
}

// ClassFacts holds the measurements for one detected class definition
type ClassFacts struct {
	Name        string `json:"name" yaml:"name"`
	StartLine   int    `json:"start_line" yaml:"start_line"`
	MethodCount int    `json:"method_count" yaml:"method_count"`
}

// FileFacts holds all structural measurements extracted from a single
// file before any policy is applied
type FileFacts struct {
	FilePath  string          `json:"file_path" yaml:"file_path"`
	LineCount int             `json:"line_count" yaml:"line_count"`
	Functions []FunctionFacts `json:"functions" yaml:"functions"`
	Classes   []ClassFacts    `json:"classes,omitempty" yaml:"classes,omitempty"`

	// Line numbers (1-based) of detected issues, in source order
	LongLines       []int `json:"long_lines,omitempty" yaml:"long_lines,omitempty"`
	BareExceptLines []int `json:"bare_except_lines,omitempty" yaml:"bare_except_lines,omitempty"`
	PrintLines      []int `json:"print_lines,omitempty" yaml:"print_lines,omitempty"`
	MarkerLines     []int `json:"marker_lines,omitempty" yaml:"marker_lines,omitempty"`

	// Unreadable marks files that could not be decoded. When set, the
	// other fields are meaningless and evaluation short-circuits to a
	// single synthetic violation.
	Unreadable       bool   `json:"unreadable,omitempty" yaml:"unreadable,omitempty"`
	UnreadableReason string `json:"unreadable_reason,omitempty" yaml:"unreadable_reason,omitempty"`
}

// Violation represents a single reported rule breach tied to a file
// (and optionally a function)
type Violation struct {
	FilePath string   `json:"-" yaml:"-"`
	Function string   `json:"function,omitempty" yaml:"function,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Rule     string   `json:"rule" yaml:"rule"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// ReportSummary provides aggregate statistics for one analysis run
type ReportSummary struct {
	FilesAnalyzed     int            `json:"files_analyzed" yaml:"files_analyzed"`
	FunctionsMeasured int            `json:"functions_measured" yaml:"functions_measured"`
	WarningCount      int            `json:"warning_count" yaml:"warning_count"`
	InfoCount         int            `json:"info_count" yaml:"info_count"`
	ViolationsByRule  map[string]int `json:"violations_by_rule,omitempty" yaml:"violations_by_rule,omitempty"`
}

// Report is the complete, ordered output of one analyze invocation.
// Files holds one entry per analyzed file, in lexicographic path
// order. Read-only once returned.
type Report struct {
	Files    []FileReport  `json:"files" yaml:"files"`
	Summary  ReportSummary `json:"summary" yaml:"summary"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FileReport pairs one analyzed file with its ordered violations
type FileReport struct {
	FilePath   string      `json:"file_path" yaml:"file_path"`
	Violations []Violation `json:"violations" yaml:"violations"`
}

// Paths returns the report's file paths in report order
func (r *Report) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.FilePath)
	}
	return paths
}

// ViolationsFor returns the violations recorded for the given path,
// or nil if the path is not part of the report
func (r *Report) ViolationsFor(path string) []Violation {
	i := sort.SearchStrings(r.Paths(), path)
	if i < len(r.Files) && r.Files[i].FilePath == path {
		return r.Files[i].Violations
	}
	return nil
}

// TotalViolations returns the total number of recorded violations
func (r *Report) TotalViolations() int {
	return r.Summary.WarningCount + r.Summary.InfoCount
}

// AnalyzeRequest represents a request for code quality analysis
type AnalyzeRequest struct {
	// Path is the file or directory to analyze
	Path string

	// Thresholds are the limits applied by the rule evaluator
	Thresholds Thresholds

	// ExcludePatterns are additional gitignore-style patterns for
	// directories and files to skip
	ExcludePatterns []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
}

// Analyzer is a per-language implementation pairing a metric extractor
// with its applicable rule logic. New language support registers a new
// implementation without modifying the dispatcher.
type Analyzer interface {
	// Language returns the language name this analyzer handles
	Language() string

	// Extensions returns the file extensions (with leading dot,
	// lower-case) this analyzer claims
	Extensions() []string

	// Extract produces structural facts from one file's raw text.
	// It is a pure function of its input and must degrade to
	// best-effort facts on malformed input instead of failing.
	Extract(filePath string, content []byte, thresholds Thresholds) FileFacts

	// Evaluate maps extracted facts and thresholds to zero or more
	// violations, in stable rule order
	Evaluate(facts FileFacts, thresholds Thresholds) []Violation
}

// AnalyzeService defines the core business logic for quality analysis
type AnalyzeService interface {
	// Analyze walks the requested path and produces a complete report
	Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Write writes the formatted report to the writer
	Write(report *Report, format OutputFormat, writer io.Writer) error

	// WriteWithDuration writes the report with timing metadata
	WriteWithDuration(report *Report, format OutputFormat, writer io.Writer, duration time.Duration) error

	// WriteClassification writes an error classification result
	WriteClassification(result Classification, format OutputFormat, writer io.Writer) error
}
