package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/analyzer"
	"github.com/atena-tools/atena/internal/config"
)

// AnalyzeServiceImpl implements the AnalyzeService interface: it walks
// the requested path, dispatches each file to the analyzer registered
// for its extension, and aggregates violations into a report in
// lexicographic path order.
type AnalyzeServiceImpl struct {
	registry *analyzer.Registry
	analysis config.AnalysisConfig
	progress domain.ProgressManager
	executor *ParallelExecutor
}

// NewAnalyzeService creates a new analyze service implementation
func NewAnalyzeService(registry *analyzer.Registry, analysis config.AnalysisConfig) *AnalyzeServiceImpl {
	return &AnalyzeServiceImpl{
		registry: registry,
		analysis: analysis,
		executor: NewParallelExecutorWithWorkers(analysis.Workers),
	}
}

// NewAnalyzeServiceWithProgress creates an analyze service with progress reporting
func NewAnalyzeServiceWithProgress(registry *analyzer.Registry, analysis config.AnalysisConfig, pm domain.ProgressManager) *AnalyzeServiceImpl {
	s := NewAnalyzeService(registry, analysis)
	s.progress = pm
	return s
}

// fileResult carries one file's outcome through the ordered merge
type fileResult struct {
	report    domain.FileReport
	functions int
}

// Analyze walks the requested path and produces a complete report.
// Only a missing root path or an invalid threshold aborts the call;
// every per-file problem is recorded as a violation and the walk
// continues.
func (s *AnalyzeServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.Report, error) {
	if err := req.Thresholds.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return nil, domain.NewNotFoundError(req.Path, err)
	}

	var files []string
	var warnings []string

	if info.IsDir() {
		collector := NewFileCollector(req.ExcludePatterns)
		files, err = collector.Collect(req.Path, func(ext string) bool {
			_, ok := s.registry.Lookup(ext)
			return ok
		})
		if err != nil {
			return nil, domain.NewAnalysisError(fmt.Sprintf("failed to walk %s", req.Path), err)
		}
	} else {
		ext := filepath.Ext(req.Path)
		if _, ok := s.registry.Lookup(ext); ok {
			files = []string{req.Path}
		} else {
			warnings = append(warnings, fmt.Sprintf("unsupported extension: %s", req.Path))
		}
	}

	var task domain.TaskProgress = noOpTask{}
	if s.progress != nil {
		task = s.progress.StartTask("Analyzing files", len(files))
	}
	defer task.Complete()

	results, err := MapOrdered(ctx, s.executor, files, func(ctx context.Context, path string) (fileResult, error) {
		select {
		case <-ctx.Done():
			return fileResult{}, fmt.Errorf("analysis cancelled: %w", ctx.Err())
		default:
		}
		r := s.analyzeFile(path, req.Thresholds)
		task.Increment(1)
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Files:    make([]domain.FileReport, 0, len(results)),
		Warnings: warnings,
		Summary: domain.ReportSummary{
			FilesAnalyzed:    len(results),
			ViolationsByRule: make(map[string]int),
		},
	}
	for _, r := range results {
		report.Files = append(report.Files, r.report)
		report.Summary.FunctionsMeasured += r.functions
		for _, v := range r.report.Violations {
			report.Summary.ViolationsByRule[v.Rule]++
			switch v.Severity {
			case domain.SeverityWarning:
				report.Summary.WarningCount++
			case domain.SeverityInfo:
				report.Summary.InfoCount++
			}
		}
	}
	if len(report.Summary.ViolationsByRule) == 0 {
		report.Summary.ViolationsByRule = nil
	}

	return report, nil
}

// analyzeFile extracts facts from one file and evaluates them.
// Read and decode failures degrade to an unreadable-file violation.
func (s *AnalyzeServiceImpl) analyzeFile(path string, thresholds domain.Thresholds) fileResult {
	a, ok := s.registry.Lookup(filepath.Ext(path))
	if !ok {
		// Collection is keyed by registered extensions, so this only
		// happens when the registry changes mid-walk
		return fileResult{report: domain.FileReport{FilePath: path, Violations: []domain.Violation{}}}
	}

	facts := s.extractFacts(a, path, thresholds)
	violations := a.Evaluate(facts, thresholds)
	if violations == nil {
		violations = []domain.Violation{}
	}

	return fileResult{
		report:    domain.FileReport{FilePath: path, Violations: violations},
		functions: len(facts.Functions),
	}
}

func (s *AnalyzeServiceImpl) extractFacts(a domain.Analyzer, path string, thresholds domain.Thresholds) domain.FileFacts {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileFacts{
			FilePath:         path,
			Unreadable:       true,
			UnreadableReason: err.Error(),
		}
	}
	if info.Size() > s.analysis.MaxFileSize {
		return domain.FileFacts{
			FilePath:         path,
			Unreadable:       true,
			UnreadableReason: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), s.analysis.MaxFileSize),
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.FileFacts{
			FilePath:         path,
			Unreadable:       true,
			UnreadableReason: err.Error(),
		}
	}

	return a.Extract(path, content, thresholds)
}

// noOpTask is the progress sink used when no progress manager is set
type noOpTask struct{}

func (noOpTask) Increment(int)   {}
func (noOpTask) Describe(string) {}
func (noOpTask) Complete()       {}
