package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/analyzer"
	"github.com/atena-tools/atena/internal/classifier"
	"github.com/atena-tools/atena/internal/config"
	"github.com/atena-tools/atena/internal/testutil"
	"github.com/atena-tools/atena/service"
)

func newAnalyzeUseCase() *AnalyzeUseCase {
	svc := service.NewAnalyzeService(analyzer.DefaultRegistry(), config.DefaultConfig().Analysis)
	return NewAnalyzeUseCase(svc, service.NewOutputFormatter())
}

func TestAnalyzeUseCaseExecute(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "app.py", "def bare():\n    return 1\n")

	var buf bytes.Buffer
	report, err := newAnalyzeUseCase().Execute(context.Background(), domain.AnalyzeRequest{
		Path:         dir,
		Thresholds:   domain.DefaultThresholds(),
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.Summary.FilesAnalyzed != 1 {
		t.Errorf("Expected 1 file analyzed, got %d", report.Summary.FilesAnalyzed)
	}
	if !strings.Contains(buf.String(), "missing-docstring") {
		t.Errorf("Expected missing-docstring in output:\n%s", buf.String())
	}
}

func TestAnalyzeUseCaseExecuteWithoutWriter(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "app.py", "def ok():\n    \"\"\"Doc.\"\"\"\n    return 1\n")

	report, err := newAnalyzeUseCase().Execute(context.Background(), domain.AnalyzeRequest{
		Path:       dir,
		Thresholds: domain.DefaultThresholds(),
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if report.TotalViolations() != 0 {
		t.Errorf("Expected no violations, got %d", report.TotalViolations())
	}
}

func TestAnalyzeUseCaseRejectsEmptyPath(t *testing.T) {
	_, err := newAnalyzeUseCase().Execute(context.Background(), domain.AnalyzeRequest{
		Thresholds: domain.DefaultThresholds(),
	})
	if err == nil {
		t.Fatal("Expected error for empty path")
	}
	if !domain.IsErrorCode(err, domain.ErrCodeInvalidInput) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}

func TestAnalyzeUseCaseRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	_, err := newAnalyzeUseCase().Execute(context.Background(), domain.AnalyzeRequest{
		Path:         t.TempDir(),
		Thresholds:   domain.DefaultThresholds(),
		OutputFormat: domain.OutputFormat("xml"),
		OutputWriter: &buf,
	})
	if err == nil {
		t.Error("Expected error for unknown output format")
	}
}

func TestErrorHelpUseCaseExecute(t *testing.T) {
	uc := NewErrorHelpUseCase(classifier.NewDefault(), service.NewOutputFormatter())

	var buf bytes.Buffer
	result, err := uc.Execute("ModuleNotFoundError: No module named 'requests'", domain.OutputFormatText, &buf)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Category != classifier.CategoryImport {
		t.Errorf("Expected IMPORT category, got %s", result.Category)
	}
	if !strings.Contains(buf.String(), "pip install requests") {
		t.Errorf("Expected install suggestion in output:\n%s", buf.String())
	}
}

func TestErrorHelpUseCaseRejectsBlankInput(t *testing.T) {
	uc := NewErrorHelpUseCase(classifier.NewDefault(), service.NewOutputFormatter())

	_, err := uc.Execute("   \n\t", domain.OutputFormatText, nil)
	if err == nil {
		t.Fatal("Expected error for blank input")
	}
	if !domain.IsErrorCode(err, domain.ErrCodeInvalidInput) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}
