package app

import (
	"context"
	"fmt"
	"time"

	"github.com/atena-tools/atena/domain"
)

// AnalyzeUseCase orchestrates the analysis workflow: it validates the
// request, runs the analyze service, and writes the report
type AnalyzeUseCase struct {
	service   domain.AnalyzeService
	formatter domain.OutputFormatter
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(service domain.AnalyzeService, formatter domain.OutputFormatter) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute performs the complete analysis workflow. The report is
// returned so callers can derive an exit status from its contents.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) (*domain.Report, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	startTime := time.Now()

	report, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.OutputWriter != nil {
		duration := time.Since(startTime)
		if err := uc.formatter.WriteWithDuration(report, req.OutputFormat, req.OutputWriter, duration); err != nil {
			return nil, domain.NewAnalysisError("failed to write report", err)
		}
	}

	return report, nil
}

func (uc *AnalyzeUseCase) validateRequest(req domain.AnalyzeRequest) error {
	if req.Path == "" {
		return fmt.Errorf("no input path specified")
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
	case "":
		// Callers without a writer may leave the format unset
		if req.OutputWriter != nil {
			return fmt.Errorf("no output format specified")
		}
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	return nil
}
