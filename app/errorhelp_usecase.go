package app

import (
	"io"
	"strings"

	"github.com/atena-tools/atena/domain"
)

// ErrorHelpUseCase orchestrates error message classification
type ErrorHelpUseCase struct {
	classifier domain.ErrorClassifier
	formatter  domain.OutputFormatter
}

// NewErrorHelpUseCase creates a new error help use case
func NewErrorHelpUseCase(classifier domain.ErrorClassifier, formatter domain.OutputFormatter) *ErrorHelpUseCase {
	return &ErrorHelpUseCase{
		classifier: classifier,
		formatter:  formatter,
	}
}

// Execute classifies the error text and writes the result.
// Classification itself is total; only a blank message is rejected.
func (uc *ErrorHelpUseCase) Execute(errorText string, format domain.OutputFormat, writer io.Writer) (domain.Classification, error) {
	if strings.TrimSpace(errorText) == "" {
		return domain.Classification{}, domain.NewInvalidInputError("no error message provided", nil)
	}

	result := uc.classifier.Classify(errorText)

	if writer != nil {
		if err := uc.formatter.WriteClassification(result, format, writer); err != nil {
			return domain.Classification{}, domain.NewAnalysisError("failed to write classification", err)
		}
	}

	return result, nil
}
