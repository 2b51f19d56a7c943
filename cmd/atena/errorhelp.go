package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atena-tools/atena/app"
	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/classifier"
	"github.com/atena-tools/atena/service"
)

var (
	errorHelpFormat string
	errorHelpJSON   bool
)

func errorHelpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errorhelp [message...]",
		Short: "Explain a Python error message",
		Long: `Classify a Python error message and suggest a likely fix.

The message is taken from the arguments, or from stdin when no
arguments are given. Classification always succeeds; unrecognized
messages resolve to a generic category.

Examples:
  atena errorhelp "ModuleNotFoundError: No module named 'requests'"
  python app.py 2>&1 | atena errorhelp
  atena errorhelp --json "KeyError: 'user_id'"`,
		RunE: runErrorHelp,
	}

	cmd.Flags().StringVarP(&errorHelpFormat, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&errorHelpJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")

	return cmd
}

func runErrorHelp(cmd *cobra.Command, args []string) error {
	errorText := strings.Join(args, " ")
	if strings.TrimSpace(errorText) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read error message from stdin: %w", err)
		}
		errorText = string(data)
	}

	format := domain.OutputFormatText
	if errorHelpJSON || errorHelpFormat == "json" {
		format = domain.OutputFormatJSON
	} else if errorHelpFormat == "yaml" || errorHelpFormat == "yml" {
		format = domain.OutputFormatYAML
	}

	uc := app.NewErrorHelpUseCase(classifier.NewDefault(), service.NewOutputFormatter())
	_, err := uc.Execute(errorText, format, os.Stdout)
	return err
}
