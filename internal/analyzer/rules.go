package analyzer

import (
	"fmt"

	"github.com/atena-tools/atena/domain"
)

// EvaluateFacts maps extracted facts and thresholds to violations.
//
// Ordering is stable for reproducible reports: function-scoped rules in
// function source order (each function's rules in fixed id order), then
// file-scoped rules in fixed id order. Facts marked unreadable
// short-circuit to a single synthetic violation.
func EvaluateFacts(facts domain.FileFacts, thresholds domain.Thresholds) []domain.Violation {
	if facts.Unreadable {
		return []domain.Violation{{
			FilePath: facts.FilePath,
			Rule:     domain.RuleUnreadableFile,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("File could not be read: %s", facts.UnreadableReason),
		}}
	}

	var violations []domain.Violation
	add := func(v domain.Violation) {
		v.FilePath = facts.FilePath
		violations = append(violations, v)
	}

	for _, fn := range facts.Functions {
		if fn.LineCount > thresholds.MaxFunctionLength {
			add(domain.Violation{
				Function: fn.Name,
				Line:     fn.StartLine,
				Rule:     domain.RuleLongFunction,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Function '%s' is %d lines long (max %d)", fn.Name, fn.LineCount, thresholds.MaxFunctionLength),
			})
		}
		if fn.Complexity > thresholds.MaxComplexity {
			add(domain.Violation{
				Function: fn.Name,
				Line:     fn.StartLine,
				Rule:     domain.RuleHighComplexity,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Function '%s' has estimated complexity %d (max %d)", fn.Name, fn.Complexity, thresholds.MaxComplexity),
			})
		}
		if fn.ParamCount > thresholds.MaxParams {
			add(domain.Violation{
				Function: fn.Name,
				Line:     fn.StartLine,
				Rule:     domain.RuleTooManyParams,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Function '%s' has %d parameters (max %d)", fn.Name, fn.ParamCount, thresholds.MaxParams),
			})
		}
		if !fn.HasDocstring {
			add(domain.Violation{
				Function: fn.Name,
				Line:     fn.StartLine,
				Rule:     domain.RuleMissingDocstring,
				Severity: domain.SeverityInfo,
				Message:  fmt.Sprintf("Function '%s' has no docstring", fn.Name),
			})
		}
	}

	for _, line := range facts.LongLines {
		add(domain.Violation{
			Line:     line,
			Rule:     domain.RuleLongLine,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Line %d exceeds %d characters", line, thresholds.MaxLineLength),
		})
	}
	for _, line := range facts.BareExceptLines {
		add(domain.Violation{
			Line:     line,
			Rule:     domain.RuleBareExcept,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Catch-all exception handler at line %d", line),
		})
	}
	for _, line := range facts.PrintLines {
		add(domain.Violation{
			Line:     line,
			Rule:     domain.RulePrintNotLog,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Direct console output at line %d; prefer logging", line),
		})
	}
	for _, line := range facts.MarkerLines {
		add(domain.Violation{
			Line:     line,
			Rule:     domain.RulePendingMarker,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Pending TODO/FIXME marker at line %d", line),
		})
	}
	for _, cls := range facts.Classes {
		if cls.MethodCount > thresholds.MaxClassMethods {
			add(domain.Violation{
				Line:     cls.StartLine,
				Rule:     domain.RuleLargeClass,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Class '%s' has %d methods (max %d)", cls.Name, cls.MethodCount, thresholds.MaxClassMethods),
			})
		}
	}

	return violations
}

// Evaluate implements the rule half of the Analyzer interface for Python.
// The Python rule set is the shared rule table; its bare-except and
// print heuristics are defined by the extractor's patterns.
func (a *PythonAnalyzer) Evaluate(facts domain.FileFacts, thresholds domain.Thresholds) []domain.Violation {
	return EvaluateFacts(facts, thresholds)
}
