package config

import (
	"fmt"
	"strings"

	"github.com/atena-tools/atena/domain"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPresets returns the threshold sets for each strictness level.
// Standard equals the built-in defaults.
func StrictnessPresets() map[Strictness]domain.Thresholds {
	return map[Strictness]domain.Thresholds{
		StrictnessRelaxed: {
			MaxFunctionLength: 80,
			MaxComplexity:     15,
			MaxParams:         8,
			MaxLineLength:     160,
			MaxClassMethods:   30,
		},
		StrictnessStandard: domain.DefaultThresholds(),
		StrictnessStrict: {
			MaxFunctionLength: 30,
			MaxComplexity:     8,
			MaxParams:         4,
			MaxLineLength:     100,
			MaxClassMethods:   12,
		},
	}
}

// GenerateConfigTemplate renders a YAML config file for the given
// strictness level. The full template documents every option; minimal
// emits thresholds only.
func GenerateConfigTemplate(strictness Strictness, minimal bool) string {
	th, ok := StrictnessPresets()[strictness]
	if !ok {
		th = domain.DefaultThresholds()
	}

	var sb strings.Builder

	if !minimal {
		sb.WriteString("# atena configuration\n")
		fmt.Fprintf(&sb, "# Generated with the %q strictness preset.\n\n", strictness)
	}

	sb.WriteString("thresholds:\n")
	if !minimal {
		sb.WriteString("  # Maximum function length in lines\n")
	}
	fmt.Fprintf(&sb, "  max_function_length: %d\n", th.MaxFunctionLength)
	if !minimal {
		sb.WriteString("  # Maximum estimated cyclomatic complexity per function\n")
	}
	fmt.Fprintf(&sb, "  max_complexity: %d\n", th.MaxComplexity)
	if !minimal {
		sb.WriteString("  # Maximum parameter count per function\n")
	}
	fmt.Fprintf(&sb, "  max_params: %d\n", th.MaxParams)
	if !minimal {
		sb.WriteString("  # Maximum line length in characters\n")
	}
	fmt.Fprintf(&sb, "  max_line_length: %d\n", th.MaxLineLength)
	if !minimal {
		sb.WriteString("  # Maximum method count per class\n")
	}
	fmt.Fprintf(&sb, "  max_class_methods: %d\n", th.MaxClassMethods)

	if minimal {
		return sb.String()
	}

	sb.WriteString(`
analysis:
  # gitignore-style patterns skipped in addition to the built-in
  # denylist (hidden dirs, __pycache__, node_modules, venv, ...)
  exclude: []
  # Files larger than this many bytes are reported as unreadable
  max_file_size: 1048576
  # Concurrent extraction workers; 0 selects the CPU count
  workers: 0

output:
  # Output format: text, json, yaml
  format: text
`)

	return sb.String()
}
