package classifier

import (
	"strings"
	"testing"

	"github.com/atena-tools/atena/domain"
)

func TestClassify_ModuleNotFound(t *testing.T) {
	c := NewDefault()

	result := c.Classify("ModuleNotFoundError: No module named 'requests'")

	if result.Category != CategoryImport {
		t.Errorf("Expected category %s, got %s", CategoryImport, result.Category)
	}
	if !strings.Contains(result.Suggestion, "pip install requests") {
		t.Errorf("Suggestion should name the missing module: %s", result.Suggestion)
	}
	if result.Documentation == nil {
		t.Fatal("IMPORT classification should carry documentation")
	}
	if !strings.Contains(result.Documentation.URL, "docs.python.org") ||
		!strings.Contains(result.Documentation.URL, "import") {
		t.Errorf("Documentation should reference Python's import system: %s", result.Documentation.URL)
	}
}

func TestClassify_UnmatchedInput(t *testing.T) {
	c := NewDefault()

	result := c.Classify("garbage unrelated text")

	if result.Category != CategoryUnknown {
		t.Errorf("Expected category %s, got %s", CategoryUnknown, result.Category)
	}
	if result.Suggestion == "" {
		t.Error("Fallback suggestion must be non-empty")
	}
	if result.Documentation != nil {
		t.Error("Fallback classification should carry no documentation")
	}
}

func TestClassify_Categories(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		errorText string
		want      string
	}{
		{"ImportError: cannot import name 'foo' from 'bar'", CategoryImport},
		{"SyntaxError: invalid syntax", CategorySyntax},
		{"IndentationError: unexpected indent", CategorySyntax},
		{"TypeError: unsupported operand type(s) for +: 'int' and 'str'", CategoryType},
		{"ValueError: invalid literal for int() with base 10: 'x'", CategoryValue},
		{"AttributeError: 'NoneType' object has no attribute 'split'", CategoryAttribute},
		{"KeyError: 'missing'", CategoryKey},
		{"IndexError: list index out of range", CategoryIndex},
		{"FileNotFoundError: [Errno 2] No such file or directory: 'cfg.ini'", CategoryFile},
		{"PermissionError: [Errno 13] Permission denied: '/etc/shadow'", CategoryPermission},
		{"ConnectionRefusedError: [Errno 111] Connection refused", CategoryConnection},
		{"TimeoutError: timed out", CategoryConnection},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			result := c.Classify(tt.errorText)
			if result.Category != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.errorText, result.Category, tt.want)
			}
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := NewDefault()

	result := c.Classify("MODULENOTFOUNDERROR: no module named 'x'")
	if result.Category != CategoryImport {
		t.Errorf("Matching should be case-insensitive, got %s", result.Category)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := New([]Entry{
		{Category: "FIRST", Keywords: []string{"boom"}, Suggestion: "first"},
		{Category: "SECOND", Keywords: []string{"boom"}, Suggestion: "second"},
	})

	result := c.Classify("boom happened")
	if result.Category != "FIRST" {
		t.Errorf("First table entry should win, got %s", result.Category)
	}
}

func TestClassify_InjectedTable(t *testing.T) {
	doc := &domain.DocumentationEntry{Title: "Custom", URL: "https://example.com"}
	c := New([]Entry{
		{Category: "CUSTOM", Keywords: []string{"widget failure"}, Suggestion: "restart the widget", Doc: doc},
	})

	result := c.Classify("fatal: WIDGET FAILURE in sector 7")
	if result.Category != "CUSTOM" {
		t.Errorf("Expected CUSTOM, got %s", result.Category)
	}
	if result.Documentation != doc {
		t.Error("Injected documentation should pass through")
	}

	// Default keywords are absent from the injected table
	if got := c.Classify("TypeError: nope"); got.Category != CategoryUnknown {
		t.Errorf("Injected table should not know default categories, got %s", got.Category)
	}
}

func TestClassify_ImportWithoutModuleName(t *testing.T) {
	c := NewDefault()

	result := c.Classify("ImportError: attempted relative import with no known parent package")
	if result.Category != CategoryImport {
		t.Fatalf("Expected IMPORT, got %s", result.Category)
	}
	// No quoted module name: falls back to the static suggestion
	if !strings.Contains(result.Suggestion, "pip install") {
		t.Errorf("Static suggestion should still mention installation: %s", result.Suggestion)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewDefault()

	first := c.Classify("KeyError: 'id'")
	second := c.Classify("KeyError: 'id'")
	if first != second {
		t.Error("Classification must be reproducible for identical input")
	}
}
