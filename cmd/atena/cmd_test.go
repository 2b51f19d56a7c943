package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atena-tools/atena/domain"
	"github.com/atena-tools/atena/internal/testutil"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup (t.Chdir requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("Chdir back: %v", err)
		}
	})
}

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	expectedFlags := []string{
		"format", "json", "yaml", "output", "config", "exclude", "no-progress",
		"max-function-length", "max-complexity", "max-params",
		"max-line-length", "max-class-methods",
	}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"c": "config",
		"e": "exclude",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestAnalyzeCmd_DefaultValues(t *testing.T) {
	cmd := analyzeCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be 'text', got '%s'", formatFlag.DefValue)
	}

	for _, flagName := range []string{
		"max-function-length", "max-complexity", "max-params",
		"max-line-length", "max-class-methods",
	} {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Fatalf("%s flag not found", flagName)
		}
		// Zero means "use the configured limit"
		if flag.DefValue != "0" {
			t.Errorf("Expected default %s to be '0', got '%s'", flagName, flag.DefValue)
		}
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{
		"strict", "json", "verbose", "config", "exclude",
		"max-function-length", "max-complexity", "max-params",
		"max-line-length", "max-class-methods",
	}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_MissingPathExitCode(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{"/nonexistent/path"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error for missing path")
	}
	exitErr, ok := err.(*CheckExitError)
	if !ok {
		t.Fatalf("Expected CheckExitError, got %T", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Expected exit code 2 for analysis error, got %d", exitErr.Code)
	}
}

func TestCheckCmd_WarningsExitCode(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "app.py",
		"def risky():\n    \"\"\"Doc.\"\"\"\n    try:\n        pass\n    except:\n        pass\n")
	chdir(t, dir)

	cmd := checkCmd()
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected error when warnings are found")
	}
	exitErr, ok := err.(*CheckExitError)
	if !ok {
		t.Fatalf("Expected CheckExitError, got %T", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Expected exit code 1 for warnings, got %d", exitErr.Code)
	}
}

func TestCheckCmd_InfoOnlyPassesUnlessStrict(t *testing.T) {
	dir := t.TempDir()
	// A missing docstring is INFO severity
	testutil.WriteFile(t, dir, "app.py", "def bare():\n    return 1\n")
	chdir(t, dir)

	cmd := checkCmd()
	cmd.SetArgs([]string{dir})
	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected INFO-only findings to pass by default, got %v", err)
	}

	cmd = checkCmd()
	cmd.SetArgs([]string{"--strict", dir})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("Expected --strict to fail on INFO findings")
	}
	if exitErr, ok := err.(*CheckExitError); !ok || exitErr.Code != 1 {
		t.Errorf("Expected exit code 1 under --strict, got %v", err)
	}
}

func TestCheckCmd_CleanTreePasses(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "app.py", "def ok():\n    \"\"\"Doc.\"\"\"\n    return 1\n")
	chdir(t, dir)

	cmd := checkCmd()
	cmd.SetArgs([]string{dir})

	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected clean tree to pass, got %v", err)
	}
}

func TestErrorHelpCmd_FlagsExist(t *testing.T) {
	cmd := errorHelpCmd()

	for _, flagName := range []string{"format", "json"} {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestErrorHelpCmd_WithArgs(t *testing.T) {
	cmd := errorHelpCmd()
	cmd.SetArgs([]string{"KeyError:", "'user_id'"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected classification to succeed, got %v", err)
	}
}

func TestResolveFormat(t *testing.T) {
	defer func() {
		outputFormat = "text"
		jsonOutput = false
		yamlOutput = false
	}()

	tests := []struct {
		name     string
		format   string
		json     bool
		yaml     bool
		expected string
		wantErr  bool
	}{
		{"default text", "text", false, false, "text", false},
		{"format json", "json", false, false, "json", false},
		{"format yaml", "yaml", false, false, "yaml", false},
		{"format yml alias", "yml", false, false, "yaml", false},
		{"json shorthand wins", "text", true, false, "json", false},
		{"yaml shorthand wins", "text", false, true, "yaml", false},
		{"unknown format", "xml", false, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFormat = tt.format
			jsonOutput = tt.json
			yamlOutput = tt.yaml

			format, err := resolveFormat()
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(format) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, format)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command failed: %v", err)
	}
}

func TestCheckResultJSONCarriesFilePaths(t *testing.T) {
	report := &domain.Report{
		Files: []domain.FileReport{
			{
				FilePath: "/src/app.py",
				Violations: []domain.Violation{
					{
						FilePath: "/src/app.py",
						Function: "long_one",
						Line:     1,
						Rule:     domain.RuleLongFunction,
						Severity: domain.SeverityWarning,
						Message:  "Function 'long_one' is 80 lines long (max 50)",
					},
				},
			},
		},
	}

	result := checkResult{Violations: collectViolations(report)}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to encode check result: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"file_path":"/src/app.py"`) {
		t.Errorf("Encoded check result missing file attribution:\n%s", out)
	}
	if !strings.Contains(out, `"rule":"long-function"`) {
		t.Errorf("Encoded check result missing rule id:\n%s", out)
	}
}

func TestCheckCmd_ThresholdFlagOverride(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "app.py",
		"def wide(a, b, c, d, e, f, g):\n    \"\"\"Doc.\"\"\"\n    return 1\n")
	chdir(t, dir)

	cmd := checkCmd()
	cmd.SetArgs([]string{dir})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected 7 params to fail the default limit")
	}

	cmd = checkCmd()
	cmd.SetArgs([]string{"--max-params", "10", dir})
	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected raised --max-params to make the check pass, got %v", err)
	}
}

func TestCheckCmd_ConfigFileOverridesThresholds(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "app.py", "def f(a, b, c, d, e, f, g):\n    \"\"\"Doc.\"\"\"\n    return 1\n")
	configPath := testutil.WriteFile(t, dir, "custom.yaml", "thresholds:\n  max_params: 10\n")

	cmd := checkCmd()
	cmd.SetArgs([]string{"--config", configPath, filepath.Join(dir, "app.py")})

	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected raised max_params to make the check pass, got %v", err)
	}
}
