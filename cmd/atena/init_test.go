package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atena-tools/atena/internal/config"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atena.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"thresholds",
		"max_function_length",
		"max_complexity",
		"max_params",
		"max_line_length",
		"max_class_methods",
		"analysis",
		"output",
	}
	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_GeneratedConfigLoads(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atena.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config failed to load: %v", err)
	}
	if cfg.Thresholds != config.DefaultConfig().Thresholds {
		t.Errorf("Expected standard preset thresholds, got %+v", cfg.Thresholds)
	}
}

func TestInitCommand_StrictnessPreset(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atena.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--strictness", "strict"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config failed to load: %v", err)
	}
	want := config.StrictnessPresets()[config.StrictnessStrict]
	if cfg.Thresholds != want {
		t.Errorf("Expected strict preset %+v, got %+v", want, cfg.Thresholds)
	}
}

func TestInitCommand_UnknownStrictness(t *testing.T) {
	cmd := initCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "atena.yaml"), "--strictness", "brutal"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for unknown strictness level")
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atena.yaml")
	if err := os.WriteFile(configPath, []byte("existing\n"), 0o644); err != nil {
		t.Fatalf("Failed to seed config file: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when config file already exists")
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atena.yaml")
	if err := os.WriteFile(configPath, []byte("existing\n"), 0o644); err != nil {
		t.Fatalf("Failed to seed config file: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if strings.Contains(string(content), "existing") {
		t.Error("Config file was not overwritten")
	}
}

func TestInitCommand_MinimalTemplate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atena.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--minimal"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if strings.Contains(string(content), "#") {
		t.Error("Minimal template should not contain comments")
	}
	if !strings.Contains(string(content), "thresholds") {
		t.Error("Minimal template missing thresholds section")
	}
}

func TestInitCommand_MissingParentDirectory(t *testing.T) {
	cmd := initCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing", "atena.yaml")})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for a missing parent directory")
	}
}
