package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	Init(v, "")

	s, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Inputs != "Inputs_Vegetation_CA.txt" {
		t.Errorf("Expected default inputs, got %s", s.Inputs)
	}
	if s.Schema != "vegetation-ca" {
		t.Errorf("Expected default schema, got %s", s.Schema)
	}
	if s.ExportFormat != "yaml" {
		t.Errorf("Expected yaml export, got %s", s.ExportFormat)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "inputs: runs/Inputs_flat.txt\nstrict: true\nexport_format: toml\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	Init(v, path)
	s, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Settings{
		Inputs:       "runs/Inputs_flat.txt",
		Schema:       "vegetation-ca",
		Strict:       true,
		ExportFormat: "toml",
		LogLevel:     "debug",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentOverridesSettings(t *testing.T) {
	t.Setenv("VEGCA_EXPORT_FORMAT", "json")
	t.Setenv("VEGCA_STRICT", "true")
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	Init(v, "")
	s, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}

	if s.ExportFormat != "json" {
		t.Errorf("Expected export format json, got %s", s.ExportFormat)
	}
	if !s.Strict {
		t.Error("Expected strict from environment")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	v := viper.New()
	Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(v); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		hasErr   bool
	}{
		{"valid", Settings{Schema: "vegetation-ca", ExportFormat: "yaml", LogLevel: "info"}, false},
		{"bad format", Settings{Schema: "vegetation-ca", ExportFormat: "xml", LogLevel: "info"}, true},
		{"bad level", Settings{Schema: "vegetation-ca", ExportFormat: "yaml", LogLevel: "loud"}, true},
		{"no schema", Settings{ExportFormat: "yaml", LogLevel: "info"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.hasErr && err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
			if !tt.hasErr && err != nil {
				t.Errorf("Unexpected validation error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	names := []string{"n_short", "PET_method", "LT"}
	environ := []string{
		"HOME=/root",
		"VEGCA_PARAM_N_SHORT=100",
		"VEGCA_PARAM_pet_method=PriestleyTaylor",
		"VEGCA_STRICT=true",
	}

	got, err := EnvOverrides(environ, names)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"n_short": "100", "PET_method": "PriestleyTaylor"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EnvOverrides mismatch (-want +got):\n%s", diff)
	}

	if _, err := EnvOverrides([]string{"VEGCA_PARAM_NOPE=1"}, names); err == nil {
		t.Error("Expected error for unknown parameter")
	}
	if _, err := EnvOverrides([]string{"VEGCA_PARAM_PMB=1"}, []string{"Pmb", "PMB"}); err == nil {
		t.Error("Expected error for ambiguous parameter")
	}
}

func TestEnvOverridesFromProcess(t *testing.T) {
	t.Setenv("VEGCA_PARAM_LT", "2")

	got, err := EnvOverrides(nil, []string{"LT"})
	if err != nil {
		t.Fatal(err)
	}
	if got["LT"] != "2" {
		t.Errorf("Expected LT override 2, got %q", got["LT"])
	}
}

func TestParseSetFlags(t *testing.T) {
	got, err := ParseSetFlags([]string{"n_short=10", "PET_method = Cosine", "empty="})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"n_short": "10", "PET_method": " Cosine", "empty": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSetFlags mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseSetFlags([]string{"novalue"}); err == nil {
		t.Error("Expected error for missing '='")
	}

	merged := MergeOverrides(map[string]string{"a": "env", "b": "env"}, map[string]string{"b": "cli"})
	if merged["a"] != "env" || merged["b"] != "cli" {
		t.Errorf("Expected CLI to win over env, got %v", merged)
	}
}
