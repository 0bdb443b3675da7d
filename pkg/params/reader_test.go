package params

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleFile = "testdata/Inputs_Vegetation_CA.txt"

func TestReadFile(t *testing.T) {
	table, err := ReadFile(sampleFile)
	if err != nil {
		t.Fatalf("Failed to read parameters: %v", err)
	}

	if table.Len() != 43 {
		t.Errorf("Expected 43 parameters, got %d", table.Len())
	}

	nShort, err := table.Int("n_short")
	if err != nil || nShort != 6600 {
		t.Errorf("Expected n_short 6600, got %d (%v)", nShort, err)
	}

	meanStormDry, err := table.Float("mean_storm_dry")
	if err != nil || meanStormDry != 2.016 {
		t.Errorf("Expected mean_storm_dry 2.016, got %f (%v)", meanStormDry, err)
	}

	method, err := table.String("PET_method")
	if err != nil || method != "Cosine" {
		t.Errorf("Expected PET_method 'Cosine', got '%s' (%v)", method, err)
	}

	deltaD, _ := table.Get("DeltaD")
	if deltaD.Kind() != KindFloat {
		t.Errorf("Expected DeltaD to be a float, got %s", deltaD.Kind())
	}

	lt, _ := table.Get("LT")
	if lt.Kind() != KindInt {
		t.Errorf("Expected LT to be an integer, got %s", lt.Kind())
	}

	entry, ok := table.Lookup("n_short")
	if !ok {
		t.Fatal("n_short not found")
	}
	if entry.Description != "Number of storms for short simulation that plots hydrologic parameters" {
		t.Errorf("Unexpected description: %q", entry.Description)
	}
	if entry.Line != 6 {
		t.Errorf("Expected n_short on line 6, got %d", entry.Line)
	}

	names := table.Names()
	if names[0] != "n_short" || names[len(names)-1] != "tpmaxTreeSeedling" {
		t.Errorf("Unexpected order: first %s, last %s", names[0], names[len(names)-1])
	}
}

func TestParseExamples(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "integer",
			input: "n_short:\n6600\n",
			want:  map[string]any{"n_short": 6600},
		},
		{
			name:  "float",
			input: "mean_storm_dry:\n2.016\n",
			want:  map[string]any{"mean_storm_dry": 2.016},
		},
		{
			name:  "string",
			input: "PET_method:\nCosine\n",
			want:  map[string]any{"PET_method": "Cosine"},
		},
		{
			name:  "comments and blank lines",
			input: "# header\n\n  # indented comment\nrunon: # mm\n\n# between\n0.\n",
			want:  map[string]any{"runon": 0.0},
		},
		{
			name:  "no trailing newline",
			input: "ING:\n2",
			want:  map[string]any{"ING": 2},
		},
		{
			name:  "crlf and bom",
			input: "\ufeffLT:\r\n0\r\nND:\r\n365.\r\n",
			want:  map[string]any{"LT": 0, "ND": 365.0},
		},
		{
			name:  "empty file",
			input: "",
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, table.Map()); diff != "" {
				t.Errorf("Map() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		line     int
	}{
		{
			name:     "name followed by name",
			input:    "n_short:\nn_long_DEM:\n1320\n",
			sentinel: ErrMalformedEntry,
			line:     1,
		},
		{
			name:     "name at end of file",
			input:    "n_short:\n6600\nPET_method:  # trailing\n\n# done\n",
			sentinel: ErrMalformedEntry,
			line:     3,
		},
		{
			name:     "value without name",
			input:    "n_short:\n6600\n1320\n",
			sentinel: ErrMalformedEntry,
			line:     3,
		},
		{
			name:     "empty name",
			input:    ": nothing here\n1\n",
			sentinel: ErrMalformedEntry,
			line:     1,
		},
		{
			name:     "duplicate",
			input:    "n_short:\n6600\nn_short:\n10\n",
			sentinel: ErrDuplicateParameter,
			line:     3,
		},
		{
			name:     "integer out of range",
			input:    "n_short:\n99999999999999999999\n",
			sentinel: ErrMalformedEntry,
			line:     2,
		},
		{
			name:     "float out of range",
			input:    "mean_storm_dry:\n1.e999\n",
			sentinel: ErrMalformedEntry,
			line:     2,
		},
		{
			name:     "value containing colon",
			input:    "start_time:\n12:30\n",
			sentinel: ErrMalformedEntry,
			line:     1,
		},
		{
			name:     "line too long",
			input:    "n_short:\n" + strings.Repeat("1", maxLineSize+1) + "\n",
			sentinel: ErrMalformedEntry,
			line:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if table != nil {
				t.Errorf("Expected no table on error, got %d entries", table.Len())
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Expected %v, got %v", tt.sentinel, err)
			}

			var pe *Error
			if !errors.As(err, &pe) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if pe.Line != tt.line {
				t.Errorf("Expected line %d, got %d", tt.line, pe.Line)
			}
		})
	}
}

func TestReadFileUnreadable(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrUnreadableFile) {
		t.Fatalf("Expected ErrUnreadableFile, got %v", err)
	}
	if !IsKind(err, KindUnreadableFile) {
		t.Errorf("Expected kind %s", KindUnreadableFile)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected the os error to be wrapped, got %v", err)
	}
}

func TestReadFileReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.txt")
	if err := os.WriteFile(path, []byte("a:\n1\na:\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFile(path)
	if err == nil {
		t.Fatal("Expected duplicate error")
	}
	if !strings.HasPrefix(err.Error(), path+":3: duplicate_parameter") {
		t.Errorf("Unexpected message: %v", err)
	}
}

func TestEntryCountMatchesNameLines(t *testing.T) {
	data, err := os.ReadFile(sampleFile)
	if err != nil {
		t.Fatal(err)
	}

	nameLines := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") && strings.Contains(line, ":") {
			nameLines++
		}
	}

	table, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != nameLines {
		t.Errorf("Expected %d entries, got %d", nameLines, table.Len())
	}
}

func TestReparseIsStable(t *testing.T) {
	first, err := ReadFile(sampleFile)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ReadFile(sampleFile)
	if err != nil {
		t.Fatal(err)
	}

	if !first.Equal(second) {
		t.Error("Expected re-parsed tables to be equal")
	}
	if diff := cmp.Diff(first.Names(), second.Names()); diff != "" {
		t.Errorf("Order mismatch (-first +second):\n%s", diff)
	}
}
