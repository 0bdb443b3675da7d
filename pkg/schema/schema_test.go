package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

const sampleFile = "../params/testdata/Inputs_Vegetation_CA.txt"

func TestBuiltinMatchesSampleFile(t *testing.T) {
	s, err := DefaultRegistry.Get(VegetationCA)
	if err != nil {
		t.Fatalf("Built-in schema not registered: %v", err)
	}

	table, err := params.ReadFile(sampleFile)
	if err != nil {
		t.Fatal(err)
	}

	if issues := s.Check(table, true); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
	if err := s.Validate(table, true); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
	if len(s.Parameters) != table.Len() {
		t.Errorf("Expected schema to declare %d parameters, got %d", table.Len(), len(s.Parameters))
	}
}

func TestCheckFindsProblems(t *testing.T) {
	s, err := Parse([]byte(`
name: tiny
parameters:
  - name: n_short
    type: integer
    required: true
    min: 1
  - name: f_bare
    type: float
    required: true
    min: 0
    max: 1
  - name: PET_method
    type: string
    options: [Cosine]
  - name: ND
    type: float
    required: true
`))
	if err != nil {
		t.Fatal(err)
	}

	table, err := params.Parse(strings.NewReader("n_short:\n0\nf_bare:\n1.5\nPET_method:\nPenman\nextra:\n1\n"))
	if err != nil {
		t.Fatal(err)
	}

	got := s.Check(table, false)
	want := []Issue{
		{Name: "n_short", Severity: SeverityError, Message: "value 0 must be at least 1"},
		{Name: "f_bare", Severity: SeverityError, Message: "value 1.5 must be at most 1"},
		{Name: "PET_method", Severity: SeverityError, Message: `value "Penman" must be one of: Cosine`},
		{Name: "ND", Severity: SeverityError, Message: "required parameter is missing"},
		{Name: "extra", Severity: SeverityWarning, Message: "not declared by schema tiny"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Check() mismatch (-want +got):\n%s", diff)
	}

	err = s.Validate(table, false)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if len(verr.Issues) != 4 {
		t.Errorf("Expected 4 errors in non-strict mode, got %d", len(verr.Issues))
	}

	err = s.Validate(table, true)
	if !errors.As(err, &verr) || len(verr.Issues) != 5 {
		t.Errorf("Expected 5 errors in strict mode, got %v", err)
	}
}

func TestTypeChecks(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		raw    string
		hasErr bool
	}{
		{"integer accepts integer", TypeInteger, "18", false},
		{"integer rejects float", TypeInteger, "18.", true},
		{"float accepts integer", TypeFloat, "0", false},
		{"float accepts float", TypeFloat, "0.62", false},
		{"float rejects string", TypeFloat, "high", true},
		{"string accepts string", TypeString, "Cosine", false},
		{"string rejects number", TypeString, "3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parameter{Name: "x", Type: tt.typ}
			v, err := params.Infer(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			msg := p.check(v)
			if tt.hasErr && msg == "" {
				t.Errorf("Expected a type error for %q", tt.raw)
			}
			if !tt.hasErr && msg != "" {
				t.Errorf("Unexpected error for %q: %s", tt.raw, msg)
			}
		})
	}
}

func TestParseRejectsBadSchemas(t *testing.T) {
	tests := map[string]string{
		"missing name":      "parameters: []",
		"duplicate":         "name: s\nparameters:\n  - {name: a, type: float}\n  - {name: a, type: float}",
		"bad type":          "name: s\nparameters:\n  - {name: a, type: bool}",
		"options on number": "name: s\nparameters:\n  - {name: a, type: float, options: [x]}",
		"range on string":   "name: s\nparameters:\n  - {name: a, type: string, min: 1}",
		"inverted range":    "name: s\nparameters:\n  - {name: a, type: float, min: 2, max: 1}",
		"not yaml":          "name: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Errorf("Expected error for %s", name)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Schema{Name: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Schema{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&Schema{Name: "a"}); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
	if diff := cmp.Diff([]string{"a", "b"}, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Get("c"); err == nil {
		t.Error("Expected unknown schema to fail")
	}
}

func TestResolveFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("name: custom\nparameters:\n  - {name: a, type: integer}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if s.Name != "custom" {
		t.Errorf("Expected custom schema, got %s", s.Name)
	}

	if s, err := Resolve(VegetationCA); err != nil || s.Name != VegetationCA {
		t.Errorf("Expected built-in schema, got %v, %v", s, err)
	}
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing schema file")
	}
}
