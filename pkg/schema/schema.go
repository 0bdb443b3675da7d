// Package schema declares which parameters a parameter file is expected to carry and
// checks parsed tables against those declarations.
package schema

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

// Parameter types accepted in schema files.
const (
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeString  = "string"
)

// Schema is the set of parameters expected by one consumer of parameter files
type Schema struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Parameter defines one expected parameter
type Parameter struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"` // integer, float, string
	Description string   `yaml:"description"`
	Unit        string   `yaml:"unit,omitempty"`
	Required    bool     `yaml:"required"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	Options     []string `yaml:"options,omitempty"` // For string enums
}

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding from Check.
type Issue struct {
	Name     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Name, i.Message)
}

// ValidationError lists every error-severity issue found in a table.
type ValidationError struct {
	Schema string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("%d parameter(s) do not match schema %s: %s", len(e.Issues), e.Schema, strings.Join(msgs, "; "))
}

// Load reads a schema from a YAML file
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML schema document
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := s.verify(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", s.Name, err)
	}
	return &s, nil
}

func (s *Schema) verify() error {
	if s.Name == "" {
		return fmt.Errorf("schema name is required")
	}

	seen := make(map[string]bool, len(s.Parameters))
	for _, p := range s.Parameters {
		if p.Name == "" {
			return fmt.Errorf("parameter name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("parameter %s declared twice", p.Name)
		}
		seen[p.Name] = true

		switch p.Type {
		case TypeInteger, TypeFloat:
			if len(p.Options) > 0 {
				return fmt.Errorf("parameter %s: options are only allowed on strings", p.Name)
			}
		case TypeString:
			if p.Min != nil || p.Max != nil {
				return fmt.Errorf("parameter %s: min/max are only allowed on numbers", p.Name)
			}
		default:
			return fmt.Errorf("parameter %s: unsupported type %q", p.Name, p.Type)
		}

		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return fmt.Errorf("parameter %s: min must not exceed max", p.Name)
		}
	}
	return nil
}

// Lookup returns the declaration for name.
func (s *Schema) Lookup(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Check compares t against the schema. Parameters the schema does not declare are
// errors when strict is set and warnings otherwise.
func (s *Schema) Check(t *params.Table, strict bool) []Issue {
	var issues []Issue

	for _, p := range s.Parameters {
		v, ok := t.Get(p.Name)
		if !ok {
			if p.Required {
				issues = append(issues, Issue{Name: p.Name, Severity: SeverityError, Message: "required parameter is missing"})
			}
			continue
		}
		if msg := p.check(v); msg != "" {
			issues = append(issues, Issue{Name: p.Name, Severity: SeverityError, Message: msg})
		}
	}

	unknownSeverity := SeverityWarning
	if strict {
		unknownSeverity = SeverityError
	}
	var unknown []string
	for _, name := range t.Names() {
		if _, ok := s.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		issues = append(issues, Issue{Name: name, Severity: unknownSeverity, Message: "not declared by schema " + s.Name})
	}

	return issues
}

// Validate returns a *ValidationError when Check reports any error-severity issue.
func (s *Schema) Validate(t *params.Table, strict bool) error {
	var errs []Issue
	for _, issue := range s.Check(t, strict) {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Schema: s.Name, Issues: errs}
}

// CheckValue reports whether v satisfies the declaration's type, range and options.
func (p Parameter) CheckValue(v params.Value) error {
	if msg := p.check(v); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func (p Parameter) check(v params.Value) string {
	switch p.Type {
	case TypeInteger:
		if v.Kind() != params.KindInt {
			return fmt.Sprintf("expected integer, got %s %q", v.Kind(), v.Raw())
		}
	case TypeFloat:
		if v.Kind() == params.KindString {
			return fmt.Sprintf("expected float, got string %q", v.Raw())
		}
	case TypeString:
		if v.Kind() != params.KindString {
			return fmt.Sprintf("expected string, got %s %q", v.Kind(), v.Raw())
		}
		if len(p.Options) > 0 && !contains(p.Options, v.Raw()) {
			return fmt.Sprintf("value %q must be one of: %s", v.Raw(), strings.Join(p.Options, ", "))
		}
		return ""
	}

	f, _ := v.Float()
	if p.Min != nil && f < *p.Min {
		return fmt.Sprintf("value %g must be at least %g", f, *p.Min)
	}
	if p.Max != nil && f > *p.Max {
		return fmt.Sprintf("value %g must be at most %g", f, *p.Max)
	}
	return ""
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
