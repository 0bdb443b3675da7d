// Package manifest records the parameters a simulation run was given, in a format a
// notebook can load directly.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

// Supported encodings.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Manifest is a snapshot of a parameter table tagged with a run id
type Manifest struct {
	RunID      string    `yaml:"run_id" toml:"run_id" json:"run_id"`
	Source     string    `yaml:"source" toml:"source" json:"source"`
	Schema     string    `yaml:"schema,omitempty" toml:"schema,omitempty" json:"schema,omitempty"`
	CreatedAt  time.Time `yaml:"created_at" toml:"created_at" json:"created_at"`
	Parameters []Entry   `yaml:"parameters" toml:"parameter" json:"parameters"`
}

// Entry is one exported parameter. Raw is authoritative; Value is the typed form for
// readers that do not re-infer types.
type Entry struct {
	Name        string `yaml:"name" toml:"name" json:"name"`
	Type        string `yaml:"type" toml:"type" json:"type"`
	Value       any    `yaml:"value" toml:"value" json:"value"`
	Raw         string `yaml:"raw" toml:"raw" json:"raw"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
}

// New snapshots t under a fresh run id
func New(source, schemaName string, t *params.Table) *Manifest {
	m := &Manifest{
		RunID:     uuid.NewString(),
		Source:    source,
		Schema:    schemaName,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	for _, e := range t.Entries() {
		m.Parameters = append(m.Parameters, Entry{
			Name:        e.Name,
			Type:        e.Value.Kind().String(),
			Value:       e.Value.Interface(),
			Raw:         e.Value.Raw(),
			Description: e.Description,
		})
	}
	return m
}

// Table rebuilds the parameter table from the raw values
func (m *Manifest) Table() (*params.Table, error) {
	b := params.NewBuilder()
	for _, e := range m.Parameters {
		v, err := params.Infer(e.Raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", e.Name, err)
		}
		if e.Type != "" && v.Kind().String() != e.Type {
			return nil, fmt.Errorf("parameter %s: raw value %q is a %s, manifest says %s", e.Name, e.Raw, v.Kind(), e.Type)
		}
		if err := b.Add(params.Entry{Name: e.Name, Description: e.Description, Value: v}); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// FormatFromPath picks an encoding from a file extension
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("cannot tell manifest format from %s", path)
}

// Encode writes m to w in the given format
func (m *Manifest) Encode(w io.Writer, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("error marshaling manifest: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(m); err != nil {
			return fmt.Errorf("error marshaling manifest: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("error marshaling manifest: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported manifest format %q", format)
}

// Decode reads a manifest in the given format
func Decode(r io.Reader, format string) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("error parsing manifest: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("error parsing manifest: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("error parsing manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	if _, err := uuid.Parse(m.RunID); err != nil {
		return nil, fmt.Errorf("manifest run_id %q is not a UUID: %w", m.RunID, err)
	}
	return &m, nil
}

// Save writes m to path, choosing the format from the extension
func (m *Manifest) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := m.Encode(&buf, format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing manifest: %w", err)
	}
	return nil
}

// Load reads a manifest file, choosing the format from the extension
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}
