package params

import (
	"fmt"
	"strings"
)

// Entry is one declared parameter.
type Entry struct {
	Name        string
	Description string
	Value       Value
	Line        int
}

// Table is an ordered, read-only mapping from parameter name to value.
type Table struct {
	entries []Entry
	index   map[string]int
}

// Builder accumulates entries for a Table and rejects duplicate names.
type Builder struct {
	entries []Entry
	index   map[string]int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Add appends an entry. The name must be non-empty and not yet present.
func (b *Builder) Add(e Entry) error {
	if e.Name == "" {
		return &Error{Kind: KindMalformedEntry, Line: e.Line, Msg: "empty parameter name"}
	}
	if prev, exists := b.index[e.Name]; exists {
		msg := "already declared"
		if line := b.entries[prev].Line; line > 0 {
			msg = fmt.Sprintf("already declared on line %d", line)
		}
		return &Error{Kind: KindDuplicateParameter, Line: e.Line, Name: e.Name, Msg: msg}
	}

	b.index[e.Name] = len(b.entries)
	b.entries = append(b.entries, e)
	return nil
}

// Build returns the table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := &Table{entries: b.entries, index: b.index}
	b.entries = nil
	b.index = nil
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns parameter names in file order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries in file order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the entry for name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.index[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Has reports whether name is declared.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the value for name.
func (t *Table) Get(name string) (Value, bool) {
	e, ok := t.Lookup(name)
	return e.Value, ok
}

// Float returns a numeric parameter as float64.
func (t *Table) Float(name string) (float64, error) {
	v, err := t.require(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("parameter %s is a %s (%q), not a number", name, v.Kind(), v.Raw())
	}
	return f, nil
}

// Int returns an integer parameter.
func (t *Table) Int(name string) (int, error) {
	v, err := t.require(name)
	if err != nil {
		return 0, err
	}
	i, ok := v.Int()
	if !ok {
		return 0, fmt.Errorf("parameter %s is a %s (%q), not an integer", name, v.Kind(), v.Raw())
	}
	return i, nil
}

// String returns a string parameter.
func (t *Table) String(name string) (string, error) {
	v, err := t.require(name)
	if err != nil {
		return "", err
	}
	if v.Kind() != KindString {
		return "", fmt.Errorf("parameter %s is a %s (%q), not a string", name, v.Kind(), v.Raw())
	}
	return v.Raw(), nil
}

func (t *Table) require(name string) (Value, error) {
	v, ok := t.Get(name)
	if !ok {
		return Value{}, &Error{Kind: KindUnknownParameter, Name: name}
	}
	return v, nil
}

// Map returns the parameters as plain Go values keyed by name.
func (t *Table) Map() map[string]any {
	m := make(map[string]any, len(t.entries))
	for _, e := range t.entries {
		m[e.Name] = e.Value.Interface()
	}
	return m
}

// Equal reports whether both tables declare the same names, in the same order,
// with equal values. Descriptions and line numbers are not compared.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.entries) != len(o.entries) {
		return false
	}
	for i := range t.entries {
		a, b := t.entries[i], o.entries[i]
		if a.Name != b.Name || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

// WithOverrides returns a new table where each named parameter takes the inferred
// value of the given raw text. Order and descriptions are kept. Every override must
// name a declared parameter.
func (t *Table) WithOverrides(overrides map[string]string) (*Table, error) {
	for name := range overrides {
		if !t.Has(name) {
			return nil, &Error{Kind: KindUnknownParameter, Name: name, Msg: "cannot override"}
		}
	}

	b := NewBuilder()
	for _, e := range t.entries {
		if raw, ok := overrides[e.Name]; ok {
			v, perr := infer(strings.TrimSpace(raw))
			if perr != nil {
				perr.Name = e.Name
				return nil, perr
			}
			e.Value = v
		}
		if err := b.Add(e); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
