package params

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteOptions controls Write output.
type WriteOptions struct {
	// Header lines are written as '#' comments before the first entry.
	Header []string
	// BlankBetween separates entries with an empty line.
	BlankBetween bool
}

// Write emits t in the parameter file layout.
func Write(w io.Writer, t *Table, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	for _, h := range opts.Header {
		if _, err := fmt.Fprintf(bw, "### %s\n", h); err != nil {
			return err
		}
	}
	if len(opts.Header) > 0 {
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	for i, e := range t.entries {
		if strings.ContainsAny(e.Name, ":\n") || strings.HasPrefix(e.Name, "#") {
			return &Error{Kind: KindMalformedEntry, Name: e.Name, Msg: "name cannot be written"}
		}
		if strings.ContainsAny(e.Value.Raw(), ":\n") || strings.HasPrefix(e.Value.Raw(), "#") || e.Value.Raw() == "" {
			return &Error{Kind: KindMalformedEntry, Name: e.Name, Msg: fmt.Sprintf("value %q cannot be written", e.Value.Raw())}
		}
		if i > 0 && opts.BlankBetween {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}

		nameLine := e.Name + ":"
		if e.Description != "" {
			nameLine += "  # " + e.Description
		}
		if _, err := fmt.Fprintf(bw, "%s\n%s\n", nameLine, e.Value.Raw()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes t to path, creating parent directories as needed.
func WriteFile(path string, t *Table, opts WriteOptions) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating parameter file: %w", err)
	}

	if err := Write(f, t, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing parameter file: %w", err)
	}

	return f.Close()
}
