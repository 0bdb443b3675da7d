// Package params reads and writes vegetation CA parameter files.
//
// A parameter file is a sequence of entries, each a name line followed by a value
// line:
//
//	n_short:  # Number of storms for the short simulation
//	6600
//
// Lines starting with '#' and blank lines are ignored. Text after the ':' on a name
// line is a description and never part of the name.
//
// Every non-comment line containing a ':' is a name line, so values cannot contain
// one: a value such as 12:30 is read as a second name and the entry is malformed.
package params

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const maxLineSize = 1024 * 1024

// ReadFile parses the parameter file at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindUnreadableFile, Path: path, Err: err}
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		if pe, ok := err.(*Error); ok {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Parse reads a parameter table from r. No table is returned on error.
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	b := NewBuilder()
	var pending *Entry
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Name line
		if name, desc, ok := strings.Cut(line, ":"); ok {
			if pending != nil {
				return nil, &Error{
					Kind: KindMalformedEntry,
					Line: pending.Line,
					Name: pending.Name,
					Msg:  "followed by another name line instead of a value",
				}
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, &Error{Kind: KindMalformedEntry, Line: lineNo, Msg: "empty parameter name"}
			}
			pending = &Entry{Name: name, Description: cleanDescription(desc), Line: lineNo}
			continue
		}

		// Value line
		if pending == nil {
			return nil, &Error{Kind: KindMalformedEntry, Line: lineNo, Msg: "value " + strconv.Quote(line) + " has no parameter name"}
		}
		v, perr := infer(line)
		if perr != nil {
			perr.Line, perr.Name = lineNo, pending.Name
			return nil, perr
		}
		pending.Value = v
		if err := b.Add(*pending); err != nil {
			return nil, err
		}
		pending = nil
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &Error{Kind: KindMalformedEntry, Line: lineNo + 1, Msg: fmt.Sprintf("line exceeds %d bytes", maxLineSize)}
		}
		return nil, &Error{Kind: KindUnreadableFile, Line: lineNo, Err: err}
	}
	if pending != nil {
		return nil, &Error{
			Kind: KindMalformedEntry,
			Line: pending.Line,
			Name: pending.Name,
			Msg:  "missing value at end of file",
		}
	}

	return b.Build(), nil
}

func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(s)
}
