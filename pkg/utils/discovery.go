package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

// DefaultPattern matches the tutorial's parameter file names.
const DefaultPattern = "Inputs_*.txt"

// ParameterFileInfo describes one discovered parameter file
type ParameterFileInfo struct {
	Path    string
	Entries int
	Err     error // set when the file does not parse
}

// DiscoverParameterFiles walks root for files whose base name matches pattern and
// parses each one. Files that fail to parse are reported with Err set rather than
// aborting the walk.
func DiscoverParameterFiles(root, pattern string) ([]ParameterFileInfo, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []ParameterFileInfo

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Skip hidden directories such as .git
			if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}

		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return nil
		}

		info := ParameterFileInfo{Path: path}
		table, err := params.ReadFile(path)
		if err != nil {
			info.Err = err
		} else {
			info.Entries = table.Len()
		}
		files = append(files, info)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan for parameter files: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
