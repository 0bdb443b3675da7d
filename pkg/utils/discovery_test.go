package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverParameterFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Inputs_Vegetation_CA.txt"), "n_short:\n6600\nPET_method:\nCosine\n")
	writeFile(t, filepath.Join(root, "runs", "Inputs_Broken.txt"), "n_short:\nn_long:\n1\n")
	writeFile(t, filepath.Join(root, ".cache", "Inputs_Hidden.txt"), "a:\n1\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a parameter file")

	files, err := DiscoverParameterFiles(root, "")
	if err != nil {
		t.Fatalf("DiscoverParameterFiles failed: %v", err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := []string{
		filepath.Join(root, "Inputs_Vegetation_CA.txt"),
		filepath.Join(root, "runs", "Inputs_Broken.txt"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	if files[0].Err != nil || files[0].Entries != 2 {
		t.Errorf("Unexpected result for good file: %+v", files[0])
	}
	if !params.IsKind(files[1].Err, params.KindMalformedEntry) {
		t.Errorf("Expected malformed entry error, got %v", files[1].Err)
	}
}

func TestDiscoverParameterFilesPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "params.txt"), "a:\n1\n")

	files, err := DiscoverParameterFiles(root, "*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Entries != 1 {
		t.Errorf("Unexpected files: %+v", files)
	}

	if _, err := DiscoverParameterFiles(root, "[bad"); err == nil {
		t.Error("Expected error for invalid pattern")
	}
	if _, err := DiscoverParameterFiles(filepath.Join(root, "missing"), ""); err == nil {
		t.Error("Expected error for missing root")
	}
}
