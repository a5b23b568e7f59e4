// Package testutil provides golden file helpers. Run tests with -update to rewrite the golden files.
package testutil

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

var update = flag.Bool("update", false, "update golden files")

// CompareGolden compares actual with the content of goldenPath
func CompareGolden(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()

	if *update {
		writeGolden(t, goldenPath, actual)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", goldenPath, err)
	}
	if string(actual) != string(expected) {
		t.Errorf("Golden file mismatch for %s\nExpected:\n%s\nActual:\n%s", goldenPath, expected, actual)
	}
}

// CompareGoldenSlice compares actual with a golden file holding a JSON array of strings
func CompareGoldenSlice(t *testing.T, goldenPath string, actual []string) {
	t.Helper()

	if *update {
		data, err := json.Marshal(actual)
		if err != nil {
			t.Fatalf("Failed to marshal slice to JSON: %v", err)
		}
		writeGolden(t, goldenPath, append(data, '\n'))
		return
	}

	content, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", goldenPath, err)
	}

	var expected []string
	if err := json.Unmarshal(content, &expected); err != nil {
		t.Fatalf("Failed to parse JSON from golden file %s: %v", goldenPath, err)
	}

	if !slices.Equal(actual, expected) {
		t.Errorf("Golden file mismatch for %s\nExpected: %v\nActual: %v", goldenPath, expected, actual)
	}
}

func writeGolden(t *testing.T, goldenPath string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
		t.Fatalf("Failed to update golden file %s: %v", goldenPath, err)
	}
	t.Logf("Updated golden file: %s", goldenPath)
}
