// SPDX-License-Identifier: MIT

package mabipack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/pathrules"
)

// writeTree creates files under dir from slash-relative paths.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func TestInputsFromDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.txt":       "bee",
		"a/one.xml":   "<one/>",
		"a/two.xml":   "<two/>",
		"c/deep/x.db": "x",
	})

	inputs, err := InputsFromDir(dir, WalkOptions{})
	if err != nil {
		t.Fatalf("InputsFromDir: %v", err)
	}

	// WalkDir visits entries in lexical order within each directory.
	want := []string{"a/one.xml", "a/two.xml", "b.txt", "c/deep/x.db"}
	if len(inputs) != len(want) {
		t.Fatalf("got %d inputs, want %d", len(inputs), len(want))
	}
	for i, in := range inputs {
		if in.Path != want[i] {
			t.Fatalf("input %d path %q, want %q", i, in.Path, want[i])
		}
		if in.Times.Modified.IsZero() {
			t.Fatalf("input %s has zero modified time", in.Path)
		}
	}

	got := testInputData(t, inputs[2])
	if string(got) != "bee" {
		t.Fatalf("b.txt content %q, want bee", got)
	}
}

func TestInputsFromDirRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"keep/a.xml":  "a",
		"keep/b.txt":  "b",
		"skip/c.xml":  "c",
		"topfile.xml": "d",
	})

	inputs, err := InputsFromDir(dir, WalkOptions{
		Rules: []pathrules.Rule{
			{Action: pathrules.ActionInclude, Pattern: "keep/**"},
			{Action: pathrules.ActionExclude, Pattern: "*.txt"},
		},
	})
	if err != nil {
		t.Fatalf("InputsFromDir: %v", err)
	}

	if len(inputs) != 1 {
		t.Fatalf("got %d inputs, want 1: %+v", len(inputs), inputs)
	}
	if inputs[0].Path != "keep/a.xml" {
		t.Fatalf("got %q, want keep/a.xml", inputs[0].Path)
	}
}

func TestInputsFromDirMissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := InputsFromDir(filepath.Join(t.TempDir(), "nope"), WalkOptions{}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestPackFromDirRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"data/item.xml": "<item/>",
		"readme.txt":    "hi",
	})

	inputs, err := InputsFromDir(dir, WalkOptions{})
	if err != nil {
		t.Fatalf("InputsFromDir: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "dir.pack")
	if _, err := PackFile(context.Background(), outPath, inputs, 5, PackOptions{}); err != nil {
		t.Fatalf("PackFile: %v", err)
	}

	r, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = r.Close() }()

	got, err := r.ReadEntry("data/item.xml")
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if string(got) != "<item/>" {
		t.Fatalf("content %q, want <item/>", got)
	}
}
