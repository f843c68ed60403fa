package main

// Notes:
// - discoverFiles: tested against real temp directories.
// - resolveOutputPath: table-driven over the output modes; paths are built
//   with filepath.Join so the expectations hold on every OS.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file next to source", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeFile(t, in, "# Doc")

		files, err := discoverFiles([]string{in}, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		want := []FileToConvert{{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}}
		if !slices.Equal(files, want) {
			t.Errorf("discoverFiles() = %v, want %v", files, want)
		}
	})

	t.Run("single file to explicit html path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := filepath.Join(dir, "doc.markdown")
		writeFile(t, in, "# Doc")
		out := filepath.Join(dir, "site", "index.html")

		files, err := discoverFiles([]string{in}, out)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != out {
			t.Errorf("discoverFiles() = %v, want output %s", files, out)
		}
	})

	t.Run("directory keeps relative layout", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "docs", "a.md"), "# A")
		writeFile(t, filepath.Join(dir, "docs", "guide", "b.markdown"), "# B")
		writeFile(t, filepath.Join(dir, "docs", "notes.txt"), "skip")
		out := filepath.Join(dir, "out")

		files, err := discoverFiles([]string{filepath.Join(dir, "docs")}, out)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		var outputs []string
		for _, f := range files {
			outputs = append(outputs, f.OutputPath)
		}
		slices.Sort(outputs)
		want := []string{
			filepath.Join(out, "a.html"),
			filepath.Join(out, "guide", "b.html"),
		}
		if !slices.Equal(outputs, want) {
			t.Errorf("outputs = %v, want %v", outputs, want)
		}
	})

	t.Run("duplicates are converted once", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeFile(t, in, "# Doc")

		files, err := discoverFiles([]string{in, in}, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 {
			t.Errorf("len(files) = %d, want 1", len(files))
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		files, err := discoverFiles([]string{t.TempDir()}, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 0 {
			t.Errorf("len(files) = %d, want 0", len(files))
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()
		_, err := discoverFiles([]string{filepath.Join(t.TempDir(), "nope.md")}, "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()
		in := filepath.Join(t.TempDir(), "doc.txt")
		writeFile(t, in, "text")

		_, err := discoverFiles([]string{in}, "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("html output with several inputs", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		a := filepath.Join(dir, "a.md")
		b := filepath.Join(dir, "b.md")
		writeFile(t, a, "# A")
		writeFile(t, b, "# B")

		_, err := discoverFiles([]string{a, b}, filepath.Join(dir, "out.html"))
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path derivation
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to source", filepath.Join("docs", "a.md"), "", "", filepath.Join("docs", "a.html")},
		{"markdown extension", "notes.markdown", "", "", "notes.html"},
		{"into directory", filepath.Join("docs", "a.md"), "out", "", filepath.Join("out", "a.html")},
		{"explicit file", "a.md", "page.html", "", "page.html"},
		{"relative layout", filepath.Join("docs", "sub", "a.md"), "out", "docs", filepath.Join("out", "sub", "a.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{8, false},
		{9, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr != (err != nil) {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
