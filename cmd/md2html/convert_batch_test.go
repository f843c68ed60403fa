package main

// Notes:
// - convertBatch: exercised with mockPool and mockConverter; real conversion
//   is covered by runMain tests.
// - printResults: output format for quiet, default and verbose modes.

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Concurrent conversion
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("writes every page", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		var files []FileToConvert
		for _, name := range []string{"a", "b", "c"} {
			in := filepath.Join(dir, name+".md")
			writeFile(t, in, "# "+name)
			files = append(files, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "out", name+".html")})
		}

		conv := &mockConverter{}
		pool := &mockPool{conv: conv, size: 2}
		results := convertBatch(context.Background(), pool, files, &conversionParams{title: "T"}, discardLogger())

		if len(results) != 3 {
			t.Fatalf("len(results) = %d, want 3", len(results))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("results[%d].Err = %v", i, r.Err)
			}
			if r.InputPath != files[i].InputPath {
				t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
			}
			if got := readFile(t, files[i].OutputPath); !strings.HasPrefix(got, "<html>#") {
				t.Errorf("output %d = %q", i, got)
			}
		}
		for _, in := range conv.seen() {
			if in.Title != "T" {
				t.Errorf("Input.Title = %q, want %q", in.Title, "T")
			}
			if in.SourcePath == "" {
				t.Error("Input.SourcePath is empty")
			}
		}
		if pool.acquired != pool.released {
			t.Errorf("acquired %d, released %d", pool.acquired, pool.released)
		}
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()
		if got := convertBatch(context.Background(), &mockPool{}, nil, &conversionParams{}, discardLogger()); got != nil {
			t.Errorf("convertBatch() = %v, want nil", got)
		}
	})

	t.Run("acquire failure marks files failed", func(t *testing.T) {
		t.Parallel()
		errBoom := errors.New("boom")
		files := []FileToConvert{{InputPath: "a.md"}, {InputPath: "b.md"}}

		results := convertBatch(context.Background(), &mockPool{acquireErr: errBoom}, files, &conversionParams{}, discardLogger())
		for i, r := range results {
			if !errors.Is(r.Err, errBoom) {
				t.Errorf("results[%d].Err = %v, want boom", i, r.Err)
			}
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		files := []FileToConvert{{InputPath: "a.md"}}

		results := convertBatch(ctx, &mockPool{conv: &mockConverter{}}, files, &conversionParams{}, discardLogger())
		if !errors.Is(results[0].Err, context.Canceled) {
			t.Errorf("Err = %v, want context.Canceled", results[0].Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertFile - Single conversion
// ---------------------------------------------------------------------------

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()
		f := FileToConvert{InputPath: filepath.Join(t.TempDir(), "nope.md")}
		r := convertFile(context.Background(), &mockConverter{}, f, &conversionParams{})
		if !errors.Is(r.Err, ErrReadMarkdown) {
			t.Errorf("Err = %v, want ErrReadMarkdown", r.Err)
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeFile(t, in, "# Doc")
		f := FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}

		r := convertFile(context.Background(), &mockConverter{err: md2html.ErrHTMLConversion}, f, &conversionParams{})
		if !errors.Is(r.Err, md2html.ErrHTMLConversion) {
			t.Errorf("Err = %v, want ErrHTMLConversion", r.Err)
		}
	})

	t.Run("writes pdf next to page", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		in := filepath.Join(dir, "doc.md")
		writeFile(t, in, "# Doc")
		f := FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "doc.html")}

		r := convertFile(context.Background(), &mockConverter{pdf: []byte("%PDF-1.7")}, f, &conversionParams{})
		if r.Err != nil {
			t.Fatalf("Err = %v", r.Err)
		}
		if want := filepath.Join(dir, "doc.pdf"); r.PDFPath != want {
			t.Errorf("PDFPath = %q, want %q", r.PDFPath, want)
		}
		if got := readFile(t, r.PDFPath); got != "%PDF-1.7" {
			t.Errorf("pdf = %q", got)
		}
		if r.Stats.Headings != 1 {
			t.Errorf("Stats.Headings = %d, want 1", r.Stats.Headings)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWriteOutputs - Output files
// ---------------------------------------------------------------------------

func TestWriteOutputs_DirectoryError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "x")

	err := writeOutputs(filepath.Join(blocker, "sub", "doc.html"), &md2html.Result{HTML: "<html>"})
	if !errors.Is(err, ErrWriteOutput) {
		t.Fatalf("error = %v, want ErrWriteOutput", err)
	}
	if !strings.Contains(formatError(err), "hint:") {
		t.Errorf("formatError() = %q, want a hint", formatError(err))
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.html", Duration: 12 * time.Millisecond},
		{InputPath: "b.md", OutputPath: "b.html", PDFPath: "b.pdf"},
		{InputPath: "c.md", Err: ErrReadMarkdown},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		noStdout   bool
	}{
		{"default", false, false, []string{"Created a.html\n", "Created b.html, b.pdf\n", "2 succeeded, 1 failed"}, false},
		{"verbose", false, true, []string{"a.md -> a.html (12ms)"}, false},
		{"quiet", true, false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, stdout, stderr := testEnv(nil)

			failed := printResults(results, tt.quiet, tt.verbose, env)
			if failed.Count != 1 {
				t.Errorf("Count = %d, want 1", failed.Count)
			}
			if !errors.Is(failed, ErrReadMarkdown) {
				t.Errorf("batch error should unwrap to the first failure")
			}
			if !strings.Contains(stderr.String(), "FAILED c.md:") {
				t.Errorf("stderr = %q", stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want %q", stdout.String(), want)
				}
			}
			if tt.noStdout && stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
		})
	}
}
