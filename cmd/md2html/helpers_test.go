package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	md2html "github.com/alnah/go-md2html"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter returns a page wrapping the markdown, or err.
type mockConverter struct {
	err error
	pdf []byte

	mu     sync.Mutex
	inputs []md2html.Input
}

func (m *mockConverter) Convert(_ context.Context, input md2html.Input) (*md2html.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &md2html.Result{
		HTML:  "<html>" + strings.TrimSpace(input.Markdown) + "</html>",
		Title: input.Title,
		PDF:   m.pdf,
		Stats: md2html.Stats{Headings: 1},
	}, nil
}

func (m *mockConverter) seen() []md2html.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]md2html.Input(nil), m.inputs...)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv returns an environment with captured output and the given pool.
func testEnv(pool Pool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		NewPool: func(int, ...md2html.Option) Pool {
			return pool
		},
	}
	return env, stdout, stderr
}

// writeFile creates path (and its parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}
