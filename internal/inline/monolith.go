package inline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-md2html/internal/process"
)

// Monolith defaults.
const (
	DefaultMonolithPath    = "monolith"
	DefaultMonolithTimeout = 60 * time.Second
)

// exitWait bounds how long Wait blocks on output pipes after a kill.
const exitWait = 2 * time.Second

// Monolith inlines assets by piping the page through the monolith tool
// (`monolith - --base-url <dir>`), reading the result from its stdout.
// The process runs in its own process group and is killed on timeout or
// cancellation together with its children.
type Monolith struct {
	path    string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
}

// MonolithOption configures a Monolith inliner.
type MonolithOption func(*Monolith)

// WithPath sets the monolith executable.
func WithPath(path string) MonolithOption {
	return func(m *Monolith) {
		if path != "" {
			m.path = path
		}
	}
}

// WithArgs appends extra command line arguments (e.g. "--no-js").
func WithArgs(args ...string) MonolithOption {
	return func(m *Monolith) {
		m.args = append(m.args, args...)
	}
}

// WithTimeout bounds a single run. Zero keeps the default.
func WithTimeout(d time.Duration) MonolithOption {
	return func(m *Monolith) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithMonolithLogger sets the logger for progress messages.
func WithMonolithLogger(l *slog.Logger) MonolithOption {
	return func(m *Monolith) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMonolith creates a Monolith inliner.
func NewMonolith(opts ...MonolithOption) *Monolith {
	m := &Monolith{
		path:    DefaultMonolithPath,
		timeout: DefaultMonolithTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Inline implements Inliner.
func (m *Monolith) Inline(ctx context.Context, page, baseDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	args := []string{"-"}
	if baseDir != "" {
		baseURL, err := dirURL(baseDir)
		if err != nil {
			return "", err
		}
		args = append(args, "--base-url", baseURL)
	}
	args = append(args, m.args...)

	cmd := exec.CommandContext(ctx, m.path, args...) // #nosec G204 -- executable chosen by the user
	process.NewGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = exitWait

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(page)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	m.logger.Debug("inline assets with monolith", slog.String("path", m.path))
	start := time.Now()
	err := cmd.Run()

	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s", ErrMonolithNotFound, m.path)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "", fmt.Errorf("%w after %s", ErrTimeout, m.timeout)
	case ctx.Err() != nil:
		return "", ctx.Err()
	case err != nil:
		return "", fmt.Errorf("%w: %v%s", ErrMonolithFailed, err, stderrTail(stderr.String()))
	}

	m.logger.Debug("monolith finished", slog.Duration("elapsed", time.Since(start)))

	if !utf8.Valid(stdout.Bytes()) {
		return "", ErrInvalidOutput
	}
	return stdout.String(), nil
}

// dirURL converts a directory to a file:// URL with a trailing slash, so
// relative references resolve inside it.
func dirURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive paths
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

// stderrTail returns the last line of the tool's diagnostics.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return ": " + s
}

var _ Inliner = (*Monolith)(nil)
