package md2html

import (
	"context"
	"log/slog"
	"time"

	"github.com/alnah/go-md2html/internal/inline"
)

// Inliner embeds the external assets of a rendered page. baseDir is the
// directory relative references resolve against.
type Inliner interface {
	Inline(ctx context.Context, page, baseDir string) (string, error)
}

// NewNativeInliner returns an Inliner that embeds local stylesheets,
// scripts and images in-process. Remote references are left untouched.
func NewNativeInliner(logger *slog.Logger) Inliner {
	return inline.NewNative(inline.WithLogger(logger))
}

// MonolithOptions configures the external monolith inliner.
type MonolithOptions struct {
	Path    string        // executable (empty = "monolith" on PATH)
	Args    []string      // extra arguments
	Timeout time.Duration // 0 = 60s
}

// NewMonolithInliner returns an Inliner that pipes the page through the
// monolith tool, which also fetches remote resources.
func NewMonolithInliner(opts MonolithOptions, logger *slog.Logger) Inliner {
	return inline.NewMonolith(
		inline.WithPath(opts.Path),
		inline.WithArgs(opts.Args...),
		inline.WithTimeout(opts.Timeout),
		inline.WithMonolithLogger(logger),
	)
}

var (
	_ Inliner = (*inline.Native)(nil)
	_ Inliner = (*inline.Monolith)(nil)
)
