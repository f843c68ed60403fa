// Package inline embeds the external assets of a page so that the page is
// a single self-contained file.
//
// Two implementations exist: Native rewrites local stylesheets, scripts and
// images in-process; Monolith pipes the page through the external monolith
// tool, which also fetches remote resources.
package inline

import (
	"context"
	"errors"
)

// Sentinel errors for inlining.
var (
	ErrMonolithNotFound = errors.New("monolith executable not found")
	ErrMonolithFailed   = errors.New("monolith failed")
	ErrTimeout          = errors.New("inlining timed out")
	ErrInvalidOutput    = errors.New("inliner produced invalid UTF-8")
)

// Inliner embeds the assets referenced by page. baseDir is the directory
// relative references are resolved against; empty means the working directory.
type Inliner interface {
	Inline(ctx context.Context, page, baseDir string) (string, error)
}
