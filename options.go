package md2html

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-md2html/internal/heading"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the configuration collected from options.
type converterConfig struct {
	logger            *slog.Logger
	theme             string
	highlightDisabled bool
	style             string
	template          string
	assetPath         string
	lang              string
	toc               TOCOptions
	markdown          MarkdownOptions
	inliner           Inliner
	pdf               *PDFOptions
}

// TOC depth bounds.
const (
	DefaultTOCMinDepth = int(heading.MinLevel)
	DefaultTOCMaxDepth = int(heading.MaxLevel)
)

// TOCOptions configures the table of contents.
type TOCOptions struct {
	Disabled bool
	Title    string // heading shown above the list (empty = none)
	MinDepth int    // shallowest level listed (0 = 1)
	MaxDepth int    // deepest level listed (0 = 6)
}

// Validate checks the depth range.
func (t TOCOptions) Validate() error {
	minDepth, maxDepth := t.depths()
	if minDepth < DefaultTOCMinDepth || minDepth > DefaultTOCMaxDepth {
		return fmt.Errorf("%w: minDepth must be between 1 and 6, got %d", ErrInvalidTOCDepth, t.MinDepth)
	}
	if maxDepth < DefaultTOCMinDepth || maxDepth > DefaultTOCMaxDepth {
		return fmt.Errorf("%w: maxDepth must be between 1 and 6, got %d", ErrInvalidTOCDepth, t.MaxDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth (%d) cannot exceed maxDepth (%d)", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

func (t TOCOptions) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// MarkdownOptions controls Markdown rendering.
type MarkdownOptions struct {
	Unsafe    bool // pass raw HTML from the source through
	HardWraps bool // render soft line breaks as <br>
}

// PDFOptions enables and configures PDF export.
type PDFOptions struct {
	PageSize string        // letter, legal, a4, a5 (empty = letter)
	Margin   float64       // inches (0 = 0.5)
	Timeout  time.Duration // per page (0 = 30s)
}

// WithLogger sets the logger receiving warnings and debug events.
// A nil logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithTheme selects the chroma style used for code blocks.
func WithTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.theme = name
	}
}

// WithoutHighlighting leaves code blocks as escaped plain text.
func WithoutHighlighting() Option {
	return func(c *Converter) {
		c.cfg.highlightDisabled = true
	}
}

// WithStyle selects the page stylesheet by name.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.template = name
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// built-in assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithLang sets the lang attribute of generated pages.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithTOC configures the table of contents.
func WithTOC(t TOCOptions) Option {
	return func(c *Converter) {
		c.cfg.toc = t
	}
}

// WithMarkdownOptions configures Markdown rendering.
func WithMarkdownOptions(m MarkdownOptions) Option {
	return func(c *Converter) {
		c.cfg.markdown = m
	}
}

// WithInliner embeds the page assets after rendering.
func WithInliner(in Inliner) Option {
	return func(c *Converter) {
		c.cfg.inliner = in
	}
}

// WithPDF enables PDF export. The browser starts on the first conversion.
func WithPDF(p PDFOptions) Option {
	return func(c *Converter) {
		c.cfg.pdf = &p
	}
}
