package md2html

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/heading"
	"github.com/alnah/go-md2html/internal/highlight"
	"github.com/alnah/go-md2html/internal/logfields"
	"github.com/alnah/go-md2html/internal/page"
	"github.com/alnah/go-md2html/internal/pdf"
	"github.com/alnah/go-md2html/internal/toc"
	"github.com/alnah/go-md2html/internal/token"
	"github.com/alnah/go-md2html/internal/transform"
)

// pdfConverter abstracts PDF export to enable testing without a browser.
type pdfConverter interface {
	ToPDF(ctx context.Context, page, baseDir string) ([]byte, error)
	Close() error
}

var _ pdfConverter = (*pdf.Converter)(nil)

// Input is one document to convert.
type Input struct {
	Markdown string

	// SourcePath names the document for the title fallback and logs. Its
	// directory is the base for relative asset references unless BaseDir
	// is set.
	SourcePath string
	BaseDir    string

	// Title overrides the page title derived from the first heading.
	Title string
}

// Heading is one entry of the document outline.
type Heading struct {
	Level  int
	Anchor string
	Title  string
}

// Stats counts what the transform rewrote.
type Stats struct {
	Headings           int
	CodeBlocks         int
	HighlightFallbacks int
}

// Result holds the conversion output.
//
// Title is the page title written into the template: Input.Title, else the
// first heading with a non-blank title, else the source file name. The
// document's own title is FirstHeading, nil when there are no headings.
type Result struct {
	HTML         string    // standalone page (inlined when an Inliner is set)
	Body         string    // converted Markdown body
	TOC          string    // table of contents lists, empty without headings
	Title        string    // page title
	FirstHeading *Heading  // first heading of the document, even if blank
	Outline      []Heading // every heading in document order
	Stats        Stats
	PDF          []byte // nil unless PDF export is enabled
}

// Converter turns Markdown into standalone HTML pages.
// Create with NewConverter, use Convert for conversion, and Close when done.
//
// Without PDF export a Converter is safe for concurrent use. With PDF
// export, conversions share one browser and are serialized while printing.
type Converter struct {
	cfg         converterConfig
	logger      *slog.Logger
	markdown    *token.Markdown
	highlighter *highlight.Highlighter // nil when highlighting is disabled
	page        *page.Renderer
	css         string
	pdf         pdfConverter
}

// NewConverter creates a Converter. Returns an error if an asset, the
// theme or an option value cannot be resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.cfg.logger
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	if err := c.cfg.toc.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	styleName := c.cfg.style
	if styleName == "" {
		styleName = assets.DefaultStyleName
	}
	c.css, err = resolver.LoadStyle(styleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", styleName, err)
	}

	templateName := c.cfg.template
	if templateName == "" {
		templateName = assets.DefaultTemplateName
	}
	source, err := resolver.LoadTemplate(templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", templateName, err)
	}
	c.page, err = page.New(source)
	if err != nil {
		return nil, fmt.Errorf("initializing template %q: %w", templateName, err)
	}
	c.logger.Debug("assets loaded",
		slog.String("style", styleName),
		slog.String("template", templateName),
		slog.Bool("custom", resolver.HasCustomLoader()))

	if !c.cfg.highlightDisabled {
		c.highlighter, err = highlight.New(c.cfg.theme)
		if err != nil {
			return nil, err
		}
	}

	c.markdown = token.NewMarkdown(token.Options{
		Unsafe:    c.cfg.markdown.Unsafe,
		HardWraps: c.cfg.markdown.HardWraps,
	})

	// Test doubles may already be installed.
	if c.cfg.pdf != nil && c.pdf == nil {
		c.pdf, err = pdf.NewConverter(c.cfg.pdf.Timeout, pdf.Options{
			PageSize: c.cfg.pdf.PageSize,
			Margin:   c.cfg.pdf.Margin,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
		}
	}

	return c, nil
}

// Convert runs the full pipeline and returns the result.
// The context is used for cancellation and bounds inlining and PDF export.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := c.logger
	if input.SourcePath != "" {
		logger = logger.With(logfields.File(input.SourcePath))
	}

	body, outline, stats, err := c.renderBody(input.Markdown, logger)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Body:    body,
		Title:   resolveTitle(input, outline),
		Outline: toPublicOutline(outline),
		Stats:   stats,
	}
	if len(res.Outline) > 0 {
		first := res.Outline[0]
		res.FirstHeading = &first
	}

	if !c.cfg.toc.Disabled {
		minDepth, maxDepth := c.cfg.toc.depths()
		res.TOC = toc.Build(toc.Filter(outline, minDepth, maxDepth))
	}

	data := page.Data{
		Lang:  c.cfg.lang,
		Title: res.Title,
		TOC:   res.TOC,
		Body:  body,
		CSS:   c.css,
	}
	if res.TOC != "" {
		data.TOCTitle = c.cfg.toc.Title
	}
	if c.highlighter != nil {
		data.CodeCSS = c.highlighter.CSS()
	}
	res.HTML, err = c.page.Render(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	baseDir := resolveBaseDir(input)
	if c.cfg.inliner != nil {
		res.HTML, err = c.cfg.inliner.Inline(ctx, res.HTML, baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInlineAssets, err)
		}
	}

	if c.pdf != nil {
		res.PDF, err = c.pdf.ToPDF(ctx, res.HTML, baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
		}
	}

	logger.Debug("converted document",
		logfields.Headings(stats.Headings),
		logfields.CodeBlocks(stats.CodeBlocks),
		logfields.Duration(time.Since(start)))
	return res, nil
}

// renderBody drives tokenizer, transform engine and renderer in lockstep.
func (c *Converter) renderBody(markdown string, logger *slog.Logger) (string, []heading.Heading, Stats, error) {
	src := []byte(markdown)
	doc := c.markdown.Parse(src)

	var buf bytes.Buffer
	renderer := token.NewRenderer(&buf, src, c.markdown.Funcs())

	// A nil *Highlighter in the interface would not read as "disabled".
	var hl transform.Highlighter
	if c.highlighter != nil {
		hl = c.highlighter
	}
	engine := transform.New(hl, transform.WithLogger(logger))

	if err := engine.Run(token.Tokenize(doc, src), renderer); err != nil {
		return "", nil, Stats{}, fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	outline, err := engine.Finish()
	if err != nil {
		return "", nil, Stats{}, fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	if err := renderer.Flush(); err != nil {
		return "", nil, Stats{}, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	s := engine.Stats()
	return buf.String(), outline, Stats(s), nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// resolveTitle picks the explicit title, else the first heading, else the
// source file name without extension.
func resolveTitle(input Input, outline []heading.Heading) string {
	if input.Title != "" {
		return input.Title
	}
	for _, h := range outline {
		if t := strings.TrimSpace(h.Title); t != "" {
			return t
		}
	}
	if input.SourcePath != "" {
		base := filepath.Base(input.SourcePath)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return ""
}

func resolveBaseDir(input Input) string {
	if input.BaseDir != "" {
		return input.BaseDir
	}
	if input.SourcePath != "" {
		return filepath.Dir(input.SourcePath)
	}
	return ""
}

func toPublicOutline(outline []heading.Heading) []Heading {
	if len(outline) == 0 {
		return nil
	}
	out := make([]Heading, len(outline))
	for i, h := range outline {
		out[i] = Heading{Level: int(h.Level), Anchor: h.Anchor, Title: h.Title}
	}
	return out
}
