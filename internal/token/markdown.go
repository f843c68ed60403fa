package token

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Options controls Markdown parsing and pass-through rendering.
type Options struct {
	Unsafe    bool // render raw HTML from the source instead of omitting it
	HardWraps bool // render soft line breaks as <br>
	XHTML     bool // self-closing void elements
}

// Markdown bundles the goldmark parser producing documents for Tokenize and
// the render functions a Renderer needs for pass-through nodes.
// It is created once and shared; both parts are safe for concurrent use.
type Markdown struct {
	md    goldmark.Markdown
	funcs *FuncTable
}

// NewMarkdown creates a Markdown with GFM and footnote extensions.
// Heading IDs are not generated by goldmark: anchors come from the heading
// registry so that they follow one slug scheme.
func NewMarkdown(opts Options) *Markdown {
	var htmlOpts []html.Option
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if opts.XHTML {
		htmlOpts = append(htmlOpts, html.WithXHTML())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
	)

	funcs := NewFuncTable(
		html.NewRenderer(htmlOpts...),
		extension.NewTableHTMLRenderer(),
		extension.NewStrikethroughHTMLRenderer(htmlOpts...),
		extension.NewTaskCheckBoxHTMLRenderer(htmlOpts...),
		extension.NewFootnoteHTMLRenderer(),
	)

	return &Markdown{md: md, funcs: funcs}
}

// Parse parses source into a goldmark document.
func (m *Markdown) Parse(source []byte) ast.Node {
	return m.md.Parser().Parse(text.NewReader(source))
}

// Funcs returns the render function table for pass-through nodes.
func (m *Markdown) Funcs() *FuncTable {
	return m.funcs
}
