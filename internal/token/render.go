package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// ErrMissingNode indicates a token that must be rendered by goldmark carries no node.
var ErrMissingNode = errors.New("token has no source node")

// FuncTable maps goldmark node kinds to their HTML render functions.
// It implements renderer.NodeRendererFuncRegisterer so that goldmark's node
// renderers (core HTML, GFM tables, footnotes, ...) can register into it.
// A populated table is read-only and safe to share between renderers.
type FuncTable struct {
	funcs map[ast.NodeKind]renderer.NodeRendererFunc
}

// NewFuncTable collects the render functions of the given node renderers.
// Later renderers override earlier ones for the same node kind.
func NewFuncTable(nodeRenderers ...renderer.NodeRenderer) *FuncTable {
	t := &FuncTable{funcs: make(map[ast.NodeKind]renderer.NodeRendererFunc)}
	for _, nr := range nodeRenderers {
		nr.RegisterFuncs(t)
	}
	return t
}

// Register implements renderer.NodeRendererFuncRegisterer.
func (t *FuncTable) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	t.funcs[kind] = fn
}

// Renderer writes a token stream as HTML.
//
// Text and HTML tokens synthesized without a node are written directly
// (text escaped, HTML raw). Tokens carrying a goldmark node are rendered with
// the node's registered function; when that function asks to skip children,
// tokens are discarded until the node's exit token.
type Renderer struct {
	funcs   *FuncTable
	source  []byte
	w       *bufio.Writer
	skip    ast.Node
	stopped bool
}

// NewRenderer creates a Renderer writing to w. source is the Markdown the
// token nodes point into.
func NewRenderer(w io.Writer, source []byte, funcs *FuncTable) *Renderer {
	return &Renderer{
		funcs:  funcs,
		source: source,
		w:      bufio.NewWriter(w),
	}
}

// Emit renders one token.
func (r *Renderer) Emit(t Token) error {
	if r.stopped {
		return nil
	}
	if r.skip != nil {
		if t.Node != r.skip || t.Entering {
			return nil
		}
		r.skip = nil
		return r.renderNode(t)
	}

	switch t.Kind {
	case KindHTML:
		_, err := r.w.WriteString(t.Text)
		return err

	case KindText:
		if _, ok := t.Node.(*ast.AutoLink); ok {
			// Written by the autolink's own renderer.
			return nil
		}
		if t.Node != nil {
			return r.renderNode(t)
		}
		_, err := r.w.Write(util.EscapeHTML([]byte(t.Text)))
		return err

	case KindCodeBlockOpen:
		if t.Language == "" {
			_, err := r.w.WriteString("<pre><code>")
			return err
		}
		_, err := fmt.Fprintf(r.w, `<pre><code class="language-%s">`, util.EscapeHTML([]byte(t.Language)))
		return err

	case KindCodeBlockClose:
		_, err := r.w.WriteString("</code></pre>\n")
		return err

	case KindHeadingOpen, KindHeadingClose:
		if t.Node != nil {
			return r.renderNode(t)
		}
		if t.Kind == KindHeadingOpen {
			_, err := fmt.Fprintf(r.w, "<h%d>", t.Level)
			return err
		}
		_, err := fmt.Fprintf(r.w, "</h%d>\n", t.Level)
		return err
	}

	return r.renderNode(t)
}

// Flush writes buffered output to the underlying writer.
func (r *Renderer) Flush() error {
	return r.w.Flush()
}

func (r *Renderer) renderNode(t Token) error {
	if t.Node == nil {
		return fmt.Errorf("%w: %s", ErrMissingNode, t)
	}
	fn := r.funcs.funcs[t.Node.Kind()]
	if fn == nil {
		return nil
	}

	status, err := fn(r.w, r.source, t.Node, t.Entering)
	if err != nil {
		return err
	}
	switch status {
	case ast.WalkSkipChildren:
		if t.Entering {
			r.skip = t.Node
		}
	case ast.WalkStop:
		r.stopped = true
	}
	return nil
}
