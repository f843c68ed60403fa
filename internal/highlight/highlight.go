// Package highlight renders source code as HTML with chroma.
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "github"

// tabWidth is the number of spaces a tab expands to in highlighted output.
const tabWidth = 4

// ErrThemeNotFound indicates the requested chroma style does not exist.
var ErrThemeNotFound = errors.New("highlight theme not found")

// Highlighter turns a language tag and source text into inline-styled HTML.
//
// The theme and formatter are resolved once at construction; a Highlighter
// is read-only afterwards and can be shared by concurrent conversions.
type Highlighter struct {
	theme     string
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter for the named chroma style.
// An empty name selects DefaultTheme.
func New(theme string) (*Highlighter, error) {
	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, theme)
	}

	return &Highlighter{
		theme: theme,
		style: style,
		// The code-block renderer already writes <pre><code>.
		formatter: chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.TabWidth(tabWidth),
		),
	}, nil
}

// Highlight renders source using the lexer registered for language.
// Unknown or empty languages fall back to plain text rather than failing.
func (h *Highlighter) Highlight(language, source string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenising %s source: %w", language, err)
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s source: %w", language, err)
	}
	return buf.String(), nil
}

// Theme returns the name of the chroma style in use.
func (h *Highlighter) Theme() string {
	return h.theme
}

// CSS returns the declarations for the code block background and default
// text colour of the theme, e.g. "color: #24292e; background-color: #ffffff;".
func (h *Highlighter) CSS() string {
	entry := h.style.Get(chroma.Background)

	var b strings.Builder
	if entry.Colour.IsSet() {
		fmt.Fprintf(&b, "color: %s; ", entry.Colour.String())
	}
	if entry.Background.IsSet() {
		fmt.Fprintf(&b, "background-color: %s; ", entry.Background.String())
	}
	return strings.TrimSpace(b.String())
}

// Themes lists the names of all available chroma styles.
func Themes() []string {
	return styles.Names()
}
