// Package token turns a parsed Markdown document into a flat, ordered stream
// of tokens and renders such a stream back to HTML.
//
// The stream is what the transform engine rewrites: heading and code-block
// boundaries become dedicated token kinds, literal text becomes Text tokens,
// and every other goldmark node is wrapped in an Other token that the
// Renderer hands back to goldmark's own node renderers.
package token

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// Kind identifies the role of a token in the stream.
type Kind int

// Token kinds.
const (
	KindOther Kind = iota
	KindHeadingOpen
	KindHeadingClose
	KindCodeBlockOpen
	KindCodeBlockClose
	KindText
	KindHTML
)

var kindNames = [...]string{
	KindOther:          "other",
	KindHeadingOpen:    "heading-open",
	KindHeadingClose:   "heading-close",
	KindCodeBlockOpen:  "code-block-open",
	KindCodeBlockClose: "code-block-close",
	KindText:           "text",
	KindHTML:           "html",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one event of the document stream.
//
// Which fields are meaningful depends on Kind:
//   - KindHeadingOpen, KindHeadingClose: Level
//   - KindCodeBlockOpen: Language, Fenced
//   - KindText: Text holds the literal content
//   - KindHTML: Text holds raw markup written as is
//   - KindOther: Node and Entering
//
// Node is the goldmark node the token came from. It is nil for tokens
// synthesized outside the tokenizer.
type Token struct {
	Kind     Kind
	Level    int
	Language string
	Fenced   bool
	Text     string
	Node     ast.Node
	Entering bool
}

func (t Token) String() string {
	switch t.Kind {
	case KindHeadingOpen, KindHeadingClose:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Level)
	case KindCodeBlockOpen:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Language)
	case KindText, KindHTML:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case KindOther:
		if t.Node != nil {
			return fmt.Sprintf("%s(%s,%v)", t.Kind, t.Node.Kind(), t.Entering)
		}
	}
	return t.Kind.String()
}

// HeadingOpen returns a heading-open token.
func HeadingOpen(level int) Token {
	return Token{Kind: KindHeadingOpen, Level: level, Entering: true}
}

// HeadingClose returns a heading-close token.
func HeadingClose(level int) Token {
	return Token{Kind: KindHeadingClose, Level: level}
}

// CodeBlockOpen returns a fenced code-block-open token.
func CodeBlockOpen(language string) Token {
	return Token{Kind: KindCodeBlockOpen, Language: language, Fenced: true, Entering: true}
}

// CodeBlockClose returns a code-block-close token.
func CodeBlockClose() Token {
	return Token{Kind: KindCodeBlockClose}
}

// Text returns a literal text token.
func Text(content string) Token {
	return Token{Kind: KindText, Text: content, Entering: true}
}

// HTML returns a token whose content is written to the output unescaped.
func HTML(markup string) Token {
	return Token{Kind: KindHTML, Text: markup, Entering: true}
}

// Other wraps a goldmark node event that needs no special handling.
func Other(n ast.Node, entering bool) Token {
	return Token{Kind: KindOther, Node: n, Entering: entering}
}
