package token

import (
	"bytes"
	"iter"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// Tokenize flattens a goldmark document into a lazily produced token stream.
//
// Guarantees relied on by the transform engine:
//   - heading open and close tokens are paired and never nested;
//   - every code block produces exactly three tokens: open, one Text token
//     holding the whole body (possibly empty), close;
//   - an autolink is followed by a Text token carrying its label and the
//     autolink node, which the Renderer does not write again.
//
// Stopping the iteration early stops the underlying walk.
func Tokenize(doc ast.Node, source []byte) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !emit(n, entering, source, yield) {
				return ast.WalkStop, nil
			}
			switch n.(type) {
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		})
	}
}

// emit yields the tokens for one walk event and reports whether the
// consumer wants more.
func emit(n ast.Node, entering bool, source []byte, yield func(Token) bool) bool {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			t := HeadingOpen(node.Level)
			t.Node = node
			return yield(t)
		}
		t := HeadingClose(node.Level)
		t.Node = node
		return yield(t)

	case *ast.FencedCodeBlock:
		if !entering {
			return true
		}
		open := CodeBlockOpen(string(node.Language(source)))
		open.Node = node
		return yield(open) && yield(Text(codeBody(node, source))) && yield(closeOf(node))

	case *ast.CodeBlock:
		if !entering {
			return true
		}
		open := Token{Kind: KindCodeBlockOpen, Node: node, Entering: true}
		return yield(open) && yield(Text(codeBody(node, source))) && yield(closeOf(node))

	case *ast.Text:
		if !entering {
			return true
		}
		t := Text(textValue(node, source))
		t.Node = node
		return yield(t)

	case *ast.AutoLink:
		// The label has no child node; its text token lets headings see it.
		if !entering {
			return yield(Other(n, false))
		}
		label := Text(string(node.Label(source)))
		label.Node = node
		return yield(Other(n, true)) && yield(label)

	case *ast.String:
		if !entering {
			return true
		}
		t := Text(string(node.Value))
		t.Node = node
		return yield(t)
	}

	return yield(Other(n, entering))
}

func closeOf(n ast.Node) Token {
	t := CodeBlockClose()
	t.Node = n
	return t
}

// codeBody concatenates the raw lines of a code block.
func codeBody(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// textValue returns the literal content of a text node: entity references
// are resolved and backslash escapes removed, except inside code spans.
func textValue(n *ast.Text, source []byte) string {
	v := n.Segment.Value(source)
	if n.IsRaw() {
		return string(v)
	}
	v = util.ResolveNumericReferences(util.ResolveEntityNames(v))
	return string(util.UnescapePunctuations(v))
}
