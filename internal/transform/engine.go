// Package transform rewrites a Markdown token stream in a single pass.
//
// The Engine sits between the tokenizer and the renderer. It collapses every
// heading into one HTML heading element carrying a unique anchor, replaces
// the body of each fenced code block with highlighted markup, and records
// the heading outline that the table of contents is built from. All other
// tokens pass through untouched and in order.
package transform

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/alnah/go-md2html/internal/heading"
	"github.com/alnah/go-md2html/internal/logfields"
	"github.com/alnah/go-md2html/internal/token"
)

// ErrContractViolation indicates the token stream broke the tokenizer's
// guarantees (unpaired or mismatched headings, code blocks without a body).
// The document cannot be converted reliably and the conversion must stop.
var ErrContractViolation = errors.New("token stream contract violation")

// Highlighter renders the body of a fenced code block.
type Highlighter interface {
	Highlight(language, source string) (string, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(language, source string) (string, error)

// Highlight implements Highlighter.
func (f HighlighterFunc) Highlight(language, source string) (string, error) {
	return f(language, source)
}

// Sink receives the rewritten token stream.
type Sink interface {
	Emit(token.Token) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(token.Token) error

// Emit implements Sink.
func (f SinkFunc) Emit(t token.Token) error {
	return f(t)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger receiving highlighter warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Stats counts what the engine rewrote.
type Stats struct {
	Headings           int
	CodeBlocks         int // fenced blocks sent to the highlighter
	HighlightFallbacks int // blocks left as plain text after a highlighter error
}

// Engine is the per-document stream rewriter. It is not safe for concurrent
// use; create one per conversion.
type Engine struct {
	highlighter Highlighter
	logger      *slog.Logger
	registry    *heading.Registry
	stats       Stats

	// Heading in progress, set strictly between heading open and close.
	inHeading bool
	level     heading.Level
	texts     []string

	// Fenced code block waiting for its body.
	pending  bool
	language string
}

// New creates an Engine. A nil highlighter disables highlighting: code
// bodies pass through as escaped text.
func New(h Highlighter, opts ...Option) *Engine {
	e := &Engine{
		highlighter: h,
		logger:      slog.New(slog.DiscardHandler),
		registry:    heading.NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run feeds every token of the stream through the engine and checks that
// the stream did not end inside a heading or before a code block body.
func (e *Engine) Run(tokens iter.Seq[token.Token], sink Sink) error {
	for t := range tokens {
		if err := e.Feed(t, sink); err != nil {
			return err
		}
	}
	return e.checkEnd()
}

// Feed processes a single token, emitting zero or one token to sink.
func (e *Engine) Feed(t token.Token, sink Sink) error {
	if e.inHeading {
		return e.feedHeading(t, sink)
	}

	switch t.Kind {
	case token.KindHeadingOpen:
		level := heading.Level(t.Level)
		if !level.Valid() {
			return violation("heading level %d out of range", t.Level)
		}
		e.inHeading = true
		e.level = level
		e.texts = e.texts[:0]
		return nil

	case token.KindHeadingClose:
		return violation("heading close (level %d) without open", t.Level)

	case token.KindCodeBlockOpen:
		if e.pending {
			return violation("code block opened while %q block body is pending", e.language)
		}
		if t.Fenced && e.highlighter != nil {
			e.pending = true
			e.language = t.Language
		}

	case token.KindCodeBlockClose:
		if e.pending {
			return violation("code block %q closed without a body", e.language)
		}

	case token.KindText:
		if e.pending {
			return sink.Emit(e.highlight(t))
		}
	}

	return sink.Emit(t)
}

// feedHeading handles tokens between heading open and close. Inline text is
// collected; inline markup is dropped so that only literal text remains.
func (e *Engine) feedHeading(t token.Token, sink Sink) error {
	switch t.Kind {
	case token.KindText:
		e.texts = append(e.texts, t.Text)
		return nil

	case token.KindHeadingClose:
		if heading.Level(t.Level) != e.level {
			return violation("heading opened at level %d closed at level %d", e.level, t.Level)
		}
		h := heading.Heading{Level: e.level, Title: strings.Join(e.texts, "")}
		h.Anchor = e.registry.Register(h.Level, h.Title)

		e.inHeading = false
		e.texts = e.texts[:0]
		e.stats.Headings++
		return sink.Emit(token.HTML(heading.Element(h) + "\n"))

	case token.KindHeadingOpen:
		return violation("heading (level %d) opened inside heading (level %d)", t.Level, e.level)
	}

	return nil
}

// highlight replaces a code body with highlighted markup, or returns it
// unchanged when the highlighter fails.
func (e *Engine) highlight(t token.Token) token.Token {
	language := e.language
	e.pending = false
	e.language = ""
	e.stats.CodeBlocks++

	markup, err := e.highlighter.Highlight(language, t.Text)
	if err != nil {
		e.stats.HighlightFallbacks++
		e.logger.Warn("failed creating source code formatting",
			logfields.Language(language), logfields.Error(err))
		return t
	}
	return token.HTML(markup)
}

func (e *Engine) checkEnd() error {
	if e.inHeading {
		return violation("stream ended inside heading (level %d)", e.level)
	}
	if e.pending {
		return violation("stream ended before %q code block body", e.language)
	}
	return nil
}

// Finish ends the document and returns its heading outline in document
// order. The engine must not be fed afterwards.
func (e *Engine) Finish() ([]heading.Heading, error) {
	if err := e.checkEnd(); err != nil {
		return nil, err
	}
	return e.registry.Finish(), nil
}

// Stats returns counters for the tokens rewritten so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
