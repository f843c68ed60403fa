// Package heading tracks the headings of one document: it derives unique
// anchors from heading titles and records the document outline in order.
package heading

import (
	"fmt"
	"html"
)

// Heading levels supported by HTML.
const (
	MinLevel Level = 1
	MaxLevel Level = 6
)

// Level is a heading level, 1 (h1) through 6 (h6).
type Level int

// Valid reports whether l is between MinLevel and MaxLevel.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// Heading is one entry of a document outline.
// Values are created by Registry.Register and never modified afterwards.
type Heading struct {
	Level  Level
	Anchor string // unique within the document
	Title  string // literal inline text, markup stripped
}

// Element renders h as an HTML heading element carrying its anchor as id.
// The title is escaped; the anchor is a slug and needs no escaping.
func Element(h Heading) string {
	return fmt.Sprintf(`<h%d id="%s">%s</h%d>`, h.Level, h.Anchor, html.EscapeString(h.Title), h.Level)
}
