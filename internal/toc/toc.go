// Package toc builds the table of contents of a converted document.
//
// The outline comes either from the transform engine, which records every
// heading while rewriting the stream, or from Parse, which recovers it from
// already rendered HTML.
package toc

import (
	"fmt"
	"html"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-md2html/internal/heading"
)

// Build renders the outline as nested unordered lists.
//
// Each heading becomes a list item linking to its anchor. A deeper heading
// opens one list per level of increase inside the still open item; a
// shallower or equal heading first closes the deeper lists. Skipped levels
// produce nested lists without an intermediate item. An empty outline
// yields the empty string.
func Build(outline []heading.Heading) string {
	var buf strings.Builder
	last := heading.Level(0)

	for _, h := range outline {
		if h.Level > last {
			for ; last < h.Level; last++ {
				buf.WriteString("\n<ul>\n")
			}
		} else {
			for ; last > h.Level; last-- {
				buf.WriteString("</li>\n</ul>\n")
			}
			buf.WriteString("</li>\n")
		}

		buf.WriteString(`<li><a href="#`)
		buf.WriteString(html.EscapeString(h.Anchor))
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Title))
		buf.WriteString(`</a>`)
	}

	for ; last > 0; last-- {
		buf.WriteString("</li>\n</ul>\n")
	}
	return buf.String()
}

// Filter returns the headings whose level lies in [minDepth, maxDepth].
// A zero bound is ignored.
func Filter(outline []heading.Heading, minDepth, maxDepth int) []heading.Heading {
	var kept []heading.Heading
	for _, h := range outline {
		if minDepth > 0 && int(h.Level) < minDepth {
			continue
		}
		if maxDepth > 0 && int(h.Level) > maxDepth {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

// headingPatterns holds one pattern per level so that an element only
// closes on its own level. Captures: 1=id, 2=inner HTML (may contain inline tags)
var headingPatterns = func() [heading.MaxLevel + 1]*regexp.Regexp {
	var patterns [heading.MaxLevel + 1]*regexp.Regexp
	for level := heading.MinLevel; level <= heading.MaxLevel; level++ {
		patterns[level] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%[1]d\b[^>]*\bid="([^"]*)"[^>]*>(.*?)</h%[1]d>`, level))
	}
	return patterns
}()

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Parse recovers the outline from rendered HTML, in document order.
// Headings without an id are skipped. Titles have their tags stripped and
// entities decoded so that Build can escape them again without double encoding.
func Parse(bodyHTML string) []heading.Heading {
	type found struct {
		pos int
		h   heading.Heading
	}
	var all []found
	for level := heading.MinLevel; level <= heading.MaxLevel; level++ {
		for _, m := range headingPatterns[level].FindAllStringSubmatchIndex(bodyHTML, -1) {
			all = append(all, found{pos: m[0], h: heading.Heading{
				Level:  level,
				Anchor: html.UnescapeString(bodyHTML[m[2]:m[3]]),
				Title:  stripHTMLTags(bodyHTML[m[4]:m[5]]),
			}})
		}
	}
	if len(all) == 0 {
		return nil
	}

	slices.SortFunc(all, func(a, b found) int { return a.pos - b.pos })
	outline := make([]heading.Heading, len(all))
	for i, f := range all {
		outline[i] = f.h
	}
	return outline
}

func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
