// Package page renders standalone HTML pages from the converted body, the
// table of contents and the stylesheets.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for page rendering.
var (
	ErrTemplateParse  = errors.New("page template parsing failed")
	ErrTemplateRender = errors.New("page template rendering failed")
)

// DefaultLang is the document language used when none is set.
const DefaultLang = "en"

// Data is the input of a page template.
type Data struct {
	Lang     string
	Title    string
	TOCTitle string
	TOC      string // trusted HTML from the TOC builder
	Body     string // trusted HTML from the renderer
	CSS      string // page stylesheet
	CodeCSS  string // declarations applied to highlighted code blocks
}

// view is what the template sees: trusted fragments are typed so that
// html/template inserts them verbatim.
type view struct {
	Lang     string
	Title    string
	TOCTitle string
	TOC      template.HTML
	Body     template.HTML
	CSS      template.CSS
	CodeCSS  template.CSS
}

// Renderer executes a parsed page template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses a page template.
func New(source string) (*Renderer, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render returns the complete page.
func (r *Renderer) Render(data Data) (string, error) {
	v := view{
		Lang:     data.Lang,
		Title:    data.Title,
		TOCTitle: data.TOCTitle,
		TOC:      template.HTML(data.TOC),   // #nosec G203 -- generated by the TOC builder
		Body:     template.HTML(data.Body), // #nosec G203 -- generated by the renderer
		CSS:      template.CSS(sanitizeCSS(data.CSS)),
		CodeCSS:  template.CSS(sanitizeCSS(data.CodeCSS)),
	}
	if v.Lang == "" {
		v.Lang = DefaultLang
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could close the enclosing <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
