// Package md2html converts Markdown documents to self-contained HTML pages
// with a table of contents and syntax-highlighted code blocks.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", []byte(result.HTML), 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown parsing via Goldmark (GFM, footnotes) into a token stream
//  2. Single-pass transform: unique heading anchors, highlighted fenced code
//     (chroma), heading outline collection
//  3. Table of contents built from the outline as nested lists
//  4. Page rendering from the page template and stylesheet
//  5. Optional asset inlining (native or the external monolith tool)
//  6. Optional PDF export via headless Chrome (go-rod)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithTheme("monokai"),
//	    md2html.WithStyle("plain"),
//	    md2html.WithTOC(md2html.TOCOptions{Title: "Contents", MaxDepth: 3}),
//	    md2html.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── page.html
//
// # Parallel Processing
//
// A Converter without PDF export is safe for concurrent use. For batch
// conversion with PDF export, use ConverterPool so that every worker owns
// its browser:
//
//	pool := md2html.NewConverterPool(4, md2html.WithPDF(md2html.PDFOptions{}))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package md2html
