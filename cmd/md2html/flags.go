package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags (stylesheet, template, custom asset path).
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// documentFlags holds page metadata flags.
type documentFlags struct {
	title string
	lang  string
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	theme    string
	disabled bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title    string
	minDepth int
	maxDepth int
	disabled bool
}

// markdownFlags holds Markdown rendering flags.
type markdownFlags struct {
	unsafe    bool
	hardWraps bool
}

// inlineFlags holds asset inlining flags.
type inlineFlags struct {
	mode     string
	monolith string
	timeout  string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	enabled  bool
	pageSize string
	margin   float64
	timeout  string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	assets    assetFlags
	document  documentFlags
	highlight highlightFlags
	toc       tocFlags
	markdown  markdownFlags
	inline    inlineFlags
	pdf       pdfFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.template, "template", "", "page template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addDocumentFlags adds page metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "page title (\"\" = first heading, then file name)")
	fs.StringVar(&f.lang, "lang", "", "page language (default: en)")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.theme, "theme", "", "highlight theme (default: github)")
	fs.BoolVar(&f.disabled, "no-highlight", false, "leave code blocks as plain text")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6)")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addMarkdownFlags adds Markdown rendering flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.unsafe, "unsafe", false, "keep raw HTML from the source")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render line breaks as <br>")
}

// addInlineFlags adds asset inlining flags to a FlagSet.
func addInlineFlags(fs *flag.FlagSet, f *inlineFlags) {
	fs.StringVar(&f.mode, "inline", "", "embed assets: none, native, monolith")
	fs.StringVar(&f.monolith, "monolith-path", "", "monolith executable")
	fs.StringVar(&f.timeout, "inline-timeout", "", "inlining timeout (e.g., 30s, 2m)")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also write a PDF next to each page")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "PDF page size: letter, legal, a4, a5")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches")
	fs.StringVar(&f.timeout, "pdf-timeout", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// parseConvertFlags parses convert flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("md2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addDocumentFlags(fs, &f.document)
	addHighlightFlags(fs, &f.highlight)
	addTOCFlags(fs, &f.toc)
	addMarkdownFlags(fs, &f.markdown)
	addInlineFlags(fs, &f.inline)
	addPDFFlags(fs, &f.pdf)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
