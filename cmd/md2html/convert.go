package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logfields"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// stdinArg names standard input (and output) on the command line.
const stdinArg = "-"

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins), then check the merged values
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return ErrNoInput
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	opts, err := buildOptions(cfg, logger)
	if err != nil {
		return err
	}

	if len(positionalArgs) == 1 && positionalArgs[0] == stdinArg {
		return convertStdin(ctx, flags, cfg, opts, env)
	}
	for _, arg := range positionalArgs {
		if arg == stdinArg {
			return fmt.Errorf("%w: %q must be the only input", ErrUsage, stdinArg)
		}
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	if outputDir == stdinArg {
		return fmt.Errorf("%w: --output - requires stdin input", ErrUsage)
	}
	files, err := discoverFiles(positionalArgs, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(positionalArgs, ", "))
	}

	poolSize := md2html.ResolvePoolSize(cfg.Workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	logger.Debug("starting conversion", slog.Int("files", len(files)), slog.Int("pool_size", poolSize))

	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	// Surface option errors (unknown theme, style, ...) once instead of per file.
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(conv)

	params := &conversionParams{title: flags.document.title}
	results := convertBatch(ctx, pool, files, params, logger)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed.Count > 0 {
		return failed
	}
	return nil
}

// convertStdin converts standard input to standard output, or to --output.
func convertStdin(ctx context.Context, flags *convertFlags, cfg *config.Config, opts []md2html.Option, env *Environment) error {
	output := flags.output
	if output == stdinArg {
		output = ""
	}
	if cfg.PDF.Enabled && output == "" {
		return fmt.Errorf("%w: --pdf with stdin input requires --output <file.html>", ErrUsage)
	}

	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	pool := env.NewPool(1, opts...)
	defer pool.Close()
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	// Relative references resolve against the working directory.
	res, err := conv.Convert(ctx, md2html.Input{Markdown: string(content), Title: flags.document.title})
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := io.WriteString(env.Stdout, res.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	return writeOutputs(output, res)
}

// resolveOutputDir picks --output, else the configured default directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	if flags.document.lang != "" {
		cfg.Lang = flags.document.lang
	}

	// Highlight flags
	if flags.highlight.theme != "" {
		cfg.Highlight.Theme = flags.highlight.theme
	}
	if flags.highlight.disabled {
		cfg.Highlight.Disabled = true
	}

	// TOC flags
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
	if flags.toc.disabled {
		cfg.TOC.Enabled = false
	}

	// Markdown flags
	if flags.markdown.unsafe {
		cfg.Markdown.Unsafe = true
	}
	if flags.markdown.hardWraps {
		cfg.Markdown.HardWraps = true
	}

	// Inline flags
	if flags.inline.mode != "" {
		cfg.Inline.Mode = flags.inline.mode
	}
	if flags.inline.monolith != "" {
		cfg.Inline.Path = flags.inline.monolith
	}
	if flags.inline.timeout != "" {
		cfg.Inline.Timeout = flags.inline.timeout
	}

	// PDF flags; any PDF setting implies --pdf
	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if flags.pdf.pageSize != "" {
		cfg.PDF.PageSize = flags.pdf.pageSize
		cfg.PDF.Enabled = true
	}
	if flags.pdf.margin != 0 {
		cfg.PDF.Margin = flags.pdf.margin
		cfg.PDF.Enabled = true
	}
	if flags.pdf.timeout != "" {
		cfg.PDF.Timeout = flags.pdf.timeout
		cfg.PDF.Enabled = true
	}
}

// buildOptions converts a validated config into converter options.
func buildOptions(cfg *config.Config, logger *slog.Logger) ([]md2html.Option, error) {
	opts := []md2html.Option{
		md2html.WithLogger(logger),
		md2html.WithTheme(cfg.Highlight.Theme),
		md2html.WithStyle(cfg.Style),
		md2html.WithTemplate(cfg.Template),
		md2html.WithAssetPath(cfg.Assets.BasePath),
		md2html.WithLang(cfg.Lang),
		md2html.WithTOC(md2html.TOCOptions{
			Disabled: !cfg.TOC.Enabled,
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}),
		md2html.WithMarkdownOptions(md2html.MarkdownOptions{
			Unsafe:    cfg.Markdown.Unsafe,
			HardWraps: cfg.Markdown.HardWraps,
		}),
	}
	if cfg.Highlight.Disabled {
		opts = append(opts, md2html.WithoutHighlighting())
	}

	inlineTimeout, err := cfg.Inline.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	switch cfg.Inline.Mode {
	case config.InlineNative:
		opts = append(opts, md2html.WithInliner(md2html.NewNativeInliner(logger)))
	case config.InlineMonolith:
		opts = append(opts, md2html.WithInliner(md2html.NewMonolithInliner(md2html.MonolithOptions{
			Path:    cfg.Inline.Path,
			Timeout: inlineTimeout,
		}, logger)))
	}

	if cfg.PDF.Enabled {
		pdfTimeout, err := cfg.PDF.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		opts = append(opts, md2html.WithPDF(md2html.PDFOptions{
			PageSize: cfg.PDF.PageSize,
			Margin:   cfg.PDF.Margin,
			Timeout:  pdfTimeout,
		}))
	}

	logger.Debug("configuration resolved",
		logfields.Theme(cfg.Highlight.Theme),
		slog.String("style", cfg.Style),
		slog.String("inline", cfg.Inline.Mode),
		slog.Bool("pdf", cfg.PDF.Enabled))
	return opts, nil
}

// newLogger builds the stderr logger: errors only with --quiet, debug
// output with --verbose, warnings otherwise.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isHTMLPath reports whether an --output value names a page file.
func isHTMLPath(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".html" || ext == ".htm"
}
