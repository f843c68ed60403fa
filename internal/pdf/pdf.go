// Package pdf prints generated pages to PDF with headless Chrome (go-rod).
//
// Rod downloads Chromium on first use unless ROD_BROWSER_BIN points to an
// installed browser.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Sentinel errors for PDF export.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPageSize       = errors.New("unknown page size")
)

// DefaultTimeout bounds loading and printing one page.
const DefaultTimeout = 30 * time.Second

// Page sizes in inches.
var pageSizes = map[string][2]float64{
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
	"a4":     {8.27, 11.69},
	"a5":     {5.83, 8.27},
}

// Options controls the printed layout.
type Options struct {
	PageSize string  // letter, legal, a4, a5 (empty = letter)
	Margin   float64 // inches (0 = 0.5)
}

const (
	defaultPageSize = "letter"
	defaultMargin   = 0.5
)

// Validate reports an unknown page size or a negative margin.
func (o Options) Validate() error {
	if o.PageSize != "" {
		if _, ok := pageSizes[strings.ToLower(o.PageSize)]; !ok {
			return fmt.Errorf("%w: %q", ErrPageSize, o.PageSize)
		}
	}
	if o.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %.2f", o.Margin)
	}
	return nil
}

// renderer abstracts printing a local HTML file to enable testing without a browser.
type renderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts Options) ([]byte, error)
	Close() error
}

// Converter prints HTML pages to PDF. A Converter owns one browser and
// serializes its use; pools hand out one Converter per worker.
type Converter struct {
	renderer renderer
	opts     Options
}

// NewConverter creates a Converter. The browser starts on the first
// conversion.
func NewConverter(timeout time.Duration, opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Converter{renderer: newRodRenderer(timeout), opts: opts}, nil
}

// ToPDF prints page. Relative references in the page resolve against
// baseDir; empty means the working directory.
func (c *Converter) ToPDF(ctx context.Context, page, baseDir string) ([]byte, error) {
	if baseDir == "" {
		baseDir = "."
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}

	// The page is printed from a temp file, so anchor relative references
	// to the source directory.
	tmpPath, cleanup, err := fileutil.WriteTempFile(injectBase(page, fileURL(absBase)+"/"), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, c.opts)
}

// Close releases browser resources.
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// injectBase inserts a <base> element at the start of <head>. Pages that
// already declare one keep it.
func injectBase(page, href string) string {
	lower := strings.ToLower(page)
	if strings.Contains(lower, "<base ") {
		return page
	}
	tag := `<base href="` + href + `">`

	if idx := strings.Index(lower, "<head"); idx != -1 {
		if closeIdx := strings.Index(page[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return page[:insertPos] + tag + page[insertPos:]
		}
	}
	return tag + page
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive paths
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
