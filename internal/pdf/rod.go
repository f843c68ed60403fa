package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2html/internal/process"
)

// rodRenderer implements renderer using go-rod.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return nil
}

// Close shuts the browser down and kills any process it left behind.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		killLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

func killLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	page = page.Timeout(timeout)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions converts Options to Chrome's print parameters.
func buildPDFOptions(opts Options) *proto.PagePrintToPDF {
	size := pageSizes[defaultPageSize]
	if s, ok := pageSizes[strings.ToLower(opts.PageSize)]; ok {
		size = s
	}
	margin := opts.Margin
	if margin == 0 {
		margin = defaultMargin
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(size[0]),
		PaperHeight:     floatPtr(size[1]),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

var _ renderer = (*rodRenderer)(nil)
