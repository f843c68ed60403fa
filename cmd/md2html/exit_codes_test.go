package main

// Notes:
// - exitCodeFor: sentinel errors from every package the CLI reaches, plus
//   wrapped errors to verify the errors.Is chain.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/inline"
	"github.com/alnah/go-md2html/internal/pdf"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// External tools (exit 4)
		{"monolith not found", inline.ErrMonolithNotFound, ExitTool},
		{"monolith failed", inline.ErrMonolithFailed, ExitTool},
		{"inline timeout", inline.ErrTimeout, ExitTool},
		{"browser connect", pdf.ErrBrowserConnect, ExitTool},
		{"page load", pdf.ErrPageLoad, ExitTool},
		{"pdf generation", fmt.Errorf("%w: %w", md2html.ErrPDFGeneration, pdf.ErrPDFGeneration), ExitTool},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"invalid asset name", assets.ErrInvalidAssetName, ExitUsage},
		{"toc depth", md2html.ErrInvalidTOCDepth, ExitUsage},
		{"style not found", md2html.ErrStyleNotFound, ExitUsage},
		{"template not found", md2html.ErrTemplateNotFound, ExitUsage},
		{"theme not found", md2html.ErrThemeNotFound, ExitUsage},
		{"batch unwraps first failure", &batchError{Count: 2, First: md2html.ErrThemeNotFound}, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("unknown"), ExitGeneral},
		{"html conversion", md2html.ErrHTMLConversion, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_UnixConventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard exit codes changed: %d %d %d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitTool} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}
