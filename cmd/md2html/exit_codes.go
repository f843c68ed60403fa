package main

import (
	"errors"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/inline"
	"github.com/alnah/go-md2html/internal/pdf"
)

// Exit codes for md2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitTool    = 4 // External tool errors (monolith, browser)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, inline.ErrMonolithNotFound) ||
		errors.Is(err, inline.ErrMonolithFailed) ||
		errors.Is(err, inline.ErrTimeout) ||
		errors.Is(err, inline.ErrInvalidOutput) ||
		errors.Is(err, pdf.ErrBrowserConnect) ||
		errors.Is(err, pdf.ErrPageCreate) ||
		errors.Is(err, pdf.ErrPageLoad) ||
		errors.Is(err, pdf.ErrPDFGeneration) ||
		errors.Is(err, md2html.ErrPDFGeneration) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, md2html.ErrInvalidTOCDepth) ||
		errors.Is(err, md2html.ErrStyleNotFound) ||
		errors.Is(err, md2html.ErrTemplateNotFound) ||
		errors.Is(err, md2html.ErrThemeNotFound) ||
		errors.Is(err, md2html.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
