package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/highlight"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrTemplateRender   = errors.New("page template rendering failed")
	ErrInlineAssets     = errors.New("asset inlining failed")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Lookup errors shared with the internal loaders.
	ErrThemeNotFound    = highlight.ErrThemeNotFound
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
)
