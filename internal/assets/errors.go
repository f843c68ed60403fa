package assets

import "errors"

// Lookup errors. The resolver falls back to the embedded set only for these.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("page template not found")
)

// Validation and I/O errors, never subject to fallback.
var (
	// ErrInvalidAssetName rejects names that could address a path
	// (separators, dots) instead of a single file in the asset directory.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports an --asset-path that is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid asset directory")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("asset path escapes the asset directory")
)
