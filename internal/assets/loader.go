package assets

import (
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "page"
)

// AssetLoader loads stylesheets and page templates by name.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Names must be non-empty and free of path separators and dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
