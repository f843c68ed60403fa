// Package config loads the YAML configuration of md2html.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxInputSize limits config file size to prevent memory exhaustion.
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxAssetNameLength = 64
	MaxThemeLength     = 64
	MaxLangLength      = 35 // BCP 47 practical maximum
	MaxTOCTitleLength  = 100
)

// Inline modes.
const (
	InlineNone     = "none"
	InlineNative   = "native"
	InlineMonolith = "monolith"
)

// Config holds all configuration for document generation.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Style     string          `yaml:"style"`    // Stylesheet name (empty = default)
	Template  string          `yaml:"template"` // Page template name (empty = default)
	Lang      string          `yaml:"lang"`     // Document language (empty = "en")
	Workers   int             `yaml:"workers"`  // Parallel conversions (0 = auto)
	Assets    AssetsConfig    `yaml:"assets"`
	Highlight HighlightConfig `yaml:"highlight"`
	TOC       TOCConfig       `yaml:"toc"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Inline    InlineConfig    `yaml:"inline"`
	PDF       PDFConfig       `yaml:"pdf"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Theme    string `yaml:"theme"`    // chroma style name (empty = "github")
	Disabled bool   `yaml:"disabled"` // Leave code blocks as plain text
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // Empty = no title above TOC
	MinDepth int    `yaml:"minDepth"` // 1-6, 0 = no lower bound
	MaxDepth int    `yaml:"maxDepth"` // 1-6, 0 = no upper bound
}

// MarkdownConfig defines parser and renderer options.
type MarkdownConfig struct {
	Unsafe    bool `yaml:"unsafe"`    // Keep raw HTML from the source
	HardWraps bool `yaml:"hardWraps"` // Render soft line breaks as <br>
}

// InlineConfig defines asset inlining options.
type InlineConfig struct {
	Mode    string `yaml:"mode"`    // none, native, monolith (empty = none)
	Path    string `yaml:"path"`    // monolith executable (empty = "monolith" on PATH)
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s" (empty = default)
}

// PDFConfig defines optional PDF export.
type PDFConfig struct {
	Enabled  bool    `yaml:"enabled"`
	PageSize string  `yaml:"pageSize"` // letter, legal, a4, a5 (empty = letter)
	Margin   float64 `yaml:"margin"`   // Inches (0 = 0.5)
	Timeout  string  `yaml:"timeout"`  // Go duration (empty = default)
}

// PageSizes lists the accepted pdf.pageSize values.
var PageSizes = []string{"letter", "legal", "a4", "a5"}

// TimeoutDuration parses the inline timeout. Zero means the default applies.
func (c InlineConfig) TimeoutDuration() (time.Duration, error) {
	return parseTimeout("inline.timeout", c.Timeout)
}

// TimeoutDuration parses the PDF timeout. Zero means the default applies.
func (c PDFConfig) TimeoutDuration() (time.Duration, error) {
	return parseTimeout("pdf.timeout", c.Timeout)
}

func parseTimeout(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// Validate checks field lengths and value ranges. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"inline.path", c.Inline.Path, MaxPathLength},
		{"style", c.Style, MaxAssetNameLength},
		{"template", c.Template, MaxAssetNameLength},
		{"lang", c.Lang, MaxLangLength},
		{"highlight.theme", c.Highlight.Theme, MaxThemeLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	for field, value := range map[string]string{"style": c.Style, "template": c.Template} {
		if strings.ContainsAny(value, `/\.`) {
			return fmt.Errorf("%w: %s: %q must be a name, not a path", ErrInvalidValue, field, value)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers: must not be negative, got %d", ErrInvalidValue, c.Workers)
	}

	if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
		return err
	}
	if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
		return err
	}
	if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) exceeds toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
	}

	if c.Inline.Mode != "" && !slices.Contains([]string{InlineNone, InlineNative, InlineMonolith}, c.Inline.Mode) {
		return fmt.Errorf("%w: inline.mode: %q (must be none, native, or monolith)", ErrInvalidValue, c.Inline.Mode)
	}
	if _, err := c.Inline.TimeoutDuration(); err != nil {
		return err
	}
	if c.PDF.PageSize != "" && !slices.Contains(PageSizes, strings.ToLower(c.PDF.PageSize)) {
		return fmt.Errorf("%w: pdf.pageSize: %q (must be one of %s)", ErrInvalidValue, c.PDF.PageSize, strings.Join(PageSizes, ", "))
	}
	if c.PDF.Margin < 0 {
		return fmt.Errorf("%w: pdf.margin: must not be negative, got %.2f", ErrInvalidValue, c.PDF.Margin)
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

func validateDepth(field string, depth int) error {
	if depth != 0 && (depth < 1 || depth > 6) {
		return fmt.Errorf("%w: %s: must be between 1 and 6, got %d", ErrInvalidValue, field, depth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// embedded assets, default theme, TOC enabled, no inlining, no PDF.
func DefaultConfig() *Config {
	return &Config{
		TOC:    TOCConfig{Enabled: true},
		Inline: InlineConfig{Mode: InlineNone},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
//
// Keys absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// unmarshalStrict decodes YAML and rejects unknown fields.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("empty file")
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("input exceeds maximum size: %d bytes (max %d)", len(data), MaxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// extensions .yaml then .yml, in the current directory then
// {UserConfigDir}/go-md2html/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, "go-md2html"))
	}

	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, candidate := range triedPaths {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
