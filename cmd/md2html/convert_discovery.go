package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert. Files are converted as
// named; directories are walked for *.md and *.markdown.
func discoverFiles(inputs []string, outputDir string) ([]FileToConvert, error) {
	if isHTMLPath(outputDir) && (len(inputs) > 1 || len(inputs) == 1 && isDir(inputs[0])) {
		return nil, fmt.Errorf("%w: --output %s names a file but several inputs were given", ErrUsage, outputDir)
	}

	var files []FileToConvert
	seen := make(map[string]bool)
	add := func(in, out string) {
		if !seen[in] {
			seen[in] = true
			files = append(files, FileToConvert{InputPath: in, OutputPath: out})
		}
	}

	for _, inputPath := range inputs {
		info, err := os.Stat(inputPath)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(inputPath); err != nil {
				return nil, err
			}
			add(inputPath, resolveOutputPath(inputPath, outputDir, ""))
			continue
		}

		err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() {
				return nil
			}
			if !isMarkdownFile(path) {
				return nil
			}
			add(path, resolveOutputPath(path, outputDir, inputPath))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// resolveOutputPath determines the HTML output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := filepath.Base(fileutil.ReplaceExt(inputPath, ".html"))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if isHTMLPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base)
		}
	}

	return filepath.Join(outputDir, base)
}

func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2html.MaxPoolSize)
	}
	return nil
}
