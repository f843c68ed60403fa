package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logfields"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	title string // explicit page title, empty = derived per document
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Stats      md2html.Stats
	Err        error
	Duration   time.Duration
}

// batchError reports failed conversions. It unwraps to the first failure so
// that the exit code reflects its cause.
type batchError struct {
	Count int
	First error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.Count)
}

func (e *batchError) Unwrap() error {
	return e.First
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, logger *slog.Logger) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wlog := logger.With(logfields.Worker(w))

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
				logResult(wlog, results[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func logResult(logger *slog.Logger, r ConversionResult) {
	if r.Err != nil {
		logger.Debug("conversion failed", logfields.File(r.InputPath), logfields.Error(r.Err))
		return
	}
	logger.Debug("conversion done",
		logfields.File(r.InputPath),
		logfields.Output(r.OutputPath),
		logfields.Headings(r.Stats.Headings),
		logfields.CodeBlocks(r.Stats.CodeBlocks),
		logfields.Duration(r.Duration))
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, md2html.Input{
		Markdown:   string(content),
		SourcePath: f.InputPath,
		Title:      params.title,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := writeOutputs(f.OutputPath, res); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	if res.PDF != nil {
		result.PDFPath = fileutil.ReplaceExt(f.OutputPath, ".pdf")
	}

	result.Stats = res.Stats
	result.Duration = time.Since(start)
	return result
}

// writeOutputs writes the page to htmlPath and, when present, the PDF next to it.
func writeOutputs(htmlPath string, res *md2html.Result) error {
	if err := os.MkdirAll(filepath.Dir(htmlPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(htmlPath, []byte(res.HTML), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if res.PDF != nil {
		pdfPath := fileutil.ReplaceExt(htmlPath, ".pdf")
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfPath, res.PDF, filePermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	return nil
}

// printResults outputs conversion results and returns the failures.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) *batchError {
	failed := &batchError{}
	succeeded := 0

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.InputPath, formatError(r.Err))
			if failed.First == nil {
				failed.First = r.Err
			}
			failed.Count++
			continue
		}
		succeeded++

		if quiet {
			continue
		}

		outputs := r.OutputPath
		if r.PDFPath != "" {
			outputs += ", " + r.PDFPath
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, outputs, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed.Count)
	}

	return failed
}
