// Package logfields holds the canonical slog attribute keys used across the module.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names.
const (
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyLanguage   = "language"
	KeyTheme      = "theme"
	KeyHeadings   = "headings"
	KeyCodeBlocks = "code_blocks"
	KeyWorker     = "worker"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func File(path string) slog.Attr { return slog.String(KeyFile, path) }
func Output(path string) slog.Attr { return slog.String(KeyOutput, path) }
func Language(lang string) slog.Attr { return slog.String(KeyLanguage, lang) }
func Theme(name string) slog.Attr { return slog.String(KeyTheme, name) }
func Headings(n int) slog.Attr { return slog.Int(KeyHeadings, n) }
func CodeBlocks(n int) slog.Attr { return slog.Int(KeyCodeBlocks, n) }
func Worker(id int) slog.Attr { return slog.Int(KeyWorker, id) }

// Duration reports d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

// Error returns an error attribute; a nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
