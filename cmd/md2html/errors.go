package main

import (
	"errors"
	"strings"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/highlight"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/inline"
	"github.com/alnah/go-md2html/internal/pdf"
)

// formatError renders err followed by actionable hints.
func formatError(err error) string {
	var batch *batchError
	if errors.As(err, &batch) {
		// Each failure was already reported with its hints.
		return err.Error()
	}
	return err.Error() + hintFor(err)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, pdf.ErrPageLoad):
		return hints.ForTimeout("--pdf-timeout")
	case errors.Is(err, inline.ErrMonolithNotFound):
		return hints.ForMonolithMissing()
	case errors.Is(err, inline.ErrTimeout):
		return hints.ForTimeout("--inline-timeout")
	case errors.Is(err, config.ErrConfigNotFound):
		if name := configName(err); name != "" {
			return hints.ForConfigNotFound(config.SearchPaths(name))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, md2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames())
	case errors.Is(err, md2html.ErrThemeNotFound):
		return hints.ForThemeNotFound(highlight.Themes())
	case errors.Is(err, ErrWriteOutput) && strings.Contains(err.Error(), "creating output directory"):
		return hints.ForOutputDirectory()
	}
	return ""
}

// configName recovers the config name from an ErrConfigNotFound message
// ("... tried NAME.yaml, ...").
func configName(err error) string {
	msg := err.Error()
	_, tried, ok := strings.Cut(msg, "tried ")
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(tried, ",")
	first = strings.TrimSpace(first)
	return strings.TrimSuffix(first, ".yaml")
}
