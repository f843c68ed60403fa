// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// maxListed caps how many names a hint enumerates.
const maxListed = 12

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors during PDF
// export. Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForMonolithMissing returns hints for a monolith executable that cannot be started.
func ForMonolithMissing() string {
	return formatHints([]string{
		"install monolith (https://github.com/Y2Z/monolith) and make sure it is on PATH",
		"or use --inline native",
	})
}

// ForTimeout returns a hint about increasing the timeout named by flag.
func ForTimeout(flag string) string {
	return format("for large documents, raise " + flag)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	appDir := string(filepath.Separator) + "go-md2html" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, appDir) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	return forAvailable(available)
}

// ForThemeNotFound returns hints for unknown highlight themes.
func ForThemeNotFound(available []string) string {
	hint := forAvailable(available)
	if hint == "" {
		return ""
	}
	return hint + "; run 'md2html themes' for the full list"
}

func forAvailable(available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(available) > maxListed {
		return format("available: " + strings.Join(available[:maxListed], ", ") + ", ...")
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
