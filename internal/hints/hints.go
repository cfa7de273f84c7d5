// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdlocal/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFetchFailures returns hints shown when remote images could not be downloaded.
// Detects CI/Docker environment and suggests proxy settings.
func ForFetchFailures() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && !proxyConfigured() {
		hints = append(hints, "set HTTPS_PROXY if the network requires a proxy")
	}

	hints = append(hints, "failed images keep their remote URL; rerun to retry them")

	return formatHints(hints)
}

func proxyConfigured() bool {
	for _, name := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForUnsupportedScheme returns a hint for image paths that cannot be downloaded,
// such as relative paths outside the media directory.
func ForUnsupportedScheme() string {
	return format("relative and non-http(s) image paths are never downloaded; use absolute URLs or move the files under the media directory")
}

// ForTimeout returns a hint about increasing timeout for slow hosts.
func ForTimeout() string {
	return format("for slow hosts, use --timeout flag")
}

// ForAssetTooLarge returns a hint about the download size limit.
func ForAssetTooLarge() string {
	return format("raise fetch.maxSize in the config file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdlocal/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "go-mdlocal/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputExists returns hints for an output file that already exists.
func ForOutputExists() string {
	return format("use -f/--force to overwrite")
}

// ForInputNotFound returns hints for a missing input document.
func ForInputNotFound() string {
	return format("check the path passed to -i/--input")
}

// ForMediaDirectory returns hints for media directory errors.
func ForMediaDirectory() string {
	return format("check parent directory exists and is writable")
}

// toSlash converts Windows separators to "/".
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
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
