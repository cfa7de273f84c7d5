package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// fetchFlags holds download-related flags.
type fetchFlags struct {
	refetch   bool
	timeout   string
	userAgent string
}

// localizeFlags holds all flags for a localization run.
type localizeFlags struct {
	common   commonFlags
	fetch    fetchFlags
	input    string
	output   string
	mediaDir string
	force    bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-image detail and timing")
}

// addFetchFlags adds download flags to a FlagSet.
func addFetchFlags(fs *flag.FlagSet, f *fetchFlags) {
	fs.BoolVarP(&f.refetch, "refetch", "r", false, "download images again even when cached")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-image download timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent header sent with downloads")
}

// buildLocalizeFlagSet registers every localization flag on a new FlagSet.
// Shared by parsing and completion generation.
func buildLocalizeFlagSet(f *localizeFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("mdlocal", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.input, "input", "i", "", "Markdown file to process")
	fs.StringVarP(&f.output, "output", "o", "", "path of the rewritten Markdown file")
	fs.StringVarP(&f.mediaDir, "media-dir", "m", "", "directory for downloaded images (default \"media\")")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite the output file if it exists")

	// Flag groups
	addFetchFlags(fs, &f.fetch)
	addCommonFlags(fs, &f.common)

	return fs
}

// parseLocalizeFlags parses localization flags and returns positional args.
// Parse errors and usage go to stderr.
func parseLocalizeFlags(args []string, stderr io.Writer) (*localizeFlags, []string, error) {
	f := &localizeFlags{}
	fs := buildLocalizeFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printLocalizeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
