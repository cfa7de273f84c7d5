package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlocal -i <input.md> -o <output.md> [flags]")
	fmt.Fprintln(w, "       mdlocal <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download remote images referenced by a Markdown file and point")
	fmt.Fprintln(w, "the links at the local copies.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdlocal --help' for flags, 'mdlocal help <command>' for a command.")
}

// printLocalizeUsage prints the flags of a localization run.
func printLocalizeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlocal -i <input.md> -o <output.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite remote image links to local copies stored in the media directory.")
	fmt.Fprintln(w, "Images already downloaded are reused; failed downloads keep their URL.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Markdown file to process (required)")
	fmt.Fprintln(w, "  -o, --output <path>       Rewritten Markdown file (required)")
	fmt.Fprintln(w, "  -m, --media-dir <dir>     Image directory (default \"media\")")
	fmt.Fprintln(w, "  -f, --force               Overwrite the output file if it exists")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download:")
	fmt.Fprintln(w, "  -r, --refetch             Download images again even when cached")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-image timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --user-agent <s>      User-Agent header")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-image detail and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDLOCAL_CONFIG, MDLOCAL_MEDIA_DIR, MDLOCAL_TIMEOUT,")
	fmt.Fprintln(w, "  MDLOCAL_USER_AGENT, MDLOCAL_MAX_SIZE")
	fmt.Fprintln(w, "  Priority: flags > environment > config file > defaults")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlocal config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML, after applying the")
	fmt.Fprintln(w, "config file and MDLOCAL_* environment variables.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdlocal version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdlocal help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
