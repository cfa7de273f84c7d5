package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := dispatch(ctx, args[1:], env)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, flag.ErrHelp):
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(env.Stderr, "interrupted")
		return ExitGeneral
	}

	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	if isFlagError(err) {
		fmt.Fprintln(env.Stderr, "Run 'mdlocal --help' for usage.")
		return ExitUsage
	}
	return exitCodeFor(err)
}

// dispatch runs a command, or a localization when args start with a flag.
func dispatch(ctx context.Context, args []string, env *Environment) error {
	cmd := args[0]
	switch {
	case isCommand(cmd):
		return runCommand(cmd, args[1:], env)
	case strings.HasPrefix(cmd, "-"):
		f, positional, err := parseLocalizeFlags(args, env.Stderr)
		if err != nil {
			return err
		}
		return runLocalize(ctx, f, positional, env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// runCommand runs a named subcommand.
func runCommand(cmd string, args []string, env *Environment) error {
	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "go-mdlocal %s\n", Version)
		return nil
	case "help":
		return runHelp(args, env)
	case "completion":
		return runCompletion(args, env)
	case "config":
		return runConfigCmd(args, env)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	switch name {
	case "version", "help", "completion", "config":
		return true
	}
	return false
}

// isFlagError reports whether err came from pflag parsing.
// pflag returns plain errors, so the message prefix is the only signal.
func isFlagError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "flag needs an argument") ||
		strings.HasPrefix(msg, "invalid argument") ||
		strings.HasPrefix(msg, "bad flag syntax")
}

// wantsVerbose reports whether -v or --verbose appears before any "--".
func wantsVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
