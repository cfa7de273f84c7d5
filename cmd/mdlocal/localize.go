package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	mdlocal "github.com/alnah/go-mdlocal"
	"github.com/alnah/go-mdlocal/internal/config"
	"github.com/alnah/go-mdlocal/internal/fileutil"
	"github.com/alnah/go-mdlocal/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrMissingFlag     = errors.New("missing required flag")
	ErrUnexpectedArgs  = errors.New("unexpected arguments")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// runLocalize rewrites one Markdown file and saves the result.
func runLocalize(ctx context.Context, f *localizeFlags, positional []string, env *Environment) error {
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v (use -i/--input)", ErrUnexpectedArgs, positional)
	}
	if f.input == "" {
		return fmt.Errorf("%w: -i/--input", ErrMissingFlag)
	}
	if f.output == "" {
		return fmt.Errorf("%w: -o/--output", ErrMissingFlag)
	}

	envCfg := loadEnvConfig(env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(f.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	// Merge CLI flags into config (CLI wins)
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.Fetch.TimeoutDuration()
	if err != nil {
		return err
	}

	progress := env.Stdout
	if f.common.quiet {
		progress = io.Discard
	}

	fetcher := env.Fetcher
	if fetcher == nil {
		fetcher = mdlocal.NewHTTPFetcher(
			mdlocal.WithUserAgent(cfg.Fetch.UserAgent),
			mdlocal.WithFetchTimeout(timeout),
			mdlocal.WithMaxAssetSize(cfg.Fetch.MaxSize),
		)
	}

	loc := mdlocal.NewLocalizer(
		mdlocal.WithFetcher(fetcher),
		mdlocal.WithImageExtensions(cfg.Images.Extensions),
		mdlocal.WithRefetch(cfg.Fetch.Refetch),
		mdlocal.WithProgress(progress),
		mdlocal.WithWarnings(env.Stderr),
	)

	start := env.Now()
	result, err := loc.Localize(ctx, mdlocal.Input{
		InputPath:  f.input,
		OutputPath: f.output,
		MediaDir:   cfg.Media.Dir,
		Overwrite:  f.force,
	})
	if err != nil {
		return fmt.Errorf("%w%s", err, hintFor(err))
	}

	if err := writeOutput(f.output, result.Markdown); err != nil {
		return err
	}

	printResult(result, f, env.Now().Sub(start), env)
	return nil
}

// loadConfig resolves the config name from the flag, then MDLOCAL_CONFIG.
// No name means defaults.
func loadConfig(flagValue string, envCfg *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		hint := ""
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			hint = hints.ForConfigNotFound(config.SearchPaths(name))
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// mergeFlags copies explicitly set CLI values over config values.
func mergeFlags(f *localizeFlags, cfg *config.Config) {
	if f.mediaDir != "" {
		cfg.Media.Dir = f.mediaDir
	}
	if f.fetch.refetch {
		cfg.Fetch.Refetch = true
	}
	if f.fetch.timeout != "" {
		cfg.Fetch.Timeout = f.fetch.timeout
	}
	if f.fetch.userAgent != "" {
		cfg.Fetch.UserAgent = f.fetch.userAgent
	}
}

// writeOutput saves the rewritten document, creating parent directories.
func writeOutput(path, markdown string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCreateOutputDir, dir, err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(markdown)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}

// hintFor returns the hint matching a localization error, if any.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdlocal.ErrOutputExists):
		return hints.ForOutputExists()
	case errors.Is(err, mdlocal.ErrInputNotFound):
		return hints.ForInputNotFound()
	case errors.Is(err, mdlocal.ErrStorage):
		return hints.ForMediaDirectory()
	default:
		return ""
	}
}

// printResult reports a finished run.
func printResult(result *mdlocal.Result, f *localizeFlags, elapsed time.Duration, env *Environment) {
	if f.common.verbose {
		for _, ref := range result.References {
			switch ref.Outcome {
			case mdlocal.OutcomeFetched, mdlocal.OutcomeCached:
				fmt.Fprintf(env.Stdout, "  %-9s %s -> %s\n", ref.Outcome, ref.Source, ref.Destination)
			case mdlocal.OutcomeFailed:
				fmt.Fprintf(env.Stdout, "  %-9s %s\n", ref.Outcome, ref.Source)
			default:
				fmt.Fprintf(env.Stdout, "  %-9s %s (%s)\n", "skipped", ref.Source, ref.Class)
			}
		}
		fmt.Fprintf(env.Stdout, "%d fetched, %d cached, %d failed, %d skipped (%v)\n",
			result.Fetched, result.Cached, result.Failed, result.Skipped, elapsed.Round(time.Millisecond))
	}

	if result.Failed > 0 {
		fmt.Fprintf(env.Stderr, "%d image reference(s) left remote%s\n",
			result.Failed, failureHints(result))
	}

	if f.common.quiet {
		return
	}
	fmt.Fprintln(env.Stdout, "Image links replaced successfully!")
	fmt.Fprintf(env.Stdout, "Updated Markdown file saved as: %s\n", f.output)
}

// failureHints picks hints for the kinds of fetch errors seen. Only network
// failures get the retry hint: a rerun cannot fix an unsupported scheme or an
// oversized asset.
func failureHints(result *mdlocal.Result) string {
	var retryable, timedOut, tooLarge, unsupported bool
	for _, ref := range result.References {
		switch {
		case ref.Err == nil:
		case errors.Is(ref.Err, mdlocal.ErrUnsupportedScheme):
			unsupported = true
		case errors.Is(ref.Err, mdlocal.ErrAssetTooLarge):
			tooLarge = true
		default:
			retryable = true
			timedOut = timedOut || errors.Is(ref.Err, context.DeadlineExceeded)
		}
	}

	var out string
	if retryable {
		out += hints.ForFetchFailures()
	}
	if timedOut {
		out += hints.ForTimeout()
	}
	if tooLarge {
		out += hints.ForAssetTooLarge()
	}
	if unsupported {
		out += hints.ForUnsupportedScheme()
	}
	return out
}
