package main

// Notes:
// - runMain: exit codes and output for each command; localization runs use a
//   stub fetcher injected through Environment, never the network.
// - main() itself is not tested: it only wires maxprocs and os.Exit.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	mdlocal "github.com/alnah/go-mdlocal"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Stub fetcher and environment
// ---------------------------------------------------------------------------

// stubFetcher returns fixed bytes, or err for every URL when set.
type stubFetcher struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, rawURL)
	if s.err != nil {
		return nil, s.err
	}
	return []byte("img:" + rawURL), nil
}

func (s *stubFetcher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testEnv(fetcher mdlocal.Fetcher) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Fetcher: fetcher,
	}, &stdout, &stderr
}

func writeDoc(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Commands and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"mdlocal"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: mdlocal"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"mdlocal", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"go-mdlocal " + Version},
		},
		{
			name:         "help command exits 0",
			args:         []string{"mdlocal", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdlocal", "Commands:"},
		},
		{
			name:         "help config shows config help",
			args:         []string{"mdlocal", "help", "config"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdlocal config"},
		},
		{
			name:         "help unknown topic exits with ExitUsage",
			args:         []string{"mdlocal", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: nope"},
		},
		{
			name:         "long help flag exits 0",
			args:         []string{"mdlocal", "--help"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"--media-dir", "--refetch"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"mdlocal", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"mdlocal", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag: --bogus"},
		},
		{
			name:         "missing input exits with ExitUsage",
			args:         []string{"mdlocal", "-o", "out.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"-i/--input"},
		},
		{
			name:         "missing output exits with ExitUsage",
			args:         []string{"mdlocal", "-i", "in.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"-o/--output"},
		},
		{
			name:         "positional argument exits with ExitUsage",
			args:         []string{"mdlocal", "-i", "in.md", "-o", "out.md", "extra.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unexpected arguments"},
		},
		{
			name:         "unsupported shell exits with ExitUsage",
			args:         []string{"mdlocal", "completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "completion without shell prints usage",
			args:         []string{"mdlocal", "completion"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdlocal completion <shell>"},
		},
		{
			name:         "nonexistent input exits with ExitIO",
			args:         []string{"mdlocal", "-i", "/nonexistent/notes.md", "-o", "/nonexistent/out.md"},
			wantCode:     ExitIO,
			wantInStderr: []string{"input file not found", "hint:"},
		},
		{
			name:         "missing config name exits with ExitUsage",
			args:         []string{"mdlocal", "config", "-c", "/nonexistent/cfg.yaml"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(&stubFetcher{})
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Localize - End-to-end rewrite through the CLI
// ---------------------------------------------------------------------------

func TestRunMain_Localize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeDoc(t, dir, "# Trip\n\n![beach](https://example.com/beach.jpg)\n")
	output := filepath.Join(dir, "out", "notes.md")
	media := filepath.Join(dir, "media")

	fetcher := &stubFetcher{}
	env, stdout, stderr := testEnv(fetcher)

	code := runMain([]string{"mdlocal", "-i", input, "-o", output, "-m", media}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}

	wantOut := "Image links replaced successfully!\nUpdated Markdown file saved as: " + output + "\n"
	if !strings.HasSuffix(stdout.String(), wantOut) {
		t.Errorf("stdout = %q, want suffix %q", stdout.String(), wantOut)
	}
	if !strings.Contains(stdout.String(), "Downloading: https://example.com/beach.jpg") {
		t.Errorf("stdout should show download progress, got %q", stdout.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	name := mdlocal.DeriveFilename("https://example.com/beach.jpg")
	if !strings.Contains(string(data), filepath.ToSlash(filepath.Join(media, name))) {
		t.Errorf("output = %q, want link to %s", data, name)
	}
	if _, err := os.Stat(filepath.Join(media, name)); err != nil {
		t.Errorf("asset missing: %v", err)
	}
	if fetcher.count() != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.count())
	}
}

func TestRunMain_OutputExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeDoc(t, dir, "![a](https://example.com/a.png)")
	output := filepath.Join(dir, "out.md")
	media := filepath.Join(dir, "media")
	if err := os.WriteFile(output, []byte("keep me"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	env, _, stderr := testEnv(&stubFetcher{})
	code := runMain([]string{"mdlocal", "-i", input, "-o", output, "-m", media}, env)

	if code != ExitIO {
		t.Errorf("runMain() = %d, want ExitIO", code)
	}
	if !strings.Contains(stderr.String(), "-f/--force") {
		t.Errorf("stderr should hint at --force, got %q", stderr.String())
	}
	if data, _ := os.ReadFile(output); string(data) != "keep me" {
		t.Errorf("output overwritten: %q", data)
	}
	if _, err := os.Stat(media); !os.IsNotExist(err) {
		t.Errorf("media directory should not exist: %v", err)
	}

	env, _, stderr = testEnv(&stubFetcher{})
	code = runMain([]string{"mdlocal", "-i", input, "-o", output, "-m", media, "--force"}, env)
	if code != ExitSuccess {
		t.Errorf("runMain(--force) = %d, stderr: %s", code, stderr.String())
	}
}

func TestRunMain_QuietAndVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flag       string
		wantStdout []string
		wantEmpty  bool
	}{
		{name: "quiet prints nothing", flag: "-q", wantEmpty: true},
		{name: "verbose prints summary", flag: "-v", wantStdout: []string{"fetched", "1 fetched, 0 cached, 0 failed, 1 skipped"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := writeDoc(t, dir, "![a](https://example.com/a.png) ![b](https://example.com/b.pdf)")
			env, stdout, stderr := testEnv(&stubFetcher{})

			code := runMain([]string{"mdlocal", "-i", input, "-o", filepath.Join(dir, "out.md"),
				"-m", filepath.Join(dir, "media"), tt.flag}, env)
			if code != ExitSuccess {
				t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
			}

			if tt.wantEmpty && stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
		})
	}
}

func TestRunMain_FetchFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := "![a](https://example.com/a.png)"
	input := writeDoc(t, dir, doc)
	output := filepath.Join(dir, "out.md")

	fetchErr := errors.Join(mdlocal.ErrFetch, context.DeadlineExceeded)
	env, _, stderr := testEnv(&stubFetcher{err: fetchErr})

	code := runMain([]string{"mdlocal", "-i", input, "-o", output, "-m", filepath.Join(dir, "media")}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}

	if data, _ := os.ReadFile(output); string(data) != doc {
		t.Errorf("output = %q, want unchanged %q", data, doc)
	}
	for _, want := range []string{"Warning:", "1 image reference(s) left remote", "--timeout"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr should contain %q, got %q", want, stderr.String())
		}
	}
}

func TestRunMain_ConfigCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(cfgPath, []byte("media:\n  dir: pics\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	env, stdout, stderr := testEnv(nil)
	code := runMain([]string{"mdlocal", "config", "-c", cfgPath}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}

	for _, want := range []string{"media:", "dir: pics", "userAgent: go-mdlocal", "extensions:"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout should contain %q, got:\n%s", want, stdout.String())
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"version", true},
		{"help", true},
		{"completion", true},
		{"config", true},
		{"foo", false},
		{"", false},
		{"notes.md", false},
		{"-i", false},
		{"VERSION", false},
	}

	for _, tt := range tests {
		tt := tt
		if got := isCommand(tt.input); got != tt.want {
			t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-i", "a.md", "-v"}, true},
		{[]string{"--verbose"}, true},
		{[]string{"-i", "a.md"}, false},
		{[]string{"--", "-v"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		tt := tt
		if got := wantsVerbose(tt.args); got != tt.want {
			t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
