package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/adamwoolhether/sciebo/share"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]string{"https://example.com/s/abc", "out.bin"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := Config{
		URL:       "https://example.com/s/abc",
		Out:       "out.bin",
		UserAgent: "sciebo-go/1.0",
		Burst:     1,
	}
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if cfg.Kind() != share.File {
		t.Errorf("default kind should be file, got %v", cfg.Kind())
	}
}

func TestParse_Precedence(t *testing.T) {
	path := writeFile(t, "sciebo.yaml", `
url: https://example.com/s/from-file
out: from-file.bin
timeout: 30s
user_agent: file-agent
rps: 2
bandwidth: 1024
`)

	t.Setenv("SCIEBO_USER_AGENT", "env-agent")
	t.Setenv("SCIEBO_RPS", "3")

	cfg, err := Parse([]string{"--config", path, "--rps", "4", "--folder"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := Config{
		URL:       "https://example.com/s/from-file",
		Out:       "from-file.bin",
		Folder:    true,
		Timeout:   30 * time.Second,
		UserAgent: "env-agent",
		RPS:       4,
		Burst:     1,
		Bandwidth: 1024,
	}
	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(share.Request{URL: exp.URL, Destination: exp.Out, Kind: share.Folder}, cfg.Request()); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PositionalOverridesFile(t *testing.T) {
	path := writeFile(t, "sciebo.json", `{"url": "https://example.com/s/file", "out": "file.bin"}`)

	cfg, err := Parse([]string{"-c", path, "https://example.com/s/arg", "arg.bin"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.URL != "https://example.com/s/arg" || cfg.Out != "arg.bin" {
		t.Errorf("positional args should win, got %q %q", cfg.URL, cfg.Out)
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		expErr error
	}{
		{name: "help", args: []string{"--help"}, expErr: pflag.ErrHelp},
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "too many args", args: []string{"a", "b", "c"}},
		{name: "missing config file", args: []string{"--config", filepath.Join(os.TempDir(), "does-not-exist", "c.yaml")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args, io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.expErr != nil && !errors.Is(err, tc.expErr) {
				t.Errorf("expected %v, got %v", tc.expErr, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		expErr bool
	}{
		{name: "ok", cfg: Config{URL: "u", Out: "o"}},
		{name: "no url", cfg: Config{Out: "o"}, expErr: true},
		{name: "no out", cfg: Config{URL: "u"}, expErr: true},
		{name: "negative timeout", cfg: Config{URL: "u", Out: "o", Timeout: -time.Second}, expErr: true},
		{name: "negative rps", cfg: Config{URL: "u", Out: "o", RPS: -1}, expErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if got := err != nil; got != tc.expErr {
				t.Errorf("Validate() = %v, want error %v", err, tc.expErr)
			}
		})
	}

	if err := (Config{}).Validate(); !errors.Is(err, ErrMissingArgs) {
		t.Errorf("expected ErrMissingArgs, got %v", err)
	}
}
