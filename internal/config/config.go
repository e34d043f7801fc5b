package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"

	"github.com/adamwoolhether/sciebo/share"
)

// EnvPrefix prefixes environment variables read into Config.
const EnvPrefix = "SCIEBO"

// ErrMissingArgs is returned by Validate when the share URL or the
// destination is not set.
var ErrMissingArgs = errors.New("share url and destination are required")

// Config holds the settings of a single download run.
type Config struct {
	URL       string        `fig:"url"`
	Out       string        `fig:"out"`
	Folder    bool          `fig:"folder"`
	Timeout   time.Duration `fig:"timeout"`
	UserAgent string        `fig:"user_agent" default:"sciebo-go/1.0"`
	RPS       int           `fig:"rps"`
	Burst     int           `fig:"burst" default:"1"`
	Bandwidth int           `fig:"bandwidth"`
	Quiet     bool          `fig:"quiet"`
	Verbose   bool          `fig:"verbose"`
}

// Kind returns the share kind selected by the folder setting.
func (c Config) Kind() share.Kind {
	return share.KindOf(!c.Folder)
}

// Request returns the download described by c.
func (c Config) Request() share.Request {
	return share.Request{URL: c.URL, Destination: c.Out, Kind: c.Kind()}
}

// Validate reports settings that make a run impossible.
func (c Config) Validate() error {
	if c.URL == "" || c.Out == "" {
		return ErrMissingArgs
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.RPS < 0 || c.Burst < 0 || c.Bandwidth < 0 {
		return errors.New("rps, burst and bandwidth must not be negative")
	}
	return nil
}

// Parse resolves the configuration from file, environment and args.
// Usage and flag errors are written to output. A help request returns
// pflag.ErrHelp.
func Parse(args []string, output io.Writer) (Config, error) {
	fs := pflag.NewFlagSet("sciebo", pflag.ContinueOnError)
	fs.SetOutput(output)

	var flags Config
	configPath := fs.StringP("config", "c", "", "config file (yaml, json or toml)")
	fs.StringVarP(&flags.Out, "out", "o", "", "destination path")
	fs.BoolVarP(&flags.Folder, "folder", "f", false, "the link points at a folder")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "overall download timeout (0 disables)")
	fs.StringVar(&flags.UserAgent, "user-agent", "", "User-Agent header")
	fs.IntVar(&flags.RPS, "rps", 0, "max share requests per second (0 disables)")
	fs.IntVar(&flags.Burst, "burst", 0, "request burst when --rps is set")
	fs.IntVar(&flags.Bandwidth, "bandwidth", 0, "max bytes per second (0 disables)")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "no progress bar, warnings and errors only")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "debug logging")

	fs.Usage = func() {
		fmt.Fprintln(output, `Usage: sciebo [options] <share-url> [destination]

Download a file or folder from a public share link.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := load(&cfg, *configPath); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	overrides := map[string]func(){
		"out":        func() { cfg.Out = flags.Out },
		"folder":     func() { cfg.Folder = flags.Folder },
		"timeout":    func() { cfg.Timeout = flags.Timeout },
		"user-agent": func() { cfg.UserAgent = flags.UserAgent },
		"rps":        func() { cfg.RPS = flags.RPS },
		"burst":      func() { cfg.Burst = flags.Burst },
		"bandwidth":  func() { cfg.Bandwidth = flags.Bandwidth },
		"quiet":      func() { cfg.Quiet = flags.Quiet },
		"verbose":    func() { cfg.Verbose = flags.Verbose },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	switch pos := fs.Args(); len(pos) {
	case 0:
	case 1:
		cfg.URL = pos[0]
	case 2:
		cfg.URL, cfg.Out = pos[0], pos[1]
	default:
		return Config{}, fmt.Errorf("expected at most 2 arguments, got %d", len(pos))
	}

	return cfg, nil
}

// load fills cfg from the file at path, if any, and the environment.
func load(cfg *Config, path string) error {
	if path == "" {
		return fig.Load(cfg, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}

	return fig.Load(cfg,
		fig.File(filepath.Base(path)),
		fig.Dirs(filepath.Dir(path)),
		fig.UseEnv(EnvPrefix),
	)
}
