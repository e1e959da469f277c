package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/textcrawl/internal/app"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailed      = 1
	exitUsage       = 2
	exitNoText      = 3
	exitInterrupted = 130
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

type options struct {
	configPath  string
	envFile     string
	output      string
	pdf         string
	pdfFont     string
	width       int
	userAgent   string
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
	mode        string
	selector    string
	verbose     bool
}

func newRootCmd(ctx context.Context, out io.Writer) *cobra.Command {
	var opts options
	defaults := app.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "textcrawl [url]",
		Short: "Fetch a web page and save its cleaned text wrapped to a fixed width",
		Long: `textcrawl fetches one page with a browser-like client and retries on
transient failures, strips the markup, removes bracketed asides, collapses
whitespace and writes the text hard-wrapped to a file.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", app.ErrInvalidConfig, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return run(ctx, cfg)
		},
	}
	cmd.SetOut(out)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", app.ErrInvalidConfig, err)
	})

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file")
	f.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file with TEXTCRAWL_* variables (skipped if missing)")
	f.StringVarP(&opts.output, "output", "o", defaults.OutputPath, "Path of the wrapped text file")
	f.StringVar(&opts.pdf, "pdf", "", "Optional path of a PDF rendering of the wrapped text (cp1252 only unless --pdf-font is set)")
	f.StringVar(&opts.pdfFont, "pdf-font", "", "UTF-8 TrueType font to embed in the PDF, e.g. a Hangul-capable TTF")
	f.IntVarP(&opts.width, "width", "w", defaults.Width, "Line width in characters")
	f.StringVar(&opts.userAgent, "user-agent", defaults.UserAgent, "User-Agent header sent with the request")
	f.DurationVar(&opts.timeout, "timeout", defaults.Timeout, "Per-attempt request timeout")
	f.IntVar(&opts.maxAttempts, "max-attempts", defaults.MaxAttempts, "Attempts including the first one")
	f.DurationVar(&opts.backoff, "backoff", defaults.Backoff, "Delay before the first retry; doubles after each failure")
	f.StringVar(&opts.mode, "mode", defaults.Mode, "Extraction mode: full or content")
	f.StringVar(&opts.selector, "selector", "", "CSS selector restricting extraction (overrides --mode)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textcrawl %s (commit %s, built %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		},
	})
	return cmd
}

// buildConfig layers defaults, config file, env and explicitly set flags, in
// that order. A positional URL beats every other source.
func buildConfig(cmd *cobra.Command, opts options, args []string) (app.Config, error) {
	cfg := app.DefaultConfig()
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("%w: %v", app.ErrInvalidConfig, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if err := app.LoadEnvFiles(opts.envFile); err != nil {
		return cfg, fmt.Errorf("%w: %v", app.ErrInvalidConfig, err)
	}
	app.ApplyEnvToConfig(&cfg)

	f := cmd.Flags()
	if f.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if f.Changed("pdf") {
		cfg.OutputPDFPath = opts.pdf
	}
	if f.Changed("pdf-font") {
		cfg.PDFFontPath = opts.pdfFont
	}
	if f.Changed("width") {
		cfg.Width = opts.width
	}
	if f.Changed("user-agent") {
		cfg.UserAgent = opts.userAgent
	}
	if f.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if f.Changed("max-attempts") {
		cfg.MaxAttempts = opts.maxAttempts
	}
	if f.Changed("backoff") {
		cfg.Backoff = opts.backoff
	}
	if f.Changed("mode") {
		cfg.Mode = opts.mode
	}
	if f.Changed("selector") {
		cfg.Selector = opts.selector
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	if len(args) == 1 {
		cfg.URL = args[0]
	}
	return cfg, nil
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(cfg, log.Logger)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// execute runs the CLI and maps the outcome to an exit code. Expected
// failures are logged once here; panics are left to crash with a trace.
func execute(ctx context.Context, args []string, out io.Writer) int {
	cmd := newRootCmd(ctx, out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	var se *app.ScrapingError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		log.Warn().Msg("interrupted; nothing written")
		return exitInterrupted
	case errors.As(err, &se):
		log.Error().Err(se.Err).Str("stage", string(se.Stage)).Str("url", se.URL).Msg("scraping failed")
		return exitFailed
	case errors.Is(err, app.ErrNoText):
		log.Error().Err(err).Msg("scraping produced no text")
		return exitNoText
	case errors.Is(err, app.ErrInvalidConfig):
		log.Error().Err(err).Msg("invalid configuration")
		return exitUsage
	default:
		log.Error().Err(err).Msg("run failed")
		return exitFailed
	}
}
