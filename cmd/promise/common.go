package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oukeidos/promise/internal/auth"
	"github.com/oukeidos/promise/internal/cleanup"
	"github.com/oukeidos/promise/internal/config"
	"github.com/oukeidos/promise/internal/fetcher"
	"github.com/oukeidos/promise/internal/gemini"
	"github.com/oukeidos/promise/internal/logger"
	"github.com/oukeidos/promise/internal/prompt"
	"github.com/oukeidos/promise/internal/session"
	"github.com/oukeidos/promise/internal/share"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	isTerminal                        = term.IsTerminal
	getKey                            = auth.GetKey
	getEnvKey                         = auth.GetEnvKey
	hasStoredKey                      = auth.HasStoredKey
	saveKey                           = auth.SaveKey
	deleteKey                         = auth.DeleteKey
	promptForKey                      = auth.PromptForAPIKey
	newQuoteSource                    = defaultQuoteSource
	clipboardTarget session.Clipboard = share.SystemClipboard{}
	confirmer                         = prompt.DefaultConfirmer()
)

type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
	model      string
	allowEnv   bool
	noPrompt   bool
	// quiet keeps log records off the terminal; full-screen commands set it.
	quiet bool

	cfg config.Config
}

func (g *globalOptions) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "Config file (default "+config.DefaultPath+")")
	f.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&g.logFile, "log-file", "", "Append JSON logs to this file")
	f.StringVar(&g.model, "model", "", "Gemini model ID")
	f.BoolVar(&g.allowEnv, "allow-env", true, "Read the API key from GEMINI_API_KEY / API_KEY")
	f.BoolVar(&g.noPrompt, "no-prompt", false, "Never ask for an API key on the terminal")
}

// setup merges the config file with explicitly set flags and starts logging.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	if flags.Changed("model") {
		cfg.Model = strings.TrimSpace(g.model)
	}
	if flags.Changed("allow-env") {
		cfg.AllowEnv = g.allowEnv
	}
	g.cfg = cfg
	var console io.Writer = os.Stderr
	if g.quiet {
		console = nil
	}
	return g.initLogger(console)
}

// initLogger points logging at console plus the optional log file. A nil
// console silences terminal output.
func (g *globalOptions) initLogger(console io.Writer) error {
	level, err := logger.ParseLevel(g.cfg.LogLevel)
	if err != nil {
		return err
	}
	var file io.Writer
	if g.cfg.LogFile != "" {
		f, err := os.OpenFile(g.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		cleanup.Register(f.Close)
		file = f
	}
	if console == nil {
		logger.InitWriter(level, io.Discard, false, file)
		return nil
	}
	color := file == nil && isTerminal(int(os.Stderr.Fd()))
	logger.InitWriter(level, console, color, file)
	return nil
}

// resolveAPIKey finds a key in the keychain, then the environment, then by
// asking. An empty key with a nil error means run on built-in quotes.
func resolveAPIKey(allowEnv, noPrompt bool) (string, auth.Source, error) {
	if key, source := getKey(false); key != "" {
		return key, source, nil
	}
	if allowEnv {
		if key, ok := getEnvKey(); ok {
			return key, auth.SourceEnv, nil
		}
	}
	if noPrompt || !isTerminal(int(os.Stdin.Fd())) {
		return "", auth.SourceNone, nil
	}
	key, err := promptForKey("Gemini API Key (press Enter to use built-in quotes): ")
	if err != nil {
		return "", auth.SourceNone, fmt.Errorf("error reading API key: %w", err)
	}
	if key = strings.TrimSpace(key); key != "" {
		return key, auth.SourcePrompt, nil
	}
	return "", auth.SourceNone, nil
}

// defaultQuoteSource wires a Gemini-backed fetcher, or a generator-less one
// when no key is available.
func defaultQuoteSource(ctx context.Context, g *globalOptions) (session.QuoteSource, error) {
	key, source, err := resolveAPIKey(g.cfg.AllowEnv, g.noPrompt)
	if err != nil {
		return nil, err
	}
	if key == "" {
		logger.Info("No Gemini API key found; using built-in quotes")
		return fetcher.New(nil), nil
	}
	logger.Debug("Using Gemini API key", "source", string(source), "model", g.cfg.Model)

	client, err := gemini.NewClient(ctx, key, g.cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	client.SetTimeout(g.cfg.RequestTimeout)
	cleanup.Register(client.Close)
	return fetcher.New(client), nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
