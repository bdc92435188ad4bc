// Package cli builds the cobra commands behind the translized-download and
// translized-upload binaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"translized/src/config"
	"translized/src/logging"
	"translized/src/storage"
	"translized/src/translized"
)

// ErrItemsFailed is returned in strict mode when at least one item failed.
var ErrItemsFailed = errors.New("transfers failed")

// BuildInfo is stamped into the binaries with -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (info BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

type commonFlags struct {
	configPaths []string
	logLevel    string
	logJSON     bool
	strict      bool
}

func (flags *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&flags.configPaths, "config", "c", []string{config.DefaultPath},
		"config file, repeat to merge several in order")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info",
		"minimum log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&flags.logJSON, "log-json", false,
		"output logs as JSON")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"exit with status 1 when any item fails")
}

// setup installs the logger on the command context and loads the config.
func (flags *commonFlags) setup(cmd *cobra.Command, info BuildInfo) (context.Context, *config.Config, error) {
	level, err := logging.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(logging.Config{
		Version: info.Version,
		Out:     cmd.ErrOrStderr(),
		Level:   level,
		JSON:    flags.logJSON,
	})
	ctx := logging.WithLogger(cmd.Context(), logger)

	cfg, err := config.LoadMultiple(flags.configPaths)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger.Debug("config loaded",
		"files", len(flags.configPaths),
		"download_entries", len(cfg.Translized.Download),
		"upload_entries", len(cfg.Translized.Upload),
	)

	return ctx, cfg, nil
}

func newClient(cfg *config.Config) *translized.Client {
	return translized.NewClient(cfg.Translized.APIURL, cfg.Translized.AccessToken, cfg.Settings.Timeout)
}

func newOpener(cfg *config.Config) *storage.Opener {
	header := http.Header{}
	if cfg.Translized.AccessToken != "" {
		header.Set(translized.TokenHeader, cfg.Translized.AccessToken)
	}

	return storage.NewOpener(cfg.Aliases, header, cfg.Settings.Timeout)
}

// reportResults prints the run summary. Failures only become an error in
// strict mode; each one was already logged where it happened.
func reportResults(out io.Writer, noun string, total, failed int, strict bool) error {
	if failed == 0 {
		fmt.Fprintf(out, "All %d %s completed successfully\n", total, noun)

		return nil
	}

	fmt.Fprintf(out, "%d/%d %s failed\n", failed, total, noun)

	if strict {
		return fmt.Errorf("%w: %d/%d %s", ErrItemsFailed, failed, total, noun)
	}

	return nil
}

// Execute runs cmd with args until it finishes or the process is
// interrupted, and returns the exit status.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		return 130
	}

	if err != nil {
		return 1
	}

	return 0
}
