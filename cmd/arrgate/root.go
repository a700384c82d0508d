package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrgate/internal/config"
	"github.com/vmunix/arrgate/internal/library"
	"github.com/vmunix/arrgate/internal/upgrade"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "arrgate",
	Short: "Import gate for movie libraries",
	Long: `arrgate - import gate for movie libraries

Decides whether a downloaded movie file should replace what the library
already holds, using quality profiles and custom format scores.`,
	SilenceUsage: true,
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (trace, debug, info, warn, error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("arrgate {{.Version}}\n")
}

// loadConfig loads the config named by --config, or the discovered one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(cmd.ErrOrStderr(), configErr)
			return nil, fmt.Errorf("configuration invalid: %s", path)
		}
		return nil, err
	}
	return cfg, nil
}

// openStore opens the library database, creating its directory if needed.
func openStore(cfg *config.Config) (*library.Store, func(), error) {
	path := cfg.Database.Path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := library.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return library.NewStore(db), func() { _ = db.Close() }, nil
}

// parseLevel maps a configured level name to a slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return upgrade.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// newLogger builds a text logger on w. --log-level takes precedence over the
// configured level.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	name := logLevel
	if name == "" {
		name = cfg.Log.Level
	}
	level, err := parseLevel(name)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && a.Value.Any() == upgrade.LevelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	})), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
