package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kndndrj/go-arango/arango"
	"github.com/kndndrj/go-arango/config"
	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/core/format"
	"github.com/kndndrj/go-arango/history"
	"github.com/kndndrj/go-arango/logging"
)

var (
	configPath   string
	urlFlag      string
	databaseFlag string
	outputFormat string
	logLevel     string
)

// errSilent marks failures that were already reported to the user.
var errSilent = errors.New("")

var rootCmd = &cobra.Command{
	Use:           "arangoq",
	Short:         "Run AQL queries against an ArangoDB server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", os.Getenv("ARANGOQ_CONFIG"), "Path to a TOML config file")
	flags.StringVar(&urlFlag, "url", "", "Server URL, overrides the config")
	flags.StringVarP(&databaseFlag, "database", "d", "", "Database name, overrides the config")
	flags.StringVarP(&outputFormat, "format", "f", "table", "Output format: table, json or csv")
	flags.StringVar(&logLevel, "log-level", "", "Log level, overrides the config")

	rootCmd.AddCommand(queryCmd, validateCmd, collectionsCmd, historyCmd)
}

// env is what every command needs: configuration, a logger and the output.
type env struct {
	cfg       *config.Config
	log       logging.Logger
	formatter core.Formatter
	out       io.Writer
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if urlFlag != "" {
		cfg.Connection.URL = urlFlag
	}
	if databaseFlag != "" {
		cfg.Connection.Database = databaseFlag
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	formatter, err := format.ByName(outputFormat)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:       cfg,
		log:       logging.NewZerolog(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.JSON),
		formatter: formatter,
		out:       cmd.OutOrStdout(),
	}, nil
}

func (e *env) openDatabase() (*arango.Database, error) {
	db, err := arango.Open(e.cfg.ConnectionParams(), arango.WithLogger(e.log))
	if err != nil {
		return nil, fmt.Errorf("arango.Open: %w", err)
	}
	return db, nil
}

// openHistory returns nil when history is disabled.
func (e *env) openHistory() (*history.Store, error) {
	if e.cfg.History.Disabled {
		return nil, nil
	}

	store, err := history.Open(e.cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history.Open: %w", err)
	}
	return store, nil
}

// fail logs err and hides it from the default error printer.
func (e *env) fail(err error) error {
	e.log.Error(err.Error())
	return fmt.Errorf("%w%w", errSilent, err)
}
