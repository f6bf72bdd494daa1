// Command tablemodel runs create, read, update, delete and copy operations on a
// table from the command line. Arguments and results are JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/dialects/mysql"
	"github.com/go-dbal/tablemodel/dialects/postgres"
	"github.com/go-dbal/tablemodel/dialects/sqlite"
	"github.com/go-dbal/tablemodel/internal/config"
	"github.com/go-dbal/tablemodel/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tablemodel: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are accepted before the command name and override the config file and environment
type globalFlags struct {
	configPath string
	dialect    string
	dsn        string
	logLevel   string
	backend    string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var gf globalFlags

	fs := flag.NewFlagSet("tablemodel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&gf.configPath, "config", "", "Path to configuration file (YAML or JSON)")
	fs.StringVar(&gf.dialect, "dialect", "", "Database dialect: sqlite, mysql or postgres")
	fs.StringVar(&gf.dsn, "dsn", "", "Data source name passed to the driver")
	fs.StringVar(&gf.logLevel, "log-level", "", "Statement log level: silent, error, warn or info")
	fs.StringVar(&gf.backend, "logger", "", "Logger backend: std, logrus, zap, zerolog or slog")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tablemodel [options] <command> -table <name> [command options]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		for _, cmd := range commands {
			fmt.Fprintf(stderr, "  %-8s %s\n", cmd.name, cmd.usage)
		}
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment variables (override config file, overridden by flags):\n")
		fmt.Fprintf(stderr, "  TABLEMODEL_DIALECT, TABLEMODEL_DSN, TABLEMODEL_LOGGER, TABLEMODEL_LOG_LEVEL,\n")
		fmt.Fprintf(stderr, "  TABLEMODEL_SLOW_THRESHOLD, TABLEMODEL_BLOCK_GLOBAL_UPDATE, TABLEMODEL_CACHE_SIZE, TABLEMODEL_PREPARE_STMT, ...\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}

	cmd, ok := lookupCommand(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	opts, err := cmd.parse(fs.Args()[1:], stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(gf)
	if err != nil {
		return err
	}

	db, err := openDB(cfg, stderr)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", cfg.Dialect, err)
	}
	defer db.Close()

	model, err := db.Model(ctx, opts.table)
	if err != nil {
		return err
	}

	return cmd.run(ctx, model, opts, &output{stdout: stdout, stderr: stderr})
}

// loadConfig applies the config file or defaults, then the environment, then flags
func loadConfig(gf globalFlags) (*config.Config, error) {
	var cfg *config.Config
	if gf.configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(gf.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if err := config.LoadFromEnv(cfg); err != nil {
		return nil, err
	}

	if gf.dialect != "" {
		cfg.Dialect = gf.dialect
	}
	if gf.dsn != "" {
		cfg.DSN = gf.dsn
	}
	if gf.logLevel != "" {
		cfg.Logger.Level = gf.logLevel
	}
	if gf.backend != "" {
		cfg.Logger.Backend = gf.backend
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openDB(cfg *config.Config, stderr io.Writer) (*tablemodel.DB, error) {
	statementLogger, err := newLogger(cfg, stderr)
	if err != nil {
		return nil, err
	}

	return tablemodel.Open(newDialector(cfg), &tablemodel.Config{
		Logger:            statementLogger,
		BlockGlobalUpdate: cfg.Model.BlockGlobalUpdate,
		TranslateError:    cfg.Model.TranslateError,
		ModelCacheSize:    cfg.Model.CacheSize,
		ModelCacheTTL:     cfg.Model.CacheTTL,
		PrepareStmt:       cfg.Model.PrepareStmt,
	})
}

func newDialector(cfg *config.Config) tablemodel.Dialector {
	switch cfg.Dialect {
	case "mysql":
		return mysql.Open(cfg.DSN)
	case "postgres":
		return postgres.New(postgres.Config{DSN: cfg.DSN, WithoutReturning: cfg.Postgres.WithoutReturning})
	default:
		return sqlite.Open(cfg.DSN)
	}
}

// newLogger builds the configured backend, all of them write to stderr so stdout stays JSON
func newLogger(cfg *config.Config, stderr io.Writer) (logger.Interface, error) {
	loggerConfig := cfg.LoggerConfig()

	switch cfg.Logger.Backend {
	case "logrus":
		l := logrus.New()
		l.SetOutput(stderr)
		return logger.NewLogrusLogger(l, loggerConfig), nil
	case "zap":
		return logger.NewZapLoggerWithConfig(loggerConfig)
	case "zerolog":
		return logger.NewZerologConsoleLogger(stderr, loggerConfig), nil
	case "slog":
		return logger.NewSlogLogger(slog.New(slog.NewTextHandler(stderr, nil)), loggerConfig), nil
	default:
		return logger.New(log.New(stderr, "\r\n", log.LstdFlags), loggerConfig), nil
	}
}
