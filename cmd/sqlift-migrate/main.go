// sqlift-migrate applies pending schema migrations to a SQLite database.
//
// It reads a YAML config describing the database location and an optional
// directory of NNN_description.sql migration files (the set embedded in the
// binary is used when no directory is configured), brings the database
// schema up to date inside per-migration transactions, and reports the
// resulting schema version. Running it against an up-to-date database is a
// no-op.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaqu/sqlift/internal/infrastructure/config"
	"github.com/kaqu/sqlift/internal/infrastructure/logging"
	"github.com/kaqu/sqlift/migrate"
	"github.com/kaqu/sqlift/migrations"
	"github.com/kaqu/sqlift/sqlite"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM). Migrations themselves
	// are not interruptible mid-transaction; this only gates startup.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for shutdown signals
//
// Returns:
//   - error: nil on success, or error describing failure
func run(ctx context.Context) error {
	log := logging.Default()

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("starting sqlift-migrate",
		"version", version,
		"commit", commit,
		"config", configPath,
	)

	pending, source, err := loadMigrations(cfg.Migrations)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	log.Info("loaded migrations", "count", len(pending), "source", source)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted before applying migrations: %w", err)
	}

	conn, err := migrate.Open(cfg.Database.Path, sqlite.Config{
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
		ForeignKeys: cfg.Database.ForeignKeys,
	}, pending)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	defer conn.Close() //nolint:errcheck // Process exits right after

	current, err := migrate.Version(conn)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	log.Info("database up to date",
		"path", cfg.Database.Path,
		"schema_version", current,
	)
	return nil
}

// loadMigrations resolves the migration set: an on-disk directory when one
// is configured, otherwise the set embedded in the binary.
func loadMigrations(cfg config.MigrationsConfig) ([]migrate.Migration, string, error) {
	if cfg.Dir != "" {
		m, err := migrate.LoadDir(os.DirFS(cfg.Dir), ".")
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", cfg.Dir, err)
		}
		return m, cfg.Dir, nil
	}
	m, err := migrations.Load()
	if err != nil {
		return nil, "", err
	}
	return m, "embedded", nil
}

// getConfigPath resolves the configuration file location: the
// SQLIFT_CONFIG environment variable, or the built-in default.
func getConfigPath() string {
	if path := os.Getenv("SQLIFT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
