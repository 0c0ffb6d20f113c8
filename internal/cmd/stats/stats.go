// Package stats parses stats command flags and prints lifetime records.
package stats

import (
	"context"
	"flag"
	"fmt"
	"os"

	entrypoint "github.com/louisbranch/outplay/internal/platform/cmd"
	"github.com/louisbranch/outplay/internal/services/arcade/report"
	storagesqlite "github.com/louisbranch/outplay/internal/services/arcade/storage/sqlite"
)

// Config holds stats command configuration.
type Config struct {
	DBPath string `env:"OUTPLAY_DB_PATH" envDefault:"data/outplay.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Stats database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run prints the lifetime record for every variant on file.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStats, func(ctx context.Context) error {
		store, err := storagesqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open stats db %s: %w", cfg.DBPath, err)
		}
		defer store.Close()

		return report.Render(ctx, store, os.Stdout)
	})
}
