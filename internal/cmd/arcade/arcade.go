// Package arcade parses arcade command flags and starts a match.
package arcade

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/outplay/internal/platform/cmd"
	"github.com/louisbranch/outplay/internal/services/arcade/app"
)

// Config holds arcade command configuration.
type Config struct {
	Variant   string        `env:"OUTPLAY_VARIANT" envDefault:"classic"`
	RulesFile string        `env:"OUTPLAY_RULES_FILE"`
	BestOf    int           `env:"OUTPLAY_BEST_OF" envDefault:"3"`
	Level     int           `env:"OUTPLAY_LEVEL" envDefault:"2"`
	Timeout   time.Duration `env:"OUTPLAY_TIMEOUT" envDefault:"10s"`
	Seed      int64         `env:"OUTPLAY_SEED"`
	DBPath    string        `env:"OUTPLAY_DB_PATH" envDefault:"data/outplay.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant, "Rule set to play (classic, extended, coin)")
	fs.StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "Lua script defining a custom rule set (overrides -variant)")
	fs.IntVar(&cfg.BestOf, "best-of", cfg.BestOf, "Rounds needed to decide the match (odd)")
	fs.IntVar(&cfg.Level, "level", cfg.Level, "Opponent level: 0 random, 1 frequency, 2 markov")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-round decision deadline")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 draws a fresh one)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Stats database path (empty keeps stats in memory)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays one match with the configured rule set and opponent.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceArcade, func(ctx context.Context) error {
		return app.Run(ctx, app.Options{
			Variant:   cfg.Variant,
			RulesFile: cfg.RulesFile,
			BestOf:    cfg.BestOf,
			Level:     cfg.Level,
			Timeout:   cfg.Timeout,
			Seed:      cfg.Seed,
			DBPath:    cfg.DBPath,
		})
	})
}
