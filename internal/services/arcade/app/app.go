// Package app assembles the arcade runtime: rule graph, opponent
// predictor, match engine, console session, and the stats store.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/outplay/internal/game/match"
	"github.com/louisbranch/outplay/internal/game/predict"
	"github.com/louisbranch/outplay/internal/game/rules"
	"github.com/louisbranch/outplay/internal/random"
	"github.com/louisbranch/outplay/internal/services/arcade/console"
	"github.com/louisbranch/outplay/internal/services/arcade/storage"
	storagesqlite "github.com/louisbranch/outplay/internal/services/arcade/storage/sqlite"
)

// Options configures one arcade run.
type Options struct {
	// Variant selects a built-in rule set. Ignored when RulesFile is set.
	Variant string
	// RulesFile points at a Lua script defining a custom rule set.
	RulesFile string
	BestOf    int
	// Level selects the opponent predictor.
	Level int
	// Timeout is the per-round decision deadline.
	Timeout time.Duration
	// Seed seeds the match RNG; zero draws a fresh seed.
	Seed int64
	// DBPath locates the stats database. Empty keeps stats in memory only.
	DBPath string

	// Input and Output default to stdin and stdout.
	Input  io.Reader
	Output io.Writer
}

// Run plays one match to completion and reports the updated lifetime
// record for its variant.
func Run(ctx context.Context, opts Options) error {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	store := openStore(opts.DBPath)
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close stats store: %v", err)
		}
	}()

	graph, judge, strategy, trackHistory, err := buildVariant(opts)
	if err != nil {
		return err
	}

	rng, seed, err := random.NewSeededRNG(opts.Seed)
	if err != nil {
		return fmt.Errorf("seed rng: %w", err)
	}
	log.Printf("match seed: %d", seed)

	ctx, span := otel.Tracer("arcade").Start(ctx, "arcade.match",
		trace.WithAttributes(
			attribute.String("match.variant", graph.Name()),
			attribute.Int("match.best_of", opts.BestOf),
			attribute.Int("match.level", opts.Level),
		))
	defer span.End()

	presenter := console.NewPresenter(out)
	engine, err := match.New(match.Config{
		Graph:        graph,
		Strategy:     strategy,
		Judge:        judge,
		TrackHistory: trackHistory,
		BestOf:       opts.BestOf,
		Timeout:      opts.Timeout,
		RNG:          rng,
		Presenter:    presenter,
		Stats:        store,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Best of %d on %s. First to %d wins takes the match.\n",
		opts.BestOf, graph.Name(), engine.RequiredWins())

	if err := console.Run(ctx, in, presenter, engine); err != nil {
		return err
	}

	record, err := store.Summary(ctx, engine.Variant())
	if err != nil {
		log.Printf("read %s summary: %v", engine.Variant(), err)
		return nil
	}
	fmt.Fprintf(out, "\nLifetime on %s: %d played, you %d, computer %d, ties %d.\n",
		record.Variant, record.Games, record.PlayerWins, record.ComputerWins, record.Ties)
	return nil
}

// openStore opens the SQLite stats store, falling back to an in-memory
// store when the path is empty or the database cannot be opened. A match
// should never be blocked by stats plumbing.
func openStore(path string) storage.Store {
	if path == "" {
		return storage.NewMemoryStore()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("create stats dir %s: %v; keeping stats in memory", dir, err)
			return storage.NewMemoryStore()
		}
	}
	store, err := storagesqlite.Open(path)
	if err != nil {
		log.Printf("open stats db %s: %v; keeping stats in memory", path, err)
		return storage.NewMemoryStore()
	}
	return store
}

func buildVariant(opts Options) (*rules.Graph, match.Judge, predict.Strategy, bool, error) {
	if opts.RulesFile != "" {
		graph, err := rules.LoadVariantFile(opts.RulesFile)
		if err != nil {
			return nil, nil, nil, false, fmt.Errorf("load rules file: %w", err)
		}
		strategy, err := predict.ForLevel(opts.Level)
		if err != nil {
			return nil, nil, nil, false, err
		}
		return graph, nil, strategy, true, nil
	}

	switch opts.Variant {
	case rules.VariantClassic, "":
		strategy, err := predict.ForLevel(opts.Level)
		if err != nil {
			return nil, nil, nil, false, err
		}
		return rules.Classic(), nil, strategy, true, nil
	case rules.VariantExtended:
		strategy, err := predict.ForLevel(opts.Level)
		if err != nil {
			return nil, nil, nil, false, err
		}
		return rules.Extended(), nil, strategy, true, nil
	case rules.VariantCoin:
		return rules.Coin(), match.CoinJudge, predict.Random{}, false, nil
	default:
		return nil, nil, nil, false, fmt.Errorf("unknown variant %q (choose %s, %s, or %s)",
			opts.Variant, rules.VariantClassic, rules.VariantExtended, rules.VariantCoin)
	}
}
