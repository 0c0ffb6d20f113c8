// Package sqlite provides a SQLite-backed match stats store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/outplay/internal/game/match"
	sqlitemigrate "github.com/louisbranch/outplay/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/outplay/internal/services/arcade/storage"
	"github.com/louisbranch/outplay/internal/services/arcade/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists match stats in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite stats store and applies embedded migrations. A
// backing file that cannot be opened or migrated is treated as corrupt:
// it is removed and the store reinitializes with zeroed counters instead
// of failing the caller.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)

	sqlDB, err := open(cleanPath)
	if err != nil {
		log.Printf("stats store at %s unusable, reinitializing: %v", cleanPath, err)
		removeDatabase(cleanPath)
		sqlDB, err = open(cleanPath)
		if err != nil {
			return nil, err
		}
	}
	return &Store{sqlDB: sqlDB}, nil
}

func open(path string) (*sql.DB, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func removeDatabase(path string) {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			log.Printf("remove %s: %v", path+suffix, err)
		}
	}
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Increment adds one finished match to a variant's counters in a single
// upsert, which keeps the read-modify-persist step atomic per call.
func (s *Store) Increment(ctx context.Context, variant string, result match.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return fmt.Errorf("variant is required")
	}

	var playerWins, computerWins, ties int
	switch result {
	case match.ResultPlayer:
		playerWins = 1
	case match.ResultComputer:
		computerWins = 1
	case match.ResultTie:
		ties = 1
	default:
		return fmt.Errorf("unknown match result %d", result)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO match_stats (variant, games, player_wins, computer_wins, ties)
		 VALUES (?, 1, ?, ?, ?)
		 ON CONFLICT(variant) DO UPDATE SET
		   games = games + 1,
		   player_wins = player_wins + excluded.player_wins,
		   computer_wins = computer_wins + excluded.computer_wins,
		   ties = ties + excluded.ties`,
		variant,
		playerWins,
		computerWins,
		ties,
	)
	if err != nil {
		return fmt.Errorf("increment %s stats: %w", variant, err)
	}
	return nil
}

// Summary returns the counters for one variant; a variant that was never
// played yields a zeroed record.
func (s *Store) Summary(ctx context.Context, variant string) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return storage.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Record{}, fmt.Errorf("storage is not configured")
	}

	record := storage.Record{Variant: variant}
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT games, player_wins, computer_wins, ties
		 FROM match_stats WHERE variant = ?`,
		variant,
	).Scan(&record.Games, &record.PlayerWins, &record.ComputerWins, &record.Ties)
	if err == sql.ErrNoRows {
		return record, nil
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("read %s stats: %w", variant, err)
	}
	return record, nil
}

// Variants lists every variant with a stats record, sorted by name.
func (s *Store) Variants(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT variant FROM match_stats ORDER BY variant`)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []string
	for rows.Next() {
		var variant string
		if err := rows.Scan(&variant); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, variant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	return variants, nil
}
