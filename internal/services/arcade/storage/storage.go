// Package storage defines the persistence contract for arcade match stats.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/outplay/internal/game/match"
)

// Record holds the durable counters for one game variant.
type Record struct {
	Variant      string
	Games        int
	PlayerWins   int
	ComputerWins int
	Ties         int
}

// Store persists per-variant match counters. Increment is atomic per call:
// each call reads, modifies, and persists in one step. Summary returns a
// zeroed record for a variant that has never been played.
type Store interface {
	Increment(ctx context.Context, variant string, result match.Result) error
	Summary(ctx context.Context, variant string) (Record, error)
	Variants(ctx context.Context) ([]string, error)
	Close() error
}

// MemoryStore keeps counters in memory. It backs tests and serves as the
// last-resort fallback when the durable store cannot be opened; counters
// start zeroed and vanish with the process.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Increment implements Store.
func (s *MemoryStore) Increment(ctx context.Context, variant string, result match.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.records[variant]
	record.Variant = variant
	record.Games++
	switch result {
	case match.ResultPlayer:
		record.PlayerWins++
	case match.ResultComputer:
		record.ComputerWins++
	case match.ResultTie:
		record.Ties++
	}
	s.records[variant] = record
	return nil
}

// Summary implements Store.
func (s *MemoryStore) Summary(ctx context.Context, variant string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[variant]
	if !ok {
		return Record{Variant: variant}, nil
	}
	return record, nil
}

// Variants implements Store.
func (s *MemoryStore) Variants(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	variants := make([]string, 0, len(s.records))
	for variant := range s.records {
		variants = append(variants, variant)
	}
	sort.Strings(variants)
	return variants, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
