package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/louisbranch/outplay/internal/game/match"
	"github.com/louisbranch/outplay/internal/services/arcade/storage"
)

func TestRenderListsBuiltinsAndCustoms(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Increment(ctx, "classic", match.ResultPlayer); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if err := store.Increment(ctx, "aliens", match.ResultComputer); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	var out bytes.Buffer
	if err := Render(ctx, store, &out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"classic: 1 played, you 1, computer 0, ties 0",
		"extended: 0 played, you 0, computer 0, ties 0",
		"coin: 0 played, you 0, computer 0, ties 0",
		"aliens: 1 played, you 0, computer 1, ties 0",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestRenderEmptyStoreStillShowsBuiltins(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Render(context.Background(), storage.NewMemoryStore(), &out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, variant := range []string{"classic", "extended", "coin"} {
		if !strings.Contains(out.String(), variant+": 0 played") {
			t.Errorf("missing %s line:\n%s", variant, out.String())
		}
	}
}
