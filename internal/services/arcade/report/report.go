// Package report renders lifetime match statistics for the stats command.
package report

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/outplay/internal/game/rules"
	"github.com/louisbranch/outplay/internal/services/arcade/storage"
)

// builtins always appear in the report, played or not.
var builtins = []string{rules.VariantClassic, rules.VariantExtended, rules.VariantCoin}

// Render writes one line per variant with its lifetime counts. Built-in
// variants always appear; custom variants appear once they have a game on
// record.
func Render(ctx context.Context, store storage.Store, w io.Writer) error {
	listed, err := store.Variants(ctx)
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}

	printer := message.NewPrinter(language.English)
	for _, variant := range mergeVariants(listed) {
		record, err := store.Summary(ctx, variant)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", variant, err)
		}
		if _, err := printer.Fprintf(w, "%s: %d played, you %d, computer %d, ties %d\n",
			variant, record.Games, record.PlayerWins, record.ComputerWins, record.Ties); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// mergeVariants keeps the built-in ordering and appends any recorded
// custom variants after it, preserving the store's sorted order.
func mergeVariants(listed []string) []string {
	merged := make([]string, 0, len(builtins)+len(listed))
	seen := make(map[string]bool, len(builtins))
	for _, v := range builtins {
		merged = append(merged, v)
		seen[v] = true
	}
	for _, v := range listed {
		if !seen[v] {
			merged = append(merged, v)
		}
	}
	return merged
}
