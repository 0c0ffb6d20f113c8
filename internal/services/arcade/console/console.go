// Package console implements the arcade display and input boundary on a
// terminal: it renders round state to a writer and feeds move codes read
// from a line-based reader into the match engine.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/outplay/internal/game/match"
	"github.com/louisbranch/outplay/internal/game/rules"
)

// Presenter renders match events to a writer. Writes are serialized so
// timer ticks from the deadline goroutine interleave cleanly with round
// output.
type Presenter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPresenter creates a presenter writing to w.
func NewPresenter(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

// PresentMoveChoices implements match.Presenter.
func (p *Presenter) PresentMoveChoices(variant string, moves []rules.Move) {
	p.mu.Lock()
	defer p.mu.Unlock()

	labels := make([]string, 0, len(moves))
	for _, m := range moves {
		labels = append(labels, fmt.Sprintf("[%s] %s", m.Code, m.Name))
	}
	fmt.Fprintf(p.w, "\nYour move (%s): %s\n", variant, strings.Join(labels, "  "))
}

// PresentTimerTick implements match.Presenter.
func (p *Presenter) PresentTimerTick(remaining time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "  %ds left\n", int(remaining.Round(time.Second).Seconds()))
}

// PresentRoundOutcome implements match.Presenter.
func (p *Presenter) PresentRoundOutcome(outcome match.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if outcome.TimedOut {
		fmt.Fprintf(p.w, "Round %d: time's up! Computer played %s; the round goes to the computer.\n",
			outcome.Round, outcome.ComputerMove.Name)
		return
	}

	verdict := "it's a tie"
	switch outcome.Result {
	case match.ResultPlayer:
		verdict = "you win this round"
	case match.ResultComputer:
		verdict = "the computer wins this round"
	}
	fmt.Fprintf(p.w, "Round %d: you played %s, computer played %s: %s.\n",
		outcome.Round, outcome.PlayerMove.Name, outcome.ComputerMove.Name, verdict)
}

// PresentMatchResult implements match.Presenter.
func (p *Presenter) PresentMatchResult(result match.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if result == match.ResultPlayer {
		fmt.Fprintln(p.w, "\nYou are the champion!")
		return
	}
	fmt.Fprintln(p.w, "\nThe computer takes the match. Better luck next time.")
}

// PresentInvalidMove reports an input line that is not a move code.
func (p *Presenter) PresentInvalidMove(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%q is not one of the move codes.\n", code)
}

// Run starts the match and pumps move codes from input into the engine
// until the match completes, the input ends, or the context is cancelled.
// Blank lines are skipped, unknown codes are reported and ignored, and a
// line that arrives after its round already resolved is dropped.
func Run(ctx context.Context, input io.Reader, presenter *Presenter, engine *match.Engine) error {
	if err := engine.StartRound(); err != nil {
		return fmt.Errorf("start match: %w", err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-engine.Done():
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-engine.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case <-engine.Done():
					return nil
				default:
					return errors.New("input ended before the match completed")
				}
			}
			code := strings.TrimSpace(line)
			if code == "" {
				continue
			}

			err := engine.SubmitMove(ctx, rules.Move{Code: code})
			switch {
			case err == nil:
			case errors.Is(err, rules.ErrUnknownMove):
				presenter.PresentInvalidMove(code)
			case errors.Is(err, match.ErrNotAwaitingDecision):
				// The deadline or a prior line already resolved the round.
			case errors.Is(err, match.ErrMatchComplete):
				return nil
			default:
				return err
			}
		}
	}
}
