package console

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/outplay/internal/game/match"
	"github.com/louisbranch/outplay/internal/game/rules"
)

type scissorsStrategy struct{}

func (scissorsStrategy) Counter(_ []rules.Move, graph *rules.Graph, _ *rand.Rand) rules.Move {
	move, ok := graph.MoveByCode("s")
	if !ok {
		panic("scissors missing from graph")
	}
	return move
}

func newTestEngine(t *testing.T, out *bytes.Buffer) *match.Engine {
	t.Helper()
	engine, err := match.New(match.Config{
		Graph:        rules.Classic(),
		Strategy:     scissorsStrategy{},
		TrackHistory: true,
		BestOf:       3,
		Timeout:      time.Hour,
		RNG:          rand.New(rand.NewSource(1)),
		Presenter:    NewPresenter(out),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func TestRunPlaysMatchToCompletion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	engine := newTestEngine(t, &out)
	input := strings.NewReader("x\n\n r \nr\n")

	if err := Run(context.Background(), input, NewPresenter(&out), engine); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, done := engine.Result()
	if !done || got != match.ResultPlayer {
		t.Fatalf("Result = %v (done=%t), want %v", got, done, match.ResultPlayer)
	}

	text := out.String()
	for _, want := range []string{
		`"x" is not one of the move codes.`,
		"you played Rock, computer played Scissors: you win this round",
		"You are the champion!",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n%s", want, text)
		}
	}
}

func TestRunReportsTruncatedInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	engine := newTestEngine(t, &out)

	err := Run(context.Background(), strings.NewReader("r\n"), NewPresenter(&out), engine)
	if err == nil || !strings.Contains(err.Error(), "input ended") {
		t.Fatalf("Run = %v, want input-ended error", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	engine := newTestEngine(t, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()
	if err := Run(ctx, r, NewPresenter(&out), engine); err != context.Canceled {
		t.Fatalf("Run = %v, want %v", err, context.Canceled)
	}
}
