package rules

import (
	"errors"
	"math/rand"
	"testing"
)

// TestWinnerIsTotalOverDistinctPairs ensures every pair of distinct moves
// has exactly one winner in the built-in graphs.
func TestWinnerIsTotalOverDistinctPairs(t *testing.T) {
	t.Parallel()

	for _, g := range []*Graph{Classic(), Extended()} {
		moves := g.Moves()
		for _, a := range moves {
			for _, b := range moves {
				verdict, err := g.Winner(a, b)
				if err != nil {
					t.Fatalf("%s: Winner(%s, %s) error: %v", g.Name(), a.Code, b.Code, err)
				}
				if a.Code == b.Code {
					if verdict != VerdictTie {
						t.Fatalf("%s: Winner(%s, %s) = %v, want tie", g.Name(), a.Code, b.Code, verdict)
					}
					continue
				}
				if verdict != VerdictFirst && verdict != VerdictSecond {
					t.Fatalf("%s: Winner(%s, %s) = %v, want a winner", g.Name(), a.Code, b.Code, verdict)
				}
				reverse, err := g.Winner(b, a)
				if err != nil {
					t.Fatalf("%s: Winner(%s, %s) error: %v", g.Name(), b.Code, a.Code, err)
				}
				if (verdict == VerdictFirst) == (reverse == VerdictFirst) {
					t.Fatalf("%s: %s vs %s won both directions", g.Name(), a.Code, b.Code)
				}
			}
		}
	}
}

// TestNoMoveCountersItself ensures m never appears in Counters(m).
func TestNoMoveCountersItself(t *testing.T) {
	t.Parallel()

	for _, g := range []*Graph{Classic(), Extended(), Coin()} {
		for _, m := range g.Moves() {
			for _, c := range g.Counters(m) {
				if c.Code == m.Code {
					t.Fatalf("%s: %s counters itself", g.Name(), m.Code)
				}
			}
		}
	}
}

// TestExtendedDegrees ensures every extended move beats exactly two moves
// and loses to exactly two moves.
func TestExtendedDegrees(t *testing.T) {
	t.Parallel()

	g := Extended()
	for _, m := range g.Moves() {
		if got := len(g.Counters(m)); got != 2 {
			t.Fatalf("extended: %s loses to %d moves, want 2", m.Code, got)
		}
		beaten := 0
		for _, other := range g.Moves() {
			verdict, err := g.Winner(m, other)
			if err != nil {
				t.Fatalf("Winner(%s, %s) error: %v", m.Code, other.Code, err)
			}
			if verdict == VerdictFirst {
				beaten++
			}
		}
		if beaten != 2 {
			t.Fatalf("extended: %s beats %d moves, want 2", m.Code, beaten)
		}
	}
}

func TestNewGraphValidation(t *testing.T) {
	t.Parallel()

	moves := []Move{{Code: "a", Name: "A"}, {Code: "b", Name: "B"}, {Code: "c", Name: "C"}}

	tests := []struct {
		name  string
		moves []Move
		beats map[string][]string
		want  error
	}{
		{
			name: "empty move list",
			want: ErrNoMoves,
		},
		{
			name:  "duplicate code",
			moves: []Move{{Code: "a"}, {Code: "a"}},
			want:  ErrDuplicateMove,
		},
		{
			name:  "unknown winner",
			moves: moves,
			beats: map[string][]string{"x": {"a"}},
			want:  ErrUnknownMove,
		},
		{
			name:  "unknown loser",
			moves: moves,
			beats: map[string][]string{"a": {"x"}},
			want:  ErrUnknownMove,
		},
		{
			name:  "self loop",
			moves: moves,
			beats: map[string][]string{"a": {"a"}},
			want:  ErrSelfBeat,
		},
		{
			name:  "both directions",
			moves: moves,
			beats: map[string][]string{"a": {"b"}, "b": {"a", "c"}, "c": {"a"}},
			want:  ErrAsymmetry,
		},
		{
			name:  "missing edge",
			moves: moves,
			beats: map[string][]string{"a": {"b"}, "b": {"c"}},
			want:  ErrIncompleteRelation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewGraph("test", tt.moves, tt.beats)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewGraph error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewGraphAcceptsCycle(t *testing.T) {
	t.Parallel()

	g, err := NewGraph("cycle",
		[]Move{{Code: "a"}, {Code: "b"}, {Code: "c"}},
		map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}},
	)
	if err != nil {
		t.Fatalf("NewGraph error: %v", err)
	}
	verdict, err := g.Winner(Move{Code: "a"}, Move{Code: "b"})
	if err != nil {
		t.Fatalf("Winner error: %v", err)
	}
	if verdict != VerdictFirst {
		t.Fatalf("Winner(a, b) = %v, want first", verdict)
	}
}

func TestMoveSetWinnerIsUndefined(t *testing.T) {
	t.Parallel()

	g := Coin()
	heads, _ := g.MoveByCode("h")
	tails, _ := g.MoveByCode("t")

	if verdict, err := g.Winner(heads, heads); err != nil || verdict != VerdictTie {
		t.Fatalf("Winner(h, h) = %v, %v, want tie", verdict, err)
	}
	if _, err := g.Winner(heads, tails); !errors.Is(err, ErrUndefinedMatchup) {
		t.Fatalf("Winner(h, t) error = %v, want %v", err, ErrUndefinedMatchup)
	}
	if got := len(g.Counters(heads)); got != 0 {
		t.Fatalf("Counters(h) has %d moves, want 0", got)
	}
}

// TestRandomMoveCoversMoveSet ensures a seeded RNG eventually selects every
// move of each built-in variant.
func TestRandomMoveCoversMoveSet(t *testing.T) {
	t.Parallel()

	for _, g := range []*Graph{Classic(), Extended(), Coin()} {
		rng := rand.New(rand.NewSource(7))
		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			seen[g.RandomMove(rng).Code] = true
		}
		if len(seen) != len(g.Moves()) {
			t.Fatalf("%s: random moves covered %d of %d moves", g.Name(), len(seen), len(g.Moves()))
		}
	}
}

func TestMoveByCode(t *testing.T) {
	t.Parallel()

	g := Classic()
	m, ok := g.MoveByCode("r")
	if !ok || m.Name != "Rock" {
		t.Fatalf("MoveByCode(r) = %+v, %v", m, ok)
	}
	if _, ok := g.MoveByCode("z"); ok {
		t.Fatal("MoveByCode(z) unexpectedly found a move")
	}
}
