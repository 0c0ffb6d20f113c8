// Package rules implements the move sets and beats relations for the
// outplay game variants.
//
// A Graph is a directed relation over a variant's moves: for every pair of
// distinct moves exactly one of them beats the other. The relation is
// validated at construction so winner lookups never hit an undefined pair
// at play time.
package rules

import (
	"errors"
	"fmt"
	"math/rand"
)

// Move is one playable option within a variant. Identity is the Code; the
// Name is presentation only and never participates in comparisons.
type Move struct {
	Code string
	Name string
}

// Verdict is the result of comparing two moves.
type Verdict int

const (
	// VerdictTie indicates both moves are the same.
	VerdictTie Verdict = iota
	// VerdictFirst indicates the first move wins.
	VerdictFirst
	// VerdictSecond indicates the second move wins.
	VerdictSecond
)

func (v Verdict) String() string {
	switch v {
	case VerdictTie:
		return "tie"
	case VerdictFirst:
		return "first"
	case VerdictSecond:
		return "second"
	default:
		return "unknown"
	}
}

var (
	// ErrNoMoves indicates a variant was defined without any moves.
	ErrNoMoves = errors.New("variant requires at least one move")
	// ErrDuplicateMove indicates two moves share a code.
	ErrDuplicateMove = errors.New("duplicate move code")
	// ErrUnknownMove indicates a move code that is not part of the variant.
	ErrUnknownMove = errors.New("unknown move code")
	// ErrSelfBeat indicates a move was declared to beat itself.
	ErrSelfBeat = errors.New("move cannot beat itself")
	// ErrAsymmetry indicates a pair of moves with edges in both directions.
	ErrAsymmetry = errors.New("beats relation must be asymmetric")
	// ErrIncompleteRelation indicates a pair of distinct moves with no edge.
	ErrIncompleteRelation = errors.New("beats relation must cover every pair of distinct moves")
	// ErrUndefinedMatchup indicates Winner was asked about a pair the graph
	// does not define. After NewGraph validation this is an internal
	// consistency fault, not a playable condition.
	ErrUndefinedMatchup = errors.New("no rule defined between moves")
)

// Graph owns the ordered move set of one variant and its beats relation.
// It is immutable once constructed.
type Graph struct {
	name    string
	moves   []Move
	byCode  map[string]Move
	beats   map[string]map[string]bool
	counter map[string][]Move
}

// NewGraph builds a validated rule graph from a move list and a beats map
// keyed by move code. The relation must be total over distinct pairs,
// asymmetric, and free of self-loops.
func NewGraph(name string, moves []Move, beats map[string][]string) (*Graph, error) {
	g, err := newMoveSet(name, moves)
	if err != nil {
		return nil, err
	}

	for winner, losers := range beats {
		if _, ok := g.byCode[winner]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, winner)
		}
		for _, loser := range losers {
			if _, ok := g.byCode[loser]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownMove, loser)
			}
			if winner == loser {
				return nil, fmt.Errorf("%w: %q", ErrSelfBeat, winner)
			}
			if g.beats[loser][winner] {
				return nil, fmt.Errorf("%w: %q and %q", ErrAsymmetry, winner, loser)
			}
			g.beats[winner][loser] = true
		}
	}

	for i, a := range g.moves {
		for _, b := range g.moves[i+1:] {
			if !g.beats[a.Code][b.Code] && !g.beats[b.Code][a.Code] {
				return nil, fmt.Errorf("%w: %q and %q", ErrIncompleteRelation, a.Code, b.Code)
			}
		}
	}

	g.indexCounters()
	return g, nil
}

// NewMoveSet builds a degenerate graph with moves but no beats relation.
// Winner always reports an undefined matchup for distinct moves; variants
// built on a move set must judge rounds themselves. The coin toss uses this.
func NewMoveSet(name string, moves []Move) (*Graph, error) {
	g, err := newMoveSet(name, moves)
	if err != nil {
		return nil, err
	}
	g.indexCounters()
	return g, nil
}

func newMoveSet(name string, moves []Move) (*Graph, error) {
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	g := &Graph{
		name:   name,
		moves:  append([]Move(nil), moves...),
		byCode: make(map[string]Move, len(moves)),
		beats:  make(map[string]map[string]bool, len(moves)),
	}
	for _, m := range g.moves {
		if _, ok := g.byCode[m.Code]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMove, m.Code)
		}
		g.byCode[m.Code] = m
		g.beats[m.Code] = make(map[string]bool)
	}
	return g, nil
}

func (g *Graph) indexCounters() {
	g.counter = make(map[string][]Move, len(g.moves))
	for _, loser := range g.moves {
		for _, winner := range g.moves {
			if g.beats[winner.Code][loser.Code] {
				g.counter[loser.Code] = append(g.counter[loser.Code], winner)
			}
		}
	}
}

// Name returns the variant name the graph was built for.
func (g *Graph) Name() string {
	return g.name
}

// Moves returns the variant's moves in definition order.
func (g *Graph) Moves() []Move {
	return append([]Move(nil), g.moves...)
}

// MoveByCode resolves a move from its code.
func (g *Graph) MoveByCode(code string) (Move, bool) {
	m, ok := g.byCode[code]
	return m, ok
}

// Winner compares two moves. Identical moves tie; otherwise the graph
// reports which side wins. An undefined pair returns ErrUndefinedMatchup.
func (g *Graph) Winner(a, b Move) (Verdict, error) {
	if a.Code == b.Code {
		return VerdictTie, nil
	}
	if g.beats[a.Code][b.Code] {
		return VerdictFirst, nil
	}
	if g.beats[b.Code][a.Code] {
		return VerdictSecond, nil
	}
	return VerdictTie, fmt.Errorf("%w: %q vs %q", ErrUndefinedMatchup, a.Code, b.Code)
}

// Counters returns every move that beats m, in definition order. The slice
// may be empty; callers fall back to a random move in that case.
func (g *Graph) Counters(m Move) []Move {
	return append([]Move(nil), g.counter[m.Code]...)
}

// RandomMove returns a uniform choice over the variant's move set using the
// injected RNG.
func (g *Graph) RandomMove(rng *rand.Rand) Move {
	return g.moves[rng.Intn(len(g.moves))]
}
