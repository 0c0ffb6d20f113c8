// Package predict implements the computer opponent's move selection.
//
// A Strategy looks at the player's move history and answers with the move
// the computer should play. The smarter strategies predict the player's
// next move and pick a counter for it; when the history carries no
// exploitable signal they degrade to uniform random play instead of
// guessing.
package predict

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/louisbranch/outplay/internal/game/rules"
)

// minHistory is the cold-start floor: with fewer recorded moves than this,
// every strategy plays uniformly at random so early rounds stay
// unpredictable regardless of the configured level.
const minHistory = 3

// Strategy levels selectable at match configuration.
const (
	LevelRandom    = 0
	LevelFrequency = 1
	LevelMarkov    = 2
)

// ErrInvalidLevel indicates a strategy level outside 0..2.
var ErrInvalidLevel = errors.New("strategy level must be 0, 1, or 2")

// Strategy selects the computer's next move from the player's history.
type Strategy interface {
	// Counter returns the computer's move for the coming round. The
	// history holds the player's past moves, oldest first. The RNG is the
	// match's single seeded stream.
	Counter(history []rules.Move, graph *rules.Graph, rng *rand.Rand) rules.Move
}

// ForLevel returns the strategy for a configured level.
func ForLevel(level int) (Strategy, error) {
	switch level {
	case LevelRandom:
		return Random{}, nil
	case LevelFrequency:
		return Frequency{}, nil
	case LevelMarkov:
		return Markov{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
}

// Random plays uniformly at random and never looks at the history. It is
// strategy level 0 and the only strategy the coin variant uses.
type Random struct{}

// Counter implements Strategy.
func (Random) Counter(_ []rules.Move, graph *rules.Graph, rng *rand.Rand) rules.Move {
	return graph.RandomMove(rng)
}

// Frequency is strategy level 1: it predicts the player's most frequent
// move over the entire history and counters it.
type Frequency struct{}

// Counter implements Strategy.
func (Frequency) Counter(history []rules.Move, graph *rules.Graph, rng *rand.Rand) rules.Move {
	if len(history) < minHistory {
		return graph.RandomMove(rng)
	}
	return counterFor(firstMax(history), graph, rng)
}

// Markov is strategy level 2: it predicts the player's next move from the
// transitions that followed the most recent move earlier in the history
// (a first-order Markov chain) and counters the prediction.
type Markov struct{}

// Counter implements Strategy.
func (Markov) Counter(history []rules.Move, graph *rules.Graph, rng *rand.Rand) rules.Move {
	if len(history) < minHistory {
		return graph.RandomMove(rng)
	}

	last := history[len(history)-1]
	var successors []rules.Move
	for i := 0; i < len(history)-1; i++ {
		if history[i].Code == last.Code {
			successors = append(successors, history[i+1])
		}
	}

	// No earlier occurrence of the last move: assume the player repeats it
	// rather than falling back to a random prediction.
	predicted := last
	if len(successors) > 0 {
		predicted = firstMax(successors)
	}
	return counterFor(predicted, graph, rng)
}

// firstMax returns the most frequent move in the sequence. On a frequency
// tie the winner is the move that reached the maximal count first in scan
// order, which keeps the prediction deterministic.
func firstMax(seq []rules.Move) rules.Move {
	counts := make(map[string]int, len(seq))
	best := seq[0]
	bestCount := 0
	for _, m := range seq {
		counts[m.Code]++
		if counts[m.Code] > bestCount {
			best = m
			bestCount = counts[m.Code]
		}
	}
	return best
}

// counterFor picks uniformly among the moves that beat the prediction. A
// move with no counters yields a random move instead.
func counterFor(predicted rules.Move, graph *rules.Graph, rng *rand.Rand) rules.Move {
	counters := graph.Counters(predicted)
	if len(counters) == 0 {
		return graph.RandomMove(rng)
	}
	return counters[rng.Intn(len(counters))]
}
