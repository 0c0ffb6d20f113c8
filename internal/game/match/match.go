// Package match implements the best-of-N round engine.
//
// An Engine runs one match: it arms a decision deadline each round, accepts
// the player's move (or a deadline expiry), asks the opponent strategy for
// the computer's move, judges the round, and keeps score until one side
// reaches the required number of wins. The display boundary and the stats
// store are injected collaborators.
package match

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/louisbranch/outplay/internal/game/predict"
	"github.com/louisbranch/outplay/internal/game/rules"
)

// DefaultTimeout is the decision deadline applied when the configuration
// leaves Timeout unset.
const DefaultTimeout = 10 * time.Second

// defaultTick is the interval between timer ticks surfaced to the presenter.
const defaultTick = time.Second

// Result identifies which side won a round or a match.
type Result int

const (
	// ResultTie indicates neither side won the round.
	ResultTie Result = iota
	// ResultPlayer indicates the human player won.
	ResultPlayer
	// ResultComputer indicates the computer won.
	ResultComputer
)

func (r Result) String() string {
	switch r {
	case ResultTie:
		return "tie"
	case ResultPlayer:
		return "player"
	case ResultComputer:
		return "computer"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidBestOf indicates a best-of value that is not a positive odd
	// integer.
	ErrInvalidBestOf = errors.New("best-of must be a positive odd integer")
	// ErrInvalidTimeout indicates a non-positive decision deadline.
	ErrInvalidTimeout = errors.New("decision timeout must be positive")
	// ErrNotAwaitingDecision indicates a move arrived while no round was
	// open for a decision, including after the round's deadline expired.
	ErrNotAwaitingDecision = errors.New("no round is awaiting a decision")
	// ErrMatchComplete indicates the match already finished.
	ErrMatchComplete = errors.New("match is complete")
	// ErrAlreadyStarted indicates StartRound was called twice; rounds after
	// the first start automatically.
	ErrAlreadyStarted = errors.New("match already started")
)

// Outcome is the immutable record of one resolved round.
type Outcome struct {
	Round        int
	PlayerMove   rules.Move
	ComputerMove rules.Move
	Result       Result
	// TimedOut marks a forced loss; PlayerMove is the zero Move in that
	// case because the non-choice never becomes part of the history.
	TimedOut bool
}

// Presenter is the display boundary the engine reports to.
type Presenter interface {
	PresentMoveChoices(variant string, moves []rules.Move)
	PresentTimerTick(remaining time.Duration)
	PresentRoundOutcome(outcome Outcome)
	PresentMatchResult(result Result)
}

// Recorder receives the final result of a match, keyed by variant. Failures
// are logged and never fail the match flow.
type Recorder interface {
	Increment(ctx context.Context, variant string, result Result) error
}

// Judge resolves one round given both moves. The default judge asks the
// rule graph; the coin variant installs CoinJudge instead.
type Judge func(player, computer rules.Move) (Result, error)

// GraphJudge judges a round by the graph's beats relation.
func GraphJudge(graph *rules.Graph) Judge {
	return func(player, computer rules.Move) (Result, error) {
		verdict, err := graph.Winner(player, computer)
		if err != nil {
			return ResultTie, err
		}
		switch verdict {
		case rules.VerdictFirst:
			return ResultPlayer, nil
		case rules.VerdictSecond:
			return ResultComputer, nil
		default:
			return ResultTie, nil
		}
	}
}

// CoinJudge judges the coin toss: matching sides win for the player,
// mismatched sides win for the computer. A coin round never ties.
func CoinJudge(player, computer rules.Move) (Result, error) {
	if player.Code == computer.Code {
		return ResultPlayer, nil
	}
	return ResultComputer, nil
}

// Config describes one match.
type Config struct {
	// Variant keys the stats record; defaults to the graph name.
	Variant string
	Graph   *rules.Graph
	// Strategy selects the computer's moves.
	Strategy predict.Strategy
	// Judge resolves rounds; nil installs GraphJudge(Graph).
	Judge Judge
	// TrackHistory feeds the player's decisions to the strategy. The coin
	// variant leaves it off: a fair coin has no exploitable signal.
	TrackHistory bool
	BestOf       int
	// Timeout is the per-round decision deadline; zero means
	// DefaultTimeout.
	Timeout time.Duration
	// TickEvery is the presenter tick interval; zero means one second.
	TickEvery time.Duration
	// RNG is the match's single seeded stream.
	RNG       *rand.Rand
	Presenter Presenter
	// Stats may be nil when no store is attached.
	Stats Recorder
}

type state int

const (
	stateIdle state = iota
	stateAwaiting
	stateResolving
	stateRoundComplete
	stateMatchComplete
)

// Engine is the match state machine. All exported methods are safe for use
// by the input goroutine concurrently with deadline expiry.
type Engine struct {
	cfg          Config
	judge        Judge
	requiredWins int

	mu            sync.Mutex
	st            state
	round         int // completed rounds
	playerScore   int
	computerScore int
	history       []rules.Move
	deadline      *deadline
	matchResult   Result
	done          chan struct{}
}

// New validates the configuration and creates an engine. Validation errors
// here are the construction-time surface for bad match settings; nothing is
// rejected mid-match.
func New(cfg Config) (*Engine, error) {
	if cfg.Graph == nil {
		return nil, fmt.Errorf("rule graph is required")
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("opponent strategy is required")
	}
	if cfg.RNG == nil {
		return nil, fmt.Errorf("rng is required")
	}
	if cfg.Presenter == nil {
		return nil, fmt.Errorf("presenter is required")
	}
	if cfg.BestOf <= 0 || cfg.BestOf%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBestOf, cfg.BestOf)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeout, cfg.Timeout)
	}
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = defaultTick
	}
	if cfg.Variant == "" {
		cfg.Variant = cfg.Graph.Name()
	}

	judge := cfg.Judge
	if judge == nil {
		judge = GraphJudge(cfg.Graph)
	}

	return &Engine{
		cfg:          cfg,
		judge:        judge,
		requiredWins: cfg.BestOf/2 + 1,
		done:         make(chan struct{}),
	}, nil
}

// Variant returns the stats key the match reports under.
func (e *Engine) Variant() string {
	return e.cfg.Variant
}

// RequiredWins returns the score either side needs to end the match.
func (e *Engine) RequiredWins() int {
	return e.requiredWins
}

// Scores returns the player and computer scores.
func (e *Engine) Scores() (player, computer int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playerScore, e.computerScore
}

// Round returns the number of completed rounds.
func (e *Engine) Round() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round
}

// Done is closed when the match completes.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Result returns the match result once the match has completed.
func (e *Engine) Result() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st != stateMatchComplete {
		return ResultTie, false
	}
	return e.matchResult, true
}

// StartRound opens the first round: it arms the decision deadline and
// presents the move choices. Later rounds start automatically after each
// resolution.
func (e *Engine) StartRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.st {
	case stateIdle:
		e.startRoundLocked()
		return nil
	case stateMatchComplete:
		return ErrMatchComplete
	default:
		return ErrAlreadyStarted
	}
}

func (e *Engine) startRoundLocked() {
	seq := e.round + 1
	e.st = stateAwaiting
	e.deadline = newDeadline(e.cfg.Timeout, e.cfg.TickEvery,
		func(remaining time.Duration) { e.tick(seq, remaining) },
		func() { e.expire(seq) },
	)
	e.cfg.Presenter.PresentMoveChoices(e.cfg.Variant, e.cfg.Graph.Moves())
}

// SubmitMove records the player's decision for the open round. It is valid
// only while the round awaits a decision; a move arriving after the
// deadline expired is rejected so a round can never resolve twice.
func (e *Engine) SubmitMove(ctx context.Context, move rules.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st == stateMatchComplete {
		return ErrMatchComplete
	}
	if e.st != stateAwaiting {
		return ErrNotAwaitingDecision
	}
	resolved, ok := e.cfg.Graph.MoveByCode(move.Code)
	if !ok {
		return fmt.Errorf("%w: %q", rules.ErrUnknownMove, move.Code)
	}

	e.deadline.cancel()
	e.st = stateResolving
	return e.resolveLocked(ctx, resolved, false)
}

// expire resolves a round as a forced loss. The sequence guard makes a
// fire that lost the race against a player decision a no-op.
func (e *Engine) expire(seq int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st != stateAwaiting || e.round+1 != seq {
		return
	}
	e.st = stateResolving
	// The forced loss never reaches the judge, so the error path here is
	// unreachable; any judge fault would already have surfaced on a
	// player-decided round.
	_ = e.resolveLocked(context.Background(), rules.Move{}, true)
}

func (e *Engine) tick(seq int, remaining time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st != stateAwaiting || e.round+1 != seq {
		return
	}
	e.cfg.Presenter.PresentTimerTick(remaining)
}

// resolveLocked runs the Resolving step: it computes the computer's move,
// judges the round (a timeout is a computer win regardless of the moves),
// updates the scores, and either completes the match or opens the next
// round.
func (e *Engine) resolveLocked(ctx context.Context, playerMove rules.Move, timedOut bool) error {
	// The opponent's move is computed even on a timeout so the outcome can
	// show what the computer would have played. The strategy must see the
	// history through the previous round only, so the current decision is
	// appended after the counter is chosen.
	computerMove := e.cfg.Strategy.Counter(e.history, e.cfg.Graph, e.cfg.RNG)
	if !timedOut && e.cfg.TrackHistory {
		e.history = append(e.history, playerMove)
	}

	result := ResultComputer
	if !timedOut {
		var err error
		result, err = e.judge(playerMove, computerMove)
		if err != nil {
			// Malformed rule set. Construction-time validation makes this
			// unreachable for graph-backed variants; fail fast and leave
			// the round unresolved.
			return err
		}
	}

	switch result {
	case ResultPlayer:
		e.playerScore++
	case ResultComputer:
		e.computerScore++
	}
	e.round++

	outcome := Outcome{
		Round:        e.round,
		PlayerMove:   playerMove,
		ComputerMove: computerMove,
		Result:       result,
		TimedOut:     timedOut,
	}
	e.st = stateRoundComplete
	e.cfg.Presenter.PresentRoundOutcome(outcome)

	if e.playerScore >= e.requiredWins || e.computerScore >= e.requiredWins {
		e.completeLocked(ctx)
		return nil
	}
	e.startRoundLocked()
	return nil
}

func (e *Engine) completeLocked(ctx context.Context) {
	e.st = stateMatchComplete
	e.matchResult = ResultComputer
	if e.playerScore >= e.requiredWins {
		e.matchResult = ResultPlayer
	}

	if e.cfg.Stats != nil {
		if err := e.cfg.Stats.Increment(ctx, e.cfg.Variant, e.matchResult); err != nil {
			// Store faults never fail the match.
			log.Printf("record %s match result: %v", e.cfg.Variant, err)
		}
	}

	e.cfg.Presenter.PresentMatchResult(e.matchResult)
	close(e.done)
}
