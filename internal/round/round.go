// Package round sequences one commit-reveal game round.
//
// A round moves through Init -> Committed -> AwaitingHumanMove and then ends
// either in Resolved (the human played and the key is revealed) or Closed (the
// human walked away and the key is discarded unseen). Rounds are never reused;
// each call to Start draws a fresh key.
package round

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/fairrps/internal/commitment"
	"github.com/lox/fairrps/internal/randutil"
	"github.com/lox/fairrps/internal/roundid"
	"github.com/lox/fairrps/internal/rules"
)

// ErrRoundOver is returned for any call against a Resolved or Closed round.
var ErrRoundOver = errors.New("round is over")

// State is the position of a round in its lifecycle
type State int

const (
	Init State = iota
	Committed
	AwaitingHumanMove
	Resolved
	Closed
)

func (s State) String() string {
	return [...]string{"init", "committed", "awaiting-human-move", "resolved", "closed"}[s]
}

// Option configures a round
type Option func(*config)

type config struct {
	scheme *commitment.Scheme
	picker randutil.Picker
	clock  quartz.Clock
	logger *log.Logger
	ids    *roundid.Generator
	bindID bool
}

// WithScheme sets the commitment scheme (and so the key entropy source)
func WithScheme(s *commitment.Scheme) Option {
	return func(c *config) {
		c.scheme = s
	}
}

// WithPicker sets the source used to choose the opponent's move
func WithPicker(p randutil.Picker) Option {
	return func(c *config) {
		c.picker = p
	}
}

// WithClock sets the clock used for round timing
func WithClock(clock quartz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithIDGenerator sets the round ID generator
func WithIDGenerator(g *roundid.Generator) Option {
	return func(c *config) {
		c.ids = g
	}
}

// WithBoundNonce binds the round ID into the committed message so a digest
// cannot be replayed against another round.
func WithBoundNonce(enabled bool) Option {
	return func(c *config) {
		c.bindID = enabled
	}
}

// Round is a single game round. It is not safe for concurrent use.
type Round struct {
	id        string
	moves     *rules.MoveSet
	state     State
	opponent  int
	key       commitment.Key
	digest    commitment.Digest
	nonce     string
	clock     quartz.Clock
	startedAt time.Time
	logger    *log.Logger
}

// Result is what the human sees once the round is resolved
type Result struct {
	RoundID       string
	HumanIndex    int
	HumanMove     string
	OpponentIndex int
	OpponentMove  string
	Outcome       rules.Outcome
	Key           commitment.Key
	Digest        commitment.Digest
	Nonce         string
	Elapsed       time.Duration
}

// Verify recomputes the commitment from the revealed key and opponent move.
func (r *Result) Verify() bool {
	return commitment.Verify(r.Key, commitment.Message(r.Nonce, r.OpponentMove), r.Digest)
}

// Start picks the opponent's move, commits to it and returns a round waiting
// for the human's move.
func Start(moves *rules.MoveSet, opts ...Option) (*Round, error) {
	if moves == nil {
		return nil, fmt.Errorf("%w: no moves", rules.ErrInvalidMoveSet)
	}

	cfg := &config{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		ids:    roundid.NewGenerator(nil),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.scheme == nil {
		cfg.scheme = commitment.NewScheme(nil)
	}
	if cfg.picker == nil {
		p, err := randutil.NewEntropySeeded()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", commitment.ErrEntropyUnavailable, err)
		}
		cfg.picker = p
	}

	id, err := cfg.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commitment.ErrEntropyUnavailable, err)
	}

	r := &Round{
		id:     id,
		moves:  moves,
		state:  Init,
		clock:  cfg.clock,
		logger: cfg.logger.WithPrefix("round").With("round", id),
	}
	if cfg.bindID {
		r.nonce = id
	}

	if err := r.commit(cfg.scheme, cfg.picker); err != nil {
		return nil, err
	}

	r.state = AwaitingHumanMove
	r.startedAt = r.clock.Now()
	r.logger.Debug("Round committed", "moves", moves.Len(), "digest", r.digest.String(), "bound", r.nonce != "")

	return r, nil
}

// commit chooses the opponent move before the digest exists.
func (r *Round) commit(scheme *commitment.Scheme, picker randutil.Picker) error {
	r.opponent = picker.IntN(r.moves.Len())

	key, err := scheme.NewKey()
	if err != nil {
		r.logger.Error("Key generation failed", "error", err)
		return err
	}

	r.key = key
	r.digest = commitment.Commit(key, commitment.Message(r.nonce, r.moves.Name(r.opponent)))
	r.state = Committed
	return nil
}

// ID returns the round identifier.
func (r *Round) ID() string {
	return r.id
}

// State returns the current lifecycle state.
func (r *Round) State() State {
	return r.state
}

// Moves returns the round's move set.
func (r *Round) Moves() *rules.MoveSet {
	return r.moves
}

// Digest returns a copy of the published commitment.
func (r *Round) Digest() commitment.Digest {
	return append(commitment.Digest(nil), r.digest...)
}

// Nonce returns the string bound into the commitment, empty if none.
func (r *Round) Nonce() string {
	return r.nonce
}

// HelpTable returns the payoff grid. It does not change the round.
func (r *Round) HelpTable() (rules.Table, error) {
	if r.state != AwaitingHumanMove {
		return nil, fmt.Errorf("%w: %s", ErrRoundOver, r.state)
	}
	return rules.BuildTable(r.moves), nil
}

// Submit locks in the human's move, resolves the round and reveals the key.
// An out-of-range index returns rules.ErrInvalidMoveIndex and leaves the round
// waiting for another move.
func (r *Round) Submit(human int) (*Result, error) {
	if r.state != AwaitingHumanMove {
		return nil, fmt.Errorf("%w: %s", ErrRoundOver, r.state)
	}

	outcome, err := rules.Decide(r.moves, human, r.opponent)
	if err != nil {
		r.logger.Debug("Rejected move", "index", human)
		return nil, err
	}

	r.state = Resolved
	result := &Result{
		RoundID:       r.id,
		HumanIndex:    human,
		HumanMove:     r.moves.Name(human),
		OpponentIndex: r.opponent,
		OpponentMove:  r.moves.Name(r.opponent),
		Outcome:       outcome,
		Key:           r.key,
		Digest:        r.Digest(),
		Nonce:         r.nonce,
		Elapsed:       r.clock.Since(r.startedAt),
	}
	r.key = nil

	r.logger.Debug("Round resolved",
		"human", result.HumanMove,
		"opponent", result.OpponentMove,
		"outcome", outcome,
		"elapsed", result.Elapsed)

	return result, nil
}

// Abandon closes the round without revealing the key.
func (r *Round) Abandon() error {
	if r.state != AwaitingHumanMove {
		return fmt.Errorf("%w: %s", ErrRoundOver, r.state)
	}
	for i := range r.key {
		r.key[i] = 0
	}
	r.key = nil
	r.state = Closed
	r.logger.Debug("Round abandoned", "elapsed", r.clock.Since(r.startedAt))
	return nil
}
