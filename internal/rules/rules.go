// Package rules implements the generalized rock-paper-scissors relation for
// any odd number of moves.
//
// Moves are arranged in a ring in the order given. Each move beats the
// Half() moves that precede it and loses to the Half() moves that follow it,
// so with ["rock", "paper", "scissors"] paper beats rock, scissors beats paper
// and rock beats scissors.
//
// Only move indices take part in the arithmetic; names are for display.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMoveSet is returned for fewer than three moves, an even
	// number of moves, or duplicate moves.
	ErrInvalidMoveSet = errors.New("invalid move set: provide an odd number (>= 3) of non-repeating moves")

	// ErrInvalidMoveIndex is returned for an index outside the move set.
	ErrInvalidMoveIndex = errors.New("invalid move index")
)

// Outcome is the result of a round from the human's perspective
type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	return [...]string{"Draw", "Win", "Lose"}[o]
}

// MoveSet is an immutable ordered list of distinct move names.
type MoveSet struct {
	names []string
	index map[string]int
}

// NewMoveSet validates names and builds a MoveSet.
func NewMoveSet(names []string) (*MoveSet, error) {
	if len(names) < 3 {
		return nil, fmt.Errorf("%w: got %d moves", ErrInvalidMoveSet, len(names))
	}
	if len(names)%2 == 0 {
		return nil, fmt.Errorf("%w: got an even number of moves (%d)", ErrInvalidMoveSet, len(names))
	}

	ms := &MoveSet{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: move %d is empty", ErrInvalidMoveSet, i+1)
		}
		if _, dup := ms.index[name]; dup {
			return nil, fmt.Errorf("%w: %q appears more than once", ErrInvalidMoveSet, name)
		}
		ms.names[i] = name
		ms.index[name] = i
	}

	return ms, nil
}

// Len returns the number of moves.
func (ms *MoveSet) Len() int {
	return len(ms.names)
}

// Half returns floor(Len/2), the number of moves each move beats.
func (ms *MoveSet) Half() int {
	return len(ms.names) / 2
}

// Name returns the name at index i. It panics if i is out of range.
func (ms *MoveSet) Name(i int) string {
	return ms.names[i]
}

// Names returns a copy of the move names in order.
func (ms *MoveSet) Names() []string {
	out := make([]string, len(ms.names))
	copy(out, ms.names)
	return out
}

// Index returns the position of name, or false if it is not a move.
func (ms *MoveSet) Index(name string) (int, bool) {
	i, ok := ms.index[name]
	return i, ok
}

// Valid reports whether i is a position in the move set.
func (ms *MoveSet) Valid(i int) bool {
	return i >= 0 && i < len(ms.names)
}

// CheckIndex returns ErrInvalidMoveIndex if i is out of range.
func (ms *MoveSet) CheckIndex(i int) error {
	if !ms.Valid(i) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidMoveIndex, i, len(ms.names))
	}
	return nil
}

// Decide returns the outcome for the human playing index human against the
// opponent playing index opponent.
func Decide(ms *MoveSet, human, opponent int) (Outcome, error) {
	if err := ms.CheckIndex(human); err != nil {
		return Draw, err
	}
	if err := ms.CheckIndex(opponent); err != nil {
		return Draw, err
	}
	return decide(ms.Len(), human, opponent), nil
}

// decide assumes both indices are in [0, n).
func decide(n, human, opponent int) Outcome {
	delta := (opponent - human + n) % n
	switch {
	case delta == 0:
		return Draw
	case delta <= n/2:
		return Lose
	default:
		return Win
	}
}
