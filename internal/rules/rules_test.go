package rules

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movesOf(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("m%d", i)
	}
	return names
}

func TestNewMoveSet(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{name: "classic", input: []string{"rock", "paper", "scissors"}},
		{name: "five moves", input: []string{"rock", "paper", "scissors", "lizard", "spock"}},
		{name: "empty", input: nil, wantErr: true},
		{name: "one move", input: []string{"rock"}, wantErr: true},
		{name: "two moves", input: []string{"rock", "paper"}, wantErr: true},
		{name: "four moves", input: []string{"rock", "paper", "scissors", "lizard"}, wantErr: true},
		{name: "duplicate", input: []string{"rock", "rock", "scissors"}, wantErr: true},
		{name: "blank move", input: []string{"rock", " ", "scissors"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := NewMoveSet(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidMoveSet))
				assert.Nil(t, ms)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ms.Names())
		})
	}
}

func TestMoveSetImmutable(t *testing.T) {
	input := []string{"rock", "paper", "scissors"}
	ms, err := NewMoveSet(input)
	require.NoError(t, err)

	input[0] = "changed"
	names := ms.Names()
	names[1] = "changed"

	assert.Equal(t, "rock", ms.Name(0))
	assert.Equal(t, "paper", ms.Name(1))

	i, ok := ms.Index("scissors")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = ms.Index("changed")
	assert.False(t, ok)
}

func TestDecideClassic(t *testing.T) {
	ms, err := NewMoveSet([]string{"rock", "paper", "scissors"})
	require.NoError(t, err)

	const rock, paper, scissors = 0, 1, 2

	tests := []struct {
		human, opponent int
		want            Outcome
	}{
		{rock, paper, Lose},
		{scissors, paper, Win},
		{paper, paper, Draw},
		{rock, scissors, Win},
		{paper, rock, Win},
		{scissors, rock, Lose},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s vs %s", ms.Name(tt.human), ms.Name(tt.opponent)), func(t *testing.T) {
			got, err := Decide(ms, tt.human, tt.opponent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecideInvalidIndex(t *testing.T) {
	ms, err := NewMoveSet(movesOf(5))
	require.NoError(t, err)

	for _, pair := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {99, 99}} {
		_, err := Decide(ms, pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidMoveIndex, "pair %v", pair)
	}
}

func TestDecideAntisymmetric(t *testing.T) {
	for n := 3; n <= 25; n += 2 {
		ms, err := NewMoveSet(movesOf(n))
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			self, err := Decide(ms, i, i)
			require.NoError(t, err)
			assert.Equal(t, Draw, self, "n=%d i=%d", n, i)

			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				ij, _ := Decide(ms, i, j)
				ji, _ := Decide(ms, j, i)

				assert.NotEqual(t, Draw, ij, "n=%d (%d,%d)", n, i, j)
				assert.NotEqual(t, ij, ji, "n=%d (%d,%d) both %s", n, i, j, ij)
			}
		}
	}
}

func TestBuildTable(t *testing.T) {
	for n := 3; n <= 15; n += 2 {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ms, err := NewMoveSet(movesOf(n))
			require.NoError(t, err)

			table := BuildTable(ms)
			require.Len(t, table, n)

			for i := range table {
				require.Len(t, table[i], n)
				assert.Equal(t, ms.Half(), table.Wins(i), "row %d wins", i)
				assert.Equal(t, ms.Half(), table.Losses(i), "row %d losses", i)

				for j := range table[i] {
					want, err := Decide(ms, i, j)
					require.NoError(t, err)
					assert.Equal(t, want, table[i][j])
				}
			}
		})
	}
}

func TestBuildTableMatchesClassicGrid(t *testing.T) {
	ms, err := NewMoveSet([]string{"rock", "paper", "scissors"})
	require.NoError(t, err)

	want := Table{
		{Draw, Lose, Win},
		{Win, Draw, Lose},
		{Lose, Win, Draw},
	}
	assert.Equal(t, want, BuildTable(ms))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Win", Win.String())
	assert.Equal(t, "Lose", Lose.String())
	assert.Equal(t, "Draw", Draw.String())
}
