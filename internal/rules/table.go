package rules

// Table is the N x N payoff grid. Cell [i][j] is the outcome for the human
// playing move i against the opponent playing move j.
type Table [][]Outcome

// BuildTable enumerates Decide for every pair of moves.
func BuildTable(ms *MoveSet) Table {
	n := ms.Len()
	table := make(Table, n)
	for i := range table {
		table[i] = make([]Outcome, n)
		for j := range table[i] {
			table[i][j] = decide(n, i, j)
		}
	}
	return table
}

// Wins returns how many opponent moves row i beats.
func (t Table) Wins(i int) int {
	return t.count(i, Win)
}

// Losses returns how many opponent moves row i loses to.
func (t Table) Losses(i int) int {
	return t.count(i, Lose)
}

func (t Table) count(i int, want Outcome) int {
	n := 0
	for _, o := range t[i] {
		if o == want {
			n++
		}
	}
	return n
}
