// Package editdist computes Levenshtein distances between
// label sequences.
package editdist

// Distance computes the edit distance between a reference
// and a hypothesis, along with a breakdown of the edits.
//
// An insertion is a hypothesis token with no reference
// counterpart, a deletion is a reference token missing
// from the hypothesis, and a substitution is a mismatched
// pair.
// When several alignments have the same cost, matches and
// substitutions are preferred over insertions and
// deletions.
func Distance(ref, hyp []int) (errs, ins, del, sub int) {
	lr, lh := len(ref), len(hyp)

	// cost[i][j] is the distance between ref[:i] and hyp[:j].
	cost := make([][]int, lr+1)
	for i := range cost {
		cost[i] = make([]int, lh+1)
		cost[i][0] = i
	}
	for j := 0; j <= lh; j++ {
		cost[0][j] = j
	}

	for i := 1; i <= lr; i++ {
		for j := 1; j <= lh; j++ {
			diag := cost[i-1][j-1]
			if ref[i-1] != hyp[j-1] {
				diag++
			}
			m := diag
			if d := cost[i-1][j] + 1; d < m {
				m = d
			}
			if in := cost[i][j-1] + 1; in < m {
				m = in
			}
			cost[i][j] = m
		}
	}

	i, j := lr, lh
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1] && cost[i][j] == cost[i-1][j-1]:
			i--
			j--
		case i > 0 && j > 0 && cost[i][j] == cost[i-1][j-1]+1:
			sub++
			i--
			j--
		case i > 0 && cost[i][j] == cost[i-1][j]+1:
			del++
			i--
		default:
			ins++
			j--
		}
	}
	return cost[lr][lh], ins, del, sub
}
