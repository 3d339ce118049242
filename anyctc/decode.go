package anyctc

import "math"

// An EditDistance compares a hypothesis to a reference
// label and reports the total number of errors along with
// how many were insertions, deletions, and substitutions.
//
// The editdist package provides an implementation.
type EditDistance func(ref, hyp []int) (errs, ins, del, sub int)

// A TokenScore is the result of scoring a decoded
// hypothesis against a reference label.
type TokenScore struct {
	Hyp []int

	Errors        int
	Insertions    int
	Deletions     int
	Substitutions int
	RefTokens     int
}

// Rate returns the token error rate as a percentage.
// It is 0 when the reference is empty and there are no
// errors, and +Inf when the reference is empty but the
// hypothesis is not.
func (t *TokenScore) Rate() float64 {
	if t.RefTokens == 0 {
		if t.Errors == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return 100 * float64(t.Errors) / float64(t.RefTokens)
}

// DecodeAndScore greedily decodes the network outputs and
// scores the hypothesis against ref using dist.
//
// The outputs may be probabilities or log-probabilities,
// since only their argmax is used.
func DecodeAndScore(netOut [][]float64, ref []int, blank int,
	dist EditDistance) *TokenScore {
	hyp := GreedyLabels(netOut, blank)
	errs, ins, del, sub := dist(ref, hyp)
	return &TokenScore{
		Hyp:           hyp,
		Errors:        errs,
		Insertions:    ins,
		Deletions:     del,
		Substitutions: sub,
		RefTokens:     len(ref),
	}
}

// GreedyLabels produces the best-path labeling of a
// sequence by taking the most likely class at every
// timestep and collapsing the result.
func GreedyLabels(outs [][]float64, blank int) []int {
	path := make([]int, len(outs))
	for t, row := range outs {
		best := 0
		for k, x := range row {
			if x > row[best] {
				best = k
			}
		}
		path[t] = best
	}
	return Collapse(path, blank)
}

// Collapse turns a per-timestep path into a label by
// merging consecutive duplicates and then removing
// blanks.
func Collapse(path []int, blank int) []int {
	var res []int
	for i, x := range path {
		if i > 0 && path[i-1] == x {
			continue
		}
		if x != blank {
			res = append(res, x)
		}
	}
	return res
}
