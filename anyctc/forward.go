package anyctc

import "github.com/hechangqing/lab/logspace"

// forward fills e.alpha with the log-probabilities of
// every lattice prefix and returns the log-likelihood of
// the full label.
func (e *Evaluator) forward(l *Lattice, logProbs [][]float64) float64 {
	width := l.Width()
	e.alpha.reset(l.Frames, width)

	first := e.alpha.row(0)
	first[0] = logProbs[0][l.Blank]
	if width > 1 {
		first[1] = logProbs[0][l.Label[0]]
	}

	for t := 1; t < l.Frames; t++ {
		acts := logProbs[t]
		last := e.alpha.row(t - 1)
		cur := e.alpha.row(t)
		start, end := l.SegmentRange(t)
		for s := start; s < end; s++ {
			var v float64
			if s&1 == 1 {
				labelIdx := s / 2
				symbol := l.Label[labelIdx]
				v = logspace.Add(last[s], last[s-1])
				// Equal neighbors must be split by a blank.
				if s > 1 && symbol != l.Label[labelIdx-1] {
					v = logspace.Add(v, last[s-2])
				}
				v = logspace.Mul(v, acts[symbol])
			} else {
				v = last[s]
				if s > 0 {
					v = logspace.Add(v, last[s-1])
				}
				v = logspace.Mul(v, acts[l.Blank])
			}
			cur[s] = v
		}
	}

	final := e.alpha.row(l.Frames - 1)
	if width > 1 {
		return logspace.Add(final[width-1], final[width-2])
	}
	return final[0]
}
