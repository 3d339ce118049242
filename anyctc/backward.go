package anyctc

import "github.com/hechangqing/lab/logspace"

// backward fills e.beta with the log-probabilities of
// every lattice suffix.
//
// The entry at (t, s) covers timesteps t+1 onward, so the
// emission at time t is not included.
func (e *Evaluator) backward(l *Lattice, logProbs [][]float64) {
	width := l.Width()
	e.beta.reset(l.Frames, width)

	final := e.beta.row(l.Frames - 1)
	final[width-1] = 0
	if width > 1 {
		final[width-2] = 0
	}

	for t := l.Frames - 2; t >= 0; t-- {
		nextActs := logProbs[t+1]
		next := e.beta.row(t + 1)
		cur := e.beta.row(t)
		start, end := l.SegmentRange(t)
		for s := start; s < end; s++ {
			var v float64
			if s&1 == 1 {
				labelIdx := s / 2
				symbol := l.Label[labelIdx]
				v = logspace.Add(
					logspace.Mul(next[s], nextActs[symbol]),
					logspace.Mul(next[s+1], nextActs[l.Blank]),
				)
				if s < width-2 {
					nextSymbol := l.Label[labelIdx+1]
					if nextSymbol != symbol {
						v = logspace.Add(v, logspace.Mul(next[s+2], nextActs[nextSymbol]))
					}
				}
			} else {
				v = logspace.Mul(next[s], nextActs[l.Blank])
				if s < width-1 {
					v = logspace.Add(v, logspace.Mul(next[s+1], nextActs[l.Label[s/2]]))
				}
			}
			cur[s] = v
		}
	}
}
