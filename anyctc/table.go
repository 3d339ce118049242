package anyctc

import "github.com/hechangqing/lab/logspace"

// A table is a reusable row-major matrix of
// log-probabilities.
type table struct {
	rows int
	cols int
	data []float64
}

// reset resizes the table and fills every entry with
// logspace.LogZero.
//
// The backing array is only reallocated when it is too
// small, but no value from a previous use survives.
func (t *table) reset(rows, cols int) {
	n := rows * cols
	if cap(t.data) < n {
		t.data = make([]float64, n)
	}
	t.data = t.data[:n]
	for i := range t.data {
		t.data[i] = logspace.LogZero
	}
	t.rows = rows
	t.cols = cols
}

func (t *table) row(i int) []float64 {
	return t.data[i*t.cols : (i+1)*t.cols]
}
