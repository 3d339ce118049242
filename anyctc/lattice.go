package anyctc

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewFrames is returned when a sequence does not
	// have enough timesteps to emit its label.
	ErrTooFewFrames = errors.New("not enough frames for label")

	// ErrEmptyInput is returned for a sequence with no
	// timesteps.
	ErrEmptyInput = errors.New("empty input sequence")

	// ErrBadLabel is returned when a label entry is out of
	// range or equal to the blank.
	ErrBadLabel = errors.New("invalid label entry")
)

// A Lattice addresses the blank-infused version of a
// label.
//
// Position s in the lattice is a blank when s is even and
// Label[s/2] when s is odd, giving 2*len(Label)+1
// positions in total.
type Lattice struct {
	Label  []int
	Blank  int
	Frames int
}

// Width returns the number of lattice positions.
func (l *Lattice) Width() int {
	return 2*len(l.Label) + 1
}

// Symbol returns the output class for a lattice position.
func (l *Lattice) Symbol(s int) int {
	if s&1 == 0 {
		return l.Blank
	}
	return l.Label[s/2]
}

// SegmentRange returns the half-open range [start, end)
// of lattice positions which can lie on a complete path
// at timestep t.
//
// A position s needs about s/2 timesteps to be reached
// and about (Width()-s)/2 timesteps to reach the end, so
// everything outside the range has zero probability.
func (l *Lattice) SegmentRange(t int) (start, end int) {
	width := l.Width()
	start = width - 2*(l.Frames-t)
	if start < 0 {
		start = 0
	}
	end = 2 * (t + 1)
	if end > width {
		end = width
	}
	if start > end {
		end = start
	}
	return
}

// Check verifies that the lattice can be evaluated on an
// input with numClasses outputs per timestep.
func (l *Lattice) Check(numClasses int) error {
	if l.Frames == 0 {
		return ErrEmptyInput
	}
	if l.Blank >= numClasses {
		return fmt.Errorf("%w: blank %d with %d classes", ErrBadLabel, l.Blank,
			numClasses)
	}
	for i, x := range l.Label {
		if x < 0 || x >= numClasses || x == l.Blank {
			return fmt.Errorf("%w: entry %d is %d (blank %d, %d classes)",
				ErrBadLabel, i, x, l.Blank, numClasses)
		}
	}
	if req := RequiredFrames(l.Label); l.Frames < req {
		return fmt.Errorf("%w: have %d but need %d", ErrTooFewFrames, l.Frames, req)
	}
	return nil
}

// RequiredFrames computes the minimum number of timesteps
// needed to emit a label.
// Every entry takes one timestep, and every pair of equal
// neighbors needs an extra timestep for the blank that
// separates them.
func RequiredFrames(label []int) int {
	res := len(label)
	for i := 1; i < len(label); i++ {
		if label[i] == label[i-1] {
			res++
		}
	}
	return res
}
