package anyctc

import (
	"errors"
	"fmt"

	"github.com/hechangqing/lab/logspace"
)

// ErrZeroLikelihood is returned when every alignment of a
// label has probability zero under the network outputs.
var ErrZeroLikelihood = errors.New("label has zero probability")

// likelihoodSlack is how far above zero a log-likelihood
// may round before it is treated as a numerical bug.
const likelihoodSlack = 1e-6

// Result is the outcome of evaluating one sequence.
type Result struct {
	// LogLikelihood is the log probability of the label.
	LogLikelihood float64

	// Frames is the number of timesteps in the sequence.
	Frames int

	// Occupancy stores, for every timestep and class, the
	// posterior probability that the class was emitted at
	// that timestep given the label.
	// Each row sums to 1.
	Occupancy [][]float64

	// Diff is the error signal with respect to the
	// network's pre-softmax outputs: the emitted
	// probability minus the occupancy.
	Diff [][]float64
}

// An Evaluator runs the CTC forward-backward algorithm.
//
// An Evaluator reuses its internal buffers between calls,
// so it is not safe to use from multiple Goroutines at
// once.
// Use one Evaluator per worker instead.
type Evaluator struct {
	// LogSpaceDiff, if set, computes Diff by subtracting
	// in the log domain and then exponentiating, rather
	// than exponentiating both terms and subtracting.
	LogSpaceDiff bool

	blank      int
	alpha      table
	beta       table
	classProbs []float64
}

// NewEvaluator creates an Evaluator for networks whose
// blank symbol is the given output class.
//
// It panics if blank is negative.
func NewEvaluator(blank int) *Evaluator {
	if blank < 0 {
		panic(fmt.Sprintf("invalid blank index: %d", blank))
	}
	return &Evaluator{blank: blank}
}

// Blank returns the blank output class.
func (e *Evaluator) Blank() int {
	return e.blank
}

// Eval computes the log-likelihood of a label and the
// error signal for the network outputs.
//
// The logProbs argument stores one row of class
// log-probabilities per timestep.
// The label must not contain the blank, and there must
// be at least RequiredFrames(label) timesteps.
func (e *Evaluator) Eval(logProbs [][]float64, label []int) (*Result, error) {
	if e.blank < 0 {
		panic(fmt.Sprintf("invalid blank index: %d", e.blank))
	}
	var numClasses int
	if len(logProbs) > 0 {
		numClasses = len(logProbs[0])
	}
	for i, row := range logProbs {
		if len(row) != numClasses {
			return nil, fmt.Errorf("evaluate CTC: row %d has %d classes, expected %d",
				i, len(row), numClasses)
		}
	}
	l := &Lattice{Label: label, Blank: e.blank, Frames: len(logProbs)}
	if err := l.Check(numClasses); err != nil {
		return nil, fmt.Errorf("evaluate CTC: %w", err)
	}

	logLikelihood := e.forward(l, logProbs)
	if logLikelihood > likelihoodSlack {
		panic(fmt.Sprintf("log-likelihood is positive: %f", logLikelihood))
	} else if logspace.IsZero(logLikelihood) {
		return nil, fmt.Errorf("evaluate CTC: %w", ErrZeroLikelihood)
	}
	e.backward(l, logProbs)

	res := &Result{
		LogLikelihood: logLikelihood,
		Frames:        l.Frames,
		Occupancy:     make([][]float64, l.Frames),
		Diff:          make([][]float64, l.Frames),
	}
	for t := range logProbs {
		res.Occupancy[t], res.Diff[t] = e.assemble(l, logProbs[t], t, logLikelihood)
	}
	return res, nil
}

// assemble computes the occupancy and error signal for a
// single timestep.
func (e *Evaluator) assemble(l *Lattice, acts []float64, t int,
	logLikelihood float64) (occupancy, diff []float64) {
	if cap(e.classProbs) < len(acts) {
		e.classProbs = make([]float64, len(acts))
	}
	e.classProbs = e.classProbs[:len(acts)]
	for i := range e.classProbs {
		e.classProbs[i] = logspace.LogZero
	}

	alpha := e.alpha.row(t)
	beta := e.beta.row(t)
	for s := 0; s < l.Width(); s++ {
		k := l.Symbol(s)
		e.classProbs[k] = logspace.Add(e.classProbs[k], logspace.Mul(alpha[s], beta[s]))
	}

	occupancy = make([]float64, len(acts))
	diff = make([]float64, len(acts))
	for k, act := range acts {
		logOcc := logspace.Div(e.classProbs[k], logLikelihood)
		occupancy[k] = logspace.SafeExp(logOcc)
		if e.LogSpaceDiff {
			if act >= logOcc {
				diff[k] = logspace.SafeExp(logspace.Sub(act, logOcc))
			} else {
				diff[k] = -logspace.SafeExp(logspace.Sub(logOcc, act))
			}
		} else {
			diff[k] = logspace.SafeExp(act) - occupancy[k]
		}
	}
	return
}
