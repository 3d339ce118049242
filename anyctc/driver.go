package anyctc

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/hechangqing/lab/logspace"
	"github.com/unixpickle/essentials"
)

// DefaultLengthTolerance is the default number of frames
// by which features and frame weights may disagree.
const DefaultLengthTolerance = 5

// An Utterance is one training sequence.
type Utterance struct {
	Key string

	// Features has one row per frame.
	Features [][]float64

	// Label is nil if the utterance has no targets.
	Label []int

	// Weights, if non-nil, scales the error signal of
	// each frame.
	Weights []float64
}

// A Corpus produces utterances one at a time.
// Next returns io.EOF once the corpus is exhausted.
type Corpus interface {
	Next() (*Utterance, error)
}

// A Network maps features to class probabilities and
// learns from the resulting error signal.
type Network interface {
	// Propagate produces one row of class probabilities
	// (softmax outputs) per row of features.
	Propagate(features [][]float64) [][]float64

	// Backpropagate consumes the error signal with
	// respect to the pre-softmax outputs of the most
	// recent Propagate call.
	Backpropagate(diff [][]float64)
}

// DriverOptions configures a Driver.
type DriverOptions struct {
	// CrossValidate disables back-propagation.
	CrossValidate bool

	// LengthTolerance is the length difference between
	// features and weights at which an utterance is
	// skipped. Smaller differences are corrected by
	// trimming.
	// If it is 0, DefaultLengthTolerance is used.
	// If it is negative, the lengths must match exactly.
	//
	// Utterances with nil Weights always use a weight of
	// 1 for every frame.
	LengthTolerance int

	// ReportStep is the number of utterances between
	// progress reports.
	// See Progress.Step.
	ReportStep int

	// Logger is used for warnings and reports.
	// If nil, log.Default() is used.
	Logger *log.Logger
}

// Summary counts what a Driver did with its utterances.
type Summary struct {
	Done       int
	NoTarget   int
	OtherError int
	Frames     int
}

// A Driver trains or cross-validates a Network one
// utterance at a time.
type Driver struct {
	Network  Network
	Distance EditDistance
	Options  DriverOptions

	Evaluator *Evaluator
	Progress  *Progress
	Summary   Summary
}

// NewDriver creates a Driver for a network with the given
// blank output class.
func NewDriver(n Network, blank int, dist EditDistance, opts DriverOptions) *Driver {
	return &Driver{
		Network:   n,
		Distance:  dist,
		Options:   opts,
		Evaluator: NewEvaluator(blank),
		Progress:  &Progress{Step: opts.ReportStep, Logger: opts.Logger},
	}
}

// Run processes every utterance in the corpus and returns
// the final summary.
//
// Utterances which are missing targets, whose weights do
// not match their features, which are too short for their
// labels, or whose labels have zero probability are
// logged and skipped.
func (d *Driver) Run(c Corpus) (*Summary, error) {
	for {
		utt, err := c.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, essentials.AddCtx("run CTC driver", err)
		}
		if err := d.Step(utt); err != nil {
			return nil, essentials.AddCtx("run CTC driver", err)
		}
	}
	mode := "TRAINING"
	if d.Options.CrossValidate {
		mode = "CROSS-VALIDATION"
	}
	d.logger().Printf("Done %d files, %d with no targets, %d with other errors. [%s]",
		d.Summary.Done, d.Summary.NoTarget, d.Summary.OtherError, mode)
	d.logger().Print(d.Progress.Report())
	res := d.Summary
	return &res, nil
}

// Step processes a single utterance.
//
// Skipped utterances are counted in the summary and do
// not produce an error.
// An error is only returned when the network output does
// not fit the evaluator.
func (d *Driver) Step(utt *Utterance) error {
	if utt.Label == nil {
		d.logger().Printf("%s, missing targets", utt.Key)
		d.Summary.NoTarget++
		return nil
	}
	features, weights, ok := d.matchWeights(utt)
	if !ok {
		d.logger().Printf("%s, length mismatch of weights %d and features %d",
			utt.Key, len(utt.Weights), len(utt.Features))
		d.Summary.OtherError++
		return nil
	}
	if len(features) == 0 || len(features) < RequiredFrames(utt.Label) {
		d.logger().Printf("%s, required time > total time", utt.Key)
		d.Summary.OtherError++
		return nil
	}

	netOut := d.Network.Propagate(features)
	logOut := make([][]float64, len(netOut))
	for t, row := range netOut {
		logOut[t] = make([]float64, len(row))
		for k, x := range row {
			logOut[t][k] = logspace.SafeLog(x)
		}
	}

	res, err := d.Evaluator.Eval(logOut, utt.Label)
	if errors.Is(err, ErrZeroLikelihood) {
		d.logger().Printf("%s, zero likelihood", utt.Key)
		d.Summary.OtherError++
		return nil
	} else if err != nil {
		return fmt.Errorf("utterance %s: %w", utt.Key, err)
	}
	score := DecodeAndScore(netOut, utt.Label, d.Evaluator.Blank(), d.Distance)

	if !d.Options.CrossValidate {
		for t, row := range res.Diff {
			for k := range row {
				row[k] *= weights[t]
			}
		}
		d.Network.Backpropagate(res.Diff)
	}

	var delta Stats
	delta.AddResult(res)
	delta.AddScore(score)
	d.Progress.Observe(&delta)
	d.Summary.Done++
	d.Summary.Frames += len(features)
	return nil
}

// matchWeights trims the features and weights to a common
// length if they differ by less than the tolerance.
// Missing weights default to 1.
func (d *Driver) matchWeights(utt *Utterance) (features [][]float64,
	weights []float64, ok bool) {
	features = utt.Features
	if utt.Weights == nil {
		weights = make([]float64, len(features))
		for i := range weights {
			weights[i] = 1
		}
		return features, weights, true
	}
	weights = utt.Weights
	tolerance := d.Options.LengthTolerance
	if tolerance == 0 {
		tolerance = DefaultLengthTolerance
	} else if tolerance < 0 {
		tolerance = 1
	}
	n := len(features)
	if len(weights) < n {
		n = len(weights)
	}
	diff := len(features) + len(weights) - 2*n
	if diff >= tolerance {
		return nil, nil, false
	}
	return features[:n], weights[:n], true
}

func (d *Driver) logger() *log.Logger {
	if d.Options.Logger == nil {
		return log.Default()
	}
	return d.Options.Logger
}
