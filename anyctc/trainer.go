package anyctc

import (
	"errors"
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anydiff/anyseq"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Batch stores a batch of input sequences and the
// corresponding labels for each.
type Batch struct {
	Inputs anyseq.Seq
	Labels [][]int
}

// A Trainer creates batches, computes gradients, and adds
// up costs for CTC.
type Trainer struct {
	// Func maps input sequences to sequences of output
	// log-probabilities.
	Func   func(anyseq.Seq) anyseq.Seq
	Params []*anydiff.Var

	// Blank is the output class of the blank symbol.
	Blank int

	// Average indicates whether or not the total cost should
	// be averaged before computing gradients.
	// This affects gradients, LastCost, and the output of
	// TotalCost().
	Average bool

	// After every gradient computation, LastCost is set to
	// the cost from the batch.
	LastCost anyvec.Numeric
}

// Fetch produces a *Batch for the subset of samples.
// The batch may not be empty.
func (t *Trainer) Fetch(l SampleList) (*Batch, error) {
	if l.Len() == 0 {
		return nil, errors.New("fetch batch: empty batch")
	}
	ins := make([][]anyvec.Vector, l.Len())
	outs := make([][]int, l.Len())
	for i := 0; i < l.Len(); i++ {
		sample, err := l.GetSample(i)
		if err != nil {
			return nil, essentials.AddCtx("fetch batch", err)
		}
		ins[i] = sample.Input
		outs[i] = sample.Label
	}
	return &Batch{
		Inputs: anyseq.ConstSeqList(l.Creator(), ins),
		Labels: outs,
	}, nil
}

// TotalCost computes the total cost for the batch.
//
// For more information on how this works, see Cost().
func (t *Trainer) TotalCost(b *Batch) anydiff.Res {
	actual := t.Func(b.Inputs)
	costs := Cost(actual, b.Labels, t.Blank)
	sum := anydiff.Sum(costs)
	if t.Average {
		scaler := sum.Output().Creator().MakeNumeric(1 / float64(costs.Output().Len()))
		return anydiff.Scale(sum, scaler)
	} else {
		return sum
	}
}

// Gradient computes the gradient for the batch's cost.
// It also sets t.LastCost to the numerical value of the
// total cost.
func (t *Trainer) Gradient(b *Batch) anydiff.Grad {
	res := anydiff.NewGrad(t.Params...)

	cost := t.TotalCost(b)
	t.LastCost = anyvec.Sum(cost.Output())

	c := cost.Output().Creator()
	data := c.MakeNumericList([]float64{1})
	upstream := c.MakeVectorData(data)
	cost.Propagate(upstream, res)

	return res
}

// Evaluate computes loss and greedy-decoding statistics
// for the batch without computing gradients.
func (t *Trainer) Evaluate(b *Batch, dist EditDistance) *Stats {
	actual := t.Func(b.Inputs)
	e := NewEvaluator(t.Blank)
	stats := &Stats{}
	for i, seq := range anyseq.SeparateSeqs(batchesTo64(actual.Output())) {
		logProbs := make([][]float64, len(seq))
		for j, vec := range seq {
			logProbs[j] = vec.Data().([]float64)
		}
		res, err := e.Eval(logProbs, b.Labels[i])
		if errors.Is(err, ErrZeroLikelihood) {
			res = &Result{LogLikelihood: math.Inf(-1), Frames: len(logProbs)}
		} else if err != nil {
			panic(err)
		}
		stats.AddResult(res)
		stats.AddScore(DecodeAndScore(logProbs, b.Labels[i], t.Blank, dist))
	}
	return stats
}
