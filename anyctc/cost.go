package anyctc

import (
	"errors"
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anydiff/anyseq"
	"github.com/unixpickle/anyvec"
)

// Cost computes the cost for a batch of output sequences.
// The cost for each sequence is the negative log
// likelihood of the corresponding label.
//
// The outputs are log-probabilities, with the blank
// symbol at the given index of every timestep.
// An empty sequence has zero cost for an empty label and
// infinite cost otherwise.
// A label with zero probability has infinite cost and no
// gradient.
// Any other sequence which cannot be evaluated (e.g.
// because it is too short for its label) causes a panic.
//
// Gradients are computed with the forward-backward
// algorithm rather than by differentiating through the
// forward pass.
//
// The anyvec.Creator must use an anyvec.NumericList type
// []float32 or []float64.
// No other numeric types are supported.
func Cost(seqs anyseq.Seq, labels [][]int, blank int) anydiff.Res {
	c := seqs.Creator()
	rawData := anyseq.SeparateSeqs(batchesTo64(seqs.Output()))
	if len(rawData) != len(labels) {
		panic("sequence count does not match label count")
	}
	e := NewEvaluator(blank)
	costs := make([]float64, len(rawData))
	lengths := make([]int, len(rawData))
	occupancy := make([][][]float64, len(rawData))
	for i, raw := range rawData {
		lengths[i] = len(raw)
		if len(raw) == 0 {
			if len(labels[i]) > 0 {
				costs[i] = math.Inf(1)
			}
			continue
		}
		logProbs := make([][]float64, len(raw))
		for t, vec := range raw {
			logProbs[t] = vec.Data().([]float64)
		}
		res, err := e.Eval(logProbs, labels[i])
		if errors.Is(err, ErrZeroLikelihood) {
			costs[i] = math.Inf(1)
			occupancy[i] = zeroRows(logProbs)
			continue
		} else if err != nil {
			panic(err)
		}
		costs[i] = -res.LogLikelihood
		occupancy[i] = res.Occupancy
	}
	return &costRes{
		In:        seqs,
		Lengths:   lengths,
		Occupancy: occupancy,
		OutVec:    c.MakeVectorData(c.MakeNumericList(costs)),
	}
}

type costRes struct {
	In        anyseq.Seq
	Lengths   []int
	Occupancy [][][]float64
	OutVec    anyvec.Vector
}

func (c *costRes) Output() anyvec.Vector {
	return c.OutVec
}

func (c *costRes) Vars() anydiff.VarSet {
	return c.In.Vars()
}

// Propagate back-propagates through the costs.
//
// The derivative of a cost with respect to the
// log-probability of a class at a timestep is the
// negative occupancy of that class.
func (c *costRes) Propagate(u anyvec.Vector, g anydiff.Grad) {
	cr := c.OutVec.Creator()
	upstream := vectorTo64(u).Data().([]float64)
	downstream := make([][]anyvec.Vector, len(c.Lengths))
	for i, length := range c.Lengths {
		rows := make([][]float64, length)
		for t := range rows {
			rows[t] = make([]float64, len(c.Occupancy[i][t]))
			for k, occ := range c.Occupancy[i][t] {
				rows[t][k] = -upstream[i] * occ
			}
		}
		downstream[i] = rowsFrom64(cr, rows)
	}
	joinedU := anyseq.ConstSeqList(cr, downstream).Output()
	c.In.Propagate(joinedU, g)
}

func zeroRows(like [][]float64) [][]float64 {
	res := make([][]float64, len(like))
	for i, row := range like {
		res[i] = make([]float64, len(row))
	}
	return res
}
