package anyctc

import (
	"fmt"

	"github.com/unixpickle/anydiff/anyseq"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
)

var internalCreator = anyvec64.DefaultCreator{}

// vectorTo64 creates a vector with []float64 numeric list
// types.
func vectorTo64(v anyvec.Vector) anyvec.Vector {
	switch d := v.Data().(type) {
	case []float64:
		return internalCreator.MakeVectorData(d)
	case []float32:
		s := make([]float64, len(d))
		for i, x := range d {
			s[i] = float64(x)
		}
		return internalCreator.MakeVectorData(s)
	default:
		panic(fmt.Sprintf("unsupported numeric type: %T", d))
	}
}

// batchesTo64 converts a batch sequence to use []float64
// numeric lists so that rows can be read directly.
func batchesTo64(v []*anyseq.Batch) []*anyseq.Batch {
	res := make([]*anyseq.Batch, len(v))
	for i, x := range v {
		res[i] = &anyseq.Batch{
			Packed:  vectorTo64(x.Packed),
			Present: x.Present,
		}
	}
	return res
}

// rowsFrom64 converts rows of a sequence into vectors for
// the creator c.
func rowsFrom64(c anyvec.Creator, rows [][]float64) []anyvec.Vector {
	res := make([]anyvec.Vector, len(rows))
	for i, row := range rows {
		res[i] = c.MakeVectorData(c.MakeNumericList(row))
	}
	return res
}
