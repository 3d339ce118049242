// Command toyctc trains a linear softmax model with CTC on
// synthetic, unaligned sequences.
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/hechangqing/lab/anyctc"
	"github.com/hechangqing/lab/editdist"
	"github.com/hechangqing/lab/targets"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
)

const (
	NumClasses   = 6
	Blank        = 0
	NoiseStddev  = 0.5
	LearningRate = 0.05
	NumEpochs    = 10
	TrainCount   = 300
	TestCount    = 50
)

var Creator anyvec.Creator = anyvec64.CurrentCreator()

func main() {
	log.Println("Setting up...")

	trainSet, trainTargets := randomUtterances(TrainCount)
	testSet, testTargets := randomUtterances(TestCount)
	net := newProjection(NumClasses, NumClasses, LearningRate)

	for epoch := 0; epoch < NumEpochs; epoch++ {
		rand.Shuffle(len(trainSet), func(i, j int) {
			trainSet[i], trainSet[j] = trainSet[j], trainSet[i]
		})
		driver := anyctc.NewDriver(net, Blank, editdist.Distance, anyctc.DriverOptions{
			ReportStep: -1,
			Logger:     log.New(io.Discard, "", 0),
		})
		corpus := &targets.Corpus{
			Features: &sliceCorpus{utts: trainSet},
			Targets:  trainTargets,
		}
		if _, err := driver.Run(corpus); err != nil {
			log.Fatal(err)
		}
		total := driver.Progress.Total
		log.Printf("epoch %d: loss=%f TER=%.2f%%", epoch,
			total.NegLogLikelihood/float64(total.Sequences), total.TokenErrorRate())
	}

	log.Println("Cross-validating...")
	driver := anyctc.NewDriver(net, Blank, editdist.Distance, anyctc.DriverOptions{
		CrossValidate: true,
	})
	corpus := &targets.Corpus{
		Features: &sliceCorpus{utts: testSet},
		Targets:  testTargets,
	}
	if _, err := driver.Run(corpus); err != nil {
		log.Fatal(err)
	}
}

// projection is a single linear layer followed by a
// softmax.
type projection struct {
	Weights  *anydiff.Var
	Biases   *anydiff.Var
	InCount  int
	OutCount int
	Rate     float64

	logits anydiff.Res
}

func newProjection(in, out int, rate float64) *projection {
	res := &projection{
		Weights:  anydiff.NewVar(Creator.MakeVector(in * out)),
		Biases:   anydiff.NewVar(Creator.MakeVector(out)),
		InCount:  in,
		OutCount: out,
		Rate:     rate,
	}
	anyvec.Rand(res.Weights.Vector, anyvec.Normal, nil)
	res.Weights.Vector.Scale(Creator.MakeNumeric(0.1))
	return res
}

func (p *projection) Propagate(features [][]float64) [][]float64 {
	var flat []float64
	for _, row := range features {
		flat = append(flat, row...)
	}
	in := anydiff.NewConst(Creator.MakeVectorData(Creator.MakeNumericList(flat)))
	weighted := anydiff.MatMul(false, true,
		&anydiff.Matrix{Data: in, Rows: len(features), Cols: p.InCount},
		&anydiff.Matrix{Data: p.Weights, Rows: p.OutCount, Cols: p.InCount})
	p.logits = anydiff.AddRepeated(weighted.Data, p.Biases)

	probs := anydiff.Exp(anydiff.LogSoftmax(p.logits, p.OutCount)).Output()
	data := probs.Data().([]float64)
	res := make([][]float64, len(features))
	for i := range res {
		res[i] = data[i*p.OutCount : (i+1)*p.OutCount]
	}
	return res
}

func (p *projection) Backpropagate(diff [][]float64) {
	var flat []float64
	for _, row := range diff {
		flat = append(flat, row...)
	}
	grad := anydiff.NewGrad(p.Weights, p.Biases)
	p.logits.Propagate(Creator.MakeVectorData(Creator.MakeNumericList(flat)), grad)
	grad.Scale(Creator.MakeNumeric(-p.Rate))
	grad.AddToVars()
}

type sliceCorpus struct {
	utts []*anyctc.Utterance
	idx  int
}

func (s *sliceCorpus) Next() (*anyctc.Utterance, error) {
	if s.idx == len(s.utts) {
		return nil, io.EOF
	}
	s.idx++
	return s.utts[s.idx-1], nil
}

// randomUtterances generates labels and noisy one-hot
// features for a random alignment of each label.
func randomUtterances(n int) ([]*anyctc.Utterance, targets.Archive) {
	res := make([]*anyctc.Utterance, n)
	labels := targets.Archive{}
	for i := range res {
		label := make([]int, 2+rand.Intn(4))
		for j := range label {
			label[j] = 1 + rand.Intn(NumClasses-1)
		}
		var path []int
		for j, x := range label {
			blanks := rand.Intn(3)
			if j > 0 && label[j-1] == x && blanks == 0 {
				blanks = 1
			}
			for k := 0; k < blanks; k++ {
				path = append(path, Blank)
			}
			repeats := 1 + rand.Intn(3)
			for k := 0; k < repeats; k++ {
				path = append(path, x)
			}
		}
		path = append(path, Blank)
		features := make([][]float64, len(path))
		for t, x := range path {
			features[t] = make([]float64, NumClasses)
			for k := range features[t] {
				features[t][k] = rand.NormFloat64() * NoiseStddev
			}
			features[t][x]++
		}
		key := fmt.Sprintf("utt%04d", i)
		res[i] = &anyctc.Utterance{Key: key, Features: features}
		labels[key] = label
	}
	return res, labels
}
