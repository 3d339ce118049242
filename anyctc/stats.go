package anyctc

import (
	"fmt"
	"math"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var s Stats
	serializer.RegisterTypedDeserializer(s.SerializerType(), DeserializeStats)
}

// Stats accumulates loss and token error statistics over
// many evaluated sequences.
//
// A Stats is owned by the caller and is only changed by
// its own methods, so workers can each keep a Stats and
// Merge them afterwards.
type Stats struct {
	Sequences int
	Frames    int

	// NegLogLikelihood is the total negative
	// log-likelihood of every evaluated label.
	NegLogLikelihood float64

	// Likelihood is the total probability of every
	// evaluated label.
	Likelihood float64

	RefTokens int
	ErrTokens int
}

// DeserializeStats deserializes a Stats.
func DeserializeStats(d []byte) (*Stats, error) {
	var seqs, frames, refs, errs serializer.Int
	var nll, like serializer.Float64
	err := serializer.DeserializeAny(d, &seqs, &frames, &nll, &like, &refs, &errs)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Stats", err)
	}
	return &Stats{
		Sequences:        int(seqs),
		Frames:           int(frames),
		NegLogLikelihood: float64(nll),
		Likelihood:       float64(like),
		RefTokens:        int(refs),
		ErrTokens:        int(errs),
	}, nil
}

// AddResult adds the loss from an evaluated sequence.
func (s *Stats) AddResult(r *Result) {
	s.Sequences++
	s.Frames += r.Frames
	s.NegLogLikelihood -= r.LogLikelihood
	s.Likelihood += math.Exp(r.LogLikelihood)
}

// AddScore adds the token errors from a decoded sequence.
func (s *Stats) AddScore(t *TokenScore) {
	s.RefTokens += t.RefTokens
	s.ErrTokens += t.Errors
}

// Merge adds the statistics from other into s.
func (s *Stats) Merge(other *Stats) {
	s.Sequences += other.Sequences
	s.Frames += other.Frames
	s.NegLogLikelihood += other.NegLogLikelihood
	s.Likelihood += other.Likelihood
	s.RefTokens += other.RefTokens
	s.ErrTokens += other.ErrTokens
}

// Reset clears all of the statistics.
func (s *Stats) Reset() {
	*s = Stats{}
}

// TokenErrorRate returns the token error rate as a
// percentage, or 0 if no tokens were scored.
func (s *Stats) TokenErrorRate() float64 {
	if s.RefTokens == 0 {
		return 0
	}
	return 100 * float64(s.ErrTokens) / float64(s.RefTokens)
}

// Report generates a human-readable summary.
func (s *Stats) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sequences: %d, Frames: %d\n", s.Sequences, s.Frames)
	fmt.Fprintf(&b, "Total Loss: %g", s.NegLogLikelihood)
	if s.Sequences > 0 && s.Frames > 0 {
		fmt.Fprintf(&b, " (%g per sequence, %g per frame)",
			s.NegLogLikelihood/float64(s.Sequences),
			s.NegLogLikelihood/float64(s.Frames))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total Likelihood: %g\n", s.Likelihood)
	if s.RefTokens > 0 {
		fmt.Fprintf(&b, "Token Error Rate: %.2f%% (%d errors, %d tokens)\n",
			s.TokenErrorRate(), s.ErrTokens, s.RefTokens)
	}
	return b.String()
}

// SerializerType returns the unique ID used to serialize
// Stats with the serializer package.
func (s *Stats) SerializerType() string {
	return "github.com/hechangqing/lab/anyctc.Stats"
}

// Serialize serializes the statistics.
func (s *Stats) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		serializer.Int(s.Sequences),
		serializer.Int(s.Frames),
		serializer.Float64(s.NegLogLikelihood),
		serializer.Float64(s.Likelihood),
		serializer.Int(s.RefTokens),
		serializer.Int(s.ErrTokens),
	)
}
