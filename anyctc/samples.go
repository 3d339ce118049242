package anyctc

import (
	"errors"

	"github.com/unixpickle/anyvec"
)

// A Sample is a training sequence paired with its
// corresponding label.
type Sample struct {
	Input []anyvec.Vector
	Label []int
}

// A SampleList is a list of CTC samples.
type SampleList interface {
	Len() int
	GetSample(idx int) (*Sample, error)
	Creator() anyvec.Creator
}

// A SliceSampleList is a concrete SampleList with
// predetermined samples.
type SliceSampleList struct {
	Samples []*Sample
	C       anyvec.Creator
}

// Len returns the number of samples.
func (s *SliceSampleList) Len() int {
	return len(s.Samples)
}

// GetSample returns the sample at the index.
func (s *SliceSampleList) GetSample(idx int) (*Sample, error) {
	if idx < 0 || idx >= len(s.Samples) {
		return nil, errors.New("get sample: index out of range")
	}
	return s.Samples[idx], nil
}

// Creator returns the creator of the sample vectors.
func (s *SliceSampleList) Creator() anyvec.Creator {
	return s.C
}
