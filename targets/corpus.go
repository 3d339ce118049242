package targets

import "github.com/hechangqing/lab/anyctc"

// A Corpus attaches labels from an Archive to the
// utterances of a feature corpus by key.
//
// Utterances whose key is not in the archive come out
// with a nil Label, which the anyctc.Driver reports as
// missing targets.
type Corpus struct {
	Features anyctc.Corpus
	Targets  Archive
}

// Next returns the next utterance with its label.
func (c *Corpus) Next() (*anyctc.Utterance, error) {
	utt, err := c.Features.Next()
	if err != nil {
		return nil, err
	}
	res := *utt
	res.Label = nil
	if label, ok := c.Targets[utt.Key]; ok {
		res.Label = label
		if res.Label == nil {
			res.Label = []int{}
		}
	}
	return &res, nil
}
