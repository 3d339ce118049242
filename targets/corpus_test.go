package targets

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/hechangqing/lab/anyctc"
)

type featureCorpus struct {
	utts []*anyctc.Utterance
}

func (f *featureCorpus) Next() (*anyctc.Utterance, error) {
	if len(f.utts) == 0 {
		return nil, io.EOF
	}
	u := f.utts[0]
	f.utts = f.utts[1:]
	return u, nil
}

func TestCorpus(t *testing.T) {
	archive, err := ReadArchive(strings.NewReader("utt1 3 1 2\nutt3 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	features := [][]float64{{0.5, 0.5}}
	corpus := &Corpus{
		Features: &featureCorpus{utts: []*anyctc.Utterance{
			{Key: "utt1", Features: features},
			{Key: "utt2", Features: features, Label: []int{9}},
			{Key: "utt3", Features: features},
		}},
		Targets: archive,
	}
	expected := [][]int{{3, 1, 2}, nil, {2}}
	for i, label := range expected {
		utt, err := corpus.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(utt.Label, label) {
			t.Errorf("utterance %d: expected label %v but got %v", i, label, utt.Label)
		}
		if len(utt.Features) != 1 {
			t.Errorf("utterance %d: features were not kept", i)
		}
	}
	if _, err := corpus.Next(); err != io.EOF {
		t.Errorf("expected io.EOF but got %v", err)
	}
}
