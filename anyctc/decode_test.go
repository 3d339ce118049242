package anyctc

import (
	"reflect"
	"testing"

	"github.com/hechangqing/lab/editdist"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name     string
		path     []int
		blank    int
		expected []int
	}{
		{"mixed", []int{0, 1, 1, 2, 0, 3, 3, 0}, 0, []int{1, 2, 3}},
		{"repeat_split", []int{1, 0, 1, 1}, 0, []int{1, 1}},
		{"all_blank", []int{2, 2, 2}, 2, nil},
		{"last_blank", []int{0, 2, 1, 1, 2}, 2, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := Collapse(tt.path, tt.blank); !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("expected %v but got %v", tt.expected, actual)
			}
		})
	}
}

func TestGreedyLabels(t *testing.T) {
	path := []int{0, 1, 1, 2, 0, 3, 3, 0}
	outs := make([][]float64, len(path))
	for i, x := range path {
		outs[i] = []float64{0.1, 0.1, 0.1, 0.1}
		outs[i][x] = 0.7
	}
	if actual := GreedyLabels(outs, 0); !reflect.DeepEqual(actual, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3] but got %v", actual)
	}
}

func TestDecodeAndScore(t *testing.T) {
	outs := [][]float64{
		{0.1, 0.8, 0.1},
		{0.8, 0.1, 0.1},
		{0.1, 0.1, 0.8},
		{0.1, 0.1, 0.8},
	}
	score := DecodeAndScore(outs, []int{1, 1, 2, 1}, 0, editdist.Distance)
	if !reflect.DeepEqual(score.Hyp, []int{1, 2}) {
		t.Errorf("unexpected hypothesis: %v", score.Hyp)
	}
	if score.Errors != 2 || score.Deletions != 2 || score.RefTokens != 4 {
		t.Errorf("unexpected score: %+v", score)
	}
	if score.Rate() != 50 {
		t.Errorf("expected rate 50 but got %f", score.Rate())
	}

	empty := DecodeAndScore(outs[1:2], nil, 0, editdist.Distance)
	if empty.Rate() != 0 {
		t.Errorf("expected rate 0 but got %f", empty.Rate())
	}
}
