package editdist

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name          string
		ref, hyp      []int
		errs          int
		ins, del, sub int
	}{
		{"identical", []int{1, 2}, []int{1, 2}, 0, 0, 0, 0},
		{"empty_both", nil, nil, 0, 0, 0, 0},
		{"empty_ref", nil, []int{1, 2}, 2, 2, 0, 0},
		{"empty_hyp", []int{1}, nil, 1, 0, 1, 0},
		{"substitution", []int{5, 1}, []int{6, 1}, 1, 0, 0, 1},
		{"insertion", []int{5, 1}, []int{5, 1, 2}, 1, 1, 0, 0},
		{"deletion", []int{5, 1, 2}, []int{5, 1}, 1, 0, 1, 0},
		{"leading_deletion", []int{7, 1, 2, 1}, []int{1, 2, 1}, 1, 0, 1, 0},
		{"mixed", []int{1, 2, 3, 4, 5}, []int{1, 9, 3, 5, 6}, 3, 0, 0, 3},
		{"shifted", []int{1, 2, 3}, []int{2, 3, 4}, 2, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ins, del, sub := Distance(tt.ref, tt.hyp)
			if errs != tt.errs {
				t.Errorf("errs = %d, want %d", errs, tt.errs)
			}
			if ins != tt.ins || del != tt.del || sub != tt.sub {
				t.Errorf("(ins, del, sub) = (%d, %d, %d), want (%d, %d, %d)",
					ins, del, sub, tt.ins, tt.del, tt.sub)
			}
			if ins+del+sub != errs {
				t.Errorf("breakdown %d+%d+%d does not add up to %d", ins, del, sub, errs)
			}
		})
	}
}
