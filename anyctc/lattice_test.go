package anyctc

import (
	"errors"
	"testing"
)

func TestRequiredFrames(t *testing.T) {
	tests := []struct {
		name  string
		label []int
		want  int
	}{
		{"empty", nil, 0},
		{"distinct", []int{1, 2, 3}, 3},
		{"repeat", []int{1, 1}, 3},
		{"mixed", []int{1, 1, 2, 2, 2, 1}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiredFrames(tt.label); got != tt.want {
				t.Errorf("RequiredFrames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSegmentRange(t *testing.T) {
	for labelLen := 0; labelLen < 6; labelLen++ {
		for frames := labelLen; frames < labelLen+6; frames++ {
			if frames == 0 {
				continue
			}
			l := &Lattice{Label: make([]int, labelLen), Frames: frames}
			lastStart, lastEnd := 0, 0
			for ts := 0; ts < frames; ts++ {
				start, end := l.SegmentRange(ts)
				if start > end || end-start > l.Width() {
					t.Fatalf("L=%d T=%d t=%d: bad range [%d, %d)", labelLen, frames,
						ts, start, end)
				}
				if start == end {
					t.Errorf("L=%d T=%d t=%d: empty range", labelLen, frames, ts)
				}
				if start < lastStart || end < lastEnd {
					t.Errorf("L=%d T=%d t=%d: range [%d, %d) went backwards",
						labelLen, frames, ts, start, end)
				}
				lastStart, lastEnd = start, end
			}
			if lastEnd < l.Width()-1 {
				t.Errorf("L=%d T=%d: last range ends at %d", labelLen, frames, lastEnd)
			}
		}
	}
}

func TestSegmentRangeExact(t *testing.T) {
	l := &Lattice{Label: []int{3, 1, 2, 4}, Frames: 5}
	expected := [][2]int{{0, 2}, {1, 4}, {3, 6}, {5, 8}, {7, 9}}
	for ts, x := range expected {
		start, end := l.SegmentRange(ts)
		if start != x[0] || end != x[1] {
			t.Errorf("t=%d: expected %v but got [%d, %d)", ts, x, start, end)
		}
	}
}

func TestLatticeCheck(t *testing.T) {
	tests := []struct {
		name    string
		lattice Lattice
		classes int
		err     error
	}{
		{"ok", Lattice{Label: []int{1, 2}, Frames: 2}, 3, nil},
		{"empty_label", Lattice{Frames: 1}, 3, nil},
		{"no_frames", Lattice{Label: []int{1}}, 3, ErrEmptyInput},
		{"blank_label", Lattice{Label: []int{0}, Frames: 3}, 3, ErrBadLabel},
		{"out_of_range", Lattice{Label: []int{3}, Frames: 3}, 3, ErrBadLabel},
		{"negative", Lattice{Label: []int{-1}, Frames: 3}, 3, ErrBadLabel},
		{"repeat", Lattice{Label: []int{1, 1}, Frames: 2}, 3, ErrTooFewFrames},
		{"repeat_ok", Lattice{Label: []int{1, 1}, Frames: 3}, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lattice.Check(tt.classes)
			if tt.err == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			} else if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("expected %v but got %v", tt.err, err)
			}
		})
	}
}
