package logspace

import (
	"math"
	"testing"
)

func TestSafeLogExp(t *testing.T) {
	if SafeLog(0) != LogZero || SafeLog(-3) != LogZero {
		t.Error("non-positive input should map to LogZero")
	}
	if SafeExp(LogZero) != 0 {
		t.Error("LogZero should map to 0")
	}
	for _, x := range []float64{1e-8, 0.1, 0.5, 1, 7} {
		if a := SafeExp(SafeLog(x)); math.Abs(a-x)/x > 1e-12 {
			t.Errorf("round trip of %e gave %e", x, a)
		}
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"regular", 0.1, 0.2, 0.1 * 0.2},
		{"tiny", 0.00000001, 0.00000002, 0.00000001 * 0.00000002},
		{"zero", 0, 0.2, 0},
		{"both_zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeExp(Mul(SafeLog(tt.a), SafeLog(tt.b)))
			if math.Abs(got-tt.want) > 1e-12*math.Max(1, tt.want) {
				t.Errorf("Mul() = %e, want %e", got, tt.want)
			}
		})
	}
	if Mul(LogZero, 5) != LogZero {
		t.Error("LogZero should absorb under Mul")
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{"regular", 0.3, 0.2},
		{"swapped", 0.2, 0.3},
		{"equal", 0.25, 0.25},
		{"far_apart", 1, 1e-20},
		{"left_zero", 0, 0.4},
		{"right_zero", 0.4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeExp(Add(SafeLog(tt.a), SafeLog(tt.b)))
			if want := tt.a + tt.b; math.Abs(got-want) > 1e-12 {
				t.Errorf("Add() = %e, want %e", got, want)
			}
		})
	}
	if Add(LogZero, LogZero) != LogZero {
		t.Error("zero plus zero should be zero")
	}
	if x := Add(-2, LogZero); x != -2 {
		t.Errorf("adding zero changed the value to %f", x)
	}
	big := Add(-1000, -1000)
	if math.Abs(big-(-1000+math.Ln2)) > 1e-9 {
		t.Errorf("underflow-range add gave %f", big)
	}
}

func TestSubDiv(t *testing.T) {
	got := SafeExp(Sub(SafeLog(0.5), SafeLog(0.2)))
	if math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Sub gave %e", got)
	}
	if Sub(SafeLog(0.2), SafeLog(0.5)) != LogZero {
		t.Error("negative difference should be LogZero")
	}
	if Sub(SafeLog(0.2), SafeLog(0.2)) != LogZero {
		t.Error("zero difference should be LogZero")
	}
	if Sub(-1, LogZero) != -1 {
		t.Error("subtracting zero changed the value")
	}
	got = SafeExp(Div(SafeLog(0.1), SafeLog(0.4)))
	if math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Div gave %e", got)
	}
	if Div(LogZero, -3) != LogZero {
		t.Error("zero numerator should stay zero")
	}
}

func TestNoNaN(t *testing.T) {
	vals := []float64{LogZero, -1e4, -30, -1, 0}
	for _, a := range vals {
		for _, b := range vals {
			for _, x := range []float64{Add(a, b), Mul(a, b), Sub(a, b)} {
				if math.IsNaN(x) || math.IsInf(x, 0) || x < LogZero {
					t.Errorf("a=%g b=%g: got %g", a, b, x)
				}
			}
		}
	}
}
