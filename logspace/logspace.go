// Package logspace implements arithmetic on probabilities
// stored as natural logarithms.
//
// Probability zero is represented by LogZero, a finite
// value far below any real log-probability.
// Every operation in this package maps LogZero and real
// log-probabilities back into that same set, so chains of
// operations never produce NaN or infinities.
package logspace

import "math"

// LogZero is the log of probability zero.
const LogZero = -1e30

// zeroThresh is the cutoff below which a value is treated
// as LogZero.
const zeroThresh = LogZero / 2

// addCutoff is the point past which the smaller operand
// of Add is lost to float64 rounding (exp(-36) ~ 2e-16).
const addCutoff = -36.0

// IsZero checks if x represents probability zero.
func IsZero(x float64) bool {
	return x <= zeroThresh
}

// SafeLog computes log(x), returning LogZero for x <= 0.
func SafeLog(x float64) float64 {
	if x <= 0 {
		return LogZero
	}
	return math.Log(x)
}

// SafeExp computes exp(x), returning 0 for x at or near
// LogZero.
func SafeExp(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return math.Exp(x)
}

// Mul multiplies two probabilities.
func Mul(a, b float64) float64 {
	if IsZero(a) || IsZero(b) {
		return LogZero
	}
	return a + b
}

// Div divides probability a by probability b.
//
// A zero numerator yields zero.
// Dividing a non-zero value by zero is a programmer error
// and panics.
func Div(a, b float64) float64 {
	if IsZero(a) {
		return LogZero
	}
	if IsZero(b) {
		panic("logspace: division by zero probability")
	}
	return clamp(a - b)
}

// Add adds two probabilities.
func Add(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if IsZero(b) {
		return clamp(a)
	}
	d := b - a
	if d < addCutoff {
		return a
	}
	return a + math.Log1p(math.Exp(d))
}

// Sub computes exp(a) - exp(b) in the log domain.
//
// The result is only meaningful when exp(a) >= exp(b).
// If exp(a) <= exp(b), LogZero is returned.
func Sub(a, b float64) float64 {
	if IsZero(b) {
		return clamp(a)
	}
	if a <= b {
		return LogZero
	}
	return clamp(a + math.Log1p(-math.Exp(b-a)))
}

func clamp(x float64) float64 {
	if IsZero(x) {
		return LogZero
	}
	return x
}
