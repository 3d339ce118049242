// Package anyctc implements Connectionist Temporal
// Classification (CTC).
// For more information on CTC, see this paper:
// http://www.cs.toronto.edu/~graves/icml_2006.pdf.
//
// The core of the package is the Evaluator, which runs
// the forward-backward algorithm over the blank-infused
// label lattice and produces the log-likelihood of a
// label along with the error signal for the network's
// pre-softmax outputs.
// All of the dynamic programming is done in the log
// domain using the logspace package.
//
// The rest of the package wraps the Evaluator for
// training: an anydiff-compatible Cost, a batch Trainer,
// a per-utterance Driver, running loss statistics, and
// label decoders for measuring token error rates.
package anyctc
