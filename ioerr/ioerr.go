// Package ioerr defines the error taxonomy shared by the distribution,
// transition, and iohmm packages: construction-time invariant violations,
// runtime domain violations, and diagnostic degeneracy during training.
// Call sites wrap one of these sentinels with fmt.Errorf's %w verb so
// callers can still recover the kind with errors.Is.
package ioerr

import "errors"

var (
	// ErrInvalidInput marks a construction-time violation of a structural
	// invariant: wrong length, negative probability, non-positive sigma,
	// probabilities not summing to one within tolerance, N < 1, and so on.
	ErrInvalidInput = errors.New("ioerr: invalid input")

	// ErrOutOfDomain marks a runtime query at a value outside the
	// distribution's declared support.
	ErrOutOfDomain = errors.New("ioerr: value out of domain")

	// ErrDegenerate marks a training step where the forward/backward
	// normalizer vanished. It is always handled locally -- the affected
	// time step is skipped -- and is exposed only through diagnostics
	// such as iohmm.MealyIOHMM.Warnings, never returned from Train.
	ErrDegenerate = errors.New("ioerr: degenerate model")
)
