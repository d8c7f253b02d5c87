package prover

import "errors"

// Pipeline-level errors: all returned as values, never panics on the
// production path. Expression-evaluation errors (JointCombiner, Cell on an
// index column, linearization failures) are defined in package expr and
// surface here unwrapped from Linearize/Evaluate.
var (
	// ErrWitnessCsInconsistent is returned when a witness column's length
	// differs from |H|.
	ErrWitnessCsInconsistent = errors.New("prover: witness column length does not match |H|")

	// ErrPolyDivision is returned when dividing by the vanishing polynomial
	// of H (the quotient step) or by the permutation boundary polynomial
	// leaves a nonzero remainder — a circuit or witness bug.
	ErrPolyDivision = errors.New("prover: division by vanishing polynomial has nonzero remainder")

	// ErrProofCreation is returned when the grand-product closure condition
	// z[n] == 1 fails after the permutation aggregation pass.
	ErrProofCreation = errors.New("prover: grand-product polynomial does not close (z[n] != 1)")
)
