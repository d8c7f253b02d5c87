// Package debug exposes a single switch gating internal invariant checks
// that are too expensive, or too implementation-specific, to run
// unconditionally.
package debug

// Debug gates internal-invariant panics that indicate a programming error
// rather than a recoverable fault: currently the Evals-operand domain-tag
// check in the EvalResult algebra. The degree-exceeds-8|H| panic in
// Expr.Evaluations is not gated and always fires. Flip to true when chasing
// a miscompiled expression.
const Debug = false
