package expr

import "errors"

// Expression-evaluation errors: all recoverable, returned as values, never
// panics on the production path.
var (
	// ErrJointCombinerUnsupported is returned by scalar Evaluate whenever it
	// encounters a JointCombiner node. The expression algebra carries the
	// variant; this evaluator deliberately does not implement it, and the
	// error path is required behavior, not a best-effort fallback.
	ErrJointCombinerUnsupported = errors.New("expr: JointCombiner is not supported in scalar evaluation")

	// ErrCellIndexColumn is returned when Cell names a LookupKindIndex or
	// Index column at scalar-evaluation time — those columns must have been
	// removed by linearization before evaluate() is ever called on them.
	ErrCellIndexColumn = errors.New("expr: Cell refers to an index/lookup-kind column at scalar evaluation")

	// ErrLinearizationFailed is returned when a monomial has more than one
	// unevaluated variable: linearization around a single challenge can only
	// resolve a term to one column's polynomial.
	ErrLinearizationFailed = errors.New("expr: linearization failed: monomial has more than one unevaluated variable")

	// ErrLinearizationNeedsNextRow is returned when the lone unevaluated
	// variable in a monomial is read at the Next row: the linearized form
	// only has a slot for a Curr-row index term per column.
	ErrLinearizationNeedsNextRow = errors.New("expr: linearization failed: needed polynomial value at Next row")
)
