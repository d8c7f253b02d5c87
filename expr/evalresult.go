package expr

import (
	"github.com/nume-crypto/kimchi-plonk/debug"
	"github.com/nume-crypto/kimchi-plonk/field"
)

// ResultKind discriminates the tagged union the binary operators dispatch
// on: a value may be a Constant, an owned Evals vector, or a SubEvals view
// borrowing someone else's vector at a stride/shift.
type ResultKind int

const (
	ResultConstant ResultKind = iota
	ResultEvals
	ResultSubEvals
)

// EvalResult is the evaluator's internal tagged union. SubEvals reads index
// stride*i + shift*spacing (mod len(Source)) of Source, where stride =
// Domain/target and spacing = Domain (the number of source points between
// consecutive H rows) — Domain here names the SOURCE domain the borrowed
// vector lives on. Scaling the row shift by the source's row spacing keeps
// "Next" pointing at the value one H row ahead on every target domain, and
// the mod-len wrap sends the last row's Next back to row 0, the cyclic
// access the permutation argument's closing step relies on.
type EvalResult[T any, PT field.Element[T]] struct {
	Kind ResultKind

	Constant T // ResultConstant

	Domain DomainTag // ResultEvals: this vector's own domain. ResultSubEvals: the borrowed vector's domain.
	Evals  []T       // ResultEvals: owned.

	Shift  int // ResultSubEvals: row shift, 0 (Curr) or 1 (Next).
	Source []T // ResultSubEvals: borrowed, not copied.
}

func NewConstantResult[T any, PT field.Element[T]](x T) EvalResult[T, PT] {
	return EvalResult[T, PT]{Kind: ResultConstant, Constant: x}
}

func NewEvalsResult[T any, PT field.Element[T]](tag DomainTag, vec []T) EvalResult[T, PT] {
	return EvalResult[T, PT]{Kind: ResultEvals, Domain: tag, Evals: vec}
}

func NewSubEvalsResult[T any, PT field.Element[T]](sourceDomain DomainTag, shift int, source []T) EvalResult[T, PT] {
	return EvalResult[T, PT]{Kind: ResultSubEvals, Domain: sourceDomain, Shift: shift, Source: source}
}

// readAt returns this result's value at index i of the target domain,
// aligning SubEvals views by the stride/shift rule: source index =
// stride*i + shift*spacing (mod len(Source)), stride = Domain/target,
// spacing = Domain.
func (r EvalResult[T, PT]) readAt(target DomainTag, i int) T {
	switch r.Kind {
	case ResultConstant:
		return r.Constant
	case ResultEvals:
		if debug.Debug && r.Domain != target {
			panic("expr: Evals operand domain does not match target domain")
		}
		return r.Evals[i]
	default:
		stride := int(r.Domain) / int(target)
		idx := (stride*i + r.Shift*int(r.Domain)) % len(r.Source)
		return r.Source[idx]
	}
}

// combine implements the nine-case binary-op dispatch uniformly: two
// Constants fold directly; any other combination materializes a fresh Evals
// vector on target by reading both operands through readAt, which already
// knows how to broadcast a Constant and how to stride-align a SubEvals.
func combine[T any, PT field.Element[T]](target DomainTag, hSize uint64, a, b EvalResult[T, PT], op func(x, y T) T) EvalResult[T, PT] {
	if a.Kind == ResultConstant && b.Kind == ResultConstant {
		return NewConstantResult[T, PT](op(a.Constant, b.Constant))
	}
	n := int(target.Size(hSize))
	vec := make([]T, n)
	for i := 0; i < n; i++ {
		vec[i] = op(a.readAt(target, i), b.readAt(target, i))
	}
	return NewEvalsResult[T, PT](target, vec)
}

func AddResults[T any, PT field.Element[T]](target DomainTag, hSize uint64, a, b EvalResult[T, PT]) EvalResult[T, PT] {
	return combine[T, PT](target, hSize, a, b, field.Add[T, PT])
}

func SubResults[T any, PT field.Element[T]](target DomainTag, hSize uint64, a, b EvalResult[T, PT]) EvalResult[T, PT] {
	return combine[T, PT](target, hSize, a, b, field.Sub[T, PT])
}

func MulResults[T any, PT field.Element[T]](target DomainTag, hSize uint64, a, b EvalResult[T, PT]) EvalResult[T, PT] {
	return combine[T, PT](target, hSize, a, b, field.Mul[T, PT])
}
