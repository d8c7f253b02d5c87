package prover

import (
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/field"
)

// AlphaRange names a contiguous slice of alpha powers (alphaStart, count)
// dedicated to one gate family, so that no two families ever share a power
// of alpha in the combined constraint sum.
type AlphaRange struct {
	Start int
	Count int
}

// AlphaRanges is the fixed table: one AlphaRange per gate family, assigned
// consecutively so no two families ever share a power of alpha.
type AlphaRanges struct {
	Perm   AlphaRange
	Generic AlphaRange
	Psdn   AlphaRange
	Add    AlphaRange
	Dbl    AlphaRange
	Endml  AlphaRange
	Mul    AlphaRange
}

// How many distinct constraints (and thus how many consecutive alpha
// powers) each family needs. PSDN/ADD/DBL/ENDML/MUL carry representative
// checks rather than a full per-round/per-bit decomposition; their counts
// reserve the alpha powers those checks use.
const (
	countPerm    = 2
	countGeneric = 2
	countPsdn    = 3
	countAdd     = 1
	countDbl     = 1
	countEndml   = 1
	countMul     = 1
)

// ComputeAlphaRanges assigns consecutive alpha powers to each family in a
// fixed order (PERM, GENERIC, PSDN, ADD, DBL, ENDML, MUL).
func ComputeAlphaRanges() AlphaRanges {
	next := 0
	take := func(count int) AlphaRange {
		r := AlphaRange{Start: next, Count: count}
		next += count
		return r
	}
	return AlphaRanges{
		Perm:    take(countPerm),
		Generic: take(countGeneric),
		Psdn:    take(countPsdn),
		Add:     take(countAdd),
		Dbl:     take(countDbl),
		Endml:   take(countEndml),
		Mul:     take(countMul),
	}
}

// addConstraints builds the curve-addition-family constraint: a stand-in
// for the collinearity check a real EC-add gate performs, gated by its
// selector so it only contributes when the row is actually an addition row
// (an absent gate selector makes this a no-op everywhere else).
func addConstraints[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	sel := expr.Cell[T, PT](expr.Variable{Col: expr.IndexColumn(expr.GateAdd), Row: expr.Curr})
	lhs := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(2), Row: expr.Curr})
	rhs := expr.Add[T, PT](
		expr.Cell[T, PT](expr.Variable{Col: expr.Witness(0), Row: expr.Curr}),
		expr.Cell[T, PT](expr.Variable{Col: expr.Witness(1), Row: expr.Curr}),
	)
	return []*expr.Expr[T, PT]{expr.Mul[T, PT](sel, expr.Sub[T, PT](lhs, rhs))}
}

// doubleConstraints is the curve-doubling family's representative
// constraint: output column equals twice the input column, gated.
func doubleConstraints[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	sel := expr.Cell[T, PT](expr.Variable{Col: expr.IndexColumn(expr.GateDouble), Row: expr.Curr})
	in := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(0), Row: expr.Curr})
	out := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(1), Row: expr.Curr})
	two := expr.Mul[T, PT](expr.Constant[T, PT](field.FromUint64[T, PT](2)), in)
	return []*expr.Expr[T, PT]{expr.Mul[T, PT](sel, expr.Sub[T, PT](out, two))}
}

// endoMulConstraints is the endomorphism-scalar-multiplication family's
// representative bit constraint: the selected bit column is boolean
// (b*(b-1) = 0), gated.
func endoMulConstraints[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	sel := expr.Cell[T, PT](expr.Variable{Col: expr.IndexColumn(expr.GateEndoMul), Row: expr.Curr})
	b := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(3), Row: expr.Curr})
	bMinus1 := expr.Sub[T, PT](b, expr.Constant[T, PT](field.One[T, PT]()))
	return []*expr.Expr[T, PT]{expr.Mul[T, PT](sel, expr.Mul[T, PT](b, bMinus1))}
}

// mulConstraints is the scalar-multiplication family's representative bit
// constraint, same boolean shape as endoMul but gated on its own selector
// and column so the two families stay independent.
func mulConstraints[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	sel := expr.Cell[T, PT](expr.Variable{Col: expr.IndexColumn(expr.GateMul), Row: expr.Curr})
	b := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(4), Row: expr.Curr})
	bMinus1 := expr.Sub[T, PT](b, expr.Constant[T, PT](field.One[T, PT]()))
	return []*expr.Expr[T, PT]{expr.Mul[T, PT](sel, expr.Mul[T, PT](b, bMinus1))}
}

// poseidonConstraints is the Poseidon-hash family's representative
// constraints: three "one S-box round" checks (out = in^2, standing in for
// a full multi-round permutation decomposition), each gated by the shared
// Poseidon selector.
func poseidonConstraints[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	sel := expr.Cell[T, PT](expr.Variable{Col: expr.IndexColumn(expr.GatePoseidon), Row: expr.Curr})
	cs := make([]*expr.Expr[T, PT], countPsdn)
	for i := 0; i < countPsdn; i++ {
		in := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(i), Row: expr.Curr})
		out := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(i), Row: expr.Next})
		sq := expr.Mul[T, PT](in, in)
		cs[i] = expr.Mul[T, PT](sel, expr.Sub[T, PT](out, sq))
	}
	return cs
}

// genericConstraints is the GENERIC gate family, in a reduced form of the
// classic PLONK combination: ql*l + qr*r + qm*l*r + o, plus a second
// constraint that is the public-input column Witness(5) at row Curr. Only ql
// is an Index selector column; qr and qm are read from the witness columns
// Witness(3) and Witness(4), o carries no qo selector, and there is no
// constant qc term.
func genericConstraints[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	l := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(0), Row: expr.Curr})
	r := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(1), Row: expr.Curr})
	o := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(2), Row: expr.Curr})
	ql := expr.Cell[T, PT](expr.Variable{Col: expr.IndexColumn(expr.GateGeneric), Row: expr.Curr})
	qr := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(3), Row: expr.Curr})
	qm := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(4), Row: expr.Curr})
	main := expr.Add[T, PT](
		expr.Add[T, PT](expr.Mul[T, PT](ql, l), expr.Mul[T, PT](qr, r)),
		expr.Add[T, PT](expr.Mul[T, PT](qm, expr.Mul[T, PT](l, r)), o),
	)
	pub := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(5), Row: expr.Curr})
	return []*expr.Expr[T, PT]{main, pub}
}

// permConstraint is the permutation-argument family, in two parts: the
// grand-product recurrence (row Curr's z times the id-shifted product must
// equal row Next's z times the sigma-shifted product), and the boundary
// condition z(1)=1 expressed via the unnormalized Lagrange basis at index 0,
// folded directly into the unified constraint sum instead of added to t as
// a separate post-hoc polynomial. A single column is permuted: W0 is the
// one witness column this argument protects, and Sigma(0) is its
// precomputed sigma polynomial — a column kind the linearizer leaves
// unevaluated (as it does the gate selectors), so its IndexTerm folds onto
// ConstraintSystem.SigmaLast.
// "sid" reuses the same unnormalized Lagrange basis node the boundary
// needs: it evaluates to zero on H except at row 0, which is exactly the
// id-column evaluated on H for a single-column, zero-coset-shift
// permutation (computeGrandProduct builds the scalar side from the
// identical UnnormalizedLagrangeEvals call so both sides of the quotient
// division agree).
func permConstraint[T any, PT field.Element[T]]() []*expr.Expr[T, PT] {
	beta := expr.Beta[T, PT]()
	gamma := expr.Gamma[T, PT]()
	w0 := expr.Cell[T, PT](expr.Variable{Col: expr.Witness(0), Row: expr.Curr})
	zCurr := expr.Cell[T, PT](expr.Variable{Col: expr.Z(), Row: expr.Curr})
	zNext := expr.Cell[T, PT](expr.Variable{Col: expr.Z(), Row: expr.Next})
	sid := expr.UnnormalizedLagrangeBasis[T, PT](0)
	sigma := expr.Cell[T, PT](expr.Variable{Col: expr.Sigma(0), Row: expr.Curr})

	num := expr.Mul[T, PT](zCurr, expr.Add[T, PT](expr.Add[T, PT](w0, expr.Mul[T, PT](beta, sid)), gamma))
	den := expr.Mul[T, PT](zNext, expr.Add[T, PT](expr.Add[T, PT](w0, expr.Mul[T, PT](beta, sigma)), gamma))
	recurrence := expr.Sub[T, PT](num, den)

	boundary := expr.Mul[T, PT](expr.Sub[T, PT](zCurr, expr.Constant[T, PT](field.One[T, PT]())), sid)

	return []*expr.Expr[T, PT]{recurrence, boundary}
}

// CombinedConstraint builds the full constraint-sum expression:
// each family's constraints in turn, each combined at its AlphaRange's
// starting power via CombineConstraints, all summed together. This is the
// single expression evaluated/linearized across the rest of the pipeline.
func CombinedConstraint[T any, PT field.Element[T]](ranges AlphaRanges) *expr.Expr[T, PT] {
	families := []struct {
		r  AlphaRange
		cs []*expr.Expr[T, PT]
	}{
		{ranges.Perm, permConstraint[T, PT]()},
		{ranges.Generic, genericConstraints[T, PT]()},
		{ranges.Psdn, poseidonConstraints[T, PT]()},
		{ranges.Add, addConstraints[T, PT]()},
		{ranges.Dbl, doubleConstraints[T, PT]()},
		{ranges.Endml, endoMulConstraints[T, PT]()},
		{ranges.Mul, mulConstraints[T, PT]()},
	}

	var total *expr.Expr[T, PT]
	for _, f := range families {
		combined := expr.CombineConstraints[T, PT](f.r.Start, f.cs)
		if total == nil {
			total = combined
		} else {
			total = expr.Add[T, PT](total, combined)
		}
	}
	return total
}
