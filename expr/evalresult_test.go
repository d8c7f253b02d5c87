package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/field"
	"github.com/nume-crypto/kimchi-plonk/internal/testfield"
)

func TestCombineNineCasesAgreeWithDirectArithmetic(t *testing.T) {
	assert := require.New(t)

	hSize := uint64(2)
	target := expr.D1

	c5 := testfield.New(5)
	c7 := testfield.New(7)

	vecA := []testfield.F{testfield.New(1), testfield.New(2)}
	vecB := []testfield.F{testfield.New(10), testfield.New(20)}

	constResult := expr.NewConstantResult[testfield.F, *testfield.F](c5)
	otherConst := expr.NewConstantResult[testfield.F, *testfield.F](c7)
	evalsA := expr.NewEvalsResult[testfield.F, *testfield.F](target, vecA)
	evalsB := expr.NewEvalsResult[testfield.F, *testfield.F](target, vecB)
	subA := expr.NewSubEvalsResult[testfield.F, *testfield.F](target, 0, vecA)
	subB := expr.NewSubEvalsResult[testfield.F, *testfield.F](target, 0, vecB)

	// Constant (op) Constant -> Constant.
	r := expr.AddResults[testfield.F, *testfield.F](target, hSize, constResult, otherConst)
	assert.Equal(expr.ResultConstant, r.Kind)

	// Constant - Evals is non-commutative: x - v[i].
	r = expr.SubResults[testfield.F, *testfield.F](target, hSize, constResult, evalsA)
	assert.Equal(expr.ResultEvals, r.Kind)
	expected := field.Sub[testfield.F, *testfield.F](c5, vecA[0])
	assert.True(r.Evals[0].Equal(&expected))

	// Evals - Constant, reversed direction.
	r = expr.SubResults[testfield.F, *testfield.F](target, hSize, evalsA, constResult)
	expected = field.Sub[testfield.F, *testfield.F](vecA[0], c5)
	assert.True(r.Evals[0].Equal(&expected))

	// Constant * SubEvals.
	r = expr.MulResults[testfield.F, *testfield.F](target, hSize, constResult, subB)
	expected = field.Mul[testfield.F, *testfield.F](c5, vecB[1])
	assert.True(r.Evals[1].Equal(&expected))

	// SubEvals * Constant.
	r = expr.MulResults[testfield.F, *testfield.F](target, hSize, subA, otherConst)
	expected = field.Mul[testfield.F, *testfield.F](vecA[1], c7)
	assert.True(r.Evals[1].Equal(&expected))

	// Evals + Evals (same domain).
	r = expr.AddResults[testfield.F, *testfield.F](target, hSize, evalsA, evalsB)
	expected = field.Add[testfield.F, *testfield.F](vecA[0], vecB[0])
	assert.True(r.Evals[0].Equal(&expected))

	// Evals * SubEvals.
	r = expr.MulResults[testfield.F, *testfield.F](target, hSize, evalsA, subB)
	expected = field.Mul[testfield.F, *testfield.F](vecA[0], vecB[0])
	assert.True(r.Evals[0].Equal(&expected))

	// SubEvals * Evals.
	r = expr.MulResults[testfield.F, *testfield.F](target, hSize, subB, evalsA)
	expected = field.Mul[testfield.F, *testfield.F](vecB[0], vecA[0])
	assert.True(r.Evals[0].Equal(&expected))

	// SubEvals * SubEvals -> fresh Evals.
	r = expr.MulResults[testfield.F, *testfield.F](target, hSize, subA, subB)
	assert.Equal(expr.ResultEvals, r.Kind)
	expected = field.Mul[testfield.F, *testfield.F](vecA[0], vecB[0])
	assert.True(r.Evals[0].Equal(&expected))
}

// TestEvaluationsAgreesWithScalarEvaluate checks domain-extension
// consistency: evaluations(e,env) at any point x of its domain equals
// evaluate(e,...,x,...) at that same x.
func TestEvaluationsAgreesWithScalarEvaluate(t *testing.T) {
	assert := require.New(t)

	h, ok := domain.New[testfield.F, *testfield.F](2, testfield.MaxRoot, testfield.MaxLog)
	assert.True(ok)
	h4, ok := h.Extend(4)
	assert.True(ok)
	h8, ok := h.Extend(8)
	assert.True(ok)

	l01 := expr.ComputeL01[testfield.F, *testfield.F](h.GroupGen, h.Size)

	// p(x) = 2x+3, stored as the witness column's H8 evaluations.
	poly := func(x testfield.F) testfield.F {
		two := testfield.New(2)
		three := testfield.New(3)
		return field.Add[testfield.F, *testfield.F](field.Mul[testfield.F, *testfield.F](two, x), three)
	}
	w0 := make([]testfield.F, h8.Size)
	for i := uint64(0); i < h8.Size; i++ {
		w0[i] = poly(h8.ElementAt(i))
	}

	env := expr.NewEnvironment[testfield.F, *testfield.F](h.Size, h.GroupGen, h4.GroupGen, h8.GroupGen, l01)
	env.Witness = [][]testfield.F{w0}

	v := expr.Variable{Col: expr.Witness(0), Row: expr.Curr}
	cell := expr.Cell[testfield.F, *testfield.F](v)
	tree := expr.Mul[testfield.F, *testfield.F](cell, cell) // p(x)^2, degree hSize*hSize=4 -> D4

	evals := tree.Evaluations(env)
	assert.Len(evals, int(h4.Size))

	j := uint64(3)
	x := h4.ElementAt(j)

	scalarEnv := &expr.ScalarEnv[testfield.F, *testfield.F]{
		HSize: h.Size,
		Omega: h.GroupGen,
		EvalsCurr: expr.ProofEvaluations[testfield.F]{
			W: []testfield.F{poly(x)},
		},
	}
	got, err := tree.Evaluate(scalarEnv, x)
	assert.NoError(err)
	assert.True(got.Equal(&evals[j]), "domain-lifted evaluation at g4^3 must match scalar evaluation at the same point")
}

// TestNextRowCellReadsOneRowAhead pins the row-shift alignment: a Next-row
// cell lifted to an extended domain must read the value one full H row
// ahead (the point omega*x), on every target domain, with the last row
// wrapping back to row 0.
func TestNextRowCellReadsOneRowAhead(t *testing.T) {
	assert := require.New(t)

	h, ok := domain.New[testfield.F, *testfield.F](2, testfield.MaxRoot, testfield.MaxLog)
	assert.True(ok)
	h4, ok := h.Extend(4)
	assert.True(ok)
	h8, ok := h.Extend(8)
	assert.True(ok)

	l01 := expr.ComputeL01[testfield.F, *testfield.F](h.GroupGen, h.Size)

	// p(x) = 3x+1 on H8.
	poly := func(x testfield.F) testfield.F {
		three := testfield.New(3)
		one := testfield.New(1)
		return field.Add[testfield.F, *testfield.F](field.Mul[testfield.F, *testfield.F](three, x), one)
	}
	w0 := make([]testfield.F, h8.Size)
	for i := uint64(0); i < h8.Size; i++ {
		w0[i] = poly(h8.ElementAt(i))
	}

	env := expr.NewEnvironment[testfield.F, *testfield.F](h.Size, h.GroupGen, h4.GroupGen, h8.GroupGen, l01)
	env.Witness = [][]testfield.F{w0}

	next := expr.Cell[testfield.F, *testfield.F](expr.Variable{Col: expr.Witness(0), Row: expr.Next})
	tree := expr.Mul[testfield.F, *testfield.F](next, next) // degree 4 -> D4 target

	evals := tree.Evaluations(env)
	assert.Len(evals, int(h4.Size))

	for j := uint64(0); j < h4.Size; j++ {
		x := h4.ElementAt(j)
		shifted := field.Mul[testfield.F, *testfield.F](h.GroupGen, x)
		want := field.Mul[testfield.F, *testfield.F](poly(shifted), poly(shifted))
		assert.True(want.Equal(&evals[j]), "index %d", j)
	}
}
