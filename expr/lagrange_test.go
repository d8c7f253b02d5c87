package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/internal/testfield"
)

// TestUnnormalizedLagrangeAtKEqualsFourNEqualsTwo pins the hand-checkable
// case k=4, n=2: omega^2=1, g^4=omega, g^8=1.
func TestUnnormalizedLagrangeAtKEqualsFourNEqualsTwo(t *testing.T) {
	assert := require.New(t)

	h, ok := domain.New[testfield.F, *testfield.F](2, testfield.MaxRoot, testfield.MaxLog)
	assert.True(ok)
	h4, ok := h.Extend(4)
	assert.True(ok)

	omega := h.GroupGen
	g := h4.GroupGen

	l01 := expr.ComputeL01[testfield.F, *testfield.F](omega, h.Size)

	evals := expr.UnnormalizedLagrangeEvals[testfield.F, *testfield.F](l01, 0, expr.D4, h.Size, omega, g)
	assert.Len(evals, 8)

	// l_0(g^0) = omega^0 * l0_1 = l0_1.
	assert.True(evals[0].Equal(&l01))

	// l_0(g^4) = 0 (r=0, q=1, q != i=0).
	zero := testfield.New(0)
	assert.True(evals[4].Equal(&zero))

	// l_0(g^1) = (g^2 - 1) / (g^1 * omega^0 - omega^0) = (g^2-1)/(g-1).
	var g2, gMinus1, g2Minus1, expected testfield.F
	g2.Mul(&g, &g)
	g2Minus1.Sub(&g2, onePtr())
	gMinus1.Sub(&g, onePtr())
	var gMinus1Inv testfield.F
	gMinus1Inv.Inverse(&gMinus1)
	expected.Mul(&g2Minus1, &gMinus1Inv)
	assert.True(evals[1].Equal(&expected), "l_0(g^1) must equal (g^2-1)/(g-1)")
}

func onePtr() *testfield.F {
	one := testfield.New(1)
	return &one
}
