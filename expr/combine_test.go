package expr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/internal/testfield"
)

// treeDiff diffs two expression trees structurally; testfield.F's value is
// unexported, so cmp needs explicit permission to look inside it.
func treeDiff(want, got *expr.Expr[testfield.F, *testfield.F]) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(testfield.F{}))
}

func TestCombineConstraintsTreeShapeAtAlphaZero(t *testing.T) {
	assert := require.New(t)

	c0 := expr.Cell[testfield.F, *testfield.F](expr.Variable{Col: expr.Witness(0), Row: expr.Curr})
	c1 := expr.Cell[testfield.F, *testfield.F](expr.Variable{Col: expr.Witness(1), Row: expr.Curr})

	got := expr.CombineConstraints[testfield.F, *testfield.F](0, []*expr.Expr[testfield.F, *testfield.F]{c0, c1})

	// alphaStart = 0: the first term carries coefficient 1 and is not
	// wrapped in a Mul; the second is alpha^1 * c1.
	want := expr.Add[testfield.F, *testfield.F](
		c0,
		expr.Mul[testfield.F, *testfield.F](expr.Alpha[testfield.F, *testfield.F](1), c1),
	)
	assert.Empty(treeDiff(want, got))
}

func TestCombineConstraintsTreeShapeAtLaterRange(t *testing.T) {
	assert := require.New(t)

	c0 := expr.Cell[testfield.F, *testfield.F](expr.Variable{Col: expr.Witness(2), Row: expr.Curr})

	got := expr.CombineConstraints[testfield.F, *testfield.F](3, []*expr.Expr[testfield.F, *testfield.F]{c0})

	want := expr.Mul[testfield.F, *testfield.F](expr.Alpha[testfield.F, *testfield.F](3), c0)
	assert.Empty(treeDiff(want, got))
}

func TestSubtractingZeroKeepsTheTree(t *testing.T) {
	assert := require.New(t)

	cell := expr.Cell[testfield.F, *testfield.F](expr.Variable{Col: expr.Witness(0), Row: expr.Next})
	zero := expr.Constant[testfield.F, *testfield.F](testfield.New(0))

	got := expr.Sub[testfield.F, *testfield.F](cell, zero)
	assert.Empty(treeDiff(cell, got))
}
