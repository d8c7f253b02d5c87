package expr

import "github.com/nume-crypto/kimchi-plonk/field"

// Kind discriminates the variant of an Expr node.
type Kind int

const (
	KindConstant Kind = iota
	KindAlpha
	KindBeta
	KindGamma
	KindJointCombiner
	KindCell
	KindZkPolynomial
	KindUnnormalizedLagrangeBasis
	KindAdd
	KindSub
	KindMul
)

// Expr is the constraint expression tree: finitely generated by the eleven
// variants in Kind. Equality is structural; the evaluator never relies on it
// (monomial expansion needs hashable keys, not node equality), so it is
// exposed only for tests.
type Expr[T any, PT field.Element[T]] struct {
	Kind Kind

	Constant T   // KindConstant
	Power    int // KindAlpha, KindJointCombiner
	Cell     Variable
	LagIndex int // KindUnnormalizedLagrangeBasis

	Left, Right *Expr[T, PT]
}

func Constant[T any, PT field.Element[T]](x T) *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindConstant, Constant: x}
}

func Alpha[T any, PT field.Element[T]](power int) *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindAlpha, Power: power}
}

func Beta[T any, PT field.Element[T]]() *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindBeta}
}

func Gamma[T any, PT field.Element[T]]() *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindGamma}
}

func JointCombiner[T any, PT field.Element[T]](power int) *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindJointCombiner, Power: power}
}

func Cell[T any, PT field.Element[T]](v Variable) *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindCell, Cell: v}
}

func ZkPolynomial[T any, PT field.Element[T]]() *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindZkPolynomial}
}

func UnnormalizedLagrangeBasis[T any, PT field.Element[T]](i int) *Expr[T, PT] {
	return &Expr[T, PT]{Kind: KindUnnormalizedLagrangeBasis, LagIndex: i}
}

func isConstantZero[T any, PT field.Element[T]](e *Expr[T, PT]) bool {
	if e.Kind != KindConstant {
		return false
	}
	v := e.Constant
	return PT(&v).IsZero()
}

func isConstantOne[T any, PT field.Element[T]](e *Expr[T, PT]) bool {
	if e.Kind != KindConstant {
		return false
	}
	v := e.Constant
	return PT(&v).IsOne()
}

// Add builds a+b with the peephole simplifications "+0 = x" and "0+x = x".
func Add[T any, PT field.Element[T]](a, b *Expr[T, PT]) *Expr[T, PT] {
	if isConstantZero[T, PT](a) {
		return b
	}
	if isConstantZero[T, PT](b) {
		return a
	}
	return &Expr[T, PT]{Kind: KindAdd, Left: a, Right: b}
}

// Sub builds a-b with the peephole simplification "x-0 = x".
func Sub[T any, PT field.Element[T]](a, b *Expr[T, PT]) *Expr[T, PT] {
	if isConstantZero[T, PT](b) {
		return a
	}
	return &Expr[T, PT]{Kind: KindSub, Left: a, Right: b}
}

// Mul builds a*b with the peephole simplifications "1*x = x" and "x*1 = x".
func Mul[T any, PT field.Element[T]](a, b *Expr[T, PT]) *Expr[T, PT] {
	if isConstantOne[T, PT](a) {
		return b
	}
	if isConstantOne[T, PT](b) {
		return a
	}
	return &Expr[T, PT]{Kind: KindMul, Left: a, Right: b}
}

// Degree estimates a conservative upper bound used to pick the extended
// domain: constants/oracles contribute 0, ZkPolynomial 3, cells and the
// unnormalized Lagrange basis |H|, Mul multiplies its operands' degrees, and
// Add/Sub take the max.
func (e *Expr[T, PT]) Degree(hSize uint64) uint64 {
	switch e.Kind {
	case KindConstant, KindAlpha, KindBeta, KindGamma, KindJointCombiner:
		return 0
	case KindZkPolynomial:
		return 3
	case KindCell, KindUnnormalizedLagrangeBasis:
		return hSize
	case KindAdd, KindSub:
		l, r := e.Left.Degree(hSize), e.Right.Degree(hSize)
		if l > r {
			return l
		}
		return r
	case KindMul:
		return e.Left.Degree(hSize) * e.Right.Degree(hSize)
	default:
		return 0
	}
}
