package expr

import "github.com/nume-crypto/kimchi-plonk/field"

// ScalarEnv is everything a single-point Evaluate needs: the oracles, H's
// size and generator (to compute omega^i and Z_H(zeta)), the constraint
// system's external ZkPolynomial scalar, and the two evaluation records at
// zeta and zeta*omega.
type ScalarEnv[T any, PT field.Element[T]] struct {
	Oracles RandomOracles[T]
	HSize   uint64
	Omega   T

	// ZkPolynomialAt is the external collaborator's zero-knowledge-rows
	// vanishing factor at a point, a constraint-system precomputation this
	// evaluator never derives itself.
	ZkPolynomialAt func(point T) T

	EvalsCurr ProofEvaluations[T]
	EvalsNext ProofEvaluations[T]
}

func (env *ScalarEnv[T, PT]) evalsFor(row Row) *ProofEvaluations[T] {
	if row == Next {
		return &env.EvalsNext
	}
	return &env.EvalsCurr
}

func cellScalar[T any, PT field.Element[T]](env *ScalarEnv[T, PT], v Variable) (T, error) {
	var zero T
	if v.Col.Kind == ColumnIndex || v.Col.Kind == ColumnLookupKindIndex {
		return zero, ErrCellIndexColumn
	}
	evals := env.evalsFor(v.Row)
	switch v.Col.Kind {
	case ColumnWitness:
		return evals.W[v.Col.Index], nil
	case ColumnZ:
		return evals.Z, nil
	case ColumnLookupSorted:
		return evals.LookupSorted[v.Col.Index], nil
	case ColumnLookupAggreg:
		return evals.LookupAggreg, nil
	case ColumnLookupTable:
		return evals.LookupTable, nil
	case ColumnSigma:
		if v.Col.Index < 0 || v.Col.Index >= len(evals.S) {
			return zero, ErrCellIndexColumn
		}
		return evals.S[v.Col.Index], nil
	default:
		return zero, ErrCellIndexColumn
	}
}

// Evaluate reduces the expression to a single field value at zeta.
func (e *Expr[T, PT]) Evaluate(env *ScalarEnv[T, PT], zeta T) (T, error) {
	switch e.Kind {
	case KindConstant:
		return e.Constant, nil
	case KindAlpha:
		return field.Pow[T, PT](env.Oracles.Alpha, uint64(e.Power)), nil
	case KindBeta:
		return env.Oracles.Beta, nil
	case KindGamma:
		return env.Oracles.Gamma, nil
	case KindJointCombiner:
		var zero T
		return zero, ErrJointCombinerUnsupported
	case KindZkPolynomial:
		return env.ZkPolynomialAt(zeta), nil
	case KindUnnormalizedLagrangeBasis:
		zh := field.Sub[T, PT](field.Pow[T, PT](zeta, env.HSize), field.One[T, PT]())
		omegaI := field.Pow[T, PT](env.Omega, uint64(((int64(e.LagIndex)%int64(env.HSize))+int64(env.HSize))%int64(env.HSize)))
		denom := field.Sub[T, PT](zeta, omegaI)
		return field.Mul[T, PT](zh, field.Inverse[T, PT](denom)), nil
	case KindCell:
		return cellScalar[T, PT](env, e.Cell)
	case KindAdd:
		l, err := e.Left.Evaluate(env, zeta)
		if err != nil {
			return l, err
		}
		r, err := e.Right.Evaluate(env, zeta)
		if err != nil {
			return r, err
		}
		return field.Add[T, PT](l, r), nil
	case KindSub:
		l, err := e.Left.Evaluate(env, zeta)
		if err != nil {
			return l, err
		}
		r, err := e.Right.Evaluate(env, zeta)
		if err != nil {
			return r, err
		}
		return field.Sub[T, PT](l, r), nil
	case KindMul:
		l, err := e.Left.Evaluate(env, zeta)
		if err != nil {
			return l, err
		}
		r, err := e.Right.Evaluate(env, zeta)
		if err != nil {
			return r, err
		}
		return field.Mul[T, PT](l, r), nil
	default:
		var zero T
		return zero, ErrLinearizationFailed
	}
}
