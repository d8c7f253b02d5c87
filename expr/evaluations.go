package expr

import "github.com/nume-crypto/kimchi-plonk/field"

// Evaluations lifts the expression to evaluations over an extended domain:
// it estimates the degree to pick the smallest accommodating domain among
// {D1, D4, D8}, dispatches bottom-up through the EvalResult algebra, and
// materializes the result. A degree beyond 8|H| is a malformed expression,
// never reached by a correctly constructed constraint tree, so it panics
// rather than returning an error.
func (e *Expr[T, PT]) Evaluations(env *Environment[T, PT]) []T {
	deg := e.Degree(env.HSize)
	tag, ok := ChooseDomain(deg, env.HSize)
	if !ok {
		panic("expr: expression degree exceeds 8|H|")
	}
	r := e.evalResult(env, tag)
	return materialize[T, PT](r, tag, env.HSize)
}

func (e *Expr[T, PT]) evalResult(env *Environment[T, PT], target DomainTag) EvalResult[T, PT] {
	switch e.Kind {
	case KindConstant:
		return NewConstantResult[T, PT](e.Constant)
	case KindAlpha:
		return NewConstantResult[T, PT](field.Pow[T, PT](env.Oracles.Alpha, uint64(e.Power)))
	case KindBeta:
		return NewConstantResult[T, PT](env.Oracles.Beta)
	case KindGamma:
		return NewConstantResult[T, PT](env.Oracles.Gamma)
	case KindJointCombiner:
		// JointCombiner is never domain-lifted: the only path that can reach
		// it is a malformed expression tree, since scalar Evaluate already
		// rejects it with ErrJointCombinerUnsupported before any caller
		// would attempt the domain-lifted form on the same tree.
		panic("expr: JointCombiner is not supported in domain evaluation")
	case KindZkPolynomial:
		return NewSubEvalsResult[T, PT](D8, 0, env.ZkPolynomial)
	case KindUnnormalizedLagrangeBasis:
		evals := UnnormalizedLagrangeEvals[T, PT](env.L01, e.LagIndex, target, env.HSize, env.Omega, env.generatorFor(target))
		return NewEvalsResult[T, PT](target, evals)
	case KindCell:
		shift := 0
		if e.Cell.Row == Next {
			shift = 1
		}
		src, ok := env.columnSource(e.Cell.Col)
		if !ok {
			return NewConstantResult[T, PT](field.Zero[T, PT]())
		}
		return NewSubEvalsResult[T, PT](D8, shift, src)
	case KindAdd:
		return AddResults[T, PT](target, env.HSize, e.Left.evalResult(env, target), e.Right.evalResult(env, target))
	case KindSub:
		return SubResults[T, PT](target, env.HSize, e.Left.evalResult(env, target), e.Right.evalResult(env, target))
	case KindMul:
		return MulResults[T, PT](target, env.HSize, e.Left.evalResult(env, target), e.Right.evalResult(env, target))
	default:
		return NewConstantResult[T, PT](field.Zero[T, PT]())
	}
}

func materialize[T any, PT field.Element[T]](r EvalResult[T, PT], target DomainTag, hSize uint64) []T {
	n := int(target.Size(hSize))
	switch r.Kind {
	case ResultConstant:
		out := make([]T, n)
		for i := range out {
			out[i] = r.Constant
		}
		return out
	case ResultEvals:
		return r.Evals
	default:
		out := make([]T, n)
		for i := 0; i < n; i++ {
			out[i] = r.readAt(target, i)
		}
		return out
	}
}
