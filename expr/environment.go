package expr

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/nume-crypto/kimchi-plonk/field"
)

// RandomOracles holds the Fiat-Shamir-derived challenges, populated in order
// during the proof: β, γ from the permutation argument; α combining gate
// constraints; ζ the evaluation point; v, u from the batched opening proof.
type RandomOracles[T any] struct {
	Alpha T
	Beta  T
	Gamma T
	Zeta  T
	V     T
	U     T
}

// ProofEvaluations is a record of per-column evaluations at a single
// challenge. V is either a scalar field element (the linearizer's scalar
// evaluate path) or a chunk-coefficient vector (the evaluations the prover
// sends in the proof, before the ζ^max_poly_size fold-down).
type ProofEvaluations[V any] struct {
	W            []V
	S            []V
	Z            V
	LookupSorted []V
	LookupAggreg V
	LookupTable  V
}

// Environment bundles everything the domain-lifted evaluator (Expr.Evaluations)
// needs: the oracles, the H/H4/H8 generators, and the column evaluation
// vectors — always stored at H8 resolution, exactly as the evaluator needs to build
// SubEvals{D8, shift, ...} views over them without materializing per-target
// copies. Environment is constructed once per proof and only read during one
// evaluation pass (see design note on borrowed evaluation views).
type Environment[T any, PT field.Element[T]] struct {
	Oracles RandomOracles[T]

	HSize uint64
	Omega T // H generator
	GenH4 T // H4 generator (g4^4 == Omega)
	GenH8 T // H8 generator (g8^8 == Omega)

	L01 T // l0_1 for H, computed once per proof

	Witness      [][]T // per witness column, H8 evaluations
	Z            []T
	Sigma        [][]T // per permutation column, H8 evaluations of its sigma polynomial
	LookupSorted [][]T
	LookupAggreg []T
	LookupTable  []T
	Index        map[GateType][]T

	ZkPolynomial []T

	present *bitset.BitSet
}

func NewEnvironment[T any, PT field.Element[T]](hSize uint64, omega, genH4, genH8, l01 T) *Environment[T, PT] {
	return &Environment[T, PT]{
		HSize:   hSize,
		Omega:   omega,
		GenH4:   genH4,
		GenH8:   genH8,
		L01:     l01,
		Index:   make(map[GateType][]T),
		present: bitset.New(uint(GateMul) + 1),
	}
}

// SetGate records selector evaluations for a gate kind present in this
// circuit. A gate kind never registered here is inactive: its Cell subtree
// contributes Constant(0).
func (env *Environment[T, PT]) SetGate(g GateType, evals []T) {
	env.Index[g] = evals
	env.present.Set(uint(g))
}

func (env *Environment[T, PT]) HasGate(g GateType) bool {
	return env.present.Test(uint(g))
}

func (env *Environment[T, PT]) generatorFor(tag DomainTag) T {
	switch tag {
	case D4:
		return env.GenH4
	case D8:
		return env.GenH8
	default:
		return env.Omega
	}
}

// columnSource returns the H8 evaluation vector backing a column, or false
// if that column has no data in this environment (an inactive gate, or an
// unused lookup table/aggregate).
func (env *Environment[T, PT]) columnSource(col Column) ([]T, bool) {
	switch col.Kind {
	case ColumnWitness:
		if col.Index < 0 || col.Index >= len(env.Witness) {
			return nil, false
		}
		return env.Witness[col.Index], true
	case ColumnZ:
		return env.Z, env.Z != nil
	case ColumnLookupSorted:
		if col.Index < 0 || col.Index >= len(env.LookupSorted) {
			return nil, false
		}
		return env.LookupSorted[col.Index], true
	case ColumnLookupAggreg:
		return env.LookupAggreg, env.LookupAggreg != nil
	case ColumnLookupTable:
		return env.LookupTable, env.LookupTable != nil
	case ColumnIndex:
		evals, ok := env.Index[GateType(col.Index)]
		return evals, ok
	case ColumnSigma:
		if col.Index < 0 || col.Index >= len(env.Sigma) {
			return nil, false
		}
		return env.Sigma[col.Index], true
	default:
		// LookupKindIndex columns are not modeled as a distinct source in
		// this environment; they fall back to the same "absent" treatment
		// an inactive gate gets.
		return nil, false
	}
}
