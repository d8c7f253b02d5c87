package prover

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/field"
)

// PrevChallenge is one folded challenge polynomial carried over from a
// prior proof for recursion. Chals are the folded scalars
// (bPolyCoefficients input); Comm is their commitment.
type PrevChallenge[T any, G any] struct {
	Chals []T
	Comm  Commitment[G]
}

// Commitments bundles every commitment the proof sends: per-witness-column,
// the grand product, and the (possibly chunked) quotient.
type Commitments[G any] struct {
	W [][]G `cbor:"w"`
	Z []G   `cbor:"z"`
	T []G   `cbor:"t"`
}

// ProverProof is the sole long-lived output of Create. O is the commitment
// scheme's opaque opening-proof type.
type ProverProof[T any, G any, O any] struct {
	Commitments Commitments[G]         `cbor:"commitments"`
	Proof       O                      `cbor:"proof"`
	Evals       [2]expr.ProofEvaluations[[]T] `cbor:"evals"` // [0]=at zeta, [1]=at zeta*omega
	FtEval1     T                      `cbor:"ft_eval1"`
	Public      []T                    `cbor:"public"`
	PrevChallenges []PrevChallenge[T, G] `cbor:"prev_challenges"`
}

// Marshal encodes the proof with CBOR, the wire format at this module's
// serialization boundary. Only the serialization edge touches cbor tags;
// expr/domain/prover's own logic never does.
func (p *ProverProof[T, G, O]) Marshal() ([]byte, error) {
	return cbor.Marshal(p)
}

func (p *ProverProof[T, G, O]) Unmarshal(data []byte) error {
	return cbor.Unmarshal(data, p)
}

// SigmaPoly bundles one permutation-argument sigma polynomial in every
// representation the pipeline needs: its H evaluations (for building the
// grand product z), its H8 evaluations (for Cell lookups during the
// domain-lifted quotient pass), and its coefficient form (for the
// linearization's s_last term and chunked evaluation at ζ).
type SigmaPoly[T any, PT field.Element[T]] struct {
	Poly    Polynomial[T, PT]
	EvalsH  []T
	EvalsH8 []T
}

// ConstraintSystem is the precomputed constraint-system state: every value
// the pipeline reads but never derives itself — selector polynomials and
// their H8 evaluations, the permutation's sigma polynomials, the domain
// bundle, and the sizing constants. backend/bn254 constructs one of these
// per circuit in its Setup step; this package never builds one.
type ConstraintSystem[T any, PT field.Element[T], G any] struct {
	Domains domain.EvaluationDomains[T, PT]

	// H4, H8 are the extended cosets of Domains.H the quotient/linearization
	// steps evaluate over and interpolate back from. Built once at setup
	// time, since a Subgroup built via FromGenerator (the production path)
	// cannot itself Extend — see domain/subgroup.go.
	H4, H8 *domain.Subgroup[T, PT]

	NumWitnessColumns int

	// NumPermColumns is the count of columns the permutation argument
	// protects. This pipeline's permConstraint/computeGrandProduct protect
	// exactly one (Witness(0)/Sigma(0)), so this is always 1 for a
	// ConstraintSystem this module's own setup path produces, but the field
	// stays general for a collaborator that wants to report a
	// differently-shaped table.
	NumPermColumns int

	// SelectorEvalsH8 holds, for every GateType present in this circuit, its
	// selector polynomial's H8 evaluations — the data Environment.SetGate
	// registers so Cell{Index(g)} resolves instead of contributing Constant(0).
	SelectorEvalsH8 map[expr.GateType][]T

	// SelectorPolys holds the same selectors in coefficient form, needed by
	// the linearizer to fold a column's scalar coefficient back into a
	// committable polynomial.
	SelectorPolys map[expr.GateType]Polynomial[T, PT]

	Sigma     []SigmaPoly[T, PT] // sigma[0..NumPermColumns)
	SigmaLast Polynomial[T, PT]  // sigma_last, folded into f at the recurrence's Sigma index term

	// ZkPolynomialAt is the external "zero-knowledge rows" vanishing-factor
	// scalar collaborator backing the ZkPolynomial leaf. Nil means this
	// circuit reserves no blinding rows, so ZkPolynomial contributes 0.
	ZkPolynomialAt      func(point T) T
	ZkPolynomialEvalsH8 []T

	Public int // number of public input slots this circuit reserves

	MaxPolySize int
	MaxQuotSize int

	Ranges AlphaRanges
}
