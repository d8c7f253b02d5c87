// Package prover implements the PLONK prover pipeline: it drives
// commit -> challenge -> quotient -> evaluate -> linearize -> open against
// the symbolic constraint evaluator in package expr, producing a
// self-contained ProverProof.
package prover

import (
	"io"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/field"
)

// Polynomial is everything the pipeline needs from a dense polynomial over
// F, without committing to a representation.
// backend/bn254 implements it over github.com/consensys/gnark-crypto's
// ecc/bn254/fr/polynomial.Polynomial.
type Polynomial[T any, PT field.Element[T]] interface {
	Add(other Polynomial[T, PT]) Polynomial[T, PT]
	Sub(other Polynomial[T, PT]) Polynomial[T, PT]
	ScalarMul(c T) Polynomial[T, PT]
	MulByVanishing(d *domain.Subgroup[T, PT]) Polynomial[T, PT]
	// DivideByVanishing returns (quotient, remainder, ok); ok is false only
	// when the division leaves a nonzero remainder, signalling ErrPolyDivision
	// to the caller.
	DivideByVanishing(d *domain.Subgroup[T, PT]) (q, r Polynomial[T, PT], ok bool)
	Eval(point T) T
	// EvalChunked is the chunked evaluation: a length
	// ceil(deg/chunkSize) vector whose i-th entry is
	// sum_j coeffs[i*chunkSize+j] * point^j.
	EvalChunked(point T, chunkSize int) []T
	// ChunkPolynomial returns the polynomial whose i-th coefficient is the
	// chunked evaluation's i-th chunk evaluated at point's chunk boundary —
	// used to fold a full-degree polynomial down to one of chunk-sized degree
	// before a final Eval at point^chunkSize.
	ChunkPolynomial(point T, chunkSize int) Polynomial[T, PT]
	// EvalDomain returns this polynomial's evaluations over every point of
	// d (typically an extended coset H4/H8) — how the pipeline builds the
	// Environment's H8 column vectors from the witness/z coefficient forms
	// without a second interpolation round-trip.
	EvalDomain(d *domain.Subgroup[T, PT]) []T
	// Chunks splits the coefficient vector into consecutive polynomials of
	// at most chunkSize coefficients each, the representation the quotient
	// polynomial is committed in chunk by chunk.
	Chunks(chunkSize int) []Polynomial[T, PT]
	Coefficients() []T
	Degree() int
	IsZero() bool
}

// PolyRing is the factory half of the Polynomial interface: the two static
// constructors (interpolate, from_coefficients) that aren't bound to an
// existing instance.
type PolyRing[T any, PT field.Element[T]] interface {
	Interpolate(d *domain.Subgroup[T, PT], evals []T) Polynomial[T, PT]
	FromCoefficients(coeffs []T) Polynomial[T, PT]
	Zero() Polynomial[T, PT]
	// Random returns a polynomial of the given degree with random
	// coefficients, used for z's hiding blinder (a degree-2 random multiple
	// of Z_H).
	Random(degree int, rng io.Reader) Polynomial[T, PT]
}

// Commitment is a polynomial commitment: a (possibly multi-chunk) list of
// unshifted group elements, plus an optional shifted commitment for
// degree-bounded polynomials.
type Commitment[G any] struct {
	Unshifted []G
	Shifted   *G
}

// Blinding exposes the per-chunk blinding scalar a hiding commitment used,
// needed to compute ft's combined blinding.
type Blinding[T any] interface {
	ChunkBlinding(point T) T
}

// GroupMap is the curve map utility bundle handed to the prover; it is
// opaque to the core and only ever threaded through to CommitmentScheme.Open.
type GroupMap any

// OpeningInput is one (polynomial, shift, blinding) triple in the fixed
// ordering the pipeline hands to the commitment scheme's batched opener.
type OpeningInput[T any, PT field.Element[T]] struct {
	Poly               Polynomial[T, PT]
	ShiftedDegreeBound int // 0 means "no shift"
	Blinding           T
}

// CommitmentScheme is the polynomial commitment scheme. O is the opaque
// opening-proof type the scheme's Open produces; the core never inspects it,
// only stores it on ProverProof.Proof.
type CommitmentScheme[T any, PT field.Element[T], G any, O any] interface {
	Commit(p Polynomial[T, PT], shiftedDegreeBound int, rng io.Reader) (Commitment[G], Blinding[T], error)
	CommitNonHiding(p Polynomial[T, PT], shiftedDegreeBound int) Commitment[G]
	Open(gm GroupMap, inputs []OpeningInput[T, PT], points []T, v, u T, spongeDigest T, rng io.Reader) (O, error)
}

// ScalarChallenge is a squeezed challenge before it has been mapped through
// the curve's endomorphism into a full field element.
type ScalarChallenge[T any] struct {
	Chal T
}

// EndoMap converts a ScalarChallenge to a full field element via the curve
// endomorphism constant endo_r. backend/bn254 supplies the curve-specific
// constant; the core only ever calls through it.
type EndoMap[T any, PT field.Element[T]] interface {
	ToField(c ScalarChallenge[T]) T
}

// FqSponge is the base-field transcript sponge: absorbs group elements
// (commitments) and field elements, and squeezes challenges.
type FqSponge[T any, PT field.Element[T], G any] interface {
	AbsorbG(points []G)
	Absorb(x T)
	Challenge() T
	ScalarChallengeSqueeze() ScalarChallenge[T]
	Digest() T
}

// FrSponge is the scalar-field transcript sponge, seeded from the Fq
// sponge's digest.
type FrSponge[T any, PT field.Element[T]] interface {
	AbsorbDigest(x T)
	Absorb(x T)
	// AbsorbPublicEvalChunks absorbs the public-input polynomial's chunked
	// evaluation at one challenge point. Called twice (ζ, ζω), and skipped
	// entirely when the public-input polynomial is zero.
	AbsorbPublicEvalChunks(chunks []T)
	AbsorbProofEvaluations(e expr.ProofEvaluations[[]T])
	Challenge() T
	ScalarChallengeSqueeze() ScalarChallenge[T]
}
