package bn254

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
	"github.com/rs/zerolog/log"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/prover"
)

// twoAdicity is the largest k with a 2^k-order subgroup in the BN254 scalar
// field.
const twoAdicity = 28

// NumWitnessColumns is the width of the witness table this backend's gate
// set addresses (the highest column the gate families read is Witness(5)).
const NumWitnessColumns = 6

var (
	ErrSRSTooSmall        = errors.New("bn254: srs too small for the circuit's domain")
	ErrDomainTooLarge     = errors.New("bn254: circuit needs a subgroup larger than the field supports")
	ErrSelectorSizeWrong  = errors.New("bn254: selector column length differs from circuit rows")
	ErrPermutationInvalid = errors.New("bn254: permutation is not a bijection on the rows")
)

// Circuit is the setup-time description this backend consumes: per-gate
// selector columns over the usable rows, the wiring permutation of the
// protected witness column, and the public-input count. Selector and sigma
// polynomials are derived from it.
type Circuit struct {
	Rows   int
	Public int

	// Selectors maps each gate family present in the circuit to its
	// selector values on the first Rows rows (zero-padded up to the domain
	// size). Families absent from the map are inactive and contribute
	// nothing to the constraint sum.
	Selectors map[expr.GateType][]fr.Element

	// Permutation wires row i of the protected witness column to row
	// Permutation[i]. Nil means the identity wiring.
	Permutation []int
}

// ProvingKey bundles everything Prove needs: the precomputed constraint
// system and the concrete external collaborators built over the SRS.
type ProvingKey struct {
	Cs     *prover.ConstraintSystem[fr.Element, *fr.Element, kzg.Digest]
	Scheme *Scheme
	Endo   Endo
}

// CurveID tags the key for the curve-dispatch layer in package backend.
func (pk *ProvingKey) CurveID() ecc.ID {
	return ecc.BN254
}

// Setup derives the proving key from a circuit description and an SRS:
// domain sizing, selector interpolation and H8 evaluation, and the sigma
// polynomial of the wiring permutation.
func Setup(circuit *Circuit, srs *kzg.SRS) (*ProvingKey, error) {
	n, ok := domain.ComputeSizeOfDomain(uint64(circuit.Rows), twoAdicity)
	if !ok {
		return nil, ErrDomainTooLarge
	}

	h := domain.FromGenerator[fr.Element, *fr.Element](n, fftDomainOf(n).Generator)
	h4 := domain.FromGenerator[fr.Element, *fr.Element](4*n, fftDomainOf(4*n).Generator)
	h8 := domain.FromGenerator[fr.Element, *fr.Element](8*n, fftDomainOf(8*n).Generator)

	// X is sized to the public inputs, K to the permutation table (one
	// protected column: n nonzero entries), B to the wider product bound.
	xSize, ok := domain.ComputeSizeOfDomain(uint64(circuit.Public), twoAdicity)
	if !ok {
		return nil, ErrDomainTooLarge
	}
	var bBound uint64
	if 3*n >= 3 {
		bBound = 3*n - 3
	}
	bSize, ok := domain.ComputeSizeOfDomain(bBound, twoAdicity)
	if !ok {
		return nil, ErrDomainTooLarge
	}

	// zPoly carries n+3 coefficients after hiding; every other committed
	// polynomial stays at or below that.
	if uint64(len(srs.G1)) < n+3 {
		return nil, ErrSRSTooSmall
	}

	ring := Ring{}

	selectorPolys := make(map[expr.GateType]prover.Polynomial[fr.Element, *fr.Element], len(circuit.Selectors))
	selectorEvalsH8 := make(map[expr.GateType][]fr.Element, len(circuit.Selectors))
	for g, col := range circuit.Selectors {
		if len(col) != circuit.Rows {
			return nil, ErrSelectorSizeWrong
		}
		padded := make([]fr.Element, n)
		copy(padded, col)
		p := ring.Interpolate(h, padded)
		selectorPolys[g] = p
		selectorEvalsH8[g] = p.EvalDomain(h8)
	}

	sigmaEvalsH, err := sigmaEvaluations(circuit, h)
	if err != nil {
		return nil, err
	}
	sigmaPoly := ring.Interpolate(h, sigmaEvalsH)

	cs := &prover.ConstraintSystem[fr.Element, *fr.Element, kzg.Digest]{
		Domains: domain.EvaluationDomains[fr.Element, *fr.Element]{
			H: h,
			K: domain.FromGenerator[fr.Element, *fr.Element](n, fftDomainOf(n).Generator),
			B: domain.FromGenerator[fr.Element, *fr.Element](bSize, fftDomainOf(bSize).Generator),
			X: domain.FromGenerator[fr.Element, *fr.Element](xSize, fftDomainOf(xSize).Generator),
		},
		H4:                h4,
		H8:                h8,
		NumWitnessColumns: NumWitnessColumns,
		NumPermColumns:    1,
		SelectorEvalsH8:   selectorEvalsH8,
		SelectorPolys:     selectorPolys,
		Sigma: []prover.SigmaPoly[fr.Element, *fr.Element]{
			{Poly: sigmaPoly, EvalsH: sigmaEvalsH, EvalsH8: sigmaPoly.EvalDomain(h8)},
		},
		SigmaLast:   sigmaPoly,
		Public:      circuit.Public,
		MaxPolySize: int(n),
		// The combined constraint's degree is capped at 8|H|; after the
		// division by Z_H the quotient fits in seven |H|-sized chunks.
		MaxQuotSize: 7,
		Ranges:      prover.ComputeAlphaRanges(),
	}

	log.Debug().Uint64("domain_size", n).Int("rows", circuit.Rows).Msg("bn254: setup complete")

	return &ProvingKey{
		Cs:     cs,
		Scheme: NewScheme(srs, int(n)),
		Endo:   NewEndo(),
	}, nil
}

// sigmaEvaluations builds the protected column's sigma polynomial in
// Lagrange form: the identity column's H evaluations reordered by the
// wiring permutation. The identity column here is the unnormalized Lagrange
// basis at row 0 sampled on H — the one vector the grand product and the
// symbolic permutation constraint already share.
func sigmaEvaluations(circuit *Circuit, h *domain.Subgroup[fr.Element, *fr.Element]) ([]fr.Element, error) {
	n := int(h.Size)
	l01 := expr.ComputeL01[fr.Element, *fr.Element](h.GroupGen, h.Size)
	sid := expr.UnnormalizedLagrangeEvals[fr.Element, *fr.Element](l01, 0, expr.D1, h.Size, h.GroupGen, h.GroupGen)

	perm := circuit.Permutation
	if perm == nil {
		return sid, nil
	}
	seen := make([]bool, n)
	out := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		j := i
		if i < len(perm) {
			j = perm[i]
		}
		if j < 0 || j >= n || seen[j] {
			return nil, ErrPermutationInvalid
		}
		seen[j] = true
		out[i] = sid[j]
	}
	return out, nil
}
