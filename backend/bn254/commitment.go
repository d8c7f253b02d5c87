package bn254

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/nume-crypto/kimchi-plonk/prover"
)

// OpeningProof is this scheme's batched opening: one KZG witness per
// evaluation point over the v-folded aggregate polynomial, plus the
// u-combination of the two witnesses. The prover core treats it as opaque.
type OpeningProof struct {
	Zeta      kzg.OpeningProof
	ZetaOmega kzg.OpeningProof
	Folded    kzg.Digest
}

// Scheme is the polynomial commitment scheme over BN254: chunked KZG
// commitments (one digest per chunk of at most ChunkSize coefficients, so
// polynomials larger than the SRS stay committable), with Pedersen-style
// hiding against a dedicated SRS point.
type Scheme struct {
	SRS       *kzg.SRS
	ChunkSize int

	hidingBase bn254.G1Affine
}

var _ prover.CommitmentScheme[fr.Element, *fr.Element, kzg.Digest, OpeningProof] = (*Scheme)(nil)

// NewScheme wraps an SRS. The last SRS element doubles as the hiding base;
// its discrete log is as unknown to the prover as every other power of the
// trapdoor.
func NewScheme(srs *kzg.SRS, chunkSize int) *Scheme {
	return &Scheme{
		SRS:        srs,
		ChunkSize:  chunkSize,
		hidingBase: srs.G1[len(srs.G1)-1],
	}
}

// chunkBlinding carries the per-chunk hiding scalars of one commitment and
// folds them at point^ChunkSize, the same fold-down the chunked evaluations
// go through.
type chunkBlinding struct {
	blinds    []fr.Element
	chunkSize int
}

var _ prover.Blinding[fr.Element] = (*chunkBlinding)(nil)

func (b *chunkBlinding) ChunkBlinding(point fr.Element) fr.Element {
	var pc fr.Element
	pc.Exp(point, new(big.Int).SetInt64(int64(b.chunkSize)))
	var acc fr.Element
	for i := len(b.blinds) - 1; i >= 0; i-- {
		acc.Mul(&acc, &pc)
		acc.Add(&acc, &b.blinds[i])
	}
	return acc
}

func nonEmpty(c []fr.Element) []fr.Element {
	if len(c) == 0 {
		return make([]fr.Element, 1)
	}
	return c
}

func (s *Scheme) commitChunks(p prover.Polynomial[fr.Element, *fr.Element]) ([]kzg.Digest, error) {
	chunks := p.Chunks(s.ChunkSize)
	digests := make([]kzg.Digest, len(chunks))
	for i, c := range chunks {
		d, err := kzg.Commit(nonEmpty(c.Coefficients()), s.SRS)
		if err != nil {
			return nil, err
		}
		digests[i] = d
	}
	return digests, nil
}

func (s *Scheme) CommitNonHiding(p prover.Polynomial[fr.Element, *fr.Element], shiftedDegreeBound int) prover.Commitment[kzg.Digest] {
	digests, err := s.commitChunks(p)
	if err != nil {
		panic("bn254: commit on a polynomial exceeding the SRS: " + err.Error())
	}
	return prover.Commitment[kzg.Digest]{Unshifted: digests}
}

func (s *Scheme) Commit(p prover.Polynomial[fr.Element, *fr.Element], shiftedDegreeBound int, rng io.Reader) (prover.Commitment[kzg.Digest], prover.Blinding[fr.Element], error) {
	digests, err := s.commitChunks(p)
	if err != nil {
		return prover.Commitment[kzg.Digest]{}, nil, err
	}
	blinds := make([]fr.Element, len(digests))
	for i := range digests {
		blinds[i] = randomFr(rng)
		digests[i] = addScaled(digests[i], s.hidingBase, blinds[i])
	}
	return prover.Commitment[kzg.Digest]{Unshifted: digests}, &chunkBlinding{blinds: blinds, chunkSize: s.ChunkSize}, nil
}

// Open folds the input polynomials with powers of v into one aggregate,
// opens it at both points with KZG, and combines the two witnesses with u.
// The transcript digest and rng are part of the interface but this scheme's
// openings are deterministic in the folded polynomial, so neither is
// consumed here.
func (s *Scheme) Open(gm prover.GroupMap, inputs []prover.OpeningInput[fr.Element, *fr.Element], points []fr.Element, v, u fr.Element, spongeDigest fr.Element, rng io.Reader) (OpeningProof, error) {
	var folded []fr.Element
	scale := fr.One()
	for _, in := range inputs {
		coeffs := in.Poly.Coefficients()
		if len(coeffs) > len(folded) {
			grown := make([]fr.Element, len(coeffs))
			copy(grown, folded)
			folded = grown
		}
		for i := range coeffs {
			var t fr.Element
			t.Mul(&coeffs[i], &scale)
			folded[i].Add(&folded[i], &t)
		}
		scale.Mul(&scale, &v)
	}
	folded = nonEmpty(trim(folded))

	proofZeta, err := kzg.Open(folded, points[0], s.SRS)
	if err != nil {
		return OpeningProof{}, err
	}
	proofZetaOmega, err := kzg.Open(folded, points[1], s.SRS)
	if err != nil {
		return OpeningProof{}, err
	}

	return OpeningProof{
		Zeta:      proofZeta,
		ZetaOmega: proofZetaOmega,
		Folded:    addScaled(proofZeta.H, proofZetaOmega.H, u),
	}, nil
}

// addScaled returns p + s*q in affine coordinates.
func addScaled(p, q bn254.G1Affine, sc fr.Element) bn254.G1Affine {
	var sBig big.Int
	sc.ToBigIntRegular(&sBig)
	var scaled bn254.G1Affine
	scaled.ScalarMultiplication(&q, &sBig)
	var acc, t bn254.G1Jac
	acc.FromAffine(&p)
	t.FromAffine(&scaled)
	acc.AddAssign(&t)
	var out bn254.G1Affine
	out.FromJacobian(&acc)
	return out
}
