package bn254

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/nume-crypto/kimchi-plonk/prover"
)

// Proof is this backend's concrete proof type.
type Proof = prover.ProverProof[fr.Element, kzg.Digest, OpeningProof]

// Prove runs the generic pipeline over BN254 with fresh transcript sponges.
// Witness columns shorter than the domain are zero-padded up to it; public
// is the public-input slot values (its length must not exceed the domain).
func Prove(pk *ProvingKey, witness [][]fr.Element, public []fr.Element, prevChallenges []prover.PrevChallenge[fr.Element, kzg.Digest], rng io.Reader) (*Proof, error) {
	n := pk.Cs.Domains.H.Size
	padded := make([][]fr.Element, len(witness))
	for i, col := range witness {
		if uint64(len(col)) == n {
			padded[i] = col
			continue
		}
		p := make([]fr.Element, n)
		copy(p, col)
		padded[i] = p
	}

	return prover.Create[fr.Element, *fr.Element, kzg.Digest, OpeningProof](
		pk.Cs,
		Ring{},
		pk.Scheme,
		NewFqSponge(),
		NewFrSponge,
		pk.Endo,
		nil,
		padded,
		public,
		prevChallenges,
		rng,
	)
}
