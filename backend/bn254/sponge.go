package bn254

import (
	"crypto/sha256"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/prover"
)

// transcript adapts gnark-crypto's fiat-shamir Transcript (named, ordered
// challenges over a hash) to the absorb/squeeze sponge the prover core
// expects: absorptions bind to the next unsqueezed challenge name, and each
// squeeze computes that challenge and advances. The challenge schedule is
// fixed per sponge.
type transcript struct {
	bind    func(string, []byte) error
	compute func(string) ([]byte, error)
	names   []string
	next    int
	dirty   bool
}

func newTranscript(names ...string) *transcript {
	fs := fiatshamir.NewTranscript(sha256.New(), names...)
	return &transcript{
		bind:    fs.Bind,
		compute: fs.ComputeChallenge,
		names:   names,
	}
}

func (t *transcript) current() string {
	i := t.next
	if i >= len(t.names) {
		i = len(t.names) - 1
	}
	return t.names[i]
}

func (t *transcript) absorbBytes(b []byte) {
	if err := t.bind(t.current(), b); err != nil {
		panic("bn254: transcript bind after challenge computed: " + err.Error())
	}
	t.dirty = true
}

func (t *transcript) squeeze() fr.Element {
	// A challenge with no bound data still needs one bind: the underlying
	// transcript refuses to compute an unbound first challenge.
	if !t.dirty {
		t.absorbBytes([]byte{1})
	}
	b, err := t.compute(t.names[t.next])
	if err != nil {
		panic("bn254: transcript challenge: " + err.Error())
	}
	t.next++
	t.dirty = false
	var el fr.Element
	el.SetBytes(b)
	return el
}

// fqSponge is the base-field transcript: challenge schedule β, γ, α, ζ,
// then the digest seeding the scalar sponge.
type fqSponge struct {
	*transcript
}

var _ prover.FqSponge[fr.Element, *fr.Element, bn254.G1Affine] = (*fqSponge)(nil)

// NewFqSponge starts a fresh base-field transcript for one proof.
func NewFqSponge() prover.FqSponge[fr.Element, *fr.Element, bn254.G1Affine] {
	return &fqSponge{transcript: newTranscript("beta", "gamma", "alpha", "zeta", "digest")}
}

func (s *fqSponge) AbsorbG(points []bn254.G1Affine) {
	for i := range points {
		s.absorbBytes(points[i].Marshal())
	}
}

func (s *fqSponge) Absorb(x fr.Element) {
	s.absorbBytes(x.Marshal())
}

func (s *fqSponge) Challenge() fr.Element {
	return s.squeeze()
}

func (s *fqSponge) ScalarChallengeSqueeze() prover.ScalarChallenge[fr.Element] {
	return prover.ScalarChallenge[fr.Element]{Chal: s.squeeze()}
}

func (s *fqSponge) Digest() fr.Element {
	if s.next == len(s.names)-1 {
		// First call: "digest" is the schedule's final challenge, squeezed
		// like any other. Later calls read the transcript's cached value.
		return s.squeeze()
	}
	b, err := s.compute("digest")
	if err != nil {
		panic("bn254: transcript digest: " + err.Error())
	}
	var el fr.Element
	el.SetBytes(b)
	return el
}

// frSponge is the scalar-field transcript: absorb the Fq digest, the
// public-input evaluation chunks, both ProofEvaluations records and
// ft_eval1, then squeeze v and u.
type frSponge struct {
	*transcript
}

var _ prover.FrSponge[fr.Element, *fr.Element] = (*frSponge)(nil)

// NewFrSponge starts a fresh scalar-field transcript for one proof.
func NewFrSponge() prover.FrSponge[fr.Element, *fr.Element] {
	return &frSponge{transcript: newTranscript("v", "u")}
}

func (s *frSponge) AbsorbDigest(x fr.Element) {
	s.absorbBytes(x.Marshal())
}

func (s *frSponge) Absorb(x fr.Element) {
	s.absorbBytes(x.Marshal())
}

func (s *frSponge) AbsorbPublicEvalChunks(chunks []fr.Element) {
	for i := range chunks {
		s.absorbBytes(chunks[i].Marshal())
	}
}

func (s *frSponge) AbsorbProofEvaluations(e expr.ProofEvaluations[[]fr.Element]) {
	absorbAll := func(cols [][]fr.Element) {
		for _, col := range cols {
			for i := range col {
				s.absorbBytes(col[i].Marshal())
			}
		}
	}
	absorbAll(e.W)
	absorbAll(e.S)
	for i := range e.Z {
		s.absorbBytes(e.Z[i].Marshal())
	}
}

func (s *frSponge) Challenge() fr.Element {
	return s.squeeze()
}

func (s *frSponge) ScalarChallengeSqueeze() prover.ScalarChallenge[fr.Element] {
	return prover.ScalarChallenge[fr.Element]{Chal: s.squeeze()}
}

// Endo maps squeezed scalar challenges into full field elements via the
// two-bits-per-step endomorphism fold over the challenge's low 128 bits,
// using a nontrivial cube root of unity in fr as the endomorphism scalar.
type Endo struct {
	endoR fr.Element
}

var _ prover.EndoMap[fr.Element, *fr.Element] = Endo{}

// NewEndo derives the endomorphism scalar once: the smallest base whose
// ((r-1)/3)-th power is a nontrivial cube root of unity. fr's multiplicative
// group has order r-1 divisible by 3, so such a base always exists.
func NewEndo() Endo {
	exp := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))
	exp.Div(exp, big.NewInt(3))
	var base, cand fr.Element
	for b := uint64(2); ; b++ {
		base.SetUint64(b)
		cand.Exp(base, exp)
		if !cand.IsOne() {
			return Endo{endoR: cand}
		}
	}
}

func (e Endo) ToField(c prover.ScalarChallenge[fr.Element]) fr.Element {
	var bits big.Int
	c.Chal.ToBigIntRegular(&bits)

	var one, a, b fr.Element
	one.SetOne()
	a.Double(&one)
	b.Double(&one)
	for i := 63; i >= 0; i-- {
		a.Double(&a)
		b.Double(&b)
		if bits.Bit(2*i+1) == 1 {
			if bits.Bit(2*i) == 1 {
				a.Add(&a, &one)
			} else {
				a.Sub(&a, &one)
			}
		} else {
			if bits.Bit(2*i) == 1 {
				b.Add(&b, &one)
			} else {
				b.Sub(&b, &one)
			}
		}
	}
	var out fr.Element
	out.Mul(&a, &e.endoR)
	out.Add(&out, &b)
	return out
}
