package prover_test

import (
	"io"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/field"
	"github.com/nume-crypto/kimchi-plonk/internal/testfield"
	"github.com/nume-crypto/kimchi-plonk/prover"
)

// mockPoly is a dense coefficient-vector polynomial over testfield.F — enough
// arithmetic to drive prover.Create end to end without committing this test
// to any real polynomial backend (that wiring lives in backend/bn254).
type mockPoly struct {
	coeffs []testfield.F
}

func trimPoly(c []testfield.F) []testfield.F {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

func newMockPoly(c []testfield.F) *mockPoly {
	out := make([]testfield.F, len(c))
	copy(out, c)
	return &mockPoly{coeffs: trimPoly(out)}
}

func (p *mockPoly) Add(other prover.Polynomial[testfield.F, *testfield.F]) prover.Polynomial[testfield.F, *testfield.F] {
	o := other.(*mockPoly)
	n := len(p.coeffs)
	if len(o.coeffs) > n {
		n = len(o.coeffs)
	}
	out := make([]testfield.F, n)
	for i := 0; i < n; i++ {
		var a, b testfield.F
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(o.coeffs) {
			b = o.coeffs[i]
		}
		out[i] = field.Add[testfield.F, *testfield.F](a, b)
	}
	return newMockPoly(out)
}

func (p *mockPoly) Sub(other prover.Polynomial[testfield.F, *testfield.F]) prover.Polynomial[testfield.F, *testfield.F] {
	o := other.(*mockPoly)
	n := len(p.coeffs)
	if len(o.coeffs) > n {
		n = len(o.coeffs)
	}
	out := make([]testfield.F, n)
	for i := 0; i < n; i++ {
		var a, b testfield.F
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(o.coeffs) {
			b = o.coeffs[i]
		}
		out[i] = field.Sub[testfield.F, *testfield.F](a, b)
	}
	return newMockPoly(out)
}

func (p *mockPoly) ScalarMul(c testfield.F) prover.Polynomial[testfield.F, *testfield.F] {
	out := make([]testfield.F, len(p.coeffs))
	for i, a := range p.coeffs {
		out[i] = field.Mul[testfield.F, *testfield.F](a, c)
	}
	return newMockPoly(out)
}

func (p *mockPoly) MulByVanishing(d *domain.Subgroup[testfield.F, *testfield.F]) prover.Polynomial[testfield.F, *testfield.F] {
	n := int(d.Size)
	out := make([]testfield.F, len(p.coeffs)+n)
	for i, a := range p.coeffs {
		out[i] = field.Sub[testfield.F, *testfield.F](out[i], a)
		out[i+n] = field.Add[testfield.F, *testfield.F](out[i+n], a)
	}
	return newMockPoly(out)
}

func (p *mockPoly) DivideByVanishing(d *domain.Subgroup[testfield.F, *testfield.F]) (prover.Polynomial[testfield.F, *testfield.F], prover.Polynomial[testfield.F, *testfield.F], bool) {
	n := int(d.Size)
	m := len(p.coeffs) - 1
	if m < n {
		return newMockPoly(nil), newMockPoly(p.coeffs), p.IsZero()
	}
	a := make([]testfield.F, m+1)
	copy(a, p.coeffs)
	q := make([]testfield.F, m-n+1)
	for i := m; i >= n; i-- {
		q[i-n] = a[i]
		a[i-n] = field.Add[testfield.F, *testfield.F](a[i-n], a[i])
		a[i] = field.Zero[testfield.F, *testfield.F]()
	}
	remainder := newMockPoly(a[:n])
	return newMockPoly(q), remainder, remainder.IsZero()
}

func (p *mockPoly) Eval(point testfield.F) testfield.F {
	acc := field.Zero[testfield.F, *testfield.F]()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = field.Add[testfield.F, *testfield.F](p.coeffs[i], field.Mul[testfield.F, *testfield.F](acc, point))
	}
	return acc
}

func (p *mockPoly) EvalChunked(point testfield.F, chunkSize int) []testfield.F {
	chunks := p.Chunks(chunkSize)
	if len(chunks) == 0 {
		return []testfield.F{field.Zero[testfield.F, *testfield.F]()}
	}
	out := make([]testfield.F, len(chunks))
	for i, c := range chunks {
		out[i] = c.(*mockPoly).Eval(point)
	}
	return out
}

func (p *mockPoly) ChunkPolynomial(point testfield.F, chunkSize int) prover.Polynomial[testfield.F, *testfield.F] {
	return newMockPoly(p.EvalChunked(point, chunkSize))
}

func (p *mockPoly) EvalDomain(d *domain.Subgroup[testfield.F, *testfield.F]) []testfield.F {
	out := make([]testfield.F, d.Size)
	for i := uint64(0); i < d.Size; i++ {
		out[i] = p.Eval(d.ElementAt(i))
	}
	return out
}

func (p *mockPoly) Chunks(chunkSize int) []prover.Polynomial[testfield.F, *testfield.F] {
	if len(p.coeffs) == 0 {
		return nil
	}
	var out []prover.Polynomial[testfield.F, *testfield.F]
	for i := 0; i < len(p.coeffs); i += chunkSize {
		end := i + chunkSize
		if end > len(p.coeffs) {
			end = len(p.coeffs)
		}
		out = append(out, newMockPoly(p.coeffs[i:end]))
	}
	return out
}

func (p *mockPoly) Coefficients() []testfield.F {
	out := make([]testfield.F, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

func (p *mockPoly) Degree() int {
	if len(p.coeffs) == 0 {
		return 0
	}
	return len(p.coeffs) - 1
}

func (p *mockPoly) IsZero() bool {
	return len(p.coeffs) == 0
}

// mockRing is the PolyRing factory half, built around a plain O(n^2) inverse
// DFT over the domain's own root of unity — fine at the tiny sizes these
// tests use, and independent of any real FFT implementation.
type mockRing struct{}

func idft(gen testfield.F, evals []testfield.F) []testfield.F {
	n := len(evals)
	if n == 0 {
		return nil
	}
	invN := field.Inverse[testfield.F, *testfield.F](testfield.New(uint64(n)))
	invGen := field.Inverse[testfield.F, *testfield.F](gen)
	coeffs := make([]testfield.F, n)
	for k := 0; k < n; k++ {
		acc := field.Zero[testfield.F, *testfield.F]()
		invGenPowK := field.Pow[testfield.F, *testfield.F](invGen, uint64(k))
		cur := field.One[testfield.F, *testfield.F]()
		for j := 0; j < n; j++ {
			acc = field.Add[testfield.F, *testfield.F](acc, field.Mul[testfield.F, *testfield.F](evals[j], cur))
			cur = field.Mul[testfield.F, *testfield.F](cur, invGenPowK)
		}
		coeffs[k] = field.Mul[testfield.F, *testfield.F](acc, invN)
	}
	return coeffs
}

func (mockRing) Interpolate(d *domain.Subgroup[testfield.F, *testfield.F], evals []testfield.F) prover.Polynomial[testfield.F, *testfield.F] {
	return newMockPoly(idft(d.GroupGen, evals))
}

func (mockRing) FromCoefficients(coeffs []testfield.F) prover.Polynomial[testfield.F, *testfield.F] {
	return newMockPoly(coeffs)
}

func (mockRing) Zero() prover.Polynomial[testfield.F, *testfield.F] {
	return newMockPoly(nil)
}

// Random always returns the zero polynomial: these tests never inspect
// hiding behavior, and a zero blinder keeps z/witness polynomials exactly
// equal to their unblinded form off H too, which is what lets a hand-traced
// all-zero witness fixture collapse every constraint to the identically-zero
// polynomial (see prove_test.go).
func (mockRing) Random(degree int, rng io.Reader) prover.Polynomial[testfield.F, *testfield.F] {
	return newMockPoly(make([]testfield.F, degree+1))
}

// mockBlinding is the no-hiding Blinding[T] stand-in: every chunk blinding
// scalar is zero, matching mockRing.Random always returning the zero
// polynomial.
type mockBlinding struct{}

func (mockBlinding) ChunkBlinding(point testfield.F) testfield.F {
	return field.Zero[testfield.F, *testfield.F]()
}

// mockCommitment is "commit(p) = p(s)" at a fixed toy secret point: enough to
// exercise the pipeline's commit/absorb/open wiring without a real
// polynomial commitment scheme (that lives in backend/bn254, over an actual
// curve group).
type mockCommitment struct {
	secret testfield.F
}

func (c mockCommitment) Commit(p prover.Polynomial[testfield.F, *testfield.F], shiftedDegreeBound int, rng io.Reader) (prover.Commitment[testfield.F], prover.Blinding[testfield.F], error) {
	return prover.Commitment[testfield.F]{Unshifted: []testfield.F{p.Eval(c.secret)}}, mockBlinding{}, nil
}

func (c mockCommitment) CommitNonHiding(p prover.Polynomial[testfield.F, *testfield.F], shiftedDegreeBound int) prover.Commitment[testfield.F] {
	return prover.Commitment[testfield.F]{Unshifted: []testfield.F{p.Eval(c.secret)}}
}

func (c mockCommitment) Open(gm prover.GroupMap, inputs []prover.OpeningInput[testfield.F, *testfield.F], points []testfield.F, v, u testfield.F, spongeDigest testfield.F, rng io.Reader) (string, error) {
	return "opened", nil
}

// mockSponge is a deterministic, non-cryptographic stand-in for both the Fq
// and Fr transcript sponges: it mixes everything absorbed into a running
// scalar and derives each challenge from it before perturbing the state, far
// from a real Fiat-Shamir sponge but enough to exercise the absorb/squeeze
// call sequence prover.Create drives.
type mockSponge struct {
	state testfield.F
}

func (s *mockSponge) AbsorbG(points []testfield.F) {
	for _, p := range points {
		s.state = field.Add[testfield.F, *testfield.F](s.state, p)
	}
}

func (s *mockSponge) Absorb(x testfield.F) {
	s.state = field.Add[testfield.F, *testfield.F](s.state, x)
}

func (s *mockSponge) AbsorbDigest(x testfield.F) {
	s.Absorb(x)
}

func (s *mockSponge) AbsorbPublicEvalChunks(chunks []testfield.F) {
	for _, c := range chunks {
		s.Absorb(c)
	}
}

func (s *mockSponge) AbsorbProofEvaluations(e expr.ProofEvaluations[[]testfield.F]) {
	for _, w := range e.W {
		s.AbsorbPublicEvalChunks(w)
	}
	for _, sc := range e.S {
		s.AbsorbPublicEvalChunks(sc)
	}
	s.AbsorbPublicEvalChunks(e.Z)
}

func (s *mockSponge) perturb() {
	one := field.One[testfield.F, *testfield.F]()
	s.state = field.Add[testfield.F, *testfield.F](field.Mul[testfield.F, *testfield.F](s.state, s.state), one)
}

func (s *mockSponge) Challenge() testfield.F {
	out := s.state
	s.perturb()
	return out
}

func (s *mockSponge) ScalarChallengeSqueeze() prover.ScalarChallenge[testfield.F] {
	out := s.state
	s.perturb()
	return prover.ScalarChallenge[testfield.F]{Chal: out}
}

func (s *mockSponge) Digest() testfield.F {
	return s.state
}

// mockEndo is the identity endomorphism map: these tests don't exercise a
// real curve's endomorphism constant, only that Create threads a
// ScalarChallenge through EndoMap.ToField correctly.
type mockEndo struct{}

func (mockEndo) ToField(c prover.ScalarChallenge[testfield.F]) testfield.F {
	return c.Chal
}
