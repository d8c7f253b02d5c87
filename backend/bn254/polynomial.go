// Package bn254 instantiates the generic prover core over the BN254 scalar
// field, wiring gnark-crypto's fr/fft/kzg packages into the external
// interfaces the prover package declares: one package per curve, everything
// concrete.
package bn254

import (
	"io"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/polynomial"

	"github.com/nume-crypto/kimchi-plonk/domain"
	"github.com/nume-crypto/kimchi-plonk/prover"
)

// fftDomains caches one fft.Domain per cardinality; NewDomain recomputes
// twiddle tables, so every size is built once per process.
var fftDomains sync.Map // uint64 -> *fft.Domain

func fftDomainOf(size uint64) *fft.Domain {
	if d, ok := fftDomains.Load(size); ok {
		return d.(*fft.Domain)
	}
	d := fft.NewDomain(size)
	actual, _ := fftDomains.LoadOrStore(size, d)
	return actual.(*fft.Domain)
}

// Poly is a dense coefficient-form polynomial over fr. The coefficient slice
// is typed as gnark-crypto's polynomial.Polynomial so Eval stays theirs; the
// ring operations the prover core needs on top (vanishing-polynomial
// division, chunked evaluation) are implemented here, since the upstream
// type stops at plain evaluation.
type Poly struct {
	coeffs polynomial.Polynomial
}

var _ prover.Polynomial[fr.Element, *fr.Element] = (*Poly)(nil)

func trim(c []fr.Element) []fr.Element {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

func newPoly(c []fr.Element) *Poly {
	out := make([]fr.Element, len(c))
	copy(out, c)
	return &Poly{coeffs: trim(out)}
}

func (p *Poly) Add(other prover.Polynomial[fr.Element, *fr.Element]) prover.Polynomial[fr.Element, *fr.Element] {
	o := other.(*Poly)
	n := len(p.coeffs)
	if len(o.coeffs) > n {
		n = len(o.coeffs)
	}
	out := make([]fr.Element, n)
	copy(out, p.coeffs)
	for i := range o.coeffs {
		out[i].Add(&out[i], &o.coeffs[i])
	}
	return &Poly{coeffs: trim(out)}
}

func (p *Poly) Sub(other prover.Polynomial[fr.Element, *fr.Element]) prover.Polynomial[fr.Element, *fr.Element] {
	o := other.(*Poly)
	n := len(p.coeffs)
	if len(o.coeffs) > n {
		n = len(o.coeffs)
	}
	out := make([]fr.Element, n)
	copy(out, p.coeffs)
	for i := range o.coeffs {
		out[i].Sub(&out[i], &o.coeffs[i])
	}
	return &Poly{coeffs: trim(out)}
}

func (p *Poly) ScalarMul(c fr.Element) prover.Polynomial[fr.Element, *fr.Element] {
	out := make([]fr.Element, len(p.coeffs))
	for i := range p.coeffs {
		out[i].Mul(&p.coeffs[i], &c)
	}
	return &Poly{coeffs: trim(out)}
}

func (p *Poly) MulByVanishing(d *domain.Subgroup[fr.Element, *fr.Element]) prover.Polynomial[fr.Element, *fr.Element] {
	n := int(d.Size)
	out := make([]fr.Element, len(p.coeffs)+n)
	for i := range p.coeffs {
		out[i+n].Add(&out[i+n], &p.coeffs[i])
		out[i].Sub(&out[i], &p.coeffs[i])
	}
	return &Poly{coeffs: trim(out)}
}

// DivideByVanishing divides by X^n - 1 via synthetic division: the quotient
// coefficient q[i] folds p[i+n] plus the already-computed q[i+n], and the
// remainder at j < n is p[j] + q[j]. ok is false when any remainder
// coefficient is nonzero.
func (p *Poly) DivideByVanishing(d *domain.Subgroup[fr.Element, *fr.Element]) (q, r prover.Polynomial[fr.Element, *fr.Element], ok bool) {
	n := int(d.Size)
	if len(p.coeffs) <= n {
		return &Poly{}, newPoly(p.coeffs), len(trim(p.coeffs)) == 0
	}
	qc := make([]fr.Element, len(p.coeffs)-n)
	for i := len(qc) - 1; i >= 0; i-- {
		qc[i] = p.coeffs[i+n]
		if i+n < len(qc) {
			qc[i].Add(&qc[i], &qc[i+n])
		}
	}
	rc := make([]fr.Element, n)
	copy(rc, p.coeffs[:n])
	for j := 0; j < n && j < len(qc); j++ {
		rc[j].Add(&rc[j], &qc[j])
	}
	rem := trim(rc)
	return &Poly{coeffs: qc}, &Poly{coeffs: rem}, len(rem) == 0
}

func (p *Poly) Eval(point fr.Element) fr.Element {
	if len(p.coeffs) == 0 {
		var z fr.Element
		return z
	}
	return p.coeffs.Eval(&point)
}

func (p *Poly) EvalChunked(point fr.Element, chunkSize int) []fr.Element {
	chunks := p.Chunks(chunkSize)
	out := make([]fr.Element, len(chunks))
	for i, c := range chunks {
		out[i] = c.Eval(point)
	}
	return out
}

func (p *Poly) ChunkPolynomial(point fr.Element, chunkSize int) prover.Polynomial[fr.Element, *fr.Element] {
	return newPoly(p.EvalChunked(point, chunkSize))
}

// EvalDomain evaluates over every point of d with a forward FFT on the
// matching cardinality (DIF then bit-reverse). Coefficients beyond |d|
// alias onto index mod |d|, which is exact on the subgroup since x^|d| = 1
// there.
func (p *Poly) EvalDomain(d *domain.Subgroup[fr.Element, *fr.Element]) []fr.Element {
	a := make([]fr.Element, d.Size)
	for i := range p.coeffs {
		j := uint64(i) % d.Size
		a[j].Add(&a[j], &p.coeffs[i])
	}
	fftDomainOf(d.Size).FFT(a, fft.DIF)
	fft.BitReverse(a)
	return a
}

func (p *Poly) Chunks(chunkSize int) []prover.Polynomial[fr.Element, *fr.Element] {
	if len(p.coeffs) == 0 {
		return []prover.Polynomial[fr.Element, *fr.Element]{&Poly{}}
	}
	var out []prover.Polynomial[fr.Element, *fr.Element]
	for start := 0; start < len(p.coeffs); start += chunkSize {
		end := start + chunkSize
		if end > len(p.coeffs) {
			end = len(p.coeffs)
		}
		out = append(out, newPoly(p.coeffs[start:end]))
	}
	return out
}

func (p *Poly) Coefficients() []fr.Element {
	out := make([]fr.Element, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

func (p *Poly) Degree() int {
	return len(p.coeffs) - 1
}

func (p *Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// Ring is the PolyRing factory over fr: interpolation is an inverse FFT on
// the subgroup's cardinality followed by a bit-reversal back to natural
// coefficient order.
type Ring struct{}

var _ prover.PolyRing[fr.Element, *fr.Element] = Ring{}

func (Ring) Interpolate(d *domain.Subgroup[fr.Element, *fr.Element], evals []fr.Element) prover.Polynomial[fr.Element, *fr.Element] {
	a := make([]fr.Element, d.Size)
	copy(a, evals)
	fftDomainOf(d.Size).FFTInverse(a, fft.DIF)
	fft.BitReverse(a)
	return &Poly{coeffs: trim(a)}
}

func (Ring) FromCoefficients(coeffs []fr.Element) prover.Polynomial[fr.Element, *fr.Element] {
	return newPoly(coeffs)
}

func (Ring) Zero() prover.Polynomial[fr.Element, *fr.Element] {
	return &Poly{}
}

func (Ring) Random(degree int, rng io.Reader) prover.Polynomial[fr.Element, *fr.Element] {
	coeffs := make([]fr.Element, degree+1)
	for i := range coeffs {
		coeffs[i] = randomFr(rng)
	}
	return &Poly{coeffs: trim(coeffs)}
}

// randomFr draws one scalar from rng, falling back to the field's own
// crypto/rand sampling when the caller passed no usable source.
func randomFr(rng io.Reader) fr.Element {
	var el fr.Element
	buf := make([]byte, fr.Bytes+16)
	if rng != nil {
		if _, err := io.ReadFull(rng, buf); err == nil {
			el.SetBytes(buf)
			return el
		}
	}
	el.SetRandom()
	return el
}
