// Package domain implements the evaluation-domain bundle: picking and
// holding the radix-2 multiplicative subgroups the constraint expression
// evaluator needs, and the extended cosets it lifts evaluations into.
package domain

import (
	"math/bits"

	"github.com/nume-crypto/kimchi-plonk/field"
)

// Subgroup is a radix-2 multiplicative subgroup of F: size a power of two,
// generator satisfying GroupGen^Size == 1.
type Subgroup[T any, PT field.Element[T]] struct {
	Size     uint64
	GroupGen T

	// maxRoot/maxLog describe the ambient 2-adic root of unity this subgroup
	// (and any coset built from it via Extend) was carved out of. They are
	// the field-specific constants an external FFT primitive would hand the
	// core (gnark-crypto's fr.Generator/fr.RootOfUnity play this role).
	maxRoot T
	maxLog  uint64
}

// ComputeSizeOfDomain rounds minSize up to the next power of two and fails
// if that exceeds the largest subgroup order the field supports (2^maxLog).
func ComputeSizeOfDomain(minSize, maxLog uint64) (uint64, bool) {
	if minSize == 0 {
		minSize = 1
	}
	n := nextPowerOfTwo(minSize)
	if bits.TrailingZeros64(n) > int(maxLog) {
		return 0, false
	}
	return n, true
}

func nextPowerOfTwo(n uint64) uint64 {
	if n&(n-1) == 0 {
		return n
	}
	return uint64(1) << bits.Len64(n)
}

// New builds the smallest Subgroup whose size is >= sizeHint, or false if no
// such subgroup exists in the field (sizeHint rounds to an order the field
// has no root of unity for).
func New[T any, PT field.Element[T]](sizeHint uint64, maxRoot T, maxLog uint64) (*Subgroup[T, PT], bool) {
	n, ok := ComputeSizeOfDomain(sizeHint, maxLog)
	if !ok {
		return nil, false
	}
	exp := (uint64(1) << maxLog) / n
	gen := field.Pow[T, PT](maxRoot, exp)
	return &Subgroup[T, PT]{Size: n, GroupGen: gen, maxRoot: maxRoot, maxLog: maxLog}, true
}

// FromGenerator wraps a subgroup whose size and generator were already
// computed by an external FFT primitive (e.g. gnark-crypto's
// fft.NewDomain(size).Generator) — the production path backend/bn254 takes,
// since the real field's 2-adic root of unity lives inside gnark-crypto, not
// in this package. A Subgroup built this way cannot Extend (there is no
// maxRoot to derive a larger coset from); the backend instead builds each
// extended domain with its own fresh call into the FFT primitive.
func FromGenerator[T any, PT field.Element[T]](size uint64, groupGen T) *Subgroup[T, PT] {
	return &Subgroup[T, PT]{Size: size, GroupGen: groupGen}
}

// Extend builds the coset H_k of order k*Size whose generator g satisfies
// g^k == GroupGen, the relation the evaluator relies on to align strided
// views between domains.
func (d *Subgroup[T, PT]) Extend(k uint64) (*Subgroup[T, PT], bool) {
	return New[T, PT](d.Size*k, d.maxRoot, d.maxLog)
}

// EvaluateVanishingPolynomial returns Z_D(x) = x^Size - 1.
func (d *Subgroup[T, PT]) EvaluateVanishingPolynomial(x T) T {
	xn := field.Pow[T, PT](x, d.Size)
	return field.Sub[T, PT](xn, field.One[T, PT]())
}

// ElementAt returns GroupGen^i.
func (d *Subgroup[T, PT]) ElementAt(i uint64) T {
	return field.Pow[T, PT](d.GroupGen, i%d.Size)
}
