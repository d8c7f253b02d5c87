package expr

import "github.com/nume-crypto/kimchi-plonk/field"

// ComputeL01 returns l0_1(H) = prod_{j=1..n-1} (1 - omega^j), computed once
// per proof and stored in the Environment for UnnormalizedLagrangeEvals.
func ComputeL01[T any, PT field.Element[T]](omega T, n uint64) T {
	acc := field.One[T, PT]()
	cur := omega
	one := field.One[T, PT]()
	for j := uint64(1); j < n; j++ {
		term := field.Sub[T, PT](one, cur)
		acc = field.Mul[T, PT](acc, term)
		cur = field.Mul[T, PT](cur, omega)
	}
	return acc
}

// UnnormalizedLagrangeEvals builds the length-k*n vector of l_i evaluated at
// every point of H_k (generator g, g^k = omega, |H_k| = k*n), in four steps:
//
//	(a) fill denominators, placeholder 1 at the r=0 (in-H) slots
//	(b) one batch inversion over the whole k*n vector
//	(c) overwrite r=0 slots: zero, except index k*i which takes omega^-i * l01
//	(d) multiply r!=0 slots by (g^n)^r - 1, precomputed once per r
//
// i may be negative or >= n; it is reduced mod n first, so a negative index
// means "i rows from the end".
func UnnormalizedLagrangeEvals[T any, PT field.Element[T]](l01 T, i int, tag DomainTag, hSize uint64, omega, g T) []T {
	n := hSize
	k := uint64(tag)
	total := k * n

	one := field.One[T, PT]()
	gn := field.Pow[T, PT](g, n)
	rFactor := make([]T, k)
	cur := one
	for r := uint64(0); r < k; r++ {
		rFactor[r] = field.Sub[T, PT](cur, one)
		cur = field.Mul[T, PT](cur, gn)
	}

	im := int(((int64(i) % int64(n)) + int64(n)) % int64(n))
	omegaI := field.Pow[T, PT](omega, uint64(im))

	denom := make([]T, total)
	omegaQ := one
	for q := uint64(0); q < n; q++ {
		grCur := one
		for r := uint64(0); r < k; r++ {
			idx := q*k + r
			if r == 0 {
				denom[idx] = one // placeholder; overwritten below after inversion
			} else {
				lhs := field.Mul[T, PT](omegaQ, grCur)
				denom[idx] = field.Sub[T, PT](lhs, omegaI)
			}
			grCur = field.Mul[T, PT](grCur, g)
		}
		omegaQ = field.Mul[T, PT](omegaQ, omega)
	}

	field.BatchInvert[T, PT](denom)

	out := make([]T, total)
	omegaInvI := field.Inverse[T, PT](omegaI)
	l0iVal := field.Mul[T, PT](omegaInvI, l01)
	zero := field.Zero[T, PT]()
	for q := uint64(0); q < n; q++ {
		for r := uint64(0); r < k; r++ {
			idx := q*k + r
			if r == 0 {
				if q == uint64(im) {
					out[idx] = l0iVal
				} else {
					out[idx] = zero
				}
				continue
			}
			out[idx] = field.Mul[T, PT](denom[idx], rFactor[r])
		}
	}
	return out
}
