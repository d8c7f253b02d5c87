// Package field declares the arithmetic the prover core requires from a finite
// field element, without committing to any one field. gnark-crypto's per-curve
// fr.Element types (bn254, bls12-381, ...) already expose exactly this method
// set, so they satisfy Element[T] with no adapter.
package field

import "math/big"

// Element is the constraint the prover core asks of a field element type T.
// All arithmetic mutates the receiver and returns it, matching gnark-crypto's
// fr.Element convention (z.Add(&x, &y) sets z and returns it).
type Element[T any] interface {
	*T

	SetZero() *T
	SetOne() *T
	SetUint64(v uint64) *T

	Add(a, b *T) *T
	Sub(a, b *T) *T
	Mul(a, b *T) *T
	Neg(a *T) *T
	Inverse(a *T) *T
	Exp(a T, k *big.Int) *T

	IsZero() bool
	IsOne() bool
	Equal(a *T) bool

	SetBigInt(v *big.Int) *T
	SetBytes(b []byte) *T
}

// Zero returns the additive identity of T.
func Zero[T any, PT Element[T]]() T {
	var z T
	PT(&z).SetZero()
	return z
}

// One returns the multiplicative identity of T.
func One[T any, PT Element[T]]() T {
	var o T
	PT(&o).SetOne()
	return o
}

// FromUint64 returns T holding the given unsigned value.
func FromUint64[T any, PT Element[T]](v uint64) T {
	var x T
	PT(&x).SetUint64(v)
	return x
}

// Pow raises a to the single non-negative uint64 power k, through the host
// field library's Exp(x, *big.Int).
func Pow[T any, PT Element[T]](a T, k uint64) T {
	var res T
	PT(&res).Exp(a, new(big.Int).SetUint64(k))
	return res
}

// Add returns a+b without mutating either operand.
func Add[T any, PT Element[T]](a, b T) T {
	var res T
	PT(&res).Add(&a, &b)
	return res
}

// Sub returns a-b without mutating either operand.
func Sub[T any, PT Element[T]](a, b T) T {
	var res T
	PT(&res).Sub(&a, &b)
	return res
}

// Mul returns a*b without mutating either operand.
func Mul[T any, PT Element[T]](a, b T) T {
	var res T
	PT(&res).Mul(&a, &b)
	return res
}

// Neg returns -a without mutating a.
func Neg[T any, PT Element[T]](a T) T {
	var res T
	PT(&res).Neg(&a)
	return res
}

// Inverse returns a^-1, or zero if a is zero.
func Inverse[T any, PT Element[T]](a T) T {
	var res T
	PT(&res).Inverse(&a)
	return res
}

// BatchInvert replaces every nonzero entry of values with its inverse in
// place and leaves zero entries untouched, using a single Montgomery-trick
// scratch vector so one field inversion amortizes over the whole batch. The
// permutation grand product inverts all of its denominators in one call.
func BatchInvert[T any, PT Element[T]](values []T) {
	n := len(values)
	if n == 0 {
		return
	}
	scratch := make([]T, n)
	acc := One[T, PT]()
	for i := 0; i < n; i++ {
		scratch[i] = acc
		if !PT(&values[i]).IsZero() {
			acc = Mul[T, PT](acc, values[i])
		}
	}
	accInv := Inverse[T, PT](acc)
	for i := n - 1; i >= 0; i-- {
		if PT(&values[i]).IsZero() {
			continue
		}
		orig := values[i]
		values[i] = Mul[T, PT](accInv, scratch[i])
		accInv = Mul[T, PT](accInv, orig)
	}
}
