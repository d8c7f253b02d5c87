// Package testfield is a tiny fixed-prime field used only by this module's
// own tests to exercise domain/expr logic with hand-checkable numbers,
// independent of gnark-crypto's internal 2-adic root-of-unity constants.
// It is test scaffolding, not a component of the prover itself.
package testfield

import "math/big"

// P is prime with 2-adicity 6: P-1 == 64*3, so subgroups up to order 64
// exist, enough to exercise the extended cosets (H4, H8) the evaluator uses.
const P = 193

// MaxLog is the largest k such that a subgroup of order 2^k exists mod P.
const MaxLog = 6

// MaxRoot has multiplicative order 64 mod P, the field's largest 2-power
// subgroup generator.
var MaxRoot = F{v: 125}

// F is an element of Z/193Z.
type F struct {
	v uint64
}

func New(v uint64) F { return F{v: v % P} }

func (z *F) SetZero() *F { z.v = 0; return z }
func (z *F) SetOne() *F  { z.v = 1; return z }
func (z *F) SetUint64(v uint64) *F {
	z.v = v % P
	return z
}

func (z *F) Add(a, b *F) *F {
	z.v = (a.v + b.v) % P
	return z
}

func (z *F) Sub(a, b *F) *F {
	z.v = (a.v + P - b.v) % P
	return z
}

func (z *F) Mul(a, b *F) *F {
	z.v = (a.v * b.v) % P
	return z
}

func (z *F) Neg(a *F) *F {
	if a.v == 0 {
		z.v = 0
	} else {
		z.v = P - a.v
	}
	return z
}

func (z *F) Inverse(a *F) *F {
	if a.v == 0 {
		z.v = 0
		return z
	}
	z.v = modExp(a.v, P-2)
	return z
}

func (z *F) Exp(a F, k *big.Int) *F {
	e := new(big.Int).Mod(k, big.NewInt(P-1))
	z.v = modExp(a.v, e.Uint64())
	return z
}

func (z *F) IsZero() bool { return z.v == 0 }
func (z *F) IsOne() bool  { return z.v == 1 }
func (z *F) Equal(a *F) bool {
	return z.v == a.v
}

func (z *F) SetBigInt(v *big.Int) *F {
	z.v = new(big.Int).Mod(v, big.NewInt(P)).Uint64()
	return z
}

func (z *F) SetBytes(b []byte) *F {
	z.v = new(big.Int).Mod(new(big.Int).SetBytes(b), big.NewInt(P)).Uint64()
	return z
}

func modExp(base, exp uint64) uint64 {
	result := uint64(1)
	base = base % P
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) % P
		}
		exp >>= 1
		base = (base * base) % P
	}
	return result
}
