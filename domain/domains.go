package domain

import "github.com/nume-crypto/kimchi-plonk/field"

// EvaluationDomains bundles the four subgroups a proof needs: H (witness
// rows), X (public-input slots), K (index/permutation nonzero entries), and
// B (the wider product domain).
type EvaluationDomains[T any, PT field.Element[T]] struct {
	H, K, B, X *Subgroup[T, PT]
}

// Create picks the smallest power-of-two subgroup meeting each of the three
// size bounds and derives B from K so that |B| >= 3|K|-3. maxRoot and
// maxLog describe the field's largest available 2-adic subgroup (an external
// collaborator concern in production: gnark-crypto's ecc/*/fr package
// exposes these as package-level constants per curve).
func Create[T any, PT field.Element[T]](
	variables, publicInputs, nonzeroEntries uint64,
	maxRoot T, maxLog uint64,
) (*EvaluationDomains[T, PT], bool) {
	h, ok := New[T, PT](variables, maxRoot, maxLog)
	if !ok {
		return nil, false
	}
	x, ok := New[T, PT](publicInputs, maxRoot, maxLog)
	if !ok {
		return nil, false
	}
	k, ok := New[T, PT](nonzeroEntries, maxRoot, maxLog)
	if !ok {
		return nil, false
	}

	var bSize uint64
	if 3*k.Size >= 3 {
		bSize = 3*k.Size - 3
	}
	b, ok := New[T, PT](bSize, maxRoot, maxLog)
	if !ok {
		return nil, false
	}

	return &EvaluationDomains[T, PT]{H: h, K: k, B: b, X: x}, true
}
