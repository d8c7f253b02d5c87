package bn254

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/prover"
)

func testSRS(t *testing.T) *kzg.SRS {
	t.Helper()
	srs, err := kzg.NewSRS(16, big.NewInt(42))
	require.NoError(t, err)
	return srs
}

// testCircuit wires two rows: a generic row forcing w2 = -ql*w0, and a
// swap permutation on the protected column, satisfied by any witness whose
// two w0 entries agree.
func testCircuit() *Circuit {
	one := frOf(1)
	return &Circuit{
		Rows:   2,
		Public: 0,
		Selectors: map[expr.GateType][]fr.Element{
			expr.GateGeneric: {one, one},
		},
		Permutation: []int{1, 0},
	}
}

// satisfyingWitness returns a witness satisfying testCircuit: w0 constant
// across the swapped rows, w2 = -w0 so the generic row's ql*l + o term
// cancels, everything else zero.
func satisfyingWitness() [][]fr.Element {
	w := make([][]fr.Element, NumWitnessColumns)
	for i := range w {
		w[i] = make([]fr.Element, 2)
	}
	w[0][0] = frOf(5)
	w[0][1] = frOf(5)
	w[2][0].Neg(&w[0][0])
	w[2][1].Neg(&w[0][1])
	return w
}

func TestSetupRejectsUndersizedSRS(t *testing.T) {
	assert := require.New(t)

	srs, err := kzg.NewSRS(3, big.NewInt(42))
	assert.NoError(err)
	_, err = Setup(testCircuit(), srs)
	assert.ErrorIs(err, ErrSRSTooSmall)
}

func TestSetupRejectsNonBijectivePermutation(t *testing.T) {
	assert := require.New(t)

	c := testCircuit()
	c.Permutation = []int{0, 0}
	_, err := Setup(c, testSRS(t))
	assert.ErrorIs(err, ErrPermutationInvalid)
}

func TestProveSucceedsOnSatisfyingWitness(t *testing.T) {
	assert := require.New(t)

	pk, err := Setup(testCircuit(), testSRS(t))
	assert.NoError(err)

	proof, err := Prove(pk, satisfyingWitness(), nil, nil, rand.Reader)
	assert.NoError(err)
	assert.NotNil(proof)
	assert.Len(proof.Commitments.W, NumWitnessColumns)

	// The proof serializes and deserializes through the cbor boundary.
	data, err := proof.Marshal()
	assert.NoError(err)
	var back Proof
	assert.NoError(back.Unmarshal(data))
	assert.Equal(proof.FtEval1, back.FtEval1)
}

func TestProveRejectsWitnessBreakingThePermutation(t *testing.T) {
	assert := require.New(t)

	pk, err := Setup(testCircuit(), testSRS(t))
	assert.NoError(err)

	w := satisfyingWitness()
	w[0][1] = frOf(7) // rows 0 and 1 are wired together; they must agree

	_, err = Prove(pk, w, nil, nil, rand.Reader)
	assert.Error(err)
}

func TestProveCarriesPrevChallengesThroughTheOpening(t *testing.T) {
	assert := require.New(t)

	pk, err := Setup(testCircuit(), testSRS(t))
	assert.NoError(err)

	prev := []prover.PrevChallenge[fr.Element, kzg.Digest]{{
		Chals: []fr.Element{frOf(3), frOf(9)},
	}}
	proof, err := Prove(pk, satisfyingWitness(), nil, prev, rand.Reader)
	assert.NoError(err)
	assert.Len(proof.PrevChallenges, 1)
}
