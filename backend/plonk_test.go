package backend_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/kimchi-plonk/backend"
	backend_bn254 "github.com/nume-crypto/kimchi-plonk/backend/bn254"
)

func setupBN254(t *testing.T) *backend_bn254.ProvingKey {
	t.Helper()
	assert := require.New(t)

	srs, err := kzg.NewSRS(16, big.NewInt(42))
	assert.NoError(err)
	pk, err := backend_bn254.Setup(&backend_bn254.Circuit{Rows: 2}, srs)
	assert.NoError(err)
	return pk
}

func TestProveDispatchesOnTheProvingKeyCurve(t *testing.T) {
	assert := require.New(t)

	pk := setupBN254(t)
	assert.Equal(ecc.BN254, pk.CurveID())

	witness := make([][]fr.Element, backend_bn254.NumWitnessColumns)
	for i := range witness {
		witness[i] = make([]fr.Element, 2)
	}

	proof, err := backend.Prove(pk, witness, nil, rand.Reader)
	assert.NoError(err)
	assert.NotNil(proof)

	data, err := proof.Marshal()
	assert.NoError(err)
	assert.NotEmpty(data)
}

func TestProveRejectsWitnessFromAnotherField(t *testing.T) {
	assert := require.New(t)

	pk := setupBN254(t)
	_, err := backend.Prove(pk, [][]uint64{{1, 2}}, nil, rand.Reader)
	assert.ErrorIs(err, backend.ErrInvalidWitness)
}
