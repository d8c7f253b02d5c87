// Package backend exposes the curve-dispatching entry points over the
// per-curve prover backends. The underlying implementation is strongly typed
// with the curve (see backend/<curve>); this package routes a caller holding
// an opaque proving key to the right one.
package backend

import (
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	backend_bn254 "github.com/nume-crypto/kimchi-plonk/backend/bn254"
)

var (
	ErrInvalidWitness     = errors.New("backend: witness does not match the proving key's curve")
	ErrUnsupportedCurveID = errors.New("backend: no prover backend for this curve")
)

// Proof is a PLONK proof; its underlying implementation is curve specific.
type Proof interface {
	Marshal() ([]byte, error)
}

// ProvingKey is a per-curve proving key tagged with its curve.
type ProvingKey interface {
	CurveID() ecc.ID
}

// Prove dispatches to the proving key's curve backend. The witness and
// public slices must be typed over that curve's scalar field.
func Prove(pk ProvingKey, witness interface{}, public interface{}, rng io.Reader) (Proof, error) {
	switch tpk := pk.(type) {
	case *backend_bn254.ProvingKey:
		w, ok := witness.([][]fr.Element)
		if !ok {
			return nil, ErrInvalidWitness
		}
		var pub []fr.Element
		if public != nil {
			if pub, ok = public.([]fr.Element); !ok {
				return nil, ErrInvalidWitness
			}
		}
		proof, err := backend_bn254.Prove(tpk, w, pub, nil, rng)
		if err != nil {
			return nil, err
		}
		return proof, nil
	default:
		return nil, ErrUnsupportedCurveID
	}
}
