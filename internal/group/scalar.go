package group

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/utils"
)

// ScalarSize is the canonical width of a serialized scalar
const ScalarSize = fr.Bytes

// Reduce interprets b as a little-endian integer and reduces it modulo the
// order of the scalar field.
//
// Inputs shorter than ScalarSize are zero-padded, longer inputs are truncated
// to their first ScalarSize bytes (the least significant ones).
// This function never fails.
func Reduce(b []byte) fr.Element {
	var buf [ScalarSize]byte
	copy(buf[:], b)

	// gnark expects big-endian
	utils.Reverse(buf[:])

	var scalar fr.Element
	scalar.SetBytes(buf[:])
	return scalar
}

// ScalarFromUint64 returns v as a field element
func ScalarFromUint64(v uint64) fr.Element {
	var scalar fr.Element
	scalar.SetUint64(v)
	return scalar
}

// ScalarMul computes s * p using left-to-right double-and-add.
// It is the building block of the reference MSM.
func ScalarMul(p *bls12381.G1Affine, s *fr.Element) bls12381.G1Jac {
	var acc bls12381.G1Jac
	if p.IsInfinity() || s.IsZero() {
		return acc
	}

	// Regular (non-montgomery) little-endian limbs
	limbs := s.Bits()

	for bit := fr.Bits - 1; bit >= 0; bit-- {
		acc.DoubleAssign()
		if (limbs[bit/64]>>(uint(bit)%64))&1 == 1 {
			acc.AddMixed(p)
		}
	}
	return acc
}
