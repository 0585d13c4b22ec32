// Package group holds the BLS12-381 G1 and scalar field operations used by
// the multi-scalar multiplication engine.
//
// The heavy lifting (field multiplication, Jacobian formulas) is done by
// gnark-crypto; this package fixes the conventions the rest of the module
// relies on: the identity is the affine (0,0) point, scalars are serialized
// in little-endian and accumulation happens in Jacobian coordinates.
package group

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// The constant term of the curve equation y² = x³ + 4
var curveB = fp.NewElement(4)

// Identity returns the point at infinity, encoded as (0,0).
func Identity() bls12381.G1Affine {
	return bls12381.G1Affine{}
}

// Generator returns the fixed generator of the prime order subgroup of G1.
func Generator() bls12381.G1Affine {
	_, _, g1Aff, _ := bls12381.Generators()
	return g1Aff
}

// Add returns a + b.
//
// This is total: the identity is the neutral element and a + (-a) returns the identity.
func Add(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var acc bls12381.G1Jac
	acc.FromAffine(a)
	acc.AddMixed(b)

	var result bls12381.G1Affine
	result.FromJacobian(&acc)
	return result
}

// Double returns 2 * a.
func Double(a *bls12381.G1Affine) bls12381.G1Affine {
	var acc bls12381.G1Jac
	acc.FromAffine(a)
	acc.DoubleAssign()

	var result bls12381.G1Affine
	result.FromJacobian(&acc)
	return result
}

// Neg returns -a. The negation of the identity is the identity.
func Neg(a *bls12381.G1Affine) bls12381.G1Affine {
	var result bls12381.G1Affine
	result.Neg(a)
	return result
}

// IsOnCurve reports whether p satisfies y² = x³ + 4.
// The identity is considered to be on the curve.
func IsOnCurve(p *bls12381.G1Affine) bool {
	if p.IsInfinity() {
		return true
	}
	var lhs, rhs fp.Element
	lhs.Square(&p.Y)
	rhs.Square(&p.X).Mul(&rhs, &p.X).Add(&rhs, &curveB)
	return lhs.Equal(&rhs)
}

// IsValid reports whether p is on the curve and lies in the prime order subgroup.
//
// Points that come out of the codec always satisfy this; the subgroup check
// is considerably more expensive than IsOnCurve.
func IsValid(p *bls12381.G1Affine) bool {
	return IsOnCurve(p) && p.IsInSubGroup()
}

// Equal compares two affine points.
func Equal(a, b *bls12381.G1Affine) bool {
	return a.Equal(b)
}

// EqualJac compares two Jacobian points after normalising their representation,
// so two different Jacobian encodings of the same point compare equal.
func EqualJac(a, b *bls12381.G1Jac) bool {
	return a.Equal(b)
}

// ToAffine converts a single Jacobian point into affine coordinates.
func ToAffine(p *bls12381.G1Jac) bls12381.G1Affine {
	var result bls12381.G1Affine
	result.FromJacobian(p)
	return result
}
