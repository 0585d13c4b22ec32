package group

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// BatchJacobianToAffine converts points to affine coordinates using a single
// field inversion (Montgomery's batch inversion trick).
//
// Unlike the gnark-crypto version, this does not spawn go-routines; callers
// that want parallelism split the slice themselves.
// Points at infinity are mapped to (0,0).
func BatchJacobianToAffine(points []bls12381.G1Jac) []bls12381.G1Affine {
	result := make([]bls12381.G1Affine, len(points))
	if len(points) == 0 {
		return result
	}
	zeroes := make([]bool, len(points))
	accumulator := fp.One()

	// stores points[].Z^-1 in result[i].X to avoid allocating a slice of fp.Elements
	for i := 0; i < len(points); i++ {
		if points[i].Z.IsZero() {
			zeroes[i] = true
			continue
		}
		result[i].X = accumulator
		accumulator.Mul(&accumulator, &points[i].Z)
	}

	var accInverse fp.Element
	accInverse.Inverse(&accumulator)

	for i := len(points) - 1; i >= 0; i-- {
		if zeroes[i] {
			continue
		}
		result[i].X.Mul(&result[i].X, &accInverse)
		accInverse.Mul(&accInverse, &points[i].Z)
	}

	for i := 0; i < len(points); i++ {
		if zeroes[i] {
			continue
		}
		var a, b fp.Element
		a = result[i].X
		b.Square(&a)
		result[i].X.Mul(&points[i].X, &b)
		result[i].Y.Mul(&points[i].Y, &b).
			Mul(&result[i].Y, &a)
	}

	return result
}
