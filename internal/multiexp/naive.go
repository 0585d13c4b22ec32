package multiexp

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/group"
)

// MultiExpG1Naive computes scalars[0]*points[0] + ... + scalars[n-1]*points[n-1]
// one term at a time, using double-and-add for each scalar multiplication.
//
// This needs O(n * 255) group operations and serves as the reference for
// the windowed implementations.
func MultiExpG1Naive(scalars []fr.Element, points []bls12381.G1Affine) (*bls12381.G1Affine, error) {
	if err := checkLengths(scalars, points); err != nil {
		return nil, err
	}

	var acc bls12381.G1Jac
	for i := 0; i < len(points); i++ {
		term := group.ScalarMul(&points[i], &scalars[i])
		acc.AddAssign(&term)
	}

	var result bls12381.G1Affine
	result.FromJacobian(&acc)
	return &result, nil
}
