package multiexp

import (
	"fmt"
	"slices"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/group"
)

// MSMTable holds precomputed points for fixed base multi-scalar multiplication
//
// The generator uses a table over the single point G to produce random
// multiples of G quickly.
type MSMTable struct {
	table     [][]bls12381.G1Affine
	numPoints int
	wbits     uint8
}

// NewMSMTable creates a new lookup table for fixed base multi-scalar multiplication
//
// points: slice of input points in affine coordinates
// wbits: window size for the precomputation
// For every point P, wbits indicates that we should compute
// 1 * P, ..., 2^{wbits-1} * P, Booth encoding takes care of the negative digits.
//
// The total amount of memory is roughly (numPoints * 2^{wbits - 1})
// where each point is 96 bytes.
func NewMSMTable(points []bls12381.G1Affine, wbits uint8) (*MSMTable, error) {
	if wbits == 0 || wbits > MaxWindowSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, wbits)
	}
	precomputedPoints := make([][]bls12381.G1Affine, len(points))

	for i := 0; i < len(points); i++ {
		precomputedPoints[i] = precomputePoints(wbits, &points[i])
	}

	return &MSMTable{
		table:     precomputedPoints,
		numPoints: len(points),
		wbits:     wbits,
	}, nil
}

func precomputePoints(wbits uint8, point *bls12381.G1Affine) []bls12381.G1Affine {
	// Calculate table size: 2^(w-1)
	tableSize := 1 << (wbits - 1)

	lookupTable := make([]bls12381.G1Jac, tableSize)

	current := new(bls12381.G1Jac)
	current.FromAffine(point)

	// Compute and store multiples
	for i := 0; i < tableSize; i++ {
		lookupTable[i] = *current
		current.AddMixed(point)
	}

	return group.BatchJacobianToAffine(lookupTable)
}

// MultiScalarMul computes sum_i scalars[i] * points[i] for the points the table was built with.
func (msmt *MSMTable) MultiScalarMul(scalars []fr.Element) (bls12381.G1Jac, error) {
	if len(scalars) != msmt.numPoints {
		return bls12381.G1Jac{}, fmt.Errorf("%w: %d scalars, %d points", ErrMismatchedTable, len(scalars), msmt.numPoints)
	}
	if len(scalars) == 0 {
		return bls12381.G1Jac{}, nil
	}

	scalarsBytes := scalarsToBytes(scalars)

	numWindows := (fr.Bits / msmt.wbits) + 1

	windowsOfPoints := make([][]bls12381.G1Affine, numWindows)

	for windowIdx := 0; windowIdx < int(numWindows); windowIdx++ {
		for scalarIdx := 0; scalarIdx < len(scalarsBytes); scalarIdx++ {
			subTable := msmt.table[scalarIdx]
			scalarBytes := scalarsBytes[scalarIdx]
			pointIdx := getBoothIndex(windowIdx, int(msmt.wbits), scalarBytes)

			if pointIdx == 0 {
				continue
			}

			digitIsPositive := pointIdx > 0
			pointIdx = absInt32(pointIdx) - 1
			point := subTable[pointIdx]

			if !digitIsPositive {
				point.Neg(&point)
			}
			windowsOfPoints[windowIdx] = append(windowsOfPoints[windowIdx], point)
		}
	}

	accumulatedPoints := MultiBatchAdditionBinaryTreeStride(windowsOfPoints)

	// Reverse the points, so that the highest window is first
	slices.Reverse(accumulatedPoints)

	result := accumulatedPoints[0]

	for i := 1; i < len(accumulatedPoints); i++ {
		for k := 0; k < int(msmt.wbits); k++ {
			result.DoubleAssign()
		}
		result.AddAssign(&accumulatedPoints[i])
	}

	return result, nil
}

// absInt32 computes the absolute value of `x`
func absInt32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
