package multiexp

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// Below this amount of pairwise additions, the cost of a batch inversion is
// not amortised and we fall back to mixed Jacobian additions.
const BatchInverseThreshold = 16

var three = fp.NewElement(3)

// pointAddDouble adds two affine points given the inverse of the denominator
// computed by chooseAddOrDouble.
//
// The identity and P + (-P) never need an inversion; inv is ignored for them.
func pointAddDouble(p1, p2 bls12381.G1Affine, inv *fp.Element) bls12381.G1Affine {
	if p1.IsInfinity() {
		return p2
	}
	if p2.IsInfinity() {
		return p1
	}

	var lambda, x, y fp.Element

	if p1.X.Equal(&p2.X) {
		if !p1.Y.Equal(&p2.Y) {
			// P + (-P)
			return bls12381.G1Affine{}
		}
		// Point doubling
		// lambda = 3x²/2y
		var temp fp.Element
		temp.Square(&p1.X)      // x²
		temp.Mul(&temp, &three) // 3x²
		lambda.Mul(&temp, inv)
	} else {
		// Point addition
		// lambda = (y2-y1)/(x2-x1)
		lambda.Sub(&p2.Y, &p1.Y)
		lambda.Mul(&lambda, inv)
	}

	// x3 = lambda² - x1 - x2
	x.Square(&lambda)
	x.Sub(&x, &p1.X)
	x.Sub(&x, &p2.X)

	// y3 = lambda * (x1 - x3) - y1
	y.Sub(&p1.X, &x)
	y.Mul(&y, &lambda)
	y.Sub(&y, &p1.Y)

	return bls12381.G1Affine{X: x, Y: y}
}

// chooseAddOrDouble computes the denominator that pointAddDouble needs inverted.
//
// Zero is returned when no inversion is needed; BatchInvert leaves zeroes untouched.
func chooseAddOrDouble(p1, p2 bls12381.G1Affine) fp.Element {
	var result fp.Element
	if p1.IsInfinity() || p2.IsInfinity() {
		return result
	}
	if p1.X.Equal(&p2.X) {
		if p1.Y.Equal(&p2.Y) {
			// For doubling: denominator is 2y
			result.Double(&p2.Y)
		}
		return result
	}
	// For addition: denominator is x2-x1
	result.Sub(&p2.X, &p1.X)
	return result
}

// BatchAdditionBinaryTreeStride sums points by repeatedly adding adjacent
// pairs, sharing one inversion per round.
//
// Note: points is mutated in this function, to preserve it copy the points before passing
// it to this function.
func BatchAdditionBinaryTreeStride(points []bls12381.G1Affine) bls12381.G1Jac {
	if len(points) == 0 {
		return bls12381.G1Jac{}
	}
	sums := MultiBatchAdditionBinaryTreeStride([][]bls12381.G1Affine{points})
	return sums[0]
}

// MultiBatchAdditionBinaryTreeStride sums every set of points independently,
// sharing the batch inversion of each round across all sets.
//
// Note: multiPoints is mutated in this function, to preserve it copy the points before passing
// it to this function.
func MultiBatchAdditionBinaryTreeStride(multiPoints [][]bls12381.G1Affine) []bls12381.G1Jac {
	// Find the largest bucket length
	maxBucketLength := 0
	for _, points := range multiPoints {
		if len(points) > maxBucketLength {
			maxBucketLength = len(points)
		}
	}

	sums := make([]bls12381.G1Jac, len(multiPoints))
	denominators := make([]fp.Element, 0, maxBucketLength)

	// Number of pairwise additions in the next round
	computeThreshold := func(points [][]bls12381.G1Affine) int {
		total := 0
		for _, p := range points {
			total += len(p) / 2
		}
		return total
	}

	workingPoints := multiPoints
	totalAmountOfWork := computeThreshold(workingPoints)

	for totalAmountOfWork > BatchInverseThreshold {
		// Handle odd number of points in each set
		for i, points := range workingPoints {
			if len(points)%2 != 0 {
				lastPoint := points[len(points)-1]
				sums[i].AddMixed(&lastPoint)
				workingPoints[i] = points[:len(points)-1]
			}
		}

		denominators = denominators[:0] // Clear slice while keeping capacity

		// Collect denominators for all sets
		for _, points := range workingPoints {
			for i := 0; i+1 < len(points); i += 2 {
				denominators = append(denominators, chooseAddOrDouble(points[i], points[i+1]))
			}
		}

		denominators = fp.BatchInvert(denominators)

		// Process each set with the inverted denominators
		denominatorOffset := 0
		for i, points := range workingPoints {
			newLen := len(points) / 2
			for j := 0; j < newLen; j++ {
				workingPoints[i][j] = pointAddDouble(
					points[j*2],
					points[j*2+1],
					&denominators[denominatorOffset+j],
				)
			}
			workingPoints[i] = workingPoints[i][:newLen]
			denominatorOffset += newLen
		}

		totalAmountOfWork = computeThreshold(workingPoints)
	}

	// We don't use range points because we get `G601: Implicit memory aliasing in for loop`
	for i := 0; i < len(workingPoints); i++ {
		points := workingPoints[i]

		for k := 0; k < len(points); k++ {
			sums[i].AddMixed(&points[k])
		}
	}

	return sums
}
