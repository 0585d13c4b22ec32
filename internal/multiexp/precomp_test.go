package multiexp

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/group"
	"github.com/stretchr/testify/require"
)

func TestMSMTable(t *testing.T) {
	t.Run("single point multiplication", func(t *testing.T) {
		point := group.Generator()

		scalar := fr.One()
		bi := new(big.Int)
		scalar.BigInt(bi)

		table, err := NewMSMTable([]bls12381.G1Affine{point}, 4)
		require.NoError(t, err)

		result, err := table.MultiScalarMul([]fr.Element{scalar})
		require.NoError(t, err)

		expected := bls12381.G1Jac{}
		expected.FromAffine(&point)
		expected.ScalarMultiplication(&expected, bi)

		require.True(t, result.Equal(&expected), "single point multiplication failed")
	})

	t.Run("zero scalar", func(t *testing.T) {
		point := group.Generator()

		table, err := NewMSMTable([]bls12381.G1Affine{point}, 4)
		require.NoError(t, err)

		result, err := table.MultiScalarMul([]fr.Element{{}})
		require.NoError(t, err)

		resultAff := group.ToAffine(&result)
		require.True(t, resultAff.IsInfinity(), "multiplication by zero should give point at infinity")
	})

	t.Run("multiple points", func(t *testing.T) {
		P := group.Generator()
		twoP := group.Double(&P)

		points := []bls12381.G1Affine{P, twoP}
		scalars := []fr.Element{fr.NewElement(2), fr.NewElement(3)}

		table, err := NewMSMTable(points, 4)
		require.NoError(t, err)
		result, err := table.MultiScalarMul(scalars)
		require.NoError(t, err)

		// Expected: 2*P + 3*(2P) = 8P
		var expected bls12381.G1Affine
		expected.ScalarMultiplication(&P, big.NewInt(8))

		resultAff := group.ToAffine(&result)
		require.True(t, resultAff.Equal(&expected), "multiple point multiplication failed")
	})

	t.Run("large random scalars", func(t *testing.T) {
		numPoints := 10
		points := make([]bls12381.G1Affine, numPoints)
		scalars := make([]fr.Element, numPoints)

		for i := 0; i < numPoints; i++ {
			points[i] = randomPoint()
			_, err := scalars[i].SetRandom()
			require.NoError(t, err)
		}

		table, err := NewMSMTable(points, 4)
		require.NoError(t, err)
		msmResult, err := table.MultiScalarMul(scalars)
		require.NoError(t, err)

		expectedResult, err := slowMultiExp(scalars, points)
		require.NoError(t, err)

		msmResultAff := group.ToAffine(&msmResult)
		require.True(t, msmResultAff.Equal(expectedResult), "MSM result doesn't match naive implementation")
	})

	t.Run("window size edge cases", func(t *testing.T) {
		point := group.Generator()

		for _, wbits := range []uint8{1, 2, 4, 8, 16} {
			table, err := NewMSMTable([]bls12381.G1Affine{point}, wbits)
			require.NoError(t, err)

			result, err := table.MultiScalarMul([]fr.Element{fr.NewElement(2)})
			require.NoError(t, err)

			expected := bls12381.G1Jac{}
			expected.FromAffine(&point)
			expected.Double(&expected)

			require.True(t, result.Equal(&expected), "multiplication failed for window size %d", wbits)
		}
	})

	t.Run("invalid window size", func(t *testing.T) {
		point := group.Generator()
		_, err := NewMSMTable([]bls12381.G1Affine{point}, 0)
		require.ErrorIs(t, err, ErrInvalidWindowSize)
		_, err = NewMSMTable([]bls12381.G1Affine{point}, MaxWindowSize+1)
		require.ErrorIs(t, err, ErrInvalidWindowSize)
	})

	t.Run("mismatched scalars", func(t *testing.T) {
		point := group.Generator()
		table, err := NewMSMTable([]bls12381.G1Affine{point}, 4)
		require.NoError(t, err)

		_, err = table.MultiScalarMul([]fr.Element{fr.NewElement(1), fr.NewElement(2)})
		require.ErrorIs(t, err, ErrMismatchedTable)
	})
}
