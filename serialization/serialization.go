// Package serialization implements the binary format used to store and
// exchange MSM instances.
//
// A collection is encoded as
//
//	u64 count
//	count times:
//	    u64 n
//	    n compressed G1 points (48 bytes each)
//	    n scalars (32 bytes each, little-endian, canonical)
//
// All integers are little-endian. Points use the zcash compressed encoding.
package serialization

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/utils"
)

// This is the number of bytes needed to represent a
// group element in G1 when compressed.
const COMPRESSED_G1_SIZE = bls12381.SizeOfG1AffineCompressed

// This is the number of bytes needed to represent a field
// element corresponding to the order of the G1 group.
const SERIALIZED_SCALAR_SIZE = fr.Bytes

// This is the number of bytes used for the instance count and
// for the number of pairs of an instance.
const LENGTH_PREFIX_SIZE = 8

// This is the number of bytes a single point/scalar pair takes.
const SERIALIZED_PAIR_SIZE = COMPRESSED_G1_SIZE + SERIALIZED_SCALAR_SIZE

type Scalar = [SERIALIZED_SCALAR_SIZE]byte
type G1Point = [COMPRESSED_G1_SIZE]byte

func SerializeG1Point(affine bls12381.G1Affine) G1Point {
	return affine.Bytes()
}

// DeserializeG1Point decodes a compressed point, checking that it is on the
// curve and in the prime order subgroup.
func DeserializeG1Point(serPoint G1Point) (bls12381.G1Affine, error) {
	var point bls12381.G1Affine

	// An uncompressed flag needs 96 bytes, so SetBytes rejects it here
	_, err := point.SetBytes(serPoint[:])
	if err != nil {
		return bls12381.G1Affine{}, fmt.Errorf("%w: %w", ErrInvalidPoint, err)
	}
	return point, nil
}

func SerializeG1Points(points []bls12381.G1Affine) []G1Point {
	serPoints := make([]G1Point, len(points))
	for i := 0; i < len(points); i++ {
		serPoints[i] = SerializeG1Point(points[i])
	}
	return serPoints
}

func DeserializeG1Points(serPoints []G1Point) ([]bls12381.G1Affine, error) {
	points := make([]bls12381.G1Affine, len(serPoints))
	for i := 0; i < len(serPoints); i++ {
		// This does a subgroup check and is the most expensive part of decoding
		point, err := DeserializeG1Point(serPoints[i])
		if err != nil {
			return nil, err
		}
		points[i] = point
	}
	return points, nil
}

func SerializeScalar(element fr.Element) Scalar {
	byts := element.Bytes()
	utils.Reverse(byts[:])
	return byts
}

// DeserializeScalar decodes a little-endian scalar, rejecting values that are
// not reduced modulo the group order.
func DeserializeScalar(serScalar Scalar) (fr.Element, error) {
	scalar, err := utils.ReduceCanonicalLittleEndian(serScalar[:])
	if err != nil {
		return fr.Element{}, ErrNonCanonicalScalar
	}
	return scalar, nil
}

func SerializeScalars(scalars []fr.Element) []Scalar {
	serScalars := make([]Scalar, len(scalars))
	for i := 0; i < len(scalars); i++ {
		serScalars[i] = SerializeScalar(scalars[i])
	}
	return serScalars
}

func DeserializeScalars(serScalars []Scalar) ([]fr.Element, error) {
	scalars := make([]fr.Element, len(serScalars))
	for i := 0; i < len(scalars); i++ {
		scalar, err := DeserializeScalar(serScalars[i])
		if err != nil {
			return nil, err
		}
		scalars[i] = scalar
	}
	return scalars, nil
}
