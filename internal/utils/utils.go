package utils

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Computes x^0 to x^n-1
// If n==0: an empty slice is returned
func ComputePowers(x fr.Element, n uint) []fr.Element {
	if n == 0 {
		return []fr.Element{}
	}
	powers := make([]fr.Element, n)
	powers[0].SetOne()
	for i := uint(1); i < n; i++ {
		powers[i].Mul(&powers[i-1], &x)
	}

	return powers
}

// Reverses the list in-place
func Reverse[K interface{}](list []K) {
	last := len(list) - 1
	for i := 0; i < len(list)/2; i++ {
		list[i], list[last-i] = list[last-i], list[i]
	}
}

// Tries to convert a big-endian byte slice to a field element.
// Returns an error if the byte slice was not a canonical representation
// of the field element.
// Canonical meaning that the big integer interpretation was less than
// the field's prime. ie it lies within the range [0, p-1] (inclusive)
func ReduceCanonicalBigEndian(serScalar []byte) (fr.Element, error) {
	var scalar fr.Element
	err := scalar.SetBytesCanonical(serScalar)
	return scalar, err
}

// Same as ReduceCanonicalBigEndian, but the input is interpreted in little-endian.
// The input slice is not modified.
func ReduceCanonicalLittleEndian(serScalar []byte) (fr.Element, error) {
	bigEndian := make([]byte, len(serScalar))
	copy(bigEndian, serScalar)
	Reverse(bigEndian)
	return ReduceCanonicalBigEndian(bigEndian)
}
