package gomsm

import (
	"github.com/crate-crypto/go-msm/serialization"
	"github.com/minio/sha256-simd"
)

// SerializeInstances encodes a collection in the instance file format.
func SerializeInstances(coll InstanceCollection) []byte {
	return serialization.SerializeInstances(coll)
}

// DeserializeInstances decodes a collection produced by SerializeInstances.
//
// Points are checked to be in the prime order subgroup and scalars to be
// canonical. Any failure wraps ErrMalformedInput.
func DeserializeInstances(buf []byte) (InstanceCollection, error) {
	return serialization.DeserializeInstances(buf)
}

// HashInstances returns the SHA-256 digest of the encoded collection.
//
// Two collections have the same digest exactly when they encode to the same bytes,
// which makes it suitable to check that instance files were not altered.
func HashInstances(coll InstanceCollection) [32]byte {
	return sha256.Sum256(SerializeInstances(coll))
}
