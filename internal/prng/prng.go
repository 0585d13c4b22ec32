// Package prng derives a reproducible stream of scalars from a label and a
// 64 bit seed.
//
// It is used to generate benchmark inputs that can be recreated bit for bit,
// it is not meant to produce secrets.
package prng

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/utils"
	"github.com/minio/sha256-simd"
)

// Stream is a counter mode expander over SHA-256.
//
// The i'th scalar only depends on the label, the seed and i, so a stream can be
// consumed sequentially with Scalar or randomly with ScalarAt.
type Stream struct {
	key     [sha256.Size]byte
	counter uint64
}

// NewStream hashes the label and the seed into the key of the stream.
func NewStream(label string, seed uint64) *Stream {
	digest := sha256.New()
	digest.Write([]byte(label))
	digest.Write(u64ToByteArray(uint64(len(label))))
	digest.Write(u64ToByteArray(seed))

	stream := &Stream{}
	copy(stream.key[:], digest.Sum(nil))
	return stream
}

// Scalar returns the next scalar of the stream.
func (s *Stream) Scalar() fr.Element {
	scalar := s.ScalarAt(s.counter)
	s.counter++
	return scalar
}

// Scalars returns the next n scalars of the stream.
func (s *Stream) Scalars(n int) []fr.Element {
	scalars := make([]fr.Element, n)
	for i := range scalars {
		scalars[i] = s.Scalar()
	}
	return scalars
}

// ScalarAt returns the scalar at position index, without moving the stream.
//
// Two blocks are hashed and the resulting 512 bit little-endian integer is
// reduced modulo the scalar field, which keeps the bias below 2^-256.
func (s *Stream) ScalarAt(index uint64) fr.Element {
	var wide [2 * sha256.Size]byte

	block := make([]byte, len(s.key)+8+1)
	copy(block, s.key[:])
	binary.LittleEndian.PutUint64(block[len(s.key):], index)

	for i := 0; i < 2; i++ {
		block[len(block)-1] = byte(i)
		digest := sha256.Sum256(block)
		copy(wide[i*sha256.Size:], digest[:])
	}

	// SetBytes reads big-endian and reduces inputs longer than 32 bytes
	utils.Reverse(wide[:])
	var scalar fr.Element
	scalar.SetBytes(wide[:])
	return scalar
}

// Position is the index of the scalar that Scalar will return next.
func (s *Stream) Position() uint64 {
	return s.counter
}

func u64ToByteArray(number uint64) []byte {
	bytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(bytes, number)
	return bytes
}
