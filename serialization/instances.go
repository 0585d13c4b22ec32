package serialization

import (
	"encoding/binary"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/instance"
)

// SerializedInstanceSize returns the number of bytes SerializeInstance
// produces for an instance with n pairs.
func SerializedInstanceSize(n int) int {
	return LENGTH_PREFIX_SIZE + n*SERIALIZED_PAIR_SIZE
}

// SerializeInstance encodes one instance: its length, its points and then
// its scalars.
//
// The number of pairs written is the number of points. Instances are expected
// to be valid, see instance.Validate.
func SerializeInstance(inst instance.Instance) []byte {
	buf := make([]byte, 0, SerializedInstanceSize(len(inst.Points)))
	return appendInstanceBody(buf, &inst)
}

// SerializeInstances encodes a collection, including its instance count.
func SerializeInstances(coll instance.Collection) []byte {
	size := LENGTH_PREFIX_SIZE
	for i := range coll {
		size += SerializedInstanceSize(len(coll[i].Points))
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(coll)))
	for i := range coll {
		buf = appendInstanceBody(buf, &coll[i])
	}
	return buf
}

// AppendInstance returns a copy of the encoded collection buf with inst added
// to the end and the instance count incremented.
//
// An empty buf is treated as an empty collection. Only the header of buf is
// checked, the instances already in it are not decoded.
func AppendInstance(buf []byte, inst instance.Instance) ([]byte, error) {
	if err := instance.Validate(inst.Points, inst.Scalars); err != nil {
		return nil, err
	}

	var count uint64
	if len(buf) != 0 {
		if len(buf) < LENGTH_PREFIX_SIZE {
			return nil, fmt.Errorf("%w: %d byte buffer is too short for the instance count", ErrMalformedInput, len(buf))
		}
		count = binary.LittleEndian.Uint64(buf)
	} else {
		buf = make([]byte, LENGTH_PREFIX_SIZE)
	}

	out := make([]byte, len(buf), len(buf)+SerializedInstanceSize(inst.Len()))
	copy(out, buf)
	binary.LittleEndian.PutUint64(out, count+1)

	return appendInstanceBody(out, &inst), nil
}

func appendInstanceBody(buf []byte, inst *instance.Instance) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(inst.Points)))
	for i := range inst.Points {
		point := SerializeG1Point(inst.Points[i])
		buf = append(buf, point[:]...)
	}
	for i := range inst.Scalars {
		scalar := SerializeScalar(inst.Scalars[i])
		buf = append(buf, scalar[:]...)
	}
	return buf
}

// DeserializeInstances decodes a collection produced by SerializeInstances.
//
// Every point is checked to be in the prime order subgroup and every scalar to
// be canonical. Any failure, including trailing bytes after the last instance,
// returns an error wrapping ErrMalformedInput and no collection.
func DeserializeInstances(buf []byte) (instance.Collection, error) {
	r := reader{buf: buf}

	count, err := r.readLength("instance count")
	if err != nil {
		return nil, err
	}
	// Each instance needs a length prefix and at least one pair
	if count > uint64(r.remaining())/(LENGTH_PREFIX_SIZE+SERIALIZED_PAIR_SIZE) {
		return nil, fmt.Errorf("%w: header announces %d instances but only %d bytes follow", ErrMalformedInput, count, r.remaining())
	}

	coll := make(instance.Collection, count)
	for i := range coll {
		inst, err := r.readInstance()
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
		coll[i] = inst
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedInput, r.remaining())
	}
	return coll, nil
}

// reader walks an encoded collection. Every read copies out of buf.
type reader struct {
	buf    []byte
	offset int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.offset
}

func (r *reader) next(n int, what string) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes for %s at offset %d, have %d", ErrMalformedInput, n, what, r.offset, r.remaining())
	}
	chunk := r.buf[r.offset : r.offset+n]
	r.offset += n
	return chunk, nil
}

func (r *reader) readLength(what string) (uint64, error) {
	chunk, err := r.next(LENGTH_PREFIX_SIZE, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(chunk), nil
}

func (r *reader) readInstance() (instance.Instance, error) {
	n, err := r.readLength("instance length")
	if err != nil {
		return instance.Instance{}, err
	}
	if n == 0 {
		return instance.Instance{}, fmt.Errorf("%w: instance length is zero", ErrMalformedInput)
	}
	if n > uint64(r.remaining())/SERIALIZED_PAIR_SIZE {
		return instance.Instance{}, fmt.Errorf("%w: instance of %d pairs needs more than the %d remaining bytes", ErrMalformedInput, n, r.remaining())
	}

	points := make([]bls12381.G1Affine, n)
	for j := range points {
		chunk, err := r.next(COMPRESSED_G1_SIZE, "point")
		if err != nil {
			return instance.Instance{}, err
		}
		point, err := DeserializeG1Point(G1Point(chunk))
		if err != nil {
			return instance.Instance{}, fmt.Errorf("%w: point %d: %w", ErrMalformedInput, j, err)
		}
		points[j] = point
	}

	scalars := make([]fr.Element, n)
	for j := range scalars {
		chunk, err := r.next(SERIALIZED_SCALAR_SIZE, "scalar")
		if err != nil {
			return instance.Instance{}, err
		}
		scalar, err := DeserializeScalar(Scalar(chunk))
		if err != nil {
			return instance.Instance{}, fmt.Errorf("%w: scalar %d: %w", ErrMalformedInput, j, err)
		}
		scalars[j] = scalar
	}

	return instance.Instance{Points: points, Scalars: scalars}, nil
}
