package serialization

import "errors"

var (
	// ErrMalformedInput is returned for any buffer that is not a valid encoding
	// of an instance collection. The wrapped error carries the reason.
	ErrMalformedInput = errors.New("malformed instance encoding")

	ErrNonCanonicalScalar = errors.New("scalar is not canonical when interpreted as a big integer in little-endian")
	ErrInvalidPoint       = errors.New("bytes do not encode a valid G1 point")
)
