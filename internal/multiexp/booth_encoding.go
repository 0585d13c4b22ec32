package multiexp

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/utils"
)

// getBoothIndex returns the signed Booth digit of window windowIndex of the
// little-endian scalar el.
//
// The digit lies in [-2^{windowSize-1}, 2^{windowSize-1}]; a window looks at
// windowSize+1 bits, the extra one being the top bit of the window below.
func getBoothIndex(windowIndex, windowSize int, el []byte) int32 {
	skipBits := 0
	if windowIndex*windowSize > 1 {
		skipBits = windowIndex*windowSize - 1
	}
	skipBytes := skipBits / 8

	var v [4]byte
	for i := 0; i < len(v) && skipBytes+i < len(el); i++ {
		v[i] = el[skipBytes+i]
	}
	tmp := binary.LittleEndian.Uint32(v[:])

	// The lowest window has no window below it, pad with a zero bit
	if windowIndex == 0 {
		tmp <<= 1
	}

	tmp >>= skipBits - (skipBytes * 8)
	tmp &= (1 << (windowSize + 1)) - 1

	isPositive := tmp&(1<<windowSize) == 0

	// Div ceil by 2
	tmp = (tmp + 1) >> 1

	if isPositive {
		return int32(tmp)
	}

	mask := (uint32(1) << windowSize) - 1
	return -int32((^(tmp - 1)) & mask)
}

// scalarsToBytes returns the canonical little-endian encoding of every scalar
func scalarsToBytes(scalars []fr.Element) [][]uint8 {
	recodedScalars := make([][]uint8, len(scalars))
	for i := 0; i < len(scalars); i++ {
		byts := scalars[i].Bytes()
		utils.Reverse(byts[:])
		recodedScalars[i] = byts[:]
	}
	return recodedScalars
}
