package multiexp

import (
	"fmt"
	"math/bits"
	"runtime"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/instance"
	"github.com/crate-crypto/go-msm/internal/pool"
	"golang.org/x/sync/errgroup"
)

// MaxWindowSize is the largest window, in bits, accepted by MultiExpG1Pippenger.
// A window of c bits needs 2^c - 1 buckets.
const MaxWindowSize = 16

// MultiExp computes a multi exponentiation using gnark-crypto -- That is, an inner product between points and scalars.
//
// More precisely, the result is set to scalars[0]*points[0] + ... + scalars[n-1]*points[n-1], where n is the length of both slices
// If the slices differ in length or are empty, this function returns an error.
//
// numGoRoutines is used to configure the amount of concurrency needed. Setting this
// value to a negative number or 0 will make it default to the number of CPUs.
//
// Returns an error if the numGoRoutines exceeds 1024.
func MultiExp(scalars []fr.Element, points []bls12381.G1Affine, numGoRoutines int) (*bls12381.G1Affine, error) {
	err := isValidNumGoRoutines(numGoRoutines)
	if err != nil {
		return nil, err
	}
	if err := checkLengths(scalars, points); err != nil {
		return nil, err
	}
	if numGoRoutines <= 0 {
		numGoRoutines = runtime.NumCPU()
	}
	return new(bls12381.G1Affine).MultiExp(points, scalars, ecc.MultiExpConfig{NbTasks: numGoRoutines})
}

// isValidNumGoRoutines will return an error if the number
// of go routines to be used is not Valid.
//
// Valid meaning that is less than 1024.
//
// 1024 is chosen here as the underlying gnark-crypto library will
// return an error for more than 1024.
// Instead of waiting until the user tries to call an algorithm
// which requires numGoRoutines, we return the error here instead.
func isValidNumGoRoutines(value int) error {
	if value >= 1024 {
		return ErrTooManyGoRoutines
	}
	return nil
}

// IsValidNumGoRoutines exposes the go-routine check so that callers can fail
// early, when they are configured.
func IsValidNumGoRoutines(value int) error {
	return isValidNumGoRoutines(value)
}

func checkLengths(scalars []fr.Element, points []bls12381.G1Affine) error {
	if len(scalars) != len(points) {
		return fmt.Errorf("%w: %d points but %d scalars", instance.ErrInvalidInstance, len(points), len(scalars))
	}
	if len(scalars) == 0 {
		return fmt.Errorf("%w: instance is empty", instance.ErrInvalidInstance)
	}
	return nil
}

// WindowSize returns the window size used by MultiExpG1Pippenger for an
// instance with n pairs, when none is configured.
//
// It is a pure function of n: roughly log2(n) - 2, clamped to [2, MaxWindowSize].
func WindowSize(n int) uint8 {
	c := bits.Len(uint(n)) - 3
	if c < 2 {
		c = 2
	}
	if c > MaxWindowSize {
		c = MaxWindowSize
	}
	return uint8(c)
}

// MultiExpG1Pippenger computes scalars[0]*points[0] + ... + scalars[n-1]*points[n-1]
// with the bucket method.
//
// Each scalar is cut into windows of windowSize bits. For every window, the
// points are dropped into the bucket indexed by their digit, buckets are summed
// with batched affine additions and folded with a running sum. Windows are
// processed on up to numGoRoutines go-routines and combined from the most
// significant to the least significant one, so the result does not depend
// on scheduling.
//
// A windowSize of 0 selects WindowSize(n). numGoRoutines <= 0 defaults to the
// number of CPUs.
func MultiExpG1Pippenger(scalars []fr.Element, points []bls12381.G1Affine, windowSize uint8, numGoRoutines int) (*bls12381.G1Affine, error) {
	err := isValidNumGoRoutines(numGoRoutines)
	if err != nil {
		return nil, err
	}
	if err := checkLengths(scalars, points); err != nil {
		return nil, err
	}
	if windowSize > MaxWindowSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, windowSize)
	}
	if windowSize == 0 {
		windowSize = WindowSize(len(points))
	}
	if numGoRoutines <= 0 {
		numGoRoutines = runtime.NumCPU()
	}

	// Regular (non-montgomery) form, so that digits can be read off the limbs
	limbs := make([][4]uint64, len(scalars))
	for i := 0; i < len(scalars); i++ {
		limbs[i] = scalars[i].Bits()
	}

	c := int(windowSize)
	numWindows := (fr.Bits + c - 1) / c
	windowSums := make([]bls12381.G1Jac, numWindows)

	var errG errgroup.Group
	errG.SetLimit(numGoRoutines)
	for w := 0; w < numWindows; w++ {
		w := w
		errG.Go(func() error {
			sum, err := accumulateWindow(limbs, points, w, windowSize)
			if err != nil {
				return err
			}
			windowSums[w] = sum
			return nil
		})
	}
	if err := errG.Wait(); err != nil {
		return nil, err
	}

	// Take the highest window, then double c times before adding the next one
	acc := windowSums[numWindows-1]
	for w := numWindows - 2; w >= 0; w-- {
		for j := 0; j < c; j++ {
			acc.DoubleAssign()
		}
		acc.AddAssign(&windowSums[w])
	}

	var result bls12381.G1Affine
	result.FromJacobian(&acc)
	return &result, nil
}

// windowDigit returns the c-bit digit of the scalar at window windowIndex.
func windowDigit(limbs *[4]uint64, windowIndex int, c uint8) uint32 {
	bitOffset := windowIndex * int(c)
	limbIdx := bitOffset / 64
	if limbIdx >= len(limbs) {
		return 0
	}
	shift := uint(bitOffset % 64)

	digit := limbs[limbIdx] >> shift
	if shift+uint(c) > 64 && limbIdx+1 < len(limbs) {
		digit |= limbs[limbIdx+1] << (64 - shift)
	}
	return uint32(digit & ((uint64(1) << c) - 1))
}

// windowScratch holds the per-window buffers, they are recycled through scratchPool
type windowScratch struct {
	digits  []uint32
	counts  []int
	backing []bls12381.G1Affine
	buckets [][]bls12381.G1Affine
}

var scratchPool = sync.Pool{
	New: func() any {
		return &windowScratch{}
	},
}

func (s *windowScratch) reset(numPoints, numBuckets int) {
	s.digits = resize(s.digits, numPoints)
	s.counts = resize(s.counts, numBuckets)
	s.backing = resize(s.backing, numPoints)
	s.buckets = resize(s.buckets, numBuckets)
}

// resize returns a zeroed slice of length n, reusing buf when it is large enough
func resize[T any](buf []T, n int) []T {
	if cap(buf) < n {
		return make([]T, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

// accumulateWindow computes sum_{d=1}^{2^c - 1} d * B_d for one window,
// where B_d is the sum of the points whose digit in this window is d.
func accumulateWindow(limbs [][4]uint64, points []bls12381.G1Affine, windowIndex int, c uint8) (bls12381.G1Jac, error) {
	scratch, err := pool.Get[*windowScratch](&scratchPool)
	if err != nil {
		return bls12381.G1Jac{}, err
	}
	defer pool.Put(&scratchPool, scratch)

	// Digit zero contributes nothing and has no bucket
	numBuckets := (1 << c) - 1
	scratch.reset(len(points), numBuckets)

	for i := 0; i < len(points); i++ {
		digit := windowDigit(&limbs[i], windowIndex, c)
		if points[i].IsInfinity() {
			digit = 0
		}
		scratch.digits[i] = digit
		if digit != 0 {
			scratch.counts[digit-1]++
		}
	}

	// Lay the buckets out back to back in one allocation
	offset := 0
	for b := 0; b < numBuckets; b++ {
		end := offset + scratch.counts[b]
		scratch.buckets[b] = scratch.backing[offset:offset:end]
		offset = end
	}
	for i := 0; i < len(points); i++ {
		digit := scratch.digits[i]
		if digit == 0 {
			continue
		}
		scratch.buckets[digit-1] = append(scratch.buckets[digit-1], points[i])
	}

	bucketSums := MultiBatchAdditionBinaryTreeStride(scratch.buckets)

	// running holds B_{2^c-1} + ... + B_d, adding it once per d gives the weighted sum
	var running, windowSum bls12381.G1Jac
	for b := numBuckets - 1; b >= 0; b-- {
		running.AddAssign(&bucketSums[b])
		windowSum.AddAssign(&running)
	}
	return windowSum, nil
}
