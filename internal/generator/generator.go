// Package generator creates random MSM instances.
//
// Points are random multiples of the group generator, so they are always on
// the curve and in the prime order subgroup.
package generator

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/group"
	"github.com/crate-crypto/go-msm/internal/instance"
	"github.com/crate-crypto/go-msm/internal/multiexp"
	"github.com/crate-crypto/go-msm/internal/prng"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSize is returned when an instance with no pairs is requested.
var ErrInvalidSize = errors.New("instance size must be positive")

const (
	// Labels of the seeded streams
	ScalarLabel = "go-msm/generator/scalars"
	PointLabel  = "go-msm/generator/points"

	// 128 precomputed multiples of G
	baseTableWindowBits = 8
)

var baseTable = sync.OnceValues(func() (*multiexp.MSMTable, error) {
	return multiexp.NewMSMTable([]bls12381.G1Affine{group.Generator()}, baseTableWindowBits)
})

// Generate returns an instance of size pairs, drawn from crypto/rand.
//
// numGoRoutines bounds the go-routines used to compute the points, values <= 0
// default to the number of CPUs.
func Generate(size, numGoRoutines int) (instance.Instance, error) {
	if size <= 0 {
		return instance.Instance{}, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	scalars, err := randomScalars(size)
	if err != nil {
		return instance.Instance{}, err
	}
	multipliers, err := randomScalars(size)
	if err != nil {
		return instance.Instance{}, err
	}

	points, err := baseMultiples(multipliers, numGoRoutines)
	if err != nil {
		return instance.Instance{}, err
	}
	return instance.Instance{Points: points, Scalars: scalars}, nil
}

// GenerateSeeded is Generate with all randomness taken from seeded streams.
//
// The instance only depends on size and seed.
func GenerateSeeded(size int, seed uint64, numGoRoutines int) (instance.Instance, error) {
	if size <= 0 {
		return instance.Instance{}, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	scalars := prng.NewStream(ScalarLabel, seed).Scalars(size)
	multipliers := prng.NewStream(PointLabel, seed).Scalars(size)

	points, err := baseMultiples(multipliers, numGoRoutines)
	if err != nil {
		return instance.Instance{}, err
	}
	return instance.Instance{Points: points, Scalars: scalars}, nil
}

func randomScalars(n int) ([]fr.Element, error) {
	scalars := make([]fr.Element, n)
	for i := range scalars {
		if _, err := scalars[i].SetRandom(); err != nil {
			return nil, fmt.Errorf("could not sample scalar: %w", err)
		}
	}
	return scalars, nil
}

// baseMultiples computes multipliers[i] * G for every i.
//
// The multipliers are split in contiguous chunks, one per go-routine, and
// all of the results are normalised with a single batch inversion.
func baseMultiples(multipliers []fr.Element, numGoRoutines int) ([]bls12381.G1Affine, error) {
	table, err := baseTable()
	if err != nil {
		return nil, err
	}
	if numGoRoutines <= 0 {
		numGoRoutines = runtime.NumCPU()
	}

	n := len(multipliers)
	chunkSize := (n + numGoRoutines - 1) / numGoRoutines
	multiples := make([]bls12381.G1Jac, n)

	var errG errgroup.Group
	errG.SetLimit(numGoRoutines)
	for start := 0; start < n; start += chunkSize {
		start := start
		end := min(start+chunkSize, n)
		errG.Go(func() error {
			for i := start; i < end; i++ {
				multiple, err := table.MultiScalarMul(multipliers[i : i+1])
				if err != nil {
					return err
				}
				multiples[i] = multiple
			}
			return nil
		})
	}
	if err := errG.Wait(); err != nil {
		return nil, err
	}

	return group.BatchJacobianToAffine(multiples), nil
}
