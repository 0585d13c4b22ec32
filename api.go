package gomsm

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/generator"
	"github.com/crate-crypto/go-msm/internal/instance"
	"github.com/crate-crypto/go-msm/internal/multiexp"
	"github.com/rs/zerolog"
)

// Instance is one multi-scalar multiplication problem: Points[i] is paired with Scalars[i].
type Instance = instance.Instance

// InstanceCollection is an ordered list of instances.
type InstanceCollection = instance.Collection

// Config holds the knobs of a Context.
type Config struct {
	// NumGoRoutines bounds the concurrency of the optimized MSM and of the
	// generator. Values <= 0 default to the number of CPUs. It must be less than 1024.
	NumGoRoutines int

	// WindowSize is the Pippenger window in bits, between 1 and 16.
	// 0 picks a window from the size of each instance.
	WindowSize uint8

	// Logger receives debug and file cache events. The zero value logs nothing.
	Logger zerolog.Logger
}

// DefaultConfig uses every CPU, an adaptive window and no logging.
func DefaultConfig() Config {
	return Config{
		NumGoRoutines: 0,
		WindowSize:    0,
		Logger:        zerolog.Nop(),
	}
}

// Context holds the validated configuration used to generate instances
// and to compute multi-scalar multiplications.
//
// A Context is immutable and safe for concurrent use.
type Context struct {
	numGoRoutines int
	windowSize    uint8
	logger        zerolog.Logger
}

// NewContext validates cfg and returns a Context using it.
func NewContext(cfg Config) (*Context, error) {
	if err := multiexp.IsValidNumGoRoutines(cfg.NumGoRoutines); err != nil {
		return nil, err
	}
	if cfg.WindowSize > multiexp.MaxWindowSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, cfg.WindowSize)
	}

	return &Context{
		numGoRoutines: cfg.NumGoRoutines,
		windowSize:    cfg.WindowSize,
		logger:        cfg.Logger,
	}, nil
}

// GenerateInstance returns a random instance with size pairs.
//
// The points are random multiples of the generator and the scalars are
// uniform, both drawn from crypto/rand.
func (c *Context) GenerateInstance(size int) (Instance, error) {
	return generator.Generate(size, c.numGoRoutines)
}

// GenerateInstanceSeeded is GenerateInstance with the randomness derived from seed.
// Equal sizes and seeds always give equal instances.
func (c *Context) GenerateInstanceSeeded(size int, seed uint64) (Instance, error) {
	return generator.GenerateSeeded(size, seed, c.numGoRoutines)
}

// GenerateInstances returns count random instances with size pairs each.
func (c *Context) GenerateInstances(count, size int) (InstanceCollection, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: cannot generate %d instances", ErrInvalidSize, count)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	coll := make(InstanceCollection, count)
	for i := range coll {
		inst, err := c.GenerateInstance(size)
		if err != nil {
			return nil, err
		}
		coll[i] = inst
	}

	c.logger.Debug().Int("count", count).Int("size", size).Msg("generated instances")
	return coll, nil
}

// ComputeMSM returns scalars[0]*points[0] + ... + scalars[n-1]*points[n-1]
// using one double-and-add scalar multiplication per pair.
//
// It is slow and serves as the reference for ComputeMSMOpt.
func (c *Context) ComputeMSM(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error) {
	if err := instance.Validate(points, scalars); err != nil {
		return bls12381.G1Affine{}, err
	}

	result, err := multiexp.MultiExpG1Naive(scalars, points)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return *result, nil
}

// ComputeMSMOpt computes the same sum as ComputeMSM with the bucket method.
//
// The result does not depend on the configured window size or number of go-routines.
func (c *Context) ComputeMSMOpt(inst Instance) (bls12381.G1Affine, error) {
	if err := inst.Validate(); err != nil {
		return bls12381.G1Affine{}, err
	}

	windowSize := c.windowSize
	if windowSize == 0 {
		windowSize = multiexp.WindowSize(inst.Len())
	}
	c.logger.Debug().
		Int("size", inst.Len()).
		Uint8("window_size", windowSize).
		Int("go_routines", c.numGoRoutines).
		Msg("computing msm")

	result, err := multiexp.MultiExpG1Pippenger(inst.Scalars, inst.Points, windowSize, c.numGoRoutines)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return *result, nil
}
