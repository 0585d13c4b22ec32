package gomsm

import (
	"github.com/crate-crypto/go-msm/internal/generator"
	"github.com/crate-crypto/go-msm/internal/instance"
	"github.com/crate-crypto/go-msm/internal/multiexp"
	"github.com/crate-crypto/go-msm/serialization"
)

var (
	// ErrInvalidSize is returned when an instance with no pairs, or a negative
	// number of instances, is requested.
	ErrInvalidSize = generator.ErrInvalidSize

	// ErrInvalidInstance is returned when the points and scalars handed to an MSM
	// differ in length, are empty, or a point is not on the curve.
	ErrInvalidInstance = instance.ErrInvalidInstance

	// ErrMalformedInput is returned when bytes do not decode to an instance collection.
	ErrMalformedInput = serialization.ErrMalformedInput

	ErrTooManyGoRoutines = multiexp.ErrTooManyGoRoutines
	ErrInvalidWindowSize = multiexp.ErrInvalidWindowSize
)
