// Package instance defines the MSM problem instance shared by the codec,
// the generator and the engine.
package instance

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/crate-crypto/go-msm/internal/group"
)

var ErrInvalidInstance = errors.New("invalid msm instance")

// Instance is one multi-scalar multiplication problem.
//
// Points[i] is paired with Scalars[i]; the order is significant only for
// this pairing, the result of the MSM does not depend on it.
type Instance struct {
	Points  []bls12381.G1Affine
	Scalars []fr.Element
}

// Collection is an ordered list of instances, typically all of the same
// power-of-two size.
type Collection []Instance

// Len returns the number of point/scalar pairs
func (inst *Instance) Len() int {
	return len(inst.Points)
}

// Validate checks the shape of the instance and that every point lies on the curve.
func (inst *Instance) Validate() error {
	return Validate(inst.Points, inst.Scalars)
}

// Validate checks that points and scalars can be combined in an MSM:
// they must have the same, non-zero, length and every point must be on the curve.
func Validate(points []bls12381.G1Affine, scalars []fr.Element) error {
	if len(points) != len(scalars) {
		return fmt.Errorf("%w: %d points but %d scalars", ErrInvalidInstance, len(points), len(scalars))
	}
	if len(points) == 0 {
		return fmt.Errorf("%w: instance is empty", ErrInvalidInstance)
	}
	for i := 0; i < len(points); i++ {
		if !group.IsOnCurve(&points[i]) {
			return fmt.Errorf("%w: point %d is not on the curve", ErrInvalidInstance, i)
		}
	}
	return nil
}

// Equal reports whether both instances hold the same pairs in the same order.
func (inst *Instance) Equal(other *Instance) bool {
	if len(inst.Points) != len(other.Points) || len(inst.Scalars) != len(other.Scalars) {
		return false
	}
	for i := range inst.Points {
		if !inst.Points[i].Equal(&other.Points[i]) {
			return false
		}
	}
	for i := range inst.Scalars {
		if !inst.Scalars[i].Equal(&other.Scalars[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the instance.
func (inst *Instance) Clone() Instance {
	points := make([]bls12381.G1Affine, len(inst.Points))
	copy(points, inst.Points)
	scalars := make([]fr.Element, len(inst.Scalars))
	copy(scalars, inst.Scalars)
	return Instance{Points: points, Scalars: scalars}
}

// Equal reports whether both collections hold equal instances in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(&other[i]) {
			return false
		}
	}
	return true
}
