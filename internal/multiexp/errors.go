package multiexp

import "errors"

var (
	ErrTooManyGoRoutines = errors.New("number of go-routines must be less than 1024")
	ErrInvalidWindowSize = errors.New("window size must be at most 16 bits")
	ErrMismatchedTable   = errors.New("number of scalars does not match the number of points in the table")
)
