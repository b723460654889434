package utils

import "errors"

var (
	// ErrInvalidParameter is returned when a solver input violates a precondition
	// (zero wave speed, fewer than two nodes, mismatched system lengths).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateSystem is returned when a pivot vanishes during tridiagonal
	// elimination or the final substitution.
	ErrDegenerateSystem = errors.New("degenerate tridiagonal system")
)
