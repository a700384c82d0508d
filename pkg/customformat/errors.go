package customformat

import "errors"

var (
	// ErrUnknownCondition indicates a condition type that is not supported.
	ErrUnknownCondition = errors.New("unknown condition type")

	// ErrInvalidCondition indicates a condition value that cannot be compiled.
	ErrInvalidCondition = errors.New("invalid condition")
)
