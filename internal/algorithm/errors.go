package algorithm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates an input outside the operation's domain.
	ErrInvalidArgument = errors.New("algorithm: invalid argument")
	// ErrOverflow indicates the result would not fit in an int64.
	ErrOverflow = fmt.Errorf("%w: result overflows int64", ErrInvalidArgument)
	// ErrUnknownAlgorithm indicates SortBy was given an unsupported algorithm.
	ErrUnknownAlgorithm = errors.New("algorithm: unknown sort algorithm")
)
