package algorithm

import "fmt"

// Factorial returns n! for n in [0, MaxFactorialN].
func Factorial(n int) (FactorialOutcome, error) {
	if n < 0 {
		return FactorialOutcome{}, fmt.Errorf("%w: factorial n must be non-negative, got %d", ErrInvalidArgument, n)
	}
	if n > MaxFactorialN {
		return FactorialOutcome{}, fmt.Errorf("%w: factorial n must be at most %d, got %d", ErrOverflow, MaxFactorialN, n)
	}
	if n == 0 || n == 1 {
		return FactorialOutcome{N: n, Result: 1}, nil
	}

	result := int64(1)
	for i := 2; i <= n; i++ {
		result *= int64(i)
	}
	return FactorialOutcome{N: n, Result: result}, nil
}
