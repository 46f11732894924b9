package algorithm

import "fmt"

// Fibonacci returns the first n Fibonacci numbers, starting 0, 1, 1, 2, ...
// n must be in [0, MaxFibonacciN].
func Fibonacci(n int) (SequenceOutcome, error) {
	if n < 0 {
		return SequenceOutcome{}, fmt.Errorf("%w: fibonacci n must be non-negative, got %d", ErrInvalidArgument, n)
	}
	if n > MaxFibonacciN {
		return SequenceOutcome{}, fmt.Errorf("%w: fibonacci n must be at most %d, got %d", ErrOverflow, MaxFibonacciN, n)
	}

	seq := make([]int64, 0, n)
	if n >= 1 {
		seq = append(seq, 0)
	}
	if n >= 2 {
		seq = append(seq, 1)
	}
	for i := 2; i < n; i++ {
		seq = append(seq, seq[i-1]+seq[i-2])
	}

	return SequenceOutcome{N: n, Sequence: seq}, nil
}
