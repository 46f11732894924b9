package algorithm

import (
	"fmt"
	"strings"
)

// NotFound is the index Search reports when the target is absent.
const NotFound = -1

const (
	// MaxFibonacciN is the longest Fibonacci sequence whose every element fits in an int64.
	MaxFibonacciN = 93
	// MaxFactorialN is the largest n whose factorial fits in an int64.
	MaxFactorialN = 20
)

// Algorithm names a sorting algorithm supported by SortBy.
type Algorithm string

const (
	QuickSort  Algorithm = "quickSort"
	BubbleSort Algorithm = "bubbleSort"
)

// ParseAlgorithm resolves a case-insensitive algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quicksort":
		return QuickSort, nil
	case "bubblesort":
		return BubbleSort, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// SearchOutcome is the result of Search.
type SearchOutcome struct {
	OriginalArray []int `json:"originalArray"`
	Target        int   `json:"target"`
	Index         int   `json:"index"`
}

// Found reports whether the target was located.
func (o SearchOutcome) Found() bool {
	return o.Index != NotFound
}

// SortOutcome is the result of SortBy.
type SortOutcome struct {
	OriginalArray []int     `json:"originalArray"`
	SortedArray   []int     `json:"sortedArray"`
	Algorithm     Algorithm `json:"algorithm"`
}

// SequenceOutcome is the result of Fibonacci.
type SequenceOutcome struct {
	N        int     `json:"n"`
	Sequence []int64 `json:"sequence"`
}

// PrimeOutcome is the result of Primes.
type PrimeOutcome struct {
	Limit  int   `json:"limit"`
	Primes []int `json:"primes"`
}

// FactorialOutcome is the result of Factorial.
type FactorialOutcome struct {
	N      int   `json:"n"`
	Result int64 `json:"result"`
}

// clone returns a non-nil copy of values.
func clone(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}
