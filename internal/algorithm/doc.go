// Package algorithm implements the algorithm engine: a handful of textbook
// search, sort and number-theory routines computed on demand.
//
// Every operation is a pure function of its input. Nothing is shared between
// calls, inputs are never mutated (work happens on private copies), and each
// call returns an outcome value that echoes the input next to the result so
// callers can trace what was computed.
//
// Operations:
//
//   - Search: sorts a copy of the array and binary-searches it. The returned
//     index refers to the sorted copy, or is NotFound (-1).
//   - SortBy: QuickSort (Lomuto partition, last element as pivot) or
//     BubbleSort (unconditional n-1 passes). Both ascending, neither stable.
//   - Fibonacci: the first n numbers of 0, 1, 1, 2, 3, 5, ...
//   - Primes: every prime p with 2 ≤ p ≤ limit, by 6k±1 trial division.
//   - Factorial: n! with 0! = 1! = 1.
//
// Complexity:
//
//   - Search:     O(n log n) for the sort, O(log n) for the probe.
//   - QuickSort:  O(n log n) expected, O(n²) on adversarial input such as an
//     already sorted or reverse-sorted array. The pivot is never randomized.
//   - BubbleSort: Θ(n²) comparisons regardless of input order.
//   - Fibonacci:  O(n).
//   - Primes:     O(limit·√limit) in the worst case.
//   - Factorial:  O(n).
//
// Integer width:
//
// Sequence and factorial values are int64. The largest inputs that fit are
// MaxFibonacciN (93 elements, ending at F(92)) and MaxFactorialN (20!). Larger
// inputs fail with ErrOverflow instead of wrapping around.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidArgument: negative n for Fibonacci or Factorial.
//   - ErrOverflow: n past the int64 ceiling; also matches ErrInvalidArgument.
//   - ErrUnknownAlgorithm: SortBy called with an unrecognized algorithm.
//
// Search, SortBy (with a known algorithm) and Primes never fail: empty arrays
// and limits below 2 are valid inputs with empty or sentinel results.
package algorithm
