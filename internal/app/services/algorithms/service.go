// Package algorithms exposes the algorithm engine to transports, recording a
// metric and a debug log entry for every run.
package algorithms

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/R3E-Network/algorithm_service/internal/algorithm"
	"github.com/R3E-Network/algorithm_service/internal/app/metrics"
	"github.com/R3E-Network/algorithm_service/internal/logging"
)

// Operation names used for metrics and logs.
const (
	OpBinarySearch = "binarySearch"
	OpQuickSort    = "quickSort"
	OpBubbleSort   = "bubbleSort"
	OpFibonacci    = "fibonacci"
	OpPrimeNumbers = "primeNumbers"
	OpFactorial    = "factorial"
)

// Service runs algorithms on behalf of callers.
type Service struct {
	log logrus.FieldLogger
}

// New constructs an algorithm service.
func New(log logrus.FieldLogger) *Service {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &Service{log: log.WithField("component", "algorithms")}
}

// Search locates target in a sorted copy of array.
func (s *Service) Search(ctx context.Context, array []int, target int) algorithm.SearchOutcome {
	start := time.Now()
	out := algorithm.Search(array, target)
	s.observe(ctx, OpBinarySearch, start, nil)
	return out
}

// QuickSort sorts a copy of array with quicksort.
func (s *Service) QuickSort(ctx context.Context, array []int) (algorithm.SortOutcome, error) {
	return s.sortWith(ctx, OpQuickSort, algorithm.QuickSort, array)
}

// BubbleSort sorts a copy of array with bubble sort.
func (s *Service) BubbleSort(ctx context.Context, array []int) (algorithm.SortOutcome, error) {
	return s.sortWith(ctx, OpBubbleSort, algorithm.BubbleSort, array)
}

// Sort resolves name to an algorithm and sorts a copy of array with it.
func (s *Service) Sort(ctx context.Context, name string, array []int) (algorithm.SortOutcome, error) {
	algo, err := algorithm.ParseAlgorithm(name)
	if err != nil {
		s.observe(ctx, "sort", time.Now(), err)
		return algorithm.SortOutcome{}, err
	}
	op := OpQuickSort
	if algo == algorithm.BubbleSort {
		op = OpBubbleSort
	}
	return s.sortWith(ctx, op, algo, array)
}

func (s *Service) sortWith(ctx context.Context, op string, algo algorithm.Algorithm, array []int) (algorithm.SortOutcome, error) {
	start := time.Now()
	out, err := algorithm.SortBy(array, algo)
	s.observe(ctx, op, start, err)
	return out, err
}

// Fibonacci returns the first n Fibonacci numbers.
func (s *Service) Fibonacci(ctx context.Context, n int) (algorithm.SequenceOutcome, error) {
	start := time.Now()
	out, err := algorithm.Fibonacci(n)
	s.observe(ctx, OpFibonacci, start, err)
	return out, err
}

// Primes returns every prime up to limit.
func (s *Service) Primes(ctx context.Context, limit int) algorithm.PrimeOutcome {
	start := time.Now()
	out := algorithm.Primes(limit)
	s.observe(ctx, OpPrimeNumbers, start, nil)
	return out
}

// Factorial returns n!.
func (s *Service) Factorial(ctx context.Context, n int) (algorithm.FactorialOutcome, error) {
	start := time.Now()
	out, err := algorithm.Factorial(n)
	s.observe(ctx, OpFactorial, start, err)
	return out, err
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err == nil {
		metrics.RecordAlgorithmRun(op, metrics.OutcomeOK, elapsed)
		return
	}

	outcome := metrics.OutcomeError
	if errors.Is(err, algorithm.ErrInvalidArgument) || errors.Is(err, algorithm.ErrUnknownAlgorithm) {
		outcome = metrics.OutcomeInvalid
	}
	metrics.RecordAlgorithmRun(op, outcome, elapsed)
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{
		"operation": op,
		"error":     err.Error(),
	}).Debug("algorithm rejected input")
}
