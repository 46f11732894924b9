package algorithm

import "fmt"

// SortBy sorts a copy of array ascending with the requested algorithm. The
// caller's slice is left untouched and reported as OriginalArray.
func SortBy(array []int, algo Algorithm) (SortOutcome, error) {
	sorted := clone(array)

	switch algo {
	case QuickSort:
		quickSort(sorted, 0, len(sorted)-1)
	case BubbleSort:
		bubbleSort(sorted)
	default:
		return SortOutcome{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}

	return SortOutcome{
		OriginalArray: clone(array),
		SortedArray:   sorted,
		Algorithm:     algo,
	}, nil
}

// quickSort sorts a[low..high] in place. The pivot is always the last element
// of the range, so sorted and reverse-sorted input degrade to O(n²).
func quickSort(a []int, low, high int) {
	if low >= high {
		return
	}
	p := partition(a, low, high)
	quickSort(a, low, p-1)
	quickSort(a, p+1, high)
}

// partition is the Lomuto scheme: everything <= pivot ends up left of the
// returned index, everything greater to its right.
func partition(a []int, low, high int) int {
	pivot := a[high]
	i := low - 1
	for j := low; j < high; j++ {
		if a[j] <= pivot {
			i++
			a[i], a[j] = a[j], a[i]
		}
	}
	a[i+1], a[high] = a[high], a[i+1]
	return i + 1
}

// bubbleSort makes n-1 full passes with no early exit.
func bubbleSort(a []int) {
	n := len(a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
			}
		}
	}
}
