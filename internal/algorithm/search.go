package algorithm

import "slices"

// Search sorts a private copy of array and binary-searches it for target.
// The returned index refers to the sorted copy; NotFound when absent. When
// target occurs more than once, any of its positions may be reported.
func Search(array []int, target int) SearchOutcome {
	sorted := clone(array)
	slices.Sort(sorted)

	return SearchOutcome{
		OriginalArray: clone(array),
		Target:        target,
		Index:         binarySearch(sorted, target),
	}
}

func binarySearch(sorted []int, target int) int {
	low, high := 0, len(sorted)-1
	for low <= high {
		mid := low + (high-low)/2
		switch {
		case sorted[mid] == target:
			return mid
		case sorted[mid] < target:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return NotFound
}
