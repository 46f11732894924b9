package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/R3E-Network/algorithm_service/internal/algorithm"
)

func (h *handler) binarySearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	array, err := intArrayParam(query, "array", h.limits.MaxArrayLen)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	target, err := intParam(query, "target")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Algorithms.Search(r.Context(), array, target))
}

func (h *handler) quickSort(w http.ResponseWriter, r *http.Request) {
	array, err := intArrayParam(r.URL.Query(), "array", h.limits.MaxArrayLen)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.app.Algorithms.QuickSort(r.Context(), array)
	if err != nil {
		writeAlgorithmError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) bubbleSort(w http.ResponseWriter, r *http.Request) {
	array, err := intArrayParam(r.URL.Query(), "array", h.limits.MaxArrayLen)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.app.Algorithms.BubbleSort(r.Context(), array)
	if err != nil {
		writeAlgorithmError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) fibonacci(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r.URL.Query(), "n")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.app.Algorithms.Fibonacci(r.Context(), n)
	if err != nil {
		writeAlgorithmError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) primeNumbers(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if limit > h.limits.MaxPrimeLimit {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parameter \"limit\" exceeds %d", h.limits.MaxPrimeLimit))
		return
	}
	writeJSON(w, http.StatusOK, h.app.Algorithms.Primes(r.Context(), limit))
}

func (h *handler) factorial(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r.URL.Query(), "n")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.app.Algorithms.Factorial(r.Context(), n)
	if err != nil {
		writeAlgorithmError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// writeAlgorithmError answers rejected arguments with a bare 400.
func writeAlgorithmError(w http.ResponseWriter, err error) {
	if errors.Is(err, algorithm.ErrInvalidArgument) || errors.Is(err, algorithm.ErrUnknownAlgorithm) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
