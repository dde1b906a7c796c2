package utils

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// RunFnOnSliceSingleFailure runs fn concurrently on every element of slice,
// returning the first error
func RunFnOnSliceSingleFailure[T any](slice []T, fn func(T) error) error {
	_, err := MapSliceConcurrently(slice, func(el T) (struct{}, error) {
		return struct{}{}, fn(el)
	})
	return err
}

// MapSliceConcurrently runs fn concurrently on every element of slice. Results
// keep the order of slice and are returned even when a call fails, along with
// the first error.
func MapSliceConcurrently[T, R any](slice []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(slice))

	var g errgroup.Group
	for index, element := range slice {
		idx, el := index, element
		g.Go(func() error {
			result, err := fn(el)
			results[idx] = result
			return err
		})
	}

	return results, g.Wait()
}

// RunFnOnSliceMultipleFailures runs fn concurrently on every element of slice,
// errs[i] is the error of slice[i]
func RunFnOnSliceMultipleFailures[T any](slice []T, fn func(T) error) []error {
	errs := make([]error, len(slice))

	var wg sync.WaitGroup
	for index, element := range slice {
		wg.Add(1)

		go func(idx int, el T) {
			defer wg.Done()
			errs[idx] = fn(el)
		}(index, element)
	}
	wg.Wait()

	return errs
}

// Sum adds up values
func Sum[T int | int64](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}

	return total
}
