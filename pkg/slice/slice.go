// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package slice complements the standard [slices] package with Map and Filter.
Both keep a nil input nil so optional JSON arrays stay absent.
*/
package slice

// Map applies transform to every element.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](input []T, keep func(T) bool) []T {
	if input == nil {
		return nil
	}

	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}

	return result
}
