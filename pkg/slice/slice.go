// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the generic helpers the transcript pipeline uses to reshape
report records without mutating them.

Every helper returns a fresh slice, so callers may keep using the input (a request
body, a parsed report) after reshaping it.
*/
package slice

// Map returns transform applied to every element of input, in order.
// A nil input stays nil.
func Map[In, Out any](input []In, transform func(In) Out) []Out {
	if input == nil {
		return nil
	}

	mapped := make([]Out, 0, len(input))
	for _, element := range input {
		mapped = append(mapped, transform(element))
	}
	return mapped
}

// Filter returns the elements of input for which keep reports true, in order.
// It returns nil when nothing is kept.
func Filter[T any](input []T, keep func(T) bool) []T {
	var kept []T
	for _, element := range input {
		if keep(element) {
			kept = append(kept, element)
		}
	}
	return kept
}

// Reduce folds input into a single value, starting from initial.
func Reduce[T, Acc any](input []T, initial Acc, fold func(Acc, T) Acc) Acc {
	accumulated := initial
	for _, element := range input {
		accumulated = fold(accumulated, element)
	}
	return accumulated
}
