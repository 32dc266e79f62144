//go:build go1.23

package result

import "iter"

// Collect iterates over a sequence of Result[T] values, collecting all
// successful values into a slice.
//
// If any Result in the sequence is an Err, Collect returns nil and the
// encountered reason immediately.
func Collect[T any](seq iter.Seq[Result[T]]) (values []T, err error) {
	for r := range seq {
		if r.IsErr() {
			return nil, r.Reason
		}

		values = append(values, r.Unwrap())
	}

	return
}

// Iter returns an iterator over the possibly contained value.
//
// The iterator yields one value if the result is Ok, otherwise none.
func (r Result[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if r.IsOk() {
			yield(r.value)
		}
	}
}
