// Error handling with the Result type.
//
// Result[T] is the type pervasively used for fallible operations across the
// allocator and the containers built on top of it. Unlike [sara/pkg/opt]'s
// Option, a Result that failed carries a [Kind] so callers (and tests) can
// tell a capacity failure from an out-of-range index without string
// matching. A Result is never built from a recovered panic; SArA has no host
// runtime to unwind into, so every fallible operation returns one of these
// instead of throwing. Only Expect and Unwrap panic, when called on an Err.
package result

import "fmt"

// Result is a type that represents either success (Ok) or failure (Err).
//
// The zero Result[T] is an Err with no reason, which matches the zero value
// of most of SArA's sentinel-heavy return types (e.g. a pointer of 0).
type Result[T any] struct {
	value  T
	ok     bool
	Reason error
}

// Ok builds a successful Result holding value.
func Ok[T any](value T) Result[T] { return Result[T]{value: value, ok: true} }

// Err builds a failed Result tagged with the given Kind and message.
func Err[T any](kind Kind, format string, args ...any) Result[T] {
	return Result[T]{Reason: &Error{kind, fmt.Sprintf(format, args...)}}
}

// Wrap builds a Result from a (value, ok) pair, the shape most of the
// allocator's and containers' internal helpers already return.
func Wrap[T any](value T, ok bool, kind Kind, format string, args ...any) Result[T] {
	if !ok {
		return Err[T](kind, format, args...)
	}

	return Ok(value)
}

func (r Result[T]) String() string {
	if r.IsOk() {
		return fmt.Sprintf("Ok(%v)", r.value)
	}

	return fmt.Sprintf("Err(%v)", r.Reason)
}

// IsOk returns true if the result is Ok.
func (r Result[T]) IsOk() bool { return r.ok }

// IsOkAnd returns true if the result is Ok and the value inside of it matches a predicate.
func (r Result[T]) IsOkAnd(f func(T) bool) bool { return r.ok && f(r.value) }

// IsErr returns true if the result is Err.
func (r Result[T]) IsErr() bool { return !r.ok }

// IsErrAnd returns true if the result is Err and its Kind matches k.
func (r Result[T]) IsErrAnd(k Kind) bool {
	if r.ok {
		return false
	}

	e, isErr := r.Reason.(*Error)
	return isErr && e.Kind == k
}

// Expect returns the contained Ok value, or panics with msg and the failure
// reason if the value is an Err.
func (r Result[T]) Expect(msg string) T {
	if !r.ok {
		panic(fmt.Sprintf("%s: %v", msg, r.Reason))
	}

	return r.value
}

// Unwrap returns the contained Ok value, or panics if the value is an Err.
func (r Result[T]) Unwrap() T {
	return r.Expect("called `Result.Unwrap()` on an `Err` value")
}

// UnwrapOr returns the contained Ok value or a provided default value.
func (r Result[T]) UnwrapOr(def T) T {
	if r.ok {
		return r.value
	}

	return def
}

// UnwrapOrDefault returns the contained Ok value or the zero value of T.
func (r Result[T]) UnwrapOrDefault() (v T) {
	if r.ok {
		v = r.value
	}

	return
}

// UnwrapOrElse returns the contained Ok value or computes it from a closure.
func (r Result[T]) UnwrapOrElse(f func() T) T {
	if r.ok {
		return r.value
	}

	return f()
}

// Get returns the contained value along with whether the Result was Ok, in
// the usual Go two-value form:
//
//	if v, ok := r.Get(); ok { ... }
func (r Result[T]) Get() (T, bool) { return r.value, r.ok }

// Unit is the value type for operations that succeed or fail without
// producing a value, e.g. Result[Unit].
type Unit struct{}
