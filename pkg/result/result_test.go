package result_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "sara/pkg/result"
)

func ExampleCollect_ok() {
	seq := func(yield func(Result[string]) bool) {
		for _, v := range []Result[string]{Ok("hello"), Ok("world")} {
			if !yield(v) {
				return
			}
		}
	}

	fmt.Println(Collect(seq))
	// Output: [hello world] <nil>
}

func ExampleCollect_err() {
	seq := func(yield func(Result[string]) bool) {
		for _, v := range []Result[string]{Ok("hello"), Err[string](InvalidArgument, "bad"), Ok("world")} {
			if !yield(v) {
				return
			}
		}
	}

	fmt.Println(Collect(seq))
	// Output: [] invalid argument: bad
}

func TestResult(t *testing.T) {
	Convey("Given a new result", t, func() {
		ok := Ok(123)

		isNeg := func(v int) bool { return v < 0 }

		Convey("It should be ok", func() {
			So(ok.IsOk(), ShouldBeTrue)
			So(ok.IsOkAnd(isNeg), ShouldBeFalse)
			So(ok.IsErr(), ShouldBeFalse)
			So(ok.IsErrAnd(CapacityExhausted), ShouldBeFalse)
			So(ok.Unwrap(), ShouldEqual, 123)
			So(ok.Expect("should be ok"), ShouldEqual, 123)
			So(ok.UnwrapOr(0), ShouldEqual, 123)
			So(ok.UnwrapOrDefault(), ShouldEqual, 123)
			So(ok.UnwrapOrElse(func() int { return 0 }), ShouldEqual, 123)

			v, isOk := ok.Get()
			So(isOk, ShouldBeTrue)
			So(v, ShouldEqual, 123)

			So(ok.String(), ShouldEqual, "Ok(123)")
		})

		Convey("When mapped", func() {
			doubled := Map(ok, func(v int) int { return v * 2 })
			So(doubled.Unwrap(), ShouldEqual, 246)
		})
	})

	Convey("Given a failed result", t, func() {
		err := Err[int](CapacityExhausted, "no arena with %d free bytes", 1024)

		Convey("It should be an error", func() {
			So(err.IsOk(), ShouldBeFalse)
			So(err.IsErr(), ShouldBeTrue)
			So(err.IsErrAnd(CapacityExhausted), ShouldBeTrue)
			So(err.IsErrAnd(InvalidArgument), ShouldBeFalse)
			So(err.UnwrapOr(7), ShouldEqual, 7)
			So(err.UnwrapOrDefault(), ShouldEqual, 0)
			So(err.UnwrapOrElse(func() int { return 9 }), ShouldEqual, 9)

			_, isOk := err.Get()
			So(isOk, ShouldBeFalse)

			So(func() { err.Unwrap() }, ShouldPanic)
		})

		Convey("When mapped", func() {
			mapped := Map(err, func(v int) int { return v * 2 })
			So(mapped.IsErr(), ShouldBeTrue)
		})

		Convey("When mapped with MapOr", func() {
			So(MapOr(err, -1, func(v int) int { return v * 2 }), ShouldEqual, -1)
		})
	})

	Convey("Given a Wrap'd (value, ok) pair", t, func() {
		So(Wrap(42, true, InvalidArgument, "n/a").Unwrap(), ShouldEqual, 42)
		So(Wrap(42, false, InvalidArgument, "n/a").IsErr(), ShouldBeTrue)
	})
}

func TestAndThen(t *testing.T) {
	Convey("Given a chain of fallible steps", t, func() {
		step1 := Ok(10)

		Convey("AndThen propagates through Ok", func() {
			r := AndThen(step1, func(v int) Result[int] { return Ok(v + 1) })
			So(r.Unwrap(), ShouldEqual, 11)
		})

		Convey("AndThen short-circuits on Err", func() {
			failed := Err[int](StateViolation, "overfree")
			r := AndThen(failed, func(v int) Result[int] { return Ok(v + 1) })
			So(r.IsErr(), ShouldBeTrue)
		})
	})
}
