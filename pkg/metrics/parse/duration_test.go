package parse

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDuration(t *testing.T) {
	Convey("While parsing duration tokens", t, func() {
		Convey("H:MM:SS should convert to seconds", func() {
			So(Duration("1:02:03"), ShouldEqual, 3723.0)
		})

		Convey("H:MM:SS with fraction should keep the fraction", func() {
			So(Duration("0:01:30.25"), ShouldEqual, 90.25)
		})

		Convey("MM:SS should convert to seconds", func() {
			So(Duration("0:05.50"), ShouldEqual, 5.5)
		})

		Convey("Bare decimal should pass through", func() {
			So(Duration("12.25"), ShouldEqual, 12.25)
		})

		Convey("Surrounding whitespace should be tolerated", func() {
			So(Duration("  2:30 "), ShouldEqual, 150.0)
		})

		Convey("Unparsable input should fail soft to zero", func() {
			So(Duration("not-a-duration"), ShouldEqual, 0.0)
			So(Duration("1:xx:03"), ShouldEqual, 0.0)
			So(Duration(""), ShouldEqual, 0.0)
		})
	})
}
