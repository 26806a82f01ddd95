package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Semantic version comparison", t, func() {
		Convey("Orders versions by component", func() {
			So(compareMust("1.2.3", "1.2.2"), ShouldEqual, 1)
			So(compareMust("1.2.3", "1.3.0"), ShouldEqual, -1)
			So(compareMust("2.0.0", "1.9.9"), ShouldEqual, 1)
			So(compareMust("1.2.3", "1.2.3"), ShouldEqual, 0)
		})

		Convey("Tolerates the v prefix", func() {
			So(compareMust("v1.0.1", "1.0.0"), ShouldEqual, 1)
		})

		Convey("Rejects malformed versions", func() {
			_, err := Compare("abc", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func compareMust(a, b string) int {
	c, err := Compare(a, b)
	So(err, ShouldBeNil)
	return c
}
