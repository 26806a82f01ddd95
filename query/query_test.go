package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soundrip-cli/soundrip/filesystem"
	"github.com/soundrip-cli/soundrip/key"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		q1 := "aphex twin"
		q2 := "apparat"

		Convey("When remembering queries", func() {
			err := Remember(q1, 1)
			So(err, ShouldBeNil)
			err = Remember(q2, 10) // Higher weight
			So(err, ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				// Clear memory cache to force read from file
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("ap")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "apparat")
			})

			Convey("Then the best suggestion should be exposed directly", func() {
				suggestionCache = make(map[string][]*queryRecord)

				So(Suggest("ap").MustGet(), ShouldEqual, "apparat")
				So(Suggest("zzzzz").IsAbsent(), ShouldBeTrue)
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  Aphex TWIN  "), ShouldEqual, "aphex twin")
			})
		})
	})
}
