package source

import (
	"encoding/json"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTrack(t *testing.T) {
	Convey("Track", t, func() {
		track := &Track{
			ID:       "62986583",
			Title:    "She so Heavy",
			Uploader: "E.T.",
		}

		Convey("String representation", func() {
			So(track.String(), ShouldEqual, "E.T. - She so Heavy")
			track.Uploader = ""
			So(track.String(), ShouldEqual, "She so Heavy")
		})

		Convey("Absent counters marshal to null", func() {
			data, err := json.Marshal(track)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"view_count":null`)
		})

		Convey("Present counters marshal to their value", func() {
			track.ViewCount = mo.Some[int64](42)
			data, err := json.Marshal(track)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"view_count":42`)
		})
	})
}

func TestStream(t *testing.T) {
	Convey("Stream", t, func() {
		s := &Stream{FormatID: "hls_aac_256", URL: "https://cf-hls.example.com/x.m3u8"}
		So(s.String(), ShouldEqual, "hls_aac_256")
	})
}
