package history

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soundrip-cli/soundrip/filesystem"
	"github.com/soundrip-cli/soundrip/source"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a resolved track", t, func() {
		track := source.Track{
			ID:         "1337",
			Title:      "some song",
			Uploader:   "some artist",
			WebpageURL: "https://soundcloud.com/some-artist/some-song",
			Duration:   180,
			Streams:    []*source.Stream{{FormatID: "http_mp3_128"}},
		}

		Convey("When saving the track", func() {
			err := Save(&track)
			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the track should be saved", func() {
					tracks, err := Get()
					So(err, ShouldBeNil)
					So(len(tracks), ShouldBeGreaterThan, 0)

					record := tracks[fmt.Sprintf("%s (%s)", track.Title, track.ID)]
					So(record, ShouldNotBeNil)
					So(record.Uploader, ShouldEqual, track.Uploader)
					So(record.StreamCount, ShouldEqual, 1)
					So(record.ResolvedAt.IsZero(), ShouldBeFalse)
				})

				Convey("And removal should delete the record", func() {
					tracks, err := Get()
					So(err, ShouldBeNil)

					record := tracks[fmt.Sprintf("%s (%s)", track.Title, track.ID)]
					So(Remove(record), ShouldBeNil)

					tracks, err = Get()
					So(err, ShouldBeNil)
					_, exists := tracks[fmt.Sprintf("%s (%s)", track.Title, track.ID)]
					So(exists, ShouldBeFalse)
				})
			})
		})
	})
}
