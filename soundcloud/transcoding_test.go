package soundcloud

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Transcoding classification", t, func() {
		Convey("Should map progressive announcements to http", func() {
			identity := Classify(Transcoding{
				URL:    "https://api-v2.soundcloud.com/media/soundcloud:tracks:1/stream/progressive",
				Preset: "mp3_standard",
				Format: TranscodingFormat{Protocol: "progressive", MimeType: "audio/mpeg"},
			})

			So(identity.Protocol, ShouldEqual, ProtocolHTTP)
			So(identity.Extension, ShouldEqual, "mp3")
			So(identity.Key(), ShouldEqual, "http_mp3")
		})

		Convey("Should trust the indirection URL over a vague protocol", func() {
			identity := Classify(Transcoding{
				URL:    "https://api-v2.soundcloud.com/media/soundcloud:tracks:1/stream/hls",
				Preset: "aac_256k",
				Format: TranscodingFormat{Protocol: "", MimeType: "audio/mp4; codecs=\"mp4a.40.2\""},
			})

			So(identity.Protocol, ShouldEqual, ProtocolHLS)
			So(identity.Extension, ShouldEqual, "aac")
		})

		Convey("Should recognize encrypted segment delivery", func() {
			identity := Classify(Transcoding{
				URL:    "https://api-v2.soundcloud.com/media/soundcloud:tracks:1/stream/encrypted-hls",
				Preset: "aac_256k",
				Format: TranscodingFormat{Protocol: "encrypted-hls", MimeType: "audio/mp4"},
			})

			So(identity.Protocol, ShouldEqual, ProtocolHLSAES)
		})

		Convey("Should read the codec out of an ogg container mime type", func() {
			identity := Classify(Transcoding{
				URL:    "https://api-v2.soundcloud.com/media/soundcloud:tracks:1/stream/hls",
				Preset: "abr_sq",
				Format: TranscodingFormat{Protocol: "hls", MimeType: "audio/ogg; codecs=\"opus\""},
			})

			So(identity.Extension, ShouldEqual, "opus")
		})

		Convey("Should flag snipped and preview-path variants", func() {
			So(Classify(Transcoding{Snipped: true}).Preview, ShouldBeTrue)
			So(Classify(Transcoding{
				URL: "https://api-v2.soundcloud.com/media/soundcloud:tracks:1/preview/hls",
			}).Preview, ShouldBeTrue)
		})

		Convey("Should be deterministic across repeated calls", func() {
			input := Transcoding{
				URL:    "https://api-v2.soundcloud.com/media/soundcloud:tracks:1/stream/hls",
				Preset: "opus_0_0",
				Format: TranscodingFormat{Protocol: "hls", MimeType: "audio/ogg; codecs=\"opus\""},
			}

			first := Classify(input)
			for i := 0; i < 10; i++ {
				So(Classify(input), ShouldResemble, first)
			}
		})
	})
}

func TestBuildStream(t *testing.T) {
	Convey("Stream descriptor assembly", t, func() {
		Convey("Should backfill bitrate and extension from the stream URL", func() {
			stream := buildStream(
				Identity{Protocol: ProtocolHTTP},
				"https://cf-media.sndcdn.com/abc.128.mp3?Policy=x",
			)

			So(stream.Bitrate, ShouldEqual, 128)
			So(stream.Extension, ShouldEqual, "mp3")
			So(stream.FormatID, ShouldEqual, "http_mp3_128")
		})

		Convey("Should mark aac as the premium quality tier", func() {
			stream := buildStream(
				Identity{Protocol: ProtocolHLS, Extension: "aac"},
				"https://cf-media.sndcdn.com/playlist.m3u8?Policy=x",
			)

			So(stream.Bitrate, ShouldEqual, 256)
			So(stream.Quality, ShouldEqual, 5)
			So(stream.Note, ShouldEqual, "Premium")
		})

		Convey("Should demote previews detected from the stream URL", func() {
			stream := buildStream(
				Identity{Protocol: ProtocolHLS, Extension: "mp3"},
				"https://cf-media.sndcdn.com/media/playlist/0/30/abc.m3u8",
			)

			So(stream.Preview, ShouldBeTrue)
			So(stream.Preference, ShouldEqual, -10)
			So(stream.FormatID, ShouldEqual, "hls_mp3_preview")
		})

		Convey("Should always declare audio-only content", func() {
			stream := buildStream(Identity{Protocol: ProtocolHTTP, Extension: "mp3"}, "https://cf-media.sndcdn.com/a.mp3")

			So(stream.Vcodec, ShouldEqual, "none")
		})
	})
}

func TestSelector(t *testing.T) {
	Convey("Format selector", t, func() {
		Convey("Should accept exactly the configured identities", func() {
			selector := NewSelector([]string{"hls_aac", "http_mp3"})

			So(selector.IsRequested("hls_aac"), ShouldBeTrue)
			So(selector.IsRequested("http_mp3"), ShouldBeTrue)
			So(selector.IsRequested("hls_opus"), ShouldBeFalse)
			So(selector.IsRequested("http_aac"), ShouldBeFalse)
		})

		Convey("Should expand the default alias in place", func() {
			selector := NewSelector([]string{"default"})

			for _, key := range DefaultFormats {
				So(selector.IsRequested(key), ShouldBeTrue)
			}
		})

		Convey("Should fall back to defaults for an empty configuration", func() {
			selector := NewSelector(nil)

			So(selector.IsRequested("http_mp3"), ShouldBeTrue)
		})

		Convey("Should match wildcard halves", func() {
			selector := NewSelector([]string{"hls_*"})

			So(selector.IsRequested("hls_aac"), ShouldBeTrue)
			So(selector.IsRequested("hls_opus"), ShouldBeTrue)
			So(selector.IsRequested("http_mp3"), ShouldBeFalse)

			anyMp3 := NewSelector([]string{"*_mp3"})
			So(anyMp3.IsRequested("hls-aes_mp3"), ShouldBeTrue)
			So(anyMp3.IsRequested("hls_aac"), ShouldBeFalse)
		})
	})
}
