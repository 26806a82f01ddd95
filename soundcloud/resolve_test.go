package soundcloud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveTrack(t *testing.T) {
	Convey("Track resolution", t, func() {
		Convey("Should surface platform error messages", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"errors": [{"error_message": "not found"}]}`)
			})

			server := httptest.NewServer(mux)
			defer server.Close()

			client := testClient(server, freshClientID)

			_, err := client.ResolveTrack("https://soundcloud.com/some-user/gone")

			var resolution *ResolutionError
			So(err, ShouldHaveSameTypeAs, resolution)
			So(err.Error(), ShouldContainSubstring, "not found")
		})

		Convey("Should reject locators that cannot name a track", func() {
			server := httptest.NewServer(http.NotFoundHandler())
			defer server.Close()

			client := testClient(server, freshClientID)

			_, err := client.ResolveTrack("https://soundcloud.com/some-user/sets")
			So(err, ShouldNotBeNil)

			_, err = client.ResolveTrack("gopher://nope")
			So(err, ShouldNotBeNil)
		})

		Convey("Should forward a secret token to resolve and every indirection", func() {
			var resolveToken, indirectionToken string

			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
				resolveToken = r.URL.Query().Get("secret_token")

				payload := map[string]any{
					"id":            42,
					"title":         "hidden gem",
					"permalink_url": "https://soundcloud.com/u/hidden-gem/s-abcdef",
					"media": map[string]any{
						"transcodings": []map[string]any{{
							"url":    server.URL + "/indirection/http",
							"preset": "mp3_standard",
							"format": map[string]any{"protocol": "progressive", "mime_type": "audio/mpeg"},
						}},
					},
				}
				_ = json.NewEncoder(w).Encode(payload)
			})
			mux.HandleFunc("/indirection/http", func(w http.ResponseWriter, r *http.Request) {
				indirectionToken = r.URL.Query().Get("secret_token")
				fmt.Fprintf(w, `{"url": %q}`, "https://cf-media.sndcdn.com/x.128.mp3?Policy=p")
			})

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("https://soundcloud.com/u/hidden-gem/s-abcdef")

			So(err, ShouldBeNil)
			So(resolveToken, ShouldEqual, "s-abcdef")
			So(indirectionToken, ShouldEqual, "s-abcdef")
			So(track.Streams, ShouldHaveLength, 1)
			So(track.Streams[0].FormatID, ShouldEqual, "http_mp3_128")
		})

		Convey("Should keep one descriptor when two transcodings share a stream URL", func() {
			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			transcoding := func(kind string) map[string]any {
				protocol := "progressive"
				if kind == "hls" {
					protocol = "hls"
				}

				return map[string]any{
					"url":    server.URL + "/indirection/" + kind,
					"preset": "mp3_standard",
					"format": map[string]any{"protocol": protocol, "mime_type": "audio/mpeg"},
				}
			}

			mux.HandleFunc("/tracks/7", func(w http.ResponseWriter, r *http.Request) {
				payload := map[string]any{
					"id":            7,
					"title":         "twin",
					"permalink_url": "https://soundcloud.com/u/twin",
					"media": map[string]any{
						"transcodings": []map[string]any{transcoding("http"), transcoding("hls2")},
					},
				}
				_ = json.NewEncoder(w).Encode(payload)
			})
			mux.HandleFunc("/indirection/", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"url": "https://cf-media.sndcdn.com/same.128.mp3?sig=1"}`)
			})

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("7")

			So(err, ShouldBeNil)
			So(track.Streams, ShouldHaveLength, 1)
		})

		Convey("Should report geo-blocked tracks with their metadata intact", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/tracks/13", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{
					"id": 13,
					"title": "blocked",
					"permalink_url": "https://soundcloud.com/u/blocked",
					"policy": "BLOCK",
					"media": {"transcodings": []}
				}`)
			})

			server := httptest.NewServer(mux)
			defer server.Close()

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("13")

			var restricted *GeoRestrictedError
			So(err, ShouldHaveSameTypeAs, restricted)
			So(track, ShouldNotBeNil)
			So(track.Title, ShouldEqual, "blocked")
			So(track.Streams, ShouldBeEmpty)
		})

		Convey("Should unwrap embedded player locators", func() {
			locator := "https://w.soundcloud.com/player/?url=https%3A%2F%2Fapi-v2.soundcloud.com%2Ftracks%2F99&color=ff5500"

			parsed, err := (&Client{apiBase: apiBase}).parseTrackLocator(locator)

			So(err, ShouldBeNil)
			So(parsed.infoURL, ShouldEqual, apiBase+"tracks/99")
		})
	})
}

func TestFlatTrack(t *testing.T) {
	Convey("Metadata mapping", t, func() {
		Convey("Should keep absent counters null rather than zero", func() {
			track := flatTrack(&trackPayload{
				ID:            json.Number("1"),
				Title:         "t",
				PlaybackCount: float64(10),
				LikesCount:    "1,234",
			})

			So(track.ViewCount.MustGet(), ShouldEqual, 10)
			So(track.LikeCount.MustGet(), ShouldEqual, 1234)
			So(track.CommentCount.IsAbsent(), ShouldBeTrue)

			encoded, err := json.Marshal(track)
			So(err, ShouldBeNil)
			So(string(encoded), ShouldContainSubstring, `"comment_count":null`)
			So(string(encoded), ShouldContainSubstring, `"view_count":10`)
		})

		Convey("Should scale duration to seconds", func() {
			track := flatTrack(&trackPayload{ID: json.Number("1"), Duration: 183500})

			So(track.Duration, ShouldEqual, 183.5)
		})

		Convey("Should fall back to the user permalink as uploader id", func() {
			track := flatTrack(&trackPayload{
				ID:   json.Number("1"),
				User: userPayload{Username: "Some Artist", Permalink: "some-artist"},
			})

			So(track.UploaderID, ShouldEqual, "some-artist")
		})
	})
}

func TestThumbnails(t *testing.T) {
	Convey("Artwork variants", t, func() {
		Convey("Should expand a sized artwork URL into every variant", func() {
			variants := thumbnails("https://i1.sndcdn.com/artworks-abc123-large.jpg", "")

			So(variants, ShouldHaveLength, len(artworkSizes))

			last := variants[len(variants)-1]
			So(last.ID, ShouldEqual, "original")
			So(last.Preference, ShouldEqual, 10)
			So(last.Width, ShouldEqual, 0)

			So(variants[0].URL, ShouldEqual, "https://i1.sndcdn.com/artworks-abc123-mini.jpg")
			So(variants[0].Width, ShouldEqual, 16)
		})

		Convey("Should size the avatar tiny variant at 18", func() {
			variants := thumbnails("", "https://i1.sndcdn.com/avatars-xyz-large.jpg")

			So(variants[1].ID, ShouldEqual, "tiny")
			So(variants[1].Width, ShouldEqual, 18)
		})

		Convey("Should pass through an unrecognized artwork URL unsized", func() {
			variants := thumbnails("https://i1.sndcdn.com/opaque.png", "")

			So(variants, ShouldHaveLength, 1)
			So(variants[0].ID, ShouldBeEmpty)
		})

		Convey("Should return nothing when neither artwork nor avatar exist", func() {
			So(thumbnails("", ""), ShouldBeNil)
		})
	})
}
