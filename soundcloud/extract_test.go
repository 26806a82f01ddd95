package soundcloud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/key"

	. "github.com/smartystreets/goconvey/convey"
)

func TestThrottledIndirection(t *testing.T) {
	Convey("Rate-limited stream resolution", t, func() {
		trackBody := func(id int, title string, indirection string) []byte {
			payload := map[string]any{
				"id":            id,
				"title":         title,
				"permalink_url": "https://soundcloud.com/u/" + title,
				"media": map[string]any{
					"transcodings": []map[string]any{{
						"url":    indirection,
						"preset": "mp3_standard",
						"format": map[string]any{"protocol": "progressive", "mime_type": "audio/mpeg"},
					}},
				},
			}

			encoded, _ := json.Marshal(payload)
			return encoded
		}

		Convey("Should retry a 429 indirection and still produce the descriptor", func() {
			var indirectionCalls int

			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			mux.HandleFunc("/tracks/55", func(w http.ResponseWriter, r *http.Request) {
				w.Write(trackBody(55, "busy", server.URL+"/indirection/http"))
			})
			mux.HandleFunc("/indirection/http", func(w http.ResponseWriter, r *http.Request) {
				indirectionCalls++

				if indirectionCalls <= 2 {
					w.WriteHeader(http.StatusTooManyRequests)
					return
				}

				fmt.Fprint(w, `{"url": "https://cf-media.sndcdn.com/busy.128.mp3?sig=1"}`)
			})

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("55")

			So(err, ShouldBeNil)
			So(indirectionCalls, ShouldEqual, 3)
			So(track.Streams, ShouldHaveLength, 1)
			So(track.Streams[0].FormatID, ShouldEqual, "http_mp3_128")
		})

		Convey("Should skip the transcoding when the rate limit never lifts", func() {
			var indirectionCalls int

			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			mux.HandleFunc("/tracks/56", func(w http.ResponseWriter, r *http.Request) {
				w.Write(trackBody(56, "swamped", server.URL+"/indirection/http"))
			})
			mux.HandleFunc("/indirection/http", func(w http.ResponseWriter, r *http.Request) {
				indirectionCalls++
				w.WriteHeader(http.StatusTooManyRequests)
			})

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("56")

			So(err, ShouldBeNil)
			So(indirectionCalls, ShouldEqual, viper.GetInt(key.NetworkRetries))
			So(track.Streams, ShouldBeEmpty)
		})
	})
}

func TestOriginalDownloadProbe(t *testing.T) {
	Convey("Original download probe", t, func() {
		viper.Set(key.NetworkDownloadProbes, true)
		Reset(func() {
			viper.Set(key.NetworkDownloadProbes, false)
		})

		trackBody := []byte(`{
			"id": 88,
			"title": "uploader cut",
			"permalink_url": "https://soundcloud.com/u/uploader-cut",
			"downloadable": true,
			"has_downloads_left": true,
			"media": {"transcodings": []}
		}`)

		Convey("Should describe the claimable original file", func() {
			var probeMethod string

			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			mux.HandleFunc("/tracks/88", func(w http.ResponseWriter, r *http.Request) {
				w.Write(trackBody)
			})
			mux.HandleFunc("/tracks/88/download", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"redirectUri": %q}`, server.URL+"/claim")
			})
			mux.HandleFunc("/claim", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, server.URL+"/assets/original.wav", http.StatusFound)
			})
			mux.HandleFunc("/assets/original.wav", func(w http.ResponseWriter, r *http.Request) {
				probeMethod = r.Method
				w.Header().Set("Content-Length", "42")
			})

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("88")

			So(err, ShouldBeNil)
			So(probeMethod, ShouldEqual, http.MethodHead)
			So(track.Streams, ShouldHaveLength, 1)

			download := track.Streams[0]
			So(download.FormatID, ShouldEqual, "download")
			So(download.Quality, ShouldEqual, 10)
			So(download.Note, ShouldEqual, "Original")
			So(download.Extension, ShouldEqual, "wav")
			So(download.Filesize, ShouldEqual, 42)
			So(download.URL, ShouldEqual, server.URL+"/assets/original.wav")
		})

		Convey("Should carry on without a descriptor when the claim is gone", func() {
			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			mux.HandleFunc("/tracks/88", func(w http.ResponseWriter, r *http.Request) {
				w.Write(trackBody)
			})
			mux.HandleFunc("/tracks/88/download", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			client := testClient(server, freshClientID)

			track, err := client.ResolveTrack("88")

			So(err, ShouldBeNil)
			So(track.Streams, ShouldBeEmpty)
		})
	})
}
