package soundcloud

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolvePlaylist(t *testing.T) {
	Convey("Playlist resolution", t, func() {
		Convey("Should hydrate id-only stubs with one bulk request", func() {
			var resolveToken, bulkIDs, bulkPlaylist, bulkToken string

			mux := http.NewServeMux()
			server := httptest.NewServer(mux)
			defer server.Close()

			mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
				resolveToken = r.URL.Query().Get("secret_token")
				fmt.Fprint(w, `{
					"id": 900,
					"title": "mixtape",
					"permalink_url": "https://soundcloud.com/u/sets/mixtape",
					"tracks": [
						{"id": 1, "title": "opener", "permalink_url": "https://soundcloud.com/u/opener"},
						{"id": 2},
						{"id": 3}
					]
				}`)
			})
			mux.HandleFunc("/tracks", func(w http.ResponseWriter, r *http.Request) {
				bulkIDs = r.URL.Query().Get("ids")
				bulkPlaylist = r.URL.Query().Get("playlistId")
				bulkToken = r.URL.Query().Get("playlistSecretToken")

				fmt.Fprint(w, `[
					{"id": 2, "title": "middle", "permalink_url": "https://soundcloud.com/u/middle"},
					{"id": 3, "title": "closer", "permalink_url": "https://soundcloud.com/u/closer"}
				]`)
			})

			client := testClient(server, freshClientID)

			playlist, err := client.ResolvePlaylist("https://soundcloud.com/u/sets/mixtape/s-secret")

			So(err, ShouldBeNil)
			So(playlist.Title, ShouldEqual, "mixtape")
			So(resolveToken, ShouldEqual, "s-secret")
			So(bulkIDs, ShouldEqual, "2,3")
			So(bulkPlaylist, ShouldEqual, "900")
			So(bulkToken, ShouldEqual, "s-secret")

			So(playlist.Tracks, ShouldHaveLength, 3)
			So(playlist.Tracks[0].Title, ShouldEqual, "opener")
			So(playlist.Tracks[1].Title, ShouldEqual, "middle")
			So(playlist.Tracks[2].Title, ShouldEqual, "closer")
		})

		Convey("Should surface platform error messages", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"errors": [{"error_message": "no such set"}]}`)
			})

			server := httptest.NewServer(mux)
			defer server.Close()

			client := testClient(server, freshClientID)

			_, err := client.ResolvePlaylist("https://soundcloud.com/u/sets/gone")

			var resolution *ResolutionError
			So(err, ShouldHaveSameTypeAs, resolution)
			So(err.Error(), ShouldContainSubstring, "no such set")
		})

		Convey("Should reject non-set locators", func() {
			client := &Client{apiBase: apiBase}

			_, err := client.ResolvePlaylist("https://soundcloud.com/u/just-a-track")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRetryBound(t *testing.T) {
	Convey("Bounded retry", t, func() {
		Convey("Should return the first success", func() {
			calls := 0
			out, err := withRetry(3, func(error) bool { return true }, func() (int, error) {
				calls++
				if calls < 2 {
					return 0, fmt.Errorf("transient")
				}

				return 42, nil
			})

			So(err, ShouldBeNil)
			So(out, ShouldEqual, 42)
			So(calls, ShouldEqual, 2)
		})

		Convey("Should stop immediately on non-retryable failures", func() {
			calls := 0
			_, err := withRetry(5, func(error) bool { return false }, func() (int, error) {
				calls++
				return 0, fmt.Errorf("fatal")
			})

			So(err, ShouldNotBeNil)
			So(calls, ShouldEqual, 1)
		})

		Convey("Should treat a non-positive bound as a single attempt", func() {
			calls := 0
			_, _ = withRetry(0, func(error) bool { return true }, func() (int, error) {
				calls++
				return 0, fmt.Errorf("always")
			})

			So(calls, ShouldEqual, 1)
		})
	})
}
