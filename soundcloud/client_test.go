package soundcloud

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	staleClientID = "stale000000000000000000000000000"
	freshClientID = "fresh000000000000000000000000abc"
)

func TestCredentialRefresh(t *testing.T) {
	Convey("Credential lifecycle", t, func() {
		var trackCalls int

		mux := http.NewServeMux()
		mux.HandleFunc("/tracks/123", func(w http.ResponseWriter, r *http.Request) {
			trackCalls++

			if r.URL.Query().Get("client_id") != freshClientID {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			fmt.Fprint(w, `{"id": 123, "title": "song", "permalink_url": "https://soundcloud.com/u/song"}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := testClient(server, staleClientID)
		client.credentials.bootstrapURL = "https://landing.test/"
		client.credentials.fetchPage = func(url string, _ bool) (string, int, error) {
			switch url {
			case "https://landing.test/":
				page := `<html><script crossorigin src="https://a.test/vendor.js"></script>` +
					`<script crossorigin src="https://a.test/app.js"></script></html>`
				return page, http.StatusOK, nil
			case "https://a.test/app.js":
				return `...,client_id:"` + freshClientID + `",...`, http.StatusOK, nil
			default:
				return "no id here", http.StatusOK, nil
			}
		}

		Convey("A 401 should trigger a scrape and a successful retry", func() {
			var payload trackPayload
			err := client.getJSON(client.apiBase+"tracks/123", nil, &payload)

			So(err, ShouldBeNil)
			So(payload.Title, ShouldEqual, "song")
			So(client.credentials.CurrentID(), ShouldEqual, freshClientID)
			So(trackCalls, ShouldEqual, 2)
		})

		Convey("A failed scrape should surface the credential error", func() {
			client.credentials.fetchPage = func(url string, _ bool) (string, int, error) {
				return "<html>no scripts</html>", http.StatusOK, nil
			}

			var payload trackPayload
			err := client.getJSON(client.apiBase+"tracks/123", nil, &payload)

			So(err, ShouldEqual, ErrCredentialUnavailable)
		})

		Convey("A second 401 after a refresh should not loop", func() {
			client.credentials.fetchPage = func(url string, _ bool) (string, int, error) {
				if url == "https://landing.test/" {
					return `<script src="https://a.test/app.js"></script>`, http.StatusOK, nil
				}

				return `client_id:"` + staleClientID + `"`, http.StatusOK, nil
			}

			var payload trackPayload
			err := client.getJSON(client.apiBase+"tracks/123", nil, &payload)

			So(IsStatus(err, http.StatusUnauthorized), ShouldBeTrue)
			So(trackCalls, ShouldEqual, 2)
		})
	})
}

func TestStatusErrors(t *testing.T) {
	Convey("HTTP failure handling", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/tracks/404", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := testClient(server, freshClientID)

		Convey("Non-auth failures should return a typed status error", func() {
			var payload trackPayload
			err := client.getJSON(client.apiBase+"tracks/404", nil, &payload)

			So(IsStatus(err, http.StatusNotFound), ShouldBeTrue)
			So(IsStatus(err, http.StatusBadGateway), ShouldBeFalse)
		})
	})
}

func TestScrapeOrder(t *testing.T) {
	Convey("Bootstrap script scan", t, func() {
		Convey("Should scan scripts last to first and stop at the first hit", func() {
			var fetched []string

			store := NewStore()
			store.bootstrapURL = "https://landing.test/"
			store.fetchPage = func(url string, _ bool) (string, int, error) {
				fetched = append(fetched, url)

				switch url {
				case "https://landing.test/":
					return `<script src="/one.js"></script><script src="/two.js"></script>`, http.StatusOK, nil
				case "https://landing.test/two.js":
					return `client_id:"` + freshClientID + `"`, http.StatusOK, nil
				default:
					return "", http.StatusOK, nil
				}
			}

			id, err := store.Refresh()

			So(err, ShouldBeNil)
			So(id, ShouldEqual, freshClientID)
			So(fetched, ShouldResemble, []string{"https://landing.test/", "https://landing.test/two.js"})
		})
	})
}
