package soundcloud

import (
	"net/http/httptest"

	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/filesystem"
	"github.com/soundrip-cli/soundrip/key"
)

func init() {
	filesystem.SetMemMapFs()

	viper.Set(key.FormatsRequested, []string{"default"})
	viper.Set(key.NetworkRetries, 3)
	viper.Set(key.NetworkPageLimit, 200)
	viper.Set(key.NetworkDownloadProbes, false)
	viper.Set(key.SearchLimit, 50)
}

// testClient wires a client against a local test server, with an already
// loaded credential store so no scraping happens unless a test asks for it.
func testClient(server *httptest.Server, id string) *Client {
	store := NewStore()
	store.id = id
	store.loaded = true

	return &Client{
		http:        server.Client(),
		credentials: store,
		selector:    NewSelector(nil),
		headers:     map[string]string{},
		apiBase:     server.URL + "/",
	}
}
