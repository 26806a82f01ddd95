package soundcloud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/constant"
	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/network"
)

const (
	apiBase = "https://api-v2.soundcloud.com/"
	webBase = "https://soundcloud.com/"

	verifySessionURL = "https://api-auth.soundcloud.com/connect/session"
)

// Client talks to the platform API. It owns the credential store and the
// format allow-list, and attaches the client id to every request.
type Client struct {
	http        *http.Client
	credentials *Store
	selector    *Selector
	headers     map[string]string

	apiBase string

	throttleWarning sync.Once
}

func New() *Client {
	return &Client{
		http:        network.Client,
		credentials: NewStore(),
		selector:    NewSelector(viper.GetStringSlice(key.FormatsRequested)),
		headers:     map[string]string{},
		apiBase:     apiBase,
	}
}

// Login verifies the OAuth token and, on success, authenticates all further
// requests with it. On failure the client stays anonymous.
func (c *Client) Login(token string) bool {
	if !c.credentials.VerifySession(token) {
		log.Warn("authorization token rejected, continuing as guest")
		return false
	}

	c.headers["Authorization"] = "OAuth " + token
	return true
}

// LoggedIn reports whether an OAuth token was accepted for this client.
func (c *Client) LoggedIn() bool {
	_, ok := c.headers["Authorization"]
	return ok
}

// getJSON performs an API GET and decodes the JSON response. A 401 or 403
// invalidates the client id and retries once with a freshly scraped one; any
// other failure is returned as-is.
func (c *Client) getJSON(rawURL string, query url.Values, out any) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse %q: %w", rawURL, err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		merged := parsed.Query()
		for name, values := range query {
			merged[name] = values
		}
		merged.Set("client_id", c.credentials.CurrentID())
		parsed.RawQuery = merged.Encode()

		request, err := http.NewRequest(http.MethodGet, parsed.String(), nil)
		if err != nil {
			return err
		}

		request.Header.Set("User-Agent", constant.UserAgent)
		for name, value := range c.headers {
			request.Header.Set(name, value)
		}

		response, err := c.http.Do(request)
		if err != nil {
			return fmt.Errorf("request %s: %w", parsed.Host, err)
		}

		switch {
		case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
			response.Body.Close()
			lastErr = &StatusError{Code: response.StatusCode, URL: parsed.String()}

			c.credentials.Invalidate()
			if _, err := c.credentials.Refresh(); err != nil {
				return err
			}

			continue
		case response.StatusCode >= http.StatusBadRequest:
			response.Body.Close()
			return &StatusError{Code: response.StatusCode, URL: parsed.String()}
		}

		err = json.NewDecoder(response.Body).Decode(out)
		response.Body.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", parsed.Host, err)
		}

		return nil
	}

	return lastErr
}

// warnThrottled logs the rate-limit hint at most once per client.
func (c *Client) warnThrottled() {
	c.throttleWarning.Do(func() {
		log.Warn("rate limited by the platform, retrying. A lower request rate or an authenticated session helps")
	})
}
