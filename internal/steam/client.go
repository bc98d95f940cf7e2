package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrNotFound is returned when the upstream reports no such app.
var ErrNotFound = errors.New("steam: app not found")

// Client fetches game data from the Steam storefront API and SteamSpy.
// Both upstreams are treated as slow and fallible; every call is
// context-bound and retried once or twice on transient failures.
type Client struct {
	StoreBase string // e.g. https://store.steampowered.com
	SpyBase   string // e.g. https://steamspy.com
	HTTP      *http.Client
}

func NewClient(storeBase, spyBase string, timeout time.Duration) *Client {
	return &Client{
		StoreBase: storeBase,
		SpyBase:   spyBase,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// statusError distinguishes upstream HTTP failures so the retry wrapper
// can give up early on client errors.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("steam: status %d from %s", e.code, e.url)
}

// getJSON performs one GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("steam: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("steam: request: %w", err)
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, url: url}
	}
	if readErr != nil {
		return fmt.Errorf("steam: read response: %w", readErr)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("steam: decode: %w", err)
	}
	return nil
}

// getJSONRetry wraps getJSON with a short exponential backoff for
// transient failures. 4xx responses are not retried.
func (c *Client) getJSONRetry(ctx context.Context, url string, out any) error {
	op := func() error {
		err := c.getJSON(ctx, url, out)
		if err == nil {
			return nil
		}
		var se *statusError
		if errors.As(err, &se) && se.code >= 400 && se.code < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(500*time.Millisecond),
		backoff.WithMaxInterval(2*time.Second),
	), 2)

	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

// headerImageURL derives the standard CDN header image for an app id,
// used when a source does not carry its own image URL.
func headerImageURL(appID int) string {
	return fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/header.jpg", appID)
}
