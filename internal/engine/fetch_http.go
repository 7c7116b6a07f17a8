package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrNotFound is returned by FetchJSON when the provider answers 404.
// oEmbed endpoints use it for private, deleted and unknown videos.
var ErrNotFound = errors.New("not found")

// maxFetchBody caps provider responses; oEmbed and Data API payloads are small.
const maxFetchBody = 2 * 1024 * 1024

// fetchBackoff is the retry schedule for provider GETs. Tests shorten it.
var fetchBackoff = func() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	return bo
}

// FetchJSON performs a GET with exponential backoff and returns the body.
// Transport errors, 5xx and 429 are retried; other non-200 statuses fail
// immediately, as does a cancelled context.
func FetchJSON(ctx context.Context, fetchURL string) ([]byte, error) {
	client := HTTPClient()

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgentBot)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case IsRetryableStatus(resp.StatusCode):
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(ErrNotFound)
		case resp.StatusCode != http.StatusOK:
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		return readResponseBody(resp)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(fetchBackoff()),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(30*time.Second),
	)
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxFetchBody))
}
