package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://lrclib.net"
	userAgent      = "lrcsync/1.0"
)

// Track is a single LRCLIB record. PlainLyrics and SyncedLyrics are nil
// when the service has no lyrics of that kind for the track.
type Track struct {
	ID           uint    `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  *string `json:"plainLyrics"`
	SyncedLyrics *string `json:"syncedLyrics"`
}

// HasSynced reports whether the track carries non-empty synchronized lyrics.
func (t *Track) HasSynced() bool {
	return t.SyncedLyrics != nil && *t.SyncedLyrics != ""
}

// StatusError is a non-404 error status from the lyrics service.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lrclib returned status %d", e.Status)
}

// SchemaError is a response body that no longer matches the expected
// shape. Unlike a StatusError it signals API drift, not a transient
// service condition, so it is kept distinct.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("parsing lrclib response (did the api schema change?): %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Client talks to an LRCLIB-compatible lyrics service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client for the given base URL, defaulting to the
// public LRCLIB instance when baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Get performs the exact lookup against /api/get. Returns (nil, nil)
// when the service has no exact match.
func (c *Client) Get(ctx context.Context, q *Query) (*Track, error) {
	body, found, err := c.do(ctx, "/api/get", q.getValues())
	if err != nil || !found {
		return nil, err
	}

	var track Track
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, &SchemaError{Err: err}
	}
	return &track, nil
}

// Search performs the fuzzy lookup against /api/search. Returns
// (nil, nil) when the service reports no match; the returned list may
// also be empty on a 200 with no results.
func (c *Client) Search(ctx context.Context, q *Query) ([]Track, error) {
	body, found, err := c.do(ctx, "/api/search", q.searchValues())
	if err != nil || !found {
		return nil, err
	}

	var tracks []Track
	if err := json.Unmarshal(body, &tracks); err != nil {
		return nil, &SchemaError{Err: err}
	}
	return tracks, nil
}

// do issues one GET and maps the status: 404 becomes (nil, false, nil),
// any other non-2xx a StatusError. No retries; a transient failure for one file
// is reported and the run moves on.
func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, bool, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create lrclib request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Lrclib-Client", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read lrclib response: %w", err)
	}
	return body, true, nil
}
