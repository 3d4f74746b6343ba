package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// fakeLrclib serves canned /api/get and /api/search responses and
// records the queries it saw.
type fakeLrclib struct {
	getStatus    int
	getBody      string
	searchStatus int
	searchBody   string

	getQueries    []url.Values
	searchQueries []url.Values
}

func (f *fakeLrclib) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get", func(w http.ResponseWriter, r *http.Request) {
		f.getQueries = append(f.getQueries, r.URL.Query())
		w.WriteHeader(f.getStatus)
		w.Write([]byte(f.getBody))
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		f.searchQueries = append(f.searchQueries, r.URL.Query())
		w.WriteHeader(f.searchStatus)
		w.Write([]byte(f.searchBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testMeta() TrackMeta {
	return TrackMeta{
		Track:    "Song",
		Artist:   "Band",
		Album:    strptr("Rec"),
		Duration: f64ptr(200),
	}
}

func TestResolveExactHit(t *testing.T) {
	fake := &fakeLrclib{
		getStatus: http.StatusOK,
		getBody:   `{"id": 1, "trackName": "Song", "duration": 200.0, "syncedLyrics": "[00:01.00]hi"}`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Found {
		t.Fatal("Found = false, want true")
	}
	if outcome.SyncedLyrics != "[00:01.00]hi" {
		t.Errorf("SyncedLyrics = %q", outcome.SyncedLyrics)
	}
	if outcome.MatchedDuration != 200 {
		t.Errorf("MatchedDuration = %v, want 200", outcome.MatchedDuration)
	}

	// All four fields go out on the exact lookup.
	q := fake.getQueries[0]
	for _, param := range []string{"track_name", "artist_name", "album_name", "duration"} {
		if _, ok := q[param]; !ok {
			t.Errorf("exact query missing %s", param)
		}
	}
	if len(fake.searchQueries) != 0 {
		t.Error("search called after exact hit")
	}
}

func TestResolveExactHitWithoutSynced(t *testing.T) {
	fake := &fakeLrclib{
		getStatus: http.StatusOK,
		getBody:   `{"id": 1, "trackName": "Song", "plainLyrics": "hi", "syncedLyrics": null}`,
	}
	srv := fake.server(t)

	// Even with the search fallback enabled: an exact match with no
	// synced lyrics means there is nothing to write, not a miss.
	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Found {
		t.Error("Found = true, want false")
	}
	if len(fake.searchQueries) != 0 {
		t.Error("search called after exact match without synced lyrics")
	}
}

func TestResolveMissWithoutFallback(t *testing.T) {
	fake := &fakeLrclib{getStatus: http.StatusNotFound, getBody: `{"code":404}`}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Found {
		t.Error("Found = true, want false")
	}
	if len(fake.searchQueries) != 0 {
		t.Error("search called with fallback disabled")
	}
}

func TestResolveSearchFallback(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusOK,
		searchBody: `[
			{"id": 1, "duration": 190.0, "syncedLyrics": "[00:01.00]a"},
			{"id": 2, "duration": 200.0, "syncedLyrics": "[00:01.00]b"},
			{"id": 3, "duration": 250.0, "syncedLyrics": "[00:01.00]c"}
		]`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Found {
		t.Fatal("Found = false, want true")
	}
	if outcome.MatchedDuration != 200 {
		t.Errorf("MatchedDuration = %v, want 200", outcome.MatchedDuration)
	}
	if outcome.SyncedLyrics != "[00:01.00]b" {
		t.Errorf("SyncedLyrics = %q, want candidate b", outcome.SyncedLyrics)
	}
	if outcome.Candidates != 1 {
		t.Errorf("Candidates = %d, want 1", outcome.Candidates)
	}
}

func TestResolveSearchNoneWithinTolerance(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusOK,
		searchBody: `[
			{"id": 1, "duration": 190.0, "syncedLyrics": "[00:01.00]a"},
			{"id": 2, "duration": 250.0, "syncedLyrics": "[00:01.00]b"}
		]`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Found {
		t.Error("Found = true, want false when nothing is within tolerance")
	}
}

func TestResolveSearchBestLacksSynced(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusOK,
		searchBody: `[
			{"id": 1, "duration": 200.0, "syncedLyrics": null, "plainLyrics": "hi"},
			{"id": 2, "duration": 400.0, "syncedLyrics": "[00:01.00]far"}
		]`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Found {
		t.Error("Found = true, want false when the only close candidate has no synced lyrics")
	}
}

func TestResolveSearchEmptyResults(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusOK,
		searchBody:   `[]`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})
	outcome, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Found {
		t.Error("Found = true, want false on empty search results")
	}
}

func TestResolveArtistSuppressedOnSearchOnly(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusOK,
		searchBody:   `[]`,
	}
	srv := fake.server(t)

	opts := Options{
		Filter:         ParseIgnoreFields([]string{"artist"}),
		SearchFallback: true,
		Tolerance:      5,
	}
	r := NewResolver(NewClient(srv.URL), opts)
	if _, err := r.Resolve(context.Background(), testMeta()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fake.getQueries[0].Get("artist_name"); got != "Band" {
		t.Errorf("exact lookup artist_name = %q, want Band (suppression is search-only)", got)
	}
	if _, ok := fake.searchQueries[0]["artist_name"]; ok {
		t.Error("search sent artist_name despite suppression")
	}
}

func TestResolveSearchError(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusInternalServerError,
		searchBody:   `boom`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})
	if _, err := r.Resolve(context.Background(), testMeta()); err == nil {
		t.Fatal("expected error from failing search")
	}
}

func TestResolveIdempotent(t *testing.T) {
	fake := &fakeLrclib{
		getStatus:    http.StatusNotFound,
		getBody:      `{"code":404}`,
		searchStatus: http.StatusOK,
		searchBody: `[
			{"id": 1, "duration": 198.0, "syncedLyrics": "[00:01.00]a"},
			{"id": 2, "duration": 202.0, "syncedLyrics": "[00:01.00]b"}
		]`,
	}
	srv := fake.server(t)

	r := NewResolver(NewClient(srv.URL), Options{SearchFallback: true, Tolerance: 5})

	first, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve(context.Background(), testMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("outcomes differ: %+v vs %+v", first, second)
	}
}
