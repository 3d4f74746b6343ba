package lyrics

import (
	"net/url"
	"strconv"
)

// TrackMeta is the raw track information a query is built from, as read
// from a file's tags. Album and Duration are nil when the tag is missing.
type TrackMeta struct {
	Track    string
	Artist   string
	Album    *string
	Duration *float64 // seconds
}

// FieldFilter controls which query fields are withheld from LRCLIB.
// It is resolved once from the raw --ignore tokens; unknown tokens are
// silently dropped.
type FieldFilter struct {
	Duration       bool
	Album          bool
	ArtistOnSearch bool
}

// ParseIgnoreFields resolves raw ignore tokens into a FieldFilter.
// Tokens are case-sensitive. Artist suppression only applies to the
// search fallback: the exact lookup needs artist_name to disambiguate.
func ParseIgnoreFields(tokens []string) FieldFilter {
	var f FieldFilter
	for _, tok := range tokens {
		switch tok {
		case "duration":
			f.Duration = true
		case "album", "album_name":
			f.Album = true
		case "artist", "artist_name":
			f.ArtistOnSearch = true
		}
	}
	return f
}

// Query holds the fields sent to LRCLIB for one track lookup.
type Query struct {
	TrackName  string
	ArtistName string
	AlbumName  *string
	Duration   *float64
}

// NewQuery builds a lookup query from track metadata, applying duration
// and album suppression. Artist suppression is deferred to the search
// path (see Resolver).
func NewQuery(meta TrackMeta, filter FieldFilter) Query {
	q := Query{
		TrackName:  meta.Track,
		ArtistName: meta.Artist,
		AlbumName:  meta.Album,
		Duration:   meta.Duration,
	}
	if filter.Duration {
		q.ClearDuration()
	}
	if filter.Album {
		q.ClearAlbum()
	}
	return q
}

func (q *Query) ClearDuration() { q.Duration = nil }

func (q *Query) ClearAlbum() { q.AlbumName = nil }

// ClearArtist widens the search query by dropping the artist entirely.
func (q *Query) ClearArtist() { q.ArtistName = "" }

// getValues encodes the query for /api/get. artist_name is always sent,
// even when empty; LRCLIB's exact matching expects the parameter.
func (q *Query) getValues() url.Values {
	v := q.searchValues()
	v.Set("artist_name", q.ArtistName)
	if q.Duration != nil {
		v.Set("duration", strconv.FormatFloat(*q.Duration, 'f', -1, 64))
	}
	return v
}

// searchValues encodes the query for /api/search. artist_name is only
// sent when non-empty, and duration never is: duration is a client-side
// ranking input, not a server-side filter.
func (q *Query) searchValues() url.Values {
	v := url.Values{}
	v.Set("track_name", q.TrackName)
	if q.ArtistName != "" {
		v.Set("artist_name", q.ArtistName)
	}
	if q.AlbumName != nil {
		v.Set("album_name", *q.AlbumName)
	}
	return v
}
