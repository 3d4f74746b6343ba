package lyrics

import (
	"context"
)

// Options configures how a Resolver turns metadata into lyrics.
type Options struct {
	Filter         FieldFilter
	SearchFallback bool
	Tolerance      float64 // seconds, strict upper bound on duration delta
}

// Outcome is the result of one resolution. The zero value means no
// usable lyrics were found; errors are reported separately.
type Outcome struct {
	Found           bool
	SyncedLyrics    string
	MatchedDuration float64 // seconds, duration of the chosen candidate
	Candidates      int     // candidates surviving tolerance filtering (search path)
}

// Resolver resolves one track's metadata to synchronized lyrics: exact
// lookup first, then, when enabled, a fuzzy search ranked by duration
// proximity. Resolutions are independent of each other; a Resolver can
// be reused across files.
type Resolver struct {
	client *Client
	opts   Options
}

// NewResolver creates a Resolver using the given client.
func NewResolver(client *Client, opts Options) *Resolver {
	return &Resolver{client: client, opts: opts}
}

// Resolve runs the lookup protocol for a single track. A nil error with
// Found == false means the service had nothing usable; errors are
// per-track and never retried.
func (r *Resolver) Resolve(ctx context.Context, meta TrackMeta) (Outcome, error) {
	query := NewQuery(meta, r.opts.Filter)

	track, err := r.client.Get(ctx, &query)
	if err != nil {
		return Outcome{}, err
	}
	if track != nil {
		if !track.HasSynced() {
			// Exact match exists but has nothing to write.
			return Outcome{}, nil
		}
		return Outcome{
			Found:           true,
			SyncedLyrics:    *track.SyncedLyrics,
			MatchedDuration: track.Duration,
		}, nil
	}

	if !r.opts.SearchFallback {
		return Outcome{}, nil
	}

	if r.opts.Filter.ArtistOnSearch {
		query.ClearArtist()
	}

	candidates, err := r.client.Search(ctx, &query)
	if err != nil {
		return Outcome{}, err
	}
	if len(candidates) == 0 {
		return Outcome{}, nil
	}

	best, survivors, ok := selectBest(candidates, query.Duration, r.opts.Tolerance)
	if !ok || !best.HasSynced() {
		return Outcome{}, nil
	}

	return Outcome{
		Found:           true,
		SyncedLyrics:    *best.SyncedLyrics,
		MatchedDuration: best.Duration,
		Candidates:      survivors,
	}, nil
}
