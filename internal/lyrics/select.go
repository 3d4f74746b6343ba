package lyrics

import (
	"math"
	"sort"
)

// selectBest picks the search candidate whose duration is closest to the
// target. Candidates are stable-sorted by absolute duration delta, then,
// when tolerance > 0, any candidate with a delta of tolerance or more is
// dropped. A tolerance <= 0 keeps the full sorted list. When target is
// nil no ranking happens and the first candidate wins.
//
// Returns the chosen candidate, the number of candidates that survived
// filtering, and whether anything survived at all.
func selectBest(candidates []Track, target *float64, tolerance float64) (Track, int, bool) {
	if len(candidates) == 0 {
		return Track{}, 0, false
	}
	if target == nil {
		return candidates[0], len(candidates), true
	}

	ranked := make([]Track, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return durationDelta(ranked[i], *target) < durationDelta(ranked[j], *target)
	})

	if tolerance > 0 {
		kept := ranked[:0]
		for _, t := range ranked {
			if durationDelta(t, *target) < tolerance {
				kept = append(kept, t)
			}
		}
		ranked = kept
	}

	if len(ranked) == 0 {
		return Track{}, 0, false
	}
	return ranked[0], len(ranked), true
}

// durationDelta returns |track duration - target|, treating NaN as
// maximally distant so sorting stays total.
func durationDelta(t Track, target float64) float64 {
	d := math.Abs(t.Duration - target)
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}
