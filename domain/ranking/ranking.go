// Package ranking aggregates rating sheets into ordered results.
package ranking

import (
	"cmp"
	"path/filepath"
	"slices"

	"photorank/domain/rating"
)

// WinnerCount is the number of images shown as winners.
const WinnerCount = 3

// Entry is a single ranked image.
type Entry struct {
	// Rank is the 1-based position in the ordering.
	Rank int
	// Image is the image file path.
	Image string
	// Score is the sum of the image's ratings across all criteria.
	Score int
	// Scores holds the per-criterion ratings in criterion order.
	Scores []int
}

// Name returns the image file name without its directory.
func (e Entry) Name() string {
	return filepath.Base(e.Image)
}

// Results is the full ordering of a completed session.
type Results struct {
	// Criteria is the criterion order used for Entry.Scores.
	Criteria []string
	// Entries is sorted by descending score; ties keep image-sequence order.
	Entries []Entry
}

// Compute sums each image's ratings over the given criteria and sorts descending.
// The sort is stable: images with equal scores keep their relative order in images.
func Compute(images, criteria []string, sheet *rating.Sheet) Results {
	entries := make([]Entry, len(images))
	for i, img := range images {
		entries[i] = Entry{
			Image:  img,
			Score:  sheet.Sum(img, criteria),
			Scores: sheet.Scores(img, criteria),
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return Results{
		Criteria: slices.Clone(criteria),
		Entries:  entries,
	}
}

// Winners returns the top WinnerCount entries (fewer if there are fewer images).
func (r Results) Winners() []Entry {
	return r.Entries[:min(WinnerCount, len(r.Entries))]
}

// Winner returns the first-ranked entry, or false if there are none.
func (r Results) Winner() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[0], true
}

// RunnersUp returns every entry after the winner (ranks 2..N).
func (r Results) RunnersUp() []Entry {
	if len(r.Entries) <= 1 {
		return nil
	}
	return r.Entries[1:]
}

// Len returns the number of ranked images.
func (r Results) Len() int {
	return len(r.Entries)
}

// IsEmpty returns true if no images were ranked.
func (r Results) IsEmpty() bool {
	return len(r.Entries) == 0
}
