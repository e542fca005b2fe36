// Package archive defines completed rating sessions kept for later review.
package archive

import (
	"slices"
	"time"

	"photorank/domain/ranking"
)

// Record is a completed rating session.
type Record struct {
	// ID is the session identifier assigned when the session completed.
	ID string

	// Folder is the folder the images were loaded from.
	Folder string

	// Criteria is the criterion order used for each entry's Scores.
	Criteria []string

	// Entries is the full ranking, best first.
	Entries []ranking.Entry

	// CompletedAt is when rankings were computed.
	CompletedAt time.Time
}

// NewRecord builds a record from computed results.
func NewRecord(id, folder string, res ranking.Results, completedAt time.Time) *Record {
	r := &Record{
		ID:          id,
		Folder:      folder,
		Criteria:    slices.Clone(res.Criteria),
		CompletedAt: completedAt,
	}

	if len(res.Entries) > 0 {
		r.Entries = make([]ranking.Entry, len(res.Entries))
		for i, e := range res.Entries {
			e.Scores = slices.Clone(e.Scores)
			r.Entries[i] = e
		}
	}

	return r
}

// ImageCount returns the number of ranked images.
func (r *Record) ImageCount() int {
	return len(r.Entries)
}

// Winner returns the top entry, or false if the record is empty.
func (r *Record) Winner() (ranking.Entry, bool) {
	if len(r.Entries) == 0 {
		return ranking.Entry{}, false
	}
	return r.Entries[0], true
}

// Results converts the record back into ranking results.
func (r *Record) Results() ranking.Results {
	return ranking.Results{
		Criteria: slices.Clone(r.Criteria),
		Entries:  slices.Clone(r.Entries),
	}
}
