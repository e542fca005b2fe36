// Package rating holds per-image, per-criterion scores.
package rating

import (
	"errors"
	"math"
)

// Score bounds.
const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5
)

// Common errors for rating operations.
var (
	ErrUnknownImage     = errors.New("image is not part of the session")
	ErrUnknownCriterion = errors.New("criterion is not part of the session")
)

// Rand is the random source used to draw scores.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Clamp forces a score into [MinScore, MaxScore].
func Clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// ClampFloat rounds a slider value to the nearest integer and clamps it.
// NaN maps to DefaultScore.
func ClampFloat(v float64) int {
	if math.IsNaN(v) {
		return DefaultScore
	}
	if v <= MinScore {
		return MinScore
	}
	if v >= MaxScore {
		return MaxScore
	}
	return Clamp(int(math.Round(v)))
}

// Draw returns a uniform score in [MinScore, MaxScore].
func Draw(rng Rand) int {
	return MinScore + rng.IntN(MaxScore-MinScore+1)
}

// Sheet maps image -> criterion -> score.
type Sheet struct {
	scores map[string]map[string]int
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{scores: make(map[string]map[string]int)}
}

// Init discards all scores and sets every image × criterion pair to DefaultScore.
func (s *Sheet) Init(images, criteria []string) {
	s.scores = make(map[string]map[string]int, len(images))
	for _, img := range images {
		row := make(map[string]int, len(criteria))
		for _, c := range criteria {
			row[c] = DefaultScore
		}
		s.scores[img] = row
	}
}

// Reset removes every entry.
func (s *Sheet) Reset() {
	s.scores = make(map[string]map[string]int)
}

// Set clamps and stores a score, returning the stored value.
// Only pairs created by Init can be written.
func (s *Sheet) Set(image, criterion string, value int) (int, error) {
	row, ok := s.scores[image]
	if !ok {
		return 0, ErrUnknownImage
	}
	if _, ok := row[criterion]; !ok {
		return 0, ErrUnknownCriterion
	}
	value = Clamp(value)
	row[criterion] = value
	return value, nil
}

// Get returns the score for a pair and whether it exists.
func (s *Sheet) Get(image, criterion string) (int, bool) {
	v, ok := s.scores[image][criterion]
	return v, ok
}

// Has reports whether the image has a row in the sheet.
func (s *Sheet) Has(image string) bool {
	_, ok := s.scores[image]
	return ok
}

// Scores returns the image's scores in the given criterion order.
// Missing entries are reported as 0.
func (s *Sheet) Scores(image string, criteria []string) []int {
	out := make([]int, len(criteria))
	row := s.scores[image]
	for i, c := range criteria {
		out[i] = row[c]
	}
	return out
}

// Sum totals the image's scores over the given criteria; missing entries count as 0.
func (s *Sheet) Sum(image string, criteria []string) int {
	total := 0
	row := s.scores[image]
	for _, c := range criteria {
		total += row[c]
	}
	return total
}

// Randomize draws an independent score for each criterion of one image.
// Other images are never touched. Returns the drawn scores in criterion order.
func (s *Sheet) Randomize(image string, criteria []string, rng Rand) ([]int, error) {
	row, ok := s.scores[image]
	if !ok {
		return nil, ErrUnknownImage
	}
	out := make([]int, len(criteria))
	for i, c := range criteria {
		v := Draw(rng)
		row[c] = v
		out[i] = v
	}
	return out, nil
}

// Len returns the number of images in the sheet.
func (s *Sheet) Len() int {
	return len(s.scores)
}
