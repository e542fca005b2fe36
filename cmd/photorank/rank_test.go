package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photorank/domain/archive"
	"photorank/domain/criteria"
	"photorank/domain/ranking"
	"photorank/domain/rating"
)

const sampleRatings = `
folder: /photos
criteria: [Sharpness, Composition]
images:
  - path: /photos/A.png
    scores: {Sharpness: 8, Composition: 8}
  - path: /photos/B.png
    scores: {Sharpness: 5, Composition: 5}
  - path: /photos/C.png
    scores: {Sharpness: 9, Composition: 9}
`

func TestParseRatings(t *testing.T) {
	rf, err := parseRatings(strings.NewReader(sampleRatings))
	require.NoError(t, err)

	assert.Equal(t, "/photos", rf.Folder)
	assert.Equal(t, []string{"Sharpness", "Composition"}, rf.Criteria)
	require.Len(t, rf.Images, 3)
	assert.Equal(t, 9, rf.Images[2].Scores["Composition"])
}

func TestParseRatings_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no criteria", "images:\n  - path: a.png\n"},
		{"no images", "criteria: [A]\n"},
		{"missing path", "criteria: [A]\nimages:\n  - scores: {A: 3}\n"},
		{"unknown field", "criteria: [A]\nimages:\n  - path: a.png\nextra: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRatings(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestRankRatings(t *testing.T) {
	rf, err := parseRatings(strings.NewReader(sampleRatings))
	require.NoError(t, err)

	res, err := rankRatings(rf)
	require.NoError(t, err)

	require.Equal(t, 3, res.Len())
	assert.Equal(t, "/photos/C.png", res.Entries[0].Image)
	assert.Equal(t, 18, res.Entries[0].Score)
	assert.Equal(t, "/photos/A.png", res.Entries[1].Image)
	assert.Equal(t, "/photos/B.png", res.Entries[2].Image)
}

func TestRankRatings_DefaultsAndClamping(t *testing.T) {
	rf := &ratingsFile{
		Criteria: []string{"A", "B"},
		Images: []ratedImage{
			{Path: "x.png", Scores: map[string]int{"A": 42}},
			{Path: "y.png"},
		},
	}

	res, err := rankRatings(rf)
	require.NoError(t, err)

	assert.Equal(t, "x.png", res.Entries[0].Image)
	assert.Equal(t, []int{rating.MaxScore, rating.DefaultScore}, res.Entries[0].Scores)
	assert.Equal(t, 2*rating.DefaultScore, res.Entries[1].Score)
}

func TestRankRatings_Errors(t *testing.T) {
	_, err := rankRatings(&ratingsFile{
		Criteria: []string{"A", " A "},
		Images:   []ratedImage{{Path: "x.png"}},
	})
	assert.ErrorIs(t, err, criteria.ErrDuplicateCriterion)

	_, err = rankRatings(&ratingsFile{
		Criteria: []string{"A"},
		Images:   []ratedImage{{Path: "x.png"}, {Path: "x.png"}},
	})
	assert.ErrorContains(t, err, "listed twice")

	_, err = rankRatings(&ratingsFile{
		Criteria: []string{"A"},
		Images:   []ratedImage{{Path: "x.png", Scores: map[string]int{"B": 3}}},
	})
	assert.ErrorIs(t, err, rating.ErrUnknownCriterion)
}

func TestPrintRankings(t *testing.T) {
	res := ranking.Results{
		Criteria: []string{"Sharpness"},
		Entries: []ranking.Entry{
			{Rank: 1, Image: "/photos/C.png", Score: 9, Scores: []int{9}},
			{Rank: 2, Image: "/photos/A.png", Score: 4, Scores: []int{4}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printRankings(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Sharpness")
	assert.Contains(t, out, "C.png")
	assert.Contains(t, out, "A.png")
	assert.Less(t, strings.Index(out, "C.png"), strings.Index(out, "A.png"))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, nil))
	assert.Contains(t, buf.String(), "No archived sessions")

	buf.Reset()
	rec := &archive.Record{
		ID:          "session-1",
		Folder:      "/photos",
		Criteria:    []string{"A"},
		Entries:     []ranking.Entry{{Rank: 1, Image: "/photos/B.png", Score: 7, Scores: []int{7}}},
		CompletedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	empty := &archive.Record{ID: "session-2", Folder: "/empty"}
	require.NoError(t, printHistory(&buf, []*archive.Record{rec, empty}))

	out := buf.String()
	assert.Contains(t, out, "session-1")
	assert.Contains(t, out, "B.png")
	assert.Contains(t, out, "session-2")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"rank", "history"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.Flags().Lookup("criterion"))
}
