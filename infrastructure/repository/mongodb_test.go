package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photorank/domain/archive"
	"photorank/domain/ranking"
)

func TestDefaultMongoDBConfig(t *testing.T) {
	config := DefaultMongoDBConfig()
	require.NotNil(t, config)

	assert.Equal(t, "mongodb://localhost:27017", config.URI)
	assert.Equal(t, "photorank", config.Database)
	assert.Equal(t, 10*time.Second, config.ConnectTimeout)
}

func TestResultDocument_Conversion(t *testing.T) {
	completed := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	record := &archive.Record{
		ID:       "0b6c4a52-4f1e-4c0e-9d3a-2f5b3c1e7a90",
		Folder:   "/photos/trip",
		Criteria: []string{"Sharpness", "Composition"},
		Entries: []ranking.Entry{
			{Rank: 1, Image: "/photos/trip/c.png", Score: 18, Scores: []int{9, 9}},
			{Rank: 2, Image: "/photos/trip/a.png", Score: 16, Scores: []int{8, 8}},
		},
		CompletedAt: completed,
	}

	doc := recordToDocument(record)

	assert.Equal(t, record.ID, doc.ID)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, 18, doc.Entries[0].Score)

	back := documentToRecord(doc)

	assert.Equal(t, "/photos/trip", back.Folder)
	assert.True(t, back.CompletedAt.Equal(completed), "CompletedAt = %v, want %v", back.CompletedAt, completed)
	assert.Equal(t, "/photos/trip/a.png", back.Entries[1].Image)
	assert.Equal(t, 2, back.Entries[1].Rank)
	assert.Equal(t, []string{"Sharpness", "Composition"}, back.Criteria)
}

func TestDocumentToRecord_NoEntries(t *testing.T) {
	record := documentToRecord(&resultDocument{ID: "empty"})

	assert.Nil(t, record.Entries)
	_, ok := record.Winner()
	assert.False(t, ok, "Winner should report false for an empty record")
}
