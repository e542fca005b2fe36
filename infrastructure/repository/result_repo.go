package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"photorank/domain/archive"
	"photorank/domain/ranking"
)

// ResultsCollection is the collection holding archived sessions.
const ResultsCollection = "results"

// resultDocument is the MongoDB document structure for an archived session.
type resultDocument struct {
	ID          string          `bson:"_id"`
	Folder      string          `bson:"folder"`
	Criteria    []string        `bson:"criteria"`
	Entries     []entryDocument `bson:"entries"`
	CompletedAt time.Time       `bson:"completed_at"`
}

// entryDocument is the MongoDB document structure for one ranked image.
type entryDocument struct {
	Rank   int    `bson:"rank"`
	Image  string `bson:"image"`
	Score  int    `bson:"score"`
	Scores []int  `bson:"scores"`
}

// MongoResultRepository implements archive.Repository using MongoDB.
type MongoResultRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoResultRepository creates a new MongoDB-based archive repository.
func NewMongoResultRepository(db *MongoDB, logger *slog.Logger) *MongoResultRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoResultRepository{
		collection: db.Collection(ResultsCollection),
		logger:     logger,
	}
}

// FindByID retrieves a record by its session identifier.
func (r *MongoResultRepository) FindByID(ctx context.Context, id string) (*archive.Record, error) {
	var doc resultDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find result: %w", err)
	}
	return documentToRecord(&doc), nil
}

// FindRecent retrieves up to limit records, newest first.
func (r *MongoResultRepository) FindRecent(ctx context.Context, limit int) ([]*archive.Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find results: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []resultDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	records := make([]*archive.Record, len(docs))
	for i := range docs {
		records[i] = documentToRecord(&docs[i])
	}
	return records, nil
}

// Insert stores a new record.
func (r *MongoResultRepository) Insert(ctx context.Context, record *archive.Record) error {
	if _, err := r.collection.InsertOne(ctx, recordToDocument(record)); err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	r.logger.Info("Result archived", "id", record.ID, "images", record.ImageCount())
	return nil
}

// Delete removes a record by its session identifier.
func (r *MongoResultRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	if result.DeletedCount == 0 {
		return archive.ErrRecordNotFound
	}

	r.logger.Info("Result deleted", "id", id)
	return nil
}

// documentToRecord converts a MongoDB document to a domain Record.
func documentToRecord(doc *resultDocument) *archive.Record {
	record := &archive.Record{
		ID:          doc.ID,
		Folder:      doc.Folder,
		Criteria:    doc.Criteria,
		CompletedAt: doc.CompletedAt,
	}
	if len(doc.Entries) > 0 {
		record.Entries = make([]ranking.Entry, len(doc.Entries))
		for i, e := range doc.Entries {
			record.Entries[i] = ranking.Entry{
				Rank:   e.Rank,
				Image:  e.Image,
				Score:  e.Score,
				Scores: e.Scores,
			}
		}
	}
	return record
}

// recordToDocument converts a domain Record to a MongoDB document.
func recordToDocument(record *archive.Record) *resultDocument {
	doc := &resultDocument{
		ID:          record.ID,
		Folder:      record.Folder,
		Criteria:    record.Criteria,
		CompletedAt: record.CompletedAt,
		Entries:     make([]entryDocument, len(record.Entries)),
	}
	for i, e := range record.Entries {
		doc.Entries[i] = entryDocument{
			Rank:   e.Rank,
			Image:  e.Image,
			Score:  e.Score,
			Scores: e.Scores,
		}
	}
	return doc
}

var _ archive.Repository = (*MongoResultRepository)(nil)
