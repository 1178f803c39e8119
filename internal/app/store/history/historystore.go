package historystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/histkeep/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an id+createdAt key matches no record owned
// by the caller.
var ErrNotFound = errors.New("history record not found")

// Store holds history records. Every read and write is scoped to the owning
// identity's email; the id+createdAt pair is the logical key within that
// scope.
type Store struct {
	c *mongo.Collection
}

// New returns a Store over the given collection.
func New(db *mongo.Database, collection string) *Store {
	return &Store{c: db.Collection(collection)}
}

// Create inserts rec with a fresh UUID id and returns the stored record.
// The caller supplies CreatedAt and UserID; text fields are stored as given.
func (s *Store) Create(ctx context.Context, rec models.HistoryRecord) (models.HistoryRecord, error) {
	rec.ID = uuid.NewString()

	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.HistoryRecord{}, fmt.Errorf("insert history record: %w", err)
	}
	return rec, nil
}

// Update overwrites name and description of the record identified by
// id+createdAt, scoped to userID, and returns the post-update record.
// CreatedAt is part of the key and cannot be changed here.
func (s *Store) Update(ctx context.Context, userID, id string, createdAt int64, name, description string) (models.HistoryRecord, error) {
	var updated models.HistoryRecord
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "created_at": createdAt, "user_id": userID},
		bson.M{"$set": bson.M{"name": name, "description": description}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		return models.HistoryRecord{}, ErrNotFound
	}
	if err != nil {
		return models.HistoryRecord{}, fmt.Errorf("update history record %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes the record identified by id+createdAt, scoped to userID.
// Deleting an absent key succeeds silently.
func (s *Store) Delete(ctx context.Context, userID, id string, createdAt int64) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "created_at": createdAt, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete history record %s: %w", id, err)
	}
	return nil
}

// ListRange returns userID's records with createdAt in [start, end]
// inclusive, newest first.
func (s *Store) ListRange(ctx context.Context, userID string, start, end int64) ([]models.HistoryRecord, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}
	return s.find(ctx, filter)
}

// AllForUser returns every record owned by userID, newest first. This is
// the candidate set the search endpoint filters in memory.
func (s *Store) AllForUser(ctx context.Context, userID string) ([]models.HistoryRecord, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.HistoryRecord, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}
	defer cur.Close(ctx)

	var records []models.HistoryRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	return records, nil
}
