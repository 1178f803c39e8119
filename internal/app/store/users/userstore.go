package userstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/histkeep/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the allow-list of permitted user emails.
type Store struct {
	c *mongo.Collection
}

// New returns a Store over the given collection.
func New(db *mongo.Database, collection string) *Store {
	return &Store{c: db.Collection(collection)}
}

// List returns every allow-list entry. The collection is the allow-list of
// an internal tool; an unbounded scan is the intended behavior.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Add upserts an allow-list entry. Re-adding an existing email is a no-op
// overwrite, so the call is idempotent.
func (s *Store) Add(ctx context.Context, email, addedBy string) (models.User, error) {
	u := models.User{
		Email:   normalizeEmail(email),
		AddedAt: time.Now().UTC(),
		AddedBy: addedBy,
	}

	_, err := s.c.ReplaceOne(ctx,
		bson.M{"_id": u.Email},
		u,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("upsert user %s: %w", u.Email, err)
	}
	return u, nil
}

// Delete removes an allow-list entry. Deleting an absent email succeeds
// silently, matching store semantics.
func (s *Store) Delete(ctx context.Context, email string) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": normalizeEmail(email)}); err != nil {
		return fmt.Errorf("delete user %s: %w", email, err)
	}
	return nil
}

// Exists reports whether email is on the allow-list.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": normalizeEmail(email)}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup user %s: %w", email, err)
	}
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
