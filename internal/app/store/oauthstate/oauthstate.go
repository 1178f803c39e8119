// Package oauthstate persists the CSRF state for the OAuth redirect flow.
//
// Each state is single-use: Validate consumes it. Expiry is enforced both
// here and by a TTL index on expires_at (see bootstrap.EnsureSchema).
package oauthstate

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type stateDoc struct {
	State     string    `bson:"_id"`
	ReturnURL string    `bson:"return_url"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_state")}
}

// Save stores state with its return URL and expiry.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	doc := stateDoc{State: state, ReturnURL: returnURL, ExpiresAt: expiresAt}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	return nil
}

// Validate consumes state. It returns the stored return URL and whether the
// state existed and had not expired.
func (s *Store) Validate(ctx context.Context, state string) (returnURL string, valid bool, err error) {
	var doc stateDoc
	findErr := s.c.FindOneAndDelete(ctx, bson.M{"_id": state}).Decode(&doc)
	if findErr == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if findErr != nil {
		return "", false, fmt.Errorf("validate oauth state: %w", findErr)
	}
	if time.Now().UTC().After(doc.ExpiresAt) {
		return "", false, nil
	}
	return doc.ReturnURL, true, nil
}
