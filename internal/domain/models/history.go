// internal/domain/models/history.go
package models

// HistoryRecord is a user-owned, timestamped free-text entry.
//
// ID and CreatedAt together form the logical key: update and delete must
// supply both, and CreatedAt is never mutated after creation. UserID is the
// owning identity's email and is likewise set once.
type HistoryRecord struct {
	ID          string `bson:"_id" json:"id"`
	CreatedAt   Number `bson:"created_at" json:"createdAt"` // epoch milliseconds
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Text        string `bson:"text" json:"text"`
	UserID      string `bson:"user_id" json:"userId"`
}
