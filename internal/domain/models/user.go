// internal/domain/models/user.go
package models

import "time"

// User is an allow-list entry. The email is the identity key; everything a
// user owns (history records) references it.
//
// The administrator's email is upserted at startup, so the allow-list is
// never empty once the process is running.
type User struct {
	Email   string    `bson:"_id" json:"email"`
	AddedAt time.Time `bson:"added_at" json:"added_at"`
	AddedBy string    `bson:"added_by,omitempty" json:"added_by,omitempty"`
}
