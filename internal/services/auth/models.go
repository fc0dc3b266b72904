package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. The password hash never leaves the
// server and timestamps are storage-only, so the wire shape is id, username
// and email.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Username     string        `bson:"username" json:"username" example:"ada"`
	Email        string        `bson:"email" json:"email" example:"ada@example.com"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"-"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"-"`
}
