package notes

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for notes repository operations.
// Update and Delete are owner-scoped: they report ErrNoteNotFound for a
// note that exists but belongs to another user.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	List(ctx context.Context, userID bson.ObjectID) ([]*Note, error)
	Update(ctx context.Context, userID, noteID bson.ObjectID, patch UpdateNote) (*Note, error)
	Delete(ctx context.Context, userID, noteID bson.ObjectID) error
}
