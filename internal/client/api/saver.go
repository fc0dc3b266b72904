package api

import (
	"context"

	"notekeep/internal/client/notes"
	"notekeep/internal/client/session"
)

// NotesSaver binds a client and a session into the two-method persistence
// surface the draft editor saves through.
type NotesSaver struct {
	Client  *Client
	Session *session.Session
}

func (s NotesSaver) CreateNote(ctx context.Context, n notes.Note) (notes.Note, error) {
	return s.Client.CreateNote(ctx, s.Session, n)
}

func (s NotesSaver) UpdateNote(ctx context.Context, n notes.Note) (notes.Note, error) {
	return s.Client.UpdateNote(ctx, s.Session, n)
}
