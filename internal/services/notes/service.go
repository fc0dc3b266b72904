package notes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notekeep/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles notes business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new notes service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	Title              string   `json:"title" validate:"required" example:"Groceries"`
	Content            string   `json:"content" validate:"required" example:"Milk, eggs, coffee"`
	Tags               []string `json:"tags" example:"Work"`
	Style              Style    `json:"style"`
	CreatedDisplayDate string   `json:"created_display_date" example:"8/28/2026"`
	Favorite           bool     `json:"favorite"`
}

// UpdateNoteRequest represents a note update request; nil fields are
// left as they are.
type UpdateNoteRequest struct {
	Title              *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Content            *string   `json:"content,omitempty"`
	Tags               *[]string `json:"tags,omitempty"`
	Style              *Style    `json:"style,omitempty"`
	CreatedDisplayDate *string   `json:"created_display_date,omitempty"`
	Favorite           *bool     `json:"favorite,omitempty"`
}

// List returns every note owned by the user, oldest first.
func (s *Service) List(ctx context.Context, userID bson.ObjectID) ([]*Note, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error(ErrListNotes.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrListNotes
	}
	if list == nil {
		list = []*Note{}
	}
	return list, nil
}

// Create persists a new note owned by userID.
func (s *Service) Create(ctx context.Context, userID bson.ObjectID, req CreateNoteRequest) (*Note, error) {
	now := time.Now()
	note := &Note{
		ID:                 bson.NewObjectID(),
		UserID:             userID,
		Title:              sanitize.Clean(req.Title),
		Content:            sanitize.Clean(req.Content),
		Tags:               req.Tags,
		Style:              req.Style,
		CreatedDisplayDate: req.CreatedDisplayDate,
		Favorite:           req.Favorite,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.log.Error(ErrCreateNote.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrCreateNote
	}

	return note, nil
}

// Update applies a partial update to a note owned by userID.
func (s *Service) Update(ctx context.Context, userID, noteID bson.ObjectID, req UpdateNoteRequest) (*Note, error) {
	patch := sanitizedPatch(req)

	updated, err := s.repo.Update(ctx, userID, noteID, patch)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			s.log.Info("note not found for update", "user_id", userID.Hex(), "note_id", noteID.Hex())
			return nil, ErrNoteNotFound
		}
		s.log.Error(ErrUpdateNote.Error(), "error", err, "user_id", userID.Hex(), "note_id", noteID.Hex())
		return nil, ErrUpdateNote
	}

	return updated, nil
}

// Delete removes a note owned by userID.
func (s *Service) Delete(ctx context.Context, userID, noteID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, userID, noteID); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			s.log.Info("note not found for delete", "user_id", userID.Hex(), "note_id", noteID.Hex())
			return ErrNoteNotFound
		}
		s.log.Error(ErrDeleteNote.Error(), "error", err, "user_id", userID.Hex(), "note_id", noteID.Hex())
		return ErrDeleteNote
	}
	return nil
}

// sanitizedPatch converts the request into an UpdateNote with cleaned text fields.
func sanitizedPatch(req UpdateNoteRequest) UpdateNote {
	patch := UpdateNote(req)

	if patch.Title != nil {
		cleaned := sanitize.Clean(*patch.Title)
		patch.Title = &cleaned
	}
	if patch.Content != nil {
		cleaned := sanitize.Clean(*patch.Content)
		patch.Content = &cleaned
	}

	return patch
}
