package notes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	mockNote     = mock.AnythingOfType("*notes.Note")
	mockPatch    = mock.AnythingOfType("notes.UpdateNote")
	errRepoDown  = errors.New("db error")
	workCategory = []string{"Work"}
)

// MockNotesRepo is a mock implementation of Repository
type MockNotesRepo struct {
	mock.Mock
}

func (m *MockNotesRepo) Create(ctx context.Context, note *Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotesRepo) List(ctx context.Context, userID bson.ObjectID) ([]*Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Note), args.Error(1)
}

func (m *MockNotesRepo) Update(ctx context.Context, userID, noteID bson.ObjectID, patch UpdateNote) (*Note, error) {
	args := m.Called(ctx, userID, noteID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Note), args.Error(1)
}

func (m *MockNotesRepo) Delete(ctx context.Context, userID, noteID bson.ObjectID) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}

func TestServiceCreate(t *testing.T) {
	userID := bson.NewObjectID()

	tests := []struct {
		name    string
		req     CreateNoteRequest
		setup   func(*MockNotesRepo)
		wantErr bool
		check   func(*testing.T, *Note)
	}{
		{
			name: "successful creation",
			req: CreateNoteRequest{
				Title:              "T",
				Content:            "C",
				Tags:               workCategory,
				CreatedDisplayDate: "8/28/2026",
			},
			setup: func(repo *MockNotesRepo) {
				repo.On("Create", mock.Anything, mockNote).Return(nil)
			},
			check: func(t *testing.T, n *Note) {
				assert.Equal(t, "T", n.Title)
				assert.Equal(t, "C", n.Content)
				assert.Equal(t, workCategory, n.Tags)
				assert.Equal(t, userID, n.UserID)
				assert.False(t, n.ID.IsZero())
			},
		},
		{
			name: "html stripped before persistence",
			req: CreateNoteRequest{
				Title:   "<b>Meeting</b>",
				Content: "<script>alert('x')</script>agenda",
			},
			setup: func(repo *MockNotesRepo) {
				repo.On("Create", mock.Anything, mockNote).Return(nil)
			},
			check: func(t *testing.T, n *Note) {
				assert.Equal(t, "Meeting", n.Title)
				assert.Equal(t, "agenda", n.Content)
			},
		},
		{
			name: "repository error",
			req:  CreateNoteRequest{Title: "T", Content: "C"},
			setup: func(repo *MockNotesRepo) {
				repo.On("Create", mock.Anything, mockNote).Return(errRepoDown)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNotesRepo)
			tt.setup(repo)

			service := NewService(repo, silentLogger)
			note, err := service.Create(context.Background(), userID, tt.req)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrCreateNote)
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				require.NotNil(t, note)
				tt.check(t, note)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceList(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("returns notes in stored order", func(t *testing.T) {
		stored := []*Note{
			{ID: bson.NewObjectID(), UserID: userID, Title: "first"},
			{ID: bson.NewObjectID(), UserID: userID, Title: "second"},
		}
		repo := new(MockNotesRepo)
		repo.On("List", mock.Anything, userID).Return(stored, nil)

		service := NewService(repo, silentLogger)
		got, err := service.List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Title)
		assert.Equal(t, "second", got[1].Title)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		repo := new(MockNotesRepo)
		repo.On("List", mock.Anything, userID).Return([]*Note(nil), nil)

		service := NewService(repo, silentLogger)
		got, err := service.List(context.Background(), userID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockNotesRepo)
		repo.On("List", mock.Anything, userID).Return(nil, errRepoDown)

		service := NewService(repo, silentLogger)
		_, err := service.List(context.Background(), userID)
		require.ErrorIs(t, err, ErrListNotes)
	})
}

func TestServiceUpdate(t *testing.T) {
	userID := bson.NewObjectID()
	noteID := bson.NewObjectID()

	t.Run("successful update sanitizes patch", func(t *testing.T) {
		title := "<i>new</i> title"
		updated := &Note{ID: noteID, UserID: userID, Title: "new title"}

		repo := new(MockNotesRepo)
		repo.On("Update", mock.Anything, userID, noteID, mock.MatchedBy(func(p UpdateNote) bool {
			return p.Title != nil && *p.Title == "new title"
		})).Return(updated, nil)

		service := NewService(repo, silentLogger)
		got, err := service.Update(context.Background(), userID, noteID, UpdateNoteRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "new title", got.Title)
		repo.AssertExpectations(t)
	})

	t.Run("not found or not owned", func(t *testing.T) {
		repo := new(MockNotesRepo)
		repo.On("Update", mock.Anything, userID, noteID, mockPatch).Return(nil, ErrNoteNotFound)

		service := NewService(repo, silentLogger)
		_, err := service.Update(context.Background(), userID, noteID, UpdateNoteRequest{})
		require.ErrorIs(t, err, ErrNoteNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockNotesRepo)
		repo.On("Update", mock.Anything, userID, noteID, mockPatch).Return(nil, errRepoDown)

		service := NewService(repo, silentLogger)
		_, err := service.Update(context.Background(), userID, noteID, UpdateNoteRequest{})
		require.ErrorIs(t, err, ErrUpdateNote)
	})
}

func TestServiceDelete(t *testing.T) {
	userID := bson.NewObjectID()
	noteID := bson.NewObjectID()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"successful delete", nil, nil},
		{"not found or not owned", ErrNoteNotFound, ErrNoteNotFound},
		{"repository error", errRepoDown, ErrDeleteNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNotesRepo)
			repo.On("Delete", mock.Anything, userID, noteID).Return(tt.repoErr)

			service := NewService(repo, silentLogger)
			err := service.Delete(context.Background(), userID, noteID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
