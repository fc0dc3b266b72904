package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() *Store {
	s := NewStore()
	s.Add(Note{ID: "n1", Title: "Groceries", Category: CategoryPersonal})
	s.Add(Note{ID: "n2", Title: "Quarterly report", Category: CategoryWork})
	s.Add(Note{ID: "n3", Title: "Call landlord", Category: CategoryImportant})
	s.Add(Note{ID: "n4", Title: "grocery budget", Category: CategoryWork})
	return s
}

func titles(list []Note) []string {
	var out []string
	for _, n := range list {
		out = append(out, n.Title)
	}
	return out
}

func TestStoreAddAssignsLocalID(t *testing.T) {
	s := NewStore()

	added := s.Add(Note{Title: "no id yet"})
	assert.NotEmpty(t, added.ID)

	kept := s.Add(Note{ID: "server-id", Title: "has id"})
	assert.Equal(t, "server-id", kept.ID)

	assert.Equal(t, 2, s.Len())
}

func TestStoreUpdate(t *testing.T) {
	s := seededStore()

	err := s.Update(Note{ID: "n2", Title: "Annual report", Category: CategoryWork})
	require.NoError(t, err)

	got, ok := s.Get("n2")
	require.True(t, ok)
	assert.Equal(t, "Annual report", got.Title)

	// Order is untouched by an in-place update.
	assert.Equal(t, []string{"Groceries", "Annual report", "Call landlord", "grocery budget"}, titles(s.All()))
}

func TestStoreUpdateUnknownID(t *testing.T) {
	s := seededStore()
	err := s.Update(Note{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, ErrNotInCollection)
}

func TestStoreDelete(t *testing.T) {
	s := seededStore()

	require.NoError(t, s.Delete("n1"))
	assert.Equal(t, 3, s.Len())
	_, ok := s.Get("n1")
	assert.False(t, ok)

	assert.ErrorIs(t, s.Delete("n1"), ErrNotInCollection)
}

func TestStoreToggleFavorite(t *testing.T) {
	s := seededStore()

	on, err := s.ToggleFavorite("n3")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := s.ToggleFavorite("n3")
	require.NoError(t, err)
	assert.False(t, off)

	_, err = s.ToggleFavorite("nope")
	assert.ErrorIs(t, err, ErrNotInCollection)
}

func TestStoreFilter(t *testing.T) {
	s := seededStore()

	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{"wildcard empty search returns everything in order", CategoryAll, "", []string{"Groceries", "Quarterly report", "Call landlord", "grocery budget"}},
		{"category only", CategoryWork, "", []string{"Quarterly report", "grocery budget"}},
		{"search only case-insensitive", CategoryAll, "GROCER", []string{"Groceries", "grocery budget"}},
		{"both predicates", CategoryWork, "grocer", []string{"grocery budget"}},
		{"no match", CategoryPersonal, "report", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(s.Filter(tt.category, tt.search)))
		})
	}
}

func TestStoreFilterNoMatchIsEmpty(t *testing.T) {
	s := seededStore()
	assert.Empty(t, s.Filter(CategoryImportant, "grocer"))
}

func TestStoreFilterIsPure(t *testing.T) {
	s := seededStore()

	first := s.Filter(CategoryWork, "")
	second := s.Filter(CategoryWork, "")
	assert.Equal(t, first, second)

	// Filtering never mutates the collection.
	assert.Equal(t, 4, s.Len())
}

func TestStoreUncategorizedFallsBackToPersonal(t *testing.T) {
	s := NewStore()
	s.Add(Note{ID: "n1", Title: "untagged"})

	got := s.Filter(CategoryPersonal, "")
	require.Len(t, got, 1)
	assert.Equal(t, "untagged", got[0].Title)
}

func TestStoreCategories(t *testing.T) {
	s := seededStore()
	s.Add(Note{ID: "n5", Title: "trip", Category: "Travel"})
	s.Add(Note{ID: "n6", Title: "trip 2", Category: "Travel"})

	assert.Equal(t,
		[]string{CategoryPersonal, CategoryWork, CategoryImportant, "Travel"},
		s.Categories())
}

func TestStoreReset(t *testing.T) {
	s := seededStore()
	s.Reset([]Note{{ID: "x", Title: "only"}})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("n1")
	assert.False(t, ok)
}
