package notes

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// Store is the authoritative in-memory note list for the current session.
// All mutations are serialized through the single-threaded event model, so
// the store takes no locks. Every operation addresses notes by identifier.
type Store struct {
	items []Note
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Reset replaces the whole collection, typically after a server fetch.
func (s *Store) Reset(list []Note) {
	s.items = append(s.items[:0:0], list...)
}

// Add appends a note. When the server did not supply an identifier a fresh
// local ULID is assigned. The stored note is returned.
func (s *Store) Add(n Note) Note {
	if n.ID == "" {
		n.ID = ulid.Make().String()
	}
	s.items = append(s.items, n)
	return n
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	for _, n := range s.items {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Update replaces the entry whose identifier matches n.ID.
func (s *Store) Update(n Note) error {
	for i := range s.items {
		if s.items[i].ID == n.ID {
			s.items[i] = n
			return nil
		}
	}
	return ErrNotInCollection
}

// Delete removes the note with the given id.
func (s *Store) Delete(id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotInCollection
}

// ToggleFavorite flips the favorite flag on the matching note and returns
// the new value.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Favorite = !s.items[i].Favorite
			return s.items[i].Favorite, nil
		}
	}
	return false, ErrNotInCollection
}

// All returns the collection in original order.
func (s *Store) All() []Note {
	return append([]Note(nil), s.items...)
}

// Len returns the number of notes held.
func (s *Store) Len() int {
	return len(s.items)
}

// Filter returns the subsequence of notes matching both predicates, in
// original order: category must equal the note's display category unless it
// is the CategoryAll wildcard, and a non-empty search must appear in the
// title, case-insensitively.
func (s *Store) Filter(category, search string) []Note {
	search = strings.ToLower(search)

	var out []Note
	for _, n := range s.items {
		if category != CategoryAll && n.DisplayCategory() != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(n.Title), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Categories returns the filter button list: the fixed set first, then any
// distinct categories discovered in the data, deduplicated, in discovery
// order.
func (s *Store) Categories() []string {
	out := FixedCategories()
	seen := make(map[string]struct{}, len(out))
	for _, c := range out {
		seen[c] = struct{}{}
	}

	for _, n := range s.items {
		c := n.DisplayCategory()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
