// Package notes holds the client-side note model and the in-memory
// collection store for one browser-equivalent session.
package notes

import "errors"

// The fixed category set offered by the creation UI. Arbitrary categories
// are tolerated on read.
const (
	CategoryPersonal  = "Personal"
	CategoryWork      = "Work"
	CategoryImportant = "Important"

	// CategoryAll is the filter wildcard, never stored on a note.
	CategoryAll = "All"

	// FallbackCategory is where notes without a category are displayed.
	FallbackCategory = CategoryPersonal
)

// FixedCategories returns the canonical category set in display order.
func FixedCategories() []string {
	return []string{CategoryPersonal, CategoryWork, CategoryImportant}
}

// IsFixedCategory reports whether c belongs to the canonical set.
func IsFixedCategory(c string) bool {
	return c == CategoryPersonal || c == CategoryWork || c == CategoryImportant
}

// Style carries the presentational attributes of a note.
type Style struct {
	FontFamily         string
	BackgroundColor    string
	BackgroundImageRef string
	AttachedImageRefs  []string
}

// IsZero reports whether no styling is set.
func (s Style) IsZero() bool {
	return s.FontFamily == "" &&
		s.BackgroundColor == "" &&
		s.BackgroundImageRef == "" &&
		len(s.AttachedImageRefs) == 0
}

// Note is the client-side representation of a persisted note. ID is opaque;
// notes created locally before the server assigned one carry a generated
// local identifier.
type Note struct {
	ID                 string
	Title              string
	Content            string
	Category           string
	Style              Style
	CreatedDisplayDate string
	Favorite           bool
}

// DisplayCategory returns the note's category, or the fallback when the
// note has none.
func (n Note) DisplayCategory() string {
	if n.Category == "" {
		return FallbackCategory
	}
	return n.Category
}

// ErrNotInCollection is returned when an operation addresses an id the
// store does not hold.
var ErrNotInCollection = errors.New("note not in collection")
