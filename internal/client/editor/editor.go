// Package editor holds the note draft state machine: the text being composed,
// its category and style, and a linear undo/redo history over the text fields.
//
// Device-bound inputs (speech transcription, image picking) are injected as
// optional capabilities so the machine runs unchanged without a device.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notekeep/internal/client/notes"
)

// ErrCapabilityUnavailable is returned by operations whose backing capability
// was not injected.
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// ValidationError reports why a draft cannot be saved. It is produced before
// any network call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// SpeechInput transcribes one utterance from the device microphone.
type SpeechInput interface {
	Listen(ctx context.Context) (string, error)
}

// ImagePicker lets the user choose an image and returns an opaque reference
// to it.
type ImagePicker interface {
	Pick(ctx context.Context) (string, error)
}

// Saver is the persistence surface a draft saves through.
type Saver interface {
	CreateNote(ctx context.Context, n notes.Note) (notes.Note, error)
	UpdateNote(ctx context.Context, n notes.Note) (notes.Note, error)
}

// snapshot is one undoable state of the text fields. Category and style are
// not part of the history.
type snapshot struct {
	title   string
	content string
}

const (
	defaultFontFamily      = "Arial"
	defaultBackgroundColor = "#2c2c2c"
)

// Draft is the state of one note being composed or edited.
//
// History is unbounded. Making a new edit after an undo does not clear the
// redo stack, so a later Redo can replay a state captured before that edit.
// This matches the shipped interaction model and must not change.
type Draft struct {
	noteID   string
	title    string
	content  string
	category string
	style    notes.Style

	createdDisplayDate string
	favorite           bool

	history []snapshot // past states, most recent last
	future  []snapshot // undone states, most recently undone first

	speech SpeechInput
	picker ImagePicker
}

// Option configures a draft at construction time.
type Option func(*Draft)

// WithSpeechInput injects the speech transcription capability.
func WithSpeechInput(s SpeechInput) Option {
	return func(d *Draft) { d.speech = s }
}

// WithImagePicker injects the image picking capability.
func WithImagePicker(p ImagePicker) Option {
	return func(d *Draft) { d.picker = p }
}

// New creates an empty draft for a new note.
func New(opts ...Option) *Draft {
	d := &Draft{
		category: notes.FallbackCategory,
		style: notes.Style{
			FontFamily:      defaultFontFamily,
			BackgroundColor: defaultBackgroundColor,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromNote creates a draft preloaded with an existing note. Saving it updates
// that note in place.
func FromNote(n notes.Note, opts ...Option) *Draft {
	d := New(opts...)
	d.noteID = n.ID
	d.title = n.Title
	d.content = n.Content
	d.category = n.DisplayCategory()
	d.createdDisplayDate = n.CreatedDisplayDate
	d.favorite = n.Favorite
	if !n.Style.IsZero() {
		d.style = n.Style
	}
	return d
}

func (d *Draft) NoteID() string     { return d.noteID }
func (d *Draft) Title() string      { return d.title }
func (d *Draft) Content() string    { return d.content }
func (d *Draft) Category() string   { return d.category }
func (d *Draft) Style() notes.Style { return d.style }
func (d *Draft) Favorite() bool     { return d.favorite }

// CanUndo reports whether an Undo would change state.
func (d *Draft) CanUndo() bool { return len(d.history) > 0 }

// CanRedo reports whether a Redo would change state.
func (d *Draft) CanRedo() bool { return len(d.future) > 0 }

func (d *Draft) pushHistory() {
	d.history = append(d.history, snapshot{title: d.title, content: d.content})
}

// SetTitle records the current state in history, then applies the new title.
func (d *Draft) SetTitle(title string) {
	d.pushHistory()
	d.title = title
}

// SetContent records the current state in history, then applies the new
// content.
func (d *Draft) SetContent(content string) {
	d.pushHistory()
	d.content = content
}

// Undo reverts the text fields to the most recent history entry, moving the
// current state onto the redo stack. It is a no-op with no history.
func (d *Draft) Undo() {
	if len(d.history) == 0 {
		return
	}
	last := d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]

	d.future = append([]snapshot{{title: d.title, content: d.content}}, d.future...)
	d.title = last.title
	d.content = last.content
}

// Redo re-applies the most recently undone state, moving the current state
// back onto history. It is a no-op with nothing undone.
func (d *Draft) Redo() {
	if len(d.future) == 0 {
		return
	}
	next := d.future[0]
	d.future = d.future[1:]

	d.pushHistory()
	d.title = next.title
	d.content = next.content
}

// SetCategory replaces the draft's single category. Only the fixed set is
// offered at composition time.
func (d *Draft) SetCategory(c string) error {
	if !notes.IsFixedCategory(c) {
		return fmt.Errorf("unknown category %q", c)
	}
	d.category = c
	return nil
}

// SetFontFamily changes the display font.
func (d *Draft) SetFontFamily(f string) {
	d.style.FontFamily = f
}

// SetBackgroundColor sets a solid background, dropping any background image.
func (d *Draft) SetBackgroundColor(hex string) {
	d.style.BackgroundColor = hex
	d.style.BackgroundImageRef = ""
}

// SetBackgroundImage installs an image reference as the background. The
// background color is left as it is.
func (d *Draft) SetBackgroundImage(ref string) {
	d.style.BackgroundImageRef = ref
}

// PickBackgroundImage asks the injected picker for an image and installs it
// as the background.
func (d *Draft) PickBackgroundImage(ctx context.Context) error {
	if d.picker == nil {
		return ErrCapabilityUnavailable
	}
	ref, err := d.picker.Pick(ctx)
	if err != nil {
		return err
	}
	d.style.BackgroundImageRef = ref
	return nil
}

// AttachImage asks the injected picker for an image and appends its reference
// to the draft. Attached references are never removed.
func (d *Draft) AttachImage(ctx context.Context) error {
	if d.picker == nil {
		return ErrCapabilityUnavailable
	}
	ref, err := d.picker.Pick(ctx)
	if err != nil {
		return err
	}
	d.style.AttachedImageRefs = append(d.style.AttachedImageRefs, ref)
	return nil
}

// DictateContent transcribes one utterance and appends it to the content,
// separated by a space. Dictation bypasses the undo history.
func (d *Draft) DictateContent(ctx context.Context) error {
	if d.speech == nil {
		return ErrCapabilityUnavailable
	}
	transcript, err := d.speech.Listen(ctx)
	if err != nil {
		return err
	}
	d.content = d.content + " " + transcript
	return nil
}

// Save validates the draft and persists it. Title and content are trimmed
// and must both be non-empty; validation failures surface before any call on
// the saver. A draft without a note id creates, one with an id updates.
func (d *Draft) Save(ctx context.Context, saver Saver) (notes.Note, error) {
	title := strings.TrimSpace(d.title)
	content := strings.TrimSpace(d.content)

	if title == "" {
		return notes.Note{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if content == "" {
		return notes.Note{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	displayDate := d.createdDisplayDate
	if displayDate == "" {
		displayDate = time.Now().Format("1/2/2006")
	}

	n := notes.Note{
		ID:                 d.noteID,
		Title:              title,
		Content:            content,
		Category:           d.category,
		Style:              d.style,
		CreatedDisplayDate: displayDate,
		Favorite:           d.favorite,
	}

	if d.noteID == "" {
		return saver.CreateNote(ctx, n)
	}
	return saver.UpdateNote(ctx, n)
}
