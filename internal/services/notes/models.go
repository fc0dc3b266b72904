package notes

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Style carries the purely presentational attributes of a note. It never
// affects note identity or filtering.
type Style struct {
	FontFamily         string   `bson:"font_family,omitempty" json:"font_family,omitempty" example:"Georgia"`
	BackgroundColor    string   `bson:"background_color,omitempty" json:"background_color,omitempty" validate:"omitempty,hexcolor" example:"#2c2c2c"`
	BackgroundImageRef string   `bson:"background_image_ref,omitempty" json:"background_image_ref,omitempty"`
	AttachedImageRefs  []string `bson:"attached_image_refs,omitempty" json:"attached_image_refs,omitempty"`
}

// Note represents a persisted note. Owner is set once at creation and never
// changed by clients; tags carry the single active category as a one-element
// list at the wire boundary.
type Note struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID             bson.ObjectID `bson:"user_id" json:"user_id" example:"683cdb8aa96ad71e8e075bd0"`
	Title              string        `bson:"title" json:"title" validate:"required" example:"Groceries"`
	Content            string        `bson:"content" json:"content" example:"Milk, eggs, coffee"`
	Tags               []string      `bson:"tags" json:"tags" example:"Work"`
	Style              Style         `bson:"style,omitempty" json:"style,omitempty"`
	CreatedDisplayDate string        `bson:"created_display_date,omitempty" json:"created_display_date,omitempty" example:"8/28/2026"`
	Favorite           bool          `bson:"favorite" json:"favorite"`
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updated_at"`
}

// UpdateNote represents the fields that can change on an existing note.
// Nil fields are left untouched.
type UpdateNote struct {
	Title              *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Content            *string   `json:"content,omitempty"`
	Tags               *[]string `json:"tags,omitempty"`
	Style              *Style    `json:"style,omitempty"`
	CreatedDisplayDate *string   `json:"created_display_date,omitempty"`
	Favorite           *bool     `json:"favorite,omitempty"`
}
