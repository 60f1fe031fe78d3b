package models

import "time"

// Note is a single markdown note owned by a user.
//
// Title and Content are opaque text from the server's point of view: on any
// given row each of them is independently either an end-to-end envelope
// (sealed by the client under its DEK), a legacy server-side envelope from
// before the end-to-end migration, or pre-encryption plaintext. The server
// resolves the legacy tier on read and never interprets the fields further.
type Note struct {
	// ID is the note's unique identifier (UUID, assigned on creation).
	ID string `json:"id"`

	// UserID is the owner of the note. Every query is scoped by it;
	// a note is never visible outside its owner's account.
	UserID int64 `json:"-"`

	// Title is the note title as stored (see the type comment for tiers).
	Title string `json:"title"`

	// Content is the markdown body as stored.
	Content string `json:"content_markdown"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteUpdate describes a partial update of a note. Nil fields are left
// unchanged; UpdatedAt is always bumped by the repository.
type NoteUpdate struct {
	ID      string
	UserID  int64
	Title   *string
	Content *string
}

// NoteListItem is the projection returned by the list endpoint: metadata
// plus the (possibly encrypted) title, never the content.
type NoteListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
