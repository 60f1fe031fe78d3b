package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/notesafe/notesafe/models"
)

const (
	createUser = `INSERT INTO users (login, password_hash, kek_salt, wrapped_dek)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, password_hash, kek_salt, wrapped_dek, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, kek_salt, wrapped_dek, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, kek_salt, wrapped_dek, created_at
    FROM users
    WHERE user_id = $1;`

	// The WHERE clause is the provisioning serialization point: the pair is
	// written only when no pair exists yet, in one atomic statement, so two
	// racing first-logins converge on exactly one stored DEK.
	setKeyMaterialIfAbsent = `UPDATE users
    SET kek_salt = $2, wrapped_dek = $3
    WHERE user_id = $1 AND kek_salt IS NULL AND wrapped_dek IS NULL
    RETURNING user_id, login, password_hash, kek_salt, wrapped_dek, created_at;`

	createNote = `INSERT INTO notes (id, user_id, title, content)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_id, title, content, created_at, updated_at;`

	listNotesByUser = `SELECT id, title, updated_at
    FROM notes
    WHERE user_id = $1
    ORDER BY updated_at DESC;`

	findNoteByID = `SELECT id, user_id, title, content, created_at, updated_at
    FROM notes
    WHERE id = $1 AND user_id = $2;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1 AND user_id = $2;`
)

// buildNoteUpdateQuery builds a partial UPDATE for a note with squirrel.
// Only non-nil fields are included; updated_at is always bumped. Returns
// [ErrBuildingSQLQuery] when the update carries no fields at all.
func buildNoteUpdateQuery(update models.NoteUpdate) (string, []any, error) {
	if update.Title == nil && update.Content == nil {
		return "", nil, ErrBuildingSQLQuery
	}

	builder := sq.Update("notes").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix("RETURNING id, user_id, title, content, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}

	return builder.ToSql()
}
