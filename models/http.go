package models

// Request and response payloads exchanged with the HTTP layer. Validation
// tags are enforced by the handlers via go-playground/validator before any
// payload reaches the service layer.

// RegisterRequest is the body of POST /api/auth/register. New accounts are
// always created with end-to-end encryption material: the client generates
// the salt and the wrapped DEK locally and submits only the wrapped form.
type RegisterRequest struct {
	Login      string `json:"login" validate:"required,min=1,max=128"`
	Password   string `json:"password" validate:"required,min=6"`
	KekSalt    string `json:"kek_salt" validate:"required,base64"`
	WrappedDek string `json:"wrapped_dek" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// KeyMaterialRequest is the body of POST /api/auth/keys; the one-time
// provisioning payload submitted on first login of a pre-migration account.
type KeyMaterialRequest struct {
	KekSalt    string `json:"kek_salt" validate:"required,base64"`
	WrappedDek string `json:"wrapped_dek" validate:"required"`
}

// AuthResponse is returned by register, login and /me. KekSalt and
// WrappedDek are empty strings for accounts that have not provisioned
// end-to-end encryption yet; the client treats that as "must provision".
type AuthResponse struct {
	UserID     int64  `json:"id"`
	Login      string `json:"login"`
	KekSalt    string `json:"kek_salt"`
	WrappedDek string `json:"wrapped_dek"`
}

// NoteCreateRequest is the body of POST /api/notes. Fields arrive already
// sealed by the client under its DEK; the server stores them verbatim.
type NoteCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content_markdown"`
}

// NoteUpdateRequest is the body of PUT /api/notes/{id}. Nil fields are
// left unchanged.
type NoteUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content_markdown"`
}
