// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the atomic key-material
// provisioning write against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The key-material invariant is checked before the INSERT: a user may be
// created with both kek_salt and wrapped_dek or with neither, never with
// one of the two.
//
// Error handling:
//   - partial key material → [models.ErrPartialKeyMaterial].
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := user.ValidateKeyMaterial(); err != nil {
		log.Err(err).Str("login", user.Login).Msg("refusing to create user with partial key material")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, createUser,
		user.Login, user.PasswordHash, nullable(user.KekSalt), nullable(user.WrappedDek))

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	saved, err := scanUser(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return saved, nil
}

// FindUserByLogin retrieves a user record by login.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByLogin, login)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByID retrieves a user record by its internal identifier.
//
// Error handling mirrors [userRepository.FindUserByLogin].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// SetKeyMaterialIfAbsent persists the (kekSalt, wrappedDek) pair for the
// account, but only if the account has no pair yet. The check and the write
// happen in a single conditional UPDATE, which is the serialization point
// for concurrent first-logins: exactly one writer wins.
//
// Error handling:
//   - empty salt or wrapped DEK → [models.ErrPartialKeyMaterial].
//   - no row matched (material already present, or no such user) →
//     [ErrKeyMaterialExists]; the caller re-fetches to obtain the winner's
//     pair and discards its own.
func (r *userRepository) SetKeyMaterialIfAbsent(ctx context.Context, userID int64, kekSalt, wrappedDek string) (models.User, error) {
	log := logger.FromContext(ctx)

	if kekSalt == "" || wrappedDek == "" {
		return models.User{}, models.ErrPartialKeyMaterial
	}

	row := r.db.QueryRowContext(ctx, setKeyMaterialIfAbsent, userID, kekSalt, wrappedDek)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug().Int64("user_id", userID).Msg("key material already present, provisioning write skipped")
			return models.User{}, ErrKeyMaterialExists
		}
		log.Err(err).Str("func", "*userRepository.SetKeyMaterialIfAbsent").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// scanUser reads a full users row, mapping NULL key-material columns to
// empty strings.
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var kekSalt, wrappedDek sql.NullString

	if err := row.Scan(&user.UserID, &user.Login, &user.PasswordHash, &kekSalt, &wrappedDek, &user.CreatedAt); err != nil {
		return models.User{}, err
	}

	user.KekSalt = kekSalt.String
	user.WrappedDek = wrappedDek.String
	return user, nil
}

// nullable converts an empty string to a NULL-valued parameter so that the
// both-or-neither pair is represented as NULL/NULL rather than ''/'' in the
// database.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
