// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/notesafe/notesafe/internal/config"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/store"
	"github.com/notesafe/notesafe/internal/utils"
	"github.com/notesafe/notesafe/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, JWT token
// lifecycle, and first-login provisioning of end-to-end key material.
//
// The service never sees unwrapped keys: the KEK is derived and the DEK is
// unwrapped exclusively on the client. What passes through here is the
// password (for bcrypt verification only, on the single authentication
// request) and the already-wrapped DEK.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// tokenRenewalWindow is the sliding-expiration threshold: a valid token
	// with less remaining lifetime than this gets a replacement issued.
	tokenRenewalWindow time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     userRepository,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		tokenRenewalWindow: cfg.TokenRenewalWindow,
		logger:             logger,
	}
}

// RegisterUser creates a new user account with its end-to-end key material.
//
// The password is hashed with bcrypt before persistence; the plaintext never
// leaves this call. The key-material pair must be complete; registration is
// the first of the two moments the pair may be written (the other being
// first-login provisioning for pre-migration accounts).
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if login or password is empty.
//   - models.ErrPartialKeyMaterial if exactly one of salt/wrappedDek is set.
//   - A wrapped storage error if the repository call fails (e.g. login
//     already taken; see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if err := user.ValidateKeyMaterial(); err != nil {
		log.Err(err).Str("login", user.Login).Msg("partial key material in registration")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and returns the stored account
// record, including its key material (or the absence of it, which tells the
// client to provision).
//
// Note the two independent checks a password goes through: bcrypt here, and
// the GCM tag when the client later unwraps the DEK with the derived KEK.
// They can disagree only under data corruption; the caller must surface the
// client-side unwrap failure as a generic "unable to decrypt", never as
// "wrong password".
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if login or password is empty.
//   - A wrapped storage error if the lookup fails (see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the bcrypt comparison fails.
func (a *authService) Login(ctx context.Context, login, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		log.Error().Str("login", login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int64("id", foundUser.UserID).Str("login", login).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// GetUser returns the account record for an authenticated user id,
// including its current key material.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

// ProvisionKeyMaterial performs the upgrade-on-login step for accounts that
// predate end-to-end encryption: it persists the client-generated
// (kekSalt, wrappedDek) pair, but only if the account still has none.
//
// Concurrent provisioning attempts from multiple devices are serialized by
// the repository's conditional write. When this writer loses the race, the
// stored pair is re-fetched and returned; the caller's locally generated
// DEK must be discarded in favour of the winner's, so that the account
// converges on exactly one DEK.
func (a *authService) ProvisionKeyMaterial(ctx context.Context, userID int64, kekSalt, wrappedDek string) (models.User, error) {
	log := logger.FromContext(ctx)

	if kekSalt == "" || wrappedDek == "" {
		return models.User{}, models.ErrPartialKeyMaterial
	}

	user, err := a.userRepository.SetKeyMaterialIfAbsent(ctx, userID, kekSalt, wrappedDek)
	if err == nil {
		log.Info().Int64("id", userID).Msg("end-to-end key material provisioned")
		return user, nil
	}
	if !errors.Is(err, store.ErrKeyMaterialExists) {
		log.Err(err).Int64("id", userID).Msg("provisioning write failed")
		return models.User{}, fmt.Errorf("provisioning write failed: %w", err)
	}

	// Lost the race (or a second device provisioned first): return the
	// stored pair so the client discards its own generated DEK.
	existing, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("re-fetch after provisioning race failed: %w", err)
	}
	if !existing.HasKeyMaterial() {
		// Conditional write matched nothing, yet the account has no pair:
		// the user row is gone or corrupted.
		return models.User{}, ErrKeyMaterialMissing
	}

	log.Debug().Int64("id", userID).Msg("provisioning race lost, returning stored key material")
	return existing, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, bad signature)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need
// to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// RenewIfExpiring implements the sliding-expiration contract: when a valid
// token's remaining lifetime falls below the configured renewal window, a
// fresh token is issued for the same user. The second return value reports
// whether a renewal happened; when false, the returned token is the zero
// value.
func (a *authService) RenewIfExpiring(ctx context.Context, token models.Token) (models.Token, bool) {
	if a.tokenRenewalWindow <= 0 || !token.ExpiresWithin(a.tokenRenewalWindow) {
		return models.Token{}, false
	}

	renewed, err := a.CreateToken(ctx, models.User{UserID: token.UserID})
	if err != nil {
		// Renewal is best-effort: the presented token is still valid.
		logger.FromContext(ctx).Err(err).Int64("id", token.UserID).Msg("sliding token renewal failed")
		return models.Token{}, false
	}

	return renewed, true
}
