// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider signs access tokens. Implemented by [*sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID int64, username, role string, timeToLive time.Duration) (string, error)
}

// CodeSender delivers a confirmation code out of band.
type CodeSender interface {
	SendConfirmationCode(context context.Context, email, username, code string) error
}

// Settings tunes token and code lifetimes.
type Settings struct {
	AccessTokenTTL      time.Duration
	ConfirmationCodeTTL time.Duration
}

// ErrInvalidConfirmation is the single answer to every failed token exchange,
// so callers cannot tell an unknown user from a wrong or stale code.
var ErrInvalidConfirmation = apperr.ValidationError(msgInvalidConfirmation)

// Service implements signup, token exchange and actor resolution.
type Service struct {
	users         UserRepository
	confirmations ConfirmationStore
	tokens        TokenProvider
	sender        CodeSender
	settings      Settings
	logger        *slog.Logger
	now           func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(
	users UserRepository,
	confirmations ConfirmationStore,
	tokens TokenProvider,
	sender CodeSender,
	settings Settings,
	logger *slog.Logger,
) *Service {
	if settings.AccessTokenTTL <= 0 {
		settings.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if settings.ConfirmationCodeTTL <= 0 {
		settings.ConfirmationCodeTTL = DefaultConfirmationCodeTTL
	}

	return &Service{
		users:         users,
		confirmations: confirmations,
		tokens:        tokens,
		sender:        sender,
		settings:      settings,
		logger:        logger,
		now:           time.Now,
	}
}

// # Signup Flow

// SignupInput is the payload of POST /auth/signup.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers an account (or finds the identical one) and sends it a fresh
confirmation code.

Description: An exact {username, email} match is idempotent and only re-issues
the code. Any other case-insensitive match on username or email is rejected.

Returns:
  - *User: The created or existing account
  - error: ValidationError, Conflict or delivery failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLen)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.resolveSignupUser(context, input)
	if err != nil {
		return nil, err
	}

	if err := service.issueConfirmation(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (service *Service) resolveSignupUser(context context.Context, input SignupInput) (*User, error) {
	existing, err := service.users.FindByUsername(context, input.Username)
	switch {
	case err == nil && existing.Email == input.Email:
		return existing, nil
	case err != nil && !apperr.HasCode(err, "NOT_FOUND"):
		return nil, err
	}

	taken, err := service.users.ExistsByUsernameOrEmail(context, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ValidationError(msgIdentityTaken)
	}

	user := &User{
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

func (service *Service) issueConfirmation(context context.Context, user *User) error {
	code, err := sec.GenerateSecureToken(constants.ConfirmationCodeBytes)
	if err != nil {
		return apperr.Internal(err)
	}

	codeHash, err := sec.HashSecret(code)
	if err != nil {
		return apperr.Internal(err)
	}

	confirmation := &Confirmation{UserID: user.ID, Email: user.Email, CodeHash: codeHash}
	if err := service.confirmations.Save(context, user.Username, confirmation, service.settings.ConfirmationCodeTTL); err != nil {
		return apperr.Internal(err)
	}

	if err := service.sender.SendConfirmationCode(context, user.Email, user.Username, code); err != nil {
		return apperr.Internal(fmt.Errorf("auth_send_confirmation_failed: %w", err))
	}

	return nil
}

// # Token Flow

// TokenInput is the payload of POST /auth/token.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
IssueToken exchanges a pending confirmation code for an access token.

Description: Succeeds only when the user exists, the stored confirmation was
issued for that same user id and email, and the code matches its hash. A wrong
code leaves the confirmation in place; a matching one is consumed atomically, so
concurrent exchanges of the same code yield a single token.

Returns:
  - string: Signed access token
  - error: ErrInvalidConfirmation for every mismatch
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return "", ErrInvalidConfirmation
		}
		return "", err
	}

	confirmation, err := service.confirmations.Find(context, user.Username)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return "", ErrInvalidConfirmation
		}
		return "", apperr.Internal(err)
	}

	if confirmation.UserID != user.ID ||
		confirmation.Email != user.Email ||
		!sec.CheckSecretHash(input.ConfirmationCode, confirmation.CodeHash) {
		return "", ErrInvalidConfirmation
	}

	// Only the exchange that removes the entry may issue a token.
	if err := service.confirmations.Consume(context, user.Username, confirmation); err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return "", ErrInvalidConfirmation
		}
		return "", apperr.Internal(err)
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.settings.AccessTokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := service.users.TouchLastLogin(context, user.ID, service.now()); err != nil {
		service.logger.Warn("user_last_login_update_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("access_token_issued", slog.Int64("user_id", user.ID))
	return token, nil
}

// # Actor Resolution

// LoadActor reloads the user named by a verified token.
func (service *Service) LoadActor(context context.Context, userID int64) (*sec.Actor, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Actor(), nil
}
