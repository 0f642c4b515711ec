// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

/*
Package auth implements the confirmation-code signup flow.

Membership is established in two steps: a signup request that emails a
confirmation code, and a token request that exchanges the code for a JWT.
There are no passwords anywhere in the flow.

Architecture:

  - Service: Orchestrates the signup and token exchange use cases.
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis (cooldown).
  - Security: Single-use codes consumed atomically, RSA-signed JWTs.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/constants"
	"github.com/serg350/yamdb-final/internal/platform/ctxutil"
	"github.com/serg350/yamdb-final/internal/platform/mail"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/users/user"
	"github.com/serg350/yamdb-final/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating access tokens.
type TokenIssuer interface {
	// IssueAccessToken creates a signed JWT string for the given identity.
	IssueAccessToken(input sec.IssueInput, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code issuance or
// consumption must be reviewed carefully.
type Service struct {
	accountRepository  AccountRepository
	cooldownRepository CooldownRepository
	tokenIssuer        TokenIssuer
	mailSender         mail.Sender
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	cooldownRepo CooldownRepository,
	tokenIssuer TokenIssuer,
	mailSender mail.Sender,
) *Service {
	return &Service{
		accountRepository:  accountRepo,
		cooldownRepository: cooldownRepo,
		tokenIssuer:        tokenIssuer,
		mailSender:         mailSender,
	}
}

// # Signup Flow

// SignupInput holds the identity pair submitted during signup.
type SignupInput struct {
	Username string
	Email    string
}

// SignupResult echoes the registered identity pair back to the client.
type SignupResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers a new account or re-issues a code for an existing one.

Description: The operation is idempotent for a matching (username, email)
pair: repeating it generates a fresh confirmation code and emails it again.
A pair colliding with an existing account on only one of the two fields is a
conflict; the email collision is reported first.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupResult: The registered identity pair
  - error: Conflict, RateLimited, or delivery failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupResult, error) {

	byEmail, err := service.accountRepository.FindByEmail(context, input.Email)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_email_lookup_failed: %w", err)
	}
	if byEmail != nil && byEmail.Username != input.Username {
		return nil, apperr.Conflict("Email is already registered")
	}

	byUsername, err := service.accountRepository.FindByUsername(context, input.Username)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_username_lookup_failed: %w", err)
	}
	if byUsername != nil && byUsername.Email != input.Email {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Throttle deliveries before generating anything.
	if wait, err := service.cooldownRepository.Acquire(context, input.Username); err != nil {
		return nil, fmt.Errorf("auth_service_cooldown_failed: %w", err)
	} else if wait > 0 {
		return nil, apperr.RateLimited(int(wait.Round(time.Second).Seconds()))
	}

	code, err := sec.GenerateConfirmationCode(constants.ConfirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	account := byUsername
	if account == nil {
		// Time-sortable ID to prevent PG index fragmentation.
		account = &user.User{
			ID:               uuidv7.New(),
			Username:         input.Username,
			Email:            input.Email,
			Role:             sec.RoleUser,
			ConfirmationCode: code,
		}
		// A concurrent signup for the same pair loses here and surfaces as a
		// conflict; the constraint is the source of truth, not the lookups.
		if err := service.accountRepository.Create(context, account); err != nil {
			return nil, err
		}
	} else {
		if err := service.accountRepository.SetConfirmationCode(context, account.ID, code); err != nil {
			return nil, fmt.Errorf("auth_service_code_update_failed: %w", err)
		}
	}

	if err := service.deliverCode(context, account.Email, code); err != nil {
		// The code is already persisted; the client can retry the signup
		// after the cooldown to trigger a fresh delivery.
		return nil, apperr.ServiceUnavailable("Confirmation email could not be delivered")
	}

	return &SignupResult{Username: account.Username, Email: account.Email}, nil
}

// deliverCode emails the confirmation code to the given address.
func (service *Service) deliverCode(context context.Context, email, code string) error {
	body := fmt.Sprintf("Your confirmation code is: %s\n\nSubmit it together with your username to receive an access token.", code)

	if err := service.mailSender.Send(context, email, ConfirmationMailSubject, body); err != nil {
		logger := ctxutil.GetLogger(context)
		logger.ErrorContext(context, "confirmation_mail_delivery_failed",
			"email", email,
			"error", err.Error(),
		)
		return err
	}

	return nil
}

// # Token Exchange

/*
ObtainToken exchanges a username and confirmation code for a JWT.

Description: The stored code is consumed atomically on success, so a code can
be exchanged at most once. Submitting a code before signing up is reported
distinctly from submitting a wrong one.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed JWT access token
  - error: NotFound (unknown user) or validation failures
*/
func (service *Service) ObtainToken(context context.Context, username, code string) (string, error) {

	account, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return "", err
	}

	if account.Confirmation() != user.StatePending {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldConfirmationCode,
			Message: "No active confirmation code. Complete the signup step first.",
		})
	}

	consumed, err := service.accountRepository.ConsumeConfirmationCode(context, username, code)
	if err != nil {
		return "", fmt.Errorf("auth_service_code_consume_failed: %w", err)
	}
	if !consumed {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldConfirmationCode,
			Message: "Invalid confirmation code",
		})
	}

	token, err := service.tokenIssuer.IssueAccessToken(sec.IssueInput{
		UserID:      account.ID,
		Username:    account.Username,
		Role:        string(account.Role),
		IsStaff:     account.IsStaff,
		IsSuperuser: account.IsSuperuser,
	}, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return token, nil
}
