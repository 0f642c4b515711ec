// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/serg350/yamdb-final/internal/users/user"
)

// # Account Data Access

// AccountRepository defines the data access contract the signup and token
// flows need against the account table.
type AccountRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *user.User: Hydrated entity
		  - error: NotFound or retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*user.User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *user.User: Hydrated entity
		  - error: NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*user.User, error)

	/*
		Create persists a brand-new account, including its confirmation code.

		Parameters:
		  - context: context.Context
		  - account: *user.User

		Returns:
		  - error: Conflict when username or email is already taken
	*/
	Create(context context.Context, account *user.User) error

	/*
		SetConfirmationCode replaces the stored confirmation code for a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string

		Returns:
		  - error: Persistence failures
	*/
	SetConfirmationCode(context context.Context, userID, code string) error

	/*
		ConsumeConfirmationCode atomically clears the stored code if and only
		if it matches the submitted one. A code can therefore be exchanged for
		a token at most once, even under concurrent submissions.

		Parameters:
		  - context: context.Context
		  - username: string
		  - code: string

		Returns:
		  - bool: Whether the code matched and was consumed
		  - error: Persistence failures
	*/
	ConsumeConfirmationCode(context context.Context, username, code string) (bool, error)
}

// # Volatile Data Access

// CooldownRepository throttles repeated confirmation-code deliveries.
type CooldownRepository interface {

	/*
		Acquire attempts to take the delivery slot for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - time.Duration: Zero when acquired; otherwise the remaining wait
		  - error: Connectivity failures
	*/
	Acquire(context context.Context, username string) (time.Duration, error)
}
