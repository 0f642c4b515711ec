// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package user

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
)

// # User Data Access

// Repository defines the data access contract for user accounts.
type Repository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		List returns a page of accounts ordered by username, with the total count.

		An optional search term filters by username substring.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - search: string

		Returns:
		  - []*User: Hydrated entities
		  - int: Total number of matching rows
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params, search string) ([]*User, int, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict when username or email is already taken
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable account fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: NotFound when no such account exists
	*/
	Delete(context context.Context, username string) error
}
