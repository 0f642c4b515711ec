// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package user

import (
	"context"
	"fmt"

	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/pkg/pagination"
	"github.com/serg350/yamdb-final/pkg/pointer"
	"github.com/serg350/yamdb-final/pkg/uuidv7"
)

// Service implements account management use cases.
//
// Authorization for the administrative directory is enforced at the route
// level ([sec.SelfOrAdmin]); the service assumes its caller has already
// been cleared.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its storage dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Administrative Directory

// CreateInput holds the data an administrator supplies to enroll an account.
type CreateInput struct {
	Username  string
	Email     string
	Role      string
	FirstName string
	LastName  string
	Bio       string
}

/*
Create persists a new account on behalf of an administrator.

Description: Unlike self-service signup, administrative creation assigns the
role directly and issues no confirmation code.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *User: Created entity
  - error: Conflict when username or email is already registered
*/
func (service *Service) Create(context context.Context, input CreateInput) (*User, error) {
	role := sec.Role(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}

	// Time-sortable ID to prevent PG index fragmentation.
	account := &User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}

	if err := service.repository.Create(context, account); err != nil {
		return nil, err
	}

	return account, nil
}

/*
List returns a page of accounts with an optional username search.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string

Returns:
  - []*User: Page of entities
  - int: Total matching rows
  - error: Storage failures
*/
func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*User, int, error) {
	return service.repository.List(context, params, search)
}

/*
Get returns the account with the given username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated entity
  - error: NotFound when no such account exists
*/
func (service *Service) Get(context context.Context, username string) (*User, error) {
	return service.repository.FindByUsername(context, username)
}

// UpdateInput holds the partial-update payload for an account. Nil fields
// are left untouched.
type UpdateInput struct {
	Email     *string
	Role      *string
	FirstName *string
	LastName  *string
	Bio       *string
}

/*
Update applies a partial update to the account with the given username.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *User: Updated entity
  - error: NotFound or Conflict (email collision)
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*User, error) {
	account, err := service.repository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	account.Email = pointer.Fallback(input.Email, account.Email)
	account.FirstName = pointer.Fallback(input.FirstName, account.FirstName)
	account.LastName = pointer.Fallback(input.LastName, account.LastName)
	account.Bio = pointer.Fallback(input.Bio, account.Bio)
	if input.Role != nil {
		account.Role = sec.Role(*input.Role)
	}

	if err := service.repository.Update(context, account); err != nil {
		return nil, err
	}

	return account, nil
}

/*
Delete removes the account with the given username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: NotFound when no such account exists
*/
func (service *Service) Delete(context context.Context, username string) error {
	return service.repository.Delete(context, username)
}

// # Self-Service Profile

/*
Me returns the authenticated caller's own account.

Parameters:
  - context: context.Context
  - actorID: string

Returns:
  - *User: Hydrated entity
  - error: NotFound when the account has been removed since token issuance
*/
func (service *Service) Me(context context.Context, actorID string) (*User, error) {
	return service.repository.FindByID(context, actorID)
}

// ProfileInput holds the self-service partial-update payload. The role is
// deliberately absent: members cannot change their own role.
type ProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

/*
UpdateMe applies a partial update to the caller's own profile.

Description: The caller's role is preserved unconditionally, even if the
transport layer let a "role" field slip through.

Parameters:
  - context: context.Context
  - actorID: string
  - input: ProfileInput

Returns:
  - *User: Updated entity
  - error: NotFound or Conflict (email collision)
*/
func (service *Service) UpdateMe(context context.Context, actorID string, input ProfileInput) (*User, error) {
	account, err := service.repository.FindByID(context, actorID)
	if err != nil {
		return nil, err
	}

	account.Email = pointer.Fallback(input.Email, account.Email)
	account.FirstName = pointer.Fallback(input.FirstName, account.FirstName)
	account.LastName = pointer.Fallback(input.LastName, account.LastName)
	account.Bio = pointer.Fallback(input.Bio, account.Bio)

	if err := service.repository.Update(context, account); err != nil {
		return nil, fmt.Errorf("user_service_profile_update_failed: %w", err)
	}

	return account, nil
}
