// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

/*
Package user implements account management for the YaMDb platform.

It defines the core User entity and the use cases around it: the
administrative user directory (list, create, update, delete by username) and
the self-service profile endpoint.

# Architecture

This layer is the "Truth" of the identity system. The entity defined here has
no transport or storage dependencies and encapsulates the business rules
related to accounts and roles.
*/
package user

import (
	"time"

	"github.com/serg350/yamdb-final/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the YaMDb platform.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             sec.Role  `json:"role"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `json:"bio"`
	ConfirmationCode string    `json:"-"` // Explicitly omitted from JSON for security.
	IsStaff          bool      `json:"-"`
	IsSuperuser      bool      `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"-"`
}

// ConfirmationState describes where an account stands in the signup flow.
type ConfirmationState string

const (
	// StateNoCode means no exchangeable code exists: either the account was
	// enrolled administratively, or its last code was already consumed. The
	// token endpoint treats both the same way.
	StateNoCode ConfirmationState = "no_code"

	// StatePending means a code has been issued and not yet exchanged.
	StatePending ConfirmationState = "pending"
)

// Confirmation derives the signup state from the stored code.
func (u *User) Confirmation() ConfirmationState {
	if u.ConfirmationCode != "" {
		return StatePending
	}
	return StateNoCode
}

// Actor converts the entity into the identity shape policies evaluate.
func (u *User) Actor() *sec.Actor {
	if u == nil {
		return nil
	}
	return &sec.Actor{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the user domain.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldRole      = "role"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
)
