// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package auth

import "time"

// # Confirmation Flow Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// A full day matches the expected cadence of a review-writing session.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationMailSubject is the subject line of the code delivery email.
	ConfirmationMailSubject = "Your YaMDb confirmation code"
)

// # Field Identifiers

// Field names used for validation and payload mapping in the signup flow.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)
