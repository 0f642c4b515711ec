// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package review

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Repository defines the data access contract for reviews.
type Repository interface {
	// TitleExists reports whether the parent title is present.
	TitleExists(context context.Context, titleID int) (bool, error)

	// ListByTitle returns a page of a title's reviews, newest first, with
	// the total count.
	ListByTitle(context context.Context, titleID int, params pagination.Params) ([]*Review, int, error)

	// FindByID returns the review scoped to its parent title.
	FindByID(context context.Context, titleID, reviewID int) (*Review, error)

	// Create persists a new review. A second review by the same author for
	// the same title is a conflict, enforced atomically by the storage.
	Create(context context.Context, review *Review) error

	// Update persists changes to the review's text and score.
	Update(context context.Context, review *Review) error

	// Delete removes the review and its comments (enforced by the DDL).
	Delete(context context.Context, titleID, reviewID int) error
}

// RatingInvalidator drops a title's cached rating after a score mutation.
type RatingInvalidator interface {
	Invalidate(context context.Context, titleID int) error
}
