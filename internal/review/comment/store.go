// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package comment

import (
	"context"

	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {
	// ReviewExists reports whether the parent review exists under the given
	// title. Both IDs must match, so a review reached through the wrong
	// title's URL reads as missing.
	ReviewExists(context context.Context, titleID, reviewID int) (bool, error)

	// ListByReview returns a page of a review's comments, newest first, with
	// the total count.
	ListByReview(context context.Context, reviewID int, params pagination.Params) ([]*Comment, int, error)

	// FindByID returns the comment scoped to its parent review.
	FindByID(context context.Context, reviewID, commentID int) (*Comment, error)

	// Create persists a new comment.
	Create(context context.Context, comment *Comment) error

	// Update persists changes to the comment's text.
	Update(context context.Context, comment *Comment) error

	// Delete removes the comment.
	Delete(context context.Context, reviewID, commentID int) error
}
